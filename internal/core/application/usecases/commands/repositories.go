// Package commands contains the write side of the dispatch application:
// every state change, from order intake to the atomic claim, goes through
// a command handler here. Handlers validate their command, open a unit of
// work scoped to the aggregates they touch, and commit or roll back as one.
package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// Unit of Work interfaces scope a transaction to the aggregates a handler
// needs. Most handlers touch a single aggregate type; the claim is the
// exception and draws both repositories from one transaction.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// CourierRepoFactory provides access to the courier repository within a transaction.
	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	// OrderUoW serves handlers that only modify order aggregates,
	// such as order creation and eligibility marking.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CourierUoW serves handlers that only modify courier aggregates,
	// such as availability flips and the heartbeat sweep.
	CourierUoW interface {
		TxManager
		CourierRepoFactory
	}

	// CourierUoWFactory creates new courier unit of work instances.
	CourierUoWFactory interface {
		Create() CourierUoW
	}

	// UoW spans both aggregate types. The claim handler uses it so that
	// the courier load and the guarded order update share one transaction.
	UoW interface {
		TxManager
		CourierRepoFactory
		OrderRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
