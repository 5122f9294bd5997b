package ports

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// Claim outcomes. A losing claim is an expected business result, not a failure;
// handlers must never log these as errors or retry them.
var (
	// ErrOrderAlreadyAssigned is returned when another courier won the race for
	// the order. This is the frequent, legitimate losing outcome.
	ErrOrderAlreadyAssigned = errors.New("order is already assigned to another courier")

	// ErrOrderNotEligible is returned when the order exists but is not in the
	// claimable state (not yet packed, cancelled, or delivered).
	ErrOrderNotEligible = errors.New("order is not eligible for claiming")
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities,
// plus the atomic claim operation that resolves courier races.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with its current status and assignment.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ClaimForCourier atomically assigns the order to the courier. It performs a
	// single conditional update: set the courier and advance the status to
	// OutForDelivery only if the order is currently Packed with no courier.
	// The conditional write is the sole serialization point for competing
	// claims; with arbitrarily many concurrent callers exactly one succeeds.
	//
	// Returns the assigned order on success, ErrOrderAlreadyAssigned when
	// another courier holds the order, ErrOrderNotEligible when the order is
	// not claimable, or an errs.ObjectNotFoundError for an unknown order.
	// Every outcome is terminal for the attempt; this method never retries.
	ClaimForCourier(ctx context.Context, orderID, courierID kernel.UUID) (*order.Order, error)

	// GetAllEligible retrieves orders that are currently claimable: Packed
	// status with no assigned courier, optionally narrowed to a zone, ordered
	// by the instant they became eligible.
	GetAllEligible(ctx context.Context, zone *kernel.Zone) ([]*order.Order, error)
}
