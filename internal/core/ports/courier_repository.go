// Package ports defines the contracts between the dispatch core and its adapters.
// These interfaces establish the dependency inversion boundary: the core owns the
// contracts, the postgres and broadcast adapters implement them.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier aggregates.
type CourierRepository interface {
	// Add persists a new courier aggregate to storage.
	// The courier must be valid and not already exist in the repository.
	Add(ctx context.Context, courier *courier.Courier) error

	// Update persists changes to an existing courier aggregate.
	// The courier must exist in the repository and be valid.
	Update(ctx context.Context, courier *courier.Courier) error

	// Get retrieves a courier aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetAllOnline retrieves all couriers currently accepting dispatch.
	// The heartbeat sweep loads this roster and lets the aggregate decide
	// which entries are stale.
	GetAllOnline(ctx context.Context) ([]*courier.Courier, error)
}
