// Package ports defines the persistence and messaging interfaces of the
// marketplace core. These interfaces establish contracts between the domain
// layer and infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"hyperlocal/internal/core/domain/model/courier"
	"hyperlocal/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier aggregates.
type CourierRepository interface {
	// Add persists a new courier aggregate to storage.
	// The courier must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *courier.Courier) error

	// Update persists changes to an existing courier aggregate.
	// The courier must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *courier.Courier) error

	// Get retrieves a courier aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError if no such courier exists.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetAllAvailable retrieves every courier currently on shift
	// (is_available true). Used by the dispatch sweep to snapshot the pool.
	GetAllAvailable(ctx context.Context) ([]*courier.Courier, error)

	// IncrementTotalCommission adds amount to the courier's cached
	// commission total in storage, as a single atomic expression rather
	// than a read-modify-write.
	IncrementTotalCommission(ctx context.Context, id kernel.UUID, amount float64) error
}
