package ports

import (
	"context"
	"errors"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/core/domain/model/order"
)

// ErrConcurrentUpdate is returned by the conditional update methods when the
// precondition no longer holds: another writer moved the order between the
// caller's read and its write. The caller must reload and retry.
var ErrConcurrentUpdate = errors.New("order was updated concurrently")

// OrderRepository defines the persistence contract for order aggregates.
//
// All mutations of existing orders go through the conditional update
// methods: each write carries the status the caller read, plus an ownership
// scope where relevant, and applies only if the row still matches. Exactly
// one of any set of racing writers wins; the rest observe
// ErrConcurrentUpdate. There is no unconditional Update.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError if no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// UpdateIfStatus persists the aggregate's state if the stored row is
	// still in fromStatus. Returns ErrConcurrentUpdate if another writer
	// already moved the order.
	UpdateIfStatus(ctx context.Context, aggregate *order.Order, fromStatus order.Status) error

	// UpdateIfUnassigned persists the aggregate's state if the stored row is
	// still in fromStatus AND has no courier attached. Used by dispatch so
	// two assigners cannot both attach a courier.
	UpdateIfUnassigned(ctx context.Context, aggregate *order.Order, fromStatus order.Status) error

	// UpdateIfCourier persists the aggregate's state if the stored row is
	// still in fromStatus AND is assigned to the given courier. Used by the
	// handoff transitions so only the owning courier's write lands.
	UpdateIfCourier(ctx context.Context, aggregate *order.Order, fromStatus order.Status, courierID kernel.UUID) error

	// GetAllUnassignedInAcceptedStatus retrieves every order in accepted
	// status with no courier attached, oldest first. Used by the
	// auto-assign sweep.
	GetAllUnassignedInAcceptedStatus(ctx context.Context) ([]*order.Order, error)
}
