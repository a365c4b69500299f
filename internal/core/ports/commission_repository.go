package ports

import (
	"context"

	"hyperlocal/internal/core/domain/model/commission"
	"hyperlocal/internal/core/domain/model/kernel"
)

// CommissionRepository defines the persistence contract for the commission
// ledger.
type CommissionRepository interface {
	// InsertIfAbsent books the entry unless one already exists for its order
	// ID. It reports whether a row was inserted: false means the commission
	// for this order was already booked and the call was a no-op, which
	// makes retried delivery paths idempotent.
	InsertIfAbsent(ctx context.Context, entry *commission.Entry) (bool, error)

	// GetAllByCourier retrieves the courier's ledger entries, newest first.
	GetAllByCourier(ctx context.Context, courierID kernel.UUID) ([]*commission.Entry, error)

	// MarkAllPaidByCourier settles every unpaid entry of the courier,
	// returning the number of entries settled.
	MarkAllPaidByCourier(ctx context.Context, courierID kernel.UUID) (int64, error)
}
