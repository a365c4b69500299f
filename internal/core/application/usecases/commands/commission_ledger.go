package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"hyperlocal/internal/core/domain/model/commission"
	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/core/domain/model/order"
)

// ErrOrderIsNotDelivered is returned when the ledger is asked to book a
// commission for an order that has not reached delivered.
var ErrOrderIsNotDelivered = errors.New("order is not delivered")

// DeliveryLedger books the commission earned by a delivered order.
// Implementations must be idempotent per order.
type DeliveryLedger interface {
	Record(ctx context.Context, aggregate *order.Order) error
}

// Ledger is the commission ledger: one entry per delivered order at the
// configured flat rate, plus the matching increment of the courier's cached
// total.
//
// Idempotence is keyed on the order ID: a retried delivery path finds the
// entry already booked, skips the increment and reports success. Entry and
// increment share one transaction, so a crash cannot leave the cached total
// out of step with the ledger.
type Ledger struct {
	uowFactory LedgerUoWFactory
	rate       float64
	logger     *slog.Logger
}

// NewLedger creates the commission ledger with the per-delivery rate taken
// from configuration.
func NewLedger(uowFactory LedgerUoWFactory, rate float64, logger *slog.Logger) (*Ledger, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("commission rate must be greater than 0, got %f", rate)
	}

	return &Ledger{
		uowFactory: uowFactory,
		rate:       rate,
		logger:     logger.With("component", "commission_ledger"),
	}, nil
}

// Record books the commission for a delivered order. Booking for an order
// already in the ledger is a no-op.
func (l *Ledger) Record(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if aggregate.Status() != order.StatusDelivered || aggregate.Courier() == nil {
		return ErrOrderIsNotDelivered
	}

	entry, err := commission.NewEntry(kernel.NewUUID(), aggregate.ID(), *aggregate.Courier(), l.rate)
	if err != nil {
		return err
	}

	uow := l.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	inserted, err := uow.CommissionRepository().InsertIfAbsent(ctx, entry)
	if err != nil {
		return err
	}
	if !inserted {
		l.logger.Info("commission already booked",
			"order_id", aggregate.ID().String())
		return uow.Commit(ctx)
	}

	if err = uow.CourierRepository().IncrementTotalCommission(ctx, entry.CourierID(), entry.Amount()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
