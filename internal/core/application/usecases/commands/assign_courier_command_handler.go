package commands

import (
	"context"
	"errors"

	"hyperlocal/internal/core/domain/model/order"
)

// ErrCourierUnavailable is returned when the dispatch target is off shift at
// write time. Retryable: the courier may come back on shift, or another
// courier can be picked.
var ErrCourierUnavailable = errors.New("courier is not available")

// AssignCourierCommandHandler handles manual dispatch.
// Re-reads the courier's availability inside the assignment transaction and
// writes the order with a no-courier-attached precondition, so neither a
// concurrent availability flip nor a racing assigner can double-book.
//
// Example:
//
//	handler := NewAssignCourierCommandHandler(uowFactory, fanout)
//	cmd, _ := NewAssignCourierCommand(orderID, courierID, admin)
//	updated, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrCourierUnavailable):
//	    // pick another courier
//	case errors.Is(err, ports.ErrConcurrentUpdate):
//	    // another assigner won, reload
//	}
type AssignCourierCommandHandler struct {
	uowFactory DispatchUoWFactory
	notifier   TransitionNotifier
}

// NewAssignCourierCommandHandler creates a handler for manual dispatch.
func NewAssignCourierCommandHandler(uowFactory DispatchUoWFactory, notifier TransitionNotifier) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the assignment and returns the updated order.
// Fails with ErrCourierUnavailable if the target courier is off shift, and
// with ports.ErrConcurrentUpdate if the order moved or got a courier between
// the read and the write.
func (h AssignCourierCommandHandler) Handle(ctx context.Context, cmd AssignCourierCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()
	orderRepo := uow.OrderRepository()

	dispatchTarget, err := courierRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return nil, err
	}
	if !dispatchTarget.IsAvailable() {
		return nil, ErrCourierUnavailable
	}

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	fromStatus := aggregate.Status()

	if err = aggregate.AssignCourier(cmd.Caller(), dispatchTarget.ID()); err != nil {
		return nil, err
	}

	if err = orderRepo.UpdateIfUnassigned(ctx, aggregate, fromStatus); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.NotifyTransition(ctx, aggregate, cmd.Caller())

	return aggregate, nil
}
