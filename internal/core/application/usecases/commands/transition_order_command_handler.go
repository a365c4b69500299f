package commands

import (
	"context"

	"hyperlocal/internal/core/domain/model/order"
)

// TransitionOrderCommandHandler handles vendor and admin console transitions.
// Loads the order, applies the role-gated transition in the domain, and
// writes it back with a status precondition so racing writers settle to
// exactly one winner.
//
// Example:
//
//	handler := NewTransitionOrderCommandHandler(uowFactory, fanout)
//	cmd, _ := NewTransitionOrderCommand(orderID, order.StatusAccepted, "", vendor)
//	updated, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ports.ErrConcurrentUpdate) {
//	    // reload and retry, another console action won the race
//	}
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   TransitionNotifier
}

// NewTransitionOrderCommandHandler creates a handler for console transitions.
func NewTransitionOrderCommandHandler(uowFactory OrderUoWFactory, notifier TransitionNotifier) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the transition command and returns the updated order.
// The write carries the status the order was read in; if another writer
// moved the order in between, the call fails with ports.ErrConcurrentUpdate
// and nothing is persisted. Fan-out runs only after a committed write.
func (h TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) (*order.Order, error) {
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

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	fromStatus := aggregate.Status()

	switch cmd.Target() {
	case order.StatusAccepted:
		err = aggregate.Accept(cmd.Caller())
	case order.StatusRejected:
		err = aggregate.Reject(cmd.Caller(), cmd.Reason())
	case order.StatusReady:
		err = aggregate.MarkReady(cmd.Caller())
	default:
		err = ErrTargetStatusNotTransitionable
	}
	if err != nil {
		return nil, err
	}

	if err = orderRepo.UpdateIfStatus(ctx, aggregate, fromStatus); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.NotifyTransition(ctx, aggregate, cmd.Caller())

	return aggregate, nil
}
