package commands

import (
	"context"
	"log/slog"

	"hyperlocal/internal/core/domain/model/order"
)

// VerifyHandoffCommandHandler handles the code-gated handoff transitions.
// The code check and its side effects (verification time, delivery time,
// cash-on-delivery settlement) live in the order aggregate; the handler
// scopes the write to the calling courier and triggers the post-commit side
// effects of a delivery: commission booking and fan-out.
//
// Example:
//
//	handler := NewVerifyHandoffCommandHandler(uowFactory, ledger, fanout, logger)
//	cmd, _ := NewVerifyHandoffCommand(orderID, "4821", order.StatusDelivered, courier)
//	updated, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, order.ErrInvalidCode) {
//	    // wrong code presented, order unchanged
//	}
type VerifyHandoffCommandHandler struct {
	uowFactory OrderUoWFactory
	ledger     DeliveryLedger
	notifier   TransitionNotifier
	logger     *slog.Logger
}

// NewVerifyHandoffCommandHandler creates a handler for handoff transitions.
func NewVerifyHandoffCommandHandler(
	uowFactory OrderUoWFactory,
	ledger DeliveryLedger,
	notifier TransitionNotifier,
	logger *slog.Logger,
) VerifyHandoffCommandHandler {
	return VerifyHandoffCommandHandler{
		uowFactory: uowFactory,
		ledger:     ledger,
		notifier:   notifier,
		logger:     logger.With("component", "handoff"),
	}
}

// Handle processes the handoff and returns the updated order.
// The write carries both the read status and the courier's ownership as
// preconditions. After a committed delivery the commission is booked; a
// ledger failure is logged and reconciled out of band, never unwinding the
// already-committed delivery.
func (h VerifyHandoffCommandHandler) Handle(ctx context.Context, cmd VerifyHandoffCommand) (*order.Order, error) {
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

	if cmd.Target() == order.StatusPickedUp {
		err = aggregate.PickUp(cmd.Caller(), cmd.Code())
	} else {
		err = aggregate.Deliver(cmd.Caller(), cmd.Code())
	}
	if err != nil {
		return nil, err
	}

	if err = orderRepo.UpdateIfCourier(ctx, aggregate, fromStatus, cmd.Caller().ID()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if aggregate.Status() == order.StatusDelivered {
		if err = h.ledger.Record(ctx, aggregate); err != nil {
			h.logger.Error("commission booking failed after delivery",
				"order_id", aggregate.ID().String(), "error", err.Error())
		}
	}

	h.notifier.NotifyTransition(ctx, aggregate, cmd.Caller())

	return aggregate, nil
}
