package commands

import (
	"context"

	"hyperlocal/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles the business logic for checkout.
// Creates the order in pending status with its generated handoff code and
// seed timeline entry, then fans out the placement notifications.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   TransitionNotifier
}

// NewCreateOrderCommandHandler creates a handler for checkout operations.
// Requires an OrderUoWFactory for transactional persistence and a
// TransitionNotifier for the post-commit fan-out.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, notifier TransitionNotifier) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the checkout command and returns the placed order.
// The order is persisted within a transaction; notification fan-out runs
// after the commit and never fails the placement.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	placed, err := order.NewOrder(
		cmd.OrderID(),
		cmd.ShopID(),
		cmd.Buyer(),
		cmd.Products(),
		cmd.DeliveryCost(),
		cmd.PaymentType(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, placed); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.NotifyTransition(ctx, placed, cmd.Buyer())

	return placed, nil
}
