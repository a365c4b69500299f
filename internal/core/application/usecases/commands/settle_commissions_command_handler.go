package commands

import (
	"context"
)

// SettleCommissionsCommandHandler handles commission payouts.
// Marks every unpaid ledger entry of the courier as paid. The courier's
// cached total is untouched: it tracks lifetime earnings, not the unpaid
// balance.
type SettleCommissionsCommandHandler struct {
	uowFactory LedgerUoWFactory
}

// NewSettleCommissionsCommandHandler creates a handler for payouts.
func NewSettleCommissionsCommandHandler(uowFactory LedgerUoWFactory) SettleCommissionsCommandHandler {
	return SettleCommissionsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the payout and returns the number of entries settled.
// Zero is a valid outcome: nothing was pending.
func (h SettleCommissionsCommandHandler) Handle(ctx context.Context, cmd SettleCommissionsCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	// existence check so an unknown courier surfaces as NotFound rather
	// than a silent zero-row settle
	if _, err := uow.CourierRepository().Get(ctx, cmd.CourierID()); err != nil {
		return 0, err
	}

	settled, err := uow.CommissionRepository().MarkAllPaidByCourier(ctx, cmd.CourierID())
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return settled, nil
}
