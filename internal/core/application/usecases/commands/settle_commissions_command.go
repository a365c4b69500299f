package commands

import (
	"errors"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/pkg/errs"
	"hyperlocal/internal/pkg/guard"
)

var ErrSettleCommissionsCommandIsNotConstructed = errors.New(
	"SettleCommissionsCommand must be created via NewSettleCommissionsCommand constructor",
)

// SettleCommissionsCommand represents an operator paying out a courier's
// pending commissions.
type SettleCommissionsCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	caller    kernel.Actor

	guard guard.ConstructorGuard
}

// NewSettleCommissionsCommand creates a command to settle a courier's
// pending commissions. Only admins may settle.
func NewSettleCommissionsCommand(courierID kernel.UUID, caller kernel.Actor) (SettleCommissionsCommand, error) {
	cmd := SettleCommissionsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCourierID(courierID),
		cmd.setCaller(caller),
	); err != nil {
		return SettleCommissionsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SettleCommissionsCommand) Validate() error {
	return c.guard.Validate(ErrSettleCommissionsCommandIsNotConstructed)
}

// CourierID returns the courier being paid out.
func (c SettleCommissionsCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Caller returns the acting party.
func (c SettleCommissionsCommand) Caller() kernel.Actor {
	return c.caller
}

func (c *SettleCommissionsCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("courier_id", err)
	}

	c.courierID = courierID
	return nil
}

func (c *SettleCommissionsCommand) setCaller(caller kernel.Actor) error {
	if err := caller.Validate(); err != nil {
		return err
	}
	if !caller.IsAdmin() {
		return kernel.NewForbiddenError(caller.Role(), "may not settle commissions")
	}

	c.caller = caller
	return nil
}
