package commands

import (
	"errors"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/core/domain/model/order"
	"hyperlocal/internal/pkg/guard"
)

var (
	ErrVerifyHandoffCommandIsNotConstructed = errors.New(
		"VerifyHandoffCommand must be created via NewVerifyHandoffCommand constructor",
	)
	// ErrTargetStatusNotVerifiable is returned for target statuses outside
	// the handoff pair (picked_up, delivered).
	ErrTargetStatusNotVerifiable = errors.New(
		"target status is not a handoff transition",
	)
)

// VerifyHandoffCommand represents a courier app action gated by the order's
// one-time code: collecting from the shop (picked_up) or handing over to the
// buyer (delivered).
type VerifyHandoffCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	code    string
	target  order.Status
	caller  kernel.Actor

	guard guard.ConstructorGuard
}

// NewVerifyHandoffCommand creates a command for a code-gated handoff
// transition. The code may be empty; whether that is acceptable depends on
// the target and is decided by the order aggregate, not here.
func NewVerifyHandoffCommand(
	orderID kernel.UUID,
	code string,
	target order.Status,
	caller kernel.Actor,
) (VerifyHandoffCommand, error) {
	cmd := VerifyHandoffCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTarget(target),
		cmd.setCaller(caller),
	); err != nil {
		return VerifyHandoffCommand{}, err
	}

	cmd.code = code
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c VerifyHandoffCommand) Validate() error {
	return c.guard.Validate(ErrVerifyHandoffCommandIsNotConstructed)
}

// OrderID returns the order being handed off.
func (c VerifyHandoffCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Code returns the presented one-time code, possibly empty.
func (c VerifyHandoffCommand) Code() string {
	return c.code
}

// Target returns picked_up or delivered.
func (c VerifyHandoffCommand) Target() order.Status {
	return c.target
}

// Caller returns the acting courier.
func (c VerifyHandoffCommand) Caller() kernel.Actor {
	return c.caller
}

func (c *VerifyHandoffCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *VerifyHandoffCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if target != order.StatusPickedUp && target != order.StatusDelivered {
		return ErrTargetStatusNotVerifiable
	}

	c.target = target
	return nil
}

func (c *VerifyHandoffCommand) setCaller(caller kernel.Actor) error {
	if err := caller.Validate(); err != nil {
		return err
	}

	c.caller = caller
	return nil
}
