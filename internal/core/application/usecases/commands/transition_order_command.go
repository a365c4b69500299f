package commands

import (
	"errors"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/core/domain/model/order"
	"hyperlocal/internal/pkg/guard"
)

var (
	ErrTransitionOrderCommandIsNotConstructed = errors.New(
		"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
	)
	// ErrTargetStatusNotTransitionable is returned for target statuses that
	// have their own dedicated operations: assignment goes through
	// AssignCourierCommand, pickup and delivery through VerifyHandoffCommand.
	ErrTargetStatusNotTransitionable = errors.New(
		"target status is not reachable via a plain transition",
	)
)

// transitionTargets are the statuses a plain transition request may ask for.
// Everything else is owned by a dedicated command.
var transitionTargets = map[order.Status]bool{
	order.StatusAccepted: true,
	order.StatusRejected: true,
	order.StatusReady:    true,
}

// TransitionOrderCommand represents a vendor or admin console action moving
// an order along its lifecycle: accept, reject (with an optional reason) or
// mark ready.
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	target  order.Status
	reason  string
	caller  kernel.Actor

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand creates a command to move an order to the given
// target status. Only accepted, rejected and ready are valid targets here;
// assignment and handoff have dedicated commands.
func NewTransitionOrderCommand(
	orderID kernel.UUID,
	target order.Status,
	reason string,
	caller kernel.Actor,
) (TransitionOrderCommand, error) {
	cmd := TransitionOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTarget(target),
		cmd.setCaller(caller),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	cmd.reason = reason
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

// OrderID returns the order to transition.
func (c TransitionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested target status.
func (c TransitionOrderCommand) Target() order.Status {
	return c.target
}

// Reason returns the optional rejection reason.
func (c TransitionOrderCommand) Reason() string {
	return c.reason
}

// Caller returns the acting party.
func (c TransitionOrderCommand) Caller() kernel.Actor {
	return c.caller
}

func (c *TransitionOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *TransitionOrderCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if !transitionTargets[target] {
		return ErrTargetStatusNotTransitionable
	}

	c.target = target
	return nil
}

func (c *TransitionOrderCommand) setCaller(caller kernel.Actor) error {
	if err := caller.Validate(); err != nil {
		return err
	}

	c.caller = caller
	return nil
}
