package commands

import (
	"errors"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/pkg/guard"
)

var ErrSetCourierAvailabilityCommandIsNotConstructed = errors.New(
	"SetCourierAvailabilityCommand must be created via NewSetCourierAvailabilityCommand constructor",
)

// SetCourierAvailabilityCommand represents a courier going on or off shift.
type SetCourierAvailabilityCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	available bool
	caller    kernel.Actor

	guard guard.ConstructorGuard
}

// NewSetCourierAvailabilityCommand creates a command to flip a courier's
// availability. Couriers may only flip their own; admins may flip anyone's.
func NewSetCourierAvailabilityCommand(
	courierID kernel.UUID,
	available bool,
	caller kernel.Actor,
) (SetCourierAvailabilityCommand, error) {
	cmd := SetCourierAvailabilityCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCourierID(courierID),
		cmd.setCaller(caller),
	); err != nil {
		return SetCourierAvailabilityCommand{}, err
	}

	if !caller.IsAdmin() && !caller.ID().IsEqual(courierID) {
		return SetCourierAvailabilityCommand{},
			kernel.NewForbiddenError(caller.Role(), "may not change another courier's availability")
	}

	cmd.available = available
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetCourierAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetCourierAvailabilityCommandIsNotConstructed)
}

// CourierID returns the courier whose availability changes.
func (c SetCourierAvailabilityCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Available returns the requested availability.
func (c SetCourierAvailabilityCommand) Available() bool {
	return c.available
}

// Caller returns the acting party.
func (c SetCourierAvailabilityCommand) Caller() kernel.Actor {
	return c.caller
}

func (c *SetCourierAvailabilityCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}

func (c *SetCourierAvailabilityCommand) setCaller(caller kernel.Actor) error {
	if err := caller.Validate(); err != nil {
		return err
	}

	c.caller = caller
	return nil
}
