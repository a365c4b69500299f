package commands

import (
	"errors"

	"hyperlocal/internal/core/domain/model/courier"
	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/pkg/guard"
)

var ErrRegisterCourierCommandIsNotConstructed = errors.New(
	"RegisterCourierCommand must be created via NewRegisterCourierCommand constructor",
)

// RegisterCourierCommand represents an operator onboarding a new courier.
type RegisterCourierCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	name      string
	contact   string
	caller    kernel.Actor

	guard guard.ConstructorGuard
}

// NewRegisterCourierCommand creates a command to register a courier.
// Only admins may register couriers.
func NewRegisterCourierCommand(
	courierID kernel.UUID,
	name string,
	contact string,
	caller kernel.Actor,
) (RegisterCourierCommand, error) {
	cmd := RegisterCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCourierID(courierID),
		cmd.setName(name),
		cmd.setContact(contact),
		cmd.setCaller(caller),
	); err != nil {
		return RegisterCourierCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterCourierCommand) Validate() error {
	return c.guard.Validate(ErrRegisterCourierCommandIsNotConstructed)
}

// CourierID returns the identifier assigned to the new courier.
func (c RegisterCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Name returns the courier's name.
func (c RegisterCourierCommand) Name() string {
	return c.name
}

// Contact returns the courier's contact address.
func (c RegisterCourierCommand) Contact() string {
	return c.contact
}

// Caller returns the acting party.
func (c RegisterCourierCommand) Caller() kernel.Actor {
	return c.caller
}

func (c *RegisterCourierCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}

func (c *RegisterCourierCommand) setName(name string) error {
	if name == "" {
		return courier.ErrNameIsRequired
	}

	c.name = name
	return nil
}

func (c *RegisterCourierCommand) setContact(contact string) error {
	if contact == "" {
		return courier.ErrContactIsRequired
	}

	c.contact = contact
	return nil
}

func (c *RegisterCourierCommand) setCaller(caller kernel.Actor) error {
	if err := caller.Validate(); err != nil {
		return err
	}
	if !caller.IsAdmin() {
		return kernel.NewForbiddenError(caller.Role(), "may not register couriers")
	}

	c.caller = caller
	return nil
}
