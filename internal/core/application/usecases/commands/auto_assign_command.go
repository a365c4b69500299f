package commands

import (
	"errors"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/pkg/guard"
)

var ErrAutoAssignCommandIsNotConstructed = errors.New(
	"AutoAssignCommand must be created via NewAutoAssignCommand constructor",
)

// AutoAssignCommand represents one dispatch sweep over the unassigned
// backlog, triggered by the scheduler or on demand from the admin console.
type AutoAssignCommand struct { //nolint:recvcheck //using for validation
	caller kernel.Actor

	guard guard.ConstructorGuard
}

// NewAutoAssignCommand creates a command to run one dispatch sweep.
// Only admins may trigger a sweep.
func NewAutoAssignCommand(caller kernel.Actor) (AutoAssignCommand, error) {
	cmd := AutoAssignCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setCaller(caller); err != nil {
		return AutoAssignCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AutoAssignCommand) Validate() error {
	return c.guard.Validate(ErrAutoAssignCommandIsNotConstructed)
}

// Caller returns the acting party.
func (c AutoAssignCommand) Caller() kernel.Actor {
	return c.caller
}

func (c *AutoAssignCommand) setCaller(caller kernel.Actor) error {
	if err := caller.Validate(); err != nil {
		return err
	}
	if !caller.IsAdmin() {
		return kernel.NewForbiddenError(caller.Role(), "may not run the dispatch sweep")
	}

	c.caller = caller
	return nil
}
