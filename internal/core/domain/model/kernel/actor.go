package kernel

import (
	"errors"
	"fmt"

	"hyperlocal/internal/pkg/errs"
	"hyperlocal/internal/pkg/guard"
)

// Role identifies the kind of caller acting on the system.
// Role values double as notification routing keys, so the string
// representations are part of the persistence and wire contract.
type Role string

const (
	// RoleBuyer is a customer who places orders.
	RoleBuyer Role = "buyer"
	// RoleVendor is a shop owner managing their own shop's orders.
	RoleVendor Role = "vendor"
	// RoleAdmin is a marketplace operator with dispatch authority.
	RoleAdmin Role = "admin"
	// RoleCourier is a delivery agent. The stored value is "delivery"
	// because the same string keys courier-facing notification channels.
	RoleCourier Role = "delivery"
	// RoleAll addresses notifications broadcast to every role.
	// It is a routing value only and never a caller role.
	RoleAll Role = "all"
)

// ErrForbidden is the sentinel for all authorization failures.
var ErrForbidden = errors.New("forbidden")

// ErrActorIsNotConstructed is returned when an Actor was not created via NewActor.
var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// ForbiddenError indicates that the acting role or identity is not permitted
// to perform the attempted operation.
type ForbiddenError struct {
	Role   Role
	Reason string
}

// NewForbiddenError creates a ForbiddenError naming the role and the denied action.
func NewForbiddenError(role Role, reason string) ForbiddenError {
	return ForbiddenError{Role: role, Reason: reason}
}

func (e ForbiddenError) Error() string {
	return fmt.Sprintf("%s: role %q %s", ErrForbidden, e.Role, e.Reason)
}

// Unwrap returns the sentinel so errors.Is(err, ErrForbidden) holds.
func (e ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// Validate checks that the Role is one that can act as a caller.
// RoleAll is excluded: it is a notification routing value, not an identity.
func (r Role) Validate() error {
	switch r {
	case RoleBuyer, RoleVendor, RoleAdmin, RoleCourier:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a caller role", string(r)))
	}
}

// Actor is the explicit caller context that every state-changing operation
// requires. It is resolved once at the request boundary and passed down,
// never re-derived from ambient session state mid-operation.
//
// Actor is an immutable value object; use NewActor to construct it.
type Actor struct { //nolint:recvcheck //using for validation
	role Role
	id   UUID
	name string

	guard guard.ConstructorGuard
}

// NewActor creates a caller context with a validated role, identity and display name.
// For vendors the ID is the shop ID; for couriers the ID is the courier ID.
func NewActor(role Role, id UUID, name string) (Actor, error) {
	actor := Actor{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		actor.setRole(role),
		actor.setID(id),
		actor.setName(name),
	); err != nil {
		return Actor{}, err
	}

	return actor, nil
}

// Validate ensures the Actor was created through NewActor.
func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

// Role returns the caller's role.
func (a Actor) Role() Role {
	return a.role
}

// ID returns the caller's identity.
func (a Actor) ID() UUID {
	return a.id
}

// Name returns the caller's display name, recorded in timeline entries.
func (a Actor) Name() string {
	return a.name
}

// IsAdmin reports whether the caller carries marketplace operator authority.
func (a Actor) IsAdmin() bool {
	return a.role == RoleAdmin
}

func (a *Actor) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	a.role = role
	return nil
}

func (a *Actor) setID(id UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Actor) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	a.name = name
	return nil
}
