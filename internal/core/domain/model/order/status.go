package order

import (
	"errors"
	"fmt"
	"strings"

	"hyperlocal/internal/core/domain/model/kernel"

	"hyperlocal/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// The string values are part of the persistence and wire contract: they key
// notification routing and commission derivation, so they must not change.
//
// State transitions:
//
//	pending ──┬──> accepted ──┬──> assigned ──┐
//	          │               │               ├──> picked_up ──> delivered
//	          │               └──> ready ─────┘
//	          └──> rejected
//
// Every edge is additionally gated by the caller's role; see CanTransition.
type Status string

const (
	// StatusPending is the initial status set by the checkout flow.
	StatusPending Status = "pending"
	// StatusAccepted means the shop confirmed the order.
	StatusAccepted Status = "accepted"
	// StatusAssigned means a courier has been attached by dispatch.
	StatusAssigned Status = "assigned"
	// StatusReady means the shop prepared the order for pickup.
	StatusReady Status = "ready"
	// StatusPickedUp means the assigned courier collected the order.
	StatusPickedUp Status = "picked_up"
	// StatusDelivered is the successful terminal state.
	StatusDelivered Status = "delivered"
	// StatusRejected is the unsuccessful terminal state.
	StatusRejected Status = "rejected"
)

// ErrInvalidTransition is the sentinel for all transition-table violations.
var ErrInvalidTransition = errors.New("invalid transition")

// InvalidTransitionError reports a requested status change that lies outside
// the transition table, naming the current status and the allowed targets so
// the caller can decide whether its view of the order is stale.
type InvalidTransitionError struct {
	From    Status
	To      Status
	Allowed []Status
}

// NewInvalidTransitionError creates an InvalidTransitionError for the given edge.
func NewInvalidTransitionError(from, to Status, allowed []Status) InvalidTransitionError {
	return InvalidTransitionError{From: from, To: to, Allowed: allowed}
}

func (e InvalidTransitionError) Error() string {
	targets := make([]string, len(e.Allowed))
	for i, s := range e.Allowed {
		targets[i] = string(s)
	}
	return fmt.Sprintf("%s: cannot move order from %q to %q (allowed: [%s])",
		ErrInvalidTransition, e.From, e.To, strings.Join(targets, " "))
}

// Unwrap returns the sentinel so errors.Is(err, ErrInvalidTransition) holds.
func (e InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// statusOrder fixes a deterministic iteration order over statuses for
// building allowed-target lists in error messages.
var statusOrder = []Status{
	StatusPending,
	StatusAccepted,
	StatusAssigned,
	StatusReady,
	StatusPickedUp,
	StatusDelivered,
	StatusRejected,
}

// transitionTable maps current status to the roles permitted to leave it and
// the targets each role may reach. Statuses absent from the table are terminal.
func transitionTable() map[Status]map[kernel.Role][]Status {
	return map[Status]map[kernel.Role][]Status{
		StatusPending: {
			kernel.RoleVendor: {StatusAccepted, StatusRejected},
			kernel.RoleAdmin:  {StatusAccepted, StatusRejected},
		},
		StatusAccepted: {
			kernel.RoleVendor: {StatusReady},
			kernel.RoleAdmin:  {StatusReady, StatusAssigned},
		},
		StatusAssigned: {
			kernel.RoleCourier: {StatusPickedUp},
		},
		StatusReady: {
			kernel.RoleCourier: {StatusPickedUp},
		},
		StatusPickedUp: {
			kernel.RoleCourier: {StatusDelivered},
		},
	}
}

// Validate checks that the Status value is one of the defined lifecycle states.
func (s Status) Validate() error {
	for _, known := range statusOrder {
		if s == known {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid order status", string(s)))
}

// String returns the wire representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether the status admits no further transitions.
// Terminal orders are retained for history and commission derivation,
// never deleted.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusRejected
}

// AllowedNext returns every status reachable from s by any role,
// in deterministic order. An empty slice means s is terminal.
func (s Status) AllowedNext() []Status {
	byRole, ok := transitionTable()[s]
	if !ok {
		return nil
	}

	reachable := make(map[Status]bool)
	for _, targets := range byRole {
		for _, t := range targets {
			reachable[t] = true
		}
	}

	allowed := make([]Status, 0, len(reachable))
	for _, t := range statusOrder {
		if reachable[t] {
			allowed = append(allowed, t)
		}
	}
	return allowed
}

// CanTransition checks whether the given role may move an order from s to the
// target status. Edges outside the table fail with InvalidTransitionError
// regardless of role; edges in the table attempted by the wrong role fail
// with a ForbiddenError.
func (s Status) CanTransition(to Status, role kernel.Role) error {
	if err := to.Validate(); err != nil {
		return err
	}

	allowed := s.AllowedNext()
	edgeExists := false
	for _, t := range allowed {
		if t == to {
			edgeExists = true
			break
		}
	}
	if !edgeExists {
		return NewInvalidTransitionError(s, to, allowed)
	}

	for _, t := range transitionTable()[s][role] {
		if t == to {
			return nil
		}
	}
	return kernel.NewForbiddenError(role, fmt.Sprintf("may not move an order from %q to %q", s, to))
}
