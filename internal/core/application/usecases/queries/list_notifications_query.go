package queries

import (
	"errors"
	"time"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/pkg/guard"
)

var ErrListNotificationsQueryIsNotConstructed = errors.New(
	"ListNotificationsQuery must be created via NewListNotificationsQuery constructor",
)

// ListNotificationsQuery retrieves the caller's notification feed: rows
// addressed to them directly plus broadcasts to their role.
type ListNotificationsQuery struct { //nolint:recvcheck //using for validation
	caller kernel.Actor

	guard guard.ConstructorGuard
}

// NewListNotificationsQuery creates a feed query for the given caller.
func NewListNotificationsQuery(caller kernel.Actor) (ListNotificationsQuery, error) {
	if err := caller.Validate(); err != nil {
		return ListNotificationsQuery{}, err
	}

	return ListNotificationsQuery{
		caller: caller,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrListNotificationsQueryIsNotConstructed)
}

// Caller returns the requesting party.
func (q ListNotificationsQuery) Caller() kernel.Actor {
	return q.caller
}

// NotificationResponse is one feed row in the read model.
type NotificationResponse struct {
	ID           kernel.UUID
	ReceiverRole string
	ReceiverID   *kernel.UUID
	Title        string
	Message      string
	Metadata     map[string]any
	IsRead       bool
	CreatedAt    time.Time
}
