package queries

import (
	"errors"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/core/domain/model/order"
	"hyperlocal/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery retrieves the caller's slice of the order book, newest
// first, optionally narrowed to one status.
type ListOrdersQuery struct { //nolint:recvcheck //using for validation
	caller kernel.Actor
	status *order.Status

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a role-scoped listing query. A nil status means
// no status filter.
func NewListOrdersQuery(caller kernel.Actor, status *order.Status) (ListOrdersQuery, error) {
	query := ListOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setCaller(caller); err != nil {
		return ListOrdersQuery{}, err
	}
	if status != nil {
		if err := status.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
		filter := *status
		query.status = &filter
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Caller returns the requesting party.
func (q ListOrdersQuery) Caller() kernel.Actor {
	return q.caller
}

// Status returns the optional status filter.
func (q ListOrdersQuery) Status() *order.Status {
	return q.status
}

func (q *ListOrdersQuery) setCaller(caller kernel.Actor) error {
	if err := caller.Validate(); err != nil {
		return err
	}

	q.caller = caller
	return nil
}
