package queries

import (
	"errors"
	"time"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/pkg/guard"
)

var ErrGetCourierCommissionsQueryIsNotConstructed = errors.New(
	"GetCourierCommissionsQuery must be created via NewGetCourierCommissionsQuery constructor",
)

// GetCourierCommissionsQuery retrieves a courier's commission ledger with
// paid and pending aggregates. Couriers may only read their own ledger;
// admins anyone's.
type GetCourierCommissionsQuery struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	caller    kernel.Actor

	guard guard.ConstructorGuard
}

// NewGetCourierCommissionsQuery creates a ledger query for the given courier.
func NewGetCourierCommissionsQuery(courierID kernel.UUID, caller kernel.Actor) (GetCourierCommissionsQuery, error) {
	query := GetCourierCommissionsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setCourierID(courierID),
		query.setCaller(caller),
	); err != nil {
		return GetCourierCommissionsQuery{}, err
	}

	if !caller.IsAdmin() && !caller.ID().IsEqual(courierID) {
		return GetCourierCommissionsQuery{},
			kernel.NewForbiddenError(caller.Role(), "may not view another courier's commissions")
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCourierCommissionsQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierCommissionsQueryIsNotConstructed)
}

// CourierID returns the courier whose ledger is requested.
func (q GetCourierCommissionsQuery) CourierID() kernel.UUID {
	return q.courierID
}

// Caller returns the requesting party.
func (q GetCourierCommissionsQuery) Caller() kernel.Actor {
	return q.caller
}

func (q *GetCourierCommissionsQuery) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	q.courierID = courierID
	return nil
}

func (q *GetCourierCommissionsQuery) setCaller(caller kernel.Actor) error {
	if err := caller.Validate(); err != nil {
		return err
	}

	q.caller = caller
	return nil
}

// CommissionEntryResponse is one ledger row in the read model.
type CommissionEntryResponse struct {
	ID         kernel.UUID
	OrderID    kernel.UUID
	Amount     float64
	PaidStatus string
	CreatedAt  time.Time
}

// GetCourierCommissionsQueryResponse is the courier's ledger with its
// aggregates. TotalPaid plus TotalPending always equals the sum of Entries.
type GetCourierCommissionsQueryResponse struct {
	CourierID    kernel.UUID
	Entries      []CommissionEntryResponse
	TotalPaid    float64
	TotalPending float64
}
