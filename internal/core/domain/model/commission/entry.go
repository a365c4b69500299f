package commission

import (
	"errors"
	"fmt"
	"time"

	"hyperlocal/internal/core/domain/model/kernel"

	"hyperlocal/internal/pkg/errs"
	"hyperlocal/internal/pkg/guard"
)

// PaidStatus marks whether an earned commission has been settled with the courier.
type PaidStatus string

const (
	PaidStatusUnpaid PaidStatus = "unpaid"
	PaidStatusPaid   PaidStatus = "paid"
)

// Validate checks the paid status enumeration.
func (p PaidStatus) Validate() error {
	if p != PaidStatusUnpaid && p != PaidStatusPaid {
		return errs.NewValueIsInvalidErrorWithCause("paid_status",
			fmt.Errorf("%q is not a valid paid status", string(p)))
	}
	return nil
}

// ErrEntryIsNotConstructed is returned when using an improperly initialized Entry.
var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry constructor")

// Entry is one commission earned by a courier for one delivered order.
// Exactly one entry exists per delivered order; the order ID is the
// idempotency key enforced by the persistence layer, so a retried delivery
// path never books the commission twice.
type Entry struct {
	id         kernel.UUID
	orderID    kernel.UUID
	courierID  kernel.UUID
	amount     float64
	paidStatus PaidStatus
	createdAt  time.Time

	guard guard.ConstructorGuard
}

// NewEntry books a fresh unpaid commission for the given delivered order.
func NewEntry(id kernel.UUID, orderID kernel.UUID, courierID kernel.UUID, amount float64) (*Entry, error) {
	e := &Entry{
		paidStatus: PaidStatusUnpaid,
		createdAt:  time.Now().UTC(),
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		e.setID(id),
		e.setOrderID(orderID),
		e.setCourierID(courierID),
		e.setAmount(amount),
	); err != nil {
		return nil, err
	}

	return e, nil
}

// RestoreEntry reconstructs an Entry from persistent storage.
func RestoreEntry(
	id kernel.UUID,
	orderID kernel.UUID,
	courierID kernel.UUID,
	amount float64,
	paidStatus PaidStatus,
	createdAt time.Time,
) (*Entry, error) {
	e := &Entry{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		e.setID(id),
		e.setOrderID(orderID),
		e.setCourierID(courierID),
		e.setAmount(amount),
		e.setPaidStatus(paidStatus),
	); err != nil {
		return nil, err
	}

	e.createdAt = createdAt
	return e, nil
}

// Validate ensures the Entry was created through a constructor.
func (e *Entry) Validate() error {
	if e == nil {
		return ErrEntryIsNotConstructed
	}
	return e.guard.Validate(ErrEntryIsNotConstructed)
}

// ID returns the entry's unique identifier.
func (e *Entry) ID() kernel.UUID {
	return e.id
}

// OrderID returns the delivered order this commission was earned for.
func (e *Entry) OrderID() kernel.UUID {
	return e.orderID
}

// CourierID returns the courier who earned the commission.
func (e *Entry) CourierID() kernel.UUID {
	return e.courierID
}

// Amount returns the commission amount.
func (e *Entry) Amount() float64 {
	return e.amount
}

// PaidStatus reports whether the commission has been settled.
func (e *Entry) PaidStatus() PaidStatus {
	return e.paidStatus
}

// CreatedAt returns the booking time.
func (e *Entry) CreatedAt() time.Time {
	return e.createdAt
}

// MarkPaid settles the commission with the courier.
func (e *Entry) MarkPaid() error {
	if err := e.Validate(); err != nil {
		return err
	}
	e.paidStatus = PaidStatusPaid
	return nil
}

func (e *Entry) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Entry) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("order_id", err)
	}
	e.orderID = id
	return nil
}

func (e *Entry) setCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("courier_id", err)
	}
	e.courierID = id
	return nil
}

func (e *Entry) setAmount(amount float64) error {
	if amount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%f is not greater than 0", amount))
	}
	e.amount = amount
	return nil
}

func (e *Entry) setPaidStatus(status PaidStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	e.paidStatus = status
	return nil
}
