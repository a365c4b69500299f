package order

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"hyperlocal/internal/core/domain/model/kernel"

	"hyperlocal/internal/pkg/errs"
	"hyperlocal/internal/pkg/guard"
)

// PaymentType distinguishes cash collected on handoff from prepaid orders.
type PaymentType string

const (
	// PaymentTypeCOD is cash on delivery: payment is collected at physical handoff.
	PaymentTypeCOD PaymentType = "COD"
	// PaymentTypeOnline is prepaid through the payment gateway.
	PaymentTypeOnline PaymentType = "ONLINE"
)

// Validate checks the payment type enumeration.
func (p PaymentType) Validate() error {
	if p != PaymentTypeCOD && p != PaymentTypeOnline {
		return errs.NewValueIsInvalidErrorWithCause("payment_type",
			fmt.Errorf("%q is not a valid payment type", string(p)))
	}
	return nil
}

// PaymentStatus is the opaque settled/unsettled flag on an order.
// It is set at creation and only ever flipped to paid, either by the gateway
// (out of scope) or by a cash-on-delivery handoff.
type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

// Domain errors for order operations.
var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	// ErrInvalidCode is returned when a presented handoff code does not match the
	// order's stored one-time code.
	ErrInvalidCode = errors.New("handoff code does not match")
	// ErrCodeRequired is returned when a delivery confirmation is attempted without
	// presenting a handoff code.
	ErrCodeRequired = errors.New("handoff code is required")
	// ErrCourierAlreadyAssigned is returned when dispatch targets an order that
	// already has a courier attached.
	ErrCourierAlreadyAssigned = errors.New("order already has a courier assigned")
)

// Order is the aggregate root for a single buyer purchase from one shop,
// tracked from placement through delivery or rejection.
//
// Order maintains these invariants:
//   - Status changes follow the role-gated transition table in Status.CanTransition.
//   - Every status change appends exactly one timeline entry.
//   - The product snapshot and the handoff code are immutable after placement.
//   - Only the assigned courier may pick up or deliver the order.
//
// All mutation happens through the methods below; the persistence layer writes
// the resulting state with a conditional update so concurrent writers race
// safely (exactly one wins, the loser observes a conflict and must reload).
type Order struct {
	id        kernel.UUID
	shopID    kernel.UUID
	buyerID   kernel.UUID
	courierID *kernel.UUID

	status   Status
	products []ProductLine

	totalPrice   float64
	deliveryCost float64

	paymentType   PaymentType
	paymentStatus PaymentStatus

	// handoffCode is the per-order one-time code proving physical receipt.
	// Generated once at creation, never rotated.
	handoffCode string

	timeline []TimelineEntry

	createdAt     time.Time
	deliveredAt   *time.Time
	otpVerifiedAt *time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates a freshly placed order in pending status with a generated
// handoff code and the seed timeline entry. The buyer actor identifies the
// purchaser; its ID becomes the order's buyer ID.
//
// The product snapshot is validated and the total price is computed as the sum
// of line subtotals plus the delivery cost.
func NewOrder(
	id kernel.UUID,
	shopID kernel.UUID,
	buyer kernel.Actor,
	products []ProductLine,
	deliveryCost float64,
	paymentType PaymentType,
) (*Order, error) {
	o := &Order{
		status:        StatusPending,
		paymentStatus: PaymentStatusUnpaid,
		createdAt:     time.Now().UTC(),
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setShopID(shopID),
		o.setBuyer(buyer),
		o.setProducts(products),
		o.setDeliveryCost(deliveryCost),
		o.setPaymentType(paymentType),
	); err != nil {
		return nil, err
	}

	o.totalPrice = o.deliveryCost
	for _, line := range o.products {
		o.totalPrice += line.Subtotal()
	}
	o.handoffCode = newHandoffCode()

	seed, err := NewTimelineEntry(StatusPending, buyer, nil)
	if err != nil {
		return nil, err
	}
	o.timeline = []TimelineEntry{seed}

	return o, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage,
// preserving its full state including the timeline. Unlike NewOrder it does
// not generate a handoff code or seed the timeline.
func RestoreOrder(
	id kernel.UUID,
	shopID kernel.UUID,
	buyerID kernel.UUID,
	courierID *kernel.UUID,
	status Status,
	products []ProductLine,
	totalPrice float64,
	deliveryCost float64,
	paymentType PaymentType,
	paymentStatus PaymentStatus,
	handoffCode string,
	timeline []TimelineEntry,
	createdAt time.Time,
	deliveredAt *time.Time,
	otpVerifiedAt *time.Time,
) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setShopID(shopID),
		o.setBuyerID(buyerID),
		o.setStatus(status),
		o.setProducts(products),
		o.setDeliveryCost(deliveryCost),
		o.setPaymentType(paymentType),
	); err != nil {
		return nil, err
	}

	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return nil, err
		}
		cp := *courierID
		o.courierID = &cp
	}

	o.totalPrice = totalPrice
	o.paymentStatus = paymentStatus
	o.handoffCode = handoffCode
	o.timeline = append([]TimelineEntry(nil), timeline...)
	o.createdAt = createdAt
	o.deliveredAt = deliveredAt
	o.otpVerifiedAt = otpVerifiedAt

	return o, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// ShopID returns the selling shop's identifier.
func (o *Order) ShopID() kernel.UUID {
	return o.shopID
}

// BuyerID returns the purchasing buyer's identifier.
func (o *Order) BuyerID() kernel.UUID {
	return o.buyerID
}

// Courier returns the assigned courier's ID, or nil if unassigned.
func (o *Order) Courier() *kernel.UUID {
	return o.courierID
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Products returns a copy of the immutable product snapshot.
func (o *Order) Products() []ProductLine {
	return append([]ProductLine(nil), o.products...)
}

// TotalPrice returns the order total including the delivery cost.
func (o *Order) TotalPrice() float64 {
	return o.totalPrice
}

// DeliveryCost returns the delivery fee charged on the order.
func (o *Order) DeliveryCost() float64 {
	return o.deliveryCost
}

// PaymentType returns COD or ONLINE.
func (o *Order) PaymentType() PaymentType {
	return o.paymentType
}

// PaymentStatus returns the current settled/unsettled flag.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// HandoffCode returns the order's one-time handoff code.
func (o *Order) HandoffCode() string {
	return o.handoffCode
}

// Timeline returns a copy of the append-only audit history.
func (o *Order) Timeline() []TimelineEntry {
	return append([]TimelineEntry(nil), o.timeline...)
}

// CreatedAt returns the placement time.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// DeliveredAt returns the delivery completion time, or nil.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// OtpVerifiedAt returns the moment the handoff code was first verified, or nil.
func (o *Order) OtpVerifiedAt() *time.Time {
	return o.otpVerifiedAt
}

// Accept confirms the order on behalf of the shop (vendor or admin).
func (o *Order) Accept(actor kernel.Actor) error {
	if err := o.requireOwningVendor(actor); err != nil {
		return err
	}
	return o.transition(StatusAccepted, actor, nil)
}

// Reject declines the order on behalf of the shop (vendor or admin).
// A non-empty reason is recorded in the timeline entry's metadata.
func (o *Order) Reject(actor kernel.Actor, reason string) error {
	if err := o.requireOwningVendor(actor); err != nil {
		return err
	}
	var meta map[string]any
	if reason != "" {
		meta = map[string]any{"reason": reason}
	}
	return o.transition(StatusRejected, actor, meta)
}

// MarkReady records that the shop prepared the order for pickup.
func (o *Order) MarkReady(actor kernel.Actor) error {
	if err := o.requireOwningVendor(actor); err != nil {
		return err
	}
	return o.transition(StatusReady, actor, nil)
}

// AssignCourier attaches a courier and moves the order to assigned.
// Only dispatch (admin) may do this, and only while no courier is attached;
// the persistence layer additionally guards the write with a
// courier-is-null precondition so racing dispatchers cannot both win.
func (o *Order) AssignCourier(actor kernel.Actor, courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if o.courierID != nil {
		return ErrCourierAlreadyAssigned
	}

	err := o.transition(StatusAssigned, actor, map[string]any{
		"courier_id": courierID.String(),
	})
	if err != nil {
		return err
	}

	o.courierID = &courierID
	return nil
}

// PickUp records the courier collecting the order from the shop.
//
// Presenting the handoff code at pickup is optional: an empty code lets the
// transition proceed unverified (annotated as such in the timeline), while a
// presented code must match exactly or the call fails with ErrInvalidCode.
func (o *Order) PickUp(actor kernel.Actor, code string) error {
	if err := o.requireAssignedCourier(actor); err != nil {
		return err
	}

	verified := false
	if code != "" {
		if code != o.handoffCode {
			return ErrInvalidCode
		}
		verified = true
	}

	err := o.transition(StatusPickedUp, actor, map[string]any{
		"otp_verified": verified,
	})
	if err != nil {
		return err
	}

	if verified && o.otpVerifiedAt == nil {
		now := time.Now().UTC()
		o.otpVerifiedAt = &now
	}
	return nil
}

// Deliver records the final handoff to the buyer. The handoff code is
// mandatory here: a missing code fails with ErrCodeRequired and a mismatch
// with ErrInvalidCode, leaving the order unchanged.
//
// On success the delivery time is set and, for cash-on-delivery orders, the
// payment status flips to paid: cash collected at physical handoff is
// assumed, not separately confirmed.
func (o *Order) Deliver(actor kernel.Actor, code string) error {
	if err := o.requireAssignedCourier(actor); err != nil {
		return err
	}

	if code == "" {
		return ErrCodeRequired
	}
	if code != o.handoffCode {
		return ErrInvalidCode
	}

	err := o.transition(StatusDelivered, actor, map[string]any{
		"otp_verified": true,
	})
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if o.otpVerifiedAt == nil {
		o.otpVerifiedAt = &now
	}
	o.deliveredAt = &now
	if o.paymentType == PaymentTypeCOD {
		o.paymentStatus = PaymentStatusPaid
	}
	return nil
}

// transition validates the requested edge against the transition table and,
// on success, applies the status change together with exactly one derived
// timeline entry. All checks happen before any mutation.
func (o *Order) transition(to Status, actor kernel.Actor, metadata map[string]any) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if err := o.status.CanTransition(to, actor.Role()); err != nil {
		return err
	}

	entry, err := NewTimelineEntry(to, actor, metadata)
	if err != nil {
		return err
	}

	o.status = to
	o.timeline = append(o.timeline, entry)
	return nil
}

// requireOwningVendor rejects vendors acting on another shop's order. A
// vendor actor's ID is its shop ID, so ownership is an exact match against
// the order's shop.
func (o *Order) requireOwningVendor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if actor.Role() != kernel.RoleVendor {
		return nil
	}
	if !o.shopID.IsEqual(actor.ID()) {
		return kernel.NewForbiddenError(actor.Role(), "does not own the shop this order belongs to")
	}
	return nil
}

// requireAssignedCourier rejects couriers acting on orders not assigned to
// them, regardless of the order's status.
func (o *Order) requireAssignedCourier(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if actor.Role() != kernel.RoleCourier {
		return nil
	}
	if o.courierID == nil || !o.courierID.IsEqual(actor.ID()) {
		return kernel.NewForbiddenError(actor.Role(), "is not the courier assigned to this order")
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setShopID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("shop_id", err)
	}
	o.shopID = id
	return nil
}

func (o *Order) setBuyer(buyer kernel.Actor) error {
	if err := buyer.Validate(); err != nil {
		return err
	}
	if buyer.Role() != kernel.RoleBuyer {
		return kernel.NewForbiddenError(buyer.Role(), "cannot place an order")
	}
	o.buyerID = buyer.ID()
	return nil
}

func (o *Order) setBuyerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("buyer_id", err)
	}
	o.buyerID = id
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setProducts(products []ProductLine) error {
	if len(products) == 0 {
		return errs.NewValueIsRequiredError("products")
	}
	for _, line := range products {
		if err := line.Validate(); err != nil {
			return err
		}
	}
	o.products = append([]ProductLine(nil), products...)
	return nil
}

func (o *Order) setDeliveryCost(cost float64) error {
	if cost < 0 {
		return errs.NewValueIsInvalidErrorWithCause("delivery_cost",
			fmt.Errorf("%f is negative", cost))
	}
	o.deliveryCost = cost
	return nil
}

func (o *Order) setPaymentType(paymentType PaymentType) error {
	if err := paymentType.Validate(); err != nil {
		return err
	}
	o.paymentType = paymentType
	return nil
}

// newHandoffCode generates the 4-digit one-time code. The code gates a
// physical handoff, so it comes from the system's secure randomness source.
func newHandoffCode() string {
	var buf [4]byte
	rand.Read(buf[:])
	for i, b := range buf {
		buf[i] = '0' + b%10
	}
	return string(buf[:])
}
