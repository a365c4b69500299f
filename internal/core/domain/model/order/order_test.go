package order_test

import (
	"testing"
	"time"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buyerActor(t *testing.T) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewActor(kernel.RoleBuyer, kernel.NewUUID(), "Asha")
	require.NoError(t, err)
	return actor
}

func vendorActor(t *testing.T) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewActor(kernel.RoleVendor, kernel.NewUUID(), "Corner Store")
	require.NoError(t, err)
	return actor
}

func adminActor(t *testing.T) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewActor(kernel.RoleAdmin, kernel.NewUUID(), "Ops")
	require.NoError(t, err)
	return actor
}

func courierActor(t *testing.T, id kernel.UUID) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewActor(kernel.RoleCourier, id, "Ravi")
	require.NoError(t, err)
	return actor
}

func validProducts() []order.ProductLine {
	return []order.ProductLine{
		{ProductID: "p-1", Name: "Milk 1L", Price: 60, Quantity: 2},
		{ProductID: "p-2", Name: "Bread", Price: 45, Quantity: 1},
	}
}

func newTestOrder(t *testing.T, buyer kernel.Actor) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), buyer,
		validProducts(), 30, order.PaymentTypeCOD)
	require.NoError(t, err)
	return o
}

// vendorFor builds the vendor actor owning the order's shop.
func vendorFor(t *testing.T, o *order.Order) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewActor(kernel.RoleVendor, o.ShopID(), "Corner Store")
	require.NoError(t, err)
	return actor
}

func TestNewOrder(t *testing.T) {
	buyer := buyerActor(t)

	t.Run("should create valid order with all valid parameters", func(t *testing.T) {
		id := kernel.NewUUID()
		shopID := kernel.NewUUID()

		o, err := order.NewOrder(id, shopID, buyer, validProducts(), 30, order.PaymentTypeCOD)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.True(t, o.ShopID().IsEqual(shopID))
		assert.True(t, o.BuyerID().IsEqual(buyer.ID()))
		assert.Nil(t, o.Courier())
		assert.Equal(t, order.StatusPending, o.Status())
		assert.Equal(t, order.PaymentTypeCOD, o.PaymentType())
		assert.Equal(t, order.PaymentStatusUnpaid, o.PaymentStatus())
		assert.InDelta(t, 60*2+45+30, o.TotalPrice(), 0.001)
	})

	t.Run("should generate a 4 digit handoff code", func(t *testing.T) {
		o := newTestOrder(t, buyer)

		require.Len(t, o.HandoffCode(), 4)
		for _, r := range o.HandoffCode() {
			assert.True(t, r >= '0' && r <= '9')
		}
	})

	t.Run("should seed timeline with a pending entry", func(t *testing.T) {
		o := newTestOrder(t, buyer)

		timeline := o.Timeline()
		require.Len(t, timeline, 1)
		assert.Equal(t, order.StatusPending, timeline[0].Status)
		assert.Equal(t, buyer.ID().String(), timeline[0].ActorID)
		assert.Equal(t, "Order Placed", timeline[0].Action)
	})

	t.Run("should fail with empty products", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), buyer,
			nil, 30, order.PaymentTypeCOD)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "products")
	})

	t.Run("should fail with invalid product line", func(t *testing.T) {
		products := []order.ProductLine{{ProductID: "p-1", Name: "Milk", Price: 60, Quantity: 0}}

		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), buyer,
			products, 30, order.PaymentTypeCOD)

		require.Error(t, err)
		assert.Nil(t, o)
	})

	t.Run("should fail with negative delivery cost", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), buyer,
			validProducts(), -1, order.PaymentTypeCOD)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "delivery_cost")
	})

	t.Run("should fail with unknown payment type", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), buyer,
			validProducts(), 30, order.PaymentType("CHEQUE"))

		require.Error(t, err)
		assert.Nil(t, o)
	})

	t.Run("should fail when placed by a non buyer", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), vendorActor(t),
			validProducts(), 30, order.PaymentTypeCOD)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, kernel.ErrForbidden)
	})

	t.Run("zero value order should fail validation", func(t *testing.T) {
		var o order.Order
		assert.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrderVendorFlow(t *testing.T) {
	t.Run("vendor should accept a pending order", func(t *testing.T) {
		o := newTestOrder(t, buyerActor(t))

		err := o.Accept(vendorFor(t, o))

		require.NoError(t, err)
		assert.Equal(t, order.StatusAccepted, o.Status())
		require.Len(t, o.Timeline(), 2)
		assert.Equal(t, "Order Accepted", o.Timeline()[1].Action)
	})

	t.Run("vendor should reject a pending order with a reason", func(t *testing.T) {
		o := newTestOrder(t, buyerActor(t))

		err := o.Reject(vendorFor(t, o), "out of stock")

		require.NoError(t, err)
		assert.Equal(t, order.StatusRejected, o.Status())
		last := o.Timeline()[len(o.Timeline())-1]
		assert.Equal(t, "out of stock", last.Metadata["reason"])
	})

	t.Run("vendor should mark an accepted order ready", func(t *testing.T) {
		o := newTestOrder(t, buyerActor(t))
		vendor := vendorFor(t, o)
		require.NoError(t, o.Accept(vendor))

		err := o.MarkReady(vendor)

		require.NoError(t, err)
		assert.Equal(t, order.StatusReady, o.Status())
	})

	t.Run("accepting an already accepted order should fail and leave state intact", func(t *testing.T) {
		o := newTestOrder(t, buyerActor(t))
		vendor := vendorFor(t, o)
		require.NoError(t, o.Accept(vendor))

		err := o.Accept(vendor)

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.StatusAccepted, o.Status())
		assert.Len(t, o.Timeline(), 2)
	})

	t.Run("buyer may not accept an order", func(t *testing.T) {
		o := newTestOrder(t, buyerActor(t))

		err := o.Accept(buyerActor(t))

		require.Error(t, err)
		assert.ErrorIs(t, err, kernel.ErrForbidden)
		assert.Equal(t, order.StatusPending, o.Status())
	})

	t.Run("a vendor of another shop may not accept", func(t *testing.T) {
		o := newTestOrder(t, buyerActor(t))

		err := o.Accept(vendorActor(t))

		require.Error(t, err)
		assert.ErrorIs(t, err, kernel.ErrForbidden)
		assert.Equal(t, order.StatusPending, o.Status())
		assert.Len(t, o.Timeline(), 1)
	})

	t.Run("a vendor of another shop may not reject", func(t *testing.T) {
		o := newTestOrder(t, buyerActor(t))

		err := o.Reject(vendorActor(t), "not mine")

		require.Error(t, err)
		assert.ErrorIs(t, err, kernel.ErrForbidden)
		assert.Equal(t, order.StatusPending, o.Status())
	})

	t.Run("a vendor of another shop may not mark ready", func(t *testing.T) {
		o := newTestOrder(t, buyerActor(t))
		require.NoError(t, o.Accept(vendorFor(t, o)))

		err := o.MarkReady(vendorActor(t))

		require.Error(t, err)
		assert.ErrorIs(t, err, kernel.ErrForbidden)
		assert.Equal(t, order.StatusAccepted, o.Status())
	})

	t.Run("admin may transition any shop's order", func(t *testing.T) {
		o := newTestOrder(t, buyerActor(t))

		err := o.Accept(adminActor(t))

		require.NoError(t, err)
		assert.Equal(t, order.StatusAccepted, o.Status())
	})
}

func TestOrderAssignCourier(t *testing.T) {
	admin := adminActor(t)

	t.Run("admin should assign a courier to an accepted order", func(t *testing.T) {
		o := newTestOrder(t, buyerActor(t))
		require.NoError(t, o.Accept(vendorFor(t, o)))
		courierID := kernel.NewUUID()

		err := o.AssignCourier(admin, courierID)

		require.NoError(t, err)
		assert.Equal(t, order.StatusAssigned, o.Status())
		require.NotNil(t, o.Courier())
		assert.True(t, o.Courier().IsEqual(courierID))
		last := o.Timeline()[len(o.Timeline())-1]
		assert.Equal(t, courierID.String(), last.Metadata["courier_id"])
	})

	t.Run("should fail when a courier is already attached", func(t *testing.T) {
		o := newTestOrder(t, buyerActor(t))
		require.NoError(t, o.Accept(vendorFor(t, o)))
		require.NoError(t, o.AssignCourier(admin, kernel.NewUUID()))

		err := o.AssignCourier(admin, kernel.NewUUID())

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrCourierAlreadyAssigned)
	})

	t.Run("vendor may not assign a courier", func(t *testing.T) {
		o := newTestOrder(t, buyerActor(t))
		vendor := vendorFor(t, o)
		require.NoError(t, o.Accept(vendor))

		err := o.AssignCourier(vendor, kernel.NewUUID())

		require.Error(t, err)
		assert.ErrorIs(t, err, kernel.ErrForbidden)
		assert.Nil(t, o.Courier())
	})

	t.Run("should fail on a pending order", func(t *testing.T) {
		o := newTestOrder(t, buyerActor(t))

		err := o.AssignCourier(admin, kernel.NewUUID())

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrInvalidTransition)
	})
}

func TestOrderPickUp(t *testing.T) {
	admin := adminActor(t)

	assignedOrder := func(t *testing.T, courierID kernel.UUID) *order.Order {
		t.Helper()
		o := newTestOrder(t, buyerActor(t))
		require.NoError(t, o.Accept(vendorFor(t, o)))
		require.NoError(t, o.AssignCourier(admin, courierID))
		return o
	}

	t.Run("assigned courier should pick up without a code", func(t *testing.T) {
		courierID := kernel.NewUUID()
		o := assignedOrder(t, courierID)

		err := o.PickUp(courierActor(t, courierID), "")

		require.NoError(t, err)
		assert.Equal(t, order.StatusPickedUp, o.Status())
		assert.Nil(t, o.OtpVerifiedAt())
		last := o.Timeline()[len(o.Timeline())-1]
		assert.Equal(t, false, last.Metadata["otp_verified"])
	})

	t.Run("assigned courier should pick up with the correct code", func(t *testing.T) {
		courierID := kernel.NewUUID()
		o := assignedOrder(t, courierID)

		err := o.PickUp(courierActor(t, courierID), o.HandoffCode())

		require.NoError(t, err)
		assert.NotNil(t, o.OtpVerifiedAt())
		last := o.Timeline()[len(o.Timeline())-1]
		assert.Equal(t, true, last.Metadata["otp_verified"])
	})

	t.Run("should fail with a wrong code", func(t *testing.T) {
		courierID := kernel.NewUUID()
		o := assignedOrder(t, courierID)
		wrong := "0000"
		if o.HandoffCode() == wrong {
			wrong = "0001"
		}

		err := o.PickUp(courierActor(t, courierID), wrong)

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrInvalidCode)
		assert.Equal(t, order.StatusAssigned, o.Status())
	})

	t.Run("a different courier may not pick up", func(t *testing.T) {
		o := assignedOrder(t, kernel.NewUUID())

		err := o.PickUp(courierActor(t, kernel.NewUUID()), "")

		require.Error(t, err)
		assert.ErrorIs(t, err, kernel.ErrForbidden)
		assert.Equal(t, order.StatusAssigned, o.Status())
	})

	t.Run("assigned courier should pick up a ready order", func(t *testing.T) {
		courierID := kernel.NewUUID()
		o, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			&courierID, order.StatusReady, validProducts(), 195, 30,
			order.PaymentTypeCOD, order.PaymentStatusUnpaid, "1234",
			nil, time.Now().UTC(), nil, nil)
		require.NoError(t, err)

		err = o.PickUp(courierActor(t, courierID), "")

		require.NoError(t, err)
		assert.Equal(t, order.StatusPickedUp, o.Status())
	})
}

func TestOrderDeliver(t *testing.T) {
	admin := adminActor(t)

	pickedUpOrder := func(t *testing.T, paymentType order.PaymentType) (*order.Order, kernel.Actor) {
		t.Helper()
		courierID := kernel.NewUUID()
		courier := courierActor(t, courierID)
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), buyerActor(t),
			validProducts(), 30, paymentType)
		require.NoError(t, err)
		require.NoError(t, o.Accept(vendorFor(t, o)))
		require.NoError(t, o.AssignCourier(admin, courierID))
		require.NoError(t, o.PickUp(courier, ""))
		return o, courier
	}

	t.Run("courier should deliver with the correct code", func(t *testing.T) {
		o, courier := pickedUpOrder(t, order.PaymentTypeOnline)

		err := o.Deliver(courier, o.HandoffCode())

		require.NoError(t, err)
		assert.Equal(t, order.StatusDelivered, o.Status())
		assert.NotNil(t, o.DeliveredAt())
		assert.NotNil(t, o.OtpVerifiedAt())
		assert.Equal(t, order.PaymentStatusUnpaid, o.PaymentStatus())
	})

	t.Run("cash on delivery should flip to paid on handoff", func(t *testing.T) {
		o, courier := pickedUpOrder(t, order.PaymentTypeCOD)

		err := o.Deliver(courier, o.HandoffCode())

		require.NoError(t, err)
		assert.Equal(t, order.PaymentStatusPaid, o.PaymentStatus())
	})

	t.Run("should fail without a code", func(t *testing.T) {
		o, courier := pickedUpOrder(t, order.PaymentTypeCOD)

		err := o.Deliver(courier, "")

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrCodeRequired)
		assert.Equal(t, order.StatusPickedUp, o.Status())
		assert.Nil(t, o.DeliveredAt())
	})

	t.Run("should fail with a wrong code", func(t *testing.T) {
		o, courier := pickedUpOrder(t, order.PaymentTypeCOD)
		wrong := "0000"
		if o.HandoffCode() == wrong {
			wrong = "0001"
		}

		err := o.Deliver(courier, wrong)

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrInvalidCode)
		assert.Equal(t, order.StatusPickedUp, o.Status())
		assert.Equal(t, order.PaymentStatusUnpaid, o.PaymentStatus())
	})

	t.Run("delivering twice should fail with invalid transition", func(t *testing.T) {
		o, courier := pickedUpOrder(t, order.PaymentTypeCOD)
		require.NoError(t, o.Deliver(courier, o.HandoffCode()))
		firstDeliveredAt := o.DeliveredAt()

		err := o.Deliver(courier, o.HandoffCode())

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, firstDeliveredAt, o.DeliveredAt())
	})

	t.Run("a different courier may not deliver", func(t *testing.T) {
		o, _ := pickedUpOrder(t, order.PaymentTypeCOD)

		err := o.Deliver(courierActor(t, kernel.NewUUID()), o.HandoffCode())

		require.Error(t, err)
		assert.ErrorIs(t, err, kernel.ErrForbidden)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should restore a persisted order verbatim", func(t *testing.T) {
		id := kernel.NewUUID()
		shopID := kernel.NewUUID()
		buyerID := kernel.NewUUID()
		courierID := kernel.NewUUID()
		createdAt := time.Now().UTC().Add(-time.Hour)
		deliveredAt := time.Now().UTC()
		timeline := []order.TimelineEntry{{
			Status: order.StatusPending, Action: "Order Placed",
			Description: "Order has been placed", Timestamp: createdAt,
			ActorRole: kernel.RoleBuyer, ActorID: buyerID.String(), ActorName: "Asha",
		}}

		o, err := order.RestoreOrder(id, shopID, buyerID, &courierID,
			order.StatusDelivered, validProducts(), 195, 30,
			order.PaymentTypeCOD, order.PaymentStatusPaid, "1234",
			timeline, createdAt, &deliveredAt, &deliveredAt)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.StatusDelivered, o.Status())
		assert.Equal(t, "1234", o.HandoffCode())
		assert.InDelta(t, 195, o.TotalPrice(), 0.001)
		assert.True(t, o.Courier().IsEqual(courierID))
		assert.Equal(t, timeline, o.Timeline())
		assert.Equal(t, &deliveredAt, o.DeliveredAt())
	})

	t.Run("should fail with an unknown status", func(t *testing.T) {
		o, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			nil, order.Status("shipped"), validProducts(), 195, 30,
			order.PaymentTypeCOD, order.PaymentStatusUnpaid, "1234",
			nil, time.Now().UTC(), nil, nil)

		require.Error(t, err)
		assert.Nil(t, o)
	})
}
