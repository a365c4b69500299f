package commands

import (
	"errors"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/core/domain/model/order"
	"hyperlocal/internal/pkg/errs"
	"hyperlocal/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrProductsAreRequired = errors.New("at least one product line is required")
)

// CreateOrderCommand represents a buyer's checkout request: the shop, the
// product snapshot as sold, the delivery cost and the payment type.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), shopID, buyer, lines, 30, order.PaymentTypeCOD)
//	if err != nil {
//	    return fmt.Errorf("invalid checkout data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, fanout)
//	placed, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	shopID       kernel.UUID
	buyer        kernel.Actor
	products     []order.ProductLine
	deliveryCost float64
	paymentType  order.PaymentType

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates identifiers, the buyer actor, the product snapshot, the delivery
// cost and the payment type. Returns an error if any validation fails.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	shopID kernel.UUID,
	buyer kernel.Actor,
	products []order.ProductLine,
	deliveryCost float64,
	paymentType order.PaymentType,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setShopID(shopID),
		cmd.setBuyer(buyer),
		cmd.setProducts(products),
		cmd.setDeliveryCost(deliveryCost),
		cmd.setPaymentType(paymentType),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier assigned to the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ShopID returns the selling shop's identifier.
func (c CreateOrderCommand) ShopID() kernel.UUID {
	return c.shopID
}

// Buyer returns the purchasing caller.
func (c CreateOrderCommand) Buyer() kernel.Actor {
	return c.buyer
}

// Products returns the product snapshot as sold.
func (c CreateOrderCommand) Products() []order.ProductLine {
	return c.products
}

// DeliveryCost returns the delivery fee for the order.
func (c CreateOrderCommand) DeliveryCost() float64 {
	return c.deliveryCost
}

// PaymentType returns COD or ONLINE.
func (c CreateOrderCommand) PaymentType() order.PaymentType {
	return c.paymentType
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setShopID(shopID kernel.UUID) error {
	if err := shopID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("shop_id", err)
	}

	c.shopID = shopID
	return nil
}

func (c *CreateOrderCommand) setBuyer(buyer kernel.Actor) error {
	if err := buyer.Validate(); err != nil {
		return err
	}

	c.buyer = buyer
	return nil
}

func (c *CreateOrderCommand) setProducts(products []order.ProductLine) error {
	if len(products) == 0 {
		return ErrProductsAreRequired
	}
	for _, line := range products {
		if err := line.Validate(); err != nil {
			return err
		}
	}

	c.products = products
	return nil
}

func (c *CreateOrderCommand) setDeliveryCost(cost float64) error {
	if cost < 0 {
		return errs.NewValueIsInvalidError("delivery_cost")
	}

	c.deliveryCost = cost
	return nil
}

func (c *CreateOrderCommand) setPaymentType(paymentType order.PaymentType) error {
	if err := paymentType.Validate(); err != nil {
		return err
	}

	c.paymentType = paymentType
	return nil
}
