package order

import (
	"fmt"

	"hyperlocal/internal/pkg/errs"
)

// ProductLine is one item of the product snapshot captured at checkout.
// The snapshot is immutable once the order is placed: it records the name,
// price and quantity as sold, and is never re-derived from the live catalog.
type ProductLine struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Validate checks the snapshot line for structural validity.
func (p ProductLine) Validate() error {
	if p.ProductID == "" {
		return errs.NewValueIsRequiredError("product_id")
	}
	if p.Name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if p.Price < 0 {
		return errs.NewValueIsInvalidErrorWithCause("price",
			fmt.Errorf("%f is negative", p.Price))
	}
	if p.Quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", p.Quantity))
	}
	return nil
}

// Subtotal returns the line's contribution to the order total.
func (p ProductLine) Subtotal() float64 {
	return p.Price * float64(p.Quantity)
}
