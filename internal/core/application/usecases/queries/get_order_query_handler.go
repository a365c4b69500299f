package queries

import (
	"context"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves one order from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
// The caller's scope is checked against the loaded row: a buyer only sees
// their own orders, a vendor their shop's, a courier their assigned ones.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order retrieval.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ObjectNotFoundError for an unknown
// order and kernel.ForbiddenError when the row exists but lies outside the
// caller's scope.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return OrderResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return OrderResponse{}, err
		}
		return OrderResponse{}, errs.NewObjectNotFoundError("order_id", query.OrderID())
	}

	response, err := scanOrderRow(rows.Scan)
	if err != nil {
		return OrderResponse{}, err
	}

	if err = h.authorize(response, query.Caller()); err != nil {
		return OrderResponse{}, err
	}

	return response, nil
}

func (h GetOrderQueryHandler) authorize(response OrderResponse, caller kernel.Actor) error {
	switch caller.Role() {
	case kernel.RoleAdmin:
		return nil
	case kernel.RoleBuyer:
		if response.BuyerID.IsEqual(caller.ID()) {
			return nil
		}
	case kernel.RoleVendor:
		if response.ShopID.IsEqual(caller.ID()) {
			return nil
		}
	case kernel.RoleCourier:
		if response.CourierID != nil && response.CourierID.IsEqual(caller.ID()) {
			return nil
		}
	}
	return kernel.NewForbiddenError(caller.Role(), "may not view this order")
}
