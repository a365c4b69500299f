// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases and enforce
// the caller's role scope in the query itself: buyers see their own orders,
// vendors their shop's, couriers their assigned ones, admins everything.
package queries

import (
	"encoding/json"
	"time"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderResponse is the order read model shared by the single-order and list
// queries.
type OrderResponse struct {
	ID            kernel.UUID
	ShopID        kernel.UUID
	BuyerID       kernel.UUID
	CourierID     *kernel.UUID
	Status        string
	Products      []order.ProductLine
	TotalPrice    float64
	DeliveryCost  float64
	PaymentType   string
	PaymentStatus string
	HandoffCode   string
	Timeline      []order.TimelineEntry
	CreatedAt     time.Time
	DeliveredAt   *time.Time
}

// orderColumns is the select list every order read shares, in scan order.
const orderColumns = `
	id,
	shop_id,
	buyer_id,
	courier_id,
	status,
	products,
	total_price,
	delivery_cost,
	payment_type,
	payment_status,
	handoff_code,
	timeline,
	created_at,
	delivered_at
`

// scanOrderRow maps one result row onto the read model.
func scanOrderRow(scan func(dest ...any) error) (OrderResponse, error) {
	var (
		response    OrderResponse
		id          uuid.UUID
		shopID      uuid.UUID
		buyerID     uuid.UUID
		courierID   *uuid.UUID
		productsRaw []byte
		timelineRaw []byte
	)

	err := scan(
		&id,
		&shopID,
		&buyerID,
		&courierID,
		&response.Status,
		&productsRaw,
		&response.TotalPrice,
		&response.DeliveryCost,
		&response.PaymentType,
		&response.PaymentStatus,
		&response.HandoffCode,
		&timelineRaw,
		&response.CreatedAt,
		&response.DeliveredAt,
	)
	if err != nil {
		return OrderResponse{}, err
	}

	if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return OrderResponse{}, err
	}
	if response.ShopID, err = kernel.UUIDFromBytes(shopID[:]); err != nil {
		return OrderResponse{}, err
	}
	if response.BuyerID, err = kernel.UUIDFromBytes(buyerID[:]); err != nil {
		return OrderResponse{}, err
	}
	if courierID != nil {
		assigned, idErr := kernel.UUIDFromBytes((*courierID)[:])
		if idErr != nil {
			return OrderResponse{}, idErr
		}
		response.CourierID = &assigned
	}

	if len(productsRaw) > 0 {
		if err = json.Unmarshal(productsRaw, &response.Products); err != nil {
			return OrderResponse{}, err
		}
	}
	if len(timelineRaw) > 0 {
		if err = json.Unmarshal(timelineRaw, &response.Timeline); err != nil {
			return OrderResponse{}, err
		}
	}

	return response, nil
}
