// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"encoding/json"
	"time"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Product lines and the timeline are stored as JSONB documents: they are
// loaded and saved only as part of the whole aggregate, never queried row
// by row. Status and the party columns carry indexes because every read
// path filters on them.
type OrderDTO struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ShopID        uuid.UUID      `gorm:"type:uuid;not null;index"`
	BuyerID       uuid.UUID      `gorm:"type:uuid;not null;index"`
	CourierID     *uuid.UUID     `gorm:"type:uuid;index"`
	Status        string         `gorm:"type:varchar(32);not null;index"`
	Products      datatypes.JSON `gorm:"type:jsonb;not null"`
	TotalPrice    float64        `gorm:"not null"`
	DeliveryCost  float64        `gorm:"not null"`
	PaymentType   string         `gorm:"type:varchar(16);not null"`
	PaymentStatus string         `gorm:"type:varchar(16);not null"`
	HandoffCode   string         `gorm:"type:varchar(8);not null"`
	Timeline      datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt     time.Time      `gorm:"not null;index"`
	DeliveredAt   *time.Time
	OtpVerifiedAt *time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
// Product lines and timeline entries are serialized to JSONB.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	products, err := json.Marshal(aggregate.Products())
	if err != nil {
		return OrderDTO{}, err
	}

	timeline, err := json.Marshal(aggregate.Timeline())
	if err != nil {
		return OrderDTO{}, err
	}

	var courierID *uuid.UUID
	if id := aggregate.Courier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		ShopID:        aggregate.ShopID().Bytes(),
		BuyerID:       aggregate.BuyerID().Bytes(),
		CourierID:     courierID,
		Status:        aggregate.Status().String(),
		Products:      datatypes.JSON(products),
		TotalPrice:    aggregate.TotalPrice(),
		DeliveryCost:  aggregate.DeliveryCost(),
		PaymentType:   string(aggregate.PaymentType()),
		PaymentStatus: string(aggregate.PaymentStatus()),
		HandoffCode:   aggregate.HandoffCode(),
		Timeline:      datatypes.JSON(timeline),
		CreatedAt:     aggregate.CreatedAt(),
		DeliveredAt:   aggregate.DeliveredAt(),
		OtpVerifiedAt: aggregate.OtpVerifiedAt(),
	}, nil
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including the timeline using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	shopID, err := kernel.UUIDFromBytes(dto.ShopID[:])
	if err != nil {
		return nil, err
	}

	buyerID, err := kernel.UUIDFromBytes(dto.BuyerID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}

		courierID = &cID
	}

	var products []order.ProductLine
	if err = json.Unmarshal(dto.Products, &products); err != nil {
		return nil, err
	}

	var timeline []order.TimelineEntry
	if err = json.Unmarshal(dto.Timeline, &timeline); err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		shopID,
		buyerID,
		courierID,
		order.Status(dto.Status),
		products,
		dto.TotalPrice,
		dto.DeliveryCost,
		order.PaymentType(dto.PaymentType),
		order.PaymentStatus(dto.PaymentStatus),
		dto.HandoffCode,
		timeline,
		dto.CreatedAt,
		dto.DeliveredAt,
		dto.OtpVerifiedAt,
	)
}
