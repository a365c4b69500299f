// Package courierrepo provides data transfer objects and mapping functions for courier persistence.
// This package implements the repository pattern for the courier domain aggregate, handling
// the conversion between domain entities and database representations.
package courierrepo

import (
	"hyperlocal/internal/core/domain/model/courier"
	"hyperlocal/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO represents the database structure for persisting courier aggregates.
// The availability flag is indexed because the dispatch sweep filters on it.
type CourierDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name            string    `gorm:"type:varchar(255);not null"`
	Contact         string    `gorm:"type:varchar(64);not null"`
	LoginCode       string    `gorm:"type:varchar(8);not null"`
	IsAvailable     bool      `gorm:"not null;index"`
	TotalCommission float64   `gorm:"not null"`
}

// TableName specifies the database table name for courier entities.
// Overrides GORM's default naming convention to use "couriers" instead of "courier_dtos".
func (CourierDTO) TableName() string {
	return "couriers"
}

// fromDomain converts a courier domain aggregate to its database representation.
func fromDomain(aggregate *courier.Courier) CourierDTO {
	return CourierDTO{
		ID:              aggregate.ID().Bytes(),
		Name:            aggregate.Name(),
		Contact:         aggregate.Contact(),
		LoginCode:       aggregate.LoginCode(),
		IsAvailable:     aggregate.IsAvailable(),
		TotalCommission: aggregate.TotalCommission(),
	}
}

// toDomain converts a database DTO to a courier domain aggregate using RestoreCourier.
func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return courier.RestoreCourier(id, dto.Name, dto.Contact, dto.LoginCode, dto.IsAvailable, dto.TotalCommission)
}
