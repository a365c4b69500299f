// Package commissionrepo provides data transfer objects and mapping functions
// for commission ledger persistence.
package commissionrepo

import (
	"time"

	"hyperlocal/internal/core/domain/model/commission"
	"hyperlocal/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// EntryDTO represents the database structure for persisting ledger entries.
// The unique index on OrderID is what makes commission booking idempotent:
// a second insert for the same order conflicts instead of double-booking.
type EntryDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	CourierID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount     float64   `gorm:"not null"`
	PaidStatus string    `gorm:"type:varchar(16);not null"`
	CreatedAt  time.Time `gorm:"not null"`
}

// TableName specifies the database table name for ledger entries.
func (EntryDTO) TableName() string {
	return "commissions"
}

// fromDomain converts a ledger entry to its database representation.
func fromDomain(entry *commission.Entry) EntryDTO {
	return EntryDTO{
		ID:         entry.ID().Bytes(),
		OrderID:    entry.OrderID().Bytes(),
		CourierID:  entry.CourierID().Bytes(),
		Amount:     entry.Amount(),
		PaidStatus: string(entry.PaidStatus()),
		CreatedAt:  entry.CreatedAt(),
	}
}

// toDomain converts a database DTO to a ledger entry using RestoreEntry.
func toDomain(dto EntryDTO) (*commission.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	return commission.RestoreEntry(
		id, orderID, courierID, dto.Amount,
		commission.PaidStatus(dto.PaidStatus), dto.CreatedAt,
	)
}
