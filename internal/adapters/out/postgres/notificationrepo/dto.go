// Package notificationrepo provides data transfer objects and mapping
// functions for notification persistence.
package notificationrepo

import (
	"encoding/json"
	"time"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/core/domain/model/notification"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NotificationDTO represents the database structure for persisting
// notifications. A NULL ReceiverID means the row is a role broadcast.
type NotificationDTO struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ReceiverRole string         `gorm:"type:varchar(16);not null;index"`
	ReceiverID   *uuid.UUID     `gorm:"type:uuid;index"`
	Title        string         `gorm:"type:varchar(255);not null"`
	Message      string         `gorm:"type:text;not null"`
	Metadata     datatypes.JSON `gorm:"type:jsonb"`
	IsRead       bool           `gorm:"not null"`
	CreatedAt    time.Time      `gorm:"not null;index"`
}

// TableName specifies the database table name for notifications.
func (NotificationDTO) TableName() string {
	return "notifications"
}

// fromDomain converts a notification to its database representation.
func fromDomain(aggregate *notification.Notification) (NotificationDTO, error) {
	var metadata datatypes.JSON
	if m := aggregate.Metadata(); m != nil {
		raw, err := json.Marshal(m)
		if err != nil {
			return NotificationDTO{}, err
		}
		metadata = datatypes.JSON(raw)
	}

	var receiverID *uuid.UUID
	if id := aggregate.ReceiverID(); id != nil {
		raw := id.Bytes()
		receiverID = &raw
	}

	return NotificationDTO{
		ID:           aggregate.ID().Bytes(),
		ReceiverRole: string(aggregate.ReceiverRole()),
		ReceiverID:   receiverID,
		Title:        aggregate.Title(),
		Message:      aggregate.Message(),
		Metadata:     metadata,
		IsRead:       aggregate.IsRead(),
		CreatedAt:    aggregate.CreatedAt(),
	}, nil
}

// toDomain converts a database DTO to a notification using RestoreNotification.
func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var receiverID *kernel.UUID
	if dto.ReceiverID != nil {
		rID, receiverErr := kernel.UUIDFromBytes((*dto.ReceiverID)[:])
		if receiverErr != nil {
			return nil, receiverErr
		}
		receiverID = &rID
	}

	var metadata map[string]any
	if len(dto.Metadata) > 0 {
		if err = json.Unmarshal(dto.Metadata, &metadata); err != nil {
			return nil, err
		}
	}

	return notification.RestoreNotification(
		id, kernel.Role(dto.ReceiverRole), receiverID,
		dto.Title, dto.Message, metadata, dto.IsRead, dto.CreatedAt,
	)
}
