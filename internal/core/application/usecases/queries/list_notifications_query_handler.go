package queries

import (
	"context"
	"encoding/json"

	"hyperlocal/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListNotificationsQueryHandler retrieves the caller's notification feed.
// A row matches when it is addressed to the caller's ID or broadcast to the
// caller's role (or to every role), newest first.
type ListNotificationsQueryHandler struct {
	db *gorm.DB
}

// NewListNotificationsQueryHandler creates a handler for feed retrieval.
func NewListNotificationsQueryHandler(db *gorm.DB) ListNotificationsQueryHandler {
	return ListNotificationsQueryHandler{db: db}
}

// Handle executes the feed query.
func (h ListNotificationsQueryHandler) Handle(
	ctx context.Context, query ListNotificationsQuery,
) ([]NotificationResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	caller := query.Caller()

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, receiver_role, receiver_id, title, message, metadata, is_read, created_at
		FROM notifications
		WHERE receiver_id = ?
		   OR (receiver_id IS NULL AND receiver_role IN (?, ?))
		ORDER BY created_at DESC`,
		caller.ID().Bytes(), string(caller.Role()), string(kernel.RoleAll),
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := make([]NotificationResponse, 0)
	for rows.Next() {
		response, scanErr := scanNotificationRow(rows.Scan)
		if scanErr != nil {
			return nil, scanErr
		}
		responses = append(responses, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}

func scanNotificationRow(scan func(dest ...any) error) (NotificationResponse, error) {
	var (
		id         uuid.UUID
		receiverID *uuid.UUID
		metadata   []byte
		response   NotificationResponse
	)

	if err := scan(
		&id, &response.ReceiverRole, &receiverID,
		&response.Title, &response.Message, &metadata,
		&response.IsRead, &response.CreatedAt,
	); err != nil {
		return NotificationResponse{}, err
	}

	var err error

	response.ID, err = kernel.UUIDFromBytes(id[:])
	if err != nil {
		return NotificationResponse{}, err
	}

	if receiverID != nil {
		receiver, convErr := kernel.UUIDFromBytes((*receiverID)[:])
		if convErr != nil {
			return NotificationResponse{}, convErr
		}
		response.ReceiverID = &receiver
	}

	if len(metadata) > 0 {
		if err = json.Unmarshal(metadata, &response.Metadata); err != nil {
			return NotificationResponse{}, err
		}
	}

	return response, nil
}
