package ports

import (
	"context"

	"hyperlocal/internal/core/domain/model/notification"
)

// NotificationRepository defines the persistence contract for fan-out
// notifications. Notifications are write-once; the read flag is the only
// thing that changes afterwards, through the read-path queries.
type NotificationRepository interface {
	// Add persists a new notification.
	Add(ctx context.Context, aggregate *notification.Notification) error
}
