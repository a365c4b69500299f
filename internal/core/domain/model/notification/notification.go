package notification

import (
	"errors"
	"time"

	"hyperlocal/internal/core/domain/model/kernel"

	"hyperlocal/internal/pkg/errs"
	"hyperlocal/internal/pkg/guard"
)

// ErrNotificationIsNotConstructed is returned when using an improperly
// initialized Notification.
var ErrNotificationIsNotConstructed = errors.New("Notification must be created via NewNotification constructor")

// Notification is one persisted message produced by the transition fan-out.
// It is addressed either to a single user (receiver ID set) or to everyone
// holding a role (receiver ID nil, a role broadcast).
type Notification struct {
	id           kernel.UUID
	receiverRole kernel.Role
	receiverID   *kernel.UUID
	title        string
	message      string
	metadata     map[string]any
	isRead       bool
	createdAt    time.Time

	guard guard.ConstructorGuard
}

// NewNotification creates an unread notification. A nil receiverID makes it
// a broadcast to every holder of receiverRole.
func NewNotification(
	id kernel.UUID,
	receiverRole kernel.Role,
	receiverID *kernel.UUID,
	title string,
	message string,
	metadata map[string]any,
) (*Notification, error) {
	n := &Notification{
		createdAt: time.Now().UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		n.setID(id),
		n.setReceiver(receiverRole, receiverID),
		n.setTitle(title),
		n.setMessage(message),
	); err != nil {
		return nil, err
	}

	n.metadata = metadata
	return n, nil
}

// RestoreNotification reconstructs a Notification from persistent storage.
func RestoreNotification(
	id kernel.UUID,
	receiverRole kernel.Role,
	receiverID *kernel.UUID,
	title string,
	message string,
	metadata map[string]any,
	isRead bool,
	createdAt time.Time,
) (*Notification, error) {
	n := &Notification{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		n.setID(id),
		n.setReceiver(receiverRole, receiverID),
		n.setTitle(title),
		n.setMessage(message),
	); err != nil {
		return nil, err
	}

	n.metadata = metadata
	n.isRead = isRead
	n.createdAt = createdAt
	return n, nil
}

// Validate ensures the Notification was created through a constructor.
func (n *Notification) Validate() error {
	if n == nil {
		return ErrNotificationIsNotConstructed
	}
	return n.guard.Validate(ErrNotificationIsNotConstructed)
}

// ID returns the notification's unique identifier.
func (n *Notification) ID() kernel.UUID {
	return n.id
}

// ReceiverRole returns the role the notification is addressed to.
func (n *Notification) ReceiverRole() kernel.Role {
	return n.receiverRole
}

// ReceiverID returns the addressed user, or nil for a role broadcast.
func (n *Notification) ReceiverID() *kernel.UUID {
	return n.receiverID
}

// Title returns the short headline.
func (n *Notification) Title() string {
	return n.title
}

// Message returns the notification body.
func (n *Notification) Message() string {
	return n.message
}

// Metadata returns the structured payload attached to the notification.
func (n *Notification) Metadata() map[string]any {
	return n.metadata
}

// IsRead reports whether the receiver has seen the notification.
func (n *Notification) IsRead() bool {
	return n.isRead
}

// CreatedAt returns the fan-out time.
func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}

// MarkRead flags the notification as seen.
func (n *Notification) MarkRead() error {
	if err := n.Validate(); err != nil {
		return err
	}
	n.isRead = true
	return nil
}

func (n *Notification) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	n.id = id
	return nil
}

func (n *Notification) setReceiver(role kernel.Role, receiverID *kernel.UUID) error {
	switch role {
	case kernel.RoleBuyer, kernel.RoleVendor, kernel.RoleAdmin, kernel.RoleCourier, kernel.RoleAll:
	default:
		return errs.NewValueIsInvalidError("receiver_role")
	}
	n.receiverRole = role

	if receiverID != nil {
		if err := receiverID.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("receiver_id", err)
		}
		cp := *receiverID
		n.receiverID = &cp
	}
	return nil
}

func (n *Notification) setTitle(title string) error {
	if title == "" {
		return errs.NewValueIsRequiredError("title")
	}
	n.title = title
	return nil
}

func (n *Notification) setMessage(message string) error {
	if message == "" {
		return errs.NewValueIsRequiredError("message")
	}
	n.message = message
	return nil
}
