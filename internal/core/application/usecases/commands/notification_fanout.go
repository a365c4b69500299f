package commands

import (
	"context"
	"fmt"
	"log/slog"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/core/domain/model/notification"
	"hyperlocal/internal/core/domain/model/order"
	"hyperlocal/internal/core/ports"
)

// TransitionNotifier is invoked after every committed transition to tell the
// interested parties. Implementations are best-effort: they never return an
// error and never unwind the transition.
type TransitionNotifier interface {
	NotifyTransition(ctx context.Context, aggregate *order.Order, actor kernel.Actor)
}

// recipient is one addressee of a fan-out: a role, optionally narrowed to a
// single user.
type recipient struct {
	role kernel.Role
	id   *kernel.UUID
}

// Fanout persists and pushes the notifications derived from a committed
// transition. Each transition produces zero or more notifications:
//
//	pending    -> vendor (new order) and admin (audit)
//	accepted   -> buyer
//	ready      -> buyer
//	rejected   -> buyer
//	assigned   -> courier
//	picked_up  -> buyer
//	delivered  -> buyer and admin
//
// Every notification is stored for later retrieval and pushed to the
// realtime channels of its role and, when addressed, its user. Failures are
// logged and swallowed; the transition has already committed and the
// persisted order is the source of truth.
type Fanout struct {
	uowFactory NotificationUoWFactory
	bus        ports.RealtimeBus
	logger     *slog.Logger
}

// NewFanout creates the notification fan-out.
func NewFanout(uowFactory NotificationUoWFactory, bus ports.RealtimeBus, logger *slog.Logger) *Fanout {
	return &Fanout{
		uowFactory: uowFactory,
		bus:        bus,
		logger:     logger.With("component", "notification_fanout"),
	}
}

// NotifyTransition fans the order's latest transition out to its recipients.
func (f *Fanout) NotifyTransition(ctx context.Context, aggregate *order.Order, actor kernel.Actor) {
	timeline := aggregate.Timeline()
	if len(timeline) == 0 {
		return
	}
	latest := timeline[len(timeline)-1]

	for _, to := range f.recipients(aggregate, actor) {
		f.dispatch(ctx, aggregate, latest, to)
	}
}

// recipients derives the addressees of the order's current status.
func (f *Fanout) recipients(aggregate *order.Order, actor kernel.Actor) []recipient {
	buyerID := aggregate.BuyerID()
	shopID := aggregate.ShopID()

	switch aggregate.Status() {
	case order.StatusPending:
		return []recipient{
			{role: kernel.RoleVendor, id: &shopID},
			{role: kernel.RoleAdmin},
		}
	case order.StatusAccepted, order.StatusReady, order.StatusPickedUp, order.StatusRejected:
		return []recipient{{role: kernel.RoleBuyer, id: &buyerID}}
	case order.StatusAssigned:
		if aggregate.Courier() == nil {
			return nil
		}
		return []recipient{{role: kernel.RoleCourier, id: aggregate.Courier()}}
	case order.StatusDelivered:
		return []recipient{
			{role: kernel.RoleBuyer, id: &buyerID},
			{role: kernel.RoleAdmin},
		}
	default:
		f.logger.Warn("no fan-out recipients for status",
			"order_id", aggregate.ID().String(), "status", aggregate.Status().String(),
			"actor_role", string(actor.Role()))
		return nil
	}
}

// dispatch persists one notification and pushes it to the realtime channels
// of its role and user.
func (f *Fanout) dispatch(ctx context.Context, aggregate *order.Order, latest order.TimelineEntry, to recipient) {
	metadata := map[string]any{
		"order_id": aggregate.ID().String(),
		"status":   aggregate.Status().String(),
	}

	persisted, err := notification.NewNotification(
		kernel.NewUUID(), to.role, to.id, latest.Action, latest.Description, metadata)
	if err != nil {
		f.logger.Error("notification construction failed",
			"order_id", aggregate.ID().String(), "receiver_role", string(to.role), "error", err.Error())
		return
	}

	if err = f.persist(ctx, persisted); err != nil {
		f.logger.Error("notification persistence failed",
			"order_id", aggregate.ID().String(), "receiver_role", string(to.role), "error", err.Error())
	}

	payload := map[string]any{
		"id":       persisted.ID().String(),
		"title":    persisted.Title(),
		"message":  persisted.Message(),
		"metadata": metadata,
	}
	f.bus.Publish(fmt.Sprintf("role:%s", to.role), latest.Action, payload)
	if to.id != nil {
		f.bus.Publish(fmt.Sprintf("user:%s", to.id.String()), latest.Action, payload)
	}
}

func (f *Fanout) persist(ctx context.Context, persisted *notification.Notification) error {
	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.NotificationRepository().Add(ctx, persisted); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
