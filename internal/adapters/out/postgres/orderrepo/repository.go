package orderrepo

import (
	"context"
	"errors"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/core/domain/model/order"
	"hyperlocal/internal/core/ports"
	"hyperlocal/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
//
// Every mutation of an existing order is a conditional update: the WHERE
// clause carries the status the caller read, and for dispatch and handoff
// also the courier scope. A write that matches zero rows lost a race and
// surfaces ports.ErrConcurrentUpdate.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order_id", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// UpdateIfStatus persists the aggregate if the stored row is still in fromStatus.
func (r *GormOrderRepository) UpdateIfStatus(
	ctx context.Context, aggregate *order.Order, fromStatus order.Status,
) error {
	return r.conditionalUpdate(ctx, aggregate, "id = ? AND status = ?",
		aggregate.ID().Bytes(), fromStatus.String())
}

// UpdateIfUnassigned persists the aggregate if the stored row is still in
// fromStatus and has no courier attached.
func (r *GormOrderRepository) UpdateIfUnassigned(
	ctx context.Context, aggregate *order.Order, fromStatus order.Status,
) error {
	return r.conditionalUpdate(ctx, aggregate, "id = ? AND status = ? AND courier_id IS NULL",
		aggregate.ID().Bytes(), fromStatus.String())
}

// UpdateIfCourier persists the aggregate if the stored row is still in
// fromStatus and assigned to the given courier.
func (r *GormOrderRepository) UpdateIfCourier(
	ctx context.Context, aggregate *order.Order, fromStatus order.Status, courierID kernel.UUID,
) error {
	return r.conditionalUpdate(ctx, aggregate, "id = ? AND status = ? AND courier_id = ?",
		aggregate.ID().Bytes(), fromStatus.String(), courierID.Bytes())
}

// GetAllUnassignedInAcceptedStatus retrieves the dispatch backlog, oldest first.
func (r *GormOrderRepository) GetAllUnassignedInAcceptedStatus(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).
		Where("status = ? AND courier_id IS NULL", order.StatusAccepted.String()).
		Order("created_at ASC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// conditionalUpdate writes the aggregate's mutable columns where the row
// still matches the caller's precondition. Zero affected rows means either
// the order vanished or another writer won; a follow-up existence check
// tells the two apart.
func (r *GormOrderRepository) conditionalUpdate(
	ctx context.Context, aggregate *order.Order, cond string, args ...any,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where(cond, args...).
		Updates(mutableColumns(dto))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err = r.db.WithContext(ctx).
			Model(&OrderDTO{}).
			Where("id = ?", dto.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("order_id", aggregate.ID().String())
		}
		return ports.ErrConcurrentUpdate
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// mutableColumns lists the columns a lifecycle transition may change.
// Identity, pricing and the handoff code are fixed at creation.
func mutableColumns(dto OrderDTO) map[string]any {
	return map[string]any{
		"courier_id":      dto.CourierID,
		"status":          dto.Status,
		"payment_status":  dto.PaymentStatus,
		"timeline":        dto.Timeline,
		"delivered_at":    dto.DeliveredAt,
		"otp_verified_at": dto.OtpVerifiedAt,
	}
}
