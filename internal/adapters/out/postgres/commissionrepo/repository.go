package commissionrepo

import (
	"context"

	"hyperlocal/internal/core/domain/model/commission"
	"hyperlocal/internal/core/domain/model/kernel"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCommissionRepository implements CommissionRepository using GORM.
type GormCommissionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCommissionRepository creates a new GORM commission repository.
func NewGormCommissionRepository(db *gorm.DB, tracker aggregateTracker) *GormCommissionRepository {
	return &GormCommissionRepository{
		db:      db,
		tracker: tracker,
	}
}

// InsertIfAbsent books the entry unless one already exists for its order.
// Uses ON CONFLICT DO NOTHING on the order_id unique index, so a retried
// delivery never books a second commission. Reports whether a row landed.
func (r *GormCommissionRepository) InsertIfAbsent(
	ctx context.Context, entry *commission.Entry,
) (bool, error) {
	if err := entry.Validate(); err != nil {
		return false, err
	}

	dto := fromDomain(entry)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}},
			DoNothing: true,
		}).
		Create(&dto)
	if result.Error != nil {
		return false, result.Error
	}

	if result.RowsAffected == 0 {
		return false, nil
	}

	r.tracker.TrackAggregate(entry.ID(), entry)
	return true, nil
}

// GetAllByCourier retrieves the courier's ledger entries, newest first.
func (r *GormCommissionRepository) GetAllByCourier(
	ctx context.Context, courierID kernel.UUID,
) ([]*commission.Entry, error) {
	if err := courierID.Validate(); err != nil {
		return nil, err
	}

	var dtos []EntryDTO
	if err := r.db.WithContext(ctx).
		Where("courier_id = ?", courierID.Bytes()).
		Order("created_at DESC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	entries := make([]*commission.Entry, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// MarkAllPaidByCourier settles every unpaid entry of the courier in one
// statement and returns how many entries were settled.
func (r *GormCommissionRepository) MarkAllPaidByCourier(
	ctx context.Context, courierID kernel.UUID,
) (int64, error) {
	if err := courierID.Validate(); err != nil {
		return 0, err
	}

	result := r.db.WithContext(ctx).
		Model(&EntryDTO{}).
		Where("courier_id = ? AND paid_status = ?", courierID.Bytes(), string(commission.PaidStatusUnpaid)).
		Update("paid_status", string(commission.PaidStatusPaid))
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
