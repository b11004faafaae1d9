package trackingrepo

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/tracking"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormConversionEventRepository implements ports.ConversionEventRepository.
type GormConversionEventRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormConversionEventRepository(db *gorm.DB, tracker aggregateTracker) *GormConversionEventRepository {
	return &GormConversionEventRepository{db: db, tracker: tracker}
}

func (r *GormConversionEventRepository) Add(ctx context.Context, event *tracking.ConversionEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}

	dto := fromDomain(event)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(event.ID(), event)
	return nil
}

// Update persists the delivery state.
func (r *GormConversionEventRepository) Update(ctx context.Context, event *tracking.ConversionEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}

	dto := fromDomain(event)
	result := r.db.WithContext(ctx).Model(&ConversionEventDTO{}).Where("id = ?", dto.ID).
		Select("status", "attempts", "last_error", "sent_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(event.ID(), event)
	return nil
}

func (r *GormConversionEventRepository) ClaimPending(ctx context.Context, limit int) ([]*tracking.ConversionEvent, error) {
	var dtos []ConversionEventDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("status = ?", string(tracking.DeliveryPending)).
		Order("created_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	events := make([]*tracking.ConversionEvent, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}
