package orderrepo

import (
	"context"

	"storefront/internal/adapters/out/postgres/pgutil"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
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

// Add inserts the shipping address, the billing address, the order and then all
// items in one batch. Callers run it inside a unit of work so a failure leaves
// nothing behind.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, shipping, billing, items := fromDomain(aggregate)
	db := r.db.WithContext(ctx)
	if err := db.Create(&shipping).Error; err != nil {
		return err
	}
	if err := db.Create(&billing).Error; err != nil {
		return err
	}
	if err := db.Create(&dto).Error; err != nil {
		return pgutil.MapWriteError(err, "order number", dto.OrderNumber)
	}
	if err := db.Create(&items).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves status and payment fields of an existing order.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, _, _, _ := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).
		Select("status", "is_paid", "stripe_payment_intent_id", "updated_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.find(ctx, r.db.WithContext(ctx).Where("id = ?", id.Bytes()), id.String())
}

// GetForUpdate retrieves an order by ID holding a row lock on it.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	q := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id.Bytes())
	return r.find(ctx, q, id.String())
}

// FindByNumber retrieves an order by its order number.
func (r *GormOrderRepository) FindByNumber(ctx context.Context, number order.Number) (*order.Order, error) {
	q := r.db.WithContext(ctx).Where("order_number = ?", number.String())
	return r.find(ctx, q, number.String())
}

func (r *GormOrderRepository) find(ctx context.Context, q *gorm.DB, key string) (*order.Order, error) {
	var dto OrderDTO
	if err := q.First(&dto).Error; err != nil {
		return nil, pgutil.MapReadError(err, "order", key)
	}

	db := r.db.WithContext(ctx)
	var shipping, billing AddressDTO
	if err := db.First(&shipping, "id = ?", dto.ShippingAddressID).Error; err != nil {
		return nil, err
	}
	if err := db.First(&billing, "id = ?", dto.BillingAddressID).Error; err != nil {
		return nil, err
	}
	var items []OrderItemDTO
	if err := db.Where("order_id = ?", dto.ID).Order("position").Find(&items).Error; err != nil {
		return nil, err
	}

	return toDomain(dto, shipping, billing, items)
}
