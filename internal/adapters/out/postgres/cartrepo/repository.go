package cartrepo

import (
	"context"
	"time"

	"storefront/internal/adapters/out/postgres/pgutil"
	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormCartRepository implements ports.CartRepository using GORM.
type GormCartRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormCartRepository(db *gorm.DB, tracker aggregateTracker) *GormCartRepository {
	return &GormCartRepository{db: db, tracker: tracker}
}

func (r *GormCartRepository) Add(ctx context.Context, aggregate *cart.Cart) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgutil.MapWriteError(err, "cart session", dto.SessionKey)
	}
	if err := r.syncItems(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormCartRepository) Update(ctx context.Context, aggregate *cart.Cart) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&CartDTO{}).Where("id = ?", dto.ID).
		Updates(map[string]any{"status": dto.Status, "updated_at": dto.UpdatedAt})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	if err := r.syncItems(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// syncItems deletes lines missing from the aggregate and upserts the rest.
func (r *GormCartRepository) syncItems(ctx context.Context, aggregate *cart.Cart) error {
	items := itemsFromDomain(aggregate)
	keep := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		keep = append(keep, item.ID)
	}

	stale := r.db.WithContext(ctx).Where("cart_id = ?", aggregate.ID().Bytes())
	if len(keep) > 0 {
		stale = stale.Where("id NOT IN ?", keep)
	}
	if err := stale.Delete(&CartItemDTO{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity"}),
	}).Create(&items).Error
}

func (r *GormCartRepository) FindActiveBySessionKey(ctx context.Context, key string) (*cart.Cart, error) {
	return r.findActive(ctx, r.db.WithContext(ctx), key)
}

func (r *GormCartRepository) FindActiveBySessionKeyForUpdate(ctx context.Context, key string) (*cart.Cart, error) {
	return r.findActive(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), key)
}

func (r *GormCartRepository) findActive(ctx context.Context, q *gorm.DB, key string) (*cart.Cart, error) {
	var dto CartDTO
	err := q.Where("session_key = ? AND status = ?", key, cart.StatusActive.String()).First(&dto).Error
	if err != nil {
		return nil, pgutil.MapReadError(err, "cart", key)
	}
	return r.load(ctx, dto)
}

func (r *GormCartRepository) FindLatestBySessionKey(ctx context.Context, key string) (*cart.Cart, error) {
	var dto CartDTO
	err := r.db.WithContext(ctx).Where("session_key = ?", key).
		Order("created_at DESC").First(&dto).Error
	if err != nil {
		return nil, pgutil.MapReadError(err, "cart", key)
	}
	return r.load(ctx, dto)
}

func (r *GormCartRepository) AbandonIdleSince(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&CartDTO{}).
		Where("status = ? AND updated_at < ?", cart.StatusActive.String(), cutoff).
		Updates(map[string]any{"status": cart.StatusAbandoned.String(), "updated_at": time.Now().UTC()})
	return result.RowsAffected, result.Error
}

// Models returns the cart table models.
func Models() []any {
	return []any{&CartDTO{}, &CartItemDTO{}}
}

func (r *GormCartRepository) load(ctx context.Context, dto CartDTO) (*cart.Cart, error) {
	var rows []itemRow
	err := r.db.WithContext(ctx).Table("cart_items ci").
		Select(`ci.id, ci.quantity, v.id AS variant_id, v.sku, v.price_cents, v.currency,
			v.stock_quantity, v.image, v.attributes, p.title AS product_title`).
		Joins("JOIN product_variants v ON v.id = ci.product_variant_id").
		Joins("JOIN products p ON p.id = v.product_id").
		Where("ci.cart_id = ?", dto.ID).
		Order("ci.created_at, ci.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomain(dto, rows)
}
