package catalogrepo

import (
	"context"

	"storefront/internal/adapters/out/postgres/pgutil"
	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormCategoryRepository implements ports.CategoryRepository using GORM.
type GormCategoryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormCategoryRepository(db *gorm.DB, tracker aggregateTracker) *GormCategoryRepository {
	return &GormCategoryRepository{db: db, tracker: tracker}
}

func (r *GormCategoryRepository) Add(ctx context.Context, category *catalog.Category) error {
	if err := category.Validate(); err != nil {
		return err
	}

	dto := categoryFromDomain(category)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgutil.MapWriteError(err, "slug", dto.Slug)
	}

	r.tracker.TrackAggregate(category.ID(), category)
	return nil
}

func (r *GormCategoryRepository) Update(ctx context.Context, category *catalog.Category) error {
	if err := category.Validate(); err != nil {
		return err
	}

	dto := categoryFromDomain(category)
	result := r.db.WithContext(ctx).Model(&CategoryDTO{}).Where("id = ?", dto.ID).
		Select("parent_id", "title", "slug", "description", "image", "seo_metadata").
		Updates(&dto)
	if result.Error != nil {
		return pgutil.MapWriteError(result.Error, "slug", dto.Slug)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(category.ID(), category)
	return nil
}

func (r *GormCategoryRepository) Get(ctx context.Context, id kernel.UUID) (*catalog.Category, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CategoryDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgutil.MapReadError(err, "category", id.String())
	}
	return categoryToDomain(dto)
}

func (r *GormCategoryRepository) FindByTitle(ctx context.Context, title string) (*catalog.Category, error) {
	var dto CategoryDTO
	if err := r.db.WithContext(ctx).Order("created_at").First(&dto, "title = ?", title).Error; err != nil {
		return nil, pgutil.MapReadError(err, "category", title)
	}
	return categoryToDomain(dto)
}

func (r *GormCategoryRepository) List(ctx context.Context) ([]*catalog.Category, error) {
	var dtos []CategoryDTO
	if err := r.db.WithContext(ctx).Order("title").Find(&dtos).Error; err != nil {
		return nil, err
	}

	categories := make([]*catalog.Category, 0, len(dtos))
	for _, dto := range dtos {
		c, err := categoryToDomain(dto)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, nil
}

func (r *GormCategoryRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&CategoryDTO{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}
