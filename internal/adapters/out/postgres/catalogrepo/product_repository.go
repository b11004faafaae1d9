package catalogrepo

import (
	"context"

	"storefront/internal/adapters/out/postgres/pgutil"
	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductRepository implements ports.ProductRepository using GORM.
type GormProductRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormProductRepository(db *gorm.DB, tracker aggregateTracker) *GormProductRepository {
	return &GormProductRepository{db: db, tracker: tracker}
}

func (r *GormProductRepository) Add(ctx context.Context, product *catalog.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}

	dto := productFromDomain(product)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgutil.MapWriteError(err, "slug", dto.Slug)
	}
	if err := r.syncCategories(ctx, product); err != nil {
		return err
	}

	r.tracker.TrackAggregate(product.ID(), product)
	return nil
}

func (r *GormProductRepository) Update(ctx context.Context, product *catalog.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}

	dto := productFromDomain(product)
	result := r.db.WithContext(ctx).Model(&ProductDTO{}).Where("id = ?", dto.ID).
		Select("product_type_id", "status", "title", "slug", "description", "thumbnail",
			"specifications", "base_price_cents", "currency", "seo_metadata", "updated_at").
		Updates(&dto)
	if result.Error != nil {
		return pgutil.MapWriteError(result.Error, "slug", dto.Slug)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	if err := r.syncCategories(ctx, product); err != nil {
		return err
	}

	r.tracker.TrackAggregate(product.ID(), product)
	return nil
}

// syncCategories makes product_categories match the aggregate.
func (r *GormProductRepository) syncCategories(ctx context.Context, product *catalog.Product) error {
	productID := product.ID().Bytes()
	ids := product.CategoryIDs()

	keep := make([]uuid.UUID, 0, len(ids))
	links := make([]ProductCategoryDTO, 0, len(ids))
	for _, id := range ids {
		keep = append(keep, id.Bytes())
		links = append(links, ProductCategoryDTO{ProductID: productID, CategoryID: id.Bytes()})
	}

	stale := r.db.WithContext(ctx).Where("product_id = ?", productID)
	if len(keep) > 0 {
		stale = stale.Where("category_id NOT IN ?", keep)
	}
	if err := stale.Delete(&ProductCategoryDTO{}).Error; err != nil {
		return err
	}
	if len(links) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
}

func (r *GormProductRepository) Get(ctx context.Context, id kernel.UUID) (*catalog.Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProductDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgutil.MapReadError(err, "product", id.String())
	}
	return r.load(ctx, dto)
}

func (r *GormProductRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	var dto ProductDTO
	if err := r.db.WithContext(ctx).First(&dto, "slug = ?", slug).Error; err != nil {
		return nil, pgutil.MapReadError(err, "product", slug)
	}
	return r.load(ctx, dto)
}

func (r *GormProductRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ProductDTO{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *GormProductRepository) ListNewest(ctx context.Context, limit int) ([]*catalog.Product, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC").Order("id")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var dtos []ProductDTO
	if err := q.Find(&dtos).Error; err != nil {
		return nil, err
	}

	products := make([]*catalog.Product, 0, len(dtos))
	for _, dto := range dtos {
		p, err := r.load(ctx, dto)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

func (r *GormProductRepository) load(ctx context.Context, dto ProductDTO) (*catalog.Product, error) {
	var categoryIDs []uuid.UUID
	err := r.db.WithContext(ctx).Model(&ProductCategoryDTO{}).
		Where("product_id = ?", dto.ID).
		Pluck("category_id", &categoryIDs).Error
	if err != nil {
		return nil, err
	}
	return productToDomain(dto, categoryIDs)
}

func (r *GormProductRepository) AddVariant(ctx context.Context, variant *catalog.Variant) error {
	if err := variant.Validate(); err != nil {
		return err
	}

	dto := variantFromDomain(variant)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgutil.MapWriteError(err, "sku", dto.SKU)
	}

	r.tracker.TrackAggregate(variant.ID(), variant)
	return nil
}

func (r *GormProductRepository) UpdateVariant(ctx context.Context, variant *catalog.Variant) error {
	if err := variant.Validate(); err != nil {
		return err
	}

	dto := variantFromDomain(variant)
	result := r.db.WithContext(ctx).Model(&VariantDTO{}).Where("id = ?", dto.ID).
		Select("sku", "price_cents", "compare_at_price_cents", "currency", "stock_quantity", "image", "attributes").
		Updates(&dto)
	if result.Error != nil {
		return pgutil.MapWriteError(result.Error, "sku", dto.SKU)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(variant.ID(), variant)
	return nil
}

func (r *GormProductRepository) GetVariant(ctx context.Context, id kernel.UUID) (*catalog.Variant, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto VariantDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgutil.MapReadError(err, "variant", id.String())
	}
	return variantToDomain(dto)
}

func (r *GormProductRepository) FindVariantBySKU(ctx context.Context, sku string) (*catalog.Variant, error) {
	var dto VariantDTO
	if err := r.db.WithContext(ctx).First(&dto, "sku = ?", sku).Error; err != nil {
		return nil, pgutil.MapReadError(err, "variant", sku)
	}
	return variantToDomain(dto)
}

// Models returns every catalogue table model in migration order.
func Models() []any {
	return []any{
		&AttributeDTO{},
		&ProductTypeDTO{},
		&ProductTypeAttributeDTO{},
		&CategoryDTO{},
		&CollectionDTO{},
		&ProductDTO{},
		&CollectionProductDTO{},
		&ProductCategoryDTO{},
		&VariantDTO{},
		&GalleryImageDTO{},
	}
}
