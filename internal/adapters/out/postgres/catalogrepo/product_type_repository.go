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

// GormProductTypeRepository implements ports.ProductTypeRepository using GORM.
// Allowed attributes live in product_type_attributes.
type GormProductTypeRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormProductTypeRepository(db *gorm.DB, tracker aggregateTracker) *GormProductTypeRepository {
	return &GormProductTypeRepository{db: db, tracker: tracker}
}

func (r *GormProductTypeRepository) AddAttribute(ctx context.Context, attribute *catalog.Attribute) error {
	if err := attribute.Validate(); err != nil {
		return err
	}

	dto := attributeFromDomain(attribute)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgutil.MapWriteError(err, "attribute", dto.Slug)
	}
	return nil
}

func (r *GormProductTypeRepository) FindAttributeBySlug(ctx context.Context, slug string) (*catalog.Attribute, error) {
	var dto AttributeDTO
	if err := r.db.WithContext(ctx).First(&dto, "slug = ?", slug).Error; err != nil {
		return nil, pgutil.MapReadError(err, "attribute", slug)
	}
	return attributeToDomain(dto)
}

func (r *GormProductTypeRepository) Add(ctx context.Context, productType *catalog.ProductType) error {
	if err := productType.Validate(); err != nil {
		return err
	}

	dto := ProductTypeDTO{ID: productType.ID().Bytes(), Name: productType.Name()}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgutil.MapWriteError(err, "product type", dto.Name)
	}
	if err := r.linkAttributes(ctx, productType); err != nil {
		return err
	}

	r.tracker.TrackAggregate(productType.ID(), productType)
	return nil
}

func (r *GormProductTypeRepository) Update(ctx context.Context, productType *catalog.ProductType) error {
	if err := productType.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&ProductTypeDTO{}).
		Where("id = ?", productType.ID().Bytes()).
		Update("name", productType.Name())
	if result.Error != nil {
		return pgutil.MapWriteError(result.Error, "product type", productType.Name())
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	if err := r.linkAttributes(ctx, productType); err != nil {
		return err
	}

	r.tracker.TrackAggregate(productType.ID(), productType)
	return nil
}

// linkAttributes inserts missing links; attributes are never unlinked here.
func (r *GormProductTypeRepository) linkAttributes(ctx context.Context, productType *catalog.ProductType) error {
	attrs := productType.AllowedAttributes()
	if len(attrs) == 0 {
		return nil
	}
	links := make([]ProductTypeAttributeDTO, 0, len(attrs))
	for _, a := range attrs {
		links = append(links, ProductTypeAttributeDTO{
			ProductTypeID: productType.ID().Bytes(),
			AttributeID:   a.ID().Bytes(),
		})
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
}

func (r *GormProductTypeRepository) Get(ctx context.Context, id kernel.UUID) (*catalog.ProductType, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProductTypeDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgutil.MapReadError(err, "product type", id.String())
	}
	return r.load(ctx, dto)
}

func (r *GormProductTypeRepository) FindByName(ctx context.Context, name string) (*catalog.ProductType, error) {
	var dto ProductTypeDTO
	if err := r.db.WithContext(ctx).First(&dto, "name = ?", name).Error; err != nil {
		return nil, pgutil.MapReadError(err, "product type", name)
	}
	return r.load(ctx, dto)
}

func (r *GormProductTypeRepository) load(ctx context.Context, dto ProductTypeDTO) (*catalog.ProductType, error) {
	attrs, err := AllowedAttributes(ctx, r.db, dto.ID)
	if err != nil {
		return nil, err
	}
	dto.Attributes = attrs
	return productTypeToDomain(dto)
}

// AllowedAttributes returns the attributes linked to a product type ordered by name.
func AllowedAttributes(ctx context.Context, db *gorm.DB, productTypeID uuid.UUID) ([]AttributeDTO, error) {
	var attrs []AttributeDTO
	err := db.WithContext(ctx).
		Joins("JOIN product_type_attributes pta ON pta.attribute_id = attributes.id").
		Where("pta.product_type_id = ?", productTypeID).
		Order("attributes.name").
		Find(&attrs).Error
	return attrs, err
}
