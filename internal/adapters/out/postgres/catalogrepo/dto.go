// Package catalogrepo persists categories, product types, products and variants.
package catalogrepo

import (
	"time"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type AttributeDTO struct {
	ID      uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name    string         `gorm:"size:50;not null"`
	Slug    string         `gorm:"size:50;uniqueIndex;not null"`
	Choices pq.StringArray `gorm:"type:text[]"`
}

func (AttributeDTO) TableName() string { return "attributes" }

type ProductTypeDTO struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name       string         `gorm:"size:100;uniqueIndex;not null"`
	Attributes []AttributeDTO `gorm:"-"`
}

func (ProductTypeDTO) TableName() string { return "product_types" }

// ProductTypeAttributeDTO links a product type to an allowed attribute.
type ProductTypeAttributeDTO struct {
	ProductTypeID uuid.UUID `gorm:"type:uuid;primaryKey"`
	AttributeID   uuid.UUID `gorm:"type:uuid;primaryKey;index"`
}

func (ProductTypeAttributeDTO) TableName() string { return "product_type_attributes" }

type CategoryDTO struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey"`
	ParentID    *uuid.UUID        `gorm:"type:uuid;index"`
	Title       string            `gorm:"size:255;not null"`
	Slug        string            `gorm:"size:255;uniqueIndex;not null"`
	Description string            `gorm:"type:text"`
	Image       string            `gorm:"size:500"`
	SEOMetadata datatypes.JSONMap `gorm:"column:seo_metadata"`
	CreatedAt   time.Time
}

func (CategoryDTO) TableName() string { return "categories" }

// CollectionDTO is a curated, manually ordered product group. Collections are
// maintained by staff and only read by the storefront.
type CollectionDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title       string    `gorm:"size:255;not null"`
	Slug        string    `gorm:"size:255;uniqueIndex;not null"`
	Description string    `gorm:"type:text"`
	Image       string    `gorm:"size:500"`
	IsActive    bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time
}

func (CollectionDTO) TableName() string { return "collections" }

type CollectionProductDTO struct {
	CollectionID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID    uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Position     int       `gorm:"not null;default:0"`
}

func (CollectionProductDTO) TableName() string { return "collection_products" }

type ProductDTO struct {
	ID             uuid.UUID         `gorm:"type:uuid;primaryKey"`
	ProductTypeID  uuid.UUID         `gorm:"type:uuid;index;not null"`
	Status         string            `gorm:"size:20;index;not null"`
	Title          string            `gorm:"size:255;not null"`
	Slug           string            `gorm:"size:255;uniqueIndex;not null"`
	Description    string            `gorm:"type:text"`
	Thumbnail      string            `gorm:"size:500"`
	Specifications datatypes.JSONMap `gorm:"type:jsonb"`
	BasePriceCents int64             `gorm:"not null"`
	Currency       string            `gorm:"size:3;not null"`
	SEOMetadata    datatypes.JSONMap `gorm:"column:seo_metadata"`
	CreatedAt      time.Time         `gorm:"index"`
	UpdatedAt      time.Time
}

func (ProductDTO) TableName() string { return "products" }

type ProductCategoryDTO struct {
	ProductID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	CategoryID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
}

func (ProductCategoryDTO) TableName() string { return "product_categories" }

type VariantDTO struct {
	ID                  uuid.UUID                            `gorm:"type:uuid;primaryKey"`
	ProductID           uuid.UUID                            `gorm:"type:uuid;not null;uniqueIndex:idx_variant_attributes,priority:1"`
	SKU                 string                               `gorm:"column:sku;size:100;uniqueIndex;not null"`
	PriceCents          int64                                `gorm:"not null"`
	CompareAtPriceCents *int64                               `gorm:"column:compare_at_price_cents"`
	Currency            string                               `gorm:"size:3;not null"`
	StockQuantity       int                                  `gorm:"not null;default:0"`
	Image               string                               `gorm:"size:500"`
	Attributes          datatypes.JSONType[map[string]string] `gorm:"uniqueIndex:idx_variant_attributes,priority:2"`
	CreatedAt           time.Time
}

func (VariantDTO) TableName() string { return "product_variants" }

// GalleryImageDTO is an extra product or variant image. VariantID is nil for
// product-level images.
type GalleryImageDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID  `gorm:"type:uuid;index;not null"`
	VariantID *uuid.UUID `gorm:"type:uuid;index"`
	Image     string     `gorm:"size:500;not null"`
	AltText   string     `gorm:"size:255"`
	IsFeature bool       `gorm:"not null;default:false"`
	Position  int        `gorm:"not null;default:0"`
}

func (GalleryImageDTO) TableName() string { return "product_gallery_images" }

func uuidPtr(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func kernelPtr(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	k, err := kernel.UUIDFromGoogle(*id)
	if err != nil {
		return nil, err
	}
	return &k, nil
}

func attributeFromDomain(a *catalog.Attribute) AttributeDTO {
	return AttributeDTO{
		ID:      a.ID().Bytes(),
		Name:    a.Name(),
		Slug:    a.Slug(),
		Choices: pq.StringArray(a.Choices()),
	}
}

func attributeToDomain(dto AttributeDTO) (*catalog.Attribute, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	return catalog.NewAttribute(id, dto.Name, dto.Slug, dto.Choices)
}

func productTypeToDomain(dto ProductTypeDTO) (*catalog.ProductType, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	attrs := make([]*catalog.Attribute, 0, len(dto.Attributes))
	for _, a := range dto.Attributes {
		attr, attrErr := attributeToDomain(a)
		if attrErr != nil {
			return nil, attrErr
		}
		attrs = append(attrs, attr)
	}
	return catalog.NewProductType(id, dto.Name, attrs...)
}

func categoryFromDomain(c *catalog.Category) CategoryDTO {
	return CategoryDTO{
		ID:          c.ID().Bytes(),
		ParentID:    uuidPtr(c.ParentID()),
		Title:       c.Title(),
		Slug:        c.Slug(),
		Description: c.Description(),
		Image:       c.Image(),
		SEOMetadata: datatypes.JSONMap(c.SEOMetadata()),
	}
}

func categoryToDomain(dto CategoryDTO) (*catalog.Category, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	parentID, err := kernelPtr(dto.ParentID)
	if err != nil {
		return nil, err
	}
	return catalog.RestoreCategory(catalog.CategoryState{
		ID:          id,
		ParentID:    parentID,
		Title:       dto.Title,
		Slug:        dto.Slug,
		Description: dto.Description,
		Image:       dto.Image,
		SEOMetadata: dto.SEOMetadata,
	})
}

func productFromDomain(p *catalog.Product) ProductDTO {
	return ProductDTO{
		ID:             p.ID().Bytes(),
		ProductTypeID:  p.ProductTypeID().Bytes(),
		Status:         p.Status().String(),
		Title:          p.Title(),
		Slug:           p.Slug(),
		Description:    p.Description(),
		Thumbnail:      p.Thumbnail(),
		Specifications: datatypes.JSONMap(p.Specifications()),
		BasePriceCents: p.BasePrice().Cents(),
		Currency:       p.BasePrice().Currency(),
		SEOMetadata:    datatypes.JSONMap(p.SEOMetadata()),
	}
}

func productToDomain(dto ProductDTO, categoryIDs []uuid.UUID) (*catalog.Product, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	typeID, err := kernel.UUIDFromGoogle(dto.ProductTypeID)
	if err != nil {
		return nil, err
	}
	status, err := catalog.ParseProductStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoney(dto.BasePriceCents, dto.Currency)
	if err != nil {
		return nil, err
	}
	ids := make([]kernel.UUID, 0, len(categoryIDs))
	for _, raw := range categoryIDs {
		cid, cidErr := kernel.UUIDFromGoogle(raw)
		if cidErr != nil {
			return nil, cidErr
		}
		ids = append(ids, cid)
	}
	return catalog.RestoreProduct(catalog.ProductState{
		ID:             id,
		ProductTypeID:  typeID,
		Status:         status,
		Title:          dto.Title,
		Slug:           dto.Slug,
		Description:    dto.Description,
		Thumbnail:      dto.Thumbnail,
		Specifications: dto.Specifications,
		BasePrice:      price,
		CategoryIDs:    ids,
		SEOMetadata:    dto.SEOMetadata,
	})
}

func variantFromDomain(v *catalog.Variant) VariantDTO {
	var compareAt *int64
	if c := v.CompareAtPrice(); c != nil {
		cents := c.Cents()
		compareAt = &cents
	}
	return VariantDTO{
		ID:                  v.ID().Bytes(),
		ProductID:           v.ProductID().Bytes(),
		SKU:                 v.SKU(),
		PriceCents:          v.Price().Cents(),
		CompareAtPriceCents: compareAt,
		Currency:            v.Price().Currency(),
		StockQuantity:       v.StockQuantity(),
		Image:               v.Image(),
		Attributes:          datatypes.NewJSONType(v.Attributes()),
	}
}

func variantToDomain(dto VariantDTO) (*catalog.Variant, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	productID, err := kernel.UUIDFromGoogle(dto.ProductID)
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoney(dto.PriceCents, dto.Currency)
	if err != nil {
		return nil, err
	}
	var compareAt *kernel.Money
	if dto.CompareAtPriceCents != nil {
		c, cErr := kernel.NewMoney(*dto.CompareAtPriceCents, dto.Currency)
		if cErr != nil {
			return nil, cErr
		}
		compareAt = &c
	}
	return catalog.RestoreVariant(catalog.VariantState{
		ID:             id,
		ProductID:      productID,
		SKU:            dto.SKU,
		Price:          price,
		CompareAtPrice: compareAt,
		StockQuantity:  dto.StockQuantity,
		Image:          dto.Image,
		Attributes:     dto.Attributes.Data(),
	})
}
