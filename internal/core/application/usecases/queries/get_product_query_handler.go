package queries

import (
	"context"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type GetProductQueryHandler struct {
	db *gorm.DB
	categoryReader
}

func NewGetProductQueryHandler(db *gorm.DB, urls services.URLBuilder, seo services.SEOBuilder) GetProductQueryHandler {
	return GetProductQueryHandler{db: db, categoryReader: categoryReader{urls: urls, seo: seo}}
}

func (h GetProductQueryHandler) Handle(ctx context.Context, query GetProductQuery) (ProductDetail, error) {
	if err := query.Validate(); err != nil {
		return ProductDetail{}, err
	}

	db := h.db.WithContext(ctx)
	var products []struct {
		ID              uuid.UUID
		Title           string
		Slug            string
		Status          string
		Description     string
		BasePriceCents  int64
		Currency        string
		Thumbnail       string
		Specifications  datatypes.JSONMap
		SEOMetadata     datatypes.JSONMap `gorm:"column:seo_metadata"`
		ProductTypeID   uuid.UUID
		ProductTypeName string
	}
	err := db.Raw(`
		SELECT p.id, p.title, p.slug, p.status, p.description, p.base_price_cents, p.currency,
			p.thumbnail, p.specifications, p.seo_metadata, pt.id AS product_type_id, pt.name AS product_type_name
		FROM products p
		JOIN product_types pt ON pt.id = p.product_type_id
		WHERE p.slug = ? AND p.status = ?
	`, query.slug, catalog.ProductStatusPublished.String()).Scan(&products).Error
	if err != nil {
		return ProductDetail{}, err
	}
	if len(products) == 0 {
		return ProductDetail{}, errs.NewObjectNotFoundError("product", query.slug)
	}
	p := products[0]

	detail := ProductDetail{
		ID:             p.ID.String(),
		Title:          p.Title,
		Slug:           p.Slug,
		Status:         p.Status,
		Description:    p.Description,
		BasePrice:      formatCents(p.BasePriceCents),
		Thumbnail:      h.urls.Media(p.Thumbnail),
		Specifications: map[string]any(p.Specifications),
		ProductType:    ProductTypeView{ID: p.ProductTypeID.String(), Name: p.ProductTypeName},
		SEOMetadata: h.seo.Product(p.Title, p.Description, p.Thumbnail, p.Slug,
			services.SEOPrice{Amount: formatCents(p.BasePriceCents), Currency: p.Currency}, p.SEOMetadata),
	}
	if detail.Specifications == nil {
		detail.Specifications = map[string]any{}
	}

	if detail.ProductType.AllowedAttributes, err = h.attributes(ctx, p.ProductTypeID); err != nil {
		return ProductDetail{}, err
	}
	if detail.Categories, err = h.categories(ctx, p.ID); err != nil {
		return ProductDetail{}, err
	}
	if detail.Variants, err = h.variants(ctx, p.ID); err != nil {
		return ProductDetail{}, err
	}
	if detail.GalleryImages, err = h.gallery(ctx, p.ID); err != nil {
		return ProductDetail{}, err
	}
	return detail, nil
}

func (h GetProductQueryHandler) attributes(ctx context.Context, productTypeID uuid.UUID) ([]AttributeView, error) {
	var rows []struct {
		ID      uuid.UUID
		Name    string
		Slug    string
		Choices pq.StringArray
	}
	err := h.db.WithContext(ctx).Raw(`
		SELECT a.id, a.name, a.slug, a.choices
		FROM attributes a
		JOIN product_type_attributes pta ON pta.attribute_id = a.id
		WHERE pta.product_type_id = ?
		ORDER BY a.name
	`, productTypeID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]AttributeView, 0, len(rows))
	for _, row := range rows {
		choices := []string(row.Choices)
		if choices == nil {
			choices = []string{}
		}
		out = append(out, AttributeView{ID: row.ID.String(), Name: row.Name, Slug: row.Slug, Choices: choices})
	}
	return out, nil
}

func (h GetProductQueryHandler) categories(ctx context.Context, productID uuid.UUID) ([]CategorySummary, error) {
	var rows []categoryRow
	err := h.db.WithContext(ctx).Raw(`
		SELECT c.id, c.parent_id, c.title, c.slug, c.description, c.image, c.seo_metadata
		FROM categories c
		JOIN product_categories pc ON pc.category_id = c.id
		WHERE pc.product_id = ?
		ORDER BY c.title
	`, productID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]CategorySummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, h.summary(row))
	}
	return out, nil
}

func (h GetProductQueryHandler) variants(ctx context.Context, productID uuid.UUID) ([]VariantView, error) {
	var rows []variantRow
	err := h.db.WithContext(ctx).Raw(`
		SELECT id, sku, price_cents, compare_at_price_cents, stock_quantity, image, attributes
		FROM product_variants
		WHERE product_id = ?
		ORDER BY created_at, sku
	`, productID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]VariantView, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.view(h.urls))
	}
	return out, nil
}

func (h GetProductQueryHandler) gallery(ctx context.Context, productID uuid.UUID) ([]GalleryImageView, error) {
	var rows []struct {
		ID        uuid.UUID
		VariantID *uuid.UUID
		Image     string
		AltText   string
		IsFeature bool
	}
	err := h.db.WithContext(ctx).Raw(`
		SELECT id, variant_id, image, alt_text, is_feature
		FROM product_gallery_images
		WHERE product_id = ?
		ORDER BY position, id
	`, productID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]GalleryImageView, 0, len(rows))
	for _, row := range rows {
		v := GalleryImageView{
			ID:        row.ID.String(),
			Image:     h.urls.Media(row.Image),
			AltText:   row.AltText,
			IsFeature: row.IsFeature,
		}
		if row.VariantID != nil {
			id := row.VariantID.String()
			v.Variant = &id
		}
		out = append(out, v)
	}
	return out, nil
}

// variantRow is a product_variants row as read models need it.
type variantRow struct {
	ID                  uuid.UUID
	SKU                 string `gorm:"column:sku"`
	PriceCents          int64
	CompareAtPriceCents *int64
	StockQuantity       int
	Image               string
	Attributes          datatypes.JSONType[map[string]string]
}

func (row variantRow) view(urls services.URLBuilder) VariantView {
	v := VariantView{
		ID:            row.ID.String(),
		SKU:           row.SKU,
		Price:         formatCents(row.PriceCents),
		StockQuantity: row.StockQuantity,
		IsInStock:     row.StockQuantity > 0,
		Image:         urls.Media(row.Image),
		Attributes:    row.Attributes.Data(),
	}
	if v.Attributes == nil {
		v.Attributes = map[string]string{}
	}
	if row.CompareAtPriceCents != nil {
		s := formatCents(*row.CompareAtPriceCents)
		v.CompareAtPrice = &s
	}
	return v
}
