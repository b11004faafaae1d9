package queries

import (
	"errors"
	"strings"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrGetProductQueryIsNotConstructed = errors.New(
	"GetProductQuery must be created via NewGetProductQuery constructor",
)

// GetProductQuery loads a published product page by slug.
type GetProductQuery struct {
	slug  string
	guard guard.ConstructorGuard
}

func NewGetProductQuery(slug string) (GetProductQuery, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return GetProductQuery{}, errs.NewValueIsRequiredError("slug")
	}
	return GetProductQuery{slug: slug, guard: guard.NewConstructorGuard()}, nil
}

func (q GetProductQuery) Validate() error {
	return q.guard.Validate(ErrGetProductQueryIsNotConstructed)
}

type AttributeView struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Slug    string   `json:"slug"`
	Choices []string `json:"choices"`
}

type ProductTypeView struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	AllowedAttributes []AttributeView `json:"allowed_attributes"`
}

type VariantView struct {
	ID             string            `json:"id"`
	SKU            string            `json:"sku"`
	Price          string            `json:"price"`
	CompareAtPrice *string           `json:"compare_at_price"`
	StockQuantity  int               `json:"stock_quantity"`
	IsInStock      bool              `json:"is_in_stock"`
	Image          string            `json:"image"`
	Attributes     map[string]string `json:"attributes"`
}

type GalleryImageView struct {
	ID        string  `json:"id"`
	Image     string  `json:"image"`
	AltText   string  `json:"alt_text"`
	IsFeature bool    `json:"is_feature"`
	Variant   *string `json:"variant"`
}

// ProductDetail is a product page.
type ProductDetail struct {
	ID             string             `json:"id"`
	Title          string             `json:"title"`
	Slug           string             `json:"slug"`
	Status         string             `json:"status"`
	Description    string             `json:"description"`
	BasePrice      string             `json:"base_price"`
	Thumbnail      string             `json:"thumbnail"`
	Specifications map[string]any     `json:"specifications"`
	ProductType    ProductTypeView    `json:"product_type"`
	Categories     []CategorySummary  `json:"categories"`
	Variants       []VariantView      `json:"variants"`
	GalleryImages  []GalleryImageView `json:"gallery_images"`
	SEOMetadata    map[string]any     `json:"seo_metadata"`
}
