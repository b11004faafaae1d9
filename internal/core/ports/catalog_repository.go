package ports

import (
	"context"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
)

// CategoryRepository persists the category tree.
type CategoryRepository interface {
	Add(ctx context.Context, category *catalog.Category) error

	// Update persists title-independent changes, including a new parent.
	Update(ctx context.Context, category *catalog.Category) error

	Get(ctx context.Context, id kernel.UUID) (*catalog.Category, error)

	// FindByTitle returns the category with exactly this title.
	FindByTitle(ctx context.Context, title string) (*catalog.Category, error)

	// List returns every category ordered by title.
	List(ctx context.Context) ([]*catalog.Category, error)

	SlugExists(ctx context.Context, slug string) (bool, error)
}

// ProductTypeRepository persists product types together with their attributes.
type ProductTypeRepository interface {
	AddAttribute(ctx context.Context, attribute *catalog.Attribute) error
	FindAttributeBySlug(ctx context.Context, slug string) (*catalog.Attribute, error)

	Add(ctx context.Context, productType *catalog.ProductType) error

	// Update synchronises the allowed attribute links.
	Update(ctx context.Context, productType *catalog.ProductType) error

	Get(ctx context.Context, id kernel.UUID) (*catalog.ProductType, error)
	FindByName(ctx context.Context, name string) (*catalog.ProductType, error)
}

// ProductRepository persists products and their variants.
type ProductRepository interface {
	Add(ctx context.Context, product *catalog.Product) error

	// Update persists product fields and category assignments.
	Update(ctx context.Context, product *catalog.Product) error

	Get(ctx context.Context, id kernel.UUID) (*catalog.Product, error)
	FindBySlug(ctx context.Context, slug string) (*catalog.Product, error)
	SlugExists(ctx context.Context, slug string) (bool, error)

	// ListNewest returns products newest first; limit <= 0 means all.
	ListNewest(ctx context.Context, limit int) ([]*catalog.Product, error)

	AddVariant(ctx context.Context, variant *catalog.Variant) error
	UpdateVariant(ctx context.Context, variant *catalog.Variant) error
	GetVariant(ctx context.Context, id kernel.UUID) (*catalog.Variant, error)
	FindVariantBySKU(ctx context.Context, sku string) (*catalog.Variant, error)
}
