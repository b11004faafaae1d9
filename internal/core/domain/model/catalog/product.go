package catalog

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct or RestoreProduct")

// Product is the catalogue aggregate shoppers browse. Purchasable units are its
// Variants.
type Product struct {
	id             kernel.UUID
	productTypeID  kernel.UUID
	status         ProductStatus
	title          string
	slug           string
	description    string
	thumbnail      string
	specifications map[string]any
	basePrice      kernel.Money
	categoryIDs    []kernel.UUID
	seoMetadata    map[string]any
	guard          guard.ConstructorGuard
}

// ProductState carries persisted product fields back into the domain.
type ProductState struct {
	ID             kernel.UUID
	ProductTypeID  kernel.UUID
	Status         ProductStatus
	Title          string
	Slug           string
	Description    string
	Thumbnail      string
	Specifications map[string]any
	BasePrice      kernel.Money
	CategoryIDs    []kernel.UUID
	SEOMetadata    map[string]any
}

// NewProduct creates a draft product.
func NewProduct(id, productTypeID kernel.UUID, title, slug string, basePrice kernel.Money) (*Product, error) {
	return RestoreProduct(ProductState{
		ID:            id,
		ProductTypeID: productTypeID,
		Status:        ProductStatusDraft,
		Title:         title,
		Slug:          slug,
		BasePrice:     basePrice,
	})
}

func RestoreProduct(s ProductState) (*Product, error) {
	p := &Product{
		description:    s.Description,
		thumbnail:      s.Thumbnail,
		specifications: maps.Clone(s.Specifications),
		basePrice:      s.BasePrice,
		seoMetadata:    maps.Clone(s.SEOMetadata),
		guard:          guard.NewConstructorGuard(),
	}
	if err := errors.Join(
		s.ID.Validate(),
		s.ProductTypeID.Validate(),
		s.Status.Validate(),
		p.setTitle(s.Title),
		p.setSlug(s.Slug),
	); err != nil {
		return nil, err
	}
	p.id = s.ID
	p.productTypeID = s.ProductTypeID
	p.status = s.Status
	p.AssignCategories(s.CategoryIDs...)
	return p, nil
}

func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}
	return p.guard.Validate(ErrProductIsNotConstructed)
}

func (p *Product) ID() kernel.UUID { return p.id }
func (p *Product) ProductTypeID() kernel.UUID { return p.productTypeID }
func (p *Product) Status() ProductStatus { return p.status }
func (p *Product) Title() string { return p.title }
func (p *Product) Slug() string { return p.slug }
func (p *Product) Description() string { return p.description }
func (p *Product) Thumbnail() string { return p.thumbnail }
func (p *Product) Specifications() map[string]any { return maps.Clone(p.specifications) }
func (p *Product) BasePrice() kernel.Money { return p.basePrice }
func (p *Product) SEOMetadata() map[string]any { return maps.Clone(p.seoMetadata) }
func (p *Product) IsPublished() bool { return p.status == ProductStatusPublished }

func (p *Product) CategoryIDs() []kernel.UUID {
	out := make([]kernel.UUID, len(p.categoryIDs))
	copy(out, p.categoryIDs)
	return out
}

func (p *Product) Publish() {
	p.status = ProductStatusPublished
}

func (p *Product) Archive() {
	p.status = ProductStatusArchived
}

// AssignCategories adds categories the product is not yet in and returns how many
// were added. Existing assignments are kept.
func (p *Product) AssignCategories(ids ...kernel.UUID) int {
	added := 0
	for _, id := range ids {
		if id.Validate() != nil || p.InCategory(id) {
			continue
		}
		p.categoryIDs = append(p.categoryIDs, id)
		added++
	}
	return added
}

func (p *Product) InCategory(id kernel.UUID) bool {
	for _, existing := range p.categoryIDs {
		if existing.IsEqual(id) {
			return true
		}
	}
	return false
}

func (p *Product) SetThumbnail(path string) {
	p.thumbnail = path
}

func (p *Product) SetDescription(description string) {
	p.description = description
}

func (p *Product) SetSpecifications(specs map[string]any) {
	p.specifications = maps.Clone(specs)
}

func (p *Product) SetBasePrice(price kernel.Money) {
	p.basePrice = price
}

func (p *Product) setTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return errs.NewValueIsRequiredError("product title")
	}
	p.title = title
	return nil
}

func (p *Product) setSlug(slug string) error {
	if slug == "" || slug != kernel.Slugify(slug) {
		return errs.NewValueIsInvalidErrorWithCause("product slug", fmt.Errorf("%q is not a slug", slug))
	}
	p.slug = slug
	return nil
}
