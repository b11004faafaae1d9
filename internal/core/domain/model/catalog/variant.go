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

var ErrVariantIsNotConstructed = errors.New("Variant must be created via NewVariant or RestoreVariant")

// Variant is a purchasable SKU of a product.
type Variant struct {
	id             kernel.UUID
	productID      kernel.UUID
	sku            string
	price          kernel.Money
	compareAtPrice *kernel.Money
	stockQuantity  int
	image          string
	attributes     map[string]string
	guard          guard.ConstructorGuard
}

// VariantState carries persisted variant fields back into the domain.
type VariantState struct {
	ID             kernel.UUID
	ProductID      kernel.UUID
	SKU            string
	Price          kernel.Money
	CompareAtPrice *kernel.Money
	StockQuantity  int
	Image          string
	Attributes     map[string]string
}

// NewVariant creates a variant of product whose attributes satisfy productType.
func NewVariant(
	id kernel.UUID,
	product *Product,
	productType *ProductType,
	sku string,
	price kernel.Money,
	stock int,
	attributes map[string]string,
) (*Variant, error) {
	if err := errors.Join(product.Validate(), productType.Validate()); err != nil {
		return nil, err
	}
	if !product.ProductTypeID().IsEqual(productType.ID()) {
		return nil, errs.NewValueIsInvalidErrorWithCause("product type",
			fmt.Errorf("product %s is not of type %s", product.Slug(), productType.Name()))
	}
	if err := productType.ValidateVariantAttributes(attributes); err != nil {
		return nil, err
	}
	return RestoreVariant(VariantState{
		ID:            id,
		ProductID:     product.ID(),
		SKU:           sku,
		Price:         price,
		StockQuantity: stock,
		Attributes:    attributes,
	})
}

func RestoreVariant(s VariantState) (*Variant, error) {
	v := &Variant{
		price:      s.Price,
		image:      s.Image,
		attributes: maps.Clone(s.Attributes),
		guard:      guard.NewConstructorGuard(),
	}
	if v.attributes == nil {
		v.attributes = map[string]string{}
	}
	if err := errors.Join(
		s.ID.Validate(),
		s.ProductID.Validate(),
		v.setSKU(s.SKU),
		v.SetStock(s.StockQuantity),
		v.SetCompareAtPrice(s.CompareAtPrice),
	); err != nil {
		return nil, err
	}
	v.id = s.ID
	v.productID = s.ProductID
	return v, nil
}

func (v *Variant) Validate() error {
	if v == nil {
		return ErrVariantIsNotConstructed
	}
	return v.guard.Validate(ErrVariantIsNotConstructed)
}

func (v *Variant) ID() kernel.UUID { return v.id }
func (v *Variant) ProductID() kernel.UUID { return v.productID }
func (v *Variant) SKU() string { return v.sku }
func (v *Variant) Price() kernel.Money { return v.price }
func (v *Variant) CompareAtPrice() *kernel.Money { return v.compareAtPrice }
func (v *Variant) StockQuantity() int { return v.stockQuantity }
func (v *Variant) Image() string { return v.image }
func (v *Variant) Attributes() map[string]string { return maps.Clone(v.attributes) }
func (v *Variant) IsInStock() bool { return v.stockQuantity > 0 }

// CanSupply reports whether quantity units are available.
func (v *Variant) CanSupply(quantity int) bool {
	return quantity <= v.stockQuantity
}

// SalePricing returns the regular price and, when a higher compare-at price exists,
// the discounted sale price.
func (v *Variant) SalePricing() (regular kernel.Money, sale *kernel.Money) {
	if v.compareAtPrice != nil && v.compareAtPrice.GreaterThan(v.price) {
		price := v.price
		return *v.compareAtPrice, &price
	}
	return v.price, nil
}

// UpdateAttributes replaces attribute values after re-checking them against the type.
func (v *Variant) UpdateAttributes(productType *ProductType, attributes map[string]string) error {
	if err := productType.Validate(); err != nil {
		return err
	}
	if err := productType.ValidateVariantAttributes(attributes); err != nil {
		return err
	}
	v.attributes = maps.Clone(attributes)
	return nil
}

func (v *Variant) SetPrice(price kernel.Money) {
	v.price = price
}

func (v *Variant) SetCompareAtPrice(price *kernel.Money) error {
	if price == nil {
		v.compareAtPrice = nil
		return nil
	}
	if price.Currency() != v.price.Currency() {
		return errs.NewValueIsInvalidErrorWithCause("compare at price", kernel.ErrCurrencyMismatch)
	}
	p := *price
	v.compareAtPrice = &p
	return nil
}

func (v *Variant) SetStock(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsOutOfRangeError("stock quantity", quantity, 0, "unbounded")
	}
	v.stockQuantity = quantity
	return nil
}

func (v *Variant) SetImage(path string) {
	v.image = path
}

func (v *Variant) setSKU(sku string) error {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return errs.NewValueIsRequiredError("sku")
	}
	v.sku = sku
	return nil
}
