package cart

import (
	"maps"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// VariantSnapshot is what a cart line knows about its variant at load time.
type VariantSnapshot struct {
	ID           kernel.UUID
	SKU          string
	ProductTitle string
	Price        kernel.Money
	Stock        int
	Image        string
	Attributes   map[string]string
}

// Item is one cart line.
type Item struct {
	id       kernel.UUID
	variant  VariantSnapshot
	quantity int
}

func RestoreItem(id kernel.UUID, variant VariantSnapshot, quantity int) (*Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := variant.ID.Validate(); err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	variant.Attributes = maps.Clone(variant.Attributes)
	return &Item{id: id, variant: variant, quantity: quantity}, nil
}

func (i *Item) ID() kernel.UUID { return i.id }
func (i *Item) Variant() VariantSnapshot { return i.variant }
func (i *Item) Quantity() int { return i.quantity }

func (i *Item) TotalPrice() kernel.Money {
	return i.variant.Price.Multiply(i.quantity)
}
