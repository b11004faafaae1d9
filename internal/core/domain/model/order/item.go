package order

import (
	"maps"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// Item snapshots a purchased variant. It stays meaningful after the variant is
// edited or deleted.
type Item struct {
	id         kernel.UUID
	variantID  *kernel.UUID
	sku        string
	name       string
	attributes map[string]string
	unitPrice  kernel.Money
	quantity   int
	totalPrice kernel.Money
}

// ItemState carries persisted item fields back into the domain.
type ItemState struct {
	ID         kernel.UUID
	VariantID  *kernel.UUID
	SKU        string
	Name       string
	Attributes map[string]string
	UnitPrice  kernel.Money
	Quantity   int
}

func RestoreItem(s ItemState) (*Item, error) {
	if err := s.ID.Validate(); err != nil {
		return nil, err
	}
	if s.Quantity < 1 {
		return nil, errs.NewValueIsOutOfRangeError("quantity", s.Quantity, 1, "unbounded")
	}
	if s.SKU == "" {
		return nil, errs.NewValueIsRequiredError("sku")
	}
	return &Item{
		id:         s.ID,
		variantID:  s.VariantID,
		sku:        s.SKU,
		name:       s.Name,
		attributes: maps.Clone(s.Attributes),
		unitPrice:  s.UnitPrice,
		quantity:   s.Quantity,
		totalPrice: s.UnitPrice.Multiply(s.Quantity),
	}, nil
}

func (i *Item) ID() kernel.UUID { return i.id }
func (i *Item) VariantID() *kernel.UUID { return i.variantID }
func (i *Item) SKU() string { return i.sku }
func (i *Item) Name() string { return i.name }
func (i *Item) Attributes() map[string]string { return maps.Clone(i.attributes) }
func (i *Item) UnitPrice() kernel.Money { return i.unitPrice }
func (i *Item) Quantity() int { return i.quantity }
func (i *Item) TotalPrice() kernel.Money { return i.totalPrice }
