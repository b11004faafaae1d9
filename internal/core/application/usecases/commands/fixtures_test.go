package commands_test

import (
	"testing"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

type catalogFixture struct {
	productType *catalog.ProductType
	product     *catalog.Product
	variant     *catalog.Variant
}

func newCatalogFixture(t *testing.T, stock int) catalogFixture {
	t.Helper()
	color, err := catalog.NewAttribute(kernel.NewUUID(), "Color", "color", nil)
	require.NoError(t, err)
	pt, err := catalog.NewProductType(kernel.NewUUID(), "Sculpture", color)
	require.NoError(t, err)
	p, err := catalog.NewProduct(kernel.NewUUID(), pt.ID(), "Bronze Lion", "bronze-lion", kernel.MustMoney(9900, "EUR"))
	require.NoError(t, err)
	p.Publish()
	v, err := catalog.NewVariant(kernel.NewUUID(), p, pt, "LION-1", kernel.MustMoney(9900, "EUR"), stock,
		map[string]string{"color": "Gold"})
	require.NoError(t, err)
	v.SetImage("products/bronze-lion/lion.jpg")
	return catalogFixture{productType: pt, product: p, variant: v}
}

func (f catalogFixture) snapshot() cart.VariantSnapshot {
	return cart.VariantSnapshot{
		ID:           f.variant.ID(),
		SKU:          f.variant.SKU(),
		ProductTitle: f.product.Title(),
		Price:        f.variant.Price(),
		Stock:        f.variant.StockQuantity(),
		Image:        f.variant.Image(),
		Attributes:   f.variant.Attributes(),
	}
}

func newCartWithItem(t *testing.T, key string, f catalogFixture, quantity int) (*cart.Cart, *cart.Item) {
	t.Helper()
	c, err := cart.NewCart(kernel.NewUUID(), key)
	require.NoError(t, err)
	item, err := c.AddItem(f.snapshot(), quantity)
	require.NoError(t, err)
	return c, item
}

func shippingInput() order.AddressInput {
	return order.AddressInput{
		FirstName:    "Jane",
		LastName:     "Doe",
		Email:        "jane@example.com",
		Phone:        "+49 30 1234",
		AddressLine1: "Unter den Linden 1",
		City:         "Berlin",
		PostalCode:   "10117",
		Country:      "DE",
	}
}

func newPendingOrder(t *testing.T, f catalogFixture, key string) *order.Order {
	t.Helper()
	c, _ := newCartWithItem(t, key, f, 2)
	shipping, err := order.NewAddress(kernel.NewUUID(), shippingInput())
	require.NoError(t, err)
	o, err := order.NewOrderFromCart(kernel.NewUUID(), order.NewNumber(c.UpdatedAt()), shipping, nil, c)
	require.NoError(t, err)
	return o
}

func idPtr(id kernel.UUID) *kernel.UUID { return &id }
