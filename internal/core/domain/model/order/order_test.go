package order_test

import (
	"testing"
	"time"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAddressInput() order.AddressInput {
	return order.AddressInput{
		FirstName:    "Jane",
		LastName:     "Doe",
		Email:        "Jane@Example.com",
		Phone:        "+49 30 1234567",
		AddressLine1: "Unter den Linden 1",
		City:         "Berlin",
		PostalCode:   "10117",
		Country:      "de",
	}
}

func filledCart(t *testing.T) *cart.Cart {
	t.Helper()
	c, err := cart.NewCart(kernel.NewUUID(), "cart-key")
	require.NoError(t, err)
	_, err = c.AddItem(cart.VariantSnapshot{
		ID:           kernel.NewUUID(),
		SKU:          "LION-01",
		ProductTitle: "Bronze Lion",
		Price:        kernel.MustMoney(12500, "EUR"),
		Stock:        10,
		Attributes:   map[string]string{"Width": "40"},
	}, 2)
	require.NoError(t, err)
	_, err = c.AddItem(cart.VariantSnapshot{
		ID:           kernel.NewUUID(),
		SKU:          "OWL-01",
		ProductTitle: "Owl",
		Price:        kernel.MustMoney(4999, "EUR"),
		Stock:        1,
	}, 1)
	require.NoError(t, err)
	return c
}

func newPendingOrder(t *testing.T) *order.Order {
	t.Helper()
	shipping, err := order.NewAddress(kernel.NewUUID(), validAddressInput())
	require.NoError(t, err)
	o, err := order.NewOrderFromCart(kernel.NewUUID(), order.NewNumber(time.Now()), shipping, nil, filledCart(t))
	require.NoError(t, err)
	return o
}

func TestNewOrderFromCart(t *testing.T) {
	t.Run("snapshots cart lines", func(t *testing.T) {
		o := newPendingOrder(t)

		require.NoError(t, o.Validate())
		assert.Equal(t, order.Pending, o.Status())
		assert.False(t, o.IsPaid())
		assert.Equal(t, "jane@example.com", o.Email().String())
		assert.Equal(t, "299.99", o.Total().String())
		assert.Equal(t, 3, o.TotalItems())
		assert.Equal(t, "cart-key", o.CartSessionKey())

		items := o.Items()
		require.Len(t, items, 2)
		assert.Equal(t, "LION-01", items[0].SKU())
		assert.Equal(t, "Bronze Lion", items[0].Name())
		assert.Equal(t, "250.00", items[0].TotalPrice().String())
		assert.Equal(t, map[string]string{"Width": "40"}, items[0].Attributes())
	})

	t.Run("billing defaults to a copy of shipping", func(t *testing.T) {
		o := newPendingOrder(t)

		assert.False(t, o.BillingAddress().ID().IsEqual(o.ShippingAddress().ID()))
		assert.Equal(t, o.ShippingAddress().Input(), o.BillingAddress().Input())
	})

	t.Run("explicit billing is kept", func(t *testing.T) {
		shipping, err := order.NewAddress(kernel.NewUUID(), validAddressInput())
		require.NoError(t, err)
		in := validAddressInput()
		in.City = "Hamburg"
		billing, err := order.NewAddress(kernel.NewUUID(), in)
		require.NoError(t, err)

		o, err := order.NewOrderFromCart(kernel.NewUUID(), order.NewNumber(time.Now()), shipping, &billing, filledCart(t))

		require.NoError(t, err)
		assert.Equal(t, "Hamburg", o.BillingAddress().City())
	})

	t.Run("empty cart is rejected", func(t *testing.T) {
		shipping, err := order.NewAddress(kernel.NewUUID(), validAddressInput())
		require.NoError(t, err)
		empty, err := cart.NewCart(kernel.NewUUID(), "k")
		require.NoError(t, err)

		o, err := order.NewOrderFromCart(kernel.NewUUID(), order.NewNumber(time.Now()), shipping, nil, empty)

		require.ErrorIs(t, err, order.ErrEmptyCart)
		assert.Nil(t, o)
	})
}

func TestOrder_MarkPaidIsIdempotent(t *testing.T) {
	o := newPendingOrder(t)

	changed, err := o.MarkPaid("pi_123")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, o.IsPaid())
	assert.Equal(t, order.Paid, o.Status())
	assert.Equal(t, "pi_123", o.PaymentIntentID())

	changed, err = o.MarkPaid("pi_other")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, "pi_123", o.PaymentIntentID())
}

func TestOrder_ChangeStatus(t *testing.T) {
	o := newPendingOrder(t)

	err := o.ChangeStatus(order.Shipped)
	require.ErrorIs(t, err, order.ErrInvalidTransition)

	require.NoError(t, o.ChangeStatus(order.Paid))
	assert.True(t, o.IsPaid())
	require.ErrorIs(t, o.ChangeStatus(order.Paid), order.ErrInvalidTransition)

	require.NoError(t, o.ChangeStatus(order.Processing))
	require.NoError(t, o.ChangeStatus(order.Shipped))
	require.NoError(t, o.ChangeStatus(order.Delivered))
	require.NoError(t, o.ChangeStatus(order.Refunded))
	assert.True(t, o.Status().IsFinal())
	require.ErrorIs(t, o.ChangeStatus(order.Delivered), order.ErrInvalidTransition)
}

func TestNewAddress(t *testing.T) {
	_, err := order.NewAddress(kernel.NewUUID(), order.AddressInput{Country: "US", Email: "bad"})

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	for _, field := range []string{"first_name", "last_name", "address_line_1", "city", "postal_code", "email", "country"} {
		assert.Contains(t, err.Error(), field)
	}
}

func TestRestoreOrder_RequiresItems(t *testing.T) {
	_, err := order.RestoreOrder(order.State{
		ID:     kernel.NewUUID(),
		Number: order.NewNumber(time.Now()),
		Status: order.Pending,
	})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	var zero order.Order
	require.ErrorIs(t, zero.Validate(), order.ErrOrderIsNotConstructed)
}
