package catalog_test

import (
	"testing"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVariant(t *testing.T) {
	pt := sculptureType(t)
	product, err := catalog.NewProduct(kernel.NewUUID(), pt.ID(), "Bronze Lion", "bronze-lion", kernel.MustMoney(0, "EUR"))
	require.NoError(t, err)

	t.Run("valid", func(t *testing.T) {
		v, err := catalog.NewVariant(kernel.NewUUID(), product, pt, " LION-01 ", kernel.MustMoney(9900, "EUR"), 3,
			map[string]string{"width": "40", "color": "Gold"})
		require.NoError(t, err)
		assert.Equal(t, "LION-01", v.SKU())
		assert.True(t, v.IsInStock())
		assert.True(t, v.CanSupply(3))
		assert.False(t, v.CanSupply(4))
	})

	t.Run("attributes checked against type", func(t *testing.T) {
		_, err := catalog.NewVariant(kernel.NewUUID(), product, pt, "LION-02", kernel.MustMoney(9900, "EUR"), 0,
			map[string]string{"width": "40"})
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("type must match product", func(t *testing.T) {
		other, err := catalog.NewProductType(kernel.NewUUID(), "Print")
		require.NoError(t, err)
		_, err = catalog.NewVariant(kernel.NewUUID(), product, other, "LION-03", kernel.MustMoney(100, "EUR"), 0, nil)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("negative stock", func(t *testing.T) {
		_, err := catalog.NewVariant(kernel.NewUUID(), product, pt, "LION-04", kernel.MustMoney(100, "EUR"), -1,
			map[string]string{"width": "40", "color": "Gold"})
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestVariant_SalePricing(t *testing.T) {
	higher := kernel.MustMoney(12000, "EUR")
	lower := kernel.MustMoney(5000, "EUR")

	v, err := catalog.RestoreVariant(catalog.VariantState{
		ID: kernel.NewUUID(), ProductID: kernel.NewUUID(), SKU: "A",
		Price: kernel.MustMoney(9900, "EUR"), CompareAtPrice: &higher,
	})
	require.NoError(t, err)
	regular, sale := v.SalePricing()
	assert.Equal(t, "120.00", regular.String())
	require.NotNil(t, sale)
	assert.Equal(t, "99.00", sale.String())

	require.NoError(t, v.SetCompareAtPrice(&lower))
	regular, sale = v.SalePricing()
	assert.Equal(t, "99.00", regular.String())
	assert.Nil(t, sale)

	usd := kernel.MustMoney(1, "USD")
	require.ErrorIs(t, v.SetCompareAtPrice(&usd), errs.ErrValueIsInvalid)
}
