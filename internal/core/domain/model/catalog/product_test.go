package catalog_test

import (
	"testing"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	p, err := catalog.NewProduct(kernel.NewUUID(), kernel.NewUUID(), "Bronze Lion", "bronze-lion", kernel.MustMoney(0, "EUR"))
	require.NoError(t, err)
	assert.Equal(t, catalog.ProductStatusDraft, p.Status())
	assert.False(t, p.IsPublished())

	p.Publish()
	assert.True(t, p.IsPublished())
	p.Archive()
	assert.Equal(t, "ARCHIVED", p.Status().String())

	_, err = catalog.NewProduct(kernel.NewUUID(), kernel.NewUUID(), "", "Not A Slug", kernel.MustMoney(0, "EUR"))
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestProduct_AssignCategoriesIsAdditive(t *testing.T) {
	animals, wild := kernel.NewUUID(), kernel.NewUUID()
	p, err := catalog.RestoreProduct(catalog.ProductState{
		ID:            kernel.NewUUID(),
		ProductTypeID: kernel.NewUUID(),
		Status:        catalog.ProductStatusPublished,
		Title:         "Bronze Lion",
		Slug:          "bronze-lion",
		BasePrice:     kernel.MustMoney(0, "EUR"),
		CategoryIDs:   []kernel.UUID{animals},
	})
	require.NoError(t, err)

	added := p.AssignCategories(animals, wild, wild)

	assert.Equal(t, 1, added)
	assert.Len(t, p.CategoryIDs(), 2)
	assert.True(t, p.InCategory(wild))
}

func TestParseProductStatus(t *testing.T) {
	s, err := catalog.ParseProductStatus("PUBLISHED")
	require.NoError(t, err)
	assert.Equal(t, catalog.ProductStatusPublished, s)

	_, err = catalog.ParseProductStatus("LIVE")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestCategory(t *testing.T) {
	root, err := catalog.NewCategory(kernel.NewUUID(), "Animals", "animals", nil)
	require.NoError(t, err)
	assert.True(t, root.IsRoot())

	rootID := root.ID()
	child, err := catalog.NewCategory(kernel.NewUUID(), "Wild", "wild", &rootID)
	require.NoError(t, err)
	assert.True(t, child.IsChildOf(&rootID))
	assert.False(t, child.IsChildOf(nil))

	childID := child.ID()
	err = child.MoveUnder(&childID)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	require.NoError(t, child.MoveUnder(nil))
	assert.True(t, child.IsRoot())
}
