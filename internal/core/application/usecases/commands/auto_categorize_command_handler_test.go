package commands_test

import (
	"errors"
	"testing"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAutoCategorizeCommandHandler_AssignsKnownCategories(t *testing.T) {
	ctx := t.Context()
	animals, err := catalog.NewCategory(kernel.NewUUID(), "Animals", "animals", nil)
	require.NoError(t, err)
	wild, err := catalog.NewCategory(kernel.NewUUID(), "Wild", "wild", idPtr(animals.ID()))
	require.NoError(t, err)
	accents, err := catalog.NewCategory(kernel.NewUUID(), "Accents", "accents", nil)
	require.NoError(t, err)

	f := newCatalogFixture(t, 1)
	f.product.SetSpecifications(map[string]any{"dimensions": "30 x 20 x 10 cm"})
	owl, err := catalog.NewProduct(kernel.NewUUID(), f.productType.ID(), "Owl", "owl", kernel.MustMoney(0, "EUR"))
	require.NoError(t, err)

	uow := newMockUoW()
	uow.expectTx(ctx)
	uow.categories.On("List", ctx).Return([]*catalog.Category{accents, animals, wild}, nil).Once()
	uow.products.On("ListNewest", ctx, 0).Return([]*catalog.Product{f.product, owl}, nil).Once()
	uow.products.On("Update", ctx, f.product).Return(nil).Once()

	wantTree := "- Accents\n- Animals\n  - Wild"
	suggester := new(MockCategorySuggester)
	suggester.On("SuggestCategories", ctx, wantTree, []ports.ProductSummary{
		{ID: f.product.ID().String(), Title: "Bronze Lion", Specs: "30 x 20 x 10 cm"},
		{ID: owl.ID().String(), Title: "Owl", Specs: ""},
	}).Return(map[string][]string{
		f.product.ID().String(): {" wild ", "Space Age"},
		owl.ID().String():       {"Unknown"},
	}, nil).Once()

	cmd, err := commands.NewAutoCategorizeCommand(20, 1, 0)
	require.NoError(t, err)
	report, err := commands.NewAutoCategorizeCommandHandler(factory[commands.CatalogUoW]{uow}, suggester, testLogger).
		Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Categories)
	require.Len(t, report.Batches, 1)
	assert.Equal(t, "Batch complete: Updated 1/2 products.\n   [UPDATED] \"Bronze Lion\" -> [\"Wild\"]",
		report.Batches[0].String())
	assert.True(t, f.product.InCategory(wild.ID()))
	assert.Empty(t, owl.CategoryIDs())
	uow.assertAll(t)
	suggester.AssertExpectations(t)
}

func TestAutoCategorizeCommandHandler_FailedBatchDoesNotStopOthers(t *testing.T) {
	ctx := t.Context()
	animals, err := catalog.NewCategory(kernel.NewUUID(), "Animals", "animals", nil)
	require.NoError(t, err)
	f := newCatalogFixture(t, 1)
	owl, err := catalog.NewProduct(kernel.NewUUID(), f.productType.ID(), "Owl", "owl", kernel.MustMoney(0, "EUR"))
	require.NoError(t, err)

	uow := newMockUoW()
	uow.expectTx(ctx)
	uow.categories.On("List", ctx).Return([]*catalog.Category{animals}, nil).Once()
	uow.products.On("ListNewest", ctx, 2).Return([]*catalog.Product{f.product, owl}, nil).Once()
	uow.products.On("Update", ctx, owl).Return(nil).Once()

	suggester := new(MockCategorySuggester)
	suggester.On("SuggestCategories", ctx, "- Animals", mock.MatchedBy(func(p []ports.ProductSummary) bool {
		return len(p) == 1 && p[0].Title == "Bronze Lion"
	})).Return(nil, errors.New("rate limited")).Once()
	suggester.On("SuggestCategories", ctx, "- Animals", mock.MatchedBy(func(p []ports.ProductSummary) bool {
		return len(p) == 1 && p[0].Title == "Owl"
	})).Return(map[string][]string{owl.ID().String(): {"Animals"}}, nil).Once()

	cmd, err := commands.NewAutoCategorizeCommand(1, 2, 2)
	require.NoError(t, err)
	report, err := commands.NewAutoCategorizeCommandHandler(factory[commands.CatalogUoW]{uow}, suggester, testLogger).
		Handle(ctx, cmd)
	require.NoError(t, err)

	require.Len(t, report.Batches, 2)
	require.EqualError(t, report.Batches[0].Err, "rate limited")
	assert.Equal(t, 1, report.Batches[1].Updated)
	assert.True(t, owl.InCategory(animals.ID()))
	uow.assertAll(t)
}

func TestNewAutoCategorizeCommand_Bounds(t *testing.T) {
	_, err := commands.NewAutoCategorizeCommand(0, 3, 0)
	require.Error(t, err)
	_, err = commands.NewAutoCategorizeCommand(20, 0, 0)
	require.Error(t, err)
}
