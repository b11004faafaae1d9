package commands_test

import (
	"encoding/json"
	"testing"
	"testing/fstest"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type importFixture struct {
	category    *catalog.Category
	productType *catalog.ProductType
}

func newImportFixture(t *testing.T) importFixture {
	t.Helper()
	category, err := catalog.NewCategory(kernel.NewUUID(), "Animals", "animals", nil)
	require.NoError(t, err)
	var attrs []*catalog.Attribute
	for _, name := range []string{"Width", "Height", "Depth", "Color"} {
		a, aErr := catalog.NewAttribute(kernel.NewUUID(), name, kernel.Slugify(name), nil)
		require.NoError(t, aErr)
		attrs = append(attrs, a)
	}
	pt, err := catalog.NewProductType(kernel.NewUUID(), "Sculpture", attrs...)
	require.NoError(t, err)
	return importFixture{category: category, productType: pt}
}

func (f importFixture) expectPrerequisites(uow *MockUoW) {
	uow.categories.On("FindByTitle", mock.Anything, "Animals").Return(f.category, nil).Once()
	uow.productTypes.On("FindByName", mock.Anything, "Sculpture").Return(f.productType, nil).Once()
}

func TestDimension_UnmarshalJSON(t *testing.T) {
	var item commands.ImportItem
	require.NoError(t, json.Unmarshal([]byte(`{"width_cm": 30.5, "height_cm": "12", "depth_cm": null}`), &item))
	assert.Equal(t, commands.Dimension("30.5"), item.WidthCM)
	assert.Equal(t, commands.Dimension("12"), item.HeightCM)
	assert.Empty(t, item.DepthCM)

	require.NoError(t, json.Unmarshal([]byte(`{"width_cm": 0}`), &item))
	assert.Empty(t, item.WidthCM)
}

func TestImportProductsCommandHandler_CreatesProductAndVariant(t *testing.T) {
	ctx := t.Context()
	f := newImportFixture(t)
	images := fstest.MapFS{"images/lion.jpg": {Data: []byte("jpeg-bytes")}}

	uow := newMockUoW()
	uow.expectTx(ctx)
	f.expectPrerequisites(uow)
	blobs := new(MockBlobStore)
	blobs.On("Exists", ctx, commands.PlaceholderThumbnail).Return(true, nil).Once()
	blobs.On("Put", ctx, "products/bronze-lion/lion.jpg", []byte("jpeg-bytes"), "image/jpeg").Return(nil).Once()

	uow.products.On("FindBySlug", ctx, "bronze-lion").Return(nil, errs.NewObjectNotFoundError("product", "bronze-lion")).Once()
	uow.products.On("Add", ctx, mock.MatchedBy(func(p *catalog.Product) bool {
		return p.Title() == "Bronze Lion" &&
			p.Description() == "Bronze Lion Statue 30cm" &&
			p.IsPublished() &&
			p.BasePrice().IsZero() &&
			p.Thumbnail() == "products/bronze-lion/lion.jpg" &&
			p.InCategory(f.category.ID())
	})).Return(nil).Once()
	uow.products.On("FindVariantBySKU", ctx, "LION-1").Return(nil, errs.NewObjectNotFoundError("variant", "LION-1")).Once()
	uow.products.On("AddVariant", ctx, mock.MatchedBy(func(v *catalog.Variant) bool {
		return assert.ObjectsAreEqual(map[string]string{
			"width": "30", "height": "null", "depth": "null", "color": "null",
		}, v.Attributes()) && v.Image() == "products/bronze-lion/lion.jpg" && v.StockQuantity() == 0
	})).Return(nil).Once()

	cmd, err := commands.NewImportProductsCommand([]commands.ImportItem{{
		SKU:            "LION-1",
		Title:          "Bronze Lion Statue 30cm",
		CleanTitle:     "Bronze Lion",
		LocalImagePath: "./images/lion.jpg",
		WidthCM:        "30",
	}}, images, "Animals", "Sculpture")
	require.NoError(t, err)
	report, err := commands.NewImportProductsCommandHandler(factory[commands.CatalogUoW]{uow}, blobs, testLogger).
		Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Imported)
	require.Len(t, report.Results, 1)
	assert.Equal(t, "[Created] LION-1", report.Results[0].String())
	uow.assertAll(t)
	blobs.AssertExpectations(t)
}

func TestImportProductsCommandHandler_UpdatesExistingAndReportsFailures(t *testing.T) {
	ctx := t.Context()
	f := newImportFixture(t)
	product, err := catalog.NewProduct(kernel.NewUUID(), f.productType.ID(), "Owl", "owl", kernel.MustMoney(0, "EUR"))
	require.NoError(t, err)
	product.SetThumbnail("products/owl/owl.jpg")
	variant, err := catalog.NewVariant(kernel.NewUUID(), product, f.productType, "OWL-1", kernel.MustMoney(500, "EUR"), 3,
		map[string]string{"width": "1", "height": "1", "depth": "1", "color": "Brown"})
	require.NoError(t, err)

	uow := newMockUoW()
	uow.expectTx(ctx)
	f.expectPrerequisites(uow)
	blobs := new(MockBlobStore)
	blobs.On("Exists", ctx, commands.PlaceholderThumbnail).Return(false, nil).Once()
	blobs.On("Put", ctx, commands.PlaceholderThumbnail, mock.Anything, "image/jpeg").Return(nil).Once()

	uow.products.On("FindBySlug", ctx, "owl").Return(product, nil).Once()
	uow.products.On("Update", ctx, product).Return(nil).Once()
	uow.products.On("FindVariantBySKU", ctx, "OWL-1").Return(variant, nil).Once()
	uow.products.On("UpdateVariant", ctx, variant).Return(nil).Once()

	cmd, err := commands.NewImportProductsCommand([]commands.ImportItem{
		{SKU: "OWL-1", Title: "Owl", LocalImagePath: "missing.jpg", HeightCM: "20"},
		{Title: "No SKU"},
	}, fstest.MapFS{}, "Animals", "Sculpture")
	require.NoError(t, err)
	report, err := commands.NewImportProductsCommandHandler(factory[commands.CatalogUoW]{uow}, blobs, testLogger).
		Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Imported)
	require.Len(t, report.Results, 2)
	assert.Equal(t, "[Updated] OWL-1", report.Results[0].String())
	assert.Equal(t, "Image not found at: missing.jpg", report.Results[0].Warning)
	require.ErrorIs(t, report.Results[1].Err, errs.ErrValueIsRequired)
	assert.Equal(t, "products/owl/owl.jpg", product.Thumbnail())
	assert.True(t, product.InCategory(f.category.ID()))
	assert.Equal(t, "20", variant.Attributes()["height"])
	assert.Zero(t, variant.StockQuantity())
	assert.True(t, variant.Price().IsZero())
	uow.assertAll(t)
	blobs.AssertExpectations(t)
}

func TestImportProductsCommandHandler_MissingCategoryAborts(t *testing.T) {
	ctx := t.Context()
	uow := newMockUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.categories.On("FindByTitle", ctx, "Animals").Return(nil, errs.NewObjectNotFoundError("category", "Animals")).Once()

	cmd, err := commands.NewImportProductsCommand(nil, fstest.MapFS{}, "Animals", "Sculpture")
	require.NoError(t, err)
	_, err = commands.NewImportProductsCommandHandler(factory[commands.CatalogUoW]{uow}, new(MockBlobStore), testLogger).
		Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.assertAll(t)
}
