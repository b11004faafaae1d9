package catalogrepo_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/adapters/out/postgres/catalogrepo"
	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type CatalogRepositoryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	tracker   *MockAggregateTracker

	categories   *catalogrepo.GormCategoryRepository
	productTypes *catalogrepo.GormProductTypeRepository
	products     *catalogrepo.GormProductRepository
}

func (suite *CatalogRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(catalogrepo.Models()...))
}

func (suite *CatalogRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(`TRUNCATE TABLE attributes, product_types, product_type_attributes,
		categories, collections, products, collection_products, product_categories,
		product_variants, product_gallery_images`).Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.categories = catalogrepo.NewGormCategoryRepository(suite.db, suite.tracker)
	suite.productTypes = catalogrepo.NewGormProductTypeRepository(suite.db, suite.tracker)
	suite.products = catalogrepo.NewGormProductRepository(suite.db, suite.tracker)
}

func (suite *CatalogRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CatalogRepositoryIntegrationTestSuite) addCategory(title string, parent *catalog.Category) *catalog.Category {
	var parentID *kernel.UUID
	if parent != nil {
		id := parent.ID()
		parentID = &id
	}
	c, err := catalog.NewCategory(kernel.NewUUID(), title, kernel.Slugify(title), parentID)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.categories.Add(context.Background(), c))
	return c
}

func (suite *CatalogRepositoryIntegrationTestSuite) addProductType() *catalog.ProductType {
	ctx := context.Background()
	material, err := catalog.NewAttribute(kernel.NewUUID(), "Material", "", []string{"Bronze", "Marble"})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.productTypes.AddAttribute(ctx, material))

	pt, err := catalog.NewProductType(kernel.NewUUID(), "Sculpture", material)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.productTypes.Add(ctx, pt))
	return pt
}

func (suite *CatalogRepositoryIntegrationTestSuite) TestCategory_AddGetAndMove() {
	ctx := context.Background()
	animals := suite.addCategory("Animals", nil)
	lions := suite.addCategory("Lions", nil)

	animalID := animals.ID()
	suite.Require().NoError(lions.MoveUnder(&animalID))
	suite.Require().NoError(suite.categories.Update(ctx, lions))

	got, err := suite.categories.Get(ctx, lions.ID())
	suite.Require().NoError(err)
	suite.True(got.IsChildOf(&animalID))

	byTitle, err := suite.categories.FindByTitle(ctx, "Animals")
	suite.Require().NoError(err)
	suite.Equal(animals.ID(), byTitle.ID())

	all, err := suite.categories.List(ctx)
	suite.Require().NoError(err)
	suite.Len(all, 2)
	suite.Equal("Animals", all[0].Title())
}

func (suite *CatalogRepositoryIntegrationTestSuite) TestCategory_DuplicateSlugIsConflict() {
	ctx := context.Background()
	suite.addCategory("Animals", nil)

	dup, err := catalog.NewCategory(kernel.NewUUID(), "Animals again", "animals", nil)
	suite.Require().NoError(err)
	suite.ErrorIs(suite.categories.Add(ctx, dup), errs.ErrConflict)

	exists, err := suite.categories.SlugExists(ctx, "animals")
	suite.Require().NoError(err)
	suite.True(exists)
}

func (suite *CatalogRepositoryIntegrationTestSuite) TestCategory_GetMissing() {
	_, err := suite.categories.Get(context.Background(), kernel.NewUUID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CatalogRepositoryIntegrationTestSuite) TestProductType_RoundTrip() {
	ctx := context.Background()
	pt := suite.addProductType()

	size, err := catalog.NewAttribute(kernel.NewUUID(), "Size", "", nil)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.productTypes.AddAttribute(ctx, size))
	suite.Require().NoError(pt.AllowAttribute(size))
	suite.Require().NoError(suite.productTypes.Update(ctx, pt))

	got, err := suite.productTypes.FindByName(ctx, "Sculpture")
	suite.Require().NoError(err)
	suite.Require().Len(got.AllowedAttributes(), 2)
	suite.Equal("Material", got.AllowedAttributes()[0].Name())
	suite.Equal([]string{"Bronze", "Marble"}, got.AllowedAttributes()[0].Choices())

	attr, err := suite.productTypes.FindAttributeBySlug(ctx, "size")
	suite.Require().NoError(err)
	suite.False(attr.HasChoices())
}

func (suite *CatalogRepositoryIntegrationTestSuite) TestProduct_CategoriesAndVariants() {
	ctx := context.Background()
	pt := suite.addProductType()
	animals := suite.addCategory("Animals", nil)
	gifts := suite.addCategory("Gifts", nil)

	p, err := catalog.NewProduct(kernel.NewUUID(), pt.ID(), "Bronze Lion", "bronze-lion", kernel.MustMoney(12000, "EUR"))
	suite.Require().NoError(err)
	p.AssignCategories(animals.ID(), gifts.ID())
	p.SetSpecifications(map[string]any{"height_cm": float64(30)})
	suite.Require().NoError(suite.products.Add(ctx, p))

	p.Publish()
	suite.Require().NoError(suite.products.Update(ctx, p))

	got, err := suite.products.FindBySlug(ctx, "bronze-lion")
	suite.Require().NoError(err)
	suite.True(got.IsPublished())
	suite.True(got.InCategory(animals.ID()))
	suite.True(got.InCategory(gifts.ID()))
	suite.Equal(int64(12000), got.BasePrice().Cents())
	suite.Equal(float64(30), got.Specifications()["height_cm"])

	v, err := catalog.NewVariant(kernel.NewUUID(), p, pt, "LION-BR", kernel.MustMoney(12000, "EUR"), 3,
		map[string]string{"material": "Bronze"})
	suite.Require().NoError(err)
	compare := kernel.MustMoney(15000, "EUR")
	suite.Require().NoError(v.SetCompareAtPrice(&compare))
	suite.Require().NoError(suite.products.AddVariant(ctx, v))

	suite.Require().NoError(v.SetStock(1))
	suite.Require().NoError(suite.products.UpdateVariant(ctx, v))

	gotVariant, err := suite.products.FindVariantBySKU(ctx, "LION-BR")
	suite.Require().NoError(err)
	suite.Equal(1, gotVariant.StockQuantity())
	suite.Equal("Bronze", gotVariant.Attributes()["material"])
	suite.Require().NotNil(gotVariant.CompareAtPrice())
	suite.Equal(int64(15000), gotVariant.CompareAtPrice().Cents())

	dup, err := catalog.NewVariant(kernel.NewUUID(), p, pt, "LION-BR", kernel.MustMoney(100, "EUR"), 1,
		map[string]string{"material": "Marble"})
	suite.Require().NoError(err)
	suite.ErrorIs(suite.products.AddVariant(ctx, dup), errs.ErrConflict)

	newest, err := suite.products.ListNewest(ctx, 1)
	suite.Require().NoError(err)
	suite.Len(newest, 1)
}

func (suite *CatalogRepositoryIntegrationTestSuite) TestProduct_UpdateMissing() {
	p, err := catalog.NewProduct(kernel.NewUUID(), kernel.NewUUID(), "Ghost", "ghost", kernel.MustMoney(100, "EUR"))
	suite.Require().NoError(err)
	suite.ErrorIs(suite.products.Update(context.Background(), p), gorm.ErrRecordNotFound)
}

func TestCatalogRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogRepositoryIntegrationTestSuite))
}
