package commands_test

import (
	"context"
	"io"
	"time"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/tracking"
	"storefront/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

// MockUoW satisfies every unit-of-work interface of the package. Repository
// accessors return the configured mocks; transaction calls are recorded.
type MockUoW struct {
	mock.Mock

	categories   *MockCategoryRepository
	productTypes *MockProductTypeRepository
	products     *MockProductRepository
	carts        *MockCartRepository
	orders       *MockOrderRepository
	events       *MockConversionEventRepository
}

func newMockUoW() *MockUoW {
	return &MockUoW{
		categories:   new(MockCategoryRepository),
		productTypes: new(MockProductTypeRepository),
		products:     new(MockProductRepository),
		carts:        new(MockCartRepository),
		orders:       new(MockOrderRepository),
		events:       new(MockConversionEventRepository),
	}
}

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) CategoryRepository() ports.CategoryRepository       { return m.categories }
func (m *MockUoW) ProductTypeRepository() ports.ProductTypeRepository { return m.productTypes }
func (m *MockUoW) ProductRepository() ports.ProductRepository         { return m.products }
func (m *MockUoW) CartRepository() ports.CartRepository               { return m.carts }
func (m *MockUoW) OrderRepository() ports.OrderRepository             { return m.orders }
func (m *MockUoW) ConversionEventRepository() ports.ConversionEventRepository {
	return m.events
}

// expectTx registers a successful Begin/Commit/Rollback sequence.
func (m *MockUoW) expectTx(ctx any) {
	m.On("Begin", ctx).Return(nil)
	m.On("Commit", ctx).Return(nil)
	m.On("Rollback", ctx).Return(nil)
}

func (m *MockUoW) assertAll(t mock.TestingT) {
	m.AssertExpectations(t)
	m.categories.AssertExpectations(t)
	m.productTypes.AssertExpectations(t)
	m.products.AssertExpectations(t)
	m.carts.AssertExpectations(t)
	m.orders.AssertExpectations(t)
	m.events.AssertExpectations(t)
}

type factory[T any] struct{ uow T }

func (f factory[T]) Create() T { return f.uow }

type MockCategoryRepository struct{ mock.Mock }

func (m *MockCategoryRepository) Add(ctx context.Context, c *catalog.Category) error {
	return m.Called(ctx, c).Error(0)
}
func (m *MockCategoryRepository) Update(ctx context.Context, c *catalog.Category) error {
	return m.Called(ctx, c).Error(0)
}
func (m *MockCategoryRepository) Get(ctx context.Context, id kernel.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*catalog.Category)
	return c, args.Error(1)
}
func (m *MockCategoryRepository) FindByTitle(ctx context.Context, title string) (*catalog.Category, error) {
	args := m.Called(ctx, title)
	c, _ := args.Get(0).(*catalog.Category)
	return c, args.Error(1)
}
func (m *MockCategoryRepository) List(ctx context.Context) ([]*catalog.Category, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).([]*catalog.Category)
	return c, args.Error(1)
}
func (m *MockCategoryRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

type MockProductTypeRepository struct{ mock.Mock }

func (m *MockProductTypeRepository) AddAttribute(ctx context.Context, a *catalog.Attribute) error {
	return m.Called(ctx, a).Error(0)
}
func (m *MockProductTypeRepository) FindAttributeBySlug(ctx context.Context, slug string) (*catalog.Attribute, error) {
	args := m.Called(ctx, slug)
	a, _ := args.Get(0).(*catalog.Attribute)
	return a, args.Error(1)
}
func (m *MockProductTypeRepository) Add(ctx context.Context, pt *catalog.ProductType) error {
	return m.Called(ctx, pt).Error(0)
}
func (m *MockProductTypeRepository) Update(ctx context.Context, pt *catalog.ProductType) error {
	return m.Called(ctx, pt).Error(0)
}
func (m *MockProductTypeRepository) Get(ctx context.Context, id kernel.UUID) (*catalog.ProductType, error) {
	args := m.Called(ctx, id)
	pt, _ := args.Get(0).(*catalog.ProductType)
	return pt, args.Error(1)
}
func (m *MockProductTypeRepository) FindByName(ctx context.Context, name string) (*catalog.ProductType, error) {
	args := m.Called(ctx, name)
	pt, _ := args.Get(0).(*catalog.ProductType)
	return pt, args.Error(1)
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) Add(ctx context.Context, p *catalog.Product) error {
	return m.Called(ctx, p).Error(0)
}
func (m *MockProductRepository) Update(ctx context.Context, p *catalog.Product) error {
	return m.Called(ctx, p).Error(0)
}
func (m *MockProductRepository) Get(ctx context.Context, id kernel.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*catalog.Product)
	return p, args.Error(1)
}
func (m *MockProductRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	args := m.Called(ctx, slug)
	p, _ := args.Get(0).(*catalog.Product)
	return p, args.Error(1)
}
func (m *MockProductRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}
func (m *MockProductRepository) ListNewest(ctx context.Context, limit int) ([]*catalog.Product, error) {
	args := m.Called(ctx, limit)
	p, _ := args.Get(0).([]*catalog.Product)
	return p, args.Error(1)
}
func (m *MockProductRepository) AddVariant(ctx context.Context, v *catalog.Variant) error {
	return m.Called(ctx, v).Error(0)
}
func (m *MockProductRepository) UpdateVariant(ctx context.Context, v *catalog.Variant) error {
	return m.Called(ctx, v).Error(0)
}
func (m *MockProductRepository) GetVariant(ctx context.Context, id kernel.UUID) (*catalog.Variant, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*catalog.Variant)
	return v, args.Error(1)
}
func (m *MockProductRepository) FindVariantBySKU(ctx context.Context, sku string) (*catalog.Variant, error) {
	args := m.Called(ctx, sku)
	v, _ := args.Get(0).(*catalog.Variant)
	return v, args.Error(1)
}

type MockCartRepository struct{ mock.Mock }

func (m *MockCartRepository) Add(ctx context.Context, c *cart.Cart) error {
	return m.Called(ctx, c).Error(0)
}
func (m *MockCartRepository) Update(ctx context.Context, c *cart.Cart) error {
	return m.Called(ctx, c).Error(0)
}
func (m *MockCartRepository) FindActiveBySessionKey(ctx context.Context, key string) (*cart.Cart, error) {
	args := m.Called(ctx, key)
	c, _ := args.Get(0).(*cart.Cart)
	return c, args.Error(1)
}
func (m *MockCartRepository) FindActiveBySessionKeyForUpdate(ctx context.Context, key string) (*cart.Cart, error) {
	args := m.Called(ctx, key)
	c, _ := args.Get(0).(*cart.Cart)
	return c, args.Error(1)
}
func (m *MockCartRepository) FindLatestBySessionKey(ctx context.Context, key string) (*cart.Cart, error) {
	args := m.Called(ctx, key)
	c, _ := args.Get(0).(*cart.Cart)
	return c, args.Error(1)
}
func (m *MockCartRepository) AbandonIdleSince(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}
func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}
func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}
func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}
func (m *MockOrderRepository) FindByNumber(ctx context.Context, number order.Number) (*order.Order, error) {
	args := m.Called(ctx, number)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockConversionEventRepository struct{ mock.Mock }

func (m *MockConversionEventRepository) Add(ctx context.Context, e *tracking.ConversionEvent) error {
	return m.Called(ctx, e).Error(0)
}
func (m *MockConversionEventRepository) Update(ctx context.Context, e *tracking.ConversionEvent) error {
	return m.Called(ctx, e).Error(0)
}
func (m *MockConversionEventRepository) ClaimPending(ctx context.Context, limit int) ([]*tracking.ConversionEvent, error) {
	args := m.Called(ctx, limit)
	e, _ := args.Get(0).([]*tracking.ConversionEvent)
	return e, args.Error(1)
}

type MockPaymentGateway struct{ mock.Mock }

func (m *MockPaymentGateway) CreateCheckoutSession(
	ctx context.Context,
	req ports.CheckoutSessionRequest,
) (ports.CheckoutSession, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(ports.CheckoutSession), args.Error(1)
}
func (m *MockPaymentGateway) ParseWebhookEvent(payload []byte, signature string) (ports.PaymentEvent, error) {
	args := m.Called(payload, signature)
	return args.Get(0).(ports.PaymentEvent), args.Error(1)
}

type MockConversionsGateway struct{ mock.Mock }

func (m *MockConversionsGateway) Send(ctx context.Context, events []*tracking.ConversionEvent) error {
	return m.Called(ctx, events).Error(0)
}

type MockCategorySuggester struct{ mock.Mock }

func (m *MockCategorySuggester) SuggestCategories(
	ctx context.Context,
	tree string,
	products []ports.ProductSummary,
) (map[string][]string, error) {
	args := m.Called(ctx, tree, products)
	r, _ := args.Get(0).(map[string][]string)
	return r, args.Error(1)
}

type MockBlobStore struct{ mock.Mock }

func (m *MockBlobStore) Put(ctx context.Context, key string, r io.Reader, contentType string) error {
	data, _ := io.ReadAll(r)
	return m.Called(ctx, key, data, contentType).Error(0)
}
func (m *MockBlobStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Error(1)
}
func (m *MockBlobStore) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}
