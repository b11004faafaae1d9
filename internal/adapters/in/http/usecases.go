package http

import (
	"context"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/ports"
)

// Use case interfaces satisfied by the command and query handlers.
type (
	ProductLister interface {
		Handle(ctx context.Context, query queries.ListProductsQuery) (queries.Page[queries.ProductListItem], error)
	}
	ProductGetter interface {
		Handle(ctx context.Context, query queries.GetProductQuery) (queries.ProductDetail, error)
	}
	CategoryTreeGetter interface {
		Handle(ctx context.Context, query queries.GetCategoryTreeQuery) ([]*queries.CategoryTreeNode, error)
	}
	CategoryGetter interface {
		Handle(ctx context.Context, query queries.GetCategoryQuery) (queries.CategoryDetail, error)
	}
	CollectionLister interface {
		Handle(ctx context.Context, query queries.ListCollectionsQuery) (queries.Page[queries.CollectionView], error)
	}
	CartGetter interface {
		Handle(ctx context.Context, query queries.GetCartQuery) (queries.CartView, error)
	}
	OrderGetter interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error)
	}
	OrderLister interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) (queries.Page[queries.OrderSummary], error)
	}
	CountryLister interface {
		Handle(query queries.GetSupportedCountriesQuery) ([]queries.SupportedCountry, error)
	}

	CartEnsurer interface {
		Handle(ctx context.Context, cmd commands.EnsureCartCommand) (commands.EnsureCartResult, error)
	}
	CartItemAdder interface {
		Handle(ctx context.Context, cmd commands.AddCartItemCommand) error
	}
	CartItemUpdater interface {
		Handle(ctx context.Context, cmd commands.UpdateCartItemCommand) error
	}
	CartItemRemover interface {
		Handle(ctx context.Context, cmd commands.RemoveCartItemCommand) error
	}
	CheckoutProcessor interface {
		Handle(ctx context.Context, cmd commands.CheckoutCommand) (commands.CheckoutResult, error)
	}
	PaymentConfirmer interface {
		Handle(ctx context.Context, cmd commands.ConfirmPaymentCommand) (commands.PaymentOutcome, error)
	}
	OrderStatusUpdater interface {
		Handle(ctx context.Context, cmd commands.UpdateOrderStatusCommand) error
	}
	ConversionTracker interface {
		HandleViewContent(ctx context.Context, cmd commands.TrackViewContentCommand) error
		HandleAddToCart(ctx context.Context, cmd commands.TrackAddToCartCommand) error
		HandleInitiateCheckout(ctx context.Context, cmd commands.TrackInitiateCheckoutCommand) error
		HandlePurchase(ctx context.Context, cmd commands.TrackPurchaseCommand) error
	}
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	ListProducts       ProductLister
	GetProduct         ProductGetter
	GetCategoryTree    CategoryTreeGetter
	GetCategory        CategoryGetter
	ListCollections    CollectionLister
	GetCart            CartGetter
	GetOrder           OrderGetter
	ListOrders         OrderLister
	SupportedCountries CountryLister

	EnsureCart        CartEnsurer
	AddCartItem       CartItemAdder
	UpdateCartItem    CartItemUpdater
	RemoveCartItem    CartItemRemover
	Checkout          CheckoutProcessor
	ConfirmPayment    PaymentConfirmer
	UpdateOrderStatus OrderStatusUpdater
	Track             ConversionTracker

	Feed ports.CatalogFeedWriter
}
