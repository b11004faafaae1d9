// Package commands contains business operations that modify system state.
// Every handler validates its command, opens a unit of work, loads aggregates
// through the repositories it exposes, applies domain behaviour and commits.
package commands

import (
	"context"

	"storefront/internal/core/ports"
)

// Unit of Work interfaces give each handler only the repositories it needs.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	CategoryRepoFactory interface {
		CategoryRepository() ports.CategoryRepository
	}

	ProductTypeRepoFactory interface {
		ProductTypeRepository() ports.ProductTypeRepository
	}

	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	CartRepoFactory interface {
		CartRepository() ports.CartRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	ConversionEventRepoFactory interface {
		ConversionEventRepository() ports.ConversionEventRepository
	}

	// CartUoW serves cart mutations: carts plus the variants put into them.
	CartUoW interface {
		TxManager
		CartRepoFactory
		ProductRepoFactory
	}

	CartUoWFactory interface {
		Create() CartUoW
	}

	// CheckoutUoW spans the cart being checked out and the order created from it.
	// Payment confirmation uses the same pair.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   c, err := uow.CartRepository().FindActiveBySessionKeyForUpdate(ctx, key)
	//   o, err := order.NewOrderFromCart(...)
	//   err = uow.OrderRepository().Add(ctx, o)
	//
	//   err = uow.Commit(ctx)
	CheckoutUoW interface {
		TxManager
		CartRepoFactory
		OrderRepoFactory
	}

	CheckoutUoWFactory interface {
		Create() CheckoutUoW
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// TrackingUoW reads catalogue, cart and order data and appends to the
	// conversion outbox.
	TrackingUoW interface {
		TxManager
		ProductRepoFactory
		CartRepoFactory
		OrderRepoFactory
		ConversionEventRepoFactory
	}

	TrackingUoWFactory interface {
		Create() TrackingUoW
	}

	// OutboxUoW manages transactions over the conversion outbox only.
	OutboxUoW interface {
		TxManager
		ConversionEventRepoFactory
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}

	// CatalogUoW manages catalogue maintenance: categories, product types and
	// products with their variants.
	CatalogUoW interface {
		TxManager
		CategoryRepoFactory
		ProductTypeRepoFactory
		ProductRepoFactory
	}

	CatalogUoWFactory interface {
		Create() CatalogUoW
	}
)
