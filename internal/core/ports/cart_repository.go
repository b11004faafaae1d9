package ports

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/cart"
)

// CartRepository persists carts and their items.
type CartRepository interface {
	Add(ctx context.Context, aggregate *cart.Cart) error

	// Update persists the status and synchronises items (insert, update, delete).
	Update(ctx context.Context, aggregate *cart.Cart) error

	// FindActiveBySessionKey returns the ACTIVE cart for key with item snapshots.
	FindActiveBySessionKey(ctx context.Context, key string) (*cart.Cart, error)

	// FindActiveBySessionKeyForUpdate is FindActiveBySessionKey with the cart row
	// locked until the transaction ends.
	FindActiveBySessionKeyForUpdate(ctx context.Context, key string) (*cart.Cart, error)

	// FindLatestBySessionKey returns the most recently created cart for key in any
	// status.
	FindLatestBySessionKey(ctx context.Context, key string) (*cart.Cart, error)

	// AbandonIdleSince flags ACTIVE carts not updated since cutoff as ABANDONED.
	AbandonIdleSince(ctx context.Context, cutoff time.Time) (int64, error)
}
