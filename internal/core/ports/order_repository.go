package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order with its addresses and items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists status and payment changes of an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get with the order row locked until the transaction ends.
	// Used by payment confirmation to serialise concurrent webhook deliveries.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// FindByNumber retrieves an order by its human-facing reference.
	FindByNumber(ctx context.Context, number order.Number) (*order.Order, error)
}
