package ports

import (
	"context"

	"storefront/internal/core/domain/model/tracking"
)

// ConversionEventRepository is the outbox of conversion events.
type ConversionEventRepository interface {
	Add(ctx context.Context, event *tracking.ConversionEvent) error
	Update(ctx context.Context, event *tracking.ConversionEvent) error

	// ClaimPending locks up to limit PENDING events, oldest first, skipping rows
	// locked by another relay.
	ClaimPending(ctx context.Context, limit int) ([]*tracking.ConversionEvent, error)
}
