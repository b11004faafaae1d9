package ports

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/tracking"
)

// ErrConversionsDisabled is returned by a gateway without credentials.
var ErrConversionsDisabled = errors.New("conversions api is not configured")

// ConversionsGateway delivers events to the ad platform in one batch.
type ConversionsGateway interface {
	Send(ctx context.Context, events []*tracking.ConversionEvent) error
}
