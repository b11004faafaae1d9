package jobs

import (
	"context"
	"log/slog"
	"time"

	"storefront/internal/core/application/usecases/commands"
)

type CartAbandoner interface {
	Handle(ctx context.Context, cmd commands.AbandonIdleCartsCommand) (int64, error)
}

// AbandonAfter is how long an ACTIVE cart may stay untouched.
type AbandonAfter time.Duration

// DefaultAbandonAfter matches the session lifetime.
const DefaultAbandonAfter = AbandonAfter(14 * 24 * time.Hour)

// NewCartAbandonmentJob flags idle ACTIVE carts as ABANDONED.
func NewCartAbandonmentJob(spec string, handler CartAbandoner, after AbandonAfter, logger *slog.Logger) *ScheduledJob {
	logger = logger.With("component", "cart_abandonment_job")
	return newScheduledJob("cart abandonment", spec, func(ctx context.Context) {
		cmd, err := commands.NewAbandonIdleCartsCommand(time.Duration(after))
		if err != nil {
			logger.ErrorContext(ctx, "Invalid abandonment window", "error", err)
			return
		}
		n, err := handler.Handle(ctx, cmd)
		if err != nil {
			logger.ErrorContext(ctx, "Cart abandonment job failed", "error", err)
			return
		}
		if n > 0 {
			logger.InfoContext(ctx, "Abandoned idle carts", "count", n)
		}
	}, logger)
}
