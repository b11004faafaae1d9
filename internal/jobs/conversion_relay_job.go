package jobs

import (
	"context"
	"log/slog"

	"storefront/internal/core/application/usecases/commands"
)

type ConversionRelayer interface {
	Handle(ctx context.Context, cmd commands.RelayConversionsCommand) (commands.RelayResult, error)
}

// RelayLimits bounds one relay run.
type RelayLimits struct {
	BatchSize   int
	MaxAttempts int
}

// NewConversionRelayJob delivers PENDING outbox events to the Conversions API.
func NewConversionRelayJob(spec string, handler ConversionRelayer, limits RelayLimits, logger *slog.Logger) *ScheduledJob {
	logger = logger.With("component", "conversion_relay_job")
	return newScheduledJob("conversion relay", spec, func(ctx context.Context) {
		cmd, err := commands.NewRelayConversionsCommand(limits.BatchSize, limits.MaxAttempts)
		if err != nil {
			logger.ErrorContext(ctx, "Invalid relay limits", "error", err)
			return
		}
		res, err := handler.Handle(ctx, cmd)
		if err != nil {
			logger.ErrorContext(ctx, "Conversion relay job failed", "error", err)
			return
		}
		if res.Claimed > 0 {
			logger.InfoContext(ctx, "Relayed conversion events",
				"claimed", res.Claimed, "sent", res.Sent, "failed", res.Failed, "skipped", res.Skipped)
		}
	}, logger)
}
