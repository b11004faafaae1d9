package jobs

import (
	"context"
	"log/slog"

	"storefront/internal/core/application/usecases/commands"
)

type FeedGenerator interface {
	Handle(ctx context.Context, cmd commands.GenerateFeedCommand) (commands.GenerateFeedResult, error)
}

// NewFeedGenerationJob republishes the catalogue feed to the blob store.
func NewFeedGenerationJob(spec string, handler FeedGenerator, logger *slog.Logger) *ScheduledJob {
	logger = logger.With("component", "feed_generation_job")
	return newScheduledJob("feed generation", spec, func(ctx context.Context) {
		cmd, err := commands.NewGenerateFeedCommand("")
		if err != nil {
			logger.ErrorContext(ctx, "Invalid feed key", "error", err)
			return
		}
		res, err := handler.Handle(ctx, cmd)
		if err != nil {
			logger.ErrorContext(ctx, "Feed generation job failed", "error", err)
			return
		}
		logger.InfoContext(ctx, "Catalogue feed published", "key", res.Key, "rows", res.Rows)
	}, logger)
}
