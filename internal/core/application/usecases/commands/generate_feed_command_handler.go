package commands

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"storefront/internal/core/ports"
)

type GenerateFeedResult struct {
	Key  string
	Rows int
}

type GenerateFeedCommandHandler struct {
	feed   ports.CatalogFeedWriter
	blobs  ports.BlobStore
	logger *slog.Logger
}

func NewGenerateFeedCommandHandler(
	feed ports.CatalogFeedWriter,
	blobs ports.BlobStore,
	logger *slog.Logger,
) GenerateFeedCommandHandler {
	return GenerateFeedCommandHandler{
		feed:   feed,
		blobs:  blobs,
		logger: logger.With("component", "GenerateFeedCommandHandler"),
	}
}

// Handle streams the feed into the blob store without buffering it in memory.
func (h GenerateFeedCommandHandler) Handle(ctx context.Context, cmd GenerateFeedCommand) (GenerateFeedResult, error) {
	if err := cmd.Validate(); err != nil {
		return GenerateFeedResult{}, err
	}

	type written struct {
		rows int
		err  error
	}
	pr, pw := io.Pipe()
	done := make(chan written, 1)
	go func() {
		n, err := h.feed.WriteFeed(ctx, pw)
		_ = pw.CloseWithError(err)
		done <- written{rows: n, err: err}
	}()

	err := h.blobs.Put(ctx, cmd.key, pr, "text/csv")
	_ = pr.CloseWithError(err)
	w := <-done
	if err = errors.Join(err, w.err); err != nil {
		return GenerateFeedResult{}, err
	}
	n := w.rows

	h.logger.Info("Catalogue feed generated", "key", cmd.key, "rows", n)
	return GenerateFeedResult{Key: cmd.key, Rows: n}, nil
}
