package ports

import (
	"context"
	"io"
)

// CatalogFeedWriter renders the Meta catalogue CSV.
type CatalogFeedWriter interface {
	// WriteFeed writes the header and one row per published variant and returns
	// the number of rows written.
	WriteFeed(ctx context.Context, w io.Writer) (int, error)
}
