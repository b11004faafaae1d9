package commands

import (
	"errors"
	"path"
	"strings"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

// DefaultFeedKey is where the generated feed is published.
const DefaultFeedKey = "feeds/meta_catalog.csv"

var ErrGenerateFeedCommandIsNotConstructed = errors.New(
	"GenerateFeedCommand must be created via NewGenerateFeedCommand constructor",
)

type GenerateFeedCommand struct { //nolint:recvcheck //using for validation
	key   string
	guard guard.ConstructorGuard
}

// NewGenerateFeedCommand writes the feed under key; an empty key means DefaultFeedKey.
func NewGenerateFeedCommand(key string) (GenerateFeedCommand, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		key = DefaultFeedKey
	}
	if path.IsAbs(key) || strings.HasPrefix(path.Clean(key), "..") {
		return GenerateFeedCommand{}, errs.NewValueIsInvalidError("feed key")
	}
	return GenerateFeedCommand{key: path.Clean(key), guard: guard.NewConstructorGuard()}, nil
}

func (c GenerateFeedCommand) Validate() error {
	return c.guard.Validate(ErrGenerateFeedCommandIsNotConstructed)
}
