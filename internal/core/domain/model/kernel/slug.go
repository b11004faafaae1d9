package kernel

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify folds accents and lower-cases title, keeping ASCII letters and digits and
// joining the remaining runs with single hyphens.
func Slugify(title string) string {
	folder := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(folder, title)
	if err != nil {
		folded = title
	}

	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		default:
			pendingHyphen = true
		}
	}
	return b.String()
}

// SlugExistsFunc reports whether a slug is already taken.
type SlugExistsFunc func(ctx context.Context, slug string) (bool, error)

// UniqueSlug returns base, or base-2, base-3... whichever is free first.
func UniqueSlug(ctx context.Context, base string, exists SlugExistsFunc) (string, error) {
	if base == "" {
		base = "item"
	}
	candidate := base
	for i := 2; ; i++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
