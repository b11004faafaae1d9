// Package queries contains read operations for the storefront API.
// Handlers read straight from Postgres with SQL tuned for each read model and
// never load aggregates.
package queries

import (
	"fmt"
	"strings"

	"storefront/internal/pkg/errs"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageRequest is a page-number pagination request. Zero values select the first
// page and DefaultPageSize.
type PageRequest struct {
	Page     int
	PageSize int
}

func (p PageRequest) normalize() (PageRequest, error) {
	if p.Page == 0 {
		p.Page = 1
	}
	if p.PageSize == 0 {
		p.PageSize = DefaultPageSize
	}
	if p.Page < 1 {
		return p, errs.NewValueIsOutOfRangeError("page", p.Page, 1, "unbounded")
	}
	if p.PageSize < 1 || p.PageSize > MaxPageSize {
		return p, errs.NewValueIsOutOfRangeError("page_size", p.PageSize, 1, MaxPageSize)
	}
	return p, nil
}

func (p PageRequest) offset() int {
	return (p.Page - 1) * p.PageSize
}

// Page is one page of results with the total count across pages.
type Page[T any] struct {
	Count    int64
	Page     int
	PageSize int
	Results  []T
}

func (p Page[T]) HasNext() bool {
	return int64(p.Page*p.PageSize) < p.Count
}

func (p Page[T]) HasPrevious() bool {
	return p.Page > 1
}

// formatCents renders an amount as a decimal string, e.g. "12.50".
func formatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// likePattern escapes LIKE wildcards in term and wraps it in %.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}
