package queries

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrListProductsQueryIsNotConstructed = errors.New(
	"ListProductsQuery must be created via NewListProductsQuery constructor",
)

// ProductOrderings are the accepted ordering values; "-" means descending.
var ProductOrderings = []string{"base_price", "-base_price", "created_at", "-created_at"}

// ProductFilter narrows the published catalogue.
type ProductFilter struct {
	// CategorySlug matches the category and all its descendants.
	CategorySlug   string
	CollectionSlug string
	// Search terms must all match title, description or specifications.
	Search   string
	Ordering string
}

// ListProductsQuery lists PUBLISHED products, newest first by default.
type ListProductsQuery struct {
	filter ProductFilter
	page   PageRequest
	guard  guard.ConstructorGuard
}

func NewListProductsQuery(filter ProductFilter, page PageRequest) (ListProductsQuery, error) {
	filter.CategorySlug = strings.TrimSpace(filter.CategorySlug)
	filter.CollectionSlug = strings.TrimSpace(filter.CollectionSlug)
	filter.Search = strings.TrimSpace(filter.Search)
	filter.Ordering = strings.TrimSpace(filter.Ordering)
	if filter.Ordering == "" {
		filter.Ordering = "-created_at"
	}

	var orderingErr error
	if !slices.Contains(ProductOrderings, filter.Ordering) {
		orderingErr = errs.NewValueIsInvalidErrorWithCause("ordering",
			fmt.Errorf("%q is not one of %s", filter.Ordering, strings.Join(ProductOrderings, ", ")))
	}
	page, pageErr := page.normalize()
	if err := errors.Join(orderingErr, pageErr); err != nil {
		return ListProductsQuery{}, err
	}
	return ListProductsQuery{filter: filter, page: page, guard: guard.NewConstructorGuard()}, nil
}

func (q ListProductsQuery) Validate() error {
	return q.guard.Validate(ErrListProductsQueryIsNotConstructed)
}

// ProductListItem is a product card.
type ProductListItem struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Status        string    `json:"status"`
	Thumbnail     string    `json:"thumbnail"`
	BasePrice     string    `json:"base_price"`
	CategoryNames []string  `json:"category_names"`
	CreatedAt     time.Time `json:"created_at"`
}
