package queries

import (
	"errors"

	"storefront/internal/pkg/guard"
)

var ErrListCollectionsQueryIsNotConstructed = errors.New(
	"ListCollectionsQuery must be created via NewListCollectionsQuery constructor",
)

// ListCollectionsQuery returns the active collections.
type ListCollectionsQuery struct {
	page  PageRequest
	guard guard.ConstructorGuard
}

func NewListCollectionsQuery(page PageRequest) (ListCollectionsQuery, error) {
	page, err := page.normalize()
	if err != nil {
		return ListCollectionsQuery{}, err
	}
	return ListCollectionsQuery{page: page, guard: guard.NewConstructorGuard()}, nil
}

func (q ListCollectionsQuery) Validate() error {
	return q.guard.Validate(ErrListCollectionsQueryIsNotConstructed)
}

type CollectionView struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Slug         string `json:"slug"`
	Description  string `json:"description"`
	Image        string `json:"image"`
	IsActive     bool   `json:"is_active"`
	ProductCount int    `json:"product_count"`
}
