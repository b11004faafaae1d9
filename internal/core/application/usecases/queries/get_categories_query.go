package queries

import (
	"errors"
	"strings"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	ErrGetCategoryTreeQueryIsNotConstructed = errors.New(
		"GetCategoryTreeQuery must be created via NewGetCategoryTreeQuery constructor",
	)
	ErrGetCategoryQueryIsNotConstructed = errors.New(
		"GetCategoryQuery must be created via NewGetCategoryQuery constructor",
	)
)

// GetCategoryTreeQuery returns every category nested under its parent.
type GetCategoryTreeQuery struct {
	guard guard.ConstructorGuard
}

func NewGetCategoryTreeQuery() GetCategoryTreeQuery {
	return GetCategoryTreeQuery{guard: guard.NewConstructorGuard()}
}

func (q GetCategoryTreeQuery) Validate() error {
	return q.guard.Validate(ErrGetCategoryTreeQueryIsNotConstructed)
}

// GetCategoryQuery returns one category with its direct children.
type GetCategoryQuery struct {
	slug  string
	guard guard.ConstructorGuard
}

func NewGetCategoryQuery(slug string) (GetCategoryQuery, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return GetCategoryQuery{}, errs.NewValueIsRequiredError("slug")
	}
	return GetCategoryQuery{slug: slug, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCategoryQuery) Validate() error {
	return q.guard.Validate(ErrGetCategoryQueryIsNotConstructed)
}

// CategoryTreeNode is a category in the navigation tree.
type CategoryTreeNode struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Slug        string              `json:"slug"`
	Image       string              `json:"image"`
	Children    []*CategoryTreeNode `json:"children"`
	SEOMetadata map[string]any      `json:"seo_metadata"`
}

// CategorySummary is a category as listed under a product or a parent.
type CategorySummary struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Slug        string         `json:"slug"`
	Description string         `json:"description"`
	Image       string         `json:"image"`
	Parent      *string        `json:"parent"`
	SEOMetadata map[string]any `json:"seo_metadata"`
}

// CategoryDetail is a category page.
type CategoryDetail struct {
	CategorySummary
	Children []CategorySummary `json:"children"`
}
