package ports

import "context"

// ProductSummary is what the suggester sees of a product.
type ProductSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Specs       any    `json:"specs,omitempty"`
}

// CategorySuggester maps products to category names from tree.
type CategorySuggester interface {
	SuggestCategories(ctx context.Context, tree string, products []ProductSummary) (map[string][]string, error)
}
