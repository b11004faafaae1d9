package queries_test

import (
	"testing"

	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListProductsQuery_RejectsUnknownOrdering(t *testing.T) {
	_, err := queries.NewListProductsQuery(queries.ProductFilter{Ordering: "title"}, queries.PageRequest{})

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewListProductsQuery_PageBounds(t *testing.T) {
	tests := []struct {
		name    string
		page    queries.PageRequest
		wantErr bool
	}{
		{"defaults", queries.PageRequest{}, false},
		{"max page size", queries.PageRequest{Page: 3, PageSize: queries.MaxPageSize}, false},
		{"page size above max", queries.PageRequest{PageSize: queries.MaxPageSize + 1}, true},
		{"negative page", queries.PageRequest{Page: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := queries.NewListProductsQuery(queries.ProductFilter{}, tt.page)
			if tt.wantErr {
				assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNewListOrdersQuery_RejectsUnknownStatus(t *testing.T) {
	_, err := queries.NewListOrdersQuery(queries.OrderFilter{Status: "lost"}, queries.PageRequest{})

	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewGetProductQuery_RequiresSlug(t *testing.T) {
	_, err := queries.NewGetProductQuery("  ")

	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestUnconstructedQueriesAreRejected(t *testing.T) {
	assert.ErrorIs(t, queries.ListProductsQuery{}.Validate(), queries.ErrListProductsQueryIsNotConstructed)
	assert.ErrorIs(t, queries.ListOrdersQuery{}.Validate(), queries.ErrListOrdersQueryIsNotConstructed)
}

func TestPage_Navigation(t *testing.T) {
	page := queries.Page[int]{Count: 45, Page: 2, PageSize: 20}

	assert.True(t, page.HasNext())
	assert.True(t, page.HasPrevious())

	page.Page = 3
	assert.False(t, page.HasNext())
}

func TestGetSupportedCountries(t *testing.T) {
	urls := services.NewURLBuilder("https://shop.test", "https://api.shop.test", "")

	countries, err := queries.NewGetSupportedCountriesQueryHandler(urls).Handle(queries.NewGetSupportedCountriesQuery())

	require.NoError(t, err)
	require.Len(t, countries, 27)
	for _, c := range countries {
		if c.Code == "DE" {
			assert.Equal(t, "Germany", c.Name)
			assert.Equal(t, "https://api.shop.test/static/flags/de.gif", c.Flag)
			return
		}
	}
	t.Fatal("DE missing from supported countries")
}
