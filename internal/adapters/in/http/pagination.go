package http

import (
	"fmt"
	"net/url"
	"strconv"

	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// pageResponse is the paginated envelope; next and previous are absolute URLs.
type pageResponse[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

func pageRequest(ctx echo.Context) (queries.PageRequest, error) {
	page, pageErr := intParam(ctx, "page")
	size, sizeErr := intParam(ctx, "page_size")
	if pageErr != nil {
		return queries.PageRequest{}, pageErr
	}
	if sizeErr != nil {
		return queries.PageRequest{}, sizeErr
	}
	return queries.PageRequest{Page: page, PageSize: size}, nil
}

func intParam(ctx echo.Context, name string) (int, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%q is not a number", raw))
	}
	return v, nil
}

func newPageResponse[T any](ctx echo.Context, page queries.Page[T]) pageResponse[T] {
	results := page.Results
	if results == nil {
		results = []T{}
	}
	resp := pageResponse[T]{Count: page.Count, Results: results}
	if page.HasNext() {
		next := pageURL(ctx, page.Page+1)
		resp.Next = &next
	}
	if page.HasPrevious() {
		prev := pageURL(ctx, page.Page-1)
		resp.Previous = &prev
	}
	return resp
}

// pageURL rebuilds the request URL with another page number. The first page
// drops the parameter.
func pageURL(ctx echo.Context, page int) string {
	req := ctx.Request()
	q := req.URL.Query()
	if page <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}
	u := url.URL{
		Scheme:   ctx.Scheme(),
		Host:     req.Host,
		Path:     req.URL.Path,
		RawQuery: q.Encode(),
	}
	return u.String()
}
