package http

import (
	"context"
	"fmt"
	"net/http"

	"storefront/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
)

// Contract is the validated OpenAPI document of the API.
type Contract struct {
	doc    *openapi3.T
	router routers.Router
	json   []byte
}

// LoadContract parses and validates an OpenAPI 3 document.
func LoadContract(ctx context.Context, spec []byte) (*Contract, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(spec)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}
	raw, err := doc.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return &Contract{doc: doc, router: router, json: raw}, nil
}

func (ct *Contract) Version() string {
	return ct.doc.Info.Version
}

func (ct *Contract) ServeJSON(c echo.Context) error {
	return c.JSONBlob(http.StatusOK, ct.json)
}

// ValidateRequests checks parameters and JSON bodies of documented operations.
// Undocumented routes pass through untouched.
func (ct *Contract) ValidateRequests(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		route, pathParams, err := ct.router.FindRoute(req)
		if err != nil {
			return next(c)
		}

		input := &openapi3filter.RequestValidationInput{
			Request:    req,
			PathParams: pathParams,
			Route:      route,
			Options: &openapi3filter.Options{
				AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
			},
		}
		if err = openapi3filter.ValidateRequest(req.Context(), input); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("request", err)
		}
		return next(c)
	}
}
