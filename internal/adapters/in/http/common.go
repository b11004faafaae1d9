package http

import (
	"net/http"

	"storefront/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// SupportedCountries handles GET /api/v1/common/supported-countries.
func (s *Server) SupportedCountries(ctx echo.Context) error {
	countries, err := s.h.SupportedCountries.Handle(queries.NewGetSupportedCountriesQuery())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, countries)
}
