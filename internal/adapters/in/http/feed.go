package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// CatalogueFeed handles GET /api/v1/facebook/catalogue/feed - streams the Meta
// catalogue CSV.
func (s *Server) CatalogueFeed(ctx echo.Context) error {
	res := ctx.Response()
	res.Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	res.Header().Set(echo.HeaderContentDisposition, `attachment; filename="meta_catalog.csv"`)
	res.WriteHeader(http.StatusOK)

	rows, err := s.h.Feed.WriteFeed(ctx.Request().Context(), res)
	if err != nil {
		// The status line is already sent, the client sees a truncated file.
		s.logger.Error("Catalogue feed interrupted", "rows", rows, "error", err)
		return nil
	}
	s.logger.Debug("Catalogue feed served", "rows", rows)
	return nil
}
