package http

import (
	"errors"
	"net/http"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

var errMissingSession = errors.New("Session cookie missing.")

type errorResponse struct {
	Error     string   `json:"error"`
	Code      string   `json:"code,omitempty"`
	Details   []string `json:"details,omitempty"`
	Available *int     `json:"available,omitempty"`
}

// statusFor maps an application error to the response it is reported as.
func statusFor(err error) (int, errorResponse) {
	var stock *cart.InsufficientStockError
	var httpErr *echo.HTTPError

	switch {
	case errors.Is(err, commands.ErrCartEmpty):
		return http.StatusBadRequest, errorResponse{Error: commands.ErrCartEmpty.Error(), Code: "cart_empty"}
	case errors.Is(err, errMissingSession):
		return http.StatusBadRequest, errorResponse{Error: errMissingSession.Error(), Code: "missing_session"}
	case errors.As(err, &stock):
		available := stock.Available
		return http.StatusBadRequest, errorResponse{Error: stock.Message, Code: "insufficient_stock", Available: &available}
	case errors.Is(err, commands.ErrPaymentUnavailable):
		return http.StatusBadGateway, errorResponse{Error: commands.ErrPaymentUnavailable.Error()}
	case errors.Is(err, ports.ErrInvalidWebhook):
		return http.StatusBadRequest, errorResponse{Error: "Invalid payload or signature."}
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, errorResponse{Error: "Not found."}
	case errors.Is(err, order.ErrInvalidTransition), errors.Is(err, errs.ErrConflict):
		return http.StatusConflict, errorResponse{Error: err.Error()}
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, errorResponse{Error: "Invalid request.", Details: details(err)}
	case errors.As(err, &httpErr):
		msg := http.StatusText(httpErr.Code)
		if m, ok := httpErr.Message.(string); ok {
			msg = m
		}
		return httpErr.Code, errorResponse{Error: msg}
	default:
		return http.StatusInternalServerError, errorResponse{Error: "Internal server error."}
	}
}

// details flattens joined errors into one message each.
func details(err error) []string {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []string
		for _, e := range joined.Unwrap() {
			out = append(out, details(e)...)
		}
		return out
	}
	return []string{err.Error()}
}

// handleError is the echo error handler; every handler returns errors here.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status, body := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed", "method", c.Request().Method, "path", c.Path(), "error", err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, body)
	}
	if err != nil {
		s.logger.Error("Failed to write error response", "error", err)
	}
}
