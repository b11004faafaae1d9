package http

import (
	"errors"
	"net/http"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type addressRequest struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"address_line_1"`
	AddressLine2 string `json:"address_line_2"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`
}

func (a addressRequest) input() order.AddressInput {
	return order.AddressInput{
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		Email:        a.Email,
		Phone:        a.Phone,
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		City:         a.City,
		State:        a.State,
		PostalCode:   a.PostalCode,
		Country:      a.Country,
	}
}

type checkoutRequest struct {
	Email           string          `json:"email"`
	ShippingAddress addressRequest  `json:"shipping_address"`
	BillingAddress  *addressRequest `json:"billing_address"`
}

type checkoutResponse struct {
	Status      string `json:"status"`
	OrderNumber string `json:"order_number"`
	CheckoutURL string `json:"checkout_url"`
}

// requireCart rejects the request with cart_empty unless the session holds an
// ACTIVE cart with at least one item.
func (s *Server) requireCart(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		key := sessionFrom(ctx).get(cartSessionKeyLabel)
		if key == "" {
			return commands.ErrCartEmpty
		}
		query, err := queries.NewGetCartQuery(key)
		if err != nil {
			return err
		}
		view, err := s.h.GetCart.Handle(ctx.Request().Context(), query)
		if errors.Is(err, errs.ErrObjectNotFound) || (err == nil && len(view.Items) == 0) {
			return commands.ErrCartEmpty
		}
		if err != nil {
			return err
		}
		return next(ctx)
	}
}

// Checkout handles POST /api/v1/orders/checkout - turns the session's cart into
// an order and returns the hosted payment page.
func (s *Server) Checkout(ctx echo.Context) error {
	var body checkoutRequest
	if err := ctx.Bind(&body); err != nil {
		return err
	}

	key := sessionFrom(ctx).get(cartSessionKeyLabel)

	var billing *order.AddressInput
	if body.BillingAddress != nil {
		b := body.BillingAddress.input()
		billing = &b
	}
	cmd, err := commands.NewCheckoutCommand(key, body.Email, body.ShippingAddress.input(), billing)
	if err != nil {
		return err
	}

	res, err := s.h.Checkout.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, checkoutResponse{
		Status:      "success",
		OrderNumber: res.OrderNumber.String(),
		CheckoutURL: res.CheckoutURL,
	})
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return err
	}
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return err
	}
	view, err := s.h.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, view)
}
