package http

import (
	"net/http"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/tracking"

	"github.com/labstack/echo/v4"
)

const (
	fbpCookie = "_fbp"
	fbcCookie = "_fbc"
)

type trackingRequest struct {
	EventID string `json:"event_id"`
	URL     string `json:"url"`
}

type viewContentRequest struct {
	trackingRequest
	ProductSlug string `json:"product_slug"`
	VariantSKU  string `json:"variant_sku"`
}

type addToCartRequest struct {
	trackingRequest
	VariantSKU string `json:"variant_sku"`
	Quantity   int    `json:"quantity"`
}

type purchaseRequest struct {
	trackingRequest
	OrderNumber string `json:"order_number"`
}

var tracked = map[string]string{"status": "tracked"}

// trackingContext collects the shopper context Meta matches events on: client
// address, user agent, the pixel cookies and the session as external id.
func trackingContext(ctx echo.Context, body trackingRequest) commands.TrackingContext {
	user := tracking.UserData{
		ClientIPAddress: ctx.RealIP(),
		ClientUserAgent: ctx.Request().UserAgent(),
		ExternalID:      sessionFrom(ctx).id,
	}
	if c, err := ctx.Cookie(fbpCookie); err == nil {
		user.FBP = c.Value
	}
	if c, err := ctx.Cookie(fbcCookie); err == nil {
		user.FBC = c.Value
	}
	return commands.TrackingContext{EventID: body.EventID, URL: body.URL, User: user}
}

// TrackViewContent handles POST /api/v1/facebook/conversions/view-content.
func (s *Server) TrackViewContent(ctx echo.Context) error {
	var body viewContentRequest
	if err := ctx.Bind(&body); err != nil {
		return err
	}
	cmd, err := commands.NewTrackViewContentCommand(trackingContext(ctx, body.trackingRequest), body.ProductSlug, body.VariantSKU)
	if err != nil {
		return err
	}
	if err = s.h.Track.HandleViewContent(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, tracked)
}

// TrackAddToCart handles POST /api/v1/facebook/conversions/add-to-cart.
func (s *Server) TrackAddToCart(ctx echo.Context) error {
	var body addToCartRequest
	if err := ctx.Bind(&body); err != nil {
		return err
	}
	cmd, err := commands.NewTrackAddToCartCommand(trackingContext(ctx, body.trackingRequest), body.VariantSKU, body.Quantity)
	if err != nil {
		return err
	}
	if err = s.h.Track.HandleAddToCart(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, tracked)
}

// TrackInitiateCheckout handles POST /api/v1/facebook/conversions/initiate-checkout
// for the session's cart.
func (s *Server) TrackInitiateCheckout(ctx echo.Context) error {
	var body trackingRequest
	if err := ctx.Bind(&body); err != nil {
		return err
	}
	key := sessionFrom(ctx).get(cartSessionKeyLabel)
	if key == "" {
		return errMissingSession
	}
	cmd, err := commands.NewTrackInitiateCheckoutCommand(trackingContext(ctx, body), key)
	if err != nil {
		return err
	}
	if err = s.h.Track.HandleInitiateCheckout(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, tracked)
}

// TrackPurchase handles POST /api/v1/facebook/conversions/purchase.
func (s *Server) TrackPurchase(ctx echo.Context) error {
	var body purchaseRequest
	if err := ctx.Bind(&body); err != nil {
		return err
	}
	cmd, err := commands.NewTrackPurchaseCommand(trackingContext(ctx, body.trackingRequest), body.OrderNumber)
	if err != nil {
		return err
	}
	if err = s.h.Track.HandlePurchase(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, tracked)
}
