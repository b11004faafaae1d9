package http

import (
	"net/http"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type addCartItemRequest struct {
	ProductVariantID string `json:"product_variant_id"`
	Quantity         *int   `json:"quantity"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// ensureCart returns the key of the session's ACTIVE cart, opening one when the
// session has none. A new key is stored in the session.
func (s *Server) ensureCart(ctx echo.Context) (string, error) {
	sess := sessionFrom(ctx)
	key := sess.get(cartSessionKeyLabel)
	if key == "" {
		key = uuid.NewString()
	}

	cmd, err := commands.NewEnsureCartCommand(key)
	if err != nil {
		return "", err
	}
	res, err := s.h.EnsureCart.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return "", err
	}
	sess.set(cartSessionKeyLabel, res.SessionKey)
	return res.SessionKey, nil
}

func (s *Server) respondWithCart(ctx echo.Context, sessionKey string) error {
	query, err := queries.NewGetCartQuery(sessionKey)
	if err != nil {
		return err
	}
	view, err := s.h.GetCart.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, view)
}

// GetCart handles GET /api/v1/carts - the session's cart, created on first use.
func (s *Server) GetCart(ctx echo.Context) error {
	key, err := s.ensureCart(ctx)
	if err != nil {
		return err
	}
	return s.respondWithCart(ctx, key)
}

// AddCartItem handles POST /api/v1/carts/items.
func (s *Server) AddCartItem(ctx echo.Context) error {
	var body addCartItemRequest
	if err := ctx.Bind(&body); err != nil {
		return err
	}
	variantID, err := kernel.UUIDFromString(body.ProductVariantID)
	if err != nil {
		return err
	}
	quantity := 1
	if body.Quantity != nil {
		quantity = *body.Quantity
	}

	key, err := s.ensureCart(ctx)
	if err != nil {
		return err
	}
	cmd, err := commands.NewAddCartItemCommand(key, variantID, quantity)
	if err != nil {
		return err
	}
	if err = s.h.AddCartItem.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithCart(ctx, key)
}

// UpdateCartItem handles PATCH /api/v1/carts/items/:id - sets a line quantity.
func (s *Server) UpdateCartItem(ctx echo.Context) error {
	itemID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return err
	}
	var body updateCartItemRequest
	if err = ctx.Bind(&body); err != nil {
		return err
	}

	key, err := s.ensureCart(ctx)
	if err != nil {
		return err
	}
	cmd, err := commands.NewUpdateCartItemCommand(key, itemID, body.Quantity)
	if err != nil {
		return err
	}
	if err = s.h.UpdateCartItem.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithCart(ctx, key)
}

// RemoveCartItem handles DELETE /api/v1/carts/items/:id.
func (s *Server) RemoveCartItem(ctx echo.Context) error {
	itemID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return err
	}

	key, err := s.ensureCart(ctx)
	if err != nil {
		return err
	}
	cmd, err := commands.NewRemoveCartItemCommand(key, itemID)
	if err != nil {
		return err
	}
	if err = s.h.RemoveCartItem.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithCart(ctx, key)
}
