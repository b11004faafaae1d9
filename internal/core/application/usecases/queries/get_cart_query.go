package queries

import (
	"errors"
	"strings"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrGetCartQueryIsNotConstructed = errors.New(
	"GetCartQuery must be created via NewGetCartQuery constructor",
)

// GetCartQuery reads the ACTIVE cart of a session.
type GetCartQuery struct {
	sessionKey string
	guard      guard.ConstructorGuard
}

func NewGetCartQuery(sessionKey string) (GetCartQuery, error) {
	sessionKey = strings.TrimSpace(sessionKey)
	if sessionKey == "" {
		return GetCartQuery{}, errs.NewValueIsRequiredError("session key")
	}
	return GetCartQuery{sessionKey: sessionKey, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCartQuery) Validate() error {
	return q.guard.Validate(ErrGetCartQueryIsNotConstructed)
}

type CartVariantView struct {
	VariantView
	ProductTitle string `json:"product_title"`
	ProductSlug  string `json:"product_slug"`
}

type CartItemView struct {
	ID         string          `json:"id"`
	Quantity   int             `json:"quantity"`
	TotalPrice string          `json:"total_price"`
	Variant    CartVariantView `json:"variant"`
}

type CartView struct {
	ID         string         `json:"id"`
	Status     string         `json:"status"`
	Items      []CartItemView `json:"items"`
	TotalPrice string         `json:"total_price"`
	TotalItems int            `json:"total_items"`
}
