package commands

import (
	"errors"
	"strings"

	"storefront/internal/core/domain/model/tracking"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrTrackCommandIsNotConstructed = errors.New(
	"tracking commands must be created via their New...Command constructors",
)

// TrackingContext is the request-scoped part of every conversion event: the
// browser event id used for deduplication, the page URL and the shopper context
// taken from the request.
type TrackingContext struct {
	EventID string
	URL     string
	User    tracking.UserData
}

func (tc TrackingContext) validate(requireEventID bool) error {
	var eventIDErr error
	if requireEventID && strings.TrimSpace(tc.EventID) == "" {
		eventIDErr = errs.NewValueIsRequiredError("event_id")
	}
	return errors.Join(eventIDErr, tracking.ValidateSourceURL(tc.URL))
}

type TrackViewContentCommand struct { //nolint:recvcheck //using for validation
	tracking    TrackingContext
	productSlug string
	variantSKU  string
	guard       guard.ConstructorGuard
}

// NewTrackViewContentCommand reports a product page view. variantSKU is optional.
func NewTrackViewContentCommand(tc TrackingContext, productSlug, variantSKU string) (TrackViewContentCommand, error) {
	var slugErr error
	if strings.TrimSpace(productSlug) == "" {
		slugErr = errs.NewValueIsRequiredError("product_slug")
	}
	if err := errors.Join(tc.validate(true), slugErr); err != nil {
		return TrackViewContentCommand{}, err
	}
	return TrackViewContentCommand{
		tracking:    tc,
		productSlug: strings.TrimSpace(productSlug),
		variantSKU:  strings.TrimSpace(variantSKU),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c TrackViewContentCommand) Validate() error {
	return c.guard.Validate(ErrTrackCommandIsNotConstructed)
}

type TrackAddToCartCommand struct { //nolint:recvcheck //using for validation
	tracking   TrackingContext
	variantSKU string
	quantity   int
	guard      guard.ConstructorGuard
}

// NewTrackAddToCartCommand reports units of a variant put into a cart. A zero
// quantity means one.
func NewTrackAddToCartCommand(tc TrackingContext, variantSKU string, quantity int) (TrackAddToCartCommand, error) {
	if quantity == 0 {
		quantity = 1
	}
	var skuErr error
	if strings.TrimSpace(variantSKU) == "" {
		skuErr = errs.NewValueIsRequiredError("variant_sku")
	}
	if err := errors.Join(tc.validate(true), skuErr, requireQuantity(quantity)); err != nil {
		return TrackAddToCartCommand{}, err
	}
	return TrackAddToCartCommand{
		tracking:   tc,
		variantSKU: strings.TrimSpace(variantSKU),
		quantity:   quantity,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c TrackAddToCartCommand) Validate() error {
	return c.guard.Validate(ErrTrackCommandIsNotConstructed)
}

type TrackInitiateCheckoutCommand struct { //nolint:recvcheck //using for validation
	tracking   TrackingContext
	sessionKey string
	guard      guard.ConstructorGuard
}

// NewTrackInitiateCheckoutCommand reports the start of checkout for the ACTIVE cart
// under sessionKey. An empty key is reported by the caller as a missing session.
func NewTrackInitiateCheckoutCommand(tc TrackingContext, sessionKey string) (TrackInitiateCheckoutCommand, error) {
	key, keyErr := requireSessionKey(sessionKey)
	if err := errors.Join(tc.validate(true), keyErr); err != nil {
		return TrackInitiateCheckoutCommand{}, err
	}
	return TrackInitiateCheckoutCommand{tracking: tc, sessionKey: key, guard: guard.NewConstructorGuard()}, nil
}

func (c TrackInitiateCheckoutCommand) Validate() error {
	return c.guard.Validate(ErrTrackCommandIsNotConstructed)
}

type TrackPurchaseCommand struct { //nolint:recvcheck //using for validation
	tracking    TrackingContext
	orderNumber string
	guard       guard.ConstructorGuard
}

// NewTrackPurchaseCommand reports a completed order. The order number doubles as
// the event id, so tc.EventID is optional.
func NewTrackPurchaseCommand(tc TrackingContext, orderNumber string) (TrackPurchaseCommand, error) {
	var numberErr error
	if strings.TrimSpace(orderNumber) == "" {
		numberErr = errs.NewValueIsRequiredError("order_number")
	}
	if err := errors.Join(tc.validate(false), numberErr); err != nil {
		return TrackPurchaseCommand{}, err
	}
	return TrackPurchaseCommand{
		tracking:    tc,
		orderNumber: strings.TrimSpace(orderNumber),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c TrackPurchaseCommand) Validate() error {
	return c.guard.Validate(ErrTrackCommandIsNotConstructed)
}
