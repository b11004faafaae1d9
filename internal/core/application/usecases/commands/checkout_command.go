package commands

import (
	"errors"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/guard"
)

var ErrCheckoutCommandIsNotConstructed = errors.New(
	"CheckoutCommand must be created via NewCheckoutCommand constructor",
)

// CheckoutCommand turns the session's ACTIVE cart into a PENDING order and opens a
// hosted payment page for it.
//
// Example:
//
//	cmd, err := NewCheckoutCommand(sessionKey, "jane@example.com", shipping, nil)
//	if err != nil {
//	    return err
//	}
//	res, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrCartEmpty) {
//	    // 400 cart_empty
//	}
//	redirect(res.CheckoutURL)
type CheckoutCommand struct { //nolint:recvcheck //using for validation
	sessionKey string
	email      string
	shipping   order.AddressInput
	billing    *order.AddressInput

	guard guard.ConstructorGuard
}

// NewCheckoutCommand only requires the session key; addresses are validated by the
// handler once the cart is known to be non-empty. billing may be nil.
func NewCheckoutCommand(
	sessionKey, email string,
	shipping order.AddressInput,
	billing *order.AddressInput,
) (CheckoutCommand, error) {
	key, err := requireSessionKey(sessionKey)
	if err != nil {
		return CheckoutCommand{}, err
	}
	cmd := CheckoutCommand{
		sessionKey: key,
		email:      email,
		shipping:   shipping,
		guard:      guard.NewConstructorGuard(),
	}
	if billing != nil {
		b := *billing
		cmd.billing = &b
	}
	return cmd, nil
}

func (c CheckoutCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutCommandIsNotConstructed)
}

func (c CheckoutCommand) SessionKey() string           { return c.sessionKey }
func (c CheckoutCommand) Email() string                { return c.email }
func (c CheckoutCommand) Shipping() order.AddressInput { return c.shipping }

func (c CheckoutCommand) Billing() *order.AddressInput {
	if c.billing == nil {
		return nil
	}
	b := *c.billing
	return &b
}
