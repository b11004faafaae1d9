package commands

import (
	"errors"
	"strings"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	ErrEnsureCartCommandIsNotConstructed = errors.New(
		"EnsureCartCommand must be created via NewEnsureCartCommand constructor",
	)
	ErrAddCartItemCommandIsNotConstructed = errors.New(
		"AddCartItemCommand must be created via NewAddCartItemCommand constructor",
	)
	ErrUpdateCartItemCommandIsNotConstructed = errors.New(
		"UpdateCartItemCommand must be created via NewUpdateCartItemCommand constructor",
	)
	ErrRemoveCartItemCommandIsNotConstructed = errors.New(
		"RemoveCartItemCommand must be created via NewRemoveCartItemCommand constructor",
	)
	ErrAbandonIdleCartsCommandIsNotConstructed = errors.New(
		"AbandonIdleCartsCommand must be created via NewAbandonIdleCartsCommand constructor",
	)
)

func requireSessionKey(sessionKey string) (string, error) {
	sessionKey = strings.TrimSpace(sessionKey)
	if sessionKey == "" {
		return "", errs.NewValueIsRequiredError("session key")
	}
	return sessionKey, nil
}

func requireQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	return nil
}

// EnsureCartCommand resolves the ACTIVE cart of a session, opening a new one under
// a fresh key when there is none.
type EnsureCartCommand struct { //nolint:recvcheck //using for validation
	sessionKey string
	guard      guard.ConstructorGuard
}

func NewEnsureCartCommand(sessionKey string) (EnsureCartCommand, error) {
	key, err := requireSessionKey(sessionKey)
	if err != nil {
		return EnsureCartCommand{}, err
	}
	return EnsureCartCommand{sessionKey: key, guard: guard.NewConstructorGuard()}, nil
}

func (c EnsureCartCommand) Validate() error {
	return c.guard.Validate(ErrEnsureCartCommandIsNotConstructed)
}

func (c EnsureCartCommand) SessionKey() string { return c.sessionKey }

// AddCartItemCommand adds units of a variant to the session's ACTIVE cart.
type AddCartItemCommand struct { //nolint:recvcheck //using for validation
	sessionKey string
	variantID  kernel.UUID
	quantity   int
	guard      guard.ConstructorGuard
}

func NewAddCartItemCommand(sessionKey string, variantID kernel.UUID, quantity int) (AddCartItemCommand, error) {
	key, keyErr := requireSessionKey(sessionKey)
	if err := errors.Join(keyErr, variantID.Validate(), requireQuantity(quantity)); err != nil {
		return AddCartItemCommand{}, err
	}
	return AddCartItemCommand{
		sessionKey: key,
		variantID:  variantID,
		quantity:   quantity,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c AddCartItemCommand) Validate() error {
	return c.guard.Validate(ErrAddCartItemCommandIsNotConstructed)
}

func (c AddCartItemCommand) SessionKey() string     { return c.sessionKey }
func (c AddCartItemCommand) VariantID() kernel.UUID { return c.variantID }
func (c AddCartItemCommand) Quantity() int          { return c.quantity }

// UpdateCartItemCommand sets the quantity of a line of the session's cart.
type UpdateCartItemCommand struct { //nolint:recvcheck //using for validation
	sessionKey string
	itemID     kernel.UUID
	quantity   int
	guard      guard.ConstructorGuard
}

func NewUpdateCartItemCommand(sessionKey string, itemID kernel.UUID, quantity int) (UpdateCartItemCommand, error) {
	key, keyErr := requireSessionKey(sessionKey)
	if err := errors.Join(keyErr, itemID.Validate(), requireQuantity(quantity)); err != nil {
		return UpdateCartItemCommand{}, err
	}
	return UpdateCartItemCommand{
		sessionKey: key,
		itemID:     itemID,
		quantity:   quantity,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateCartItemCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCartItemCommandIsNotConstructed)
}

func (c UpdateCartItemCommand) SessionKey() string  { return c.sessionKey }
func (c UpdateCartItemCommand) ItemID() kernel.UUID { return c.itemID }
func (c UpdateCartItemCommand) Quantity() int       { return c.quantity }

// RemoveCartItemCommand deletes a line of the session's cart.
type RemoveCartItemCommand struct { //nolint:recvcheck //using for validation
	sessionKey string
	itemID     kernel.UUID
	guard      guard.ConstructorGuard
}

func NewRemoveCartItemCommand(sessionKey string, itemID kernel.UUID) (RemoveCartItemCommand, error) {
	key, keyErr := requireSessionKey(sessionKey)
	if err := errors.Join(keyErr, itemID.Validate()); err != nil {
		return RemoveCartItemCommand{}, err
	}
	return RemoveCartItemCommand{sessionKey: key, itemID: itemID, guard: guard.NewConstructorGuard()}, nil
}

func (c RemoveCartItemCommand) Validate() error {
	return c.guard.Validate(ErrRemoveCartItemCommandIsNotConstructed)
}

func (c RemoveCartItemCommand) SessionKey() string  { return c.sessionKey }
func (c RemoveCartItemCommand) ItemID() kernel.UUID { return c.itemID }

// AbandonIdleCartsCommand flags ACTIVE carts untouched for longer than idleFor.
type AbandonIdleCartsCommand struct { //nolint:recvcheck //using for validation
	idleFor time.Duration
	guard   guard.ConstructorGuard
}

func NewAbandonIdleCartsCommand(idleFor time.Duration) (AbandonIdleCartsCommand, error) {
	if idleFor <= 0 {
		return AbandonIdleCartsCommand{}, errs.NewValueIsOutOfRangeError("idle duration", idleFor, "1ns", "unbounded")
	}
	return AbandonIdleCartsCommand{idleFor: idleFor, guard: guard.NewConstructorGuard()}, nil
}

func (c AbandonIdleCartsCommand) Validate() error {
	return c.guard.Validate(ErrAbandonIdleCartsCommandIsNotConstructed)
}

func (c AbandonIdleCartsCommand) IdleFor() time.Duration { return c.idleFor }
