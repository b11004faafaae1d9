package commands

import (
	"context"
	"errors"
	"time"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/metrics"
)

// EnsureCartResult identifies the cart a session should use from now on.
type EnsureCartResult struct {
	CartID     kernel.UUID
	SessionKey string
	// Created is true when no ACTIVE cart existed and SessionKey is a new key the
	// caller must store in the session.
	Created bool
}

type EnsureCartCommandHandler struct {
	uowFactory CartUoWFactory
}

func NewEnsureCartCommandHandler(uowFactory CartUoWFactory) EnsureCartCommandHandler {
	return EnsureCartCommandHandler{uowFactory: uowFactory}
}

func (h EnsureCartCommandHandler) Handle(ctx context.Context, cmd EnsureCartCommand) (EnsureCartResult, error) {
	if err := cmd.Validate(); err != nil {
		return EnsureCartResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return EnsureCartResult{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	carts := uow.CartRepository()
	existing, err := carts.FindActiveBySessionKey(ctx, cmd.SessionKey())
	if err == nil {
		return EnsureCartResult{CartID: existing.ID(), SessionKey: existing.SessionKey()}, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return EnsureCartResult{}, err
	}

	created, err := cart.NewCart(kernel.NewUUID(), kernel.NewUUID().String())
	if err != nil {
		return EnsureCartResult{}, err
	}
	if err = carts.Add(ctx, created); err != nil {
		return EnsureCartResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return EnsureCartResult{}, err
	}
	return EnsureCartResult{CartID: created.ID(), SessionKey: created.SessionKey(), Created: true}, nil
}

// AddCartItemCommandHandler merges variant units into the locked cart row.
type AddCartItemCommandHandler struct {
	uowFactory CartUoWFactory
}

func NewAddCartItemCommandHandler(uowFactory CartUoWFactory) AddCartItemCommandHandler {
	return AddCartItemCommandHandler{uowFactory: uowFactory}
}

func (h AddCartItemCommandHandler) Handle(ctx context.Context, cmd AddCartItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	carts := uow.CartRepository()
	c, err := carts.FindActiveBySessionKeyForUpdate(ctx, cmd.SessionKey())
	if err != nil {
		return err
	}

	snapshot, err := loadVariantSnapshot(ctx, uow.ProductRepository(), cmd.VariantID())
	if err != nil {
		return err
	}
	if _, err = c.AddItem(snapshot, cmd.Quantity()); err != nil {
		return err
	}
	if err = carts.Update(ctx, c); err != nil {
		return err
	}
	return uow.Commit(ctx)
}

// loadVariantSnapshot reads what a cart line needs to know about a variant. An
// unknown variant is an invalid request rather than a missing resource.
func loadVariantSnapshot(ctx context.Context, products ports.ProductRepository, id kernel.UUID) (cart.VariantSnapshot, error) {
	variant, err := products.GetVariant(ctx, id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return cart.VariantSnapshot{}, errs.NewValueIsInvalidErrorWithCause("product_variant_id", err)
	}
	if err != nil {
		return cart.VariantSnapshot{}, err
	}
	product, err := products.Get(ctx, variant.ProductID())
	if err != nil {
		return cart.VariantSnapshot{}, err
	}
	return cart.VariantSnapshot{
		ID:           variant.ID(),
		SKU:          variant.SKU(),
		ProductTitle: product.Title(),
		Price:        variant.Price(),
		Stock:        variant.StockQuantity(),
		Image:        variant.Image(),
		Attributes:   variant.Attributes(),
	}, nil
}

type UpdateCartItemCommandHandler struct {
	uowFactory CartUoWFactory
}

func NewUpdateCartItemCommandHandler(uowFactory CartUoWFactory) UpdateCartItemCommandHandler {
	return UpdateCartItemCommandHandler{uowFactory: uowFactory}
}

func (h UpdateCartItemCommandHandler) Handle(ctx context.Context, cmd UpdateCartItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return withLockedCart(ctx, h.uowFactory, cmd.SessionKey(), func(c *cart.Cart) error {
		return c.UpdateItemQuantity(cmd.ItemID(), cmd.Quantity())
	})
}

type RemoveCartItemCommandHandler struct {
	uowFactory CartUoWFactory
}

func NewRemoveCartItemCommandHandler(uowFactory CartUoWFactory) RemoveCartItemCommandHandler {
	return RemoveCartItemCommandHandler{uowFactory: uowFactory}
}

func (h RemoveCartItemCommandHandler) Handle(ctx context.Context, cmd RemoveCartItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return withLockedCart(ctx, h.uowFactory, cmd.SessionKey(), func(c *cart.Cart) error {
		return c.RemoveItem(cmd.ItemID())
	})
}

// withLockedCart applies change to the locked ACTIVE cart of sessionKey. Without
// such a cart the item cannot belong to the session, so the lookup fails as a
// missing cart item.
func withLockedCart(ctx context.Context, uowFactory CartUoWFactory, sessionKey string, change func(*cart.Cart) error) error {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	carts := uow.CartRepository()
	c, err := carts.FindActiveBySessionKeyForUpdate(ctx, sessionKey)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return errs.NewObjectNotFoundErrorWithCause("cart item", sessionKey, err)
	}
	if err != nil {
		return err
	}
	if err = change(c); err != nil {
		return err
	}
	if err = carts.Update(ctx, c); err != nil {
		return err
	}
	return uow.Commit(ctx)
}

type AbandonIdleCartsCommandHandler struct {
	uowFactory CartUoWFactory
	now        func() time.Time
}

func NewAbandonIdleCartsCommandHandler(uowFactory CartUoWFactory) AbandonIdleCartsCommandHandler {
	return AbandonIdleCartsCommandHandler{uowFactory: uowFactory, now: time.Now}
}

// Handle returns the number of carts flagged ABANDONED.
func (h AbandonIdleCartsCommandHandler) Handle(ctx context.Context, cmd AbandonIdleCartsCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cutoff := h.now().UTC().Add(-cmd.IdleFor())
	n, err := uow.CartRepository().AbandonIdleSince(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	metrics.CartsAbandoned.Add(float64(n))
	return n, nil
}
