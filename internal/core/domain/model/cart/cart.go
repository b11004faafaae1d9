package cart

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	ErrCartIsNotConstructed = errors.New("Cart must be created via NewCart or RestoreCart")

	// ErrInsufficientStock is wrapped by InsufficientStockError.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// InsufficientStockError reports a requested quantity above the variant stock.
type InsufficientStockError struct {
	SKU       string
	Requested int
	Available int
	Message   string
}

func (e *InsufficientStockError) Error() string {
	return e.Message
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// Cart is the aggregate holding a shopper's line items.
type Cart struct {
	id         kernel.UUID
	sessionKey string
	status     Status
	items      []*Item
	updatedAt  time.Time
	guard      guard.ConstructorGuard
}

// NewCart opens an ACTIVE cart for sessionKey.
func NewCart(id kernel.UUID, sessionKey string) (*Cart, error) {
	return RestoreCart(id, sessionKey, StatusActive, nil, time.Now().UTC())
}

func RestoreCart(id kernel.UUID, sessionKey string, status Status, items []*Item, updatedAt time.Time) (*Cart, error) {
	sessionKey = strings.TrimSpace(sessionKey)
	var keyErr error
	if sessionKey == "" {
		keyErr = errs.NewValueIsRequiredError("session key")
	}
	if err := errors.Join(id.Validate(), status.Validate(), keyErr); err != nil {
		return nil, err
	}
	return &Cart{
		id:         id,
		sessionKey: sessionKey,
		status:     status,
		items:      slices.Clone(items),
		updatedAt:  updatedAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c *Cart) Validate() error {
	if c == nil {
		return ErrCartIsNotConstructed
	}
	return c.guard.Validate(ErrCartIsNotConstructed)
}

func (c *Cart) ID() kernel.UUID { return c.id }
func (c *Cart) SessionKey() string { return c.sessionKey }
func (c *Cart) Status() Status { return c.status }
func (c *Cart) UpdatedAt() time.Time { return c.updatedAt }
func (c *Cart) Items() []*Item { return slices.Clone(c.items) }
func (c *Cart) IsEmpty() bool { return len(c.items) == 0 }

// Item looks a line up by id.
func (c *Cart) Item(id kernel.UUID) (*Item, error) {
	for _, item := range c.items {
		if item.id.IsEqual(id) {
			return item, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("cart item", id.String())
}

func (c *Cart) itemForVariant(variantID kernel.UUID) *Item {
	for _, item := range c.items {
		if item.variant.ID.IsEqual(variantID) {
			return item
		}
	}
	return nil
}

// AddItem adds quantity units of variant, merging with an existing line for the
// same variant. The merged quantity must not exceed stock.
func (c *Cart) AddItem(variant VariantSnapshot, quantity int) (*Item, error) {
	if err := c.ensureActive(); err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}

	existing := c.itemForVariant(variant.ID)
	newQuantity := quantity
	if existing != nil {
		newQuantity += existing.quantity
	}
	if newQuantity > variant.Stock {
		return nil, &InsufficientStockError{
			SKU:       variant.SKU,
			Requested: newQuantity,
			Available: variant.Stock,
			Message:   fmt.Sprintf("Only %d in stock.", variant.Stock),
		}
	}

	if existing != nil {
		existing.variant = variant
		existing.quantity = newQuantity
		c.touch()
		return existing, nil
	}

	item, err := RestoreItem(kernel.NewUUID(), variant, newQuantity)
	if err != nil {
		return nil, err
	}
	c.items = append(c.items, item)
	c.touch()
	return item, nil
}

// UpdateItemQuantity sets the quantity of an existing line.
func (c *Cart) UpdateItemQuantity(itemID kernel.UUID, quantity int) error {
	if err := c.ensureActive(); err != nil {
		return err
	}
	if quantity < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	item, err := c.Item(itemID)
	if err != nil {
		return err
	}
	if quantity > item.variant.Stock {
		return &InsufficientStockError{
			SKU:       item.variant.SKU,
			Requested: quantity,
			Available: item.variant.Stock,
			Message:   "Not enough stock.",
		}
	}
	item.quantity = quantity
	c.touch()
	return nil
}

func (c *Cart) RemoveItem(itemID kernel.UUID) error {
	if err := c.ensureActive(); err != nil {
		return err
	}
	idx := slices.IndexFunc(c.items, func(i *Item) bool { return i.id.IsEqual(itemID) })
	if idx < 0 {
		return errs.NewObjectNotFoundError("cart item", itemID.String())
	}
	c.items = slices.Delete(c.items, idx, idx+1)
	c.touch()
	return nil
}

// EnsureStock re-checks every line against the stock loaded with the cart.
func (c *Cart) EnsureStock() error {
	var problems []error
	for _, item := range c.items {
		if item.quantity > item.variant.Stock {
			problems = append(problems, &InsufficientStockError{
				SKU:       item.variant.SKU,
				Requested: item.quantity,
				Available: item.variant.Stock,
				Message:   fmt.Sprintf("Only %d of %s in stock.", item.variant.Stock, item.variant.SKU),
			})
		}
	}
	return errors.Join(problems...)
}

// Complete marks a checked-out cart. Completing twice is a no-op.
func (c *Cart) Complete() error {
	if c.status == StatusCompleted {
		return nil
	}
	if err := c.ensureActive(); err != nil {
		return err
	}
	c.status = StatusCompleted
	c.touch()
	return nil
}

func (c *Cart) Abandon() error {
	if err := c.ensureActive(); err != nil {
		return err
	}
	c.status = StatusAbandoned
	c.touch()
	return nil
}

// TotalPrice sums line totals in the currency of the first line, or in fallback
// for an empty cart.
func (c *Cart) TotalPrice(fallback string) (kernel.Money, error) {
	currency := fallback
	if len(c.items) > 0 {
		currency = c.items[0].variant.Price.Currency()
	}
	total, err := kernel.NewMoney(0, currency)
	if err != nil {
		return kernel.Money{}, err
	}
	for _, item := range c.items {
		if total, err = total.Add(item.TotalPrice()); err != nil {
			return kernel.Money{}, err
		}
	}
	return total, nil
}

func (c *Cart) TotalItems() int {
	n := 0
	for _, item := range c.items {
		n += item.quantity
	}
	return n
}

func (c *Cart) ensureActive() error {
	if c.status != StatusActive {
		return errs.NewValueIsInvalidErrorWithCause("cart status", fmt.Errorf("cart is %s", c.status))
	}
	return nil
}

func (c *Cart) touch() {
	c.updatedAt = time.Now().UTC()
}
