package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrderFromCart or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrderFromCart or RestoreOrder")

	// ErrEmptyCart is returned when checking out a cart without items.
	ErrEmptyCart = errors.New("Cannot create order from empty cart.")
)

// Order is the aggregate root created at checkout. It owns its addresses and item
// snapshots and tracks payment and fulfilment.
//
// Order follows these invariants:
//   - It has at least one item
//   - The total equals the sum of item totals
//   - isPaid is true for every status reached through payment
//   - Status changes follow the transition table of Status
type Order struct {
	id              kernel.UUID
	number          Number
	email           kernel.Email
	status          Status
	shipping        Address
	billing         Address
	items           []*Item
	total           kernel.Money
	isPaid          bool
	paymentIntentID string
	cartSessionKey  string
	createdAt       time.Time
	guard           guard.ConstructorGuard
}

// State carries persisted order fields back into the domain.
type State struct {
	ID              kernel.UUID
	Number          Number
	Email           kernel.Email
	Status          Status
	Shipping        Address
	Billing         Address
	Items           []*Item
	IsPaid          bool
	PaymentIntentID string
	CartSessionKey  string
	CreatedAt       time.Time
}

// NewOrderFromCart snapshots the lines of c into a PENDING order. billing may be nil,
// in which case a copy of shipping is used. The order e-mail is the shipping e-mail.
//
// Example:
//
//	o, err := order.NewOrderFromCart(kernel.NewUUID(), order.NewNumber(time.Now()), shipping, nil, c)
//	if errors.Is(err, order.ErrEmptyCart) {
//	    // respond with cart_empty
//	}
func NewOrderFromCart(id kernel.UUID, number Number, shipping Address, billing *Address, c *cart.Cart) (*Order, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	bill := shipping.CopyAs(kernel.NewUUID())
	if billing != nil {
		bill = *billing
	}

	items := make([]*Item, 0, len(c.Items()))
	for _, line := range c.Items() {
		variantID := line.Variant().ID
		item, err := RestoreItem(ItemState{
			ID:         kernel.NewUUID(),
			VariantID:  &variantID,
			SKU:        line.Variant().SKU,
			Name:       line.Variant().ProductTitle,
			Attributes: line.Variant().Attributes,
			UnitPrice:  line.Variant().Price,
			Quantity:   line.Quantity(),
		})
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return RestoreOrder(State{
		ID:             id,
		Number:         number,
		Email:          shipping.Email(),
		Status:         Pending,
		Shipping:       shipping,
		Billing:        bill,
		Items:          items,
		CartSessionKey: c.SessionKey(),
		CreatedAt:      time.Now().UTC(),
	})
}

// RestoreOrder rebuilds an order from storage, recomputing the total from items.
func RestoreOrder(s State) (*Order, error) {
	var numberErr, emailErr, itemsErr error
	if s.Number.IsZero() {
		numberErr = errs.NewValueIsRequiredError("order_number")
	}
	if s.Email.IsZero() {
		emailErr = errs.NewValueIsRequiredError("email")
	}
	if len(s.Items) == 0 {
		itemsErr = errs.NewValueIsRequiredError("items")
	}
	if err := errors.Join(s.ID.Validate(), s.Status.Validate(), numberErr, emailErr, itemsErr); err != nil {
		return nil, err
	}

	total, err := kernel.NewMoney(0, s.Items[0].UnitPrice().Currency())
	if err != nil {
		return nil, err
	}
	for _, item := range s.Items {
		if total, err = total.Add(item.TotalPrice()); err != nil {
			return nil, err
		}
	}

	return &Order{
		id:              s.ID,
		number:          s.Number,
		email:           s.Email,
		status:          s.Status,
		shipping:        s.Shipping,
		billing:         s.Billing,
		items:           slices.Clone(s.Items),
		total:           total,
		isPaid:          s.IsPaid,
		paymentIntentID: s.PaymentIntentID,
		cartSessionKey:  s.CartSessionKey,
		createdAt:       s.CreatedAt,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Order was constructed through a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID { return o.id }
func (o *Order) Number() Number { return o.number }
func (o *Order) Email() kernel.Email { return o.email }
func (o *Order) Status() Status { return o.status }
func (o *Order) ShippingAddress() Address { return o.shipping }
func (o *Order) BillingAddress() Address { return o.billing }
func (o *Order) Items() []*Item { return slices.Clone(o.items) }
func (o *Order) Total() kernel.Money { return o.total }
func (o *Order) IsPaid() bool { return o.isPaid }
func (o *Order) PaymentIntentID() string { return o.paymentIntentID }
func (o *Order) CartSessionKey() string { return o.cartSessionKey }
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// TotalItems is the number of units across all items.
func (o *Order) TotalItems() int {
	n := 0
	for _, item := range o.items {
		n += item.quantity
	}
	return n
}

// MarkPaid records a confirmed payment. It reports false without changing anything
// when the order is already paid, which keeps repeated webhook deliveries harmless.
func (o *Order) MarkPaid(paymentIntentID string) (bool, error) {
	if o.isPaid {
		return false, nil
	}
	next, err := o.status.TransitionTo(Paid)
	if err != nil {
		return false, err
	}
	o.status = next
	o.isPaid = true
	if id := strings.TrimSpace(paymentIntentID); id != "" {
		o.paymentIntentID = id
	}
	return true, nil
}

// ChangeStatus moves the order along the fulfilment workflow. Moving to Paid goes
// through MarkPaid so the payment flag stays consistent.
func (o *Order) ChangeStatus(target Status) error {
	if target == Paid {
		changed, err := o.MarkPaid("")
		if err != nil {
			return err
		}
		if !changed {
			return fmt.Errorf("%w: order %s is already paid", ErrInvalidTransition, o.number)
		}
		return nil
	}
	next, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}
	o.status = next
	return nil
}
