package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/metrics"
	"storefront/internal/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
)

var (
	// ErrCartEmpty is returned when the session has no ACTIVE cart or it has no items.
	ErrCartEmpty = errors.New("Cart is empty or not found.")

	// ErrPaymentUnavailable is returned when the order was stored but the payment
	// session could not be opened. The order stays PENDING.
	ErrPaymentUnavailable = errors.New("Unable to process payment. Please try again later.")
)

type CheckoutResult struct {
	OrderID     kernel.UUID
	OrderNumber order.Number
	CheckoutURL string
}

// CheckoutCommandHandler stores the order in one transaction, then asks the payment
// gateway for a checkout session outside of it.
type CheckoutCommandHandler struct {
	uowFactory CheckoutUoWFactory
	payments   ports.PaymentGateway
	urls       services.URLBuilder
	logger     *slog.Logger
	now        func() time.Time
}

func NewCheckoutCommandHandler(
	uowFactory CheckoutUoWFactory,
	payments ports.PaymentGateway,
	urls services.URLBuilder,
	logger *slog.Logger,
) CheckoutCommandHandler {
	return CheckoutCommandHandler{
		uowFactory: uowFactory,
		payments:   payments,
		urls:       urls,
		logger:     logger.With("component", "CheckoutCommandHandler"),
		now:        time.Now,
	}
}

func (h CheckoutCommandHandler) Handle(ctx context.Context, cmd CheckoutCommand) (res CheckoutResult, err error) {
	if err = cmd.Validate(); err != nil {
		return CheckoutResult{}, err
	}

	ctx, span := tracing.Start(ctx, "checkout")
	defer func() { tracing.End(span, err) }()

	o, images, err := h.createOrder(ctx, cmd)
	if err != nil {
		return CheckoutResult{}, err
	}
	metrics.OrdersCreated.Inc()
	span.SetAttributes(attribute.String("order.number", o.Number().String()))
	h.logger.Info("Order created locally", "order_number", o.Number().String(), "order_id", o.ID().String())

	res = CheckoutResult{OrderID: o.ID(), OrderNumber: o.Number()}

	session, err := h.payments.CreateCheckoutSession(ctx, h.checkoutRequest(o, images))
	if err != nil {
		h.logger.Error("Checkout Process Failed", "order_number", o.Number().String(), "error", err)
		return res, fmt.Errorf("%w: %w", ErrPaymentUnavailable, err)
	}
	h.logger.Info("Stripe session created", "order_number", o.Number().String(), "session_id", session.ID)

	res.CheckoutURL = session.URL
	return res, nil
}

// createOrder returns the stored order and the cart line images by variant id.
func (h CheckoutCommandHandler) createOrder(ctx context.Context, cmd CheckoutCommand) (*order.Order, map[string]string, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	c, err := uow.CartRepository().FindActiveBySessionKeyForUpdate(ctx, cmd.SessionKey())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil, ErrCartEmpty
	}
	if err != nil {
		return nil, nil, err
	}
	if c.IsEmpty() {
		return nil, nil, ErrCartEmpty
	}

	shipping, billing, err := checkoutAddresses(cmd)
	if err != nil {
		return nil, nil, err
	}
	if err = c.EnsureStock(); err != nil {
		return nil, nil, err
	}

	o, err := order.NewOrderFromCart(kernel.NewUUID(), order.NewNumber(h.now()), shipping, billing, c)
	if err != nil {
		return nil, nil, err
	}
	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, nil, err
	}

	images := make(map[string]string, len(c.Items()))
	for _, item := range c.Items() {
		images[item.Variant().ID.String()] = item.Variant().Image
	}
	return o, images, nil
}

// checkoutAddresses validates both addresses. The checkout e-mail is the shipping
// e-mail and fills in a billing address submitted without one.
func checkoutAddresses(cmd CheckoutCommand) (order.Address, *order.Address, error) {
	email, emailErr := kernel.NewEmail(cmd.Email())
	if emailErr != nil {
		emailErr = errs.NewValueIsInvalidErrorWithCause("email", emailErr)
	}

	shippingIn := cmd.Shipping()
	shippingIn.Email = cmd.Email()
	shipping, shippingErr := order.NewAddress(kernel.NewUUID(), shippingIn)
	if shippingErr != nil {
		shippingErr = errs.NewValueIsInvalidErrorWithCause("shipping_address", shippingErr)
	}

	var billing *order.Address
	var billingErr error
	if in := cmd.Billing(); in != nil {
		if strings.TrimSpace(in.Email) == "" {
			in.Email = email.String()
		}
		var b order.Address
		if b, billingErr = order.NewAddress(kernel.NewUUID(), *in); billingErr != nil {
			billingErr = errs.NewValueIsInvalidErrorWithCause("billing_address", billingErr)
		} else {
			billing = &b
		}
	}

	if err := errors.Join(emailErr, shippingErr, billingErr); err != nil {
		return order.Address{}, nil, err
	}
	return shipping, billing, nil
}

func (h CheckoutCommandHandler) checkoutRequest(o *order.Order, images map[string]string) ports.CheckoutSessionRequest {
	lines := make([]ports.CheckoutLineItem, 0, len(o.Items()))
	for _, item := range o.Items() {
		line := ports.CheckoutLineItem{
			Name:            item.Name(),
			SKU:             item.SKU(),
			UnitAmountCents: item.UnitPrice().Cents(),
			Quantity:        item.Quantity(),
		}
		if id := item.VariantID(); id != nil {
			line.ImageURL = h.urls.Media(images[id.String()])
		}
		lines = append(lines, line)
	}
	return ports.CheckoutSessionRequest{
		OrderID:        o.ID().String(),
		OrderNumber:    o.Number().String(),
		CartSessionKey: o.CartSessionKey(),
		CustomerEmail:  o.Email().String(),
		Currency:       o.Total().Currency(),
		SuccessURL:     h.urls.ThankYou(o.ID().String()),
		CancelURL:      h.urls.Checkout(),
		LineItems:      lines,
	}
}
