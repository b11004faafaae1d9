package commands

import (
	"context"
	"errors"
	"log/slog"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/metrics"
	"storefront/internal/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
)

// PaymentOutcome describes what a webhook delivery changed.
type PaymentOutcome string

const (
	PaymentIgnored      PaymentOutcome = "ignored"
	PaymentMissingOrder PaymentOutcome = "missing_order"
	PaymentAlreadyPaid  PaymentOutcome = "already_paid"
	PaymentMarkedPaid   PaymentOutcome = "marked_paid"
)

// ConfirmPaymentCommandHandler marks orders paid from checkout.session.completed.
// Deliveries that cannot be acted upon are logged and acknowledged; only
// unexpected errors are returned so the provider retries them.
type ConfirmPaymentCommandHandler struct {
	uowFactory CheckoutUoWFactory
	logger     *slog.Logger
}

func NewConfirmPaymentCommandHandler(uowFactory CheckoutUoWFactory, logger *slog.Logger) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "ConfirmPaymentCommandHandler"),
	}
}

func (h ConfirmPaymentCommandHandler) Handle(ctx context.Context, cmd ConfirmPaymentCommand) (outcome PaymentOutcome, err error) {
	if err = cmd.Validate(); err != nil {
		return "", err
	}

	event := cmd.Event()
	if event.Type != ports.EventCheckoutSessionCompleted || event.CheckoutSession == nil {
		h.logger.Info("Unhandled Stripe event type", "type", event.Type, "event_id", event.ID)
		return PaymentIgnored, nil
	}

	ctx, span := tracing.Start(ctx, "payment.webhook", attribute.String("stripe.event_id", event.ID))
	defer func() { tracing.End(span, err) }()

	session := event.CheckoutSession
	rawOrderID := session.OrderID
	if rawOrderID == "" {
		rawOrderID = session.ClientReferenceID
	}
	h.logger.Info("Processing checkout success",
		"order_id", rawOrderID, "cart_session_key", session.CartSessionKey)

	if rawOrderID == "" {
		h.logger.Error("Stripe Session missing order_id and client_reference_id", "session_id", session.ID)
		return PaymentMissingOrder, nil
	}
	orderID, err := kernel.UUIDFromString(rawOrderID)
	if err != nil {
		h.logger.Error("Stripe Session carries a malformed order id", "order_id", rawOrderID)
		return PaymentMissingOrder, nil
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return "", err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()
	o, err := orders.GetForUpdate(ctx, orderID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		h.logger.Error("Order not found during webhook processing", "order_id", rawOrderID)
		return PaymentMissingOrder, nil
	}
	if err != nil {
		return "", err
	}

	outcome = PaymentAlreadyPaid
	changed, err := o.MarkPaid(session.PaymentIntentID)
	if err != nil {
		return "", err
	}
	if changed {
		if err = orders.Update(ctx, o); err != nil {
			return "", err
		}
		outcome = PaymentMarkedPaid
		h.logger.Info("Order marked as PAID via Webhook", "order_number", o.Number().String())
	} else {
		h.logger.Info("Order is already marked as paid. Skipping.", "order_number", o.Number().String())
	}

	if err = h.completeCart(ctx, uow, session.CartSessionKey); err != nil {
		return "", err
	}
	if err = uow.Commit(ctx); err != nil {
		return "", err
	}
	if changed {
		metrics.PaymentsConfirmed.Inc()
	}
	return outcome, nil
}

func (h ConfirmPaymentCommandHandler) completeCart(ctx context.Context, uow CheckoutUoW, sessionKey string) error {
	if sessionKey == "" {
		h.logger.Error("Stripe Session missing cart_session_key")
		return nil
	}
	carts := uow.CartRepository()
	c, err := carts.FindLatestBySessionKey(ctx, sessionKey)
	if errors.Is(err, errs.ErrObjectNotFound) {
		h.logger.Error("Cart not found during webhook processing", "cart_session_key", sessionKey)
		return nil
	}
	if err != nil {
		return err
	}
	if err = c.Complete(); err != nil {
		h.logger.Warn("Cart cannot be completed", "cart_id", c.ID().String(), "status", c.Status().String())
		return nil
	}
	if err = carts.Update(ctx, c); err != nil {
		return err
	}
	h.logger.Info("Cart marked as COMPLETED via Webhook", "cart_id", c.ID().String())
	return nil
}
