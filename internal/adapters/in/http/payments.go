package http

import (
	"fmt"
	"io"
	"net/http"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/ports"

	"github.com/labstack/echo/v4"
)

const (
	stripeSignatureHeader = "Stripe-Signature"
	maxWebhookBody        = 1 << 20
)

// StripeWebhook handles POST /api/v1/payments/webhooks. The raw body is verified
// against the signature header before anything is decoded.
func (s *Server) StripeWebhook(ctx echo.Context) error {
	payload, err := io.ReadAll(io.LimitReader(ctx.Request().Body, maxWebhookBody))
	if err != nil {
		return fmt.Errorf("%w: %w", ports.ErrInvalidWebhook, err)
	}

	event, err := s.payments.ParseWebhookEvent(payload, ctx.Request().Header.Get(stripeSignatureHeader))
	if err != nil {
		s.logger.Warn("Rejected Stripe webhook", "error", err)
		return err
	}
	cmd, err := commands.NewConfirmPaymentCommand(event)
	if err != nil {
		return fmt.Errorf("%w: %w", ports.ErrInvalidWebhook, err)
	}

	outcome, err := s.h.ConfirmPayment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		// Any 5xx makes Stripe redeliver the event.
		s.logger.Error("Failed to process Stripe webhook", "event_id", event.ID, "error", err)
		return ctx.JSON(http.StatusInternalServerError, errorResponse{Error: "Webhook processing failed."})
	}
	s.logger.Info("Processed Stripe webhook", "event_id", event.ID, "type", event.Type, "outcome", outcome)
	return ctx.JSON(http.StatusOK, map[string]string{"status": "success"})
}
