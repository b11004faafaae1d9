// Package stripe implements the payment gateway on Stripe Checkout.
package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/core/ports"

	stripego "github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
	"github.com/stripe/stripe-go/v81/webhook"
)

var ErrNotConfigured = errors.New("stripe is not configured")

type Gateway struct {
	api           *client.API
	webhookSecret string
}

func NewGateway(secretKey, webhookSecret string) *Gateway {
	return NewGatewayWithBackends(secretKey, webhookSecret, nil)
}

// NewGatewayWithBackends is NewGateway against custom API backends.
func NewGatewayWithBackends(secretKey, webhookSecret string, backends *stripego.Backends) *Gateway {
	g := &Gateway{webhookSecret: webhookSecret}
	if secretKey != "" {
		g.api = client.New(secretKey, backends)
	}
	return g
}

func (g *Gateway) CreateCheckoutSession(
	ctx context.Context,
	req ports.CheckoutSessionRequest,
) (ports.CheckoutSession, error) {
	if g.api == nil {
		return ports.CheckoutSession{}, ErrNotConfigured
	}

	currency := strings.ToLower(req.Currency)
	lineItems := make([]*stripego.CheckoutSessionLineItemParams, 0, len(req.LineItems))
	for _, item := range req.LineItems {
		product := &stripego.CheckoutSessionLineItemPriceDataProductDataParams{
			Name:     stripego.String(item.Name),
			Metadata: map[string]string{"sku": item.SKU},
		}
		if item.ImageURL != "" {
			product.Images = stripego.StringSlice([]string{item.ImageURL})
		}
		lineItems = append(lineItems, &stripego.CheckoutSessionLineItemParams{
			PriceData: &stripego.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripego.String(currency),
				UnitAmount:  stripego.Int64(item.UnitAmountCents),
				ProductData: product,
			},
			Quantity: stripego.Int64(int64(item.Quantity)),
		})
	}

	params := &stripego.CheckoutSessionParams{
		Params:             stripego.Params{Context: ctx},
		PaymentMethodTypes: stripego.StringSlice([]string{"card"}),
		Mode:               stripego.String(string(stripego.CheckoutSessionModePayment)),
		LineItems:          lineItems,
		CustomerEmail:      stripego.String(req.CustomerEmail),
		SuccessURL:         stripego.String(req.SuccessURL),
		CancelURL:          stripego.String(req.CancelURL),
		ClientReferenceID:  stripego.String(req.OrderID),
	}
	params.AddMetadata("order_number", req.OrderNumber)
	params.AddMetadata("order_id", req.OrderID)
	params.AddMetadata("cart_session_key", req.CartSessionKey)

	session, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return ports.CheckoutSession{}, fmt.Errorf("create checkout session: %w", err)
	}
	return ports.CheckoutSession{ID: session.ID, URL: session.URL}, nil
}

func (g *Gateway) ParseWebhookEvent(payload []byte, signature string) (ports.PaymentEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return ports.PaymentEvent{}, fmt.Errorf("%w: %w", ports.ErrInvalidWebhook, err)
	}

	out := ports.PaymentEvent{ID: event.ID, Type: string(event.Type)}
	if out.Type != ports.EventCheckoutSessionCompleted {
		return out, nil
	}

	var session stripego.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return ports.PaymentEvent{}, fmt.Errorf("%w: %w", ports.ErrInvalidWebhook, err)
	}
	completed := &ports.CompletedCheckoutSession{
		ID:                session.ID,
		OrderID:           session.Metadata["order_id"],
		OrderNumber:       session.Metadata["order_number"],
		ClientReferenceID: session.ClientReferenceID,
		CartSessionKey:    session.Metadata["cart_session_key"],
	}
	if session.PaymentIntent != nil {
		completed.PaymentIntentID = session.PaymentIntent.ID
	}
	out.CheckoutSession = completed
	return out, nil
}
