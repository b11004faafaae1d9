package ports

import (
	"context"
	"errors"
)

// ErrInvalidWebhook is returned for payloads that fail parsing or signature checks.
var ErrInvalidWebhook = errors.New("invalid webhook")

// EventCheckoutSessionCompleted is the only payment event acted upon.
const EventCheckoutSessionCompleted = "checkout.session.completed"

type CheckoutLineItem struct {
	Name            string
	SKU             string
	UnitAmountCents int64
	Quantity        int
	ImageURL        string
}

type CheckoutSessionRequest struct {
	OrderID        string
	OrderNumber    string
	CartSessionKey string
	CustomerEmail  string
	Currency       string
	SuccessURL     string
	CancelURL      string
	LineItems      []CheckoutLineItem
}

type CheckoutSession struct {
	ID  string
	URL string
}

// CompletedCheckoutSession is the data carried by checkout.session.completed.
type CompletedCheckoutSession struct {
	ID                string
	OrderID           string
	OrderNumber       string
	ClientReferenceID string
	CartSessionKey    string
	PaymentIntentID   string
}

type PaymentEvent struct {
	ID   string
	Type string
	// CheckoutSession is set for checkout.session.completed.
	CheckoutSession *CompletedCheckoutSession
}

// PaymentGateway is the hosted payment provider.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutSessionRequest) (CheckoutSession, error)

	// ParseWebhookEvent verifies signature against payload and decodes the event.
	ParseWebhookEvent(payload []byte, signature string) (PaymentEvent, error)
}
