package stripe_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"storefront/internal/adapters/out/stripe"
	"storefront/internal/core/ports"

	stripego "github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/webhook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "whsec_test"

func sign(t *testing.T, payload string) string {
	t.Helper()
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   []byte(payload),
		Secret:    secret,
		Timestamp: time.Now(),
	})
	return signed.Header
}

func TestParseWebhookEvent_CheckoutCompleted(t *testing.T) {
	payload := `{
		"id": "evt_1",
		"object": "event",
		"type": "checkout.session.completed",
		"api_version": "2020-08-27",
		"data": {"object": {
			"id": "cs_1",
			"object": "checkout.session",
			"client_reference_id": "ref-1",
			"payment_intent": "pi_1",
			"metadata": {"order_id": "o-1", "order_number": "ORD-20250101-ABCDEF", "cart_session_key": "k-1"}
		}}
	}`
	g := stripe.NewGateway("", secret)

	event, err := g.ParseWebhookEvent([]byte(payload), sign(t, payload))
	require.NoError(t, err)
	assert.Equal(t, ports.EventCheckoutSessionCompleted, event.Type)
	require.NotNil(t, event.CheckoutSession)
	assert.Equal(t, ports.CompletedCheckoutSession{
		ID:                "cs_1",
		OrderID:           "o-1",
		OrderNumber:       "ORD-20250101-ABCDEF",
		ClientReferenceID: "ref-1",
		CartSessionKey:    "k-1",
		PaymentIntentID:   "pi_1",
	}, *event.CheckoutSession)
}

func TestParseWebhookEvent_OtherTypes(t *testing.T) {
	payload := `{"id":"evt_2","object":"event","type":"payment_intent.created","data":{"object":{}}}`
	g := stripe.NewGateway("", secret)

	event, err := g.ParseWebhookEvent([]byte(payload), sign(t, payload))
	require.NoError(t, err)
	assert.Equal(t, "payment_intent.created", event.Type)
	assert.Nil(t, event.CheckoutSession)
}

func TestParseWebhookEvent_BadSignature(t *testing.T) {
	g := stripe.NewGateway("", secret)
	_, err := g.ParseWebhookEvent([]byte(`{"id":"evt_3"}`), "t=1,v1=deadbeef")
	require.ErrorIs(t, err, ports.ErrInvalidWebhook)
}

func TestCreateCheckoutSession(t *testing.T) {
	var form url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		form, _ = url.ParseQuery(string(body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cs_123","object":"checkout.session","url":"https://checkout.stripe.com/c/cs_123"}`))
	}))
	defer srv.Close()

	backend := stripego.GetBackendWithConfig(stripego.APIBackend, &stripego.BackendConfig{
		URL:               stripego.String(srv.URL),
		MaxNetworkRetries: stripego.Int64(0),
	})
	g := stripe.NewGatewayWithBackends("sk_test_123", secret,
		&stripego.Backends{API: backend, Connect: backend, Uploads: backend})

	session, err := g.CreateCheckoutSession(t.Context(), ports.CheckoutSessionRequest{
		OrderID:        "o-1",
		OrderNumber:    "ORD-20250101-ABCDEF",
		CartSessionKey: "k-1",
		CustomerEmail:  "jane@example.com",
		Currency:       "EUR",
		SuccessURL:     "https://shop.example.com/thank-you/o-1",
		CancelURL:      "https://shop.example.com/checkout",
		LineItems: []ports.CheckoutLineItem{
			{Name: "Bronze Lion", SKU: "LION-1", UnitAmountCents: 9900, Quantity: 2, ImageURL: "https://cdn/x.jpg"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "cs_123", session.ID)
	assert.Equal(t, "https://checkout.stripe.com/c/cs_123", session.URL)

	assert.Equal(t, "payment", form.Get("mode"))
	assert.Equal(t, "card", form.Get("payment_method_types[0]"))
	assert.Equal(t, "o-1", form.Get("client_reference_id"))
	assert.Equal(t, "jane@example.com", form.Get("customer_email"))
	assert.Equal(t, "k-1", form.Get("metadata[cart_session_key]"))
	assert.Equal(t, "eur", form.Get("line_items[0][price_data][currency]"))
	assert.Equal(t, "9900", form.Get("line_items[0][price_data][unit_amount]"))
	assert.Equal(t, "LION-1", form.Get("line_items[0][price_data][product_data][metadata][sku]"))
	assert.Equal(t, "https://cdn/x.jpg", form.Get("line_items[0][price_data][product_data][images][0]"))
	assert.Equal(t, "2", form.Get("line_items[0][quantity]"))
}

func TestCreateCheckoutSession_NotConfigured(t *testing.T) {
	g := stripe.NewGateway("", secret)
	_, err := g.CreateCheckoutSession(t.Context(), ports.CheckoutSessionRequest{})
	require.ErrorIs(t, err, stripe.ErrNotConfigured)
}
