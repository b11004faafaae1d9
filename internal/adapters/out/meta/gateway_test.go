package meta_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/adapters/out/meta"
	"storefront/internal/core/domain/model/tracking"
	"storefront/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEvent(t *testing.T) *tracking.ConversionEvent {
	t.Helper()
	e, err := tracking.NewConversionEvent(tracking.Purchase, "ORD-1", "https://shop.example.com/thank-you/1",
		time.Unix(1700000000, 0),
		tracking.UserData{Email: " Jane@Example.com ", ClientIPAddress: "10.0.0.1", FBP: "fb.1.1.1"},
		tracking.CustomData{Currency: "EUR", Value: 12.5, ContentIDs: []string{"v1"}, OrderID: "ORD-1"})
	require.NoError(t, err)
	return e
}

func TestSend(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v21.0/12345/events", r.URL.Path)
		assert.Equal(t, "tok", r.URL.Query().Get("access_token"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"events_received":1}`))
	}))
	defer srv.Close()

	g := meta.NewGateway(meta.Config{DatasetID: "12345", AccessToken: "tok", TestEventCode: "TEST1", BaseURL: srv.URL})
	require.NoError(t, g.Send(t.Context(), []*tracking.ConversionEvent{newEvent(t)}))

	assert.Equal(t, "TEST1", got["test_event_code"])
	data := got["data"].([]any)
	require.Len(t, data, 1)
	event := data[0].(map[string]any)
	assert.Equal(t, "Purchase", event["event_name"])
	assert.Equal(t, "website", event["action_source"])
	assert.InDelta(t, 1700000000, event["event_time"], 0)
	user := event["user_data"].(map[string]any)
	assert.Equal(t, []any{tracking.HashSHA256("jane@example.com")}, user["em"])
	assert.Equal(t, "10.0.0.1", user["client_ip_address"])
	custom := event["custom_data"].(map[string]any)
	assert.Equal(t, "EUR", custom["currency"])
	assert.InDelta(t, 12.5, custom["value"], 0.0001)
}

func TestSend_Disabled(t *testing.T) {
	g := meta.NewGateway(meta.Config{})
	err := g.Send(t.Context(), []*tracking.ConversionEvent{newEvent(t)})
	require.ErrorIs(t, err, ports.ErrConversionsDisabled)
}

func TestSend_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"message":"Invalid OAuth access token"}}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	g := meta.NewGateway(meta.Config{DatasetID: "1", AccessToken: "bad", BaseURL: srv.URL})
	err := g.Send(t.Context(), []*tracking.ConversionEvent{newEvent(t)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}
