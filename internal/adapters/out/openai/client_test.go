package openai_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"storefront/internal/adapters/out/openai"
	"storefront/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_RequiresKey(t *testing.T) {
	_, err := openai.NewClient(openai.Config{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.ErrorIs(t, err, openai.ErrMissingAPIKey)
}

func TestSuggestCategories(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-4o-mini", body["model"])
		messages := body["messages"].([]any)
		user := messages[1].(map[string]any)["content"].(string)
		assert.True(t, strings.Contains(user, "- Animals\n  - Lions"))
		assert.True(t, strings.Contains(user, `"title":"Bronze Lion"`))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant",` +
			`"content":"{\"p1\":[\"Lions\",\"Animals\"]}"}}]}`))
	}))
	defer srv.Close()

	client, err := openai.NewClient(openai.Config{APIKey: "sk-test", BaseURL: srv.URL},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	got, err := client.SuggestCategories(t.Context(), "- Animals\n  - Lions",
		[]ports.ProductSummary{{ID: "p1", Title: "Bronze Lion"}})
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"p1": {"Lions", "Animals"}}, got)
	assert.Equal(t, int32(2), calls.Load())
}

func TestSuggestCategories_ClientErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.Error(w, `{"error":"bad key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	client, err := openai.NewClient(openai.Config{APIKey: "sk-test", BaseURL: srv.URL},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	_, err = client.SuggestCategories(t.Context(), "- Animals", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Equal(t, int32(1), calls.Load())
}
