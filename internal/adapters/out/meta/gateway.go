// Package meta delivers conversion events to the Meta Conversions API.
package meta

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"storefront/internal/core/domain/model/tracking"
	"storefront/internal/core/ports"
)

const (
	defaultBaseURL    = "https://graph.facebook.com"
	defaultAPIVersion = "v21.0"
)

type Config struct {
	DatasetID     string
	AccessToken   string
	TestEventCode string
	APIVersion    string
	BaseURL       string
	HTTPClient    *http.Client
}

// Enabled reports whether events can be delivered.
func (c Config) Enabled() bool {
	return strings.TrimSpace(c.DatasetID) != "" && strings.TrimSpace(c.AccessToken) != ""
}

type Gateway struct {
	cfg        Config
	httpClient *http.Client
}

func NewGateway(cfg Config) *Gateway {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.APIVersion == "" {
		cfg.APIVersion = defaultAPIVersion
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Gateway{cfg: cfg, httpClient: httpClient}
}

type serverEvent struct {
	EventName      string              `json:"event_name"`
	EventTime      int64               `json:"event_time"`
	EventID        string              `json:"event_id"`
	EventSourceURL string              `json:"event_source_url"`
	ActionSource   string              `json:"action_source"`
	UserData       map[string]any      `json:"user_data"`
	CustomData     tracking.CustomData `json:"custom_data"`
}

type eventsRequest struct {
	Data          []serverEvent `json:"data"`
	TestEventCode string        `json:"test_event_code,omitempty"`
}

// Send posts events in one request. It returns ports.ErrConversionsDisabled when no
// dataset or token is configured.
func (g *Gateway) Send(ctx context.Context, events []*tracking.ConversionEvent) error {
	if !g.cfg.Enabled() {
		return ports.ErrConversionsDisabled
	}
	if len(events) == 0 {
		return nil
	}

	body := eventsRequest{TestEventCode: g.cfg.TestEventCode}
	for _, e := range events {
		body.Data = append(body.Data, serverEvent{
			EventName:      string(e.Name()),
			EventTime:      e.EventTime().Unix(),
			EventID:        e.EventID(),
			EventSourceURL: e.SourceURL(),
			ActionSource:   "website",
			UserData:       e.UserData().Hashed(),
			CustomData:     e.CustomData(),
		})
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/%s/%s/events?access_token=%s",
		g.cfg.BaseURL, g.cfg.APIVersion, url.PathEscape(g.cfg.DatasetID), url.QueryEscape(g.cfg.AccessToken))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("meta capi http %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	return nil
}
