// Package openai suggests product categories through the chat completions API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"storefront/internal/core/ports"
)

const (
	defaultBaseURL = "https://api.openai.com"
	defaultModel   = "gpt-4o-mini"
)

var ErrMissingAPIKey = errors.New("missing OPENAI_API_KEY")

type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	MaxRetries int
	HTTPClient *http.Client
}

// Client implements ports.CategorySuggester.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	maxRetries int
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 120 * time.Second}
	}
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		model:      model,
		maxRetries: maxRetries,
		httpClient: httpClient,
		logger:     logger.With("component", "OpenAIClient"),
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	ResponseFormat map[string]string `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type httpError struct {
	StatusCode int
	Body       string
	RetryAfter time.Duration
}

func (e *httpError) Error() string {
	return fmt.Sprintf("openai http %d: %s", e.StatusCode, e.Body)
}

func (e *httpError) retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

const promptTemplate = `You are an inventory assistant.
Assign the most relevant categories from the provided CATEGORY TREE to the PRODUCTS list.

RULES:
1. Use ONLY exact names from the CATEGORY TREE.
2. A product can have multiple categories.
3. Example: A "Garden Truck" goes in "Vehicles" AND "Garden Statues".
4. Example: A "Mini Astronaut" goes in "Astronauts" AND "Accents".
5. Return ONLY valid JSON in this format: { "product_id": ["Category A", "Category B"] }

CATEGORY TREE:
%s

PRODUCTS:
%s`

// SuggestCategories asks the model to map each product id to category names
// taken from tree.
func (c *Client) SuggestCategories(
	ctx context.Context,
	tree string,
	products []ports.ProductSummary,
) (map[string][]string, error) {
	payload, err := json.Marshal(products)
	if err != nil {
		return nil, err
	}

	req := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a precise JSON generator."},
			{Role: "user", Content: fmt.Sprintf(promptTemplate, tree, payload)},
		},
		ResponseFormat: map[string]string{"type": "json_object"},
	}

	var resp chatResponse
	if err := c.do(ctx, "/v1/chat/completions", req, &resp); err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("openai returned no choices")
	}

	var mapping map[string][]string
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &mapping); err != nil {
		return nil, fmt.Errorf("decode category mapping: %w", err)
	}
	return mapping, nil
}

func (c *Client) do(ctx context.Context, path string, body, out any) error {
	backoff := time.Second
	for attempt := 0; ; attempt++ {
		raw, err := c.doOnce(ctx, path, body)
		if err == nil {
			return json.Unmarshal(raw, out)
		}

		var httpErr *httpError
		if !errors.As(err, &httpErr) || !httpErr.retryable() || attempt >= c.maxRetries {
			return err
		}

		sleepFor := backoff
		if httpErr.RetryAfter > 0 {
			sleepFor = min(httpErr.RetryAfter, 10*time.Second)
		}
		c.logger.Warn("OpenAI request retrying",
			"path", path,
			"attempt", attempt+1,
			"max_retries", c.maxRetries,
			"sleep", sleepFor.String(),
			"error", err.Error(),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sleepFor):
		}
		backoff *= 2
	}
}

func (c *Client) doOnce(ctx context.Context, path string, body any) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		httpErr := &httpError{StatusCode: resp.StatusCode, Body: string(raw)}
		if secs, convErr := strconv.Atoi(resp.Header.Get("Retry-After")); convErr == nil {
			httpErr.RetryAfter = time.Duration(secs) * time.Second
		}
		return nil, httpErr
	}
	return raw, nil
}
