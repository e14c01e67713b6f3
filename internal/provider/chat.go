// Package provider calls OpenAI-compatible chat-completions APIs and returns
// the JSON object the model produced.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/contentforge/contentforge-api/internal/config"
	"github.com/tidwall/gjson"
)

const (
	defaultRequestTimeout = 30 * time.Second
	maxResponseBytes      = 1 << 20
)

var (
	// ErrNoAPIKey is returned without any network call when the key is unset.
	ErrNoAPIKey = errors.New("provider api key is not configured")
	// ErrNoContent is returned when the response carries no message content.
	ErrNoContent = errors.New("provider response has no message content")
)

// StatusError reports a non-2xx provider response.
type StatusError struct {
	Provider string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Provider, e.Code, e.Body)
}

// Message is one chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []Message      `json:"messages"`
	Temperature    float64        `json:"temperature"`
	MaxTokens      int            `json:"max_tokens,omitempty"`
	ResponseFormat responseFormat `json:"response_format"`
}

// Client talks to one chat-completions endpoint.
type Client struct {
	name        string
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
	client      *http.Client
}

// NewClient constructs a Client named name from cfg.
func NewClient(name string, cfg config.ProviderConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Client{
		name:        name,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      strings.TrimSpace(cfg.APIKey),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		client:      &http.Client{Timeout: timeout},
	}
}

// Name returns the provider identifier.
func (c *Client) Name() string { return c.name }

// Complete sends a system+user prompt pair asking for a JSON object and
// returns the decoded object.
func (c *Client) Complete(ctx context.Context, system, user string) (map[string]any, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%s: %w", c.name, ErrNoAPIKey)
	}

	payload, errMarshal := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature:    c.temperature,
		MaxTokens:      c.maxTokens,
		ResponseFormat: responseFormat{Type: "json_object"},
	})
	if errMarshal != nil {
		return nil, fmt.Errorf("%s: marshal request: %w", c.name, errMarshal)
	}

	req, errReq := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if errReq != nil {
		return nil, fmt.Errorf("%s: build request: %w", c.name, errReq)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, errDo := c.client.Do(req)
	if errDo != nil {
		return nil, fmt.Errorf("%s: request: %w", c.name, errDo)
	}
	defer func() { _ = resp.Body.Close() }()

	body, errRead := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if errRead != nil {
		return nil, fmt.Errorf("%s: read body: %w", c.name, errRead)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &StatusError{Provider: c.name, Code: resp.StatusCode, Body: truncate(string(body), 256)}
	}

	content := gjson.GetBytes(body, "choices.0.message.content")
	if !content.Exists() || strings.TrimSpace(content.String()) == "" {
		return nil, fmt.Errorf("%s: %w", c.name, ErrNoContent)
	}

	object, errExtract := DecodeObject(content.String())
	if errExtract != nil {
		return nil, fmt.Errorf("%s: %w", c.name, errExtract)
	}
	return object, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
