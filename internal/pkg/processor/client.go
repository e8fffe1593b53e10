// Package processor is a thin REST client for the card payment processor.
package processor

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
)

// Capture methods
const (
	CaptureAutomatic = "automatic"
	CaptureManual    = "manual"
)

// ErrNotConfigured is returned when the client has no base URL or key
var ErrNotConfigured = errors.New("payment processor is not configured")

// Config holds processor API configuration
type Config struct {
	BaseURL   string
	SecretKey string
	Timeout   time.Duration
}

// Client represents the payment processor client
type Client struct {
	httpClient *http.Client
	config     Config
}

// Intent is the processor's payment intent representation
type Intent struct {
	ID            string            `json:"id"`
	Status        string            `json:"status"`
	Amount        int64             `json:"amount"`
	Currency      string            `json:"currency"`
	CaptureMethod string            `json:"capture_method,omitempty"`
	ClientSecret  string            `json:"client_secret,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// CreateIntentRequest represents intent creation request
type CreateIntentRequest struct {
	Amount         int64             `json:"amount"`
	Currency       string            `json:"currency"`
	CaptureMethod  string            `json:"capture_method"`
	Description    string            `json:"description,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
	IdempotencyKey string            `json:"-"`
}

// Refund is the processor's refund representation
type Refund struct {
	ID            string `json:"id"`
	PaymentIntent string `json:"payment_intent"`
	Status        string `json:"status"`
	Amount        int64  `json:"amount"`
}

// APIError is a non-2xx processor response
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("processor returned status %d: %s", e.StatusCode, e.Body)
}

// NewClient creates new processor client
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		config:     cfg,
	}
}

// CreateIntent creates a payment intent
func (c *Client) CreateIntent(ctx context.Context, req CreateIntentRequest) (*Intent, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("validation error: amount must be > 0")
	}
	if strings.TrimSpace(req.Currency) == "" {
		return nil, fmt.Errorf("validation error: currency must be non-empty")
	}
	if req.CaptureMethod == "" {
		req.CaptureMethod = CaptureAutomatic
	}

	var out Intent
	if err := c.do(ctx, http.MethodPost, "/v1/payment_intents", req, req.IdempotencyKey, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetIntent fetches a payment intent
func (c *Client) GetIntent(ctx context.Context, id string) (*Intent, error) {
	var out Intent
	if err := c.do(ctx, http.MethodGet, "/v1/payment_intents/"+id, nil, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelIntent cancels an intent. Cancelling an authorized manual-capture
// intent voids the hold.
func (c *Client) CancelIntent(ctx context.Context, id string) (*Intent, error) {
	var out Intent
	if err := c.do(ctx, http.MethodPost, "/v1/payment_intents/"+id+"/cancel", nil, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RefundIntent refunds a captured intent in full
func (c *Client) RefundIntent(ctx context.Context, id string) (*Refund, error) {
	var out Refund
	body := map[string]string{"payment_intent": id}
	if err := c.do(ctx, http.MethodPost, "/v1/refunds", body, "refund-"+id, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in any, idempotencyKey string, out any) error {
	if c == nil || c.httpClient == nil {
		return ErrNotConfigured
	}
	if strings.TrimSpace(c.config.BaseURL) == "" || strings.TrimSpace(c.config.SecretKey) == "" {
		return ErrNotConfigured
	}

	var reader io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode processor request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	url := strings.TrimRight(c.config.BaseURL, "/") + path
	httpReq, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("processor api call failed: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.config.SecretKey)
	if in != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if idempotencyKey != "" {
		httpReq.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("processor api call failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("processor api call failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse processor response: %w", err)
	}
	return nil
}
