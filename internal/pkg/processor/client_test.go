package processor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCreateIntentSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/payment_intents" || r.Method != http.MethodPost {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk_test" {
			t.Fatalf("unexpected auth header: %q", got)
		}
		if got := r.Header.Get("Idempotency-Key"); got != "booking-1-deposit" {
			t.Fatalf("unexpected idempotency key: %q", got)
		}

		var req CreateIntentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.CaptureMethod != CaptureManual || req.Amount != 50000 {
			t.Fatalf("unexpected payload: %+v", req)
		}

		_ = json.NewEncoder(w).Encode(Intent{
			ID:           "pi_1",
			Status:       "requires_payment_method",
			Amount:       req.Amount,
			Currency:     req.Currency,
			ClientSecret: "pi_1_secret",
		})
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL + "/", SecretKey: "sk_test", Timeout: 2 * time.Second})
	out, err := c.CreateIntent(context.Background(), CreateIntentRequest{
		Amount:         50000,
		Currency:       "usd",
		CaptureMethod:  CaptureManual,
		IdempotencyKey: "booking-1-deposit",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.ID != "pi_1" || out.ClientSecret != "pi_1_secret" {
		t.Fatalf("unexpected response: %+v", out)
	}
}

func TestClientNon2xxIsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":"upstream"}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, SecretKey: "sk_test"})
	_, err := c.CancelIntent(context.Background(), "pi_1")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", apiErr.StatusCode)
	}
}

func TestClientNotConfigured(t *testing.T) {
	c := NewClient(Config{})
	if _, err := c.GetIntent(context.Background(), "pi_1"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestCreateIntentValidatesAmount(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://unused", SecretKey: "sk"})
	if _, err := c.CreateIntent(context.Background(), CreateIntentRequest{Amount: 0, Currency: "usd"}); err == nil {
		t.Fatal("expected validation error for zero amount")
	}
}
