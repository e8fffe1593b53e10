package processor

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
)

// SignatureHeader carries the hex HMAC-SHA256 of the raw webhook body
const SignatureHeader = "X-Processor-Signature"

var (
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrInvalidPayload   = errors.New("invalid webhook payload")
)

// Event is a webhook notification about a payment intent
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object Intent `json:"object"`
	} `json:"data"`
}

// VerifySignature validates HMAC-SHA256 signature of a webhook payload
func VerifySignature(payload []byte, signature string, secretKey string) bool {
	if secretKey == "" || signature == "" {
		return false
	}

	h := hmac.New(sha256.New, []byte(secretKey))
	h.Write(payload)
	expected := h.Sum(nil)

	given, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}

	return hmac.Equal(given, expected)
}

// GenerateSignature creates HMAC-SHA256 signature for a payload
func GenerateSignature(payload []byte, secretKey string) string {
	if secretKey == "" {
		return ""
	}

	h := hmac.New(sha256.New, []byte(secretKey))
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}

// ParseEvent verifies and decodes a webhook body. Errors wrap
// ErrInvalidSignature or ErrInvalidPayload.
func ParseEvent(payload []byte, signature, secretKey string) (*Event, error) {
	if !VerifySignature(payload, signature, secretKey) {
		return nil, ErrInvalidSignature
	}
	return decodeEvent(payload)
}

// decodeEvent decodes an already verified webhook body
func decodeEvent(payload []byte) (*Event, error) {
	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	if event.Data.Object.ID == "" {
		return nil, fmt.Errorf("%w: missing intent id", ErrInvalidPayload)
	}
	return &event, nil
}
