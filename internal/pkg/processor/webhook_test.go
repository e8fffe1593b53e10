package processor

import (
	"errors"
	"testing"
)

func TestSignatureRoundTrip(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"payment_intent.succeeded","data":{"object":{"id":"pi_1","status":"succeeded"}}}`)
	sig := GenerateSignature(payload, "whsec")

	if !VerifySignature(payload, sig, "whsec") {
		t.Fatal("expected signature to verify")
	}
	if VerifySignature(payload, sig, "other") {
		t.Fatal("signature must not verify with another secret")
	}
	if VerifySignature(payload, "zz-not-hex", "whsec") {
		t.Fatal("malformed signature must not verify")
	}
	if VerifySignature(payload, sig, "") {
		t.Fatal("empty secret must never verify")
	}
}

func TestParseEvent(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"payment_intent.amount_capturable_updated","data":{"object":{"id":"pi_9","status":"requires_capture","amount":50000,"currency":"usd"}}}`)

	event, err := ParseEvent(payload, GenerateSignature(payload, "whsec"), "whsec")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if event.Data.Object.ID != "pi_9" || event.Data.Object.Status != "requires_capture" {
		t.Fatalf("unexpected event: %+v", event)
	}

	if _, err := ParseEvent(payload, "deadbeef", "whsec"); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected signature error, got %v", err)
	}
}

func TestParseEventBadPayload(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"missing intent id", `{"id":"evt_2","data":{"object":{}}}`},
		{"malformed json", `{"id":`},
		{"wrong shape", `{"data":{"object":"pi_1"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := []byte(tt.payload)
			_, err := ParseEvent(payload, GenerateSignature(payload, "whsec"), "whsec")
			if !errors.Is(err, ErrInvalidPayload) {
				t.Fatalf("expected payload error, got %v", err)
			}
			if errors.Is(err, ErrInvalidSignature) {
				t.Fatal("a signed payload must not be reported as a signature failure")
			}
		})
	}
}
