package payment

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Purpose tags what an intent pays for
type Purpose string

const (
	PurposeDeposit Purpose = "deposit"
	PurposeBalance Purpose = "balance"
)

// Status is the internal payment status of a record
type Status string

const (
	StatusPending        Status = "pending"
	StatusRequiresAction Status = "requires_action"
	StatusSucceeded      Status = "succeeded"
	StatusCancelled      Status = "cancelled"
	StatusFailed         Status = "failed"

	// Set only by a deposit release
	StatusReleased Status = "released"
	StatusRefunded Status = "refunded"
)

// Processor intent statuses
const (
	IntentRequiresPaymentMethod = "requires_payment_method"
	IntentRequiresConfirmation  = "requires_confirmation"
	IntentRequiresAction        = "requires_action"
	IntentProcessing            = "processing"
	IntentRequiresCapture       = "requires_capture"
	IntentSucceeded             = "succeeded"
	IntentCanceled              = "canceled"
	IntentFailed                = "failed"
)

// Record is one processor intent attached to a booking
type Record struct {
	ID             uuid.UUID    `db:"id" json:"id"`
	BookingID      uuid.UUID    `db:"booking_id" json:"bookingId"`
	Purpose        Purpose      `db:"purpose" json:"purpose"`
	IntentID       string       `db:"intent_id" json:"intentId"`
	ExternalStatus string       `db:"external_status" json:"externalStatus"`
	Status         Status       `db:"status" json:"status"`
	AmountCents    int64        `db:"amount_cents" json:"amountCents"`
	Currency       string       `db:"currency" json:"currency"`
	ReleasedAt     sql.NullTime `db:"released_at" json:"-"`
	CreatedAt      time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time    `db:"updated_at" json:"updatedAt"`
}

// IsOpen reports whether the intent can still move money and may be cancelled
func (r *Record) IsOpen() bool {
	switch r.ExternalStatus {
	case IntentSucceeded, IntentCanceled, IntentFailed:
		return false
	}
	return !r.ReleasedAt.Valid
}

// Intent is the processor-owned intent state
type Intent struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	AmountCents  int64  `json:"amountCents"`
	Currency     string `json:"currency"`
	ClientSecret string `json:"clientSecret,omitempty"`
}

// CreateIntentParams describes an intent to create at the processor
type CreateIntentParams struct {
	BookingID      uuid.UUID
	Purpose        Purpose
	AmountCents    int64
	Currency       string
	ManualCapture  bool
	IdempotencyKey string
}
