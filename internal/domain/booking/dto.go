package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/stayhost/stayhost-api/internal/domain/payment"
	"github.com/stayhost/stayhost-api/internal/domain/pricing"
)

// CreateRequest for creating a draft booking
type CreateRequest struct {
	PropertyID   uuid.UUID     `json:"propertyId" validate:"required"`
	Kind         string        `json:"kind" validate:"required,booking_kind"`
	GuestCount   int           `json:"guestCount" validate:"required,min=1"`
	StartAt      time.Time     `json:"startAt" validate:"required"`
	EndAt        time.Time     `json:"endAt" validate:"required,gtfield=StartAt"`
	Mode         string        `json:"mode,omitempty" validate:"booking_mode"`
	EventDetails *EventDetails `json:"eventDetails,omitempty" validate:"required_if=Kind event"`
	StayDetails  *StayDetails  `json:"stayDetails,omitempty"`
}

// SubmitRequest carries the quote the guest accepted
type SubmitRequest struct {
	Kind  string         `json:"kind" validate:"required,booking_kind"`
	Quote *pricing.Quote `json:"quote" validate:"required"`
}

// ReviewRequest for a manager decision on a requested booking
type ReviewRequest struct {
	Action string `json:"action" validate:"required,review_action"`
	Note   string `json:"note,omitempty" validate:"max=2000"`
}

// Review actions
const (
	ActionApprove     = "approve"
	ActionDecline     = "decline"
	ActionRequestInfo = "request_info"
)

// CancelRequest for cancelling a booking
type CancelRequest struct {
	Reason string `json:"reason,omitempty" validate:"max=2000"`
}

// AvailabilityQuery asks whether a window is free on a property
type AvailabilityQuery struct {
	PropertyID       uuid.UUID
	StartAt          time.Time
	EndAt            time.Time
	ExcludeBookingID *uuid.UUID
}

// AvailabilityResult reports the first conflicting booking, if any
type AvailabilityResult struct {
	Available bool     `json:"available"`
	Conflict  *Summary `json:"conflict"`
}

// CheckoutResult carries the intents the guest must complete
type CheckoutResult struct {
	Booking *Booking        `json:"booking"`
	Balance *payment.Intent `json:"balance"`
	Deposit *payment.Intent `json:"deposit,omitempty"`
}

// ReleaseResult reports how a deposit hold was resolved
type ReleaseResult struct {
	Booking *Booking              `json:"booking"`
	Action  payment.ReleaseAction `json:"action"`
}
