package pricing

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the wire format for stay dates
const DateLayout = "2006-01-02"

// QuoteRequest is the discriminated quote input. Exactly one of Stay or Event
// is read, selected by Kind.
type QuoteRequest struct {
	Kind       string        `json:"kind" validate:"required,booking_kind"`
	PropertyID uuid.UUID     `json:"propertyId" validate:"required"`
	Stay       *StayRequest  `json:"stay,omitempty" validate:"required_if=Kind stay"`
	Event      *EventRequest `json:"event,omitempty" validate:"required_if=Kind event"`
}

// StayRequest carries stay dates and party details
type StayRequest struct {
	CheckIn    string   `json:"checkIn" validate:"required,datetime=2006-01-02"`
	CheckOut   string   `json:"checkOut" validate:"required,datetime=2006-01-02"`
	GuestCount int      `json:"guestCount" validate:"required,min=1"`
	Addons     []string `json:"addons,omitempty"`
}

// EventRequest carries the event window and the attributes that drive risk flags
type EventRequest struct {
	EventType      string    `json:"eventType" validate:"required,event_type"`
	StartAt        time.Time `json:"startAt" validate:"required"`
	EndAt          time.Time `json:"endAt" validate:"required,gtfield=StartAt"`
	GuestCount     int       `json:"guestCount" validate:"required,min=1"`
	Vehicles       int       `json:"vehicles" validate:"gte=0"`
	Alcohol        bool      `json:"alcohol"`
	AmplifiedSound bool      `json:"amplifiedSound"`
	Addons         []string  `json:"addons,omitempty"`
}

// ParseDate parses a stay date in UTC
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDates
	}
	return t, nil
}
