package booking

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/stayhost/stayhost-api/internal/domain/pricing"
)

// Status represents booking status (matches booking_status enum)
type Status string

const (
	StatusDraft           Status = "draft"
	StatusRequested       Status = "requested"
	StatusApproved        Status = "approved"
	StatusDeclined        Status = "declined"
	StatusAwaitingPayment Status = "awaiting_payment"
	StatusPaid            Status = "paid"
	StatusConfirmed       Status = "confirmed"
	StatusInProgress      Status = "in_progress"
	StatusPending         Status = "pending"
	StatusCheckedIn       Status = "checked_in"
	StatusCompleted       Status = "completed"
	StatusCancelled       Status = "cancelled"
	StatusExpired         Status = "expired"
	StatusDepositReleased Status = "deposit_released"
)

// BlockingStatuses hold the calendar. External availability queries filter
// on exactly this set.
var BlockingStatuses = []Status{
	StatusRequested,
	StatusApproved,
	StatusAwaitingPayment,
	StatusPaid,
	StatusConfirmed,
	StatusInProgress,
	StatusPending,
	StatusCheckedIn,
}

// IsBlocking reports whether s holds the calendar
func (s Status) IsBlocking() bool {
	switch s {
	case StatusRequested, StatusApproved, StatusAwaitingPayment, StatusPaid,
		StatusConfirmed, StatusInProgress, StatusPending, StatusCheckedIn:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is possible
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusDeclined, StatusExpired, StatusDepositReleased:
		return true
	}
	return false
}

// Valid reports whether s is a known status
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

var transitions = map[Status][]Status{
	StatusDraft:           {StatusRequested, StatusAwaitingPayment, StatusCancelled, StatusExpired},
	StatusRequested:       {StatusApproved, StatusDeclined, StatusCancelled, StatusExpired},
	StatusApproved:        {StatusAwaitingPayment, StatusPaid, StatusConfirmed, StatusDeclined, StatusCancelled, StatusExpired},
	StatusAwaitingPayment: {StatusPaid, StatusConfirmed, StatusCancelled, StatusExpired},
	StatusPending:         {StatusPaid, StatusConfirmed, StatusCancelled, StatusExpired},
	StatusPaid:            {StatusConfirmed, StatusCancelled},
	StatusConfirmed:       {StatusInProgress, StatusCheckedIn, StatusDepositReleased, StatusCancelled},
	StatusInProgress:      {StatusCompleted, StatusDepositReleased, StatusCancelled},
	StatusCheckedIn:       {StatusCompleted, StatusDepositReleased, StatusCancelled},
	StatusCompleted:       {},
	StatusCancelled:       {},
	StatusDeclined:        {},
	StatusExpired:         {},
	StatusDepositReleased: {},
}

// CanTransition reports whether from may move to to
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Note is a reviewer remark kept with the pricing snapshot
type Note struct {
	Note string    `json:"note"`
	By   uuid.UUID `json:"by"`
	At   time.Time `json:"at"`
}

// PricingSnapshot is the quote committed at submission plus review notes
type PricingSnapshot struct {
	Quote       *pricing.Quote `json:"quote,omitempty"`
	Notes       []Note         `json:"notes,omitempty"`
	SubmittedAt *time.Time     `json:"submittedAt,omitempty"`
}

// IsEmpty reports whether nothing has been committed yet
func (p PricingSnapshot) IsEmpty() bool {
	return p.Quote == nil && len(p.Notes) == 0 && p.SubmittedAt == nil
}

// DepositCents returns the deposit the committed quote requires
func (p PricingSnapshot) DepositCents() int64 {
	if p.Quote == nil {
		return 0
	}
	return p.Quote.DepositCents
}

// Value implements driver.Valuer so sqlx can serialize the snapshot → JSONB.
func (p PricingSnapshot) Value() (driver.Value, error) {
	if p.IsEmpty() {
		return nil, nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal pricing snapshot: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner so sqlx can deserialize JSONB → snapshot.
func (p *PricingSnapshot) Scan(src interface{}) error {
	*p = PricingSnapshot{}
	b, err := jsonBytes(src)
	if err != nil || b == nil {
		return err
	}
	return json.Unmarshal(b, p)
}

// EventDetails are the event attributes that feed risk flags
type EventDetails struct {
	EventType      string   `json:"eventType" validate:"required,event_type"`
	Vehicles       int      `json:"vehicles" validate:"gte=0"`
	Alcohol        bool     `json:"alcohol"`
	AmplifiedSound bool     `json:"amplifiedSound"`
	Addons         []string `json:"addons,omitempty"`
}

// Value implements driver.Valuer so sqlx can serialize EventDetails → JSONB.
func (d EventDetails) Value() (driver.Value, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshal event details: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner so sqlx can deserialize JSONB → EventDetails.
func (d *EventDetails) Scan(src interface{}) error {
	b, err := jsonBytes(src)
	if err != nil || b == nil {
		return err
	}
	return json.Unmarshal(b, d)
}

// StayDetails are the optional extras of a stay
type StayDetails struct {
	Addons []string `json:"addons,omitempty"`
}

// Value implements driver.Valuer so sqlx can serialize StayDetails → JSONB.
func (d StayDetails) Value() (driver.Value, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshal stay details: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner so sqlx can deserialize JSONB → StayDetails.
func (d *StayDetails) Scan(src interface{}) error {
	b, err := jsonBytes(src)
	if err != nil || b == nil {
		return err
	}
	return json.Unmarshal(b, d)
}

func jsonBytes(src interface{}) ([]byte, error) {
	switch v := src.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("unexpected type for jsonb column: %T", src)
	}
}

// Booking is a guest's reservation of a property for a stay or an event
type Booking struct {
	ID         uuid.UUID    `db:"id" json:"id"`
	Kind       pricing.Kind `db:"kind" json:"kind"`
	Status     Status       `db:"status" json:"status"`
	Mode       pricing.Mode `db:"mode" json:"mode"`
	GuestID    uuid.UUID    `db:"guest_id" json:"guestId"`
	PropertyID uuid.UUID    `db:"property_id" json:"propertyId"`

	StartAt  time.Time  `db:"start_at" json:"startAt"`
	EndAt    time.Time  `db:"end_at" json:"endAt"`
	CheckIn  *time.Time `db:"check_in" json:"checkIn,omitempty"`
	CheckOut *time.Time `db:"check_out" json:"checkOut,omitempty"`

	GuestCount      int             `db:"guest_count" json:"guestCount"`
	PricingSnapshot PricingSnapshot `db:"pricing_snapshot" json:"pricingSnapshot"`
	TotalCents      int64           `db:"total_cents" json:"totalCents"`
	RiskFlags       pq.StringArray  `db:"risk_flags" json:"riskFlags"`
	BlocksCalendar  bool            `db:"blocks_calendar" json:"blocksCalendar"`

	EventDetails *EventDetails `db:"event_details" json:"eventDetails,omitempty"`
	StayDetails  *StayDetails  `db:"stay_details" json:"stayDetails,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Window returns the calendar footprint of b
func (b *Booking) Window() Window {
	return Window{StartAt: b.StartAt, EndAt: b.EndAt, CheckIn: b.CheckIn, CheckOut: b.CheckOut}
}

// Summary returns the public view of b used in availability results
func (b *Booking) Summary() *Summary {
	return &Summary{
		ID:       b.ID,
		Kind:     b.Kind,
		Status:   b.Status,
		StartAt:  b.StartAt,
		EndAt:    b.EndAt,
		CheckIn:  b.CheckIn,
		CheckOut: b.CheckOut,
	}
}

// Summary is a booking reduced to its calendar footprint
type Summary struct {
	ID       uuid.UUID    `json:"id"`
	Kind     pricing.Kind `json:"kind"`
	Status   Status       `json:"status"`
	StartAt  time.Time    `json:"startAt"`
	EndAt    time.Time    `json:"endAt"`
	CheckIn  *time.Time   `json:"checkIn,omitempty"`
	CheckOut *time.Time   `json:"checkOut,omitempty"`
}
