package property

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Addons maps an add-on code to its price in cents
type Addons map[string]int64

// Value implements driver.Valuer so sqlx can serialize Addons → JSONB.
func (a Addons) Value() (driver.Value, error) {
	if a == nil {
		return "{}", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("marshal property addons: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner so sqlx can deserialize JSONB → Addons.
func (a *Addons) Scan(src interface{}) error {
	var b []byte
	switch v := src.(type) {
	case string:
		b = []byte(v)
	case []byte:
		b = v
	case nil:
		*a = Addons{}
		return nil
	default:
		return fmt.Errorf("unexpected type for addons: %T", src)
	}
	return json.Unmarshal(b, a)
}

// Property is a bookable listing with its pricing configuration
type Property struct {
	ID       uuid.UUID `db:"id" json:"id"`
	HostID   uuid.UUID `db:"host_id" json:"hostId"`
	Title    string    `db:"title" json:"title"`
	Timezone string    `db:"timezone" json:"timezone"`

	// Stay pricing
	NightlyRateCents int64 `db:"nightly_rate_cents" json:"nightlyRateCents"`
	CleaningFeeCents int64 `db:"cleaning_fee_cents" json:"cleaningFeeCents"`

	// Event pricing
	HourlyRateCents       int64          `db:"hourly_rate_cents" json:"hourlyRateCents"`
	MinHours              int            `db:"min_hours" json:"minHours"`
	DayRateCents          int64          `db:"day_rate_cents" json:"dayRateCents"`
	DayRateHours          int            `db:"day_rate_hours" json:"dayRateHours"`
	EventCleaningFeeCents int64          `db:"event_cleaning_fee_cents" json:"eventCleaningFeeCents"`
	DepositCents          int64          `db:"deposit_cents" json:"depositCents"`
	AllowInstantBook      bool           `db:"allow_instant_book" json:"allowInstantBook"`
	Curfew                sql.NullString `db:"curfew" json:"-"`
	ParkingSpaces         int            `db:"parking_spaces" json:"parkingSpaces"`
	MaxGuests             int            `db:"max_guests" json:"maxGuests"`

	Addons Addons `db:"addons" json:"addons"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// CurfewValue returns the curfew clock or an empty string
func (p *Property) CurfewValue() string {
	if p.Curfew.Valid {
		return p.Curfew.String
	}
	return ""
}

// Location returns the property time zone, falling back to UTC
func (p *Property) Location() *time.Location {
	if p.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// SupportsStays reports whether nightly pricing is configured
func (p *Property) SupportsStays() bool {
	return p.NightlyRateCents > 0
}

// SupportsEvents reports whether hourly or day-rate pricing is configured
func (p *Property) SupportsEvents() bool {
	return p.HourlyRateCents > 0 || p.DayRateCents > 0
}

// AcceptsGuests reports whether count fits the guest limit. Zero means unlimited.
func (p *Property) AcceptsGuests(count int) bool {
	return p.MaxGuests <= 0 || count <= p.MaxGuests
}
