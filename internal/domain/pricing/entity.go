package pricing

import (
	"sort"
	"strings"
)

// Currency is the only settlement currency
const Currency = "usd"

// Mode is how a booking proceeds after submission
type Mode string

const (
	ModeRequest Mode = "request"
	ModeInstant Mode = "instant"
)

// Valid reports whether m is a known mode
func (m Mode) Valid() bool {
	switch m {
	case ModeRequest, ModeInstant:
		return true
	}
	return false
}

// Kind discriminates stay and event bookings
type Kind string

const (
	KindStay  Kind = "stay"
	KindEvent Kind = "event"
)

// Valid reports whether k is a known kind
func (k Kind) Valid() bool {
	switch k {
	case KindStay, KindEvent:
		return true
	}
	return false
}

// RiskFlag marks an event attribute that affects approval routing
type RiskFlag string

const (
	FlagAlcohol        RiskFlag = "ALCOHOL"
	FlagAmplifiedSound RiskFlag = "AMPLIFIED_SOUND"
	FlagLateEnd        RiskFlag = "LATE_END"
	FlagOverParking    RiskFlag = "OVER_PARKING"
	FlagProduction     RiskFlag = "PRODUCTION"
	FlagWedding        RiskFlag = "WEDDING"
)

// AllRiskFlags lists every flag in canonical order
var AllRiskFlags = []RiskFlag{
	FlagAlcohol,
	FlagAmplifiedSound,
	FlagLateEnd,
	FlagOverParking,
	FlagProduction,
	FlagWedding,
}

// Valid reports whether f is a known flag
func (f RiskFlag) Valid() bool {
	switch f {
	case FlagAlcohol, FlagAmplifiedSound, FlagLateEnd, FlagOverParking, FlagProduction, FlagWedding:
		return true
	}
	return false
}

// NormalizeFlags returns flags de-duplicated and sorted
func NormalizeFlags(flags []RiskFlag) []RiskFlag {
	seen := make(map[RiskFlag]struct{}, len(flags))
	out := make([]RiskFlag, 0, len(flags))
	for _, f := range flags {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Basis is the event pricing basis chosen by the engine
type Basis string

const (
	BasisNightly Basis = "nightly"
	BasisHourly  Basis = "hourly"
	BasisDayRate Basis = "day_rate"
)

// Snapshot is the full breakdown kept for audit and display
type Snapshot struct {
	Kind  Kind  `json:"kind"`
	Basis Basis `json:"basis"`

	// stays
	Nights                int   `json:"nights,omitempty"`
	NightlyRateCents      int64 `json:"nightlyRateCents,omitempty"`
	BaseCents             int64 `json:"baseCents"`
	DiscountBps           int64 `json:"discountBps,omitempty"`
	DiscountCents         int64 `json:"discountCents,omitempty"`
	EffectiveNightlyCents int64 `json:"effectiveNightlyCents,omitempty"`
	ServiceFeeCents       int64 `json:"serviceFeeCents,omitempty"`
	TaxCents              int64 `json:"taxCents,omitempty"`

	// events
	DurationMinutes int64  `json:"durationMinutes,omitempty"`
	BillableMinutes int64  `json:"billableMinutes,omitempty"`
	HourlyRateCents int64  `json:"hourlyRateCents,omitempty"`
	HourlyCostCents int64  `json:"hourlyCostCents,omitempty"`
	DayRateCents    int64  `json:"dayRateCents,omitempty"`
	DayRateCost     int64  `json:"dayRateCostCents,omitempty"`
	EventType       string `json:"eventType,omitempty"`
	GuestCount      int    `json:"guestCount,omitempty"`
	Vehicles        int    `json:"vehicles,omitempty"`
	ParkingCapacity int    `json:"parkingCapacity,omitempty"`

	CleaningFeeCents int64 `json:"cleaningFeeCents"`
	AddonsCents      int64 `json:"addonsCents"`
}

// Quote is an immutable pricing result for a prospective booking
type Quote struct {
	Mode             Mode       `json:"mode"`
	Currency         string     `json:"currency"`
	SubtotalCents    int64      `json:"subtotalCents"`
	FeesCents        int64      `json:"feesCents"`
	AddonsTotalCents int64      `json:"addonsTotalCents"`
	DepositCents     int64      `json:"depositCents"`
	TotalCents       int64      `json:"totalCents"`
	DurationHours    *float64   `json:"durationHours,omitempty"`
	RiskFlags        []RiskFlag `json:"riskFlags"`
	PricingSnapshot  Snapshot   `json:"pricingSnapshot"`
}

// HasFlag reports whether the quote carries f
func (q *Quote) HasFlag(f RiskFlag) bool {
	for _, flag := range q.RiskFlags {
		if flag == f {
			return true
		}
	}
	return false
}

// Validate checks the structural invariants of a quote received from a client
func (q *Quote) Validate() error {
	if q == nil {
		return ErrQuoteRequired
	}
	if !q.Mode.Valid() {
		return ErrQuoteInvalid
	}
	if !strings.EqualFold(q.Currency, Currency) {
		return ErrUnsupportedCurrency
	}
	if q.SubtotalCents < 0 || q.FeesCents < 0 || q.AddonsTotalCents < 0 || q.DepositCents < 0 {
		return ErrNegativeAmount
	}
	if q.TotalCents != q.SubtotalCents+q.FeesCents+q.AddonsTotalCents {
		return ErrQuoteTotalMismatch
	}
	for _, f := range q.RiskFlags {
		if !f.Valid() {
			return ErrUnknownRiskFlag
		}
	}
	return nil
}

// Normalized returns a copy with canonical currency and flag set
func (q Quote) Normalized() Quote {
	q.Currency = strings.ToLower(q.Currency)
	q.RiskFlags = NormalizeFlags(q.RiskFlags)
	return q
}
