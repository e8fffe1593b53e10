package pricing

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Event types that force a risk flag
const (
	EventTypeProduction      = "production"
	EventTypeIntimateWedding = "intimate_wedding"
)

const defaultGuestsPerVehicle = 3

// curfews before this hour belong to the night that started the previous day
const curfewDayBoundaryHour = 6

// FeeSchedule holds the platform-wide fee configuration
type FeeSchedule struct {
	ServiceFeeBps    int64
	TaxBps           int64
	GuestsPerVehicle int
}

// StayInput is everything needed to price a stay
type StayInput struct {
	CheckIn          time.Time
	CheckOut         time.Time
	GuestCount       int
	NightlyRateCents int64
	CleaningFeeCents int64
	AddonsTotalCents int64
}

// EventInput is everything needed to price an event
type EventInput struct {
	EventType        string
	StartAt          time.Time
	EndAt            time.Time
	GuestCount       int
	Vehicles         int
	HourlyRateCents  int64
	MinHours         int
	DayRateCents     int64
	DayRateHours     int
	CleaningFeeCents int64
	DepositCents     int64
	AddonsTotalCents int64
	AllowInstantBook bool
	Curfew           string
	Location         *time.Location
	ParkingSpaces    int
	Alcohol          bool
	AmplifiedSound   bool
}

// applyBps returns amount * bps / 10000 rounded half up
func applyBps(amount, bps int64) int64 {
	return (amount*bps + 5000) / 10000
}

// divRound divides non-negative a by positive b rounding half up
func divRound(a, b int64) int64 {
	return (a + b/2) / b
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NightsBetween counts calendar nights between two dates
func NightsBetween(checkIn, checkOut time.Time) int {
	return int(civilDate(checkOut).Sub(civilDate(checkIn)) / (24 * time.Hour))
}

// stayDiscountBps is the length-of-stay discount tier
func stayDiscountBps(nights int) int64 {
	switch {
	case nights >= 21:
		return 4000
	case nights >= 7:
		return 2000
	default:
		return 0
	}
}

// cleaningShareBps is the cleaning share of the discounted subtotal used
// when the property has no flat cleaning fee
func cleaningShareBps(nights int) int64 {
	switch {
	case nights > 21:
		return 700
	case nights >= 8:
		return 1500
	default:
		return 3000
	}
}

func (f FeeSchedule) validate() error {
	if f.ServiceFeeBps < 0 || f.TaxBps < 0 {
		return ErrNegativeAmount
	}
	return nil
}

// QuoteStay prices a stay. Stays never carry risk flags or a deposit and are
// always instant.
func QuoteStay(in StayInput, fees FeeSchedule) (*Quote, error) {
	if err := fees.validate(); err != nil {
		return nil, err
	}
	if in.NightlyRateCents < 0 || in.CleaningFeeCents < 0 || in.AddonsTotalCents < 0 {
		return nil, ErrNegativeAmount
	}
	if in.GuestCount < 1 {
		return nil, ErrInvalidGuestCount
	}
	if in.CheckIn.IsZero() || in.CheckOut.IsZero() {
		return nil, ErrInvalidDates
	}
	nights := NightsBetween(in.CheckIn, in.CheckOut)
	if nights < 1 {
		return nil, ErrInvalidDates
	}

	base := in.NightlyRateCents * int64(nights)
	discountBps := stayDiscountBps(nights)
	discount := applyBps(base, discountBps)
	subtotal := base - discount

	cleaning := in.CleaningFeeCents
	if cleaning == 0 {
		cleaning = applyBps(subtotal, cleaningShareBps(nights))
	}
	service := applyBps(subtotal, fees.ServiceFeeBps)
	tax := applyBps(subtotal+cleaning, fees.TaxBps)
	feesTotal := cleaning + service + tax

	return &Quote{
		Mode:             ModeInstant,
		Currency:         Currency,
		SubtotalCents:    subtotal,
		FeesCents:        feesTotal,
		AddonsTotalCents: in.AddonsTotalCents,
		DepositCents:     0,
		TotalCents:       subtotal + feesTotal + in.AddonsTotalCents,
		RiskFlags:        []RiskFlag{},
		PricingSnapshot: Snapshot{
			Kind:                  KindStay,
			Basis:                 BasisNightly,
			Nights:                nights,
			NightlyRateCents:      in.NightlyRateCents,
			BaseCents:             base,
			DiscountBps:           discountBps,
			DiscountCents:         discount,
			EffectiveNightlyCents: divRound(subtotal, int64(nights)),
			ServiceFeeCents:       service,
			TaxCents:              tax,
			GuestCount:            in.GuestCount,
			CleaningFeeCents:      cleaning,
			AddonsCents:           in.AddonsTotalCents,
		},
	}, nil
}

// QuoteEvent prices an event and derives its risk flags
func QuoteEvent(in EventInput, fees FeeSchedule) (*Quote, error) {
	if err := validateEvent(in); err != nil {
		return nil, err
	}

	window := in.EndAt.Sub(in.StartAt)
	durationMinutes := int64(window / time.Minute)
	if window%time.Minute != 0 {
		durationMinutes++
	}
	billable := durationMinutes
	if minimum := int64(in.MinHours) * 60; billable < minimum {
		billable = minimum
	}

	hourlyCost := divRound(in.HourlyRateCents*billable, 60)
	basis, subtotal := BasisHourly, hourlyCost

	var dayCost int64
	if in.DayRateCents > 0 {
		var excess int64
		if covered := int64(in.DayRateHours) * 60; covered > 0 && billable > covered {
			excess = billable - covered
		}
		dayCost = in.DayRateCents + divRound(in.HourlyRateCents*excess, 60)
		// a day rate wins ties, and is the only basis when no hourly rate exists
		if in.HourlyRateCents == 0 || dayCost <= hourlyCost {
			basis, subtotal = BasisDayRate, dayCost
		}
	}

	flags, capacity, err := eventRiskFlags(in, fees)
	if err != nil {
		return nil, err
	}

	mode := ModeRequest
	if in.AllowInstantBook && len(flags) == 0 {
		mode = ModeInstant
	}

	hours := math.Round(float64(window)/float64(time.Hour)*100) / 100

	return &Quote{
		Mode:             mode,
		Currency:         Currency,
		SubtotalCents:    subtotal,
		FeesCents:        in.CleaningFeeCents,
		AddonsTotalCents: in.AddonsTotalCents,
		DepositCents:     in.DepositCents,
		TotalCents:       subtotal + in.CleaningFeeCents + in.AddonsTotalCents,
		DurationHours:    &hours,
		RiskFlags:        flags,
		PricingSnapshot: Snapshot{
			Kind:             KindEvent,
			Basis:            basis,
			BaseCents:        subtotal,
			DurationMinutes:  durationMinutes,
			BillableMinutes:  billable,
			HourlyRateCents:  in.HourlyRateCents,
			HourlyCostCents:  hourlyCost,
			DayRateCents:     in.DayRateCents,
			DayRateCost:      dayCost,
			EventType:        in.EventType,
			GuestCount:       in.GuestCount,
			Vehicles:         in.Vehicles,
			ParkingCapacity:  capacity,
			CleaningFeeCents: in.CleaningFeeCents,
			AddonsCents:      in.AddonsTotalCents,
		},
	}, nil
}

func validateEvent(in EventInput) error {
	if in.HourlyRateCents < 0 || in.DayRateCents < 0 || in.CleaningFeeCents < 0 ||
		in.DepositCents < 0 || in.AddonsTotalCents < 0 {
		return ErrNegativeAmount
	}
	if in.MinHours < 0 || in.DayRateHours < 0 {
		return ErrInvalidMinHours
	}
	if in.GuestCount < 1 {
		return ErrInvalidGuestCount
	}
	if in.Vehicles < 0 {
		return ErrInvalidVehicles
	}
	if in.StartAt.IsZero() || in.EndAt.IsZero() || !in.EndAt.After(in.StartAt) {
		return ErrInvalidWindow
	}
	return nil
}

// eventRiskFlags returns the normalized flag set and the parking capacity used
func eventRiskFlags(in EventInput, fees FeeSchedule) ([]RiskFlag, int, error) {
	var flags []RiskFlag
	if in.Alcohol {
		flags = append(flags, FlagAlcohol)
	}
	if in.AmplifiedSound {
		flags = append(flags, FlagAmplifiedSound)
	}

	if in.Curfew != "" {
		curfewAt, err := curfewFor(in.StartAt, in.Curfew, in.Location)
		if err != nil {
			return nil, 0, err
		}
		if in.EndAt.After(curfewAt) {
			flags = append(flags, FlagLateEnd)
		}
	}

	capacity := in.ParkingSpaces
	if capacity <= 0 {
		perVehicle := fees.GuestsPerVehicle
		if perVehicle <= 0 {
			perVehicle = defaultGuestsPerVehicle
		}
		capacity = (in.GuestCount + perVehicle - 1) / perVehicle
	}
	if in.Vehicles > capacity {
		flags = append(flags, FlagOverParking)
	}

	switch strings.ToLower(in.EventType) {
	case EventTypeProduction:
		flags = append(flags, FlagProduction)
	case EventTypeIntimateWedding:
		flags = append(flags, FlagWedding)
	}

	return NormalizeFlags(flags), capacity, nil
}

// curfewFor returns the curfew that applies to an event starting at start.
// The curfew sits on the start's local date; an early-morning curfew moves to
// the next day when the event starts in the evening.
func curfewFor(start time.Time, curfew string, loc *time.Location) (time.Time, error) {
	hour, minute, err := parseClock(curfew)
	if err != nil {
		return time.Time{}, err
	}
	if loc == nil {
		loc = time.UTC
	}
	local := start.In(loc)
	at := time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, loc)
	if hour < curfewDayBoundaryHour && local.Hour() >= curfewDayBoundaryHour {
		at = at.AddDate(0, 0, 1)
	}
	return at, nil
}

func parseClock(s string) (int, int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(hh) != 2 || len(mm) != 2 {
		return 0, 0, ErrInvalidCurfew
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, ErrInvalidCurfew
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, ErrInvalidCurfew
	}
	return hour, minute, nil
}
