package pricing

import (
	"context"

	"github.com/google/uuid"

	"github.com/stayhost/stayhost-api/internal/domain/property"
	"github.com/stayhost/stayhost-api/internal/pkg/errorhandler"
)

// PropertyGetter loads property pricing
type PropertyGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*property.Property, error)
}

// Service quotes bookings against stored property pricing
type Service struct {
	properties PropertyGetter
	fees       FeeSchedule
}

// NewService creates pricing service
func NewService(properties PropertyGetter, fees FeeSchedule) *Service {
	return &Service{properties: properties, fees: fees}
}

// Quote prices req against the property's current configuration
func (s *Service) Quote(ctx context.Context, req *QuoteRequest) (*Quote, error) {
	p, err := s.properties.GetByID(ctx, req.PropertyID)
	if err != nil {
		return nil, errorhandler.Storage(err)
	}
	if p == nil {
		return nil, ErrPropertyNotFound
	}

	switch Kind(req.Kind) {
	case KindStay:
		if req.Stay == nil {
			return nil, ErrDetailsRequired
		}
		return s.quoteStay(p, req.Stay)
	case KindEvent:
		if req.Event == nil {
			return nil, ErrDetailsRequired
		}
		return s.quoteEvent(p, req.Event)
	default:
		return nil, ErrDetailsRequired
	}
}

func (s *Service) quoteStay(p *property.Property, req *StayRequest) (*Quote, error) {
	if !p.SupportsStays() {
		return nil, ErrPricingUnavailable
	}
	if !p.AcceptsGuests(req.GuestCount) {
		return nil, ErrTooManyGuests
	}
	checkIn, err := ParseDate(req.CheckIn)
	if err != nil {
		return nil, err
	}
	checkOut, err := ParseDate(req.CheckOut)
	if err != nil {
		return nil, err
	}
	addons, err := resolveAddons(p.Addons, req.Addons)
	if err != nil {
		return nil, err
	}

	return QuoteStay(StayInput{
		CheckIn:          checkIn,
		CheckOut:         checkOut,
		GuestCount:       req.GuestCount,
		NightlyRateCents: p.NightlyRateCents,
		CleaningFeeCents: p.CleaningFeeCents,
		AddonsTotalCents: addons,
	}, s.fees)
}

func (s *Service) quoteEvent(p *property.Property, req *EventRequest) (*Quote, error) {
	if !p.SupportsEvents() {
		return nil, ErrPricingUnavailable
	}
	if !p.AcceptsGuests(req.GuestCount) {
		return nil, ErrTooManyGuests
	}
	addons, err := resolveAddons(p.Addons, req.Addons)
	if err != nil {
		return nil, err
	}

	return QuoteEvent(EventInput{
		EventType:        req.EventType,
		StartAt:          req.StartAt,
		EndAt:            req.EndAt,
		GuestCount:       req.GuestCount,
		Vehicles:         req.Vehicles,
		HourlyRateCents:  p.HourlyRateCents,
		MinHours:         p.MinHours,
		DayRateCents:     p.DayRateCents,
		DayRateHours:     p.DayRateHours,
		CleaningFeeCents: p.EventCleaningFeeCents,
		DepositCents:     p.DepositCents,
		AddonsTotalCents: addons,
		AllowInstantBook: p.AllowInstantBook,
		Curfew:           p.CurfewValue(),
		Location:         p.Location(),
		ParkingSpaces:    p.ParkingSpaces,
		Alcohol:          req.Alcohol,
		AmplifiedSound:   req.AmplifiedSound,
	}, s.fees)
}

// resolveAddons sums the catalog price of each distinct requested code
func resolveAddons(catalog property.Addons, codes []string) (int64, error) {
	seen := make(map[string]struct{}, len(codes))
	var total int64
	for _, code := range codes {
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}

		cents, ok := catalog[code]
		if !ok {
			return 0, ErrUnknownAddon
		}
		if cents < 0 {
			return 0, ErrNegativeAmount
		}
		total += cents
	}
	return total, nil
}
