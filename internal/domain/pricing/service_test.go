package pricing

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayhost/stayhost-api/internal/domain/property"
	"github.com/stayhost/stayhost-api/internal/pkg/errorhandler"
)

type mockProperties struct {
	getByID func(ctx context.Context, id uuid.UUID) (*property.Property, error)
}

func (m *mockProperties) GetByID(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	return m.getByID(ctx, id)
}

func withProperty(p *property.Property) *mockProperties {
	return &mockProperties{getByID: func(ctx context.Context, id uuid.UUID) (*property.Property, error) {
		if p == nil || p.ID != id {
			return nil, nil
		}
		return p, nil
	}}
}

func venue() *property.Property {
	return &property.Property{
		ID:                    uuid.New(),
		Timezone:              "UTC",
		NightlyRateCents:      20000,
		HourlyRateCents:       10000,
		MinHours:              2,
		EventCleaningFeeCents: 5000,
		DepositCents:          25000,
		AllowInstantBook:      true,
		Curfew:                sql.NullString{String: "23:00", Valid: true},
		MaxGuests:             40,
		Addons:                property.Addons{"chairs": 1500, "projector": 3000},
	}
}

func TestServiceQuoteStay(t *testing.T) {
	p := venue()
	svc := NewService(withProperty(p), testFees)

	q, err := svc.Quote(context.Background(), &QuoteRequest{
		Kind:       "stay",
		PropertyID: p.ID,
		Stay: &StayRequest{
			CheckIn:    "2025-09-01",
			CheckOut:   "2025-09-04",
			GuestCount: 2,
			Addons:     []string{"chairs", "chairs"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, ModeInstant, q.Mode)
	assert.Equal(t, 3, q.PricingSnapshot.Nights)
	assert.Equal(t, int64(60000), q.SubtotalCents)
	assert.Equal(t, int64(1500), q.AddonsTotalCents, "repeated add-on codes count once")
	assert.Equal(t, q.SubtotalCents+q.FeesCents+q.AddonsTotalCents, q.TotalCents)
}

func TestServiceQuoteEventUsesPropertyRules(t *testing.T) {
	p := venue()
	svc := NewService(withProperty(p), testFees)

	start := time.Date(2025, 9, 6, 20, 0, 0, 0, time.UTC)
	q, err := svc.Quote(context.Background(), &QuoteRequest{
		Kind:       "event",
		PropertyID: p.ID,
		Event: &EventRequest{
			EventType:  "party",
			StartAt:    start,
			EndAt:      start.Add(4 * time.Hour),
			GuestCount: 30,
			Vehicles:   5,
			Addons:     []string{"projector"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, ModeRequest, q.Mode)
	assert.Equal(t, []RiskFlag{FlagLateEnd}, q.RiskFlags)
	assert.Equal(t, int64(40000), q.SubtotalCents)
	assert.Equal(t, int64(5000), q.FeesCents)
	assert.Equal(t, int64(3000), q.AddonsTotalCents)
	assert.Equal(t, int64(25000), q.DepositCents)
	assert.Equal(t, int64(48000), q.TotalCents)
}

func TestServiceQuoteErrors(t *testing.T) {
	p := venue()
	start := time.Date(2025, 9, 6, 12, 0, 0, 0, time.UTC)
	event := func(mut func(e *EventRequest)) *QuoteRequest {
		e := &EventRequest{EventType: "meeting", StartAt: start, EndAt: start.Add(time.Hour), GuestCount: 5}
		mut(e)
		return &QuoteRequest{Kind: "event", PropertyID: p.ID, Event: e}
	}

	tests := []struct {
		name string
		req  *QuoteRequest
		want error
	}{
		{"unknown property", &QuoteRequest{Kind: "stay", PropertyID: uuid.New(), Stay: &StayRequest{}}, ErrPropertyNotFound},
		{"unknown addon", event(func(e *EventRequest) { e.Addons = []string{"fireworks"} }), ErrUnknownAddon},
		{"too many guests", event(func(e *EventRequest) { e.GuestCount = 41 }), ErrTooManyGuests},
		{"missing details", &QuoteRequest{Kind: "event", PropertyID: p.ID}, ErrDetailsRequired},
		{"bad stay date", &QuoteRequest{Kind: "stay", PropertyID: p.ID, Stay: &StayRequest{CheckIn: "09/01/2025", CheckOut: "2025-09-03", GuestCount: 1}}, ErrInvalidDates},
	}

	svc := NewService(withProperty(p), testFees)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Quote(context.Background(), tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestServiceQuotePricingUnavailable(t *testing.T) {
	p := venue()
	p.HourlyRateCents = 0
	svc := NewService(withProperty(p), testFees)

	start := time.Date(2025, 9, 6, 12, 0, 0, 0, time.UTC)
	_, err := svc.Quote(context.Background(), &QuoteRequest{
		Kind:       "event",
		PropertyID: p.ID,
		Event:      &EventRequest{EventType: "meeting", StartAt: start, EndAt: start.Add(time.Hour), GuestCount: 2},
	})
	assert.ErrorIs(t, err, ErrPricingUnavailable)
}

func TestServiceQuoteStorageFailure(t *testing.T) {
	svc := NewService(&mockProperties{getByID: func(ctx context.Context, id uuid.UUID) (*property.Property, error) {
		return nil, errors.New("connection refused")
	}}, testFees)

	_, err := svc.Quote(context.Background(), &QuoteRequest{Kind: "stay", PropertyID: uuid.New()})
	require.Error(t, err)
	assert.Equal(t, errorhandler.KindUpstream, errorhandler.KindOf(err))
}
