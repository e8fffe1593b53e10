package booking

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stayhost/stayhost-api/internal/domain/payment"
	"github.com/stayhost/stayhost-api/internal/domain/pricing"
	"github.com/stayhost/stayhost-api/internal/domain/property"
	"github.com/stayhost/stayhost-api/internal/pkg/jwt"
)

type memoryRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*Booking
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{bookings: map[uuid.UUID]*Booking{}}
}

func clone(b *Booking) *Booking {
	cp := *b
	cp.PricingSnapshot.Notes = append([]Note(nil), b.PricingSnapshot.Notes...)
	cp.RiskFlags = append([]string(nil), b.RiskFlags...)
	return &cp
}

func (m *memoryRepo) Create(ctx context.Context, b *Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[b.ID] = clone(b)
	return nil
}

func (m *memoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, nil
	}
	return clone(b), nil
}

func (m *memoryRepo) ListByGuest(ctx context.Context, guestID uuid.UUID, limit, offset int) ([]*Booking, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Booking
	for _, b := range m.bookings {
		if b.GuestID == guestID {
			out = append(out, clone(b))
		}
	}
	return out, len(out), nil
}

func (m *memoryRepo) Mutate(ctx context.Context, id uuid.UUID, fn func(b *Booking) error) (*Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	b := clone(stored)
	if err := fn(b); err != nil {
		if errors.Is(err, errUnchanged) {
			return clone(stored), nil
		}
		return nil, err
	}
	b.UpdatedAt = time.Now()
	m.bookings[id] = clone(b)
	return b, nil
}

func (m *memoryRepo) FindConflict(ctx context.Context, propertyID uuid.UUID, w Window, excludeID *uuid.UUID) (*Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var candidates []*Booking
	for _, b := range m.bookings {
		if b.PropertyID != propertyID || !b.Status.IsBlocking() || !b.BlocksCalendar {
			continue
		}
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		candidates = append(candidates, b)
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].StartAt.Before(candidates[j].StartAt) })
	if b := firstConflict(w, candidates); b != nil {
		return clone(b), nil
	}
	return nil, nil
}

func (m *memoryRepo) status(id uuid.UUID) Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bookings[id].Status
}

type propertyStore map[uuid.UUID]*property.Property

func (p propertyStore) GetByID(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	return p[id], nil
}

type fakePayments struct {
	records    []*payment.Record
	ensured    []ensureCall
	cancelErr  error
	cancels    int
	release    payment.ReleaseAction
	releaseErr error
}

type ensureCall struct {
	purpose payment.Purpose
	amount  int64
}

func (f *fakePayments) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*payment.Record, error) {
	var out []*payment.Record
	for _, r := range f.records {
		if r.BookingID == bookingID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakePayments) EnsureIntent(ctx context.Context, bookingID uuid.UUID, purpose payment.Purpose, amountCents int64) (*payment.Intent, error) {
	f.ensured = append(f.ensured, ensureCall{purpose, amountCents})
	intent := &payment.Intent{
		ID:          "pi_" + string(purpose),
		Status:      payment.IntentRequiresPaymentMethod,
		AmountCents: amountCents,
		Currency:    pricing.Currency,
	}
	if payment.SelectIntentByPurpose(f.records, purpose) == nil {
		f.records = append(f.records, &payment.Record{
			ID: uuid.New(), BookingID: bookingID, Purpose: purpose, IntentID: intent.ID,
			ExternalStatus: intent.Status, Status: payment.StatusPending, AmountCents: amountCents,
		})
	}
	return intent, nil
}

func (f *fakePayments) ApplyIntentUpdate(ctx context.Context, intent *payment.Intent) (*payment.Record, error) {
	for _, r := range f.records {
		if r.IntentID == intent.ID {
			r.ExternalStatus = intent.Status
			r.Status = payment.MapIntentStatusToPaymentStatus(intent.Status)
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakePayments) CancelOpenIntents(ctx context.Context, bookingID uuid.UUID) error {
	f.cancels++
	return f.cancelErr
}

func (f *fakePayments) ReleaseDeposit(ctx context.Context, bookingID uuid.UUID) (payment.ReleaseAction, error) {
	if f.releaseErr != nil {
		return "", f.releaseErr
	}
	return f.release, nil
}

type fakeLocker struct {
	err      error
	acquired []string
	released int
}

func (l *fakeLocker) Acquire(ctx context.Context, name string) (func(), error) {
	if l.err != nil {
		return nil, l.err
	}
	l.acquired = append(l.acquired, name)
	return func() { l.released++ }, nil
}

type recordingNotifier struct {
	sent []Notification
}

func (n *recordingNotifier) Notify(ctx context.Context, note Notification) error {
	n.sent = append(n.sent, note)
	return nil
}

func (n *recordingNotifier) types() []string {
	out := make([]string, len(n.sent))
	for i, s := range n.sent {
		out[i] = s.Type
	}
	return out
}

type fixedQuoter struct {
	quote *pricing.Quote
	err   error
}

func (q fixedQuoter) Quote(ctx context.Context, req *pricing.QuoteRequest) (*pricing.Quote, error) {
	return q.quote, q.err
}

type harness struct {
	svc      *Service
	repo     *memoryRepo
	payments *fakePayments
	locker   *fakeLocker
	notifier *recordingNotifier
	managers *managerSet
	property *property.Property
	guest    Actor
	host     Actor
}

func newHarness() *harness {
	hostID := uuid.New()
	p := &property.Property{ID: uuid.New(), HostID: hostID, Title: "Canyon House", MaxGuests: 40}

	h := &harness{
		repo:     newMemoryRepo(),
		payments: &fakePayments{},
		locker:   &fakeLocker{},
		notifier: &recordingNotifier{},
		managers: &managerSet{managers: map[uuid.UUID]bool{hostID: true}},
		property: p,
		guest:    Actor{UserID: uuid.New(), Role: jwt.RoleGuest},
		host:     Actor{UserID: hostID, Role: jwt.RoleHost},
	}
	h.svc = NewService(h.repo, propertyStore{p.ID: p}, NewAuthorizer(h.managers), h.payments, h.locker, Config{
		BaseURL:            "https://stayhost.test/",
		InstantBookEnabled: true,
	})
	h.svc.SetNotifier(h.notifier)
	h.svc.now = func() time.Time { return time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC) }
	return h
}

func day(d, hour int) time.Time {
	return time.Date(2026, 6, d, hour, 0, 0, 0, time.UTC)
}

func stayQuote() *pricing.Quote {
	return &pricing.Quote{
		Mode: pricing.ModeInstant, Currency: "usd",
		SubtotalCents: 30000, FeesCents: 14840, TotalCents: 44840,
		RiskFlags: []pricing.RiskFlag{},
	}
}

func eventQuote(mode pricing.Mode, deposit int64, flags ...pricing.RiskFlag) *pricing.Quote {
	return &pricing.Quote{
		Mode: mode, Currency: "usd",
		SubtotalCents: 40000, FeesCents: 5000, TotalCents: 45000, DepositCents: deposit,
		RiskFlags: flags,
	}
}
