package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stayhost/stayhost-api/internal/domain/payment"
	"github.com/stayhost/stayhost-api/internal/domain/pricing"
	"github.com/stayhost/stayhost-api/internal/domain/property"
	"github.com/stayhost/stayhost-api/internal/pkg/errorhandler"
	"github.com/stayhost/stayhost-api/internal/pkg/events"
	"github.com/stayhost/stayhost-api/internal/pkg/jwt"
	"github.com/stayhost/stayhost-api/internal/pkg/lock"
	"github.com/stayhost/stayhost-api/internal/pkg/logger"
)

// Config holds the booking settings the orchestrator needs
type Config struct {
	BaseURL            string
	InstantBookEnabled bool
}

// PropertyGetter loads properties
type PropertyGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*property.Property, error)
}

// Locker serializes submissions per property
type Locker interface {
	Acquire(ctx context.Context, name string) (func(), error)
}

// Quoter prices a booking server-side
type Quoter interface {
	Quote(ctx context.Context, req *pricing.QuoteRequest) (*pricing.Quote, error)
}

// Payments is the payment collaborator
type Payments interface {
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*payment.Record, error)
	EnsureIntent(ctx context.Context, bookingID uuid.UUID, purpose payment.Purpose, amountCents int64) (*payment.Intent, error)
	ApplyIntentUpdate(ctx context.Context, intent *payment.Intent) (*payment.Record, error)
	CancelOpenIntents(ctx context.Context, bookingID uuid.UUID) error
	ReleaseDeposit(ctx context.Context, bookingID uuid.UUID) (payment.ReleaseAction, error)
}

// Notification describes a lifecycle change worth telling people about.
// Type is one of the events routing keys.
type Notification struct {
	Type       string
	Booking    *Booking
	ActorID    uuid.UUID
	Note       string
	PaymentURL string
}

// Notifier delivers lifecycle notifications
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// Service orchestrates the booking lifecycle
type Service struct {
	repo       Repository
	properties PropertyGetter
	auth       *Authorizer
	payments   Payments
	locker     Locker
	quoter     Quoter
	notifier   Notifier
	cfg        Config
	now        func() time.Time
}

// NewService creates booking service
func NewService(repo Repository, properties PropertyGetter, auth *Authorizer, payments Payments, locker Locker, cfg Config) *Service {
	return &Service{
		repo:       repo,
		properties: properties,
		auth:       auth,
		payments:   payments,
		locker:     locker,
		cfg:        cfg,
		now:        time.Now,
	}
}

// SetNotifier sets the lifecycle notifier
func (s *Service) SetNotifier(n Notifier) {
	s.notifier = n
}

// SetQuoter enables server-side re-quoting on submit
func (s *Service) SetQuoter(q Quoter) {
	s.quoter = q
}

// load fetches a booking and the actor's capabilities on it
func (s *Service) load(ctx context.Context, actor Actor, id uuid.UUID) (*Booking, Capability, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, 0, errorhandler.Storage(err)
	}
	if b == nil {
		return nil, 0, ErrBookingNotFound
	}
	return b, s.auth.Capabilities(ctx, actor, b), nil
}

func (s *Service) mutate(ctx context.Context, id uuid.UUID, fn func(b *Booking) error) (*Booking, error) {
	b, err := s.repo.Mutate(ctx, id, fn)
	if err != nil {
		return nil, errorhandler.Storage(err)
	}
	return b, nil
}

func (s *Service) notify(ctx context.Context, n Notification) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("booking_id", n.Booking.ID.String()).
			Str("notification", n.Type).
			Msg("Booking notification failed")
	}
}

// CreateDraft creates a draft booking for a guest
func (s *Service) CreateDraft(ctx context.Context, actor Actor, req *CreateRequest) (*Booking, error) {
	if actor.UserID == uuid.Nil || actor.Role != jwt.RoleGuest {
		return nil, ErrGuestOnly
	}

	kind := pricing.Kind(req.Kind)
	if !kind.Valid() {
		return nil, ErrKindMismatch
	}
	if req.GuestCount < 1 {
		return nil, pricing.ErrInvalidGuestCount
	}
	if req.StartAt.IsZero() || !req.EndAt.After(req.StartAt) {
		return nil, ErrInvalidWindow
	}
	if kind == pricing.KindEvent && req.EventDetails == nil {
		return nil, ErrDetailsRequired
	}

	p, err := s.properties.GetByID(ctx, req.PropertyID)
	if err != nil {
		return nil, errorhandler.Storage(err)
	}
	if p == nil {
		return nil, ErrPropertyMissing
	}
	if !p.AcceptsGuests(req.GuestCount) {
		return nil, pricing.ErrTooManyGuests
	}

	now := s.now().UTC()
	b := &Booking{
		ID:         uuid.New(),
		Kind:       kind,
		Status:     StatusDraft,
		GuestID:    actor.UserID,
		PropertyID: req.PropertyID,
		StartAt:    req.StartAt.UTC(),
		EndAt:      req.EndAt.UTC(),
		GuestCount: req.GuestCount,
		RiskFlags:  []string{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	switch kind {
	case pricing.KindStay:
		checkIn, checkOut := civilDate(req.StartAt), civilDate(req.EndAt)
		if !checkOut.After(checkIn) {
			return nil, pricing.ErrInvalidDates
		}
		b.Mode = pricing.ModeInstant
		b.CheckIn, b.CheckOut = &checkIn, &checkOut
		b.StartAt, b.EndAt = checkIn, checkOut
		if req.StayDetails != nil {
			details := *req.StayDetails
			b.StayDetails = &details
		}
	case pricing.KindEvent:
		b.Mode = pricing.ModeRequest
		if pricing.Mode(req.Mode) == pricing.ModeInstant {
			b.Mode = pricing.ModeInstant
		}
		details := *req.EventDetails
		b.EventDetails = &details
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, errorhandler.Storage(err)
	}

	logger.FromContext(ctx).Info().
		Str("booking_id", b.ID.String()).
		Str("property_id", b.PropertyID.String()).
		Str("kind", string(b.Kind)).
		Msg("Booking draft created")

	return b, nil
}

// Submit commits a quote to a draft and moves it into the lifecycle.
// Resubmitting a booking already in the resulting status is accepted; past
// the request stage only with the quote it already holds.
func (s *Service) Submit(ctx context.Context, actor Actor, id uuid.UUID, req *SubmitRequest) (*Booking, error) {
	b, caps, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !caps.Has(CanSubmit) {
		return nil, ErrForbidden
	}
	if pricing.Kind(req.Kind) != b.Kind {
		return nil, ErrKindMismatch
	}
	if err := req.Quote.Validate(); err != nil {
		return nil, err
	}
	quote := req.Quote.Normalized()

	if s.quoter != nil {
		server, err := s.quoter.Quote(ctx, quoteRequestFor(b))
		if err != nil {
			return nil, err
		}
		if !sameQuote(quote, *server) {
			return nil, ErrQuoteMismatch
		}
		quote = server.Normalized()
	}

	proposed := quote.Mode
	if b.Kind == pricing.KindEvent && !s.cfg.InstantBookEnabled {
		proposed = pricing.ModeRequest
	}
	decision := Decide(b.Kind, proposed, quote.RiskFlags)

	if !submittable(b, decision.Status, quote) {
		return nil, ErrInvalidStatus
	}

	release, err := s.locker.Acquire(ctx, "property:"+b.PropertyID.String())
	switch {
	case errors.Is(err, lock.ErrNotAcquired):
		return nil, ErrSubmissionInProgress
	case err != nil:
		logger.FromContext(ctx).Warn().Err(err).
			Str("booking_id", b.ID.String()).
			Msg("Submission lock unavailable, continuing without it")
	default:
		defer release()
	}

	conflict, err := s.repo.FindConflict(ctx, b.PropertyID, b.Window(), &b.ID)
	if err != nil {
		return nil, errorhandler.Storage(err)
	}
	if conflict != nil {
		return nil, ErrUnavailable
	}

	submittedAt := s.now().UTC()
	prev := b.Status
	updated, err := s.mutate(ctx, id, func(b *Booking) error {
		if !submittable(b, decision.Status, quote) {
			return ErrInvalidStatus
		}
		q := quote
		b.Status = decision.Status
		b.Mode = decision.Mode
		b.PricingSnapshot.Quote = &q
		b.PricingSnapshot.SubmittedAt = &submittedAt
		b.TotalCents = quote.TotalCents
		b.RiskFlags = flagStrings(quote.RiskFlags)
		b.BlocksCalendar = decision.BlocksCalendar
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info().
		Str("booking_id", updated.ID.String()).
		Str("status", string(updated.Status)).
		Str("mode", string(updated.Mode)).
		Bool("requires_request", decision.RequiresRequest).
		Strs("risk_flags", updated.RiskFlags).
		Msg("Booking submitted")

	// resubmitting a held booking is a no-op for recipients
	if prev == StatusDraft || !b.BlocksCalendar {
		s.notify(ctx, Notification{Type: events.BookingSubmitted, Booking: updated, ActorID: actor.UserID})
	}
	return updated, nil
}

// submittable reports whether b may take a submission resolving to next.
// Once a booking is held for payment its committed quote is fixed.
func submittable(b *Booking, next Status, quote pricing.Quote) bool {
	switch {
	case b.Status == StatusDraft:
		return true
	case b.Status != next:
		return false
	case b.Status == StatusRequested:
		return true
	default:
		return b.PricingSnapshot.Quote != nil && sameQuote(*b.PricingSnapshot.Quote, quote)
	}
}

// Review applies a manager decision to a requested booking
func (s *Service) Review(ctx context.Context, actor Actor, id uuid.UUID, req *ReviewRequest) (*Booking, error) {
	b, caps, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !caps.Has(CanReview) {
		return nil, ErrForbidden
	}

	switch req.Action {
	case ActionApprove:
		return s.approve(ctx, actor, b)
	case ActionDecline:
		return s.decline(ctx, actor, b, req.Note)
	case ActionRequestInfo:
		return s.requestInfo(ctx, actor, b, req.Note)
	default:
		return nil, ErrInvalidAction
	}
}

func (s *Service) approve(ctx context.Context, actor Actor, b *Booking) (*Booking, error) {
	if b.Kind != pricing.KindEvent {
		return nil, ErrEventOnly
	}
	if b.Status != StatusRequested {
		return nil, ErrInvalidStatus
	}

	updated, err := s.mutate(ctx, b.ID, func(b *Booking) error {
		if b.Status != StatusRequested {
			return ErrInvalidStatus
		}
		b.Status = StatusApproved
		b.BlocksCalendar = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info().
		Str("booking_id", updated.ID.String()).
		Str("reviewer_id", actor.UserID.String()).
		Msg("Booking approved")

	s.notify(ctx, Notification{
		Type:       events.BookingApproved,
		Booking:    updated,
		ActorID:    actor.UserID,
		PaymentURL: s.paymentURL(updated.ID),
	})
	return updated, nil
}

func (s *Service) decline(ctx context.Context, actor Actor, b *Booking, note string) (*Booking, error) {
	if b.Status != StatusRequested && b.Status != StatusApproved {
		return nil, ErrInvalidStatus
	}
	if b.Status == StatusApproved {
		if err := s.payments.CancelOpenIntents(ctx, b.ID); err != nil {
			return nil, err
		}
	}

	at := s.now().UTC()
	updated, err := s.mutate(ctx, b.ID, func(b *Booking) error {
		if !CanTransition(b.Status, StatusDeclined) {
			return ErrInvalidStatus
		}
		b.Status = StatusDeclined
		b.BlocksCalendar = false
		appendNote(b, note, actor.UserID, at)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, Notification{Type: events.BookingDeclined, Booking: updated, ActorID: actor.UserID, Note: note})
	return updated, nil
}

// requestInfo keeps the booking requested but frees the calendar until the
// guest resubmits
func (s *Service) requestInfo(ctx context.Context, actor Actor, b *Booking, note string) (*Booking, error) {
	if b.Status != StatusRequested {
		return nil, ErrInvalidStatus
	}

	at := s.now().UTC()
	updated, err := s.mutate(ctx, b.ID, func(b *Booking) error {
		if b.Status != StatusRequested {
			return ErrInvalidStatus
		}
		b.BlocksCalendar = false
		b.PricingSnapshot.Notes = append(b.PricingSnapshot.Notes, Note{Note: note, By: actor.UserID, At: at})
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, Notification{Type: events.BookingInfoRequested, Booking: updated, ActorID: actor.UserID, Note: note})
	return updated, nil
}

func appendNote(b *Booking, note string, by uuid.UUID, at time.Time) {
	if strings.TrimSpace(note) == "" {
		return
	}
	b.PricingSnapshot.Notes = append(b.PricingSnapshot.Notes, Note{Note: note, By: by, At: at})
}

// CheckAvailability reports whether the window is free on the property
func (s *Service) CheckAvailability(ctx context.Context, q AvailabilityQuery) (*AvailabilityResult, error) {
	if q.StartAt.IsZero() || !q.EndAt.After(q.StartAt) {
		return nil, ErrInvalidWindow
	}

	p, err := s.properties.GetByID(ctx, q.PropertyID)
	if err != nil {
		return nil, errorhandler.Storage(err)
	}
	if p == nil {
		return nil, ErrPropertyMissing
	}

	conflict, err := s.repo.FindConflict(ctx, q.PropertyID, Window{StartAt: q.StartAt, EndAt: q.EndAt}, q.ExcludeBookingID)
	if err != nil {
		return nil, errorhandler.Storage(err)
	}
	if conflict != nil {
		return &AvailabilityResult{Available: false, Conflict: conflict.Summary()}, nil
	}
	return &AvailabilityResult{Available: true}, nil
}

// StartCheckout prepares the balance intent, and the deposit hold when the
// quote requires one
func (s *Service) StartCheckout(ctx context.Context, actor Actor, id uuid.UUID) (*CheckoutResult, error) {
	b, caps, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !caps.Has(CanCheckout) {
		return nil, ErrForbidden
	}
	if b.Status != StatusApproved && b.Status != StatusAwaitingPayment {
		return nil, ErrInvalidStatus
	}
	if b.PricingSnapshot.Quote == nil {
		return nil, ErrNoQuote
	}

	result := &CheckoutResult{}
	result.Balance, err = s.payments.EnsureIntent(ctx, b.ID, payment.PurposeBalance, b.TotalCents)
	if err != nil {
		return nil, err
	}
	if deposit := b.PricingSnapshot.DepositCents(); deposit > 0 {
		result.Deposit, err = s.payments.EnsureIntent(ctx, b.ID, payment.PurposeDeposit, deposit)
		if err != nil {
			return nil, err
		}
	}

	if b.Status == StatusApproved {
		b, err = s.mutate(ctx, b.ID, func(b *Booking) error {
			if b.Status == StatusAwaitingPayment {
				return errUnchanged
			}
			if !CanTransition(b.Status, StatusAwaitingPayment) {
				return ErrInvalidStatus
			}
			b.Status = StatusAwaitingPayment
			b.BlocksCalendar = true
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	result.Booking = b
	return result, nil
}

// CapturePayment reconciles a processor intent update with its booking.
// It returns nil when the intent is unknown.
func (s *Service) CapturePayment(ctx context.Context, intent *payment.Intent) (*Booking, error) {
	rec, err := s.payments.ApplyIntentUpdate(ctx, intent)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}

	records, err := s.payments.ListByBooking(ctx, rec.BookingID)
	if err != nil {
		return nil, err
	}

	var prev Status
	updated, err := s.mutate(ctx, rec.BookingID, func(b *Booking) error {
		prev = b.Status
		next, ok := captureTarget(b, rec, records)
		if !ok {
			return errUnchanged
		}
		b.Status = next
		b.BlocksCalendar = next.IsBlocking()
		return nil
	})
	if err != nil {
		return nil, err
	}

	if updated.Status != prev {
		logger.FromContext(ctx).Info().
			Str("booking_id", updated.ID.String()).
			Str("intent_id", intent.ID).
			Str("from", string(prev)).
			Str("to", string(updated.Status)).
			Msg("Booking payment captured")

		if updated.Status == StatusConfirmed {
			s.notify(ctx, Notification{Type: events.BookingConfirmed, Booking: updated})
		}
	}
	return updated, nil
}

// captureTarget decides the status that follows a payment update, if any
func captureTarget(b *Booking, rec *payment.Record, records []*payment.Record) (Status, bool) {
	switch rec.Purpose {
	case payment.PurposeBalance:
		if rec.ExternalStatus != payment.IntentSucceeded {
			return "", false
		}
		var depositStatus *string
		if deposit := payment.SelectIntentByPurpose(records, payment.PurposeDeposit); deposit != nil {
			status := deposit.ExternalStatus
			depositStatus = &status
		}
		hasHold := b.PricingSnapshot.DepositCents() > 0
		next := Status(payment.ResolveCaptureBookingStatus(hasHold, depositStatus))
		if b.Status == next || !CanTransition(b.Status, next) {
			return "", false
		}
		return next, true

	case payment.PurposeDeposit:
		authorized := rec.ExternalStatus == payment.IntentRequiresCapture || rec.ExternalStatus == payment.IntentSucceeded
		if b.Status != StatusPaid || !authorized {
			return "", false
		}
		return StatusConfirmed, true
	}
	return "", false
}

// ReleaseDeposit returns the deposit hold to the guest
func (s *Service) ReleaseDeposit(ctx context.Context, actor Actor, id uuid.UUID) (*ReleaseResult, error) {
	b, caps, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !caps.Has(CanReleaseDeposit) {
		return nil, ErrForbidden
	}
	if !CanTransition(b.Status, StatusDepositReleased) {
		return nil, ErrInvalidStatus
	}

	action, err := s.payments.ReleaseDeposit(ctx, b.ID)
	if err != nil {
		return nil, err
	}

	if action.Released() {
		b, err = s.mutate(ctx, b.ID, func(b *Booking) error {
			if !CanTransition(b.Status, StatusDepositReleased) {
				return ErrInvalidStatus
			}
			b.Status = StatusDepositReleased
			b.BlocksCalendar = false
			return nil
		})
		if err != nil {
			return nil, err
		}
		s.notify(ctx, Notification{Type: events.BookingDepositRelease, Booking: b, ActorID: actor.UserID})
	}

	logger.FromContext(ctx).Info().
		Str("booking_id", b.ID.String()).
		Str("action", string(action)).
		Str("status", string(b.Status)).
		Msg("Deposit release handled")

	return &ReleaseResult{Booking: b, Action: action}, nil
}

// Cancel cancels a booking that has not reached a terminal status. Open
// payment intents are cancelled first.
func (s *Service) Cancel(ctx context.Context, actor Actor, id uuid.UUID, req *CancelRequest) (*Booking, error) {
	b, caps, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !caps.Has(CanCancel) {
		return nil, ErrForbidden
	}
	if !CanTransition(b.Status, StatusCancelled) {
		return nil, ErrInvalidStatus
	}

	if b.Status != StatusDraft {
		if err := s.payments.CancelOpenIntents(ctx, b.ID); err != nil {
			return nil, err
		}
	}

	var reason string
	if req != nil {
		reason = req.Reason
	}
	at := s.now().UTC()
	updated, err := s.mutate(ctx, id, func(b *Booking) error {
		if !CanTransition(b.Status, StatusCancelled) {
			return ErrInvalidStatus
		}
		b.Status = StatusCancelled
		b.BlocksCalendar = false
		appendNote(b, reason, actor.UserID, at)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info().
		Str("booking_id", updated.ID.String()).
		Str("actor_id", actor.UserID.String()).
		Msg("Booking cancelled")

	s.notify(ctx, Notification{Type: events.BookingCancelled, Booking: updated, ActorID: actor.UserID, Note: reason})
	return updated, nil
}

// CheckIn starts a confirmed booking
func (s *Service) CheckIn(ctx context.Context, actor Actor, id uuid.UUID) (*Booking, error) {
	b, caps, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !caps.Has(CanOperate) {
		return nil, ErrForbidden
	}

	next := StatusCheckedIn
	if b.Kind == pricing.KindEvent {
		next = StatusInProgress
	}
	return s.advance(ctx, id, next)
}

// Complete finishes a started booking
func (s *Service) Complete(ctx context.Context, actor Actor, id uuid.UUID) (*Booking, error) {
	_, caps, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !caps.Has(CanOperate) {
		return nil, ErrForbidden
	}
	return s.advance(ctx, id, StatusCompleted)
}

func (s *Service) advance(ctx context.Context, id uuid.UUID, next Status) (*Booking, error) {
	return s.mutate(ctx, id, func(b *Booking) error {
		if !CanTransition(b.Status, next) {
			return ErrInvalidStatus
		}
		b.Status = next
		b.BlocksCalendar = next.IsBlocking()
		return nil
	})
}

// Get returns a booking visible to actor
func (s *Service) Get(ctx context.Context, actor Actor, id uuid.UUID) (*Booking, error) {
	b, caps, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !caps.Has(CanView) {
		return nil, ErrForbidden
	}
	return b, nil
}

// ListMine returns the actor's own bookings
func (s *Service) ListMine(ctx context.Context, actor Actor, limit, offset int) ([]*Booking, int, error) {
	bookings, total, err := s.repo.ListByGuest(ctx, actor.UserID, limit, offset)
	if err != nil {
		return nil, 0, errorhandler.Storage(err)
	}
	return bookings, total, nil
}

func (s *Service) paymentURL(id uuid.UUID) string {
	return fmt.Sprintf("%s/bookings/%s/pay", strings.TrimRight(s.cfg.BaseURL, "/"), id)
}

// quoteRequestFor rebuilds the quote request a booking was created from
func quoteRequestFor(b *Booking) *pricing.QuoteRequest {
	req := &pricing.QuoteRequest{Kind: string(b.Kind), PropertyID: b.PropertyID}
	switch b.Kind {
	case pricing.KindStay:
		stay := &pricing.StayRequest{GuestCount: b.GuestCount}
		if b.CheckIn != nil && b.CheckOut != nil {
			stay.CheckIn = b.CheckIn.Format(pricing.DateLayout)
			stay.CheckOut = b.CheckOut.Format(pricing.DateLayout)
		}
		if b.StayDetails != nil {
			stay.Addons = b.StayDetails.Addons
		}
		req.Stay = stay
	case pricing.KindEvent:
		event := &pricing.EventRequest{StartAt: b.StartAt, EndAt: b.EndAt, GuestCount: b.GuestCount}
		if d := b.EventDetails; d != nil {
			event.EventType = d.EventType
			event.Vehicles = d.Vehicles
			event.Alcohol = d.Alcohol
			event.AmplifiedSound = d.AmplifiedSound
			event.Addons = d.Addons
		}
		req.Event = event
	}
	return req
}

// sameQuote compares the amounts and routing inputs of two quotes
func sameQuote(a, b pricing.Quote) bool {
	if a.TotalCents != b.TotalCents || a.DepositCents != b.DepositCents || a.Mode != b.Mode {
		return false
	}
	af, bf := pricing.NormalizeFlags(a.RiskFlags), pricing.NormalizeFlags(b.RiskFlags)
	if len(af) != len(bf) {
		return false
	}
	for i := range af {
		if af[i] != bf[i] {
			return false
		}
	}
	return true
}

func flagStrings(flags []pricing.RiskFlag) []string {
	out := make([]string, len(flags))
	for i, f := range flags {
		out[i] = string(f)
	}
	return out
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
