package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stayhost/stayhost-api/internal/domain/booking"
	"github.com/stayhost/stayhost-api/internal/domain/pricing"
	"github.com/stayhost/stayhost-api/internal/domain/property"
	"github.com/stayhost/stayhost-api/internal/domain/user"
	"github.com/stayhost/stayhost-api/internal/pkg/email"
	"github.com/stayhost/stayhost-api/internal/pkg/events"
)

// PropertyDirectory resolves property titles and managers
type PropertyDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*property.Property, error)
	ListManagerIDs(ctx context.Context, propertyID uuid.UUID) ([]uuid.UUID, error)
}

// UserDirectory resolves recipients
type UserDirectory interface {
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*user.User, error)
}

// Mailer queues templated emails
type Mailer interface {
	Queue(to, toName, templateName string, data email.BookingData)
}

// EventPublisher publishes domain events
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// BookingEvent is the payload published for every booking notification
type BookingEvent struct {
	BookingID  uuid.UUID `json:"bookingId"`
	PropertyID uuid.UUID `json:"propertyId"`
	GuestID    uuid.UUID `json:"guestId"`
	ActorID    uuid.UUID `json:"actorId,omitempty"`
	Kind       string    `json:"kind"`
	Status     string    `json:"status"`
	Mode       string    `json:"mode"`
	TotalCents int64     `json:"totalCents"`
	RiskFlags  []string  `json:"riskFlags"`
	Note       string    `json:"note,omitempty"`
	PaymentURL string    `json:"paymentUrl,omitempty"`
}

type audience int

const (
	toGuest audience = 1 << iota
	toManagers
)

type route struct {
	kind     Type
	template string
	title    string
	audience audience
}

var routes = map[string]route{
	events.BookingSubmitted:      {TypeBookingSubmitted, email.TemplateBookingSubmitted, "New booking for %s", toManagers},
	events.BookingApproved:       {TypeBookingApproved, email.TemplateBookingApproved, "Booking at %s approved", toGuest},
	events.BookingDeclined:       {TypeBookingDeclined, email.TemplateBookingDeclined, "Booking at %s declined", toGuest},
	events.BookingInfoRequested:  {TypeBookingInfoRequested, email.TemplateBookingInfoRequested, "The host of %s has a question", toGuest},
	events.BookingConfirmed:      {TypeBookingConfirmed, email.TemplateBookingConfirmed, "Booking at %s confirmed", toGuest | toManagers},
	events.BookingCancelled:      {TypeBookingCancelled, email.TemplateBookingCancelled, "Booking at %s cancelled", toGuest | toManagers},
	events.BookingDepositRelease: {TypeBookingDepositReleased, email.TemplateBookingDepositReleased, "Deposit for %s released", toGuest},
}

// BookingNotifier fans booking lifecycle changes out to in-app notifications,
// email and the event bus
type BookingNotifier struct {
	notifications *Service
	properties    PropertyDirectory
	users         UserDirectory
	mailer        Mailer
	publisher     EventPublisher
	baseURL       string
}

// NewBookingNotifier creates a booking notifier. mailer and publisher may be nil.
func NewBookingNotifier(notifications *Service, properties PropertyDirectory, users UserDirectory, mailer Mailer, publisher EventPublisher, baseURL string) *BookingNotifier {
	return &BookingNotifier{
		notifications: notifications,
		properties:    properties,
		users:         users,
		mailer:        mailer,
		publisher:     publisher,
		baseURL:       strings.TrimRight(baseURL, "/"),
	}
}

// Notify delivers n to every recipient except the actor. Delivery continues
// past individual failures, which are returned joined.
func (bn *BookingNotifier) Notify(ctx context.Context, n booking.Notification) error {
	rt, ok := routes[n.Type]
	if !ok {
		return fmt.Errorf("unknown booking notification %q", n.Type)
	}
	b := n.Booking

	var errs []error

	p, err := bn.properties.GetByID(ctx, b.PropertyID)
	if err != nil {
		errs = append(errs, fmt.Errorf("load property: %w", err))
	}

	recipients, err := bn.recipients(ctx, rt.audience, b, n.ActorID)
	if err != nil {
		errs = append(errs, err)
	}

	title := "your booking"
	loc := time.UTC
	if p != nil {
		title = p.Title
		loc = p.Location()
	}

	data := &NotificationData{BookingID: &b.ID, PropertyID: &b.PropertyID, Status: string(b.Status), PaymentURL: n.PaymentURL}
	mail := email.BookingData{
		PropertyTitle: title,
		Window:        FormatWindow(b, loc),
		Total:         FormatCents(b.TotalCents),
		Note:          n.Note,
		ActionURL:     bn.actionURL(n),
	}

	for _, u := range recipients {
		if _, err := bn.notifications.Create(ctx, u.ID, rt.kind, fmt.Sprintf(rt.title, title), n.Note, data); err != nil {
			errs = append(errs, fmt.Errorf("notify %s: %w", u.ID, err))
		}
		if bn.mailer != nil && u.Email != "" {
			m := mail
			m.RecipientName = u.DisplayName()
			bn.mailer.Queue(u.Email, u.DisplayName(), rt.template, m)
		}
	}

	if bn.publisher != nil {
		if err := bn.publisher.Publish(ctx, n.Type, eventFor(n)); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (bn *BookingNotifier) recipients(ctx context.Context, aud audience, b *booking.Booking, actorID uuid.UUID) ([]*user.User, error) {
	var ids []uuid.UUID
	if aud&toGuest != 0 {
		ids = append(ids, b.GuestID)
	}
	if aud&toManagers != 0 {
		managers, err := bn.properties.ListManagerIDs(ctx, b.PropertyID)
		if err != nil {
			return nil, fmt.Errorf("list managers: %w", err)
		}
		ids = append(ids, managers...)
	}

	seen := make(map[uuid.UUID]struct{}, len(ids))
	unique := ids[:0]
	for _, id := range ids {
		if _, dup := seen[id]; dup || id == actorID || id == uuid.Nil {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return nil, nil
	}

	users, err := bn.users.ListByIDs(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("load recipients: %w", err)
	}
	return users, nil
}

func (bn *BookingNotifier) actionURL(n booking.Notification) string {
	if n.PaymentURL != "" {
		return n.PaymentURL
	}
	return fmt.Sprintf("%s/bookings/%s", bn.baseURL, n.Booking.ID)
}

func eventFor(n booking.Notification) BookingEvent {
	b := n.Booking
	flags := []string(b.RiskFlags)
	if flags == nil {
		flags = []string{}
	}
	return BookingEvent{
		BookingID:  b.ID,
		PropertyID: b.PropertyID,
		GuestID:    b.GuestID,
		ActorID:    n.ActorID,
		Kind:       string(b.Kind),
		Status:     string(b.Status),
		Mode:       string(b.Mode),
		TotalCents: b.TotalCents,
		RiskFlags:  flags,
		Note:       n.Note,
		PaymentURL: n.PaymentURL,
	}
}

// FormatWindow renders the booking dates for people. Stays show their
// calendar dates, events their local times.
func FormatWindow(b *booking.Booking, loc *time.Location) string {
	if b.Kind == pricing.KindStay && b.CheckIn != nil && b.CheckOut != nil {
		return b.CheckIn.Format("Jan 2") + " - " + b.CheckOut.Format("Jan 2, 2006")
	}
	start, end := b.StartAt.In(loc), b.EndAt.In(loc)
	if start.YearDay() == end.YearDay() && start.Year() == end.Year() {
		return start.Format("Jan 2, 2006 3:04 PM") + " - " + end.Format("3:04 PM MST")
	}
	return start.Format("Jan 2, 2006 3:04 PM") + " - " + end.Format("Jan 2, 2006 3:04 PM MST")
}

// FormatCents renders an amount in dollars
func FormatCents(cents int64) string {
	if cents <= 0 {
		return ""
	}
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
