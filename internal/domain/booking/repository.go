package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/stayhost/stayhost-api/internal/pkg/database"
)

// errUnchanged aborts a mutation without writing and without failing
var errUnchanged = errors.New("booking unchanged")

// Repository defines booking data access
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	ListByGuest(ctx context.Context, guestID uuid.UUID, limit, offset int) ([]*Booking, int, error)
	// Mutate locks the booking row, applies fn and persists the result in one
	// read-committed transaction. fn returning errUnchanged skips the write.
	Mutate(ctx context.Context, id uuid.UUID, fn func(b *Booking) error) (*Booking, error)
	// FindConflict returns the first calendar-holding booking on the property
	// overlapping w, ignoring excludeID.
	FindConflict(ctx context.Context, propertyID uuid.UUID, w Window, excludeID *uuid.UUID) (*Booking, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates booking repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const bookingColumns = `
	id, kind, status, mode, guest_id, property_id,
	start_at, end_at, check_in, check_out, guest_count,
	pricing_snapshot, total_cents, risk_flags, blocks_calendar,
	event_details, stay_details, created_at, updated_at
`

func (r *repository) Create(ctx context.Context, b *Booking) error {
	query := `
		INSERT INTO bookings (
			id, kind, status, mode, guest_id, property_id,
			start_at, end_at, check_in, check_out, guest_count,
			pricing_snapshot, total_cents, risk_flags, blocks_calendar,
			event_details, stay_details, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11,
			$12, $13, $14, $15,
			$16, $17, $18, $19
		)
	`
	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.Kind, b.Status, b.Mode, b.GuestID, b.PropertyID,
		b.StartAt, b.EndAt, b.CheckIn, b.CheckOut, b.GuestCount,
		b.PricingSnapshot, b.TotalCents, b.RiskFlags, b.BlocksCalendar,
		b.EventDetails, b.StayDetails, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return mapWriteError(err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var b Booking
	if err := r.db.GetContext(ctx, &b, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *repository) ListByGuest(ctx context.Context, guestID uuid.UUID, limit, offset int) ([]*Booking, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM bookings WHERE guest_id = $1`, guestID); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + bookingColumns + ` FROM bookings
		WHERE guest_id = $1
		ORDER BY start_at DESC
		LIMIT $2 OFFSET $3
	`
	var bookings []*Booking
	if err := r.db.SelectContext(ctx, &bookings, query, guestID, limit, offset); err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

func (r *repository) Mutate(ctx context.Context, id uuid.UUID, fn func(b *Booking) error) (*Booking, error) {
	tx, err := database.BeginReadCommitted(ctx, r.db)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var b Booking
	err = tx.GetContext(ctx, &b, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if err := fn(&b); err != nil {
		if errors.Is(err, errUnchanged) {
			return &b, nil
		}
		return nil, err
	}

	err = tx.QueryRowxContext(ctx, `
		UPDATE bookings SET
			status = $2,
			mode = $3,
			pricing_snapshot = $4,
			total_cents = $5,
			risk_flags = $6,
			blocks_calendar = $7,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`, b.ID, b.Status, b.Mode, b.PricingSnapshot, b.TotalCents, b.RiskFlags, b.BlocksCalendar).Scan(&b.UpdatedAt)
	if err != nil {
		return nil, mapWriteError(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) FindConflict(ctx context.Context, propertyID uuid.UUID, w Window, excludeID *uuid.UUID) (*Booking, error) {
	exclude := uuid.NullUUID{}
	if excludeID != nil {
		exclude = uuid.NullUUID{UUID: *excludeID, Valid: true}
	}

	var checkIn, checkOut interface{}
	if w.HasDates() {
		checkIn, checkOut = *w.CheckIn, *w.CheckOut
	}

	statuses := make([]string, len(BlockingStatuses))
	for i, s := range BlockingStatuses {
		statuses[i] = string(s)
	}

	// The query over-selects: instant overlap or date overlap. Which of those
	// counts is decided by Window.Conflicts.
	query := `
		SELECT ` + bookingColumns + ` FROM bookings
		WHERE property_id = $1
			AND status::text = ANY($2)
			AND blocks_calendar = TRUE
			AND ($3::uuid IS NULL OR id <> $3)
			AND (
				(start_at < $7 AND end_at > $6)
				OR ($4::date IS NOT NULL AND check_in IS NOT NULL
					AND check_in < $5::date AND check_out > $4::date)
			)
		ORDER BY start_at ASC
	`

	var candidates []*Booking
	err := r.db.SelectContext(ctx, &candidates, query,
		propertyID, pq.Array(statuses), exclude, checkIn, checkOut, w.StartAt, w.EndAt,
	)
	if err != nil {
		return nil, err
	}
	return firstConflict(w, candidates), nil
}

// mapWriteError classifies constraint violations raised by booking writes
func mapWriteError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch pqErr.Code {
	case "23P01":
		// bookings_no_overlap exclusion constraint
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	case "23503":
		if strings.Contains(strings.ToLower(pqErr.Constraint), "property") {
			return fmt.Errorf("%w: %w", ErrPropertyMissing, err)
		}
		return err
	case "23514":
		return fmt.Errorf("%w: %w", ErrInvalidWindow, err)
	default:
		return err
	}
}
