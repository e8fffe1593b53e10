package payment

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines booking payment data access
type Repository interface {
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*Record, error)
	GetByIntentID(ctx context.Context, intentID string) (*Record, error)
	Upsert(ctx context.Context, rec *Record) error
	UpdateStatus(ctx context.Context, id uuid.UUID, externalStatus string, status Status) error
	MarkReleased(ctx context.Context, id uuid.UUID, externalStatus string, status Status) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates payment repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const recordColumns = `
	id, booking_id, purpose, intent_id, external_status, status,
	amount_cents, currency, released_at, created_at, updated_at
`

func (r *repository) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*Record, error) {
	query := `
		SELECT ` + recordColumns + ` FROM booking_payments
		WHERE booking_id = $1
		ORDER BY created_at ASC
	`
	var records []*Record
	if err := r.db.SelectContext(ctx, &records, query, bookingID); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repository) GetByIntentID(ctx context.Context, intentID string) (*Record, error) {
	query := `SELECT ` + recordColumns + ` FROM booking_payments WHERE intent_id = $1`

	var rec Record
	if err := r.db.GetContext(ctx, &rec, query, intentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// Upsert stores rec as the single record for its booking and purpose.
// A replacement intent overwrites the previous one.
func (r *repository) Upsert(ctx context.Context, rec *Record) error {
	query := `
		INSERT INTO booking_payments (
			id, booking_id, purpose, intent_id, external_status, status,
			amount_cents, currency, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		ON CONFLICT (booking_id, purpose) DO UPDATE SET
			intent_id = EXCLUDED.intent_id,
			external_status = EXCLUDED.external_status,
			status = EXCLUDED.status,
			amount_cents = EXCLUDED.amount_cents,
			currency = EXCLUDED.currency,
			released_at = NULL,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowxContext(ctx, query,
		rec.ID, rec.BookingID, rec.Purpose, rec.IntentID, rec.ExternalStatus, rec.Status,
		rec.AmountCents, rec.Currency,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, externalStatus string, status Status) error {
	query := `UPDATE booking_payments SET external_status = $2, status = $3, updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, externalStatus, status)
	return err
}

func (r *repository) MarkReleased(ctx context.Context, id uuid.UUID, externalStatus string, status Status) error {
	query := `
		UPDATE booking_payments
		SET external_status = $2, status = $3, released_at = NOW(), updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, id, externalStatus, status)
	return err
}
