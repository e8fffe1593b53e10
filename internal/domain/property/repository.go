package property

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines property data access
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Property, error)
	IsManager(ctx context.Context, propertyID, userID uuid.UUID) (bool, error)
	ListManagerIDs(ctx context.Context, propertyID uuid.UUID) ([]uuid.UUID, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates property repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const propertyColumns = `
	id, host_id, title, timezone,
	nightly_rate_cents, cleaning_fee_cents,
	hourly_rate_cents, min_hours, day_rate_cents, day_rate_hours,
	event_cleaning_fee_cents, deposit_cents, allow_instant_book,
	curfew, parking_spaces, max_guests, addons,
	created_at, updated_at
`

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`

	var p Property
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// IsManager reports whether userID hosts or co-manages the property
func (r *repository) IsManager(ctx context.Context, propertyID, userID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM properties WHERE id = $1 AND host_id = $2
			UNION ALL
			SELECT 1 FROM property_managers WHERE property_id = $1 AND user_id = $2
		)
	`

	var ok bool
	if err := r.db.GetContext(ctx, &ok, query, propertyID, userID); err != nil {
		return false, err
	}
	return ok, nil
}

// ListManagerIDs returns the host followed by any co-managers
func (r *repository) ListManagerIDs(ctx context.Context, propertyID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT host_id AS user_id FROM properties WHERE id = $1
		UNION
		SELECT user_id FROM property_managers WHERE property_id = $1
	`

	var ids []uuid.UUID
	if err := r.db.SelectContext(ctx, &ids, query, propertyID); err != nil {
		return nil, err
	}
	return ids, nil
}
