package notification

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines notification data access
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*Notification, error)
	// List returns one page of the user's notifications, newest first, and
	// the number matching the filter
	List(ctx context.Context, userID uuid.UUID, f ListFilter) ([]*Notification, int, error)
	CountUnreadByUser(ctx context.Context, userID uuid.UUID) (int, error)
	MarkAsRead(ctx context.Context, id, userID uuid.UUID) (bool, error)
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time, readOnly bool) (int64, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates notification repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const notificationColumns = `id, user_id, type, title, body, data, is_read, read_at, created_at`

func (r *repository) Create(ctx context.Context, n *Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, type, title, body, data, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		n.ID,
		n.UserID,
		n.Type,
		n.Title,
		n.Body,
		[]byte(n.Data),
		n.IsRead,
		n.CreatedAt,
	)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE id = $1`
	var n Notification
	err := r.db.GetContext(ctx, &n, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &n, nil
}

func (r *repository) List(ctx context.Context, userID uuid.UUID, f ListFilter) ([]*Notification, int, error) {
	// $2 and $3 are optional filters; the booking id lives in the data payload
	where := `
		WHERE user_id = $1
			AND (NOT $2::boolean OR NOT is_read)
			AND ($3::text IS NULL OR data->>'bookingId' = $3)
	`
	var booking sql.NullString
	if f.BookingID != nil {
		booking = sql.NullString{String: f.BookingID.String(), Valid: true}
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM notifications`+where, userID, f.UnreadOnly, booking); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + notificationColumns + ` FROM notifications` + where + `
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5
	`
	var notifications []*Notification
	if err := r.db.SelectContext(ctx, &notifications, query, userID, f.UnreadOnly, booking, f.Limit, f.Offset); err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

func (r *repository) CountUnreadByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND NOT is_read`
	var count int
	err := r.db.GetContext(ctx, &count, query, userID)
	return count, err
}

// MarkAsRead reports false when no notification with id belongs to userID
func (r *repository) MarkAsRead(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	query := `UPDATE notifications SET is_read = true, read_at = COALESCE(read_at, NOW()) WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *repository) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	query := `UPDATE notifications SET is_read = true, read_at = NOW() WHERE user_id = $1 AND NOT is_read`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}

// DeleteOlderThan removes notifications created before cutoff
func (r *repository) DeleteOlderThan(ctx context.Context, cutoff time.Time, readOnly bool) (int64, error) {
	query := `DELETE FROM notifications WHERE created_at < $1 AND (NOT $2::boolean OR is_read)`
	result, err := r.db.ExecContext(ctx, query, cutoff, readOnly)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
