package notification

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/stayhost/stayhost-api/internal/pkg/errorhandler"
)

var ErrNotificationNotFound = errorhandler.NotFound("NOTIFICATION_NOT_FOUND", "notification not found")

// Service handles notification logic
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates notification service
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Create creates a notification
func (s *Service) Create(ctx context.Context, userID uuid.UUID, notifType Type, title, body string, data *NotificationData) (*Notification, error) {
	n := &Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      notifType,
		Title:     title,
		IsRead:    false,
		CreatedAt: s.now().UTC(),
	}

	if body != "" {
		n.Body = sql.NullString{String: body, Valid: true}
	}
	n.SetData(data)

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, errorhandler.Storage(err)
	}

	return n, nil
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListFilter narrows a notification listing
type ListFilter struct {
	UnreadOnly bool
	BookingID  *uuid.UUID
	Limit      int
	Offset     int
}

func (f ListFilter) normalized() ListFilter {
	if f.Limit <= 0 || f.Limit > maxPageSize {
		f.Limit = defaultPageSize
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

// Page is one slice of a listing
type Page struct {
	Items  []*Notification
	Total  int
	Limit  int
	Offset int
}

// List returns a page of the user's notifications matching f
func (s *Service) List(ctx context.Context, userID uuid.UUID, f ListFilter) (*Page, error) {
	f = f.normalized()
	notifications, total, err := s.repo.List(ctx, userID, f)
	if err != nil {
		return nil, errorhandler.Storage(err)
	}
	return &Page{Items: notifications, Total: total, Limit: f.Limit, Offset: f.Offset}, nil
}

// GetUnreadCount returns unread count
func (s *Service) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	count, err := s.repo.CountUnreadByUser(ctx, userID)
	if err != nil {
		return 0, errorhandler.Storage(err)
	}
	return count, nil
}

// MarkAsRead marks one of the user's notifications as read. Notifications of
// other users are reported as not found.
func (s *Service) MarkAsRead(ctx context.Context, userID, id uuid.UUID) error {
	ok, err := s.repo.MarkAsRead(ctx, id, userID)
	if err != nil {
		return errorhandler.Storage(err)
	}
	if !ok {
		return ErrNotificationNotFound
	}
	return nil
}

// MarkAllAsRead marks all notifications as read
func (s *Service) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.MarkAllAsRead(ctx, userID); err != nil {
		return errorhandler.Storage(err)
	}
	return nil
}
