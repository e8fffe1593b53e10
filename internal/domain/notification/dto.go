package notification

import (
	"time"

	"github.com/google/uuid"
)

// NotificationResponse is the inbox view of a notification with its booking
// reference flattened out
type NotificationResponse struct {
	ID            uuid.UUID  `json:"id"`
	Type          Type       `json:"type"`
	Title         string     `json:"title"`
	Body          string     `json:"body,omitempty"`
	BookingID     *uuid.UUID `json:"bookingId,omitempty"`
	PropertyID    *uuid.UUID `json:"propertyId,omitempty"`
	BookingStatus string     `json:"bookingStatus,omitempty"`
	PaymentURL    string     `json:"paymentUrl,omitempty"`
	Link          string     `json:"link,omitempty"`
	IsRead        bool       `json:"isRead"`
	ReadAt        *time.Time `json:"readAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// NewNotificationResponse builds the inbox view of n. Link points at the
// payment page when one is pending, otherwise at the booking.
func NewNotificationResponse(n *Notification) *NotificationResponse {
	resp := &NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Body:      n.Body.String,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
	if n.ReadAt.Valid {
		readAt := n.ReadAt.Time
		resp.ReadAt = &readAt
	}

	data := n.GetData()
	resp.BookingID = data.BookingID
	resp.PropertyID = data.PropertyID
	resp.BookingStatus = data.Status
	resp.PaymentURL = data.PaymentURL

	switch {
	case data.PaymentURL != "":
		resp.Link = data.PaymentURL
	case data.BookingID != nil:
		resp.Link = "/bookings/" + data.BookingID.String()
	}
	return resp
}

// UnreadCountResponse for unread count endpoint
type UnreadCountResponse struct {
	UnreadCount int `json:"unreadCount"`
}
