package notification

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Type represents notification type
type Type string

const (
	TypeBookingSubmitted       Type = "booking_submitted"        // Managers: new booking to review or prepare for
	TypeBookingApproved        Type = "booking_approved"         // Guest: pay to confirm
	TypeBookingDeclined        Type = "booking_declined"         // Guest
	TypeBookingInfoRequested   Type = "booking_info_requested"   // Guest: host asked a question
	TypeBookingConfirmed       Type = "booking_confirmed"        // Both
	TypeBookingCancelled       Type = "booking_cancelled"        // The other party
	TypeBookingDepositReleased Type = "booking_deposit_released" // Guest
)

// Notification represents a user notification
type Notification struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	UserID    uuid.UUID       `db:"user_id" json:"userId"`
	Type      Type            `db:"type" json:"type"`
	Title     string          `db:"title" json:"title"`
	Body      sql.NullString  `db:"body" json:"body,omitempty"`
	Data      json.RawMessage `db:"data" json:"data,omitempty"`
	IsRead    bool            `db:"is_read" json:"isRead"`
	ReadAt    sql.NullTime    `db:"read_at" json:"readAt,omitempty"`
	CreatedAt time.Time       `db:"created_at" json:"createdAt"`
}

// NotificationData links a notification to its booking
type NotificationData struct {
	BookingID  *uuid.UUID `json:"bookingId,omitempty"`
	PropertyID *uuid.UUID `json:"propertyId,omitempty"`
	Status     string     `json:"status,omitempty"`
	PaymentURL string     `json:"paymentUrl,omitempty"`
}

// SetData encodes data to JSON
func (n *Notification) SetData(data *NotificationData) {
	if data != nil {
		n.Data, _ = json.Marshal(data)
	}
}

// GetData decodes data from JSON
func (n *Notification) GetData() *NotificationData {
	if n.Data == nil {
		return &NotificationData{}
	}
	var data NotificationData
	_ = json.Unmarshal(n.Data, &data)
	return &data
}
