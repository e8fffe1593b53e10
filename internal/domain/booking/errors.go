package booking

import "github.com/stayhost/stayhost-api/internal/pkg/errorhandler"

var (
	ErrBookingNotFound      = errorhandler.NotFound("BOOKING_NOT_FOUND", "booking not found")
	ErrForbidden            = errorhandler.Permission("BOOKING_FORBIDDEN", "you do not have access to this booking")
	ErrGuestOnly            = errorhandler.Permission("GUEST_ONLY", "only guests can create bookings")
	ErrInvalidStatus        = errorhandler.Conflict("INVALID_STATUS", "booking status does not allow this action")
	ErrUnavailable          = errorhandler.Conflict("BOOKING_CONFLICT", "property is already booked for this time")
	ErrSubmissionInProgress = errorhandler.Conflict("SUBMISSION_IN_PROGRESS", "another submission for this property is in progress")
	ErrKindMismatch         = errorhandler.Validation("KIND_MISMATCH", "kind does not match the booking")
	ErrEventOnly            = errorhandler.Validation("EVENT_ONLY", "only event bookings can be approved")
	ErrInvalidWindow        = errorhandler.Validation("INVALID_WINDOW", "end must be after start")
	ErrDetailsRequired      = errorhandler.Validation("DETAILS_REQUIRED", "event bookings require event details")
	ErrInvalidAction        = errorhandler.Validation("INVALID_ACTION", "action must be approve, decline or request_info")
	ErrQuoteMismatch        = errorhandler.Validation("QUOTE_MISMATCH", "quote is out of date, request a new quote")
	ErrNoQuote              = errorhandler.Validation("NO_QUOTE", "booking has no committed quote")
	ErrPropertyMissing      = errorhandler.NotFound("PROPERTY_NOT_FOUND", "property not found")
)
