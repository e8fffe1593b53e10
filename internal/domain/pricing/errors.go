package pricing

import "github.com/stayhost/stayhost-api/internal/pkg/errorhandler"

var (
	ErrInvalidWindow       = errorhandler.Validation("INVALID_WINDOW", "end must be after start")
	ErrInvalidDates        = errorhandler.Validation("INVALID_DATES", "check-out must be at least one night after check-in")
	ErrNegativeAmount      = errorhandler.Validation("NEGATIVE_AMOUNT", "monetary values must be non-negative integer cents")
	ErrInvalidGuestCount   = errorhandler.Validation("INVALID_GUEST_COUNT", "guest count must be at least 1")
	ErrInvalidVehicles     = errorhandler.Validation("INVALID_VEHICLES", "vehicle count must be non-negative")
	ErrInvalidMinHours     = errorhandler.Validation("INVALID_MIN_HOURS", "minimum and day-rate hours must be non-negative")
	ErrInvalidCurfew       = errorhandler.Validation("INVALID_CURFEW", "curfew must be formatted as HH:MM")
	ErrUnknownAddon        = errorhandler.Validation("UNKNOWN_ADDON", "add-on is not offered by this property")
	ErrUnknownRiskFlag     = errorhandler.Validation("UNKNOWN_RISK_FLAG", "quote contains an unknown risk flag")
	ErrUnsupportedCurrency = errorhandler.Validation("UNSUPPORTED_CURRENCY", "only usd quotes are supported")
	ErrQuoteRequired       = errorhandler.Validation("QUOTE_REQUIRED", "a quote is required")
	ErrQuoteInvalid        = errorhandler.Validation("QUOTE_INVALID", "quote mode is invalid")
	ErrQuoteTotalMismatch  = errorhandler.Validation("QUOTE_TOTAL_MISMATCH", "quote total must equal subtotal plus fees plus add-ons")
	ErrPricingUnavailable  = errorhandler.Validation("PRICING_UNAVAILABLE", "property is not priced for this booking kind")
	ErrTooManyGuests       = errorhandler.Validation("TOO_MANY_GUESTS", "guest count exceeds the property limit")
	ErrDetailsRequired     = errorhandler.Validation("DETAILS_REQUIRED", "stay or event details must match the booking kind")
	ErrPropertyNotFound    = errorhandler.NotFound("PROPERTY_NOT_FOUND", "property not found")
)
