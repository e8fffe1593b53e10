package payment

import "github.com/stayhost/stayhost-api/internal/pkg/errorhandler"

var (
	ErrNoDepositHold  = errorhandler.Validation("NO_DEPOSIT_HOLD", "booking has no deposit hold")
	ErrInvalidAmount  = errorhandler.Validation("INVALID_AMOUNT", "payment amount must be positive")
	ErrIntentNotFound = errorhandler.NotFound("INTENT_NOT_FOUND", "payment intent not found")
)

func gatewayError(err error) error {
	return errorhandler.Upstream("PAYMENT_GATEWAY_ERROR", "Payment processor request failed", err)
}
