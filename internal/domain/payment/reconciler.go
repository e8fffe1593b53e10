package payment

import "strings"

// SelectIntentByPurpose returns the first record tagged with purpose, or nil
func SelectIntentByPurpose(records []*Record, purpose Purpose) *Record {
	for _, r := range records {
		if r != nil && r.Purpose == purpose {
			return r
		}
	}
	return nil
}

// ShouldCreateReplacementIntent reports whether existing cannot be reused to
// charge amountCents in currency
func ShouldCreateReplacementIntent(existing *Intent, amountCents int64, currency string) bool {
	if existing == nil {
		return true
	}
	if existing.Status == IntentCanceled {
		return true
	}
	if existing.AmountCents != amountCents {
		return true
	}
	return !strings.EqualFold(existing.Currency, currency)
}

// MapIntentStatusToPaymentStatus maps a processor status to an internal one
func MapIntentStatusToPaymentStatus(status string) Status {
	switch status {
	case IntentSucceeded:
		return StatusSucceeded
	case IntentRequiresAction, IntentRequiresConfirmation:
		return StatusRequiresAction
	case IntentCanceled:
		return StatusCancelled
	case IntentFailed:
		return StatusFailed
	default:
		return StatusPending
	}
}

// CaptureOutcome is the booking status that follows a balance capture
type CaptureOutcome string

const (
	CaptureConfirmed CaptureOutcome = "confirmed"
	CapturePaid      CaptureOutcome = "paid"
)

// ResolveCaptureBookingStatus decides the booking status once the balance is
// captured. A booking with a deposit hold is confirmed only when the hold is
// authorized or captured.
func ResolveCaptureBookingStatus(hasDepositHold bool, depositStatus *string) CaptureOutcome {
	if !hasDepositHold {
		return CaptureConfirmed
	}
	if depositStatus != nil {
		switch *depositStatus {
		case IntentRequiresCapture, IntentSucceeded:
			return CaptureConfirmed
		}
	}
	return CapturePaid
}

// ReleaseAction is what releasing a deposit hold does at the processor
type ReleaseAction string

const (
	// ReleaseVoid cancels an authorized, uncaptured hold
	ReleaseVoid ReleaseAction = "void"
	// ReleaseRefund refunds a captured hold
	ReleaseRefund ReleaseAction = "refund"
	// ReleaseCancelHold cancels a hold the guest never authorized
	ReleaseCancelHold ReleaseAction = "cancel_hold"
	// ReleaseNone means there is nothing left to release
	ReleaseNone ReleaseAction = "none"
)

// Released reports whether the action returned held funds to the guest
func (a ReleaseAction) Released() bool {
	return a == ReleaseVoid || a == ReleaseRefund
}

// ResolveReleaseAction picks the release action for a deposit intent status
func ResolveReleaseAction(status string) ReleaseAction {
	switch status {
	case IntentRequiresCapture:
		return ReleaseVoid
	case IntentSucceeded:
		return ReleaseRefund
	case IntentCanceled, IntentFailed:
		return ReleaseNone
	default:
		return ReleaseCancelHold
	}
}
