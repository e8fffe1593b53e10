package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/stayhost/stayhost-api/internal/pkg/errorhandler"
	"github.com/stayhost/stayhost-api/internal/pkg/logger"
)

// Service keeps booking payment records in step with the processor
type Service struct {
	repo     Repository
	gateway  Gateway
	currency string
}

// NewService creates payment service
func NewService(repo Repository, gateway Gateway, currency string) *Service {
	return &Service{repo: repo, gateway: gateway, currency: currency}
}

// Currency returns the settlement currency
func (s *Service) Currency() string {
	return s.currency
}

// ListByBooking returns every payment record of a booking
func (s *Service) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*Record, error) {
	records, err := s.repo.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, errorhandler.Storage(err)
	}
	return records, nil
}

// EnsureIntent returns an intent able to charge amountCents for purpose,
// reusing the stored one when possible and replacing it otherwise.
func (s *Service) EnsureIntent(ctx context.Context, bookingID uuid.UUID, purpose Purpose, amountCents int64) (*Intent, error) {
	if amountCents <= 0 {
		return nil, ErrInvalidAmount
	}

	records, err := s.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	var current *Intent
	existing := SelectIntentByPurpose(records, purpose)
	if existing != nil {
		current, err = s.gateway.GetIntent(ctx, existing.IntentID)
		if err != nil {
			return nil, gatewayError(err)
		}
	}

	if !ShouldCreateReplacementIntent(current, amountCents, s.currency) {
		if current.Status != existing.ExternalStatus {
			if err := s.repo.UpdateStatus(ctx, existing.ID, current.Status, MapIntentStatusToPaymentStatus(current.Status)); err != nil {
				return nil, errorhandler.Storage(err)
			}
		}
		return current, nil
	}

	replaced := "new"
	if current != nil {
		replaced = current.ID
		if current.Status != IntentCanceled && current.Status != IntentSucceeded {
			if _, err := s.gateway.CancelIntent(ctx, current.ID); err != nil {
				return nil, gatewayError(err)
			}
		}
	}

	intent, err := s.gateway.CreateIntent(ctx, CreateIntentParams{
		BookingID:      bookingID,
		Purpose:        purpose,
		AmountCents:    amountCents,
		Currency:       s.currency,
		ManualCapture:  purpose == PurposeDeposit,
		IdempotencyKey: fmt.Sprintf("%s:%s:%d:%s", bookingID, purpose, amountCents, replaced),
	})
	if err != nil {
		return nil, gatewayError(err)
	}

	rec := &Record{
		ID:             uuid.New(),
		BookingID:      bookingID,
		Purpose:        purpose,
		IntentID:       intent.ID,
		ExternalStatus: intent.Status,
		Status:         MapIntentStatusToPaymentStatus(intent.Status),
		AmountCents:    amountCents,
		Currency:       s.currency,
	}
	if err := s.repo.Upsert(ctx, rec); err != nil {
		return nil, errorhandler.Storage(err)
	}

	logger.FromContext(ctx).Info().
		Str("booking_id", bookingID.String()).
		Str("purpose", string(purpose)).
		Str("intent_id", intent.ID).
		Str("replaced", replaced).
		Int64("amount_cents", amountCents).
		Msg("Payment intent created")

	return intent, nil
}

// ApplyIntentUpdate records the processor's latest view of an intent.
// It returns nil when the intent belongs to no booking.
func (s *Service) ApplyIntentUpdate(ctx context.Context, intent *Intent) (*Record, error) {
	rec, err := s.repo.GetByIntentID(ctx, intent.ID)
	if err != nil {
		return nil, errorhandler.Storage(err)
	}
	if rec == nil {
		return nil, nil
	}
	if rec.ReleasedAt.Valid {
		return rec, nil
	}

	status := MapIntentStatusToPaymentStatus(intent.Status)
	if rec.ExternalStatus != intent.Status || rec.Status != status {
		if err := s.repo.UpdateStatus(ctx, rec.ID, intent.Status, status); err != nil {
			return nil, errorhandler.Storage(err)
		}
		rec.ExternalStatus = intent.Status
		rec.Status = status
	}
	return rec, nil
}

// CancelOpenIntents cancels every intent of a booking that can still move money
func (s *Service) CancelOpenIntents(ctx context.Context, bookingID uuid.UUID) error {
	records, err := s.ListByBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	for _, rec := range records {
		if !rec.IsOpen() {
			continue
		}
		intent, err := s.gateway.CancelIntent(ctx, rec.IntentID)
		if err != nil {
			return gatewayError(err)
		}
		if err := s.repo.UpdateStatus(ctx, rec.ID, intent.Status, MapIntentStatusToPaymentStatus(intent.Status)); err != nil {
			return errorhandler.Storage(err)
		}
	}
	return nil
}

// ReleaseDeposit returns the deposit hold of a booking to the guest. A hold
// that was never authorized is cancelled instead.
func (s *Service) ReleaseDeposit(ctx context.Context, bookingID uuid.UUID) (ReleaseAction, error) {
	records, err := s.ListByBooking(ctx, bookingID)
	if err != nil {
		return "", err
	}
	deposit := SelectIntentByPurpose(records, PurposeDeposit)
	if deposit == nil {
		return "", ErrNoDepositHold
	}
	if deposit.ReleasedAt.Valid {
		return ReleaseNone, nil
	}

	intent, err := s.gateway.GetIntent(ctx, deposit.IntentID)
	if err != nil {
		return "", gatewayError(err)
	}

	action := ResolveReleaseAction(intent.Status)
	switch action {
	case ReleaseVoid:
		voided, err := s.gateway.CancelIntent(ctx, deposit.IntentID)
		if err != nil {
			return "", gatewayError(err)
		}
		err = s.repo.MarkReleased(ctx, deposit.ID, voided.Status, StatusReleased)
		if err != nil {
			return "", errorhandler.Storage(err)
		}
	case ReleaseRefund:
		if err := s.gateway.RefundIntent(ctx, deposit.IntentID); err != nil {
			return "", gatewayError(err)
		}
		if err := s.repo.MarkReleased(ctx, deposit.ID, intent.Status, StatusRefunded); err != nil {
			return "", errorhandler.Storage(err)
		}
	case ReleaseCancelHold:
		cancelled, err := s.gateway.CancelIntent(ctx, deposit.IntentID)
		if err != nil {
			return "", gatewayError(err)
		}
		err = s.repo.UpdateStatus(ctx, deposit.ID, cancelled.Status, MapIntentStatusToPaymentStatus(cancelled.Status))
		if err != nil {
			return "", errorhandler.Storage(err)
		}
	case ReleaseNone:
		if intent.Status != deposit.ExternalStatus {
			err := s.repo.UpdateStatus(ctx, deposit.ID, intent.Status, MapIntentStatusToPaymentStatus(intent.Status))
			if err != nil {
				return "", errorhandler.Storage(err)
			}
		}
	}

	logger.FromContext(ctx).Info().
		Str("booking_id", bookingID.String()).
		Str("intent_id", deposit.IntentID).
		Str("action", string(action)).
		Msg("Deposit hold resolved")

	return action, nil
}
