package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayhost/stayhost-api/internal/domain/payment"
	"github.com/stayhost/stayhost-api/internal/domain/pricing"
	"github.com/stayhost/stayhost-api/internal/pkg/errorhandler"
	"github.com/stayhost/stayhost-api/internal/pkg/events"
	"github.com/stayhost/stayhost-api/internal/pkg/jwt"
	"github.com/stayhost/stayhost-api/internal/pkg/lock"
)

func (h *harness) draftStay(t *testing.T, guest Actor, in, out int) *Booking {
	t.Helper()
	b, err := h.svc.CreateDraft(context.Background(), guest, &CreateRequest{
		PropertyID: h.property.ID,
		Kind:       string(pricing.KindStay),
		GuestCount: 2,
		StartAt:    day(in, 15),
		EndAt:      day(out, 11),
	})
	require.NoError(t, err)
	return b
}

func (h *harness) draftEvent(t *testing.T) *Booking {
	t.Helper()
	b, err := h.svc.CreateDraft(context.Background(), h.guest, &CreateRequest{
		PropertyID:   h.property.ID,
		Kind:         string(pricing.KindEvent),
		GuestCount:   30,
		StartAt:      day(10, 18),
		EndAt:        day(10, 22),
		EventDetails: &EventDetails{EventType: "party", Alcohol: true},
	})
	require.NoError(t, err)
	return b
}

func (h *harness) submit(t *testing.T, b *Booking, q *pricing.Quote) *Booking {
	t.Helper()
	out, err := h.svc.Submit(context.Background(), h.guest, b.ID, &SubmitRequest{Kind: string(b.Kind), Quote: q})
	require.NoError(t, err)
	return out
}

// requestedEvent returns an event submitted with an approval flag
func (h *harness) requestedEvent(t *testing.T, deposit int64) *Booking {
	t.Helper()
	return h.submit(t, h.draftEvent(t), eventQuote(pricing.ModeInstant, deposit, pricing.FlagAlcohol))
}

func (h *harness) approvedEvent(t *testing.T, deposit int64) *Booking {
	t.Helper()
	b := h.requestedEvent(t, deposit)
	out, err := h.svc.Review(context.Background(), h.host, b.ID, &ReviewRequest{Action: ActionApprove})
	require.NoError(t, err)
	return out
}

func TestCreateDraftStayUsesCalendarDates(t *testing.T) {
	h := newHarness()
	b := h.draftStay(t, h.guest, 1, 4)

	assert.Equal(t, StatusDraft, b.Status)
	assert.Equal(t, pricing.ModeInstant, b.Mode)
	require.NotNil(t, b.CheckIn)
	assert.Equal(t, day(1, 0), *b.CheckIn)
	assert.Equal(t, day(4, 0), *b.CheckOut)
	assert.Equal(t, day(1, 0), b.StartAt)
	assert.False(t, b.BlocksCalendar)
}

func TestCreateDraftRejects(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	_, err := h.svc.CreateDraft(ctx, h.host, &CreateRequest{
		PropertyID: h.property.ID, Kind: "stay", GuestCount: 1, StartAt: day(1, 15), EndAt: day(2, 11),
	})
	assert.ErrorIs(t, err, ErrGuestOnly)

	_, err = h.svc.CreateDraft(ctx, h.guest, &CreateRequest{
		PropertyID: uuid.New(), Kind: "stay", GuestCount: 1, StartAt: day(1, 15), EndAt: day(2, 11),
	})
	assert.ErrorIs(t, err, ErrPropertyMissing)

	_, err = h.svc.CreateDraft(ctx, h.guest, &CreateRequest{
		PropertyID: h.property.ID, Kind: "stay", GuestCount: 1, StartAt: day(1, 9), EndAt: day(1, 20),
	})
	assert.ErrorIs(t, err, pricing.ErrInvalidDates)

	_, err = h.svc.CreateDraft(ctx, h.guest, &CreateRequest{
		PropertyID: h.property.ID, Kind: "stay", GuestCount: 41, StartAt: day(1, 15), EndAt: day(2, 11),
	})
	assert.ErrorIs(t, err, pricing.ErrTooManyGuests)

	_, err = h.svc.CreateDraft(ctx, h.guest, &CreateRequest{
		PropertyID: h.property.ID, Kind: "event", GuestCount: 10, StartAt: day(1, 15), EndAt: day(1, 18),
	})
	assert.ErrorIs(t, err, ErrDetailsRequired)
}

func TestSubmitStayIsInstantAndIdempotent(t *testing.T) {
	h := newHarness()
	draft := h.draftStay(t, h.guest, 1, 4)

	b := h.submit(t, draft, stayQuote())
	assert.Equal(t, StatusAwaitingPayment, b.Status)
	assert.True(t, b.BlocksCalendar)
	assert.Equal(t, int64(44840), b.TotalCents)
	require.NotNil(t, b.PricingSnapshot.SubmittedAt)
	assert.Equal(t, []string{"property:" + h.property.ID.String()}, h.locker.acquired)
	assert.Equal(t, 1, h.locker.released)

	again := h.submit(t, draft, stayQuote())
	assert.Equal(t, StatusAwaitingPayment, again.Status)
	assert.Equal(t, []string{events.BookingSubmitted}, h.notifier.types())
}

func TestSubmitEventWithFlagsRequiresRequest(t *testing.T) {
	h := newHarness()
	b := h.requestedEvent(t, 0)

	assert.Equal(t, StatusRequested, b.Status)
	assert.Equal(t, pricing.ModeRequest, b.Mode)
	assert.True(t, b.BlocksCalendar)
	assert.Equal(t, []string{"ALCOHOL"}, []string(b.RiskFlags))
}

func TestSubmitEventInstantDisabled(t *testing.T) {
	h := newHarness()
	h.svc.cfg.InstantBookEnabled = false

	b := h.submit(t, h.draftEvent(t), eventQuote(pricing.ModeInstant, 0))
	assert.Equal(t, StatusRequested, b.Status)
}

func TestSubmitRejects(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	draft := h.draftStay(t, h.guest, 1, 4)

	_, err := h.svc.Submit(ctx, h.guest, draft.ID, &SubmitRequest{Kind: "event", Quote: stayQuote()})
	assert.ErrorIs(t, err, ErrKindMismatch)

	broken := stayQuote()
	broken.TotalCents++
	_, err = h.svc.Submit(ctx, h.guest, draft.ID, &SubmitRequest{Kind: "stay", Quote: broken})
	assert.ErrorIs(t, err, pricing.ErrQuoteTotalMismatch)

	_, err = h.svc.Submit(ctx, h.host, draft.ID, &SubmitRequest{Kind: "stay", Quote: stayQuote()})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = h.svc.Submit(ctx, h.guest, uuid.New(), &SubmitRequest{Kind: "stay", Quote: stayQuote()})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	assert.Equal(t, StatusDraft, h.repo.status(draft.ID))
}

func TestSubmitRejectsOverlap(t *testing.T) {
	h := newHarness()
	h.submit(t, h.draftStay(t, h.guest, 1, 4), stayQuote())

	other := Actor{UserID: uuid.New(), Role: jwt.RoleGuest}
	overlapping := h.draftStay(t, other, 3, 6)
	_, err := h.svc.Submit(context.Background(), other, overlapping.ID, &SubmitRequest{Kind: "stay", Quote: stayQuote()})
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, errorhandler.KindConflict, errorhandler.KindOf(err))

	adjacent := h.draftStay(t, other, 4, 6)
	b, err := h.svc.Submit(context.Background(), other, adjacent.ID, &SubmitRequest{Kind: "stay", Quote: stayQuote()})
	require.NoError(t, err)
	assert.Equal(t, StatusAwaitingPayment, b.Status)
}

func TestSubmitLockContention(t *testing.T) {
	h := newHarness()
	draft := h.draftStay(t, h.guest, 1, 4)

	h.locker.err = lock.ErrNotAcquired
	_, err := h.svc.Submit(context.Background(), h.guest, draft.ID, &SubmitRequest{Kind: "stay", Quote: stayQuote()})
	assert.ErrorIs(t, err, ErrSubmissionInProgress)
	assert.Equal(t, StatusDraft, h.repo.status(draft.ID))

	h.locker.err = errors.New("redis: connection refused")
	b := h.submit(t, draft, stayQuote())
	assert.Equal(t, StatusAwaitingPayment, b.Status)
}

func TestSubmitWithServerQuote(t *testing.T) {
	h := newHarness()
	draft := h.draftStay(t, h.guest, 1, 4)

	server := stayQuote()
	server.SubtotalCents += 100
	server.TotalCents += 100
	h.svc.SetQuoter(fixedQuoter{quote: server})

	_, err := h.svc.Submit(context.Background(), h.guest, draft.ID, &SubmitRequest{Kind: "stay", Quote: stayQuote()})
	assert.ErrorIs(t, err, ErrQuoteMismatch)

	h.svc.SetQuoter(fixedQuoter{quote: stayQuote()})
	b := h.submit(t, draft, stayQuote())
	assert.Equal(t, int64(44840), b.TotalCents)
}

func TestReviewApproveEvent(t *testing.T) {
	h := newHarness()
	b := h.approvedEvent(t, 0)

	assert.Equal(t, StatusApproved, b.Status)
	assert.True(t, b.BlocksCalendar)
	require.Len(t, h.notifier.sent, 2)
	approved := h.notifier.sent[1]
	assert.Equal(t, events.BookingApproved, approved.Type)
	assert.Equal(t, "https://stayhost.test/bookings/"+b.ID.String()+"/pay", approved.PaymentURL)
}

func TestReviewApproveStayRejected(t *testing.T) {
	h := newHarness()
	b := h.submit(t, h.draftStay(t, h.guest, 1, 4), stayQuote())

	_, err := h.svc.Review(context.Background(), h.host, b.ID, &ReviewRequest{Action: ActionApprove})
	assert.ErrorIs(t, err, ErrEventOnly)
}

func TestReviewRequestInfoFreesCalendarUntilResubmit(t *testing.T) {
	h := newHarness()
	b := h.requestedEvent(t, 0)

	out, err := h.svc.Review(context.Background(), h.host, b.ID, &ReviewRequest{Action: ActionRequestInfo, Note: "How many vehicles?"})
	require.NoError(t, err)
	assert.Equal(t, StatusRequested, out.Status)
	assert.False(t, out.BlocksCalendar)
	require.Len(t, out.PricingSnapshot.Notes, 1)
	assert.Equal(t, "How many vehicles?", out.PricingSnapshot.Notes[0].Note)
	assert.Equal(t, h.host.UserID, out.PricingSnapshot.Notes[0].By)

	again := h.submit(t, b, eventQuote(pricing.ModeInstant, 0, pricing.FlagAlcohol))
	assert.Equal(t, StatusRequested, again.Status)
	assert.True(t, again.BlocksCalendar)
	assert.Len(t, again.PricingSnapshot.Notes, 1)
	assert.Equal(t, []string{events.BookingSubmitted, events.BookingInfoRequested, events.BookingSubmitted}, h.notifier.types())
}

func TestReviewDecline(t *testing.T) {
	h := newHarness()
	b := h.approvedEvent(t, 0)

	out, err := h.svc.Review(context.Background(), h.host, b.ID, &ReviewRequest{Action: ActionDecline, Note: "Too loud"})
	require.NoError(t, err)
	assert.Equal(t, StatusDeclined, out.Status)
	assert.False(t, out.BlocksCalendar)
	assert.Equal(t, 1, h.payments.cancels)

	_, err = h.svc.Review(context.Background(), h.host, b.ID, &ReviewRequest{Action: ActionApprove})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestReviewRequiresManager(t *testing.T) {
	h := newHarness()
	b := h.requestedEvent(t, 0)

	_, err := h.svc.Review(context.Background(), h.guest, b.ID, &ReviewRequest{Action: ActionApprove})
	assert.ErrorIs(t, err, ErrForbidden)

	stranger := Actor{UserID: uuid.New(), Role: jwt.RoleHost}
	_, err = h.svc.Review(context.Background(), stranger, b.ID, &ReviewRequest{Action: ActionApprove})
	assert.ErrorIs(t, err, ErrForbidden)

	h.managers.err = errors.New("timeout")
	_, err = h.svc.Review(context.Background(), h.host, b.ID, &ReviewRequest{Action: ActionApprove})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, StatusRequested, h.repo.status(b.ID))
}

func TestCheckoutCreatesBalanceAndDeposit(t *testing.T) {
	h := newHarness()
	b := h.approvedEvent(t, 50000)

	result, err := h.svc.StartCheckout(context.Background(), h.guest, b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusAwaitingPayment, result.Booking.Status)
	require.NotNil(t, result.Deposit)
	assert.Equal(t, int64(50000), result.Deposit.AmountCents)
	assert.Equal(t, int64(45000), result.Balance.AmountCents)
	assert.Equal(t, []ensureCall{{payment.PurposeBalance, 45000}, {payment.PurposeDeposit, 50000}}, h.payments.ensured)

	// a second checkout reuses the flow without moving the booking
	again, err := h.svc.StartCheckout(context.Background(), h.guest, b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusAwaitingPayment, again.Booking.Status)

	_, err = h.svc.StartCheckout(context.Background(), h.host, b.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCheckoutRequiresApproval(t *testing.T) {
	h := newHarness()
	b := h.requestedEvent(t, 0)

	_, err := h.svc.StartCheckout(context.Background(), h.guest, b.ID)
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Empty(t, h.payments.ensured)
}

func TestSubmitAfterApprovalKeepsApprovedQuote(t *testing.T) {
	h := newHarness()
	b := h.approvedEvent(t, 50000)
	_, err := h.svc.StartCheckout(context.Background(), h.guest, b.ID)
	require.NoError(t, err)

	cheaper := &pricing.Quote{Mode: pricing.ModeInstant, Currency: "usd", SubtotalCents: 100, TotalCents: 100, RiskFlags: []pricing.RiskFlag{}}
	_, err = h.svc.Submit(context.Background(), h.guest, b.ID, &SubmitRequest{Kind: "event", Quote: cheaper})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	stored, err := h.svc.Get(context.Background(), h.guest, b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusAwaitingPayment, stored.Status)
	assert.Equal(t, int64(45000), stored.TotalCents)
	require.NotNil(t, stored.PricingSnapshot.Quote)
	assert.Equal(t, int64(50000), stored.PricingSnapshot.Quote.DepositCents)
}

func TestResubmitHeldStayRequiresSameQuote(t *testing.T) {
	h := newHarness()
	draft := h.draftStay(t, h.guest, 1, 4)
	h.submit(t, draft, stayQuote())

	changed := stayQuote()
	changed.SubtotalCents, changed.TotalCents = 20000, 34840
	_, err := h.svc.Submit(context.Background(), h.guest, draft.ID, &SubmitRequest{Kind: "stay", Quote: changed})
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Equal(t, StatusAwaitingPayment, h.repo.status(draft.ID))

	again := h.submit(t, draft, stayQuote())
	assert.Equal(t, int64(44840), again.TotalCents)
}

func TestCapturePaymentWithoutDepositConfirms(t *testing.T) {
	h := newHarness()
	b := h.submit(t, h.draftStay(t, h.guest, 1, 4), stayQuote())
	_, err := h.svc.StartCheckout(context.Background(), h.guest, b.ID)
	require.NoError(t, err)

	out, err := h.svc.CapturePayment(context.Background(), &payment.Intent{ID: "pi_balance", Status: payment.IntentSucceeded})
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, out.Status)
	assert.Equal(t, events.BookingConfirmed, h.notifier.sent[len(h.notifier.sent)-1].Type)
}

func TestCapturePaymentWaitsForDepositHold(t *testing.T) {
	h := newHarness()
	b := h.approvedEvent(t, 50000)
	_, err := h.svc.StartCheckout(context.Background(), h.guest, b.ID)
	require.NoError(t, err)
	ctx := context.Background()

	// processing updates do not move the booking
	out, err := h.svc.CapturePayment(ctx, &payment.Intent{ID: "pi_balance", Status: payment.IntentProcessing})
	require.NoError(t, err)
	assert.Equal(t, StatusAwaitingPayment, out.Status)

	out, err = h.svc.CapturePayment(ctx, &payment.Intent{ID: "pi_balance", Status: payment.IntentSucceeded})
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, out.Status)
	assert.True(t, out.BlocksCalendar)

	out, err = h.svc.CapturePayment(ctx, &payment.Intent{ID: "pi_deposit", Status: payment.IntentRequiresCapture})
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, out.Status)

	// replayed webhooks are harmless
	out, err = h.svc.CapturePayment(ctx, &payment.Intent{ID: "pi_balance", Status: payment.IntentSucceeded})
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, out.Status)
}

func TestCapturePaymentDepositAuthorizedFirst(t *testing.T) {
	h := newHarness()
	b := h.approvedEvent(t, 50000)
	_, err := h.svc.StartCheckout(context.Background(), h.guest, b.ID)
	require.NoError(t, err)
	ctx := context.Background()

	out, err := h.svc.CapturePayment(ctx, &payment.Intent{ID: "pi_deposit", Status: payment.IntentRequiresCapture})
	require.NoError(t, err)
	assert.Equal(t, StatusAwaitingPayment, out.Status)

	out, err = h.svc.CapturePayment(ctx, &payment.Intent{ID: "pi_balance", Status: payment.IntentSucceeded})
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, out.Status)
}

func TestCapturePaymentUnknownIntent(t *testing.T) {
	h := newHarness()
	out, err := h.svc.CapturePayment(context.Background(), &payment.Intent{ID: "pi_unknown", Status: payment.IntentSucceeded})
	require.NoError(t, err)
	assert.Nil(t, out)
}

func (h *harness) confirmedEvent(t *testing.T) *Booking {
	t.Helper()
	b := h.approvedEvent(t, 50000)
	ctx := context.Background()
	_, err := h.svc.StartCheckout(ctx, h.guest, b.ID)
	require.NoError(t, err)
	_, err = h.svc.CapturePayment(ctx, &payment.Intent{ID: "pi_deposit", Status: payment.IntentRequiresCapture})
	require.NoError(t, err)
	out, err := h.svc.CapturePayment(ctx, &payment.Intent{ID: "pi_balance", Status: payment.IntentSucceeded})
	require.NoError(t, err)
	require.Equal(t, StatusConfirmed, out.Status)
	return out
}

func TestReleaseDeposit(t *testing.T) {
	h := newHarness()
	b := h.confirmedEvent(t)
	h.payments.release = payment.ReleaseVoid

	_, err := h.svc.ReleaseDeposit(context.Background(), h.guest, b.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	result, err := h.svc.ReleaseDeposit(context.Background(), h.host, b.ID)
	require.NoError(t, err)
	assert.Equal(t, payment.ReleaseVoid, result.Action)
	assert.Equal(t, StatusDepositReleased, result.Booking.Status)
	assert.False(t, result.Booking.BlocksCalendar)
	assert.Equal(t, events.BookingDepositRelease, h.notifier.sent[len(h.notifier.sent)-1].Type)

	_, err = h.svc.ReleaseDeposit(context.Background(), h.host, b.ID)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestReleaseDepositWithoutAuthorizedHoldKeepsStatus(t *testing.T) {
	h := newHarness()
	b := h.confirmedEvent(t)
	h.payments.release = payment.ReleaseCancelHold

	result, err := h.svc.ReleaseDeposit(context.Background(), h.host, b.ID)
	require.NoError(t, err)
	assert.Equal(t, payment.ReleaseCancelHold, result.Action)
	assert.Equal(t, StatusConfirmed, result.Booking.Status)
}

func TestReleaseDepositBeforeConfirmation(t *testing.T) {
	h := newHarness()
	b := h.approvedEvent(t, 50000)

	_, err := h.svc.ReleaseDeposit(context.Background(), h.host, b.ID)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCancelAbortsWhenIntentCancellationFails(t *testing.T) {
	h := newHarness()
	b := h.approvedEvent(t, 0)
	h.payments.cancelErr = errorhandler.Upstream("PAYMENT_GATEWAY_ERROR", "Payment processor request failed", errors.New("timeout"))

	_, err := h.svc.Cancel(context.Background(), h.guest, b.ID, &CancelRequest{Reason: "Change of plans"})
	require.Error(t, err)
	assert.Equal(t, errorhandler.KindUpstream, errorhandler.KindOf(err))
	assert.Equal(t, StatusApproved, h.repo.status(b.ID))
}

func TestCancel(t *testing.T) {
	h := newHarness()
	b := h.approvedEvent(t, 0)

	out, err := h.svc.Cancel(context.Background(), h.guest, b.ID, &CancelRequest{Reason: "Change of plans"})
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, out.Status)
	assert.False(t, out.BlocksCalendar)
	require.Len(t, out.PricingSnapshot.Notes, 1)
	assert.Equal(t, 1, h.payments.cancels)

	_, err = h.svc.Cancel(context.Background(), h.guest, b.ID, nil)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCancelDraftSkipsPayments(t *testing.T) {
	h := newHarness()
	b := h.draftStay(t, h.guest, 1, 4)

	out, err := h.svc.Cancel(context.Background(), h.guest, b.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, out.Status)
	assert.Zero(t, h.payments.cancels)
}

func TestCheckInAndComplete(t *testing.T) {
	h := newHarness()
	b := h.confirmedEvent(t)
	ctx := context.Background()

	_, err := h.svc.CheckIn(ctx, h.guest, b.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	out, err := h.svc.CheckIn(ctx, h.host, b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, out.Status)

	out, err = h.svc.Complete(ctx, h.host, b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, out.Status)
	assert.False(t, out.BlocksCalendar)

	_, err = h.svc.Complete(ctx, h.host, b.ID)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCheckAvailability(t *testing.T) {
	h := newHarness()
	held := h.submit(t, h.draftStay(t, h.guest, 1, 4), stayQuote())
	ctx := context.Background()

	result, err := h.svc.CheckAvailability(ctx, AvailabilityQuery{PropertyID: h.property.ID, StartAt: day(2, 18), EndAt: day(2, 22)})
	require.NoError(t, err)
	assert.False(t, result.Available)
	require.NotNil(t, result.Conflict)
	assert.Equal(t, held.ID, result.Conflict.ID)

	result, err = h.svc.CheckAvailability(ctx, AvailabilityQuery{PropertyID: h.property.ID, StartAt: day(2, 18), EndAt: day(2, 22), ExcludeBookingID: &held.ID})
	require.NoError(t, err)
	assert.True(t, result.Available)

	result, err = h.svc.CheckAvailability(ctx, AvailabilityQuery{PropertyID: h.property.ID, StartAt: day(4, 0), EndAt: day(4, 6)})
	require.NoError(t, err)
	assert.True(t, result.Available)

	_, err = h.svc.CheckAvailability(ctx, AvailabilityQuery{PropertyID: h.property.ID, StartAt: day(4, 6), EndAt: day(4, 6)})
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = h.svc.CheckAvailability(ctx, AvailabilityQuery{PropertyID: uuid.New(), StartAt: day(4, 0), EndAt: day(4, 6)})
	assert.ErrorIs(t, err, ErrPropertyMissing)
}

func TestGetVisibility(t *testing.T) {
	h := newHarness()
	b := h.draftStay(t, h.guest, 1, 4)

	got, err := h.svc.Get(context.Background(), h.guest, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	_, err = h.svc.Get(context.Background(), Actor{UserID: uuid.New(), Role: jwt.RoleGuest}, b.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	list, total, err := h.svc.ListMine(context.Background(), h.guest, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, list, 1)
}
