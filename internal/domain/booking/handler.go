package booking

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/stayhost/stayhost-api/internal/domain/payment"
	"github.com/stayhost/stayhost-api/internal/middleware"
	"github.com/stayhost/stayhost-api/internal/pkg/errorhandler"
	"github.com/stayhost/stayhost-api/internal/pkg/logger"
	"github.com/stayhost/stayhost-api/internal/pkg/processor"
	"github.com/stayhost/stayhost-api/internal/pkg/response"
	"github.com/stayhost/stayhost-api/internal/pkg/validator"
)

const maxWebhookBody = 1 << 20

// Handler handles booking HTTP requests
type Handler struct {
	svc           *Service
	webhookSecret string
}

// NewHandler creates booking handler
func NewHandler(svc *Service, webhookSecret string) *Handler {
	return &Handler{svc: svc, webhookSecret: webhookSecret}
}

func actorFrom(r *http.Request) Actor {
	return Actor{
		UserID: middleware.GetUserID(r.Context()),
		Role:   middleware.GetRole(r.Context()),
	}
}

func bookingID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return uuid.Nil, false
	}
	return id, true
}

// decode reads and validates a JSON body. An empty body is accepted when
// optional is set.
func decode(w http.ResponseWriter, r *http.Request, dst interface{}, optional bool) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if !(optional && err == io.EOF) {
			response.BadRequest(w, "Invalid JSON body")
			return false
		}
	}
	if errors := validator.Validate(dst); errors != nil {
		response.ValidationError(w, errors)
		return false
	}
	return true
}

// Create handles POST /bookings
// @Summary Create a draft booking
// @Tags Booking
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateRequest true "Booking draft"
// @Success 201 {object} response.Response{data=Booking}
// @Failure 400,401,403,404,422 {object} response.Response
// @Router /bookings [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if !decode(w, r, &req, false) {
		return
	}

	b, err := h.svc.CreateDraft(r.Context(), actorFrom(r), &req)
	if err != nil {
		errorhandler.Write(r.Context(), w, err)
		return
	}

	response.Created(w, b)
}

// ListMine handles GET /bookings
// @Summary List my bookings
// @Tags Booking
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Limit" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} response.Response{data=[]Booking}
// @Failure 401 {object} response.Response
// @Router /bookings [get]
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	limit, offset := 20, 0
	if l := r.URL.Query().Get("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 100 {
			limit = v
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if v, err := strconv.Atoi(o); err == nil && v >= 0 {
			offset = v
		}
	}

	bookings, total, err := h.svc.ListMine(r.Context(), actorFrom(r), limit, offset)
	if err != nil {
		errorhandler.Write(r.Context(), w, err)
		return
	}
	if bookings == nil {
		bookings = []*Booking{}
	}

	response.WithMeta(w, bookings, response.Meta{Total: total, Limit: limit, Offset: offset})
}

// Get handles GET /bookings/{id}
// @Summary Get booking
// @Tags Booking
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Response{data=Booking}
// @Failure 400,401,403,404 {object} response.Response
// @Router /bookings/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(w, r)
	if !ok {
		return
	}

	b, err := h.svc.Get(r.Context(), actorFrom(r), id)
	if err != nil {
		errorhandler.Write(r.Context(), w, err)
		return
	}

	response.OK(w, b)
}

// Submit handles POST /bookings/{id}/submit
// @Summary Submit a draft with an accepted quote
// @Tags Booking
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body SubmitRequest true "Accepted quote"
// @Success 200 {object} response.Response{data=Booking}
// @Failure 400,401,403,404,409,422 {object} response.Response
// @Router /bookings/{id}/submit [post]
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(w, r)
	if !ok {
		return
	}

	var req SubmitRequest
	if !decode(w, r, &req, false) {
		return
	}

	b, err := h.svc.Submit(r.Context(), actorFrom(r), id, &req)
	if err != nil {
		errorhandler.Write(r.Context(), w, err)
		return
	}

	response.OK(w, b)
}

// Review handles POST /bookings/{id}/review
// @Summary Approve, decline or request more information
// @Tags Booking
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body ReviewRequest true "Review decision"
// @Success 200 {object} response.Response{data=Booking}
// @Failure 400,401,403,404,409,422 {object} response.Response
// @Router /bookings/{id}/review [post]
func (h *Handler) Review(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(w, r)
	if !ok {
		return
	}

	var req ReviewRequest
	if !decode(w, r, &req, false) {
		return
	}

	b, err := h.svc.Review(r.Context(), actorFrom(r), id, &req)
	if err != nil {
		errorhandler.Write(r.Context(), w, err)
		return
	}

	response.OK(w, b)
}

// Checkout handles POST /bookings/{id}/checkout
// @Summary Prepare payment intents for a booking
// @Tags Booking
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Response{data=CheckoutResult}
// @Failure 400,401,403,404,409,502 {object} response.Response
// @Router /bookings/{id}/checkout [post]
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(w, r)
	if !ok {
		return
	}

	result, err := h.svc.StartCheckout(r.Context(), actorFrom(r), id)
	if err != nil {
		errorhandler.Write(r.Context(), w, err)
		return
	}

	response.OK(w, result)
}

// ReleaseDeposit handles POST /bookings/{id}/deposit/release
// @Summary Release the deposit hold
// @Tags Booking
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Response{data=ReleaseResult}
// @Failure 400,401,403,404,409,422,502 {object} response.Response
// @Router /bookings/{id}/deposit/release [post]
func (h *Handler) ReleaseDeposit(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(w, r)
	if !ok {
		return
	}

	result, err := h.svc.ReleaseDeposit(r.Context(), actorFrom(r), id)
	if err != nil {
		errorhandler.Write(r.Context(), w, err)
		return
	}

	response.OK(w, result)
}

// Cancel handles POST /bookings/{id}/cancel
// @Summary Cancel booking
// @Tags Booking
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body CancelRequest false "Cancellation reason"
// @Success 200 {object} response.Response{data=Booking}
// @Failure 400,401,403,404,409,502 {object} response.Response
// @Router /bookings/{id}/cancel [post]
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(w, r)
	if !ok {
		return
	}

	var req CancelRequest
	if !decode(w, r, &req, true) {
		return
	}

	b, err := h.svc.Cancel(r.Context(), actorFrom(r), id, &req)
	if err != nil {
		errorhandler.Write(r.Context(), w, err)
		return
	}

	response.OK(w, b)
}

// CheckIn handles POST /bookings/{id}/check-in
func (h *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(w, r)
	if !ok {
		return
	}

	b, err := h.svc.CheckIn(r.Context(), actorFrom(r), id)
	if err != nil {
		errorhandler.Write(r.Context(), w, err)
		return
	}

	response.OK(w, b)
}

// Complete handles POST /bookings/{id}/complete
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(w, r)
	if !ok {
		return
	}

	b, err := h.svc.Complete(r.Context(), actorFrom(r), id)
	if err != nil {
		errorhandler.Write(r.Context(), w, err)
		return
	}

	response.OK(w, b)
}

// CheckAvailability handles GET /availability
// @Summary Check whether a window is free
// @Tags Booking
// @Produce json
// @Param propertyId query string true "Property ID"
// @Param startAt query string true "Start (RFC3339)"
// @Param endAt query string true "End (RFC3339)"
// @Param excludeBookingId query string false "Booking to ignore"
// @Success 200 {object} response.Response{data=AvailabilityResult}
// @Failure 404,422 {object} response.Response
// @Router /availability [get]
func (h *Handler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	details := map[string]string{}

	propertyID, err := uuid.Parse(q.Get("propertyId"))
	if err != nil {
		details["propertyId"] = "Invalid value"
	}
	startAt, err := time.Parse(time.RFC3339, q.Get("startAt"))
	if err != nil {
		details["startAt"] = "Must be an RFC3339 timestamp"
	}
	endAt, err := time.Parse(time.RFC3339, q.Get("endAt"))
	if err != nil {
		details["endAt"] = "Must be an RFC3339 timestamp"
	}

	query := AvailabilityQuery{PropertyID: propertyID, StartAt: startAt, EndAt: endAt}
	if raw := q.Get("excludeBookingId"); raw != "" {
		exclude, err := uuid.Parse(raw)
		if err != nil {
			details["excludeBookingId"] = "Invalid value"
		} else {
			query.ExcludeBookingID = &exclude
		}
	}

	if len(details) > 0 {
		response.ValidationError(w, details)
		return
	}

	result, err := h.svc.CheckAvailability(r.Context(), query)
	if err != nil {
		errorhandler.Write(r.Context(), w, err)
		return
	}

	response.OK(w, result)
}

// PaymentWebhook handles POST /webhooks/payments
// @Summary Payment processor webhook
// @Tags Payment Webhooks
// @Accept json
// @Produce json
// @Success 200 {object} response.Response{data=object{status=string}}
// @Failure 400,401,502 {object} response.Response
// @Router /webhooks/payments [post]
func (h *Handler) PaymentWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		response.BadRequest(w, "Invalid webhook body")
		return
	}

	event, err := processor.ParseEvent(payload, r.Header.Get(processor.SignatureHeader), h.webhookSecret)
	if err != nil {
		logger.FromContext(r.Context()).Warn().Err(err).Msg("Rejected payment webhook")
		if errors.Is(err, processor.ErrInvalidSignature) {
			response.Unauthorized(w, "Invalid webhook signature")
		} else {
			response.BadRequest(w, "Invalid webhook payload")
		}
		return
	}

	b, err := h.svc.CapturePayment(r.Context(), payment.FromProcessor(&event.Data.Object))
	if err != nil {
		errorhandler.Write(r.Context(), w, err)
		return
	}
	if b == nil {
		response.OK(w, map[string]string{"status": "ignored"})
		return
	}

	response.OK(w, map[string]string{"status": "ok", "bookingStatus": string(b.Status)})
}
