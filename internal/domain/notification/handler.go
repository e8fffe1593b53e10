package notification

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/stayhost/stayhost-api/internal/middleware"
	"github.com/stayhost/stayhost-api/internal/pkg/errorhandler"
	"github.com/stayhost/stayhost-api/internal/pkg/response"
)

// Handler serves the booking inbox
type Handler struct {
	service *Service
}

// NewHandler creates notification handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /notifications
// @Summary List booking notifications
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param unread query bool false "Only unread"
// @Param bookingId query string false "Only notifications about this booking"
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} response.Response{data=[]NotificationResponse}
// @Failure 400,401 {object} response.Response
// @Router /notifications [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var f ListFilter
	f.Limit, _ = strconv.Atoi(q.Get("limit"))
	f.Offset, _ = strconv.Atoi(q.Get("offset"))
	if v := q.Get("unread"); v != "" {
		unread, err := strconv.ParseBool(v)
		if err != nil {
			response.BadRequest(w, "Invalid unread filter")
			return
		}
		f.UnreadOnly = unread
	}
	if v := q.Get("bookingId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			response.BadRequest(w, "Invalid booking ID")
			return
		}
		f.BookingID = &id
	}

	page, err := h.service.List(r.Context(), middleware.GetUserID(r.Context()), f)
	if err != nil {
		errorhandler.Write(r.Context(), w, err)
		return
	}

	items := make([]*NotificationResponse, len(page.Items))
	for i, n := range page.Items {
		items[i] = NewNotificationResponse(n)
	}
	response.WithMeta(w, items, response.Meta{Total: page.Total, Limit: page.Limit, Offset: page.Offset})
}

// GetUnreadCount handles GET /notifications/unread-count
func (h *Handler) GetUnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.GetUnreadCount(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		errorhandler.Write(r.Context(), w, err)
		return
	}
	response.OK(w, UnreadCountResponse{UnreadCount: count})
}

// MarkAsRead handles POST /notifications/{id}/read
func (h *Handler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid notification ID")
		return
	}

	userID := middleware.GetUserID(r.Context())
	if err := h.service.MarkAsRead(r.Context(), userID, id); err != nil {
		errorhandler.Write(r.Context(), w, err)
		return
	}
	h.respondUnread(w, r, userID)
}

// MarkAllAsRead handles POST /notifications/read-all
func (h *Handler) MarkAllAsRead(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if err := h.service.MarkAllAsRead(r.Context(), userID); err != nil {
		errorhandler.Write(r.Context(), w, err)
		return
	}
	h.respondUnread(w, r, userID)
}

// respondUnread answers read-marking calls with the new badge count
func (h *Handler) respondUnread(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	count, err := h.service.GetUnreadCount(r.Context(), userID)
	if err != nil {
		errorhandler.Write(r.Context(), w, err)
		return
	}
	response.OK(w, UnreadCountResponse{UnreadCount: count})
}

// Routes returns notification router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Get("/", h.List)
	r.Get("/unread-count", h.GetUnreadCount)
	r.Post("/{id}/read", h.MarkAsRead)
	r.Post("/read-all", h.MarkAllAsRead)

	return r
}
