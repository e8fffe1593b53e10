package pricing

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stayhost/stayhost-api/internal/pkg/errorhandler"
	"github.com/stayhost/stayhost-api/internal/pkg/response"
	"github.com/stayhost/stayhost-api/internal/pkg/validator"
)

// Handler handles quote HTTP requests
type Handler struct {
	svc *Service
}

// NewHandler creates pricing handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Routes returns quote routes. Quotes are public.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	return r
}

// Create handles POST /quotes
// @Summary Get a price quote for a stay or event
// @Tags Pricing
// @Accept json
// @Produce json
// @Param request body QuoteRequest true "Quote request"
// @Success 200 {object} response.Response{data=Quote}
// @Failure 400,404,422 {object} response.Response
// @Router /quotes [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	quote, err := h.svc.Quote(r.Context(), &req)
	if err != nil {
		errorhandler.Write(r.Context(), w, err)
		return
	}

	response.OK(w, quote)
}
