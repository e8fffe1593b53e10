package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns booking routes
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Post("/", h.Create)
	r.Get("/", h.ListMine)

	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Post("/submit", h.Submit)
		r.Post("/review", h.Review)
		r.Post("/checkout", h.Checkout)
		r.Post("/deposit/release", h.ReleaseDeposit)
		r.Post("/cancel", h.Cancel)
		r.Post("/check-in", h.CheckIn)
		r.Post("/complete", h.Complete)
	})

	return r
}

// AvailabilityRoutes returns public availability routes
func (h *Handler) AvailabilityRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.CheckAvailability)
	return r
}

// WebhookRoutes returns webhook router (no auth, but signature verification)
func (h *Handler) WebhookRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/payments", h.PaymentWebhook)
	return r
}
