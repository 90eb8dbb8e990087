package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// NewRouter builds the HTTP routes for the booking API. Every /booking route
// requires a bearer token signed with jwtSecret.
func NewRouter(h *BookingHandler, jwtSecret string, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware stack
	r.Use(chimiddleware.Recoverer) // recover from panics, return 500
	r.Use(chimiddleware.RequestID) // attach request IDs
	r.Use(chimiddleware.RealIP)    // trust X-Forwarded-For
	r.Use(Logger(log))             // structured access log
	r.Use(CORS)

	r.Get("/health", HealthCheck)

	r.Route("/booking", func(r chi.Router) {
		r.Use(Authenticate(jwtSecret))
		r.Get("/", h.GetBooking)
		r.Post("/", h.CreateBooking)
		r.Put("/{bookingId}", h.ReassignBooking)
	})

	return r
}
