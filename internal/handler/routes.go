package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter builds the chi router with the global middleware stack and every
// /api route. Admin-only routes sit behind RequireAdmin.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	// Global middleware stack
	r.Use(chimiddleware.Recoverer) // recover from panics, return 500
	r.Use(chimiddleware.RequestID) // attach request IDs
	r.Use(chimiddleware.RealIP)    // trust X-Forwarded-For
	r.Use(Logger(h.log))           // structured access log
	r.Use(CORS(h.cfg.CORSOrigins))
	r.Use(chimiddleware.Timeout(30 * time.Second))

	// Health
	r.Get("/health", HealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth", h.Login)
		r.Get("/auth", h.AuthStatus)
		r.Delete("/auth", h.Logout)

		// Public: guests reach these through their invitation link.
		r.Get("/rsvp", h.GetInvitation)
		r.Post("/rsvp", h.SubmitRSVP)
		r.Get("/settings", h.GetSettings)
		r.Get("/timeline", h.ListTimeline)

		r.Group(func(r chi.Router) {
			r.Use(h.RequireAdmin)

			r.Put("/settings", h.UpdateSettings)

			r.Post("/timeline", h.CreateTimelineItem)
			r.Put("/timeline", h.UpdateTimelineItem)
			r.Delete("/timeline", h.DeleteTimelineItem)

			r.Get("/groups", h.ListGroups)
			r.Post("/groups", h.CreateGroup)
			r.Put("/groups", h.UpdateGroup)
			r.Delete("/groups", h.DeleteGroup)

			r.Get("/guests", h.ListGuests)
			r.Post("/guests", h.CreateGuest)
			r.Delete("/guests", h.DeleteGuest)

			r.Post("/import", h.Import)
			r.Get("/export", h.Export)
		})
	})

	return r
}
