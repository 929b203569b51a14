package assignments

import (
	"net/http"

	"github.com/cse-nriit/tt-backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

// SetupRoutes mounts the assignment endpoints. Reads need a session;
// completing an assignment mutates the cohort and needs an admin.
func SetupRoutes(h *Handler, fetcher middleware.SessionFetcher) http.Handler {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(fetcher))
		r.Get("/", h.GetAssignmentHandler)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminMiddleware)
			r.Post("/complete", h.CompleteHandler)
		})
	})

	return r
}
