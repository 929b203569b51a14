package faculty

import (
	"net/http"

	"github.com/cse-nriit/tt-backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

// SetupRoutes mounts the faculty endpoints. The listing is public; roster
// mutations require an admin session.
func SetupRoutes(h *Handler, fetcher middleware.SessionFetcher) http.Handler {
	r := chi.NewRouter()

	r.Get("/api/faculty", h.GetFacultyHandler)

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(fetcher))
		r.Use(middleware.AdminMiddleware)
		r.Post("/api/faculty", h.AddFacultyHandler)
		r.Put("/api/faculty/{id}", h.UpdateFacultyHandler)
		r.Delete("/api/faculty/{id}", h.DeleteFacultyHandler)
	})

	return r
}
