package courses

import (
	"net/http"

	"github.com/cse-nriit/tt-backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

// SetupRoutes mounts the course endpoints. Reads are public (the SPA shows
// the catalog before login); mutations require an admin session.
func SetupRoutes(h *Handler, fetcher middleware.SessionFetcher) http.Handler {
	r := chi.NewRouter()

	r.Get("/api/semesters", h.SemestersHandler)
	r.Get("/api/branches", h.BranchesHandler)
	r.Get("/api/regulations", h.RegulationsHandler)
	r.Get("/courses", h.CoursesHandler)

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(fetcher))
		r.Use(middleware.AdminMiddleware)
		r.Post("/courses", h.AddCourseHandler)
		r.Put("/courses/{id}", h.UpdateCourseHandler)
		r.Delete("/courses/{id}", h.DeleteCourseHandler)
	})

	return r
}
