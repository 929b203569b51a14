package auth

import (
	"net/http"

	"github.com/cse-nriit/tt-backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

// SetupRoutes mounts the auth endpoints. Credential endpoints sit behind the
// rate limiter; getuser and update-password require a live session. Logout
// is deliberately ungated so it stays idempotent.
func SetupRoutes(h *Handler, fetcher middleware.SessionFetcher, limiter *middleware.IPRateLimiter) http.Handler {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(limiter))
		r.Post("/register", h.RegisterHandler)
		r.Post("/login", h.LoginHandler)
		r.Post("/forgot-password", h.ForgotPasswordHandler)
		r.Post("/reset/{token}", h.ResetPasswordHandler)
	})

	r.Post("/logout", h.LogoutHandler)
	r.Get("/getuser", h.MeHandler)

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(fetcher))
		r.Post("/update-password", h.UpdatePasswordHandler)
	})

	return r
}
