package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/cse-nriit/tt-backend/internal/logger"
	"github.com/cse-nriit/tt-backend/internal/utils"
	"github.com/go-chi/chi/v5"
)

// Handler owns the HTTP surface of the auth service. It translates typed
// service errors into status codes; the service itself knows nothing about
// HTTP.
type Handler struct {
	svc        *Service
	production bool
	sessionTTL time.Duration
}

func NewHandler(svc *Service, production bool, sessionTTL time.Duration) *Handler {
	return &Handler{svc: svc, production: production, sessionTTL: sessionTTL}
}

func (h *Handler) sessionCookie(value string, maxAge int) *http.Cookie {
	cookie := &http.Cookie{
		Name:     "session_id",
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   maxAge,
	}
	if h.production {
		// Cross-site SPA behind a proxy needs SameSite=None + Secure.
		cookie.Secure = true
		cookie.SameSite = http.SameSiteNoneMode
	} else {
		cookie.SameSite = http.SameSiteLaxMode
	}
	return cookie
}

// userMessage strips the sentinel prefix so the caller sees only the
// human-readable part.
func userMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}

// writeError maps service errors to status codes. Login overrides the
// unknown-email case separately (it answers 400, not 404).
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		utils.Message(w, http.StatusBadRequest, false, userMessage(err))
	case errors.Is(err, ErrEmailTaken):
		utils.Message(w, http.StatusConflict, false, "Email already exists")
	case errors.Is(err, ErrEmailNotFound):
		utils.Message(w, http.StatusNotFound, false, "No account with that email address exists")
	case errors.Is(err, ErrWrongPassword):
		utils.Message(w, http.StatusBadRequest, false, "Incorrect password")
	case errors.Is(err, ErrInvalidToken):
		utils.Message(w, http.StatusBadRequest, false, "Password reset token is invalid or has expired")
	case errors.Is(err, ErrSamePassword):
		utils.Message(w, http.StatusBadRequest, false,
			"You cannot use your current password. Please enter a new password.")
	case errors.Is(err, ErrUnauthenticated):
		utils.Message(w, http.StatusUnauthorized, false, "Unauthorized")
	case errors.Is(err, ErrNotification):
		logger.FromRequest(r).Err(err).Msg("reset email dispatch failed")
		utils.Message(w, http.StatusInternalServerError, false, "Error Sending Email")
	default:
		logger.FromRequest(r).Err(err).Msg("auth request failed")
		utils.Message(w, http.StatusInternalServerError, false, "Internal Server Error")
	}
}

func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		FullName string `json:"fullname"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.Message(w, http.StatusBadRequest, false, "Invalid request format")
		return
	}

	user, session, err := h.svc.Register(r.Context(), body.FullName, body.Email, body.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	http.SetCookie(w, h.sessionCookie(session.SessionID, int(h.sessionTTL.Seconds())))
	utils.JSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "User registered and logged in successfully",
		"user":    user.Project(),
	})
}

func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.Message(w, http.StatusBadRequest, false, "Invalid request format")
		return
	}

	user, session, err := h.svc.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		// The login form reports unknown email and wrong password as
		// distinct 400s, same as the original product.
		if errors.Is(err, ErrEmailNotFound) {
			utils.Message(w, http.StatusBadRequest, false, "Email address is not registered")
			return
		}
		writeError(w, r, err)
		return
	}

	http.SetCookie(w, h.sessionCookie(session.SessionID, int(h.sessionTTL.Seconds())))
	utils.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Login successful",
		"user":    user.Project(),
	})
}

// LogoutHandler destroys the session if one is presented. It succeeds even
// when the cookie is missing or the session is already gone.
func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("session_id"); err == nil && cookie.Value != "" {
		if err := h.svc.Logout(r.Context(), cookie.Value); err != nil {
			writeError(w, r, err)
			return
		}
	}

	http.SetCookie(w, h.sessionCookie("", -1))
	utils.Message(w, http.StatusOK, true, "Logged out successfully")
}

func (h *Handler) MeHandler(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("session_id")
	if err != nil {
		utils.Message(w, http.StatusUnauthorized, false, "Unauthorized")
		return
	}

	user, err := h.svc.CurrentUser(r.Context(), cookie.Value)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]any{
		"user": user.Project(),
	})
}

func (h *Handler) ForgotPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.Message(w, http.StatusBadRequest, false, "Invalid request format")
		return
	}

	if err := h.svc.RequestPasswordReset(r.Context(), body.Email); err != nil {
		writeError(w, r, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Password reset instructions Sent",
		"email":   body.Email,
	})
}

func (h *Handler) ResetPasswordHandler(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	var body struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.Message(w, http.StatusBadRequest, false, "Invalid request format")
		return
	}
	if body.Password == "" {
		utils.Message(w, http.StatusBadRequest, false, "Password is required")
		return
	}

	if err := h.svc.ResetPassword(r.Context(), token, body.Password); err != nil {
		writeError(w, r, err)
		return
	}

	utils.Message(w, http.StatusOK, true, "Password has been reset successfully")
}

// UpdatePasswordHandler runs behind the session middleware; the user id
// comes from the request context.
func (h *Handler) UpdatePasswordHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Message(w, http.StatusUnauthorized, false, "Unauthorized")
		return
	}

	var body struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.Message(w, http.StatusBadRequest, false, "Current and new password are required")
		return
	}

	if err := h.svc.UpdatePassword(r.Context(), userID, body.CurrentPassword, body.NewPassword); err != nil {
		writeError(w, r, err)
		return
	}

	utils.Message(w, http.StatusOK, true, "Password updated")
}
