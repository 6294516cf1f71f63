package handler

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"go-directory-app/internal/logger"
	"go-directory-app/internal/middleware"
	"go-directory-app/internal/session"
)

// AuthHandler implements the admin login gate. There is a single shared
// admin password; a successful login stores the "admin" subject in the
// session, which the authorization middleware maps onto the admin role.
type AuthHandler struct {
	sessions      session.Manager
	adminPassword string
	log           logger.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(sessions session.Manager, adminPassword string, log logger.Logger) *AuthHandler {
	return &AuthHandler{sessions: sessions, adminPassword: adminPassword, log: log}
}

type loginRequest struct {
	Password string `json:"password"`
}

// login handles POST /auth/login.
func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if h.adminPassword == "" {
		return &middleware.AppError{
			Error:   errors.New("admin password not configured"),
			Message: "admin login is disabled",
			Code:    http.StatusServiceUnavailable,
		}
	}

	var req loginRequest
	if appErr := decodeJSON(r, &req); appErr != nil {
		return appErr
	}
	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.adminPassword)) != 1 {
		return &middleware.AppError{
			Error:   errors.New("bad admin password"),
			Message: "invalid credentials",
			Code:    http.StatusUnauthorized,
		}
	}

	// Renew the token on privilege change to prevent session fixation.
	if err := h.sessions.RenewToken(r.Context()); err != nil {
		return &middleware.AppError{Error: err, Message: "failed to start session", Code: http.StatusInternalServerError}
	}
	h.sessions.Put(r.Context(), "user_subject", "admin")

	return respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// logout handles POST /auth/logout.
func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if err := h.sessions.Destroy(r.Context()); err != nil {
		return &middleware.AppError{Error: err, Message: "failed to end session", Code: http.StatusInternalServerError}
	}
	return respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
