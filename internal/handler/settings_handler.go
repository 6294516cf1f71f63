package handler

import (
	"net/http"

	"go-directory-app/internal/logger"
	"go-directory-app/internal/middleware"
	"go-directory-app/internal/service"
)

// SettingsHandler holds the dependencies for the site settings endpoints.
type SettingsHandler struct {
	settings *service.SettingsService
	log      logger.Logger
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settings *service.SettingsService, log logger.Logger) *SettingsHandler {
	return &SettingsHandler{settings: settings, log: log}
}

// getPublic handles GET /site-settings. The long-copy markdown fields are
// returned rendered to sanitized HTML alongside the raw source.
func (h *SettingsHandler) getPublic(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	settings, err := h.settings.GetRendered(r.Context())
	if err != nil {
		return serviceError(err, "settings unavailable")
	}
	return respondJSON(w, http.StatusOK, settings)
}

// getAdmin handles GET /admin/settings.
func (h *SettingsHandler) getAdmin(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	settings, err := h.settings.Get(r.Context())
	if err != nil {
		return serviceError(err, "settings unavailable")
	}
	return respondJSON(w, http.StatusOK, settings)
}

// update handles PUT /admin/settings.
func (h *SettingsHandler) update(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var input service.UpdateSettingsInput
	if appErr := decodeJSON(r, &input); appErr != nil {
		return appErr
	}
	settings, err := h.settings.Update(r.Context(), input, actor(r))
	if err != nil {
		return serviceError(err, "settings unavailable")
	}
	return respondJSON(w, http.StatusOK, settings)
}
