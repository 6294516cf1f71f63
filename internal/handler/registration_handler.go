package handler

import (
	"net/http"

	"go-directory-app/internal/logger"
	"go-directory-app/internal/middleware"
	"go-directory-app/internal/service"
)

// RegistrationHandler holds the dependencies for the registration endpoints.
type RegistrationHandler struct {
	registrations *service.RegistrationService
	log           logger.Logger
}

// NewRegistrationHandler creates a new RegistrationHandler.
func NewRegistrationHandler(registrations *service.RegistrationService, log logger.Logger) *RegistrationHandler {
	return &RegistrationHandler{registrations: registrations, log: log}
}

// submit handles POST /business-registrations, the public submission form.
func (h *RegistrationHandler) submit(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var input service.SubmitRegistrationInput
	if appErr := decodeJSON(r, &input); appErr != nil {
		return appErr
	}
	registration, err := h.registrations.Submit(r.Context(), input)
	if err != nil {
		return serviceError(err, "registration not found")
	}
	return respondJSON(w, http.StatusCreated, registration)
}

// list handles GET /admin/business-registrations.
func (h *RegistrationHandler) list(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	registrations, err := h.registrations.List(r.Context())
	if err != nil {
		return serviceError(err, "registrations unavailable")
	}
	return respondJSON(w, http.StatusOK, registrations)
}

// update handles PATCH /admin/submissions/{id}. A body marking the
// submission approved ({"processed": true} or {"status": "approved"}) runs
// the promotion workflow; anything else is a plain field edit.
func (h *RegistrationHandler) update(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := idParam(r)
	if appErr != nil {
		return appErr
	}
	var input service.UpdateRegistrationInput
	if appErr := decodeJSON(r, &input); appErr != nil {
		return appErr
	}

	if input.WantsPromotion() {
		business, err := h.registrations.Promote(r.Context(), id, actor(r))
		if err != nil {
			return serviceError(err, "registration not found")
		}
		// The distinguished published response tells the caller to
		// refresh both the registration and business lists.
		return respondJSON(w, http.StatusOK, map[string]interface{}{
			"published": true,
			"business":  business,
		})
	}

	registration, err := h.registrations.Update(r.Context(), id, input, actor(r))
	if err != nil {
		return serviceError(err, "registration not found")
	}
	return respondJSON(w, http.StatusOK, registration)
}

// delete handles DELETE /admin/submissions/{id}.
func (h *RegistrationHandler) delete(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := idParam(r)
	if appErr != nil {
		return appErr
	}
	if err := h.registrations.Delete(r.Context(), id, actor(r)); err != nil {
		return serviceError(err, "registration not found")
	}
	return respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
