package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go-directory-app/internal/middleware"
	"go-directory-app/internal/service"

	"github.com/go-chi/chi/v5"
)

// respondJSON writes v as a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, code int, v interface{}) *middleware.AppError {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return &middleware.AppError{Error: err, Message: "failed to encode response", Code: http.StatusInternalServerError}
	}
	return nil
}

// decodeJSON reads the request body into dst.
func decodeJSON(r *http.Request, dst interface{}) *middleware.AppError {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &middleware.AppError{Error: err, Message: "invalid JSON body", Code: http.StatusBadRequest}
	}
	return nil
}

// idParam parses the {id} URL parameter.
func idParam(r *http.Request) (int64, *middleware.AppError) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &middleware.AppError{Error: err, Message: "invalid id", Code: http.StatusBadRequest}
	}
	return id, nil
}

// serviceError maps service-layer errors onto HTTP error responses.
// Validation detail is surfaced; unexpected errors are logged by the Error
// middleware and reported generically.
func serviceError(err error, notFoundMsg string) *middleware.AppError {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return &middleware.AppError{Error: err, Message: "validation failed", Code: http.StatusBadRequest, Fields: verr.Fields}
	case errors.Is(err, service.ErrNotFound):
		return &middleware.AppError{Error: err, Message: notFoundMsg, Code: http.StatusNotFound}
	case errors.Is(err, service.ErrConflict):
		return &middleware.AppError{Error: err, Message: "conflict with a concurrent change", Code: http.StatusConflict}
	default:
		return &middleware.AppError{Error: err, Message: "internal server error", Code: http.StatusInternalServerError}
	}
}

// actor returns the acting subject for audit attribution.
func actor(r *http.Request) string {
	return middleware.GetUserInfo(r.Context()).Subject
}
