package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go-directory-app/internal/logger"
)

// AppError represents a custom error type for the application.
type AppError struct {
	Error   error
	Message string
	Code    int
	// Fields optionally carries field-level validation detail.
	Fields map[string]string
}

// AppHandler is a custom handler function type that returns an AppError.
type AppHandler func(http.ResponseWriter, *http.Request) *AppError

// Error is a middleware that converts handler errors into JSON error
// responses. The underlying error is logged but never written to the client.
func Error(log logger.Logger) func(AppHandler) http.Handler {
	return func(next AppHandler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					err, ok := rec.(error)
					if !ok {
						err = fmt.Errorf("%v", rec)
					}
					log.Error(err, "Panic recovered")
					writeError(w, &AppError{Message: "internal server error", Code: http.StatusInternalServerError})
				}
			}()

			if appErr := next(w, r); appErr != nil {
				log.Error(appErr.Error, appErr.Message)
				writeError(w, appErr)
			}
		})
	}
}

func writeError(w http.ResponseWriter, appErr *AppError) {
	body := map[string]interface{}{"error": appErr.Message}
	if len(appErr.Fields) > 0 {
		body["fields"] = appErr.Fields
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Code)
	_ = json.NewEncoder(w).Encode(body)
}
