package handler

import (
	"net/http"
	"strconv"

	"go-directory-app/internal/middleware"
	"go-directory-app/internal/service"
)

// AuditHandler exposes the admin activity trail.
type AuditHandler struct {
	audit *service.AuditLogger
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(audit *service.AuditLogger) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// list handles GET /admin/audit-log.
func (h *AuditHandler) list(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := h.audit.Recent(r.Context(), limit)
	if err != nil {
		return serviceError(err, "audit log unavailable")
	}
	return respondJSON(w, http.StatusOK, entries)
}
