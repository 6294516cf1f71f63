package handler

import (
	"net/http"
	"strconv"

	"go-directory-app/internal/logger"
	"go-directory-app/internal/middleware"
	"go-directory-app/internal/service"

	"github.com/go-chi/chi/v5"
)

// BusinessHandler holds the dependencies for the business endpoints.
type BusinessHandler struct {
	businesses *service.BusinessService
	log        logger.Logger
}

// NewBusinessHandler creates a new BusinessHandler.
func NewBusinessHandler(businesses *service.BusinessService, log logger.Logger) *BusinessHandler {
	return &BusinessHandler{businesses: businesses, log: log}
}

// listPublic handles GET /businesses.
func (h *BusinessHandler) listPublic(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	businesses, err := h.businesses.ListPublic(r.Context())
	if err != nil {
		return serviceError(err, "businesses unavailable")
	}
	return respondJSON(w, http.StatusOK, businesses)
}

// listAdmin handles GET /admin/businesses.
func (h *BusinessHandler) listAdmin(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	businesses, err := h.businesses.ListAll(r.Context())
	if err != nil {
		return serviceError(err, "businesses unavailable")
	}
	return respondJSON(w, http.StatusOK, businesses)
}

// listFeatured handles GET /businesses/featured.
func (h *BusinessHandler) listFeatured(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	businesses, err := h.businesses.ListFeatured(r.Context())
	if err != nil {
		return serviceError(err, "businesses unavailable")
	}
	return respondJSON(w, http.StatusOK, businesses)
}

// search handles GET /businesses/search?q=.
func (h *BusinessHandler) search(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	businesses, err := h.businesses.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		return serviceError(err, "businesses unavailable")
	}
	return respondJSON(w, http.StatusOK, businesses)
}

// listByCategory handles GET /businesses/category/{categoryId}.
func (h *BusinessHandler) listByCategory(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	categoryID, err := strconv.ParseInt(chi.URLParam(r, "categoryId"), 10, 64)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "invalid category id", Code: http.StatusBadRequest}
	}
	businesses, svcErr := h.businesses.ListByCategory(r.Context(), categoryID)
	if svcErr != nil {
		return serviceError(svcErr, "businesses unavailable")
	}
	return respondJSON(w, http.StatusOK, businesses)
}

// get handles GET /businesses/{id}. Inactive and orphaned businesses are
// still returned here.
func (h *BusinessHandler) get(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := idParam(r)
	if appErr != nil {
		return appErr
	}
	business, err := h.businesses.GetByID(r.Context(), id)
	if err != nil {
		return serviceError(err, "business not found")
	}
	return respondJSON(w, http.StatusOK, business)
}

// create handles POST /businesses.
func (h *BusinessHandler) create(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var input service.CreateBusinessInput
	if appErr := decodeJSON(r, &input); appErr != nil {
		return appErr
	}
	business, err := h.businesses.Create(r.Context(), input, actor(r))
	if err != nil {
		return serviceError(err, "business not found")
	}
	return respondJSON(w, http.StatusCreated, business)
}

// update handles PATCH /businesses/{id}.
func (h *BusinessHandler) update(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := idParam(r)
	if appErr != nil {
		return appErr
	}
	var input service.UpdateBusinessInput
	if appErr := decodeJSON(r, &input); appErr != nil {
		return appErr
	}
	business, err := h.businesses.Update(r.Context(), id, input, actor(r))
	if err != nil {
		return serviceError(err, "business not found")
	}
	return respondJSON(w, http.StatusOK, business)
}

// delete handles DELETE /businesses/{id}.
func (h *BusinessHandler) delete(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := idParam(r)
	if appErr != nil {
		return appErr
	}
	if err := h.businesses.Delete(r.Context(), id, actor(r)); err != nil {
		return serviceError(err, "business not found")
	}
	return respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
