package handler

import (
	"net/http"

	"go-directory-app/internal/logger"
	"go-directory-app/internal/middleware"
	"go-directory-app/internal/service"

	"github.com/go-chi/chi/v5"
)

// CategoryHandler holds the dependencies for the category endpoints.
type CategoryHandler struct {
	categories *service.CategoryService
	businesses *service.BusinessService
	log        logger.Logger
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categories *service.CategoryService, businesses *service.BusinessService, log logger.Logger) *CategoryHandler {
	return &CategoryHandler{categories: categories, businesses: businesses, log: log}
}

// listPublic handles GET /categories.
func (h *CategoryHandler) listPublic(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	categories, err := h.categories.ListPublic(r.Context())
	if err != nil {
		return serviceError(err, "categories unavailable")
	}
	return respondJSON(w, http.StatusOK, categories)
}

// listAdmin handles GET /admin/categories.
func (h *CategoryHandler) listAdmin(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	categories, err := h.categories.ListAll(r.Context())
	if err != nil {
		return serviceError(err, "categories unavailable")
	}
	return respondJSON(w, http.StatusOK, categories)
}

// getBySlug handles GET /categories/{slug}.
func (h *CategoryHandler) getBySlug(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	category, err := h.categories.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		return serviceError(err, "category not found")
	}
	return respondJSON(w, http.StatusOK, category)
}

// listBusinesses handles GET /categories/{slug}/businesses.
func (h *CategoryHandler) listBusinesses(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	category, err := h.categories.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		return serviceError(err, "category not found")
	}
	businesses, err := h.businesses.ListByCategory(r.Context(), category.ID)
	if err != nil {
		return serviceError(err, "businesses unavailable")
	}
	return respondJSON(w, http.StatusOK, businesses)
}

// create handles POST /categories.
func (h *CategoryHandler) create(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var input service.CreateCategoryInput
	if appErr := decodeJSON(r, &input); appErr != nil {
		return appErr
	}
	category, err := h.categories.Create(r.Context(), input, actor(r))
	if err != nil {
		return serviceError(err, "category not found")
	}
	return respondJSON(w, http.StatusCreated, category)
}

// update handles PATCH /categories/{id}.
func (h *CategoryHandler) update(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := idParam(r)
	if appErr != nil {
		return appErr
	}
	var input service.UpdateCategoryInput
	if appErr := decodeJSON(r, &input); appErr != nil {
		return appErr
	}
	category, err := h.categories.Update(r.Context(), id, input, actor(r))
	if err != nil {
		return serviceError(err, "category not found")
	}
	return respondJSON(w, http.StatusOK, category)
}

// delete handles DELETE /categories/{id}.
func (h *CategoryHandler) delete(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := idParam(r)
	if appErr != nil {
		return appErr
	}
	if err := h.categories.Delete(r.Context(), id, actor(r)); err != nil {
		return serviceError(err, "category not found")
	}
	return respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
