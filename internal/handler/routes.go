package handler

import (
	"net/http"

	appmiddleware "go-directory-app/internal/middleware"
	"go-directory-app/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Handlers bundles every endpoint handler the router mounts.
type Handlers struct {
	Categories    *CategoryHandler
	Businesses    *BusinessHandler
	Registrations *RegistrationHandler
	Settings      *SettingsHandler
	Upload        *UploadHandler
	Auth          *AuthHandler
	Audit         *AuditHandler
}

// NewRouter creates and configures a new chi router. Every route passes
// through the session loader and the casbin authorizer; the admin surface is
// gated by seeded policies rather than separate route groups.
func NewRouter(h Handlers, authzMiddleware func(http.Handler) http.Handler, errs func(appmiddleware.AppHandler) http.Handler, sessionManager session.Manager, uploadsDir string) *chi.Mux {
	r := chi.NewRouter()

	// A good base middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(sessionManager.LoadAndSave)
	r.Use(authzMiddleware)

	// Authentication
	r.Method(http.MethodPost, "/auth/login", errs(h.Auth.login))
	r.Method(http.MethodPost, "/auth/logout", errs(h.Auth.logout))

	// Categories
	r.Method(http.MethodGet, "/categories", errs(h.Categories.listPublic))
	r.Method(http.MethodPost, "/categories", errs(h.Categories.create))
	r.Method(http.MethodGet, "/categories/{slug}", errs(h.Categories.getBySlug))
	r.Method(http.MethodGet, "/categories/{slug}/businesses", errs(h.Categories.listBusinesses))
	r.Method(http.MethodPatch, "/categories/{id}", errs(h.Categories.update))
	r.Method(http.MethodDelete, "/categories/{id}", errs(h.Categories.delete))

	// Businesses
	r.Method(http.MethodGet, "/businesses", errs(h.Businesses.listPublic))
	r.Method(http.MethodPost, "/businesses", errs(h.Businesses.create))
	r.Method(http.MethodGet, "/businesses/featured", errs(h.Businesses.listFeatured))
	r.Method(http.MethodGet, "/businesses/search", errs(h.Businesses.search))
	r.Method(http.MethodGet, "/businesses/category/{categoryId}", errs(h.Businesses.listByCategory))
	r.Method(http.MethodGet, "/businesses/{id}", errs(h.Businesses.get))
	r.Method(http.MethodPatch, "/businesses/{id}", errs(h.Businesses.update))
	r.Method(http.MethodDelete, "/businesses/{id}", errs(h.Businesses.delete))

	// Registrations (public submission + admin review queue)
	r.Method(http.MethodPost, "/business-registrations", errs(h.Registrations.submit))
	r.Method(http.MethodGet, "/admin/business-registrations", errs(h.Registrations.list))
	r.Method(http.MethodPatch, "/admin/submissions/{id}", errs(h.Registrations.update))
	r.Method(http.MethodDelete, "/admin/submissions/{id}", errs(h.Registrations.delete))

	// Admin listings and settings
	r.Method(http.MethodGet, "/admin/categories", errs(h.Categories.listAdmin))
	r.Method(http.MethodGet, "/admin/businesses", errs(h.Businesses.listAdmin))
	r.Method(http.MethodGet, "/admin/settings", errs(h.Settings.getAdmin))
	r.Method(http.MethodPut, "/admin/settings", errs(h.Settings.update))
	r.Method(http.MethodGet, "/admin/audit-log", errs(h.Audit.list))

	// Site settings (public)
	r.Method(http.MethodGet, "/site-settings", errs(h.Settings.getPublic))

	// Uploads
	r.Method(http.MethodPost, "/upload", errs(h.Upload.upload))
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir))))

	return r
}
