package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-directory-app/internal/auth"
	"go-directory-app/internal/cache"
	"go-directory-app/internal/config"
	"go-directory-app/internal/data"
	"go-directory-app/internal/handler"
	"go-directory-app/internal/logger"
	"go-directory-app/internal/middleware"
	"go-directory-app/internal/service"

	"github.com/alexedwards/scs/mysqlstore"
	"github.com/alexedwards/scs/v2"
)

func main() {
	// --- Configuration Loading ---
	cfg, err := config.LoadConfig()
	if err != nil {
		// Use fmt.Printf here because the logger is not yet initialized.
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger Initialization ---
	log := logger.New(cfg.Log, os.Stdout)

	// --- Pre-flight Checks ---
	if cfg.Directory.AdminPassword == "" {
		log.Warn("DIR_DIRECTORY_ADMIN_PASSWORD is not set; admin login is disabled.")
	}

	// --- Database Initialization and Migration ---
	log.Info("Applying database migrations...")
	if err := data.ApplyMigrations(cfg.DB.DSN, "migrations"); err != nil {
		log.Fatal(err, "Failed to apply migrations")
	}
	log.Info("Migrations applied successfully.")

	log.Info("Connecting to the database...")
	db, err := data.NewDB(cfg.DB.DSN)
	if err != nil {
		log.Fatal(err, "Failed to connect to database")
	}
	defer db.Close()
	log.Info("Database connection successful.")

	// --- Session Management Setup ---
	sessionManager := scs.New()
	sessionManager.Store = mysqlstore.New(db.DB)
	sessionManager.Lifetime = time.Duration(cfg.Session.Lifetime) * time.Hour
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	sessionManager.Cookie.Secure = cfg.Server.TLS.Enabled

	// --- Authorization Setup ---
	log.Info("Initializing authorization...")
	enforcer, err := auth.NewEnforcer("mysql", cfg.DB.DSN, "auth_model.conf")
	if err != nil {
		log.Fatal(err, "Failed to initialize enforcer")
	}
	auth.SeedDefaultPolicies(enforcer, log)
	log.Info("Authorization initialized and policies seeded.")

	// --- Cache Initialization ---
	log.Info("Initializing SQLite listing cache...")
	listingCache, err := cache.New(cfg.Cache)
	if err != nil {
		log.Fatal(err, "Failed to initialize cache")
	}
	defer listingCache.Close()
	log.Info("Cache initialized.")

	// --- Dependency Injection and Handler Initialization ---
	// Initialize the application layers, injecting dependencies from top to bottom.
	categoryRepository := data.NewCategoryRepository(db)
	businessRepository := data.NewBusinessRepository(db)
	registrationRepository := data.NewRegistrationRepository(db)
	settingsRepository := data.NewSettingsRepository(db)
	auditRepository := data.NewAuditRepository(db)

	auditLogger := service.NewAuditLogger(auditRepository, log)
	categoryService := service.NewCategoryService(categoryRepository, auditLogger, listingCache)
	businessService := service.NewBusinessService(businessRepository, categoryRepository, auditLogger, listingCache, cfg.Directory.FeaturedLimit)
	registrationService := service.NewRegistrationService(registrationRepository, categoryRepository, auditLogger, businessService.InvalidateFeatured)
	settingsService := service.NewSettingsService(settingsRepository, auditLogger)

	handlers := handler.Handlers{
		Categories:    handler.NewCategoryHandler(categoryService, businessService, log),
		Businesses:    handler.NewBusinessHandler(businessService, log),
		Registrations: handler.NewRegistrationHandler(registrationService, log),
		Settings:      handler.NewSettingsHandler(settingsService, log),
		Upload:        handler.NewUploadHandler(cfg.Uploads, log),
		Auth:          handler.NewAuthHandler(sessionManager, cfg.Directory.AdminPassword, log),
		Audit:         handler.NewAuditHandler(auditLogger),
	}

	authzMiddleware := middleware.Authorizer(enforcer, sessionManager)
	errorMiddleware := middleware.Error(log)

	// --- Router Setup ---
	router := handler.NewRouter(handlers, authzMiddleware, errorMiddleware, sessionManager, cfg.Uploads.Dir)

	// --- Server Initialization and Graceful Shutdown ---
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}
	go func() {
		if cfg.Server.TLS.Enabled {
			log.Info(fmt.Sprintf("Starting HTTPS server on %s", server.Addr))
			if err := server.ListenAndServeTLS(cfg.Server.TLS.CertFile, cfg.Server.TLS.KeyFile); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal(err, "Could not start HTTPS server")
			}
		} else {
			log.Info(fmt.Sprintf("Starting HTTP server on %s", server.Addr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal(err, "Could not start HTTP server")
			}
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Warn("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err, "Server forced to shutdown")
	}
	log.Info("Server exiting")
}
