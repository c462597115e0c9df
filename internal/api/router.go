package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/frankenpanel/frankenpanel/internal/api/handler"
	"github.com/frankenpanel/frankenpanel/internal/api/middleware"
	"github.com/frankenpanel/frankenpanel/internal/services/auth"
	"github.com/frankenpanel/frankenpanel/internal/services/panel"
	"github.com/frankenpanel/frankenpanel/internal/storage"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger       *slog.Logger
	AuthService  *auth.Service
	PanelService *panel.Service
	Storage      storage.Storage
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	siteHandler := handler.NewSiteHandler(cfg.PanelService, cfg.Storage)
	resourceHandler := handler.NewResourceHandler(cfg.PanelService, cfg.Storage)
	userHandler := handler.NewUserHandler(cfg.AuthService, cfg.Storage)
	auditHandler := handler.NewAuditHandler(cfg.Storage)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	superuserMiddleware := middleware.RequireSuperuser
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Login is the only auth route reachable without a session
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	// Protected auth routes
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(authMiddleware)
	authProtected.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", authHandler.Me).Methods(http.MethodGet)

	// Site routes (all require auth)
	sites := api.PathPrefix("/sites").Subrouter()
	sites.Use(authMiddleware)
	sites.HandleFunc("", siteHandler.List).Methods(http.MethodGet)
	sites.HandleFunc("", siteHandler.Create).Methods(http.MethodPost)
	sites.HandleFunc("/{id}", siteHandler.Get).Methods(http.MethodGet)
	sites.HandleFunc("/{id}", siteHandler.Update).Methods(http.MethodPut)
	sites.HandleFunc("/{id}", siteHandler.Delete).Methods(http.MethodDelete)
	sites.HandleFunc("/{id}/start", siteHandler.Start).Methods(http.MethodPost)
	sites.HandleFunc("/{id}/stop", siteHandler.Stop).Methods(http.MethodPost)

	// Database routes
	databases := api.PathPrefix("/databases").Subrouter()
	databases.Use(authMiddleware)
	databases.HandleFunc("", resourceHandler.ListDatabases).Methods(http.MethodGet)
	databases.HandleFunc("", resourceHandler.CreateDatabase).Methods(http.MethodPost)
	databases.HandleFunc("/{id}", resourceHandler.DeleteDatabase).Methods(http.MethodDelete)

	// Domain routes
	domains := api.PathPrefix("/domains").Subrouter()
	domains.Use(authMiddleware)
	domains.HandleFunc("", resourceHandler.ListDomains).Methods(http.MethodGet)
	domains.HandleFunc("", resourceHandler.CreateDomain).Methods(http.MethodPost)
	domains.HandleFunc("/{id}", resourceHandler.DeleteDomain).Methods(http.MethodDelete)

	// Backup routes
	backups := api.PathPrefix("/backups").Subrouter()
	backups.Use(authMiddleware)
	backups.HandleFunc("", resourceHandler.ListBackups).Methods(http.MethodGet)
	backups.HandleFunc("", resourceHandler.CreateBackup).Methods(http.MethodPost)
	backups.HandleFunc("/{id}/restore", resourceHandler.RestoreBackup).Methods(http.MethodPost)
	backups.HandleFunc("/{id}", resourceHandler.DeleteBackup).Methods(http.MethodDelete)

	// User routes (superuser only)
	users := api.PathPrefix("/users").Subrouter()
	users.Use(authMiddleware)
	users.Use(superuserMiddleware)
	users.HandleFunc("", userHandler.List).Methods(http.MethodGet)
	users.HandleFunc("", userHandler.Create).Methods(http.MethodPost)
	users.HandleFunc("/{id}", userHandler.Get).Methods(http.MethodGet)
	users.HandleFunc("/{id}", userHandler.Delete).Methods(http.MethodDelete)

	// Audit log (superuser only)
	audit := api.PathPrefix("/audit").Subrouter()
	audit.Use(authMiddleware)
	audit.Use(superuserMiddleware)
	audit.HandleFunc("", auditHandler.List).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
