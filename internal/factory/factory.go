package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/frankenpanel/frankenpanel/internal/dependencies/clock"
	"github.com/frankenpanel/frankenpanel/internal/services/auth"
	"github.com/frankenpanel/frankenpanel/internal/services/panel"
	"github.com/frankenpanel/frankenpanel/internal/storage"
	"github.com/frankenpanel/frankenpanel/internal/storage/memory"
	redisstorage "github.com/frankenpanel/frankenpanel/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// Default credentials seeded into an empty control plane.
// Operators are expected to change these immediately.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "changeme"
	DefaultAdminEmail    = "admin@frankenpanel.local"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Services
	AuthService  *auth.Service
	PanelService *panel.Service
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clock.New()

	// Use default auth config if not provided
	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	return newWithDependencies(store, clk, authCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, authCfg auth.Config, logger *slog.Logger) *App {
	authService := auth.New(store, clk, authCfg, logger)
	panelService := panel.New(store, clk, logger)

	return &App{
		Storage:      store,
		Clock:        clk,
		AuthService:  authService,
		PanelService: panelService,
	}
}

// SeedAdmin creates the default superuser account if no users exist yet
func (a *App) SeedAdmin(ctx context.Context, logger *slog.Logger) error {
	count, err := a.Storage.CountUsers(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if _, err := a.AuthService.CreateUser(ctx, DefaultAdminUsername, DefaultAdminPassword, DefaultAdminEmail, "Administrator", true); err != nil {
		return err
	}

	logger.Warn("seeded default admin account, change the password",
		slog.String("username", DefaultAdminUsername))
	return nil
}
