package setup

import (
	"context"
	"log"

	"github.com/execwatch/execwatch/internal/database"
	"github.com/execwatch/execwatch/internal/setup/config"
	"github.com/execwatch/execwatch/internal/setup/telemetry"
	"go.uber.org/zap"
)

// App bundles all core dependencies needed by the application.
type App struct {
	Config *config.Config  // Application configuration
	Logger *zap.Logger     // Main application logger
	DB     database.Client // Database connection pool
}

// InitializeApp bootstraps all application dependencies in order, ensuring
// each component has its required dependencies available.
func InitializeApp(ctx context.Context) (*App, error) {
	// Load app configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	// Logging system is initialized next to capture setup issues
	logger, err := telemetry.NewLogger(&cfg.Debug)
	if err != nil {
		return nil, err
	}

	// Initialize database, running any pending migrations
	db, err := database.NewConnection(ctx, &cfg.PostgreSQL, logger.Named("database"), true)
	if err != nil {
		return nil, err
	}

	return &App{
		Config: cfg,
		Logger: logger,
		DB:     db,
	}, nil
}

// Cleanup ensures graceful shutdown of all components in reverse
// initialization order. Logs but does not fail on cleanup errors.
func (a *App) Cleanup() {
	if err := a.DB.Close(); err != nil {
		log.Printf("Failed to close database connection: %v", err)
	}

	if err := a.Logger.Sync(); err != nil {
		log.Printf("Failed to sync logger: %v", err)
	}
}
