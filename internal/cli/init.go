// Package cli provides common initialization for the smartfinance binary:
// logging, .env loading, configuration and the session store.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"smartfinance/internal/config"
	"smartfinance/internal/session"
)

// SetupLogger initializes structured logging with default settings.
// Returns the configured logger and sets it as the default logger.
func SetupLogger() *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *slog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// InitSessionStore opens the durable credential store at the given
// path. Returns the store or exits the process on failure.
func InitSessionStore(logger *slog.Logger, dbPath string) *session.Store {
	store, err := session.NewStore(dbPath)
	if err != nil {
		logger.Error("Failed to initialize session store", "error", err, "path", dbPath)
		os.Exit(1)
	}
	return store
}
