package config

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var logFormats = []string{"json", "text"}

// Load reads the first env file found among envFilePath (or .env) and then
// processes the environment into an App.
func Load(envFilePath ...string) (*App, error) {
	logger := slog.Default()
	logger.Info("Loading environment variables")

	if len(envFilePath) == 0 {
		logger.Debug("No environment file specified, trying default .env")
		if err := godotenv.Load(); err != nil {
			logger.Warn("No .env file found in current directory")
		}
		return loadFromEnv()
	}

	for _, path := range envFilePath {
		logger.Debug("Looking for environment file", "path", path)
		foundPath, err := FindEnvTest(path)
		if err != nil {
			logger.Debug("Environment file not found", "path", path, "error", err)
			continue
		}

		logger.Info("Loading environment from file", "path", foundPath)
		if err := godotenv.Load(foundPath); err != nil {
			logger.Error("Failed to load environment file", "path", foundPath, "error", err)
			continue
		}
		return loadFromEnv()
	}

	logger.Info("No valid environment files found, using default .env")
	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file found in current directory")
	}
	return loadFromEnv()
}

func loadFromEnv() (*App, error) {
	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	slog.Default().Info("App config loaded",
		"env", cfg.Env,
		"branch", cfg.Branch,
		"server_port", cfg.Server.Port,
		"rate_limit_max_requests", cfg.RateLimit.MaxRequests,
		"rate_limit_window", cfg.RateLimit.Window,
		"withdrawal_limit", cfg.Limits.WithdrawalAmount.String(),
		"daily_withdrawals", cfg.Limits.DailyWithdrawals,
		"daily_transactions", cfg.Limits.DailyTransactions,
		"event_bus", cfg.EventBus.Driver,
	)
	return &cfg, nil
}

func (c *App) validate() error {
	if err := c.Limits.Account().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if !slices.Contains(logFormats, c.Log.Format) {
		return fmt.Errorf("config: LOG_FORMAT must be one of %v, got %q", logFormats, c.Log.Format)
	}
	if c.Branch == "" {
		return fmt.Errorf("config: BRANCH must not be empty")
	}
	return nil
}
