package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"tradejournal/internal/adapters/logger" // Import the logger package for LogLevel
)

// Config holds all application configuration.
type Config struct {
	// Database
	DBPath string

	// Journal defaults
	BaseCurrency string // Display currency symbol for report output

	// Analytics Parameters
	KellyPayoffRatio float64 // Assumed win/loss ratio for Kelly sizing (e.g., 1.5)

	// Binance import (optional; only needed for exchange history import)
	APIKey    string
	SecretKey string
	IsTestnet bool

	// Logging
	LogLevel logger.LogLevel // Use the LogLevel type from the logger adapter
}

// LoadConfig loads configuration from environment variables (.env file).
func LoadConfig() (*Config, error) {
	// Load .env file, but don't fail if it doesn't exist (allow pure env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	var err error
	var errs []string // Collect validation errors

	// Database
	cfg.DBPath = getEnv("DB_PATH", "./data/journal.db")
	if cfg.DBPath == "" {
		errs = append(errs, "DB_PATH must be set")
	}

	// Journal defaults
	cfg.BaseCurrency = getEnv("BASE_CURRENCY", "$")

	// Analytics parameters
	cfg.KellyPayoffRatio, err = getEnvAsFloatRequired("KELLY_PAYOFF_RATIO", 1.5)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid KELLY_PAYOFF_RATIO: %v", err))
	} else if cfg.KellyPayoffRatio <= 0 {
		errs = append(errs, "KELLY_PAYOFF_RATIO must be positive")
	}

	// Binance import. Keys stay optional: the journal works without an
	// exchange connection, import commands validate their own needs.
	cfg.APIKey = getEnv("BINANCE_API_KEY", "")
	cfg.SecretKey = getEnv("BINANCE_API_SECRET", "")
	cfg.IsTestnet = getEnvAsBool("IS_TESTNET", true) // Default to testnet for safety

	// Logging
	logLevelStr := getEnv("LOG_LEVEL", "INFO")
	cfg.LogLevel = logger.ParseLevel(logLevelStr) // Use the parser from the logger package

	// Combine validation errors
	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}

	return cfg, nil
}

// --- Env Var Helpers ---

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsFloatRequired(key string, defaultValue float64) (float64, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float value '%s' for key %s: %w", valueStr, key, err)
	}
	return value, nil
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
