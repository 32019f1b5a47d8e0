package main

import (
	"context"
	"encoding/json"
	"log" // Use standard log only for initial fatal errors before logger is set up
	"os"
	"time"

	"tradejournal/config"
	"tradejournal/internal/adapters/logger"
	"tradejournal/internal/adapters/sqlite"
	"tradejournal/internal/app"
)

// Prints the full analytics report for the stored journal as JSON, for
// consumption by a dashboard or further tooling. See cmd/report for the
// human-readable rendering.
func main() {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	// 2. Initialize Logger
	appLogger := logger.NewStdLogger(cfg.LogLevel)
	appLogger.Info(context.Background(), "Logger initialized", map[string]interface{}{"level": cfg.LogLevel.String()})

	// 3. Initialize Repository (Database Adapter)
	repo, err := sqlite.NewRepository(sqlite.Config{
		DBPath: cfg.DBPath,
		Logger: appLogger,
	})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize journal repository: %v", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			appLogger.Error(context.Background(), err, "Error closing journal repository")
		}
	}()

	// 4. Build and emit the report
	service, err := app.NewAnalyticsService(appLogger, repo, cfg.KellyPayoffRatio)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize analytics service: %v", err)
	}

	report, err := service.BuildReport(context.Background(), time.Now())
	if err != nil {
		appLogger.Error(context.Background(), err, "Failed to build analytics report")
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		appLogger.Error(context.Background(), err, "Failed to encode analytics report")
		os.Exit(1)
	}
}
