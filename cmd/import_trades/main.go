package main

import (
	"context"
	"flag"
	"log"

	"tradejournal/config"
	"tradejournal/internal/adapters/binanceimport"
	"tradejournal/internal/adapters/logger"
	"tradejournal/internal/adapters/sqlite"
	"tradejournal/internal/app"
	"tradejournal/internal/utils"
)

// Imports trade records into the journal from a CSV export or from a
// Binance spot account's fill history. Records whose ID already exists in
// the journal are skipped.
func main() {
	csvPath := flag.String("csv", "", "path to a journal CSV export to import")
	symbol := flag.String("symbol", "", "Binance symbol to import fill history for (e.g. ETHUSDT)")
	flag.Parse()

	if *csvPath == "" && *symbol == "" {
		log.Fatal("Nothing to do: pass -csv <file> or -symbol <SYMBOL>")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	appLogger := logger.NewStdLogger(cfg.LogLevel)

	repo, err := sqlite.NewRepository(sqlite.Config{DBPath: cfg.DBPath, Logger: appLogger})
	if err != nil {
		log.Fatalf("Error opening journal: %v", err)
	}
	defer repo.Close()

	service, err := app.NewAnalyticsService(appLogger, repo, cfg.KellyPayoffRatio)
	if err != nil {
		log.Fatalf("Error creating service: %v", err)
	}
	ctx := context.Background()

	if *csvPath != "" {
		trades, err := utils.ReadTradesFromCSV(*csvPath)
		if err != nil {
			log.Fatalf("Error reading %s: %v", *csvPath, err)
		}
		inserted, err := repo.SaveAll(ctx, trades)
		if err != nil {
			log.Fatalf("Error saving trades: %v", err)
		}
		log.Printf("CSV import: %d record(s) read, %d new", len(trades), inserted)
	}

	if *symbol != "" {
		importer, err := binanceimport.New(binanceimport.Config{
			APIKey:     cfg.APIKey,
			SecretKey:  cfg.SecretKey,
			UseTestnet: cfg.IsTestnet,
			Logger:     appLogger,
		})
		if err != nil {
			log.Fatalf("Error creating Binance importer: %v", err)
		}
		inserted, err := service.ImportFrom(ctx, importer, *symbol)
		if err != nil {
			log.Fatalf("Error importing from Binance: %v", err)
		}
		log.Printf("Binance import: %d new trade(s) for %s", inserted, *symbol)
	}
}
