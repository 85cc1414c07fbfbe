// Command seed populates the database with demo data or imports budgets from
// the configured Google Sheets workbook.
package main

import (
	"context"
	"flag"
	"time"

	"go.uber.org/zap"

	"github.com/harborview/venue-metrics/internal/config"
	"github.com/harborview/venue-metrics/internal/repository/mongodb"
	"github.com/harborview/venue-metrics/internal/repository/sheets"
	"github.com/harborview/venue-metrics/internal/seeder"
	"github.com/harborview/venue-metrics/pkg/logger"
)

// Holidays and weather closures carried in the demo data set.
var daysClosed = map[string]bool{
	"2024-12-25": true,
	"2025-12-25": true,
	"2024-11-28": true,
	"2025-11-27": true,
	"2024-02-02": true,
	"2025-01-17": true,
}

func main() {
	var (
		startYear  = flag.Int("start-year", 2024, "first year of demo data")
		endYear    = flag.Int("end-year", 2025, "last year of demo data")
		randomSeed = flag.Int64("seed", 1, "random seed for the demo data stream")
		importOnly = flag.Bool("import-budgets", false, "import budgets from the configured spreadsheet instead of seeding demo data")
		envFile    = flag.String("env", "", "optional env file to load configuration from")
	)
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	store, err := mongodb.NewStore(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName, baseLogger.Named("repo.mongodb"))
	if err != nil {
		baseLogger.Fatal("failed to init mongodb store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	if err := store.EnsureIndexes(ctx); err != nil {
		baseLogger.Fatal("failed to ensure indexes", zap.Error(err))
	}

	if *importOnly {
		if !cfg.SheetsEnabled() {
			baseLogger.Fatal("sheets import requested but not configured")
		}
		importer, err := sheets.NewBudgetImporter(ctx, cfg.Sheets, store.Budgets(), baseLogger)
		if err != nil {
			baseLogger.Fatal("failed to init budget importer", zap.Error(err))
		}
		imported, err := importer.Import(ctx)
		if err != nil {
			baseLogger.Fatal("budget import failed", zap.Error(err))
		}
		baseLogger.Info("budget import complete", zap.Int("imported", imported))
		return
	}

	start := time.Date(*startYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(*endYear, time.December, 31, 0, 0, 0, 0, time.UTC)

	s := seeder.New(store.MenuItems(), store.Restaurants(), store.Events(), store.Budgets(), *randomSeed, baseLogger)
	if err := s.Run(ctx, start, end, daysClosed); err != nil {
		baseLogger.Fatal("seeding failed", zap.Error(err))
	}
	baseLogger.Info("seeding complete")
}
