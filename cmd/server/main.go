package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/harborview/venue-metrics/internal/config"
	"github.com/harborview/venue-metrics/internal/repository/mongodb"
	"github.com/harborview/venue-metrics/internal/repository/sheets"
	"github.com/harborview/venue-metrics/internal/scheduler"
	"github.com/harborview/venue-metrics/internal/server/handlers"
	"github.com/harborview/venue-metrics/internal/server/router"
	"github.com/harborview/venue-metrics/internal/service/metrics"
	"github.com/harborview/venue-metrics/pkg/clients/notify"
	"github.com/harborview/venue-metrics/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store, err := mongodb.NewStore(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName, baseLogger.Named("repo.mongodb"))
	if err != nil {
		baseLogger.Fatal("failed to init mongodb store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	if err := store.EnsureIndexes(context.Background()); err != nil {
		baseLogger.Fatal("failed to ensure indexes", zap.Error(err))
	}

	metricsSvc := metrics.NewService(store.Restaurants(), store.Events(), store.Budgets(), baseLogger.Named("svc.metrics"))

	var importer handlers.BudgetImporter
	if cfg.SheetsEnabled() {
		sheetsImporter, err := sheets.NewBudgetImporter(context.Background(), cfg.Sheets, store.Budgets(), baseLogger)
		if err != nil {
			baseLogger.Fatal("failed to init budget importer", zap.Error(err))
		}
		importer = sheetsImporter
		baseLogger.Info("sheets budget import enabled")
	} else {
		baseLogger.Info("sheets budget import disabled")
	}

	metricsHandler := handlers.NewMetricsHandler(metricsSvc, cfg.Server.AggregationTimeout, baseLogger.Named("handlers.metrics"))
	budgetHandler := handlers.NewBudgetHandler(store.Budgets(), importer, baseLogger.Named("handlers.budgets"))
	engine := router.New(metricsHandler, budgetHandler, baseLogger.Named("router"))

	var notifier notify.Client
	if cfg.Digest.WebhookURL != "" {
		notifier = notify.NewWebhookClient(cfg.Digest.WebhookURL)
	} else {
		baseLogger.Warn("digest webhook url missing, digests will only be logged")
	}

	sched, err := scheduler.NewScheduler(cfg.Digest, metricsSvc, notifier, baseLogger)
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
