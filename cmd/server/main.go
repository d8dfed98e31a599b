package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	firestoreadapter "github.com/couchcryptid/snow-report-service/internal/adapter/firestore"
	httpadapter "github.com/couchcryptid/snow-report-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/snow-report-service/internal/adapter/kafka"
	"github.com/couchcryptid/snow-report-service/internal/config"
	"github.com/couchcryptid/snow-report-service/internal/domain"
	"github.com/couchcryptid/snow-report-service/internal/observability"
	"github.com/couchcryptid/snow-report-service/internal/refresh"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	loc, err := time.LoadLocation(cfg.ReportTimezone)
	if err != nil {
		logger.Error("failed to load report timezone", "timezone", cfg.ReportTimezone, "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize the report store (disabled without FIRESTORE_PROJECT_ID).
	var source domain.ReportSource
	var store *firestoreadapter.Store
	if cfg.FirestoreProjectID != "" {
		store, err = firestoreadapter.New(ctx, cfg, logger)
		if err != nil {
			logger.Error("failed to init report store", "error", err)
			os.Exit(1)
		}
		source = store
		logger.Info("report store enabled", "project_id", cfg.FirestoreProjectID, "collection", cfg.FirestoreCollection)
	} else {
		source = firestoreadapter.Disabled{}
		logger.Warn("report store disabled, serving default tables")
	}

	// Initialize the alert publisher (feature-flagged via KAFKA_BROKERS / ALERTS_ENABLED).
	var publisher refresh.AlertPublisher
	var alertWriter *kafkaadapter.AlertWriter
	if cfg.AlertsEnabled {
		alertWriter = kafkaadapter.NewAlertWriter(cfg, logger)
		publisher = alertWriter
		metrics.AlertsEnabled.Set(1)
		logger.Info("powder alerts enabled", "topic", cfg.KafkaAlertTopic)
	} else {
		logger.Info("powder alerts disabled")
	}

	refresher := refresh.New(source, publisher, logger, metrics, refresh.Settings{
		Freshness: domain.Freshness{
			Policy:    domain.FreshnessPolicy(cfg.FreshnessPolicy),
			Tolerance: cfg.FreshnessTolerance,
			Location:  loc,
		},
		TrendDays: cfg.TrendDays,
		TTL:       cfg.SnapshotTTL,
	})

	// Warm the cache so readiness flips as soon as the first snapshot lands.
	if _, err := refresher.Current(ctx); err != nil {
		logger.Warn("initial snapshot build interrupted", "error", err)
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, refresher, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if store != nil {
		if err := store.Close(); err != nil {
			logger.Error("report store close error", "error", err)
		}
	}
	if alertWriter != nil {
		if err := alertWriter.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
