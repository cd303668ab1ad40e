package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Nathan-McClard/ChinoizeCupStats/internal/config"
	"github.com/Nathan-McClard/ChinoizeCupStats/internal/database"
	"github.com/Nathan-McClard/ChinoizeCupStats/internal/decklist"
	"github.com/Nathan-McClard/ChinoizeCupStats/internal/format"
	server "github.com/Nathan-McClard/ChinoizeCupStats/internal/http"
	"github.com/Nathan-McClard/ChinoizeCupStats/internal/ingest"
	"github.com/Nathan-McClard/ChinoizeCupStats/internal/limitless"
	"github.com/Nathan-McClard/ChinoizeCupStats/internal/meta"
	"github.com/Nathan-McClard/ChinoizeCupStats/internal/metrics"
	"github.com/Nathan-McClard/ChinoizeCupStats/internal/notifier"
	"github.com/Nathan-McClard/ChinoizeCupStats/internal/pubsub"
	"github.com/Nathan-McClard/ChinoizeCupStats/internal/stats"
)

func main() {
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()

	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken, cfg.MigrationsDir)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	metaStore := meta.New(db)
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	limitlessClient := limitless.NewClient(cfg.Limitless.BaseURL)

	var events pubsub.PubSubClient
	if cfg.ProjectID != "" {
		events = pubsub.New(cfg.ProjectID)
	} else {
		events = pubsub.NewNoop()
	}

	var notifySvc notifier.Notifier
	if cfg.Slack.Token != "" {
		notifySvc = notifier.NewSlack(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	} else {
		notifySvc = notifier.NewNoop()
	}

	syncer := ingest.New(metaStore, limitlessClient, metricsSvc, events, cfg.Limitless, cfg.SyncTopic)
	statsSvc := stats.NewService(metaStore)
	decklistSvc := decklist.NewService(metaStore)
	formatSvc := format.NewService(metaStore)

	s := server.NewServer(
		metaStore,
		syncer,
		statsSvc,
		decklistSvc,
		formatSvc,
		notifySvc,
		metricsSvc,
		metricsHandler,
		cfg,
	)

	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	serverErrors := make(chan error, 1)

	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
