package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pmarks/vocabflash/internal/api"
	"github.com/pmarks/vocabflash/internal/config"
	"github.com/pmarks/vocabflash/internal/db"
	"github.com/pmarks/vocabflash/internal/logger"
	"github.com/pmarks/vocabflash/internal/repository/sqlite"
	"github.com/pmarks/vocabflash/internal/services"
	"github.com/pmarks/vocabflash/internal/srs"
	"github.com/pmarks/vocabflash/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("VocabFlash Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("session_size=%d", cfg.SessionSize)
	log.Debug("min_session_size=%d", cfg.MinSessionSize)
	log.Debug("interval_strategy=%s", cfg.IntervalStrategy)
	log.Debug("import_worker_count=%d", cfg.ImportWorkerCount)
	log.Debug("import_queue_size=%d", cfg.ImportQueueSize)

	strategy, err := srs.StrategyFor(cfg.IntervalStrategy)
	if err != nil {
		log.Error("failed to select interval strategy: %v", err)
		os.Exit(1)
	}
	log.Info("interval strategy: %s", strategy.Name())

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Initialize worker pool
	importPool := worker.NewPool(cfg.ImportWorkerCount, cfg.ImportQueueSize)

	// Initialize repositories and services
	learnerRepo := sqlite.NewLearnerRepository(database)
	wordRepo := sqlite.NewWordRepository(database)
	progressRepo := sqlite.NewProgressRepository(database)
	statsRepo := sqlite.NewStatsRepository(database)

	srv := &api.Server{
		DB:              database,
		LearnerService:  services.NewLearnerService(learnerRepo),
		WordService:     services.NewWordService(wordRepo),
		ProgressService: services.NewProgressService(progressRepo, wordRepo, strategy),
		SessionService: services.NewSessionService(progressRepo, services.SessionConfig{
			Size:              cfg.SessionSize,
			MinSize:           cfg.MinSessionSize,
			NewPoolMultiplier: cfg.NewPoolMultiplier,
			DuePoolMultiplier: cfg.DuePoolMultiplier,
		}),
		StatsService:  services.NewStatsService(statsRepo),
		ImportService: services.NewImportService(wordRepo, importPool),
	}

	ctx, cancel := context.WithCancel(context.Background())
	importPool.Start(ctx)

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("stopping worker pool")
	cancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping import pool")
	importPool.Stop()

	log.Info("===========================================")
	log.Info("VocabFlash Server Stopped")
	log.Info("===========================================")
}
