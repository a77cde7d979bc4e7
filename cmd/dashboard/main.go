package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"StockInsight/internal/config"
	"StockInsight/internal/loader"
	"StockInsight/internal/logging"
	"StockInsight/internal/recorder"
	"StockInsight/internal/scheduler"
	"StockInsight/internal/server"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logging.New("info", "console").Fatal().Err(err).Msg("load config")
	}
	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("config validation")
	}
	logger.Info().Str("symbol", cfg.Data.Symbol).Str("config", cfgPath).Msg("StockInsight starting...")

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Load the data file; any failure aborts startup
	src := loader.NewCSVSource(cfg.Data.Path)
	start := time.Now()
	ds, err := loader.NewDataset(src)
	evt := &recorder.LoadEvent{Source: src.Name(), Trigger: recorder.TriggerStartup, Duration: time.Since(start)}
	if err != nil {
		evt.Err = err.Error()
		_ = rec.RecordLoad(evt)
		rec.Close()
		logger.Fatal().Err(err).Str("path", cfg.Data.Path).Msg("load data")
	}
	evt.Rows = len(ds.Records())
	if err := rec.RecordLoad(evt); err != nil {
		logger.Error().Err(err).Msg("record load")
	}
	logger.Info().Int("rows", evt.Rows).Str("source", src.Name()).Dur("took", evt.Duration).Msg("dataset loaded")

	// Optional periodic reload
	if cfg.Data.ReloadCron != "" {
		sched := scheduler.NewScheduler(ds, rec, logger)
		if err := sched.Register(cfg.Data.ReloadCron); err != nil {
			logger.Fatal().Err(err).Msg("register cron tasks")
		}
		sched.Start()
		defer sched.Stop()
	}

	// HTTP server
	gin.SetMode(gin.ReleaseMode)
	srv, err := server.New(cfg, ds, rec, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("init server")
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	logger.Info().Str("url", "http://"+cfg.Addr()).Msg("StockInsight is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		logger.Info().Msg("shutdown signal received, stopping...")
	case err := <-errCh:
		if err != nil {
			logger.Error().Err(err).Msg("server stopped unexpectedly")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("shutdown")
	}
	logger.Info().Msg("StockInsight stopped")
}
