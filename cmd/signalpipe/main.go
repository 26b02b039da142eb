package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/medtrade/signals/internal/config"
	"github.com/medtrade/signals/internal/database"
	"github.com/medtrade/signals/internal/generator"
	"github.com/medtrade/signals/internal/pipeline"
	"github.com/medtrade/signals/internal/refdata"
	"github.com/medtrade/signals/internal/scoring"
	"github.com/medtrade/signals/internal/store"
	"github.com/medtrade/signals/internal/validate"
	"github.com/medtrade/signals/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/signalpipe.local.yaml", "path to config file")
	once := flag.Bool("once", false, "run a single pass and exit")
	flag.Parse()

	// Optional .env for local development; config expansion picks it up.
	_ = godotenv.Load()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting signalpipe",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"instance_id", cfg.Instance.ID,
		"records_file", cfg.Collector.RecordsFile,
		"interval", cfg.Runner.Interval,
	)

	// Load reference data
	tables, err := refdata.Load(cfg.Refdata.Path)
	if err != nil {
		logger.Error("failed to load reference data", "error", err, "path", cfg.Refdata.Path)
		os.Exit(1)
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Sinks: JSON output always, Postgres when enabled.
	sinks := []pipeline.Sink{store.NewJSONSink(cfg.Output.Dir, logger)}

	var writer *store.SignalWriter
	if cfg.Database.Enabled {
		logger.Info("connecting to database",
			"host", cfg.Database.Postgres.Host,
			"port", cfg.Database.Postgres.Port,
			"database", cfg.Database.Postgres.Name,
		)

		pool, err := database.Connect(ctx, cfg.Database.Postgres)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		logger.Info("database connected")

		writer = store.NewSignalWriter(store.Config{
			BatchSize:     cfg.Writers.BatchSize,
			FlushInterval: cfg.Writers.FlushInterval,
		}, pool, logger)

		if err := writer.Start(ctx); err != nil {
			logger.Error("failed to start signal writer", "error", err)
			os.Exit(1)
		}
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer shutdownCancel()
			writer.Stop(shutdownCtx)
		}()

		sinks = append(sinks, writer)
	}

	// Assemble the pipeline
	validator := validate.New(validate.Config{
		MaxAgeHours: cfg.Validator.MaxAgeHours,
		MinScore:    cfg.Validator.MinScore,
		Concurrency: cfg.Validator.Concurrency,
	}, tables)

	p := pipeline.New(
		[]pipeline.Collector{pipeline.NewFileSource(cfg.Collector.RecordsFile)},
		generator.New(nil, nil, logger),
		scoring.New(tables),
		validator,
		sinks,
		logger,
	)

	if *once {
		if _, err := p.Run(ctx); err != nil {
			logger.Error("run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	runner := pipeline.NewRunner(pipeline.RunnerConfig{Interval: cfg.Runner.Interval}, p, logger)
	if err := runner.Start(ctx); err != nil {
		logger.Error("failed to start runner", "error", err)
		os.Exit(1)
	}

	logger.Info("signalpipe running", "instance_id", cfg.Instance.ID)

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := runner.Stop(shutdownCtx); err != nil {
		logger.Error("runner shutdown error", "error", err)
	}

	logger.Info("signalpipe stopped")
}
