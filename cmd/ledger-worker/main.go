package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"bankfolio/internal/amqp"
	"bankfolio/internal/backend"
	"bankfolio/internal/cli"
	applog "bankfolio/internal/log"
	"bankfolio/internal/services"
	"bankfolio/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		slog.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	logger := cli.SetupLogger(cfg.SlogLevel(), os.Stdout).WithComponent(applog.ComponentWorker)
	logger.Info("Starting ledger-worker", "backend", cfg.ExportBackend, "interval", cfg.ExportInterval)

	repo, err := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	if err != nil {
		os.Exit(1)
	}
	// Read-only use: the worker never publishes.
	ledger := services.NewLedgerService(repo, nil)
	defer ledger.Close()

	exporterCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid export configuration", applog.FieldError, err)
		os.Exit(1)
	}
	exporter, err := backend.NewFactory(logger.Logger).CreateExporter(context.Background(), exporterCfg)
	if err != nil {
		logger.Error("Failed to initialize exporter", applog.FieldError, err)
		os.Exit(1)
	}
	exportWorker := worker.NewExportWorker(ledger, exporter)

	// Bring the export up to date before waiting for events
	if err := exportWorker.ExportNow(context.Background()); err != nil {
		logger.Error("Startup export failed", applog.FieldError, err)
	}

	var scheduler *worker.Scheduler
	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func(shutdownCtx context.Context) {
		if scheduler != nil {
			if err := scheduler.Stop(shutdownCtx); err != nil {
				logger.Warn("Scheduler stop failed", applog.FieldError, err)
			}
		}
	})

	if cfg.ExportInterval > 0 {
		scheduler = worker.NewScheduler(exportWorker, cfg.ExportInterval)
		if err := scheduler.Start(ctx); err != nil {
			logger.Error("Failed to start export scheduler", applog.FieldError, err)
			os.Exit(1)
		}
	}

	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", applog.FieldError, err)
			os.Exit(1)
		}
		defer amqpClient.Close()

		go func() {
			if err := amqpClient.RunConsumer(ctx, exportWorker.HandleLedgerEvent); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("Ledger event consumption failed", applog.FieldError, err)
			}
		}()
	} else {
		logger.Info("AMQP disabled - exporting on schedule only")
	}

	cli.WaitForShutdown(ctx, done)
}
