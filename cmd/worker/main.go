package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/picksleagues/picks-leagues/internal/app"
	"github.com/picksleagues/picks-leagues/internal/config"
	"github.com/picksleagues/picks-leagues/internal/observability"
	"github.com/picksleagues/picks-leagues/internal/platform/logging"
	"github.com/picksleagues/picks-leagues/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	cfg.ServiceName += "-worker"

	logger := app.NewLogger(cfg)
	logger, shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	stopProfiler, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rt, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}

	metricsHandler := rt.Metrics.Handler()
	if !cfg.MetricsEnabled {
		metricsHandler = nil
	}
	admin := observability.StartAdminServer(cfg, metricsHandler, logger)

	jobLogger := logger.Named("worker")
	scheduler, err := worker.New(worker.DefaultJobs(cfg, rt.Ingestion, rt.Auth, jobLogger), cfg.WorkerPoolSize, jobLogger)
	if err != nil {
		logger.Error("build scheduler", "error", err)
		os.Exit(1)
	}
	scheduler.Start(ctx)

	if cfg.WorkerRunOnStart {
		go func() {
			if err := worker.RunOnStart(scheduler); err != nil {
				logger.Error("initial sync failed", "error", err)
			}
		}()
	}

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := scheduler.Stop(shutdownCtx); err != nil {
		logger.Error("scheduler shutdown", "error", err)
	}
	if err := observability.StopAdminServer(admin, logger, cfg.ShutdownTimeout); err != nil {
		logger.Error("admin server shutdown failed", "error", err)
	}
	if err := rt.Close(); err != nil {
		logger.Error("close database", "error", err)
	}
	if err := stopProfiler(); err != nil {
		logger.Error("stop pyroscope", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("shutdown uptrace", "error", err)
	}
	logger.Info("worker stopped")
}
