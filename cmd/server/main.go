package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/ahmetcoskunkizilkaya/duotrack/internal/config"
	"github.com/ahmetcoskunkizilkaya/duotrack/internal/database"
	"github.com/ahmetcoskunkizilkaya/duotrack/internal/logging"
	"github.com/ahmetcoskunkizilkaya/duotrack/internal/server"
)

const (
	logFlushInterval = 5 * time.Second
	shutdownTimeout  = 10 * time.Second
)

func main() {
	logging.Setup()

	if err := run(); err != nil {
		slog.Error("duotrack exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET environment variable is required")
	}
	if cfg.DBPassword == "" {
		return errors.New("DB_PASSWORD environment variable is required")
	}

	if err := database.Connect(cfg); err != nil {
		return err
	}
	db := database.DB
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				slog.Error("database close error", "error", err)
			}
		}
	}()
	if err := database.Migrate(db); err != nil {
		return err
	}

	// Errors and above are also kept in system_logs.
	dbLog := logging.NewDBHandler(db, logFlushInterval)
	defer dbLog.Stop()
	slog.SetDefault(slog.New(logging.NewMultiHandler(logging.StdoutHandler(), dbLog)))

	cleanupDone := make(chan struct{})
	defer close(cleanupDone)
	logging.StartCleanup(db, cleanupDone)

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	app := server.New(cfg, db, server.Options{})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	listenErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv, "timezone", cfg.Location().String())
		listenErr <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-listenErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down server...")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	slog.Info("server stopped")
	return nil
}
