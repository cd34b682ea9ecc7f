package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/stockview/internal/config"
	"github.com/JonMunkholm/stockview/internal/core"
	"github.com/JonMunkholm/stockview/internal/logging"
	"github.com/JonMunkholm/stockview/internal/schema"
	"github.com/JonMunkholm/stockview/internal/web"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format, os.Stdout)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"headers", cfg.Schema.Headers,
		"upload_max_concurrent", cfg.Upload.MaxConcurrent,
		"upload_max_sessions", cfg.Upload.MaxSessions,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	specs, err := schema.ForHeaders(cfg.Schema.Headers)
	if err != nil {
		slog.Error("invalid schema header set", "error", err)
		os.Exit(1)
	}

	limiter := core.NewUploadLimiter(cfg.Upload.MaxConcurrent, cfg.Upload.MaxWaitTime)
	service := core.NewService(specs, core.SettingsFromConfig(cfg.Report), limiter)
	store := core.NewUploadStore(cfg.Upload.SessionTTL, cfg.Upload.MaxSessions)

	slog.Info("schema loaded", "columns", len(specs), "headers", schema.Headers(specs))

	server := web.NewServer(service, store, cfg)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		// Wait for in-flight decodes to complete (with timeout)
		if active := limiter.ActiveCount(); active > 0 {
			slog.Info("waiting for reports to complete", "active", active)
			if err := limiter.WaitForDrain(shutdownCtx); err != nil {
				slog.Warn("reports did not complete in time", "error", err)
			} else {
				slog.Info("all reports completed")
			}
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}
