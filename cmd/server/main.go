// Package main is the entry point for the e-commerce API server.
//
// The main package stays minimal: load configuration, build the logger,
// hand both to internal/server, block in Start(). Everything else lives in
// the internal packages so it stays testable.
package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sakif/ecommerce-api/internal/config"
	"github.com/sakif/ecommerce-api/internal/server"
)

func main() {
	// === 1. LOGGING ===
	// Structured text logs to stdout. Debug level is fine for a service of
	// this size; flip to Info if the request log gets noisy.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	// === 2. CONFIGURATION ===
	// config.Load reads .env (if present) and the process environment. The
	// server refuses to start without a real JWT secret — failing here
	// beats failing on the first login.
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := cfg.ValidateForServer(); err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		logger.Info("set JWT_SECRET, e.g.: JWT_SECRET=$(openssl rand -hex 32)")
		os.Exit(1)
	}

	// === 3. DATABASE DIRECTORY ===
	// SQLite creates the file itself but not its parent directory.
	if dbDir := filepath.Dir(cfg.DBPath); dbDir != "." {
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			logger.Error("failed to create database directory",
				slog.String("dir", dbDir),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	// === 4. RUN ===
	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until SIGINT/SIGTERM, then shuts down gracefully.
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
