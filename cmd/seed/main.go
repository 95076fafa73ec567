// Package main seeds the database: ensures the admin account exists, then
// pulls the product catalog from the upstream endpoint (SEED_URL,
// dummyjson.com by default) and inserts every product.
//
// Run it once before starting the server:
//
//	go run ./cmd/seed
//
// Re-running is safe for the admin account but duplicates the catalog —
// products have no upstream-id uniqueness, matching the store's contract.
package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sakif/ecommerce-api/internal/auth"
	"github.com/sakif/ecommerce-api/internal/config"
	"github.com/sakif/ecommerce-api/internal/repository/sqlite"
	"github.com/sakif/ecommerce-api/internal/seed"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// The seeder never signs tokens, so it skips ValidateForServer — it
	// works without a JWT_SECRET.
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if dbDir := filepath.Dir(cfg.DBPath); dbDir != "." {
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			logger.Error("failed to create database directory",
				slog.String("dir", dbDir),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	// Opening the database runs the schema migration.
	db, err := sqlite.New(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	seeder := seed.New(db, db, auth.NewPasswordService(), nil, logger)

	if err := seeder.Run(context.Background(), cfg.SeedURL); err != nil {
		logger.Error("seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
