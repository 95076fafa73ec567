// Package config loads process-wide configuration.
//
// CONFIGURATION PHILOSOPHY:
// Everything is read ONCE at process start into an immutable Config value
// that gets passed explicitly to the components that need it. There are no
// package-level mutable globals — the token secret and lifetime reach the
// credential layer as constructor arguments, never as ambient state.
//
// Values come from environment variables, optionally primed from a .env
// file via godotenv. A missing .env is not an error — in production the
// environment is set by the supervisor, and .env is a dev convenience.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Defaults applied when the corresponding env var is unset.
const (
	DefaultPort            = 8001
	DefaultDBPath          = "data/ecommerce.db"
	DefaultTokenLifetime   = 30 // minutes
	DefaultSeedURL         = "https://dummyjson.com/products"
	DefaultAPIBaseURL      = "http://localhost:8001"
	minimumSecretLength    = 16
	DefaultShutdownSeconds = 30
)

// Config holds the full process configuration. Treat it as read-only after
// Load returns.
type Config struct {
	Port                 int    // HTTP listen port (PORT)
	DBPath               string // SQLite database file (DB_PATH)
	JWTSecret            string // HMAC signing secret (JWT_SECRET, required for the server)
	TokenLifetimeMinutes int    // access token lifetime (TOKEN_LIFETIME_MINUTES)
	SeedURL              string // product catalog endpoint for cmd/seed (SEED_URL)
	APIBaseURL           string // server base URL for cmd/query (API_BASE_URL)
}

// Load reads the environment (after priming it from .env, if present) and
// returns the resulting Config.
//
// JWT_SECRET is validated here rather than deep inside the auth package so
// a misconfigured deployment fails at startup, not on the first login.
func Load() (Config, error) {
	// Ignore the error: a missing .env file just means "use the real env".
	_ = godotenv.Load()

	cfg := Config{
		Port:                 DefaultPort,
		DBPath:               DefaultDBPath,
		TokenLifetimeMinutes: DefaultTokenLifetime,
		SeedURL:              DefaultSeedURL,
		APIBaseURL:           DefaultAPIBaseURL,
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: invalid PORT %q: %w", v, err)
		}
		cfg.Port = port
	}

	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.DBPath = v
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")

	if v := os.Getenv("TOKEN_LIFETIME_MINUTES"); v != "" {
		minutes, err := strconv.Atoi(v)
		if err != nil || minutes <= 0 {
			return Config{}, fmt.Errorf("config: invalid TOKEN_LIFETIME_MINUTES %q", v)
		}
		cfg.TokenLifetimeMinutes = minutes
	}

	if v := os.Getenv("SEED_URL"); v != "" {
		cfg.SeedURL = v
	}

	if v := os.Getenv("API_BASE_URL"); v != "" {
		cfg.APIBaseURL = v
	}

	return cfg, nil
}

// ValidateForServer checks the parts of the config only the API server
// needs. cmd/seed and cmd/query call Load without this — they don't sign
// tokens, so they don't need a secret.
func (c Config) ValidateForServer() error {
	if len(c.JWTSecret) < minimumSecretLength {
		return fmt.Errorf("config: JWT_SECRET must be at least %d characters", minimumSecretLength)
	}
	return nil
}
