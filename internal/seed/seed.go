// Package seed initializes the database: schema, admin account, and the
// product catalog pulled from an upstream HTTP endpoint.
//
// Seeding is a one-shot collaborator (cmd/seed), not part of the server
// process. It is also the ONLY place in the system that tolerates partial
// failure: each product inserts independently, and a bad product is logged
// and skipped rather than aborting the run.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sakif/ecommerce-api/internal/auth"
	"github.com/sakif/ecommerce-api/internal/model"
	"github.com/sakif/ecommerce-api/internal/repository"
)

// Bootstrap admin credentials. This is a local demo — the fixed password
// matches what the query CLI logs in with.
const (
	adminUsername = "admin"
	adminEmail    = "admin@example.com"
	adminPassword = "password"
)

// SourceProduct mirrors one product in the upstream catalog's JSON
// (dummyjson.com/products). Only the fields we store are decoded; the rest
// of the payload is ignored.
type SourceProduct struct {
	ID                 int64   `json:"id"`
	Title              string  `json:"title"`
	Description        string  `json:"description"`
	Price              float64 `json:"price"`
	Stock              int64   `json:"stock"`
	Category           string  `json:"category"`
	AvailabilityStatus string  `json:"availabilityStatus"`
}

// catalogResponse is the upstream envelope: {"products": [...], ...}.
type catalogResponse struct {
	Products []SourceProduct `json:"products"`
}

// Seeder bundles the dependencies of a seeding run.
type Seeder struct {
	users     repository.UserRepository
	products  repository.ProductRepository
	passwords *auth.PasswordService
	client    *http.Client
	logger    *slog.Logger
}

// New creates a Seeder. Pass nil for client to use a default with a
// 30-second timeout.
func New(
	users repository.UserRepository,
	products repository.ProductRepository,
	passwords *auth.PasswordService,
	client *http.Client,
	logger *slog.Logger,
) *Seeder {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Seeder{
		users:     users,
		products:  products,
		passwords: passwords,
		client:    client,
		logger:    logger,
	}
}

// FetchCatalog downloads and decodes the product catalog.
func (s *Seeder) FetchCatalog(ctx context.Context, url string) ([]SourceProduct, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("seed: building catalog request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("seed: fetching catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused, then report the status.
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("seed: catalog endpoint returned %d", resp.StatusCode)
	}

	var catalog catalogResponse
	if err := json.NewDecoder(resp.Body).Decode(&catalog); err != nil {
		return nil, fmt.Errorf("seed: decoding catalog: %w", err)
	}

	return catalog.Products, nil
}

// EnsureAdmin creates the admin account if it doesn't already exist.
// An existing admin is logged and left alone — re-running the seeder must
// not fail on it.
func (s *Seeder) EnsureAdmin(ctx context.Context) error {
	hash, err := s.passwords.Hash(adminPassword)
	if err != nil {
		return fmt.Errorf("seed: hashing admin password: %w", err)
	}

	if _, err := s.users.CreateUser(ctx, adminUsername, adminEmail, hash); err != nil {
		// Most likely the UNIQUE constraint — admin already exists.
		s.logger.Info("admin user already exists or could not be created",
			slog.String("error", err.Error()))
		return nil
	}

	s.logger.Info("admin user created", slog.String("username", adminUsername))
	return nil
}

// InsertProducts bulk-inserts the catalog, one product at a time.
// Returns the number inserted; failures are logged per-item and skipped.
func (s *Seeder) InsertProducts(ctx context.Context, catalog []SourceProduct) int {
	inserted := 0
	for _, sp := range catalog {
		_, err := s.products.InsertProduct(ctx, &model.Product{
			SourceID:           sp.ID,
			Name:               sp.Title,
			Description:        sp.Description,
			Price:              sp.Price,
			StockQuantity:      sp.Stock,
			Category:           sp.Category,
			AvailabilityStatus: sp.AvailabilityStatus,
		})
		if err != nil {
			s.logger.Warn("skipping product",
				slog.Int64("sourceID", sp.ID),
				slog.String("error", err.Error()),
			)
			continue
		}
		inserted++
	}
	return inserted
}

// Run performs a full seeding pass: admin account, then catalog.
// The schema itself is created by sqlite.New before the Seeder exists.
func (s *Seeder) Run(ctx context.Context, catalogURL string) error {
	if err := s.EnsureAdmin(ctx); err != nil {
		return err
	}

	catalog, err := s.FetchCatalog(ctx, catalogURL)
	if err != nil {
		return err
	}
	if len(catalog) == 0 {
		s.logger.Warn("catalog endpoint returned no products")
		return nil
	}

	inserted := s.InsertProducts(ctx, catalog)
	s.logger.Info("seeding complete",
		slog.Int("fetched", len(catalog)),
		slog.Int("inserted", inserted),
	)

	return nil
}
