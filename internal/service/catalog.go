package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/ecommerce-api/internal/model"
	"github.com/sakif/ecommerce-api/internal/repository"
)

// CatalogService exposes the read-only product catalog. Products enter the
// store through the seeder, never through this service.
type CatalogService struct {
	products repository.ProductRepository
	logger   *slog.Logger
}

// NewCatalogService wires a CatalogService.
func NewCatalogService(products repository.ProductRepository, logger *slog.Logger) *CatalogService {
	return &CatalogService{products: products, logger: logger}
}

// ListProducts returns every live product, name-ascending.
func (s *CatalogService) ListProducts(ctx context.Context) ([]model.Product, error) {
	products, err := s.products.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/catalog: listing products: %w", err)
	}
	return products, nil
}

// GetProduct returns one product by its integer row id (not the upstream
// source id). A miss propagates the repository's not-found error so the
// handler answers 404.
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.products.GetProductByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service/catalog: getting product %d: %w", id, err)
	}
	return product, nil
}
