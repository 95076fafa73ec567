// Package repository defines the storage interfaces consumed by the service
// layer. The sqlite subpackage provides the concrete implementation;
// services only ever see these interfaces, which is what makes them
// testable with in-memory mocks.
package repository

import (
	"context"

	"github.com/sakif/ecommerce-api/internal/model"
)

// UserRepository persists user accounts.
//
// All reads filter soft-deleted rows (deleted_at IS NULL). Nothing in the
// application ever sets deleted_at — the filter exists for schema
// compatibility, not because deletion is reachable.
type UserRepository interface {
	// CreateUser inserts a user and returns the assigned id. Username and
	// email uniqueness is enforced by the store; a violation surfaces as
	// an opaque execution fault, not a typed error.
	CreateUser(ctx context.Context, username, email, passwordHash string) (int64, error)
	// GetUserByUsername returns the user or apperror.ErrNotFound.
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	// GetUserByID returns the user or apperror.ErrNotFound.
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
}

// ProductRepository persists catalog entries. The catalog is written only
// by the seeder; the API reads it.
type ProductRepository interface {
	// InsertProduct stores a product, applying defaults for missing optional
	// fields, and returns the assigned id.
	InsertProduct(ctx context.Context, p *model.Product) (int64, error)
	// ListProducts returns all live products ordered by name ascending.
	ListProducts(ctx context.Context) ([]model.Product, error)
	// GetProductByID returns the product or apperror.ErrNotFound.
	GetProductByID(ctx context.Context, id int64) (*model.Product, error)
}

// OrderRepository persists orders and their line items.
type OrderRepository interface {
	// CreateOrder inserts the order row and one item row per input, all inside
	// a single transaction with a single commit. Returns the order's row
	// id. Item codes are derived (<code>-<product_id>), never checked for
	// uniqueness.
	CreateOrder(ctx context.Context, userID int64, code string, totalAmount float64, items []model.OrderItemInput) (int64, error)
	// ListOrderRowsByUser returns the flat orders/items/products join for a
	// user, newest order first. Callers regroup rows by order code.
	ListOrderRowsByUser(ctx context.Context, userID int64) ([]model.OrderRow, error)
}

// QueryExecutor runs caller-supplied SQL verbatim. This is the admin
// backdoor: no statement filtering, no row limit, no timeout beyond the
// request context. Callers hold the trust boundary (admin token required).
type QueryExecutor interface {
	Execute(ctx context.Context, query string) ([]map[string]any, error)
}
