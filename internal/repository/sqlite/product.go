package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sakif/ecommerce-api/internal/apperror"
	"github.com/sakif/ecommerce-api/internal/model"
	"github.com/sakif/ecommerce-api/internal/repository"
)

var _ repository.ProductRepository = (*DB)(nil)

// InsertProduct stores a product and returns the assigned id.
//
// The seeder feeds this directly from the upstream catalog, so missing
// optional fields arrive as Go zero values. The one default that isn't a
// zero value is availability_status — an absent status becomes "In Stock",
// matching what the upstream catalog emits for its common case. Nothing
// later keeps that status consistent with stock_quantity; it's free text.
func (db *DB) InsertProduct(ctx context.Context, p *model.Product) (int64, error) {
	status := p.AvailabilityStatus
	if status == "" {
		status = "In Stock"
	}

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO products (product_id, product_name, description, price,
		   stock_quantity, category, availability_status, created_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.SourceID,
		p.Name,
		p.Description,
		p.Price,
		p.StockQuantity,
		p.Category,
		status,
		time.Now().UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("sqlite: inserting product %q: %w", p.Name, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("sqlite: reading new product id: %w", err)
	}

	return id, nil
}

// ListProducts returns all live products ordered by name ascending. With no
// intervening writes, repeated calls return identical sequences — name
// order is the catalog's stable presentation order.
func (db *DB) ListProducts(ctx context.Context) ([]model.Product, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, product_id, product_name, description, price,
		   stock_quantity, category, availability_status, created_date
		 FROM products
		 WHERE deleted_at IS NULL
		 ORDER BY product_name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing products: %w", err)
	}
	defer rows.Close()

	products := make([]model.Product, 0, 64)
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(
			&p.ID, &p.SourceID, &p.Name, &p.Description, &p.Price,
			&p.StockQuantity, &p.Category, &p.AvailabilityStatus, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning product row: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating products: %w", err)
	}

	return products, nil
}

// GetProductByID returns the live product with the given id, or
// apperror.ErrNotFound.
func (db *DB) GetProductByID(ctx context.Context, id int64) (*model.Product, error) {
	var p model.Product

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, product_id, product_name, description, price,
		   stock_quantity, category, availability_status, created_date
		 FROM products
		 WHERE id = ? AND deleted_at IS NULL`,
		id,
	).Scan(
		&p.ID, &p.SourceID, &p.Name, &p.Description, &p.Price,
		&p.StockQuantity, &p.Category, &p.AvailabilityStatus, &p.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("product", id)
		}
		return nil, fmt.Errorf("sqlite: getting product %d: %w", id, err)
	}

	return &p, nil
}
