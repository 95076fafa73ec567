package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/sakif/ecommerce-api/internal/model"
	"github.com/sakif/ecommerce-api/internal/repository"
)

var _ repository.OrderRepository = (*DB)(nil)

// CreateOrder inserts an order and its items in one transaction.
//
// This is the ONLY multi-statement unit of work in the repository. The
// order row and every item row commit together — if any item insert fails
// (say, a product_id that violates the foreign key), the deferred Rollback
// undoes the order row too and the caller gets the fault.
//
// Item codes are derived by concatenation (<order_code>-<product_id>) and
// NOT checked for uniqueness: two lines for the same product in one order
// would share a code. Quantity is not checked against stock, and unit_price
// is stored as received. Both are documented contract gaps, not oversights
// to patch here.
func (db *DB) CreateOrder(ctx context.Context, userID int64, code string, totalAmount float64, items []model.OrderItemInput) (int64, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("sqlite: beginning order transaction: %w", err)
	}
	// Rollback is a no-op after a successful Commit.
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO orders (order_id, user_id, total_amount, order_status, order_date)
		 VALUES (?, ?, ?, 'pending', ?)`,
		code, userID, totalAmount, time.Now().UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("sqlite: inserting order %s: %w", code, err)
	}

	orderID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("sqlite: reading new order id: %w", err)
	}

	for _, item := range items {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO order_items (order_item_id, order_id, product_id, quantity, unit_price)
			 VALUES (?, ?, ?, ?, ?)`,
			fmt.Sprintf("%s-%d", code, item.ProductID),
			orderID,
			item.ProductID,
			item.Quantity,
			item.UnitPrice,
		)
		if err != nil {
			return 0, fmt.Errorf("sqlite: inserting item for product %d in order %s: %w",
				item.ProductID, code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("sqlite: committing order %s: %w", code, err)
	}

	return orderID, nil
}

// ListOrderRowsByUser returns the denormalized orders/items/products join for a
// user — one row per order item, newest order first.
//
// The INNER JOINs mean an order whose items were somehow all removed (or an
// item pointing at a vanished product) simply doesn't appear. Within one
// order, items come back in whatever order the store's join produced; only
// the outer ORDER BY order_date DESC is guaranteed.
func (db *DB) ListOrderRowsByUser(ctx context.Context, userID int64) ([]model.OrderRow, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT o.id, o.order_id, o.order_date, o.total_amount, o.order_status,
		   oi.order_item_id, oi.product_id, oi.quantity, oi.unit_price,
		   p.product_name, p.stock_quantity
		 FROM orders o
		 INNER JOIN order_items oi ON o.id = oi.order_id
		 INNER JOIN products p ON oi.product_id = p.id
		 WHERE o.user_id = ? AND o.deleted_at IS NULL
		 ORDER BY o.order_date DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing orders for user %d: %w", userID, err)
	}
	defer rows.Close()

	var result []model.OrderRow
	for rows.Next() {
		var r model.OrderRow
		if err := rows.Scan(
			&r.OrderDBID, &r.OrderCode, &r.OrderDate, &r.TotalAmount, &r.Status,
			&r.ItemCode, &r.ProductID, &r.Quantity, &r.UnitPrice,
			&r.ProductName, &r.StockQuantity,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning order row: %w", err)
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating order rows: %w", err)
	}

	return result, nil
}
