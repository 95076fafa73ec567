// Package sqlite implements the repository interfaces on a single-file
// SQLite database.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo, which needs a C compiler and makes
// cross-compilation painful. modernc.org/sqlite is a pure Go translation of
// the SQLite sources — it works everywhere Go works.
//
// CONNECTION MODEL:
// database/sql gives us a connection pool over the file. The original
// service opened and closed a fresh connection per operation; the pool
// preserves the same per-operation isolation (no state spans two public
// calls, and only order creation uses an explicit transaction) while
// skipping the reopen cost. Concurrent writers still serialize on SQLite's
// own file locking — the application adds no locking of its own.
package sqlite

import (
	"database/sql"
	"fmt"

	// Blank import: the driver registers itself with database/sql under
	// the name "sqlite" in its init function.
	_ "modernc.org/sqlite"
)

// DB wraps the sql.DB pool and implements the repository interfaces.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the database file and runs the idempotent schema
// migration.
//
// dbPath examples:
//   - "data/ecommerce.db" → file-based, persistent
//   - ":memory:"          → in-memory, perfect for tests
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Force an immediate connection so a bad path fails here, not on the
	// first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// One pooled connection. SQLite permits a single writer at a time, so
	// extra connections only buy lock contention — and with ":memory:",
	// every pool connection would otherwise get its own private database.
	conn.SetMaxOpenConns(1)

	// WAL lets reads proceed while a write is in flight — important for a
	// web server where catalog reads and order writes interleave.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are OFF by default in SQLite. Orders reference users,
	// items reference orders and products — we want those enforced.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool, flushing the WAL and releasing the
// file lock.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the four tables if they don't exist. CREATE TABLE IF NOT
// EXISTS makes this safe to run on every startup.
//
// Every table except order_items carries a deleted_at soft-delete column.
// Reads filter on it; no write path ever sets it.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			username      TEXT UNIQUE NOT NULL,
			email         TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			created_at    TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			deleted_at    TIMESTAMP NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	// product_id is the upstream catalog's identifier — intentionally not
	// unique and not a key. API lookups use the integer primary key.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS products (
			id                  INTEGER PRIMARY KEY AUTOINCREMENT,
			product_id          INTEGER,
			product_name        TEXT NOT NULL,
			description         TEXT,
			price               REAL NOT NULL,
			stock_quantity      INTEGER NOT NULL,
			category            TEXT,
			availability_status TEXT,
			created_date        TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			deleted_at          TIMESTAMP NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating products table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS orders (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			order_id     TEXT UNIQUE NOT NULL,
			user_id      INTEGER NOT NULL,
			total_amount REAL NOT NULL,
			order_status TEXT DEFAULT 'pending',
			order_date   TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			deleted_at   TIMESTAMP NULL,
			FOREIGN KEY (user_id) REFERENCES users(id)
		);
	`)
	if err != nil {
		return fmt.Errorf("creating orders table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS order_items (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			order_item_id TEXT,
			order_id      INTEGER NOT NULL,
			product_id    INTEGER NOT NULL,
			quantity      INTEGER NOT NULL,
			unit_price    REAL NOT NULL,
			FOREIGN KEY (order_id) REFERENCES orders(id),
			FOREIGN KEY (product_id) REFERENCES products(id)
		);
	`)
	if err != nil {
		return fmt.Errorf("creating order_items table: %w", err)
	}

	return nil
}
