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

// Compile-time check that *DB implements repository.UserRepository.
var _ repository.UserRepository = (*DB)(nil)

// CreateUser inserts a user and returns the AUTOINCREMENT id.
//
// Username and email carry UNIQUE constraints; a duplicate surfaces as an
// opaque execution fault from the driver, which we wrap and pass up. The
// registration flow pre-checks the username, so in practice only an email
// collision reaches this path.
//
// created_at is set here in Go rather than left to the column DEFAULT so
// the value round-trips through the driver as a time.Time.
func (db *DB) CreateUser(ctx context.Context, username, email, passwordHash string) (int64, error) {
	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (username, email, password_hash, created_at)
		 VALUES (?, ?, ?, ?)`,
		username, email, passwordHash, time.Now().UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("sqlite: creating user %q: %w", username, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("sqlite: reading new user id: %w", err)
	}

	return id, nil
}

// GetUserByUsername returns the live (not soft-deleted) user with the given
// username, or apperror.ErrNotFound.
func (db *DB) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return db.getUser(ctx,
		`SELECT id, username, email, password_hash, created_at
		 FROM users WHERE username = ? AND deleted_at IS NULL`,
		username,
	)
}

// GetUserByID returns the live user with the given id, or apperror.ErrNotFound.
func (db *DB) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	return db.getUser(ctx,
		`SELECT id, username, email, password_hash, created_at
		 FROM users WHERE id = ? AND deleted_at IS NULL`,
		id,
	)
}

// getUser runs a single-row user query and translates sql.ErrNoRows into
// the domain's not-found error.
func (db *DB) getUser(ctx context.Context, query string, arg any) (*model.User, error) {
	var u model.User

	err := db.conn.QueryRowContext(ctx, query, arg).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", arg)
		}
		return nil, fmt.Errorf("sqlite: getting user %v: %w", arg, err)
	}

	return &u, nil
}
