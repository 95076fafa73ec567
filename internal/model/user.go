// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account.
//
// The primary key is an integer assigned by SQLite (AUTOINCREMENT), unlike
// the external order code which is a generated string. Username and email
// carry UNIQUE constraints at the store level — the application relies on
// those constraints rather than re-checking on every write.
//
// WHY PasswordHash IN THE STRUCT?
// The repository needs somewhere to scan the bcrypt hash into so the login
// flow can verify it. The `json:"-"` tag guarantees it can never leak into a
// response body, even if a handler serializes the whole struct.
//
// DeletedAt is a soft-delete marker. No code path in this application sets
// it — every read filters `deleted_at IS NULL` for compatibility with the
// schema, but there is no deletion endpoint. It stays a dead column.
type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	DeletedAt    *time.Time `json:"-"`
}

// RegisterRequest is the body of POST /api/register.
//
// The `validate` tags are consumed by go-playground/validator before the
// handler touches the data: all three fields are required and the email must
// be well-formed. Validation failures never reach the service layer.
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is what the API returns for a user — note: no password hash.
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenResponse is returned by a successful login.
// TokenType is always "bearer" — clients send the token back as
// `Authorization: Bearer <access_token>`.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
