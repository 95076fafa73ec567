// Package service holds the business logic between the HTTP handlers and
// the repositories.
//
//	handler (HTTP) → service (rules) → repository (SQLite)
//	               ↘ auth (bcrypt, JWT)
//
// Services never touch HTTP types and never build SQL — they orchestrate.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sakif/ecommerce-api/internal/apperror"
	"github.com/sakif/ecommerce-api/internal/auth"
	"github.com/sakif/ecommerce-api/internal/model"
	"github.com/sakif/ecommerce-api/internal/repository"
)

// AuthService implements registration and login.
type AuthService struct {
	users     repository.UserRepository
	passwords *auth.PasswordService
	tokens    *auth.TokenService
	logger    *slog.Logger
}

// NewAuthService wires an AuthService. Called from the composition root in
// internal/server.
func NewAuthService(
	users repository.UserRepository,
	passwords *auth.PasswordService,
	tokens *auth.TokenService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		passwords: passwords,
		tokens:    tokens,
		logger:    logger,
	}
}

// Register creates a new account and returns the stored user (sans hash).
//
// The username is pre-checked so a duplicate gets the published
// "Username already exists" response. The check-then-insert pair is not
// atomic; a race between two identical registrations lands on the UNIQUE
// constraint instead, which surfaces as an opaque store fault. Email
// collisions take that second path too.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.UserResponse, error) {
	_, err := s.users.GetUserByUsername(ctx, req.Username)
	if err == nil {
		return nil, apperror.Conflict("Username already exists")
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("service/auth: checking username %q: %w", req.Username, err)
	}

	hash, err := s.passwords.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("service/auth: hashing password: %w", err)
	}

	id, err := s.users.CreateUser(ctx, req.Username, req.Email, hash)
	if err != nil {
		return nil, fmt.Errorf("service/auth: creating user %q: %w", req.Username, err)
	}

	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service/auth: reading back user %d: %w", id, err)
	}

	s.logger.Info("user registered",
		slog.Int64("userID", user.ID),
		slog.String("username", user.Username),
	)

	return &model.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}, nil
}

// Login verifies credentials and issues an access token.
//
// Unknown usernames and wrong passwords fail with the IDENTICAL error —
// same sentinel, same message — so the endpoint can't be used to
// enumerate which usernames exist.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.TokenResponse, error) {
	badCredentials := apperror.Unauthorized("Incorrect username or password")

	user, err := s.users.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, badCredentials
		}
		return nil, fmt.Errorf("service/auth: looking up %q: %w", req.Username, err)
	}

	if err := s.passwords.Verify(user.PasswordHash, req.Password); err != nil {
		return nil, badCredentials
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("service/auth: generating token for user %d: %w", user.ID, err)
	}

	s.logger.Info("user logged in", slog.Int64("userID", user.ID))

	return &model.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	}, nil
}
