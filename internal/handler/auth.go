package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/ecommerce-api/internal/model"
	"github.com/sakif/ecommerce-api/internal/service"
)

// AuthHandler exposes registration and login.
type AuthHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(auth *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// HandleRegister creates a new account.
//
// HTTP: POST /api/register
// BODY: {"username": "...", "email": "...", "password": "..."}
//
// 200 with the created user (no password field) on success; 400 when the
// body fails validation or the username is already taken.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.auth.Register(r.Context(), req)
	if err != nil {
		writeError(h.logger, w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// HandleLogin verifies credentials and returns a bearer token.
//
// HTTP: POST /api/login
// BODY: {"username": "...", "password": "..."}
//
// 200 with {"access_token": ..., "token_type": "bearer"} on success; 401
// for bad credentials (identical for unknown user and wrong password).
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	token, err := h.auth.Login(r.Context(), req)
	if err != nil {
		writeError(h.logger, w, err)
		return
	}

	writeJSON(w, http.StatusOK, token)
}
