package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// errNoBearerToken signals a request with no usable Authorization header.
var errNoBearerToken = errors.New("auth: missing bearer token")

// contextKey is an unexported type for context keys in this package.
//
// WHY A CUSTOM TYPE?
// context.WithValue keys are compared by type AND value. A package-private
// type means no other package can read or shadow the userID entry — only
// this package can mint keys of type contextKey.
type contextKey string

const userIDKey contextKey = "userID"

// RequireAuth enforces bearer-token authentication on protected routes.
//
// It reads the JWT from the `Authorization: Bearer <token>` header,
// validates it, and stores the numeric user id in the request context. A
// missing, malformed, invalid, or expired token terminates the chain with
// 401 — protected handlers never run without a verified identity.
//
// The API is consumed by a separate frontend origin, which is why the token
// travels in a header rather than a cookie (and why CORS is wide open at
// the router level).
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := extractUserID(r, tokens)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"unauthorized","message":"Invalid token"}`))
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithUserID(r.Context(), userID)))
		})
	}
}

// ContextWithUserID returns a context carrying an authenticated user id.
// RequireAuth uses it after token validation; handler tests use it to stand
// in for the middleware.
func ContextWithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext retrieves the authenticated user's id from the request
// context. Returns (0, false) on routes where RequireAuth did not run.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok && id > 0
}

// extractUserID pulls the bearer token out of the Authorization header and
// validates it.
func extractUserID(r *http.Request, tokens *TokenService) (int64, error) {
	header := r.Header.Get("Authorization")

	// "Bearer " is case-insensitive per RFC 6750, but every client of this
	// API sends the canonical capitalization; EqualFold keeps both working.
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return 0, errNoBearerToken
	}

	return tokens.Validate(strings.TrimSpace(header[len(prefix):]))
}
