package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// issuer pins the "iss" claim so tokens minted by other apps sharing a
// secret (it happens) are rejected.
const issuer = "ecommerce-api"

// TokenService issues and validates JWT access tokens.
//
// JWT STRUCTURE (three base64-encoded parts separated by dots):
//
//	HEADER.PAYLOAD.SIGNATURE
//	- Header: algorithm + token type → {"alg":"HS256","typ":"JWT"}
//	- Payload: claims → {"sub":"<user id>","exp":1234567890,...}
//	- Signature: HMAC-SHA256(header+"."+payload, secretKey)
//
// The token is stateless: the server verifies the signature with the secret
// and reads the user id from the "sub" claim — no session store, no DB hit.
//
// The secret and lifetime come from the process configuration, injected at
// construction. Nothing in this package reads the environment.
type TokenService struct {
	secret   []byte
	lifetime time.Duration
}

// NewTokenService creates a TokenService.
//
// The secret should be at least 16 characters of random data (config.Load
// enforces this for the server). Lifetime is the fixed process-wide access
// token validity window.
func NewTokenService(secret string, lifetime time.Duration) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	if lifetime <= 0 {
		return nil, errors.New("auth: token lifetime must be positive")
	}
	return &TokenService{secret: []byte(secret), lifetime: lifetime}, nil
}

// claims is the JWT payload. RegisteredClaims covers everything this API
// needs: Subject carries the user id as a decimal string, ExpiresAt the
// absolute expiry.
type claims struct {
	jwt.RegisteredClaims
}

// Generate creates and signs an access token for the given user.
//
// The subject is the user's integer id rendered as a decimal string — the
// standard "sub" claim is a string, and Validate converts it back.
func (s *TokenService) Generate(userID int64) (string, error) {
	return s.GenerateWithDuration(userID, s.lifetime)
}

// GenerateWithDuration creates a token with a custom expiry duration.
// Used by tests to mint already-expired or near-expiry tokens.
func (s *TokenService) GenerateWithDuration(userID int64, d time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a JWT string and returns the user id from
// its "sub" claim.
//
// The jwt library checks the signature, the expiry, and the issuer.
// jwt.WithValidMethods pins HS256 — without it, an attacker could attempt
// an algorithm-confusion attack with an "alg":"none" token.
func (s *TokenService) Validate(tokenStr string) (int64, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, fmt.Errorf("auth: token expired")
		}
		return 0, fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return 0, fmt.Errorf("auth: invalid token claims")
	}

	userID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("auth: token subject is not a user id: %w", err)
	}

	return userID, nil
}
