package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/ecommerce-api/internal/config"
	"github.com/sakif/ecommerce-api/internal/model"
)

// newTestServer spins up the full stack (router, middleware, handlers,
// in-memory database) behind an httptest.Server.
func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()

	cfg := config.Config{
		Port:                 0,
		DBPath:               ":memory:",
		JWTSecret:            "end-to-end-test-secret",
		TokenLifetimeMinutes: 30,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s, err := New(cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	return s, ts
}

// post sends a JSON POST, optionally with a bearer token.
func post(t *testing.T, ts *httptest.Server, path, body, token string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, ts.URL+path, bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

// loginAs registers (ignoring "already exists") and logs in, returning the
// access token.
func loginAs(t *testing.T, ts *httptest.Server, username, email, password string) string {
	t.Helper()

	creds := `{"username":"` + username + `","email":"` + email + `","password":"` + password + `"}`
	post(t, ts, "/api/register", creds, "")

	resp := post(t, ts, "/api/login",
		`{"username":"`+username+`","password":"`+password+`"}`, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var token model.TokenResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&token))
	return token.AccessToken
}

func TestServer_Banner(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message":"E-Commerce API"}`, string(body))
}

func TestServer_OrderFlow(t *testing.T) {
	s, ts := newTestServer(t)
	token := loginAs(t, ts, "alice", "alice@example.com", "s3cret")

	_, err := s.db.InsertProduct(context.Background(), &model.Product{
		SourceID: 1, Name: "Apple Slicer", Price: 7.99, StockQuantity: 5,
	})
	require.NoError(t, err)

	// The catalog is public.
	listResp, err := ts.Client().Get(ts.URL + "/api/products")
	require.NoError(t, err)
	defer listResp.Body.Close()
	require.Equal(t, http.StatusOK, listResp.StatusCode)

	var products []model.Product
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&products))
	require.Len(t, products, 1)

	// Ordering requires the token.
	orderBody := `{"items":[{"product_id":1,"quantity":2,"unit_price":7.99}],"total_amount":15.98}`
	created := post(t, ts, "/api/orders", orderBody, token)
	require.Equal(t, http.StatusOK, created.StatusCode)

	var createResp model.OrderCreateResponse
	require.NoError(t, json.NewDecoder(created.Body).Decode(&createResp))
	assert.Regexp(t, `^ORD-[0-9A-F]{8}$`, createResp.OrderCode)

	// The order shows up grouped in the history.
	historyReq, err := http.NewRequest(http.MethodGet, ts.URL+"/api/orders", nil)
	require.NoError(t, err)
	historyReq.Header.Set("Authorization", "Bearer "+token)
	history, err := ts.Client().Do(historyReq)
	require.NoError(t, err)
	defer history.Body.Close()
	require.Equal(t, http.StatusOK, history.StatusCode)

	var orders []model.OrderResponse
	require.NoError(t, json.NewDecoder(history.Body).Decode(&orders))
	require.Len(t, orders, 1)
	assert.Equal(t, createResp.OrderCode, orders[0].OrderCode)
}

func TestServer_ProtectedRoutesRejectBadTokens(t *testing.T) {
	_, ts := newTestServer(t)

	t.Run("no token", func(t *testing.T) {
		resp := post(t, ts, "/api/orders", `{"items":[{"product_id":1,"quantity":1}]}`, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("garbage token", func(t *testing.T) {
		resp := post(t, ts, "/api/query", `{"query":"SELECT 1"}`, "not.a.jwt")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestServer_AdminQuery(t *testing.T) {
	_, ts := newTestServer(t)

	t.Run("admin gets rows", func(t *testing.T) {
		token := loginAs(t, ts, "admin", "admin@example.com", "password")

		resp := post(t, ts, "/api/query", `{"query":"SELECT 1 AS one"}`, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var qr model.QueryResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&qr))
		assert.Equal(t, 1, qr.RowCount)
	})

	t.Run("regular user is forbidden", func(t *testing.T) {
		token := loginAs(t, ts, "bob", "bob@example.com", "pw")

		resp := post(t, ts, "/api/query", `{"query":"SELECT 1"}`, token)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}
