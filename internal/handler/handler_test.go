package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sakif/ecommerce-api/internal/auth"
	"github.com/sakif/ecommerce-api/internal/handler"
	"github.com/sakif/ecommerce-api/internal/model"
	"github.com/sakif/ecommerce-api/internal/repository/sqlite"
	"github.com/sakif/ecommerce-api/internal/service"
)

// testEnv wires real services over an in-memory database so handler tests
// exercise the same code paths as production, minus the router.
type testEnv struct {
	db       *sqlite.DB
	tokens   *auth.TokenService
	auth     *handler.AuthHandler
	products *handler.ProductHandler
	orders   *handler.OrderHandler
	query    *handler.QueryHandler

	authService *service.AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tokens, err := auth.NewTokenService("handler-test-secret-key", time.Hour)
	require.NoError(t, err)
	passwords := auth.NewPasswordServiceWithCost(bcrypt.MinCost)

	authService := service.NewAuthService(db, passwords, tokens, logger)
	catalogService := service.NewCatalogService(db, logger)
	orderService := service.NewOrderService(db, logger)
	adminService := service.NewAdminService(db, db, logger)

	return &testEnv{
		db:          db,
		tokens:      tokens,
		auth:        handler.NewAuthHandler(authService, logger),
		products:    handler.NewProductHandler(catalogService, logger),
		orders:      handler.NewOrderHandler(orderService, logger),
		query:       handler.NewQueryHandler(adminService, logger),
		authService: authService,
	}
}

// registerUser creates an account through the service layer and returns its
// id.
func (e *testEnv) registerUser(t *testing.T, username, email, password string) int64 {
	t.Helper()

	user, err := e.authService.Register(context.Background(), model.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
	return user.ID
}

// seedProduct inserts a catalog entry directly and returns its row id.
func (e *testEnv) seedProduct(t *testing.T, name string, price float64) int64 {
	t.Helper()

	id, err := e.db.InsertProduct(context.Background(), &model.Product{
		SourceID:      int64(100 + len(name)),
		Name:          name,
		Description:   "test product",
		Price:         price,
		StockQuantity: 10,
		Category:      "test",
	})
	require.NoError(t, err)
	return id
}

// postJSON builds a POST request with a JSON body. An asUserID > 0 puts the
// id in the context the way RequireAuth would.
func postJSON(t *testing.T, target, body string, asUserID int64) *http.Request {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if asUserID > 0 {
		req = req.WithContext(auth.ContextWithUserID(req.Context(), asUserID))
	}
	return req
}

// getAs builds a GET request carrying an authenticated user id.
func getAs(t *testing.T, target string, asUserID int64) *http.Request {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	return req.WithContext(auth.ContextWithUserID(req.Context(), asUserID))
}

// decodeBody decodes a recorded JSON response into dst.
func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rr.Body).Decode(dst))
}
