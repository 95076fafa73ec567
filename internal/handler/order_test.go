package handler_test

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/ecommerce-api/internal/model"
)

var orderCodePattern = regexp.MustCompile(`^ORD-[0-9A-F]{8}$`)

func TestOrderHandler_HandleCreate(t *testing.T) {
	t.Run("valid order", func(t *testing.T) {
		env := newTestEnv(t)
		userID := env.registerUser(t, "alice", "alice@example.com", "pw")
		productID := env.seedProduct(t, "Apple Slicer", 7.99)

		body := `{"items":[{"product_id":` + strconv.FormatInt(productID, 10) +
			`,"quantity":2,"unit_price":7.99}],"total_amount":15.98}`
		rr := httptest.NewRecorder()

		env.orders.HandleCreate(rr, postJSON(t, "/api/orders", body, userID))

		require.Equal(t, http.StatusOK, rr.Code)

		var resp model.OrderCreateResponse
		decodeBody(t, rr, &resp)
		assert.Regexp(t, orderCodePattern, resp.OrderCode)
		assert.Equal(t, "created", resp.Status)
		// The total is echoed back exactly as sent, never recomputed.
		assert.Equal(t, 15.98, resp.TotalAmount)
	})

	t.Run("no authenticated user", func(t *testing.T) {
		env := newTestEnv(t)

		body := `{"items":[{"product_id":1,"quantity":1}],"total_amount":1}`
		rr := httptest.NewRecorder()

		env.orders.HandleCreate(rr, postJSON(t, "/api/orders", body, 0))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("zero quantity is accepted", func(t *testing.T) {
		// Quantity is unchecked — zero-quantity lines store like any other.
		env := newTestEnv(t)
		userID := env.registerUser(t, "alice", "alice@example.com", "pw")
		productID := env.seedProduct(t, "Apple Slicer", 7.99)

		body := `{"items":[{"product_id":` + strconv.FormatInt(productID, 10) +
			`,"quantity":0,"unit_price":7.99}],"total_amount":0}`
		rr := httptest.NewRecorder()

		env.orders.HandleCreate(rr, postJSON(t, "/api/orders", body, userID))

		require.Equal(t, http.StatusOK, rr.Code)

		var resp model.OrderCreateResponse
		decodeBody(t, rr, &resp)
		assert.Regexp(t, orderCodePattern, resp.OrderCode)
	})

	t.Run("empty items list", func(t *testing.T) {
		env := newTestEnv(t)
		userID := env.registerUser(t, "alice", "alice@example.com", "pw")

		rr := httptest.NewRecorder()
		env.orders.HandleCreate(rr, postJSON(t, "/api/orders",
			`{"items":[],"total_amount":0}`, userID))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown product violates the foreign key", func(t *testing.T) {
		env := newTestEnv(t)
		userID := env.registerUser(t, "alice", "alice@example.com", "pw")

		body := `{"items":[{"product_id":9999,"quantity":1,"unit_price":1}],"total_amount":1}`
		rr := httptest.NewRecorder()

		env.orders.HandleCreate(rr, postJSON(t, "/api/orders", body, userID))

		// Store-level fault, surfaced as a generic 500 with no detail.
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.NotContains(t, rr.Body.String(), "FOREIGN KEY")
	})
}

func TestOrderHandler_HandleList(t *testing.T) {
	t.Run("groups items under their order", func(t *testing.T) {
		env := newTestEnv(t)
		userID := env.registerUser(t, "alice", "alice@example.com", "pw")
		p1 := env.seedProduct(t, "Apple Slicer", 7.99)
		p2 := env.seedProduct(t, "Zebra Mug", 12.50)

		body := `{"items":[` +
			`{"product_id":` + strconv.FormatInt(p1, 10) + `,"quantity":2,"unit_price":7.99},` +
			`{"product_id":` + strconv.FormatInt(p2, 10) + `,"quantity":1,"unit_price":12.50}` +
			`],"total_amount":28.48}`
		created := httptest.NewRecorder()
		env.orders.HandleCreate(created, postJSON(t, "/api/orders", body, userID))
		require.Equal(t, http.StatusOK, created.Code)

		rr := httptest.NewRecorder()
		env.orders.HandleList(rr, getAs(t, "/api/orders", userID))

		require.Equal(t, http.StatusOK, rr.Code)

		var orders []model.OrderResponse
		decodeBody(t, rr, &orders)
		require.Len(t, orders, 1)
		assert.Regexp(t, orderCodePattern, orders[0].OrderCode)
		assert.Equal(t, 28.48, orders[0].TotalAmount)
		require.Len(t, orders[0].Items, 2)
		names := []string{orders[0].Items[0].ProductName, orders[0].Items[1].ProductName}
		assert.ElementsMatch(t, []string{"Apple Slicer", "Zebra Mug"}, names)
	})

	t.Run("other users' orders are invisible", func(t *testing.T) {
		env := newTestEnv(t)
		alice := env.registerUser(t, "alice", "alice@example.com", "pw")
		bob := env.registerUser(t, "bob", "bob@example.com", "pw")
		productID := env.seedProduct(t, "Apple Slicer", 7.99)

		body := `{"items":[{"product_id":` + strconv.FormatInt(productID, 10) +
			`,"quantity":1,"unit_price":7.99}],"total_amount":7.99}`
		created := httptest.NewRecorder()
		env.orders.HandleCreate(created, postJSON(t, "/api/orders", body, alice))
		require.Equal(t, http.StatusOK, created.Code)

		rr := httptest.NewRecorder()
		env.orders.HandleList(rr, getAs(t, "/api/orders", bob))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, rr.Body.String())
	})
}
