package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/ecommerce-api/internal/auth"
	"github.com/sakif/ecommerce-api/internal/model"
	"github.com/sakif/ecommerce-api/internal/service"
)

// OrderHandler exposes order creation and the per-user order history.
// Both routes sit behind auth.RequireAuth — the user id always comes from
// a verified token, never from the request body.
type OrderHandler struct {
	orders *service.OrderService
	logger *slog.Logger
}

// NewOrderHandler creates an OrderHandler.
func NewOrderHandler(orders *service.OrderService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, logger: logger}
}

// HandleCreate places an order for the authenticated user.
//
// HTTP: POST /api/orders (bearer token required)
// BODY: {"items": [{"product_id": 1, "quantity": 2, "unit_price": 9.99}], "total_amount": 19.98}
//
// Items must be non-empty. The total is recorded as sent; nothing checks
// it against the item lines.
func (h *OrderHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		// Unreachable behind RequireAuth, but don't trust route wiring.
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error: "unauthorized", Message: "Invalid token",
		})
		return
	}

	var req model.OrderCreateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.orders.CreateOrder(r.Context(), userID, req)
	if err != nil {
		writeError(h.logger, w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleList returns the authenticated user's orders, grouped by order
// code with items nested, newest first.
//
// HTTP: GET /api/orders (bearer token required)
func (h *OrderHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error: "unauthorized", Message: "Invalid token",
		})
		return
	}

	orders, err := h.orders.ListOrders(r.Context(), userID)
	if err != nil {
		writeError(h.logger, w, err)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}
