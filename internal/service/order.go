package service

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/sakif/ecommerce-api/internal/model"
	"github.com/sakif/ecommerce-api/internal/repository"
)

// OrderService creates orders and lists a user's order history.
type OrderService struct {
	orders repository.OrderRepository
	logger *slog.Logger
}

// NewOrderService wires an OrderService.
func NewOrderService(orders repository.OrderRepository, logger *slog.Logger) *OrderService {
	return &OrderService{orders: orders, logger: logger}
}

// newOrderCode generates an external order identifier: "ORD-" followed by
// the first 8 hex digits of a random UUID, uppercased.
//
// The code is NOT checked against existing orders. A collision would trip
// the UNIQUE constraint on orders.order_id and fail the request; with 32
// random bits that is astronomically unlikely and deliberately unguarded.
func newOrderCode() string {
	u := uuid.New()
	return "ORD-" + strings.ToUpper(hex.EncodeToString(u[:4]))
}

// CreateOrder stores an order with its items and returns the
// acknowledgment the API sends back.
//
// TotalAmount is recorded exactly as the caller sent it — the server never
// recomputes it from the item lines, and stock is neither checked nor
// decremented. Those are documented gaps in the contract, preserved as-is.
func (s *OrderService) CreateOrder(ctx context.Context, userID int64, req model.OrderCreateRequest) (*model.OrderCreateResponse, error) {
	code := newOrderCode()

	id, err := s.orders.CreateOrder(ctx, userID, code, req.TotalAmount, req.Items)
	if err != nil {
		return nil, fmt.Errorf("service/order: creating order %s for user %d: %w", code, userID, err)
	}

	s.logger.Info("order created",
		slog.Int64("userID", userID),
		slog.String("orderCode", code),
		slog.Int("items", len(req.Items)),
	)

	return &model.OrderCreateResponse{
		OrderCode:   code,
		ID:          id,
		Status:      "created",
		TotalAmount: req.TotalAmount,
	}, nil
}

// ListOrders returns a user's orders with items nested, newest order
// first.
//
// The repository hands back one flat row per item; this regroups them by
// order code. Orders appear in the order the store returned them (the
// outer ORDER BY order_date DESC), and within an order, items accumulate
// in join order — no extra sorting is applied.
func (s *OrderService) ListOrders(ctx context.Context, userID int64) ([]model.OrderResponse, error) {
	rows, err := s.orders.ListOrderRowsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service/order: listing orders for user %d: %w", userID, err)
	}

	// Map for O(1) lookup while the slice preserves first-seen order.
	grouped := []model.OrderResponse{}
	index := make(map[string]int)

	for _, row := range rows {
		i, seen := index[row.OrderCode]
		if !seen {
			i = len(grouped)
			index[row.OrderCode] = i
			grouped = append(grouped, model.OrderResponse{
				OrderCode:   row.OrderCode,
				OrderDate:   row.OrderDate,
				TotalAmount: row.TotalAmount,
				Status:      row.Status,
				Items:       []model.OrderResponseItem{},
			})
		}
		grouped[i].Items = append(grouped[i].Items, model.OrderResponseItem{
			ProductID:   row.ProductID,
			ProductName: row.ProductName,
			Quantity:    row.Quantity,
			UnitPrice:   row.UnitPrice,
		})
	}

	return grouped, nil
}
