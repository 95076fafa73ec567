package model

import "time"

// Order represents an order header row.
//
// Code is the externally visible identifier ("ORD-" + 8 uppercase hex
// chars), UNIQUE in the store and distinct from the integer row id. Status
// is free text defaulting to "pending"; no code path ever transitions it.
//
// TotalAmount is whatever the caller sent — the server does NOT recompute it
// from the item subtotals. That gap is part of the documented contract.
type Order struct {
	ID          int64      `json:"id"`
	Code        string     `json:"order_id"`
	UserID      int64      `json:"user_id"`
	TotalAmount float64    `json:"total_amount"`
	Status      string     `json:"order_status"`
	OrderDate   time.Time  `json:"order_date"`
	DeletedAt   *time.Time `json:"-"`
}

// OrderItem is a line within an order.
//
// ItemCode is derived by concatenation (`<order_code>-<product_id>`) and is
// not checked for uniqueness. Quantity is not checked against stock and
// UnitPrice is caller-supplied, not checked against the product's price.
type OrderItem struct {
	ID        int64   `json:"id"`
	ItemCode  string  `json:"order_item_id"`
	OrderID   int64   `json:"order_id"`
	ProductID int64   `json:"product_id"`
	Quantity  int64   `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// OrderItemInput is one line of POST /api/orders.
//
// Quantity carries no validation tag: zero (and negative) quantities are
// accepted and stored — quantity is unchecked against stock or anything
// else, and that laxity is part of the contract.
type OrderItemInput struct {
	ProductID int64   `json:"product_id" validate:"required"`
	Quantity  int64   `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// OrderCreateRequest is the body of POST /api/orders.
// Items must be non-empty; `dive` applies the item-level tags to every
// element of the slice.
type OrderCreateRequest struct {
	Items       []OrderItemInput `json:"items" validate:"required,min=1,dive"`
	TotalAmount float64          `json:"total_amount"`
}

// OrderCreateResponse acknowledges a created order.
type OrderCreateResponse struct {
	OrderCode   string  `json:"order_id"`
	ID          int64   `json:"id"`
	Status      string  `json:"status"`
	TotalAmount float64 `json:"total_amount"`
}

// OrderRow is one denormalized row of the orders/items/products join that
// the repository returns for GET /api/orders. The service regroups these
// rows into OrderResponse values keyed by order code.
type OrderRow struct {
	OrderDBID     int64
	OrderCode     string
	OrderDate     time.Time
	TotalAmount   float64
	Status        string
	ItemCode      string
	ProductID     int64
	Quantity      int64
	UnitPrice     float64
	ProductName   string
	StockQuantity int64
}

// OrderResponseItem is one nested item in the grouped order listing.
type OrderResponseItem struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int64   `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// OrderResponse is one grouped order in GET /api/orders.
type OrderResponse struct {
	OrderCode   string              `json:"order_id"`
	OrderDate   time.Time           `json:"order_date"`
	TotalAmount float64             `json:"total_amount"`
	Status      string              `json:"order_status"`
	Items       []OrderResponseItem `json:"items"`
}

// QueryRequest is the body of POST /api/query — raw SQL text, executed
// verbatim by the admin backdoor. No statement filtering happens anywhere.
type QueryRequest struct {
	Query string `json:"query" validate:"required"`
}

// QueryResponse carries the rows returned by an admin query.
type QueryResponse struct {
	Results  []map[string]any `json:"results"`
	RowCount int              `json:"row_count"`
}
