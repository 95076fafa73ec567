package model

import "time"

// Product represents a catalog entry.
//
// TWO IDs, ON PURPOSE:
// ID is our integer primary key. SourceID is the identifier the product had
// in the upstream catalog it was seeded from (dummyjson.com). SourceID is
// NOT unique and NOT a key — seeding the same catalog twice simply yields
// duplicate rows with the same source id. API lookups always use ID.
//
// Price is a float64 because the store column is REAL. Money-as-float is a
// known trade-off inherited from the schema; prices here are display values,
// never summed server-side (the order total is caller-supplied).
//
// AvailabilityStatus is free text from the upstream catalog ("In Stock",
// "Low Stock", ...). It is not an enum and nothing keeps it consistent with
// StockQuantity. StockQuantity itself is never decremented when orders are
// placed — the catalog is read-only after seeding.
type Product struct {
	ID                 int64      `json:"id"`
	SourceID           int64      `json:"product_id"`
	Name               string     `json:"product_name"`
	Description        string     `json:"description"`
	Price              float64    `json:"price"`
	StockQuantity      int64      `json:"stock_quantity"`
	Category           string     `json:"category"`
	AvailabilityStatus string     `json:"availability_status"`
	CreatedAt          time.Time  `json:"created_date"`
	DeletedAt          *time.Time `json:"-"`
}
