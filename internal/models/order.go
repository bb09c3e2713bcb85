package models

import "time"

// OrderStatus represents the possible states of a customer order
type OrderStatus string

const (
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusDelivered OrderStatus = "delivered"
)

// ValidOrderStatus reports whether s is one of the known order states
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPreparing, OrderStatusReady, OrderStatusDelivered:
		return true
	}
	return false
}

// Order represents a customer order. Items holds one entry per ordered unit
// (three burgers appear as three "burger" entries); the admin-side
// aggregations depend on this flattened shape.
type Order struct {
	ID            string      `json:"id"`
	CustomerName  string      `json:"customerName"`
	Phone         string      `json:"phone"`
	Items         []string    `json:"items"`
	OrderTime     time.Time   `json:"orderTime"`
	Status        OrderStatus `json:"status"`
	DeliveredTime *time.Time  `json:"deliveredTime,omitempty"`

	// Total is recomputed from live inventory while the order is active
	// and frozen once the order is delivered.
	Total float64 `json:"total"`
}

// BillLine is one aggregated line of a priced order. Name preserves the
// customer-facing label as originally spoken or typed.
type BillLine struct {
	Name         string  `json:"name"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
	IsOutOfStock bool    `json:"isOutOfStock"`
	IsLowStock   bool    `json:"isLowStock"`
}

// Bill is the output of the pricing engine: the live total plus one entry
// per distinct resolved item.
type Bill struct {
	Total       float64    `json:"total"`
	ItemDetails []BillLine `json:"itemDetails"`
}
