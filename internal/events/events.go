package events

import (
	"time"
)

// SaleRecordedEvent is published after a sale transaction commits.
type SaleRecordedEvent struct {
	EventID     string    `json:"event_id"`
	SaleID      string    `json:"sale_id"`
	UserID      string    `json:"user_id"`
	ProductID   string    `json:"product_id"`
	CustomerID  string    `json:"customer_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	TotalPrice  float64   `json:"total_price"`
	SaleDate    time.Time `json:"sale_date"`
	Timestamp   time.Time `json:"timestamp"`
}

// StockDeductedEvent is published after the stock decrement behind a
// sale succeeds.
type StockDeductedEvent struct {
	EventID   string    `json:"event_id"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	NewStock  int       `json:"new_stock"`
	Timestamp time.Time `json:"timestamp"`
}
