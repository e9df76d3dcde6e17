package domain

import (
	"time"
)

// Sale stores product_name and customer_name as write-time snapshots.
// They are never re-synced when the source records change later.
type Sale struct {
	SaleID       string    `dynamodbav:"sale_id"                json:"sale_id"`
	UserID       string    `dynamodbav:"user_id"                json:"user_id"`
	ProductID    string    `dynamodbav:"product_id"             json:"product_id"`
	CustomerID   string    `dynamodbav:"customer_id"            json:"customer_id"`
	ProductName  string    `dynamodbav:"product_name"           json:"product_name"`
	CustomerName string    `dynamodbav:"customer_name"          json:"customer_name"`
	Quantity     int       `dynamodbav:"quantity"               json:"quantity"`
	TotalPrice   float64   `dynamodbav:"total_price"            json:"total_price"`
	SaleDate     time.Time `dynamodbav:"sale_date,unixtime"     json:"sale_date"`
	IsDeleted    bool      `dynamodbav:"is_deleted"             json:"-"`
	CreatedAt    time.Time `dynamodbav:"created_at"             json:"created_at"`
	UpdatedAt    time.Time `dynamodbav:"updated_at"             json:"updated_at"`
}

type RecordSaleRequest struct {
	ProductID    string  `json:"product_id"`
	ProductName  string  `json:"product_name"  binding:"required"`
	CustomerID   string  `json:"customer_id"   binding:"required"`
	CustomerName string  `json:"customer_name" binding:"required"`
	Quantity     int     `json:"quantity"      binding:"required,min=1"`
	TotalPrice   float64 `json:"total_price"   binding:"gte=0"`
	SaleDate     string  `json:"sale_date"     binding:"required"`
}

type ReviseSaleRequest struct {
	ProductID    string  `json:"product_id"`
	ProductName  string  `json:"product_name"  binding:"required"`
	CustomerName string  `json:"customer_name" binding:"required"`
	Quantity     int     `json:"quantity"      binding:"required,min=1"`
	TotalPrice   float64 `json:"total_price"   binding:"gte=0"`
	SaleDate     string  `json:"sale_date"     binding:"required"`
}

type SaleResponse struct {
	SaleID       string    `json:"sale_id"`
	ProductName  string    `json:"product_name"`
	CustomerName string    `json:"customer_name"`
	Quantity     int       `json:"quantity"`
	TotalPrice   float64   `json:"total_price"`
	SaleDate     time.Time `json:"sale_date"`
}

func (s *Sale) Response() SaleResponse {
	return SaleResponse{
		SaleID:       s.SaleID,
		ProductName:  s.ProductName,
		CustomerName: s.CustomerName,
		Quantity:     s.Quantity,
		TotalPrice:   s.TotalPrice,
		SaleDate:     s.SaleDate,
	}
}

type PaginatedSales struct {
	Data        []SaleResponse `json:"data"`
	TotalPages  int            `json:"total_pages"`
	CurrentPage int            `json:"current_page"`
}
