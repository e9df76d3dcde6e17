package domain

import (
	"time"
)

// Report shapes are derived on demand, never persisted.

type SalesReport struct {
	TotalSales        int            `json:"total_sales"`
	TotalRevenue      float64        `json:"total_revenue"`
	TotalQuantity     int            `json:"total_quantity"`
	TopSellingProduct string         `json:"top_selling_product"`
	UniqueCustomers   int            `json:"unique_customers"`
	Sales             []SaleResponse `json:"sales"`
}

type ItemsReport struct {
	TotalProducts       int     `json:"total_products"`
	TotalStock          int     `json:"total_stock"`
	TotalInventoryValue float64 `json:"total_inventory_value"`
	LowStockCount       int     `json:"low_stock_count"`
}

// ItemsReportExport pairs the aggregate with the product rows the
// renderers list under it.
type ItemsReportExport struct {
	Report   ItemsReport `json:"report"`
	Products []Product   `json:"products"`
}

type LedgerTransaction struct {
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	TotalPrice  float64   `json:"total_price"`
	SaleDate    time.Time `json:"sale_date"`
}

// CustomerLedgerEntry is one customer's aggregated purchase summary
// within the queried date range.
type CustomerLedgerEntry struct {
	CustomerID        string              `json:"customer_id"`
	CustomerName      string              `json:"customer_name"`
	Email             string              `json:"email"`
	PhoneNumber       string              `json:"phone_number"`
	Address           string              `json:"address"`
	TotalPurchases    int                 `json:"total_purchases"`
	TotalAmount       float64             `json:"total_amount"`
	TotalQuantity     int                 `json:"total_quantity"`
	FirstPurchase     time.Time           `json:"first_purchase"`
	LastPurchase      time.Time           `json:"last_purchase"`
	AverageOrderValue float64             `json:"average_order_value"`
	Transactions      []LedgerTransaction `json:"transactions"`
}

type CustomerLedgerSummary struct {
	TotalCustomers       int     `json:"total_customers"`
	TotalRevenue         float64 `json:"total_revenue"`
	TotalTransactions    int     `json:"total_transactions"`
	AverageCustomerValue float64 `json:"average_customer_value"`
	TopCustomer          string  `json:"top_customer"`
}

type CustomerLedgerReport struct {
	Summary   CustomerLedgerSummary `json:"summary"`
	Customers []CustomerLedgerEntry `json:"customers"`
}
