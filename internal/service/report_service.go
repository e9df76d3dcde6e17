package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/stockbook/inventory-service/internal/domain"
	"github.com/stockbook/inventory-service/internal/repository"
)

// Products with fewer units than this count as low stock.
const lowStockThreshold = 5

type ReportService struct {
	sales     SaleStore
	products  ProductStore
	customers CustomerStore
	logger    *zap.Logger
}

func NewReportService(sales SaleStore, products ProductStore, customers CustomerStore, logger *zap.Logger) *ReportService {
	return &ReportService{
		sales:     sales,
		products:  products,
		customers: customers,
		logger:    logger,
	}
}

// SalesReport aggregates the owner's active sales over the inclusive
// day-bounded range. An empty range is a valid zero report, not an
// error.
func (s *ReportService) SalesReport(ctx context.Context, userID string, from, to time.Time) (*domain.SalesReport, error) {
	sales, err := s.sales.FindByDateRange(ctx, userID, StartOfDay(from), EndOfDay(to))
	if err != nil {
		return nil, err
	}

	report := &domain.SalesReport{
		Sales: []domain.SaleResponse{},
	}
	if len(sales) == 0 {
		return report, nil
	}

	productQuantities := make(map[string]int)
	// Tie-break for the top seller: first product to reach the maximum,
	// in query (sale date) order.
	productOrder := make([]string, 0)
	customerSet := make(map[string]struct{})

	for i := range sales {
		sale := &sales[i]
		report.TotalRevenue += sale.TotalPrice
		report.TotalQuantity += sale.Quantity

		if _, seen := productQuantities[sale.ProductName]; !seen {
			productOrder = append(productOrder, sale.ProductName)
		}
		productQuantities[sale.ProductName] += sale.Quantity
		customerSet[sale.CustomerID] = struct{}{}

		report.Sales = append(report.Sales, sale.Response())
	}

	topProduct := ""
	topQuantity := 0
	for _, name := range productOrder {
		if productQuantities[name] > topQuantity {
			topProduct = name
			topQuantity = productQuantities[name]
		}
	}

	report.TotalSales = len(sales)
	report.TopSellingProduct = topProduct
	report.UniqueCustomers = len(customerSet)

	return report, nil
}

// ItemsReport totals the owner's active catalog; no date filtering.
func (s *ReportService) ItemsReport(ctx context.Context, userID string) (*domain.ItemsReport, error) {
	export, err := s.ItemsReportExport(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &export.Report, nil
}

// ItemsReportExport returns the aggregate together with the product
// rows the renderers list under it.
func (s *ReportService) ItemsReportExport(ctx context.Context, userID string) (*domain.ItemsReportExport, error) {
	products, err := s.products.ListActive(ctx, userID)
	if err != nil {
		return nil, err
	}

	export := &domain.ItemsReportExport{
		Products: products,
	}
	for i := range products {
		export.Report.TotalStock += products[i].Stock
		export.Report.TotalInventoryValue += float64(products[i].Stock) * products[i].Price
		if products[i].Stock < lowStockThreshold {
			export.Report.LowStockCount++
		}
	}
	export.Report.TotalProducts = len(products)

	return export, nil
}

// CustomerLedger groups the owner's active in-range sales by customer
// and joins contact details from the customer directory. Entries are
// sorted by total amount descending.
func (s *ReportService) CustomerLedger(ctx context.Context, userID string, from, to time.Time) (*domain.CustomerLedgerReport, error) {
	sales, err := s.sales.FindByDateRange(ctx, userID, StartOfDay(from), EndOfDay(to))
	if err != nil {
		return nil, err
	}

	entriesByID := make(map[string]*domain.CustomerLedgerEntry)
	order := make([]string, 0)

	for i := range sales {
		sale := &sales[i]
		entry, ok := entriesByID[sale.CustomerID]
		if !ok {
			entry = &domain.CustomerLedgerEntry{
				CustomerID:    sale.CustomerID,
				CustomerName:  sale.CustomerName,
				FirstPurchase: sale.SaleDate,
				LastPurchase:  sale.SaleDate,
			}
			entriesByID[sale.CustomerID] = entry
			order = append(order, sale.CustomerID)
		}

		entry.TotalPurchases++
		entry.TotalAmount += sale.TotalPrice
		entry.TotalQuantity += sale.Quantity
		if sale.SaleDate.Before(entry.FirstPurchase) {
			entry.FirstPurchase = sale.SaleDate
		}
		if sale.SaleDate.After(entry.LastPurchase) {
			entry.LastPurchase = sale.SaleDate
		}
		entry.Transactions = append(entry.Transactions, domain.LedgerTransaction{
			ProductID:   sale.ProductID,
			ProductName: sale.ProductName,
			Quantity:    sale.Quantity,
			TotalPrice:  sale.TotalPrice,
			SaleDate:    sale.SaleDate,
		})
	}

	entries := make([]domain.CustomerLedgerEntry, 0, len(order))
	for _, customerID := range order {
		entry := entriesByID[customerID]
		entry.AverageOrderValue = entry.TotalAmount / float64(entry.TotalPurchases)

		customer, err := s.customers.Get(ctx, customerID)
		switch {
		case err == nil:
			entry.Email = customer.Email
			entry.PhoneNumber = customer.PhoneNumber
			entry.Address = customer.Address
		case errors.Is(err, repository.ErrCustomerNotFound):
			// Keep the revenue in the report; the contact columns stay blank.
			s.logger.Warn("Ledger customer missing from directory",
				zap.String("customer_id", customerID))
		default:
			return nil, err
		}

		entries = append(entries, *entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalAmount > entries[j].TotalAmount
	})

	report := &domain.CustomerLedgerReport{
		Customers: entries,
	}
	report.Summary.TotalCustomers = len(entries)
	for i := range entries {
		report.Summary.TotalRevenue += entries[i].TotalAmount
		report.Summary.TotalTransactions += entries[i].TotalPurchases
	}
	if len(entries) > 0 {
		report.Summary.AverageCustomerValue = report.Summary.TotalRevenue / float64(len(entries))
		report.Summary.TopCustomer = entries[0].CustomerName
	}

	return report, nil
}

func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
