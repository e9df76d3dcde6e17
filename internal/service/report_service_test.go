package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stockbook/inventory-service/internal/domain"
	"github.com/stockbook/inventory-service/internal/service"
)

func saleOn(id string, day time.Time, productID, productName, customerID, customerName string, quantity int, total float64) *domain.Sale {
	return &domain.Sale{
		SaleID:       id,
		UserID:       testUser,
		ProductID:    productID,
		CustomerID:   customerID,
		ProductName:  productName,
		CustomerName: customerName,
		Quantity:     quantity,
		TotalPrice:   total,
		SaleDate:     day,
	}
}

func march(day int) time.Time {
	return time.Date(2026, time.March, day, 12, 0, 0, 0, time.UTC)
}

func newReportService(sales *fakeSaleStore, products *fakeProductStore, customers *fakeCustomerStore) *service.ReportService {
	return service.NewReportService(sales, products, customers, zap.NewNop())
}

func TestSalesReport_Aggregates(t *testing.T) {
	sales := newFakeSaleStore(
		saleOn("s1", march(1), "p1", "Widget", "c1", "Ada", 2, 20),
		saleOn("s2", march(2), "p2", "Gadget", "c2", "Bob", 5, 25),
		saleOn("s3", march(3), "p1", "Widget", "c1", "Ada", 1, 10),
	)
	svc := newReportService(sales, newFakeProductStore(), newFakeCustomerStore())

	report, err := svc.SalesReport(context.Background(), testUser, march(1), march(31))
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalSales)
	assert.Equal(t, 55.0, report.TotalRevenue)
	assert.Equal(t, 8, report.TotalQuantity)
	assert.Equal(t, "Gadget", report.TopSellingProduct)
	assert.Equal(t, 2, report.UniqueCustomers)
	assert.Len(t, report.Sales, 3)
}

func TestSalesReport_DateBoundsAreInclusive(t *testing.T) {
	// Sales on the boundary days count; the day before and after do not.
	sales := newFakeSaleStore(
		saleOn("s1", time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), "p1", "Widget", "c1", "Ada", 1, 10),
		saleOn("s2", time.Date(2026, time.March, 31, 23, 59, 59, 0, time.UTC), "p1", "Widget", "c1", "Ada", 1, 10),
		saleOn("s3", march(15), "p1", "Widget", "c1", "Ada", 1, 10),
		saleOn("out1", time.Date(2026, time.February, 28, 23, 0, 0, 0, time.UTC), "p1", "Widget", "c1", "Ada", 1, 10),
		saleOn("out2", time.Date(2026, time.April, 1, 0, 0, 1, 0, time.UTC), "p1", "Widget", "c1", "Ada", 1, 10),
	)
	svc := newReportService(sales, newFakeProductStore(), newFakeCustomerStore())

	report, err := svc.SalesReport(context.Background(), testUser, march(1), march(31))
	require.NoError(t, err)
	assert.Equal(t, 3, report.TotalSales)
}

func TestSalesReport_EmptyRange(t *testing.T) {
	svc := newReportService(newFakeSaleStore(), newFakeProductStore(), newFakeCustomerStore())

	report, err := svc.SalesReport(context.Background(), testUser, march(1), march(31))
	require.NoError(t, err)

	assert.Zero(t, report.TotalSales)
	assert.Zero(t, report.TotalRevenue)
	assert.Empty(t, report.TopSellingProduct)
	assert.NotNil(t, report.Sales)
	assert.Empty(t, report.Sales)
}

func TestSalesReport_TopSellerTieBreak(t *testing.T) {
	// Widget and Gadget both sold 3 units; the first to reach the
	// maximum in date order wins.
	sales := newFakeSaleStore(
		saleOn("s1", march(1), "p1", "Widget", "c1", "Ada", 3, 30),
		saleOn("s2", march(2), "p2", "Gadget", "c1", "Ada", 3, 15),
	)
	svc := newReportService(sales, newFakeProductStore(), newFakeCustomerStore())

	report, err := svc.SalesReport(context.Background(), testUser, march(1), march(31))
	require.NoError(t, err)
	assert.Equal(t, "Widget", report.TopSellingProduct)
}

func TestSalesReport_ExcludesDeletedSales(t *testing.T) {
	deleted := saleOn("s2", march(2), "p1", "Widget", "c1", "Ada", 5, 50)
	deleted.IsDeleted = true
	sales := newFakeSaleStore(
		saleOn("s1", march(1), "p1", "Widget", "c1", "Ada", 2, 20),
		deleted,
	)
	svc := newReportService(sales, newFakeProductStore(), newFakeCustomerStore())

	report, err := svc.SalesReport(context.Background(), testUser, march(1), march(31))
	require.NoError(t, err)
	assert.Equal(t, 1, report.TotalSales)
	assert.Equal(t, 20.0, report.TotalRevenue)
}

func TestItemsReport_Totals(t *testing.T) {
	widget := testProduct("p1", "Widget", 3)
	widget.Price = 10
	gadget := testProduct("p2", "Gadget", 20)
	gadget.Price = 2
	products := newFakeProductStore(widget, gadget)
	svc := newReportService(newFakeSaleStore(), products, newFakeCustomerStore())

	report, err := svc.ItemsReport(context.Background(), testUser)
	require.NoError(t, err)

	assert.Equal(t, 2, report.TotalProducts)
	assert.Equal(t, 23, report.TotalStock)
	assert.Equal(t, 70.0, report.TotalInventoryValue)
	assert.Equal(t, 1, report.LowStockCount)
}

func TestItemsReport_SkipsDeletedProducts(t *testing.T) {
	gone := testProduct("p2", "Gadget", 50)
	gone.IsDeleted = true
	products := newFakeProductStore(testProduct("p1", "Widget", 3), gone)
	svc := newReportService(newFakeSaleStore(), products, newFakeCustomerStore())

	report, err := svc.ItemsReport(context.Background(), testUser)
	require.NoError(t, err)
	assert.Equal(t, 1, report.TotalProducts)
	assert.Equal(t, 3, report.TotalStock)
}

func TestCustomerLedger_GroupsAndSorts(t *testing.T) {
	sales := newFakeSaleStore(
		saleOn("s1", march(1), "p1", "Widget", "c1", "Ada", 2, 20),
		saleOn("s2", march(5), "p2", "Gadget", "c1", "Ada", 1, 40),
		saleOn("s3", march(3), "p1", "Widget", "c2", "Bob", 10, 100),
	)
	customers := newFakeCustomerStore(
		&domain.Customer{CustomerID: "c1", UserID: testUser, Name: "Ada", Email: "ada@example.com", PhoneNumber: "555-0100", Address: "1 Loop Rd"},
		&domain.Customer{CustomerID: "c2", UserID: testUser, Name: "Bob", Email: "bob@example.com"},
	)
	svc := newReportService(sales, newFakeProductStore(), customers)

	report, err := svc.CustomerLedger(context.Background(), testUser, march(1), march(31))
	require.NoError(t, err)

	require.Len(t, report.Customers, 2)

	// Sorted by total amount descending: Bob (100) before Ada (60).
	bob := report.Customers[0]
	assert.Equal(t, "Bob", bob.CustomerName)
	assert.Equal(t, 100.0, bob.TotalAmount)
	assert.Equal(t, 1, bob.TotalPurchases)

	ada := report.Customers[1]
	assert.Equal(t, "Ada", ada.CustomerName)
	assert.Equal(t, 60.0, ada.TotalAmount)
	assert.Equal(t, 2, ada.TotalPurchases)
	assert.Equal(t, 3, ada.TotalQuantity)
	assert.Equal(t, 30.0, ada.AverageOrderValue)
	assert.Equal(t, "ada@example.com", ada.Email)
	assert.Equal(t, march(1), ada.FirstPurchase)
	assert.Equal(t, march(5), ada.LastPurchase)
	require.Len(t, ada.Transactions, 2)

	assert.Equal(t, 2, report.Summary.TotalCustomers)
	assert.Equal(t, 160.0, report.Summary.TotalRevenue)
	assert.Equal(t, 3, report.Summary.TotalTransactions)
	assert.Equal(t, 80.0, report.Summary.AverageCustomerValue)
	assert.Equal(t, "Bob", report.Summary.TopCustomer)
}

func TestCustomerLedger_MissingCustomerKeepsRevenue(t *testing.T) {
	sales := newFakeSaleStore(
		saleOn("s1", march(1), "p1", "Widget", "ghost", "Walk-in", 1, 15),
	)
	svc := newReportService(sales, newFakeProductStore(), newFakeCustomerStore())

	report, err := svc.CustomerLedger(context.Background(), testUser, march(1), march(31))
	require.NoError(t, err)

	require.Len(t, report.Customers, 1)
	entry := report.Customers[0]
	assert.Equal(t, "Walk-in", entry.CustomerName)
	assert.Equal(t, 15.0, entry.TotalAmount)
	assert.Empty(t, entry.Email)
	assert.Empty(t, entry.PhoneNumber)
	assert.Equal(t, 15.0, report.Summary.TotalRevenue)
}

func TestCustomerLedger_EmptyRange(t *testing.T) {
	svc := newReportService(newFakeSaleStore(), newFakeProductStore(), newFakeCustomerStore())

	report, err := svc.CustomerLedger(context.Background(), testUser, march(1), march(31))
	require.NoError(t, err)

	assert.Empty(t, report.Customers)
	assert.Zero(t, report.Summary.TotalCustomers)
	assert.Empty(t, report.Summary.TopCustomer)
}
