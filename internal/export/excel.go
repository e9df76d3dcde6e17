package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// GenerateExcel renders the workbook layout shared by all reports:
// title row, optional period row, blank row, Summary block, blank row,
// section label, header row, data rows.
func GenerateExcel(data ReportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := strings.ToUpper(strings.ReplaceAll(string(data.Type), "-", " "))
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	w := &sheetWriter{file: f, sheet: sheetName, colWidths: map[int]int{}}

	w.addRow(data.Title())
	if period := data.Period(); period != "" {
		w.addRow(period)
	}
	w.addRow()

	switch data.Type {
	case ReportSales:
		writeSalesSheet(w, data)
	case ReportItems:
		writeItemsSheet(w, data)
	case ReportCustomerLedger:
		writeLedgerSheet(w, data)
	default:
		return nil, ErrUnknownReport
	}

	if err := w.flush(); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSalesSheet(w *sheetWriter, data ReportData) {
	report := data.Sales

	w.addRow("Summary")
	w.addRow("Total Revenue", formatMoney(report.TotalRevenue))
	w.addRow("Total Sales", report.TotalSales)
	w.addRow("Total Quantity", report.TotalQuantity)
	w.addRow("Unique Customers", report.UniqueCustomers)
	if report.TopSellingProduct != "" {
		w.addRow("Top Selling Product", report.TopSellingProduct)
	}
	w.addRow()

	w.addRow("Transactions")
	w.addRow("Product Name", "Customer", "Quantity", "Total Price", "Sale Date")
	for _, sale := range report.Sales {
		w.addRow(
			sale.ProductName,
			sale.CustomerName,
			sale.Quantity,
			formatMoney(sale.TotalPrice),
			formatDate(sale.SaleDate))
	}
}

func writeItemsSheet(w *sheetWriter, data ReportData) {
	export := data.Items

	w.addRow("Summary")
	w.addRow("Total Products", export.Report.TotalProducts)
	w.addRow("Total Stock", export.Report.TotalStock)
	w.addRow("Inventory Value", formatMoney(export.Report.TotalInventoryValue))
	w.addRow("Low Stock Count", export.Report.LowStockCount)
	w.addRow()

	if len(export.Products) == 0 {
		w.addRow("No products available.")
		return
	}

	w.addRow("Products")
	w.addRow("Product Name", "Price", "Stock", "Stock Value")
	for i := range export.Products {
		product := &export.Products[i]
		w.addRow(
			product.Name,
			formatMoney(product.Price),
			product.Stock,
			formatMoney(product.Price*float64(product.Stock)))
	}
}

func writeLedgerSheet(w *sheetWriter, data ReportData) {
	report := data.Ledger

	w.addRow("Summary")
	w.addRow("Total Customers", report.Summary.TotalCustomers)
	w.addRow("Total Revenue", formatMoney(report.Summary.TotalRevenue))
	w.addRow("Total Transactions", report.Summary.TotalTransactions)
	w.addRow("Average Customer Value", formatMoney(report.Summary.AverageCustomerValue))
	if report.Summary.TopCustomer != "" {
		w.addRow("Top Customer", report.Summary.TopCustomer)
	}
	w.addRow()

	w.addRow("Customers")
	w.addRow("Customer Name", "Email", "Total Purchases", "Total Amount", "Avg. Order Value", "Last Purchase")
	for i := range report.Customers {
		customer := &report.Customers[i]
		w.addRow(
			customer.CustomerName,
			customer.Email,
			customer.TotalPurchases,
			formatMoney(customer.TotalAmount),
			formatMoney(customer.AverageOrderValue),
			formatDate(customer.LastPurchase))
	}
}

// sheetWriter appends rows top to bottom and tracks the widest cell per
// column so columns can be autosized on flush.
type sheetWriter struct {
	file      *excelize.File
	sheet     string
	row       int
	colWidths map[int]int
	err       error
}

func (w *sheetWriter) addRow(values ...interface{}) {
	w.row++
	if w.err != nil {
		return
	}
	for i, value := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, w.row)
		if err != nil {
			w.err = err
			return
		}
		if err := w.file.SetCellValue(w.sheet, cell, value); err != nil {
			w.err = err
			return
		}
		if n := len(fmt.Sprintf("%v", value)); n > w.colWidths[i+1] {
			w.colWidths[i+1] = n
		}
	}
}

func (w *sheetWriter) flush() error {
	if w.err != nil {
		return w.err
	}
	for col, width := range w.colWidths {
		if width < 10 {
			width = 10
		}
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return err
		}
		if err := w.file.SetColWidth(w.sheet, name, name, float64(width)); err != nil {
			return err
		}
	}
	return nil
}
