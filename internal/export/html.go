package export

import (
	"fmt"
	"html"
	"strings"
)

// GenerateHTML renders a print-ready standalone document: title,
// optional period line, summary block, data table.
func GenerateHTML(data ReportData) (string, error) {
	var b strings.Builder

	b.WriteString(`<html>
  <head>
    <style>
      body { font-family: Arial, sans-serif; margin: 20px; }
      h1 { color: #333; }
      table { width: 100%; border-collapse: collapse; margin-top: 20px; }
      th, td { border: 1px solid #ccc; padding: 8px; text-align: left; }
      th { background-color: #f4f4f4; }
      .summary { margin-bottom: 20px; }
    </style>
  </head>
  <body>
`)
	fmt.Fprintf(&b, "    <h1>%s</h1>\n", data.Title())
	if period := data.Period(); period != "" {
		fmt.Fprintf(&b, "    <p>%s</p>\n", period)
	}

	switch data.Type {
	case ReportSales:
		writeSalesHTML(&b, data)
	case ReportItems:
		writeItemsHTML(&b, data)
	case ReportCustomerLedger:
		writeLedgerHTML(&b, data)
	default:
		return "", ErrUnknownReport
	}

	b.WriteString("  </body>\n</html>\n")
	return b.String(), nil
}

func writeSalesHTML(b *strings.Builder, data ReportData) {
	report := data.Sales

	b.WriteString(`    <div class="summary">` + "\n")
	fmt.Fprintf(b, "      <p>Total Revenue: %s</p>\n", formatMoney(report.TotalRevenue))
	fmt.Fprintf(b, "      <p>Total Sales: %d</p>\n", report.TotalSales)
	fmt.Fprintf(b, "      <p>Total Quantity: %d</p>\n", report.TotalQuantity)
	fmt.Fprintf(b, "      <p>Unique Customers: %d</p>\n", report.UniqueCustomers)
	if report.TopSellingProduct != "" {
		fmt.Fprintf(b, "      <p>Top Selling Product: %s</p>\n", html.EscapeString(report.TopSellingProduct))
	}
	b.WriteString("    </div>\n")

	b.WriteString("    <table>\n")
	writeHeaderRow(b, "Product Name", "Customer", "Quantity", "Total Price", "Sale Date")
	for _, sale := range report.Sales {
		writeDataRow(b,
			sale.ProductName,
			sale.CustomerName,
			fmt.Sprintf("%d", sale.Quantity),
			formatMoney(sale.TotalPrice),
			formatDate(sale.SaleDate))
	}
	b.WriteString("    </table>\n")
}

func writeItemsHTML(b *strings.Builder, data ReportData) {
	export := data.Items

	b.WriteString(`    <div class="summary">` + "\n")
	fmt.Fprintf(b, "      <p>Total Products: %d</p>\n", export.Report.TotalProducts)
	fmt.Fprintf(b, "      <p>Total Stock: %d</p>\n", export.Report.TotalStock)
	fmt.Fprintf(b, "      <p>Inventory Value: %s</p>\n", formatMoney(export.Report.TotalInventoryValue))
	fmt.Fprintf(b, "      <p>Low Stock Count: %d</p>\n", export.Report.LowStockCount)
	b.WriteString("    </div>\n")

	if len(export.Products) == 0 {
		b.WriteString("    <p>No products available.</p>\n")
		return
	}

	b.WriteString("    <table>\n")
	writeHeaderRow(b, "Product Name", "Price", "Stock", "Stock Value")
	for i := range export.Products {
		product := &export.Products[i]
		writeDataRow(b,
			product.Name,
			formatMoney(product.Price),
			fmt.Sprintf("%d", product.Stock),
			formatMoney(product.Price*float64(product.Stock)))
	}
	b.WriteString("    </table>\n")
}

func writeLedgerHTML(b *strings.Builder, data ReportData) {
	report := data.Ledger

	b.WriteString(`    <div class="summary">` + "\n")
	fmt.Fprintf(b, "      <p>Total Customers: %d</p>\n", report.Summary.TotalCustomers)
	fmt.Fprintf(b, "      <p>Total Revenue: %s</p>\n", formatMoney(report.Summary.TotalRevenue))
	fmt.Fprintf(b, "      <p>Total Transactions: %d</p>\n", report.Summary.TotalTransactions)
	fmt.Fprintf(b, "      <p>Average Customer Value: %s</p>\n", formatMoney(report.Summary.AverageCustomerValue))
	if report.Summary.TopCustomer != "" {
		fmt.Fprintf(b, "      <p>Top Customer: %s</p>\n", html.EscapeString(report.Summary.TopCustomer))
	}
	b.WriteString("    </div>\n")

	b.WriteString("    <table>\n")
	writeHeaderRow(b, "Customer Name", "Email", "Total Purchases", "Total Amount", "Avg. Order Value", "Last Purchase")
	for i := range report.Customers {
		customer := &report.Customers[i]
		writeDataRow(b,
			customer.CustomerName,
			customer.Email,
			fmt.Sprintf("%d", customer.TotalPurchases),
			formatMoney(customer.TotalAmount),
			formatMoney(customer.AverageOrderValue),
			formatDate(customer.LastPurchase))
	}
	b.WriteString("    </table>\n")
}

func writeHeaderRow(b *strings.Builder, cells ...string) {
	b.WriteString("      <tr>\n")
	for _, cell := range cells {
		fmt.Fprintf(b, "        <th>%s</th>\n", cell)
	}
	b.WriteString("      </tr>\n")
}

func writeDataRow(b *strings.Builder, cells ...string) {
	b.WriteString("      <tr>\n")
	for _, cell := range cells {
		// cells carry caller-supplied names and emails
		fmt.Fprintf(b, "        <td>%s</td>\n", html.EscapeString(cell))
	}
	b.WriteString("      </tr>\n")
}
