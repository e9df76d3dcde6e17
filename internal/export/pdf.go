package export

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"
)

// Page geometry in points, Letter portrait (612x792).
const (
	tableStartX  = 50.0
	topMargin    = 50.0
	rowHeight    = 25.0
	headerHeight = 30.0
	// rows that would cross this Y start a new page
	pageBreakY  = 750.0
	cellPadding = 5.0
)

// GeneratePDF renders the paginated document: centered title, optional
// centered period line, Summary block, section heading, ruled table.
func GeneratePDF(data ReportData) ([]byte, error) {
	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(topMargin, topMargin, topMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 24, data.Title(), "", 1, "C", false, 0, "")
	if period := data.Period(); period != "" {
		pdf.SetFont("Helvetica", "", 12)
		pdf.CellFormat(0, 16, period, "", 1, "C", false, 0, "")
	}
	currentY := pdf.GetY() + 24

	switch data.Type {
	case ReportSales:
		report := data.Sales
		summary := []string{
			fmt.Sprintf("Total Revenue: %s", formatMoney(report.TotalRevenue)),
			fmt.Sprintf("Total Sales: %d", report.TotalSales),
			fmt.Sprintf("Total Quantity: %d", report.TotalQuantity),
			fmt.Sprintf("Unique Customers: %d", report.UniqueCustomers),
		}
		if report.TopSellingProduct != "" {
			summary = append(summary, fmt.Sprintf("Top Selling Product: %s", report.TopSellingProduct))
		}
		currentY = writeSummaryBlock(pdf, currentY, summary)
		currentY = writeSectionHeading(pdf, currentY, "Transactions")

		headers := []string{"Product Name", "Customer", "Qty", "Total Price", "Sale Date"}
		widths := []float64{150, 120, 50, 80, 90}
		rows := make([][]string, 0, len(report.Sales))
		for _, sale := range report.Sales {
			rows = append(rows, []string{
				sale.ProductName,
				sale.CustomerName,
				strconv.Itoa(sale.Quantity),
				formatMoney(sale.TotalPrice),
				formatDate(sale.SaleDate),
			})
		}
		drawTable(pdf, headers, widths, rows, currentY)

	case ReportItems:
		export := data.Items
		currentY = writeSummaryBlock(pdf, currentY, []string{
			fmt.Sprintf("Total Products: %d", export.Report.TotalProducts),
			fmt.Sprintf("Total Stock: %d", export.Report.TotalStock),
			fmt.Sprintf("Inventory Value: %s", formatMoney(export.Report.TotalInventoryValue)),
			fmt.Sprintf("Low Stock Count: %d", export.Report.LowStockCount),
		})
		if len(export.Products) == 0 {
			pdf.SetFont("Helvetica", "", 12)
			pdf.SetXY(tableStartX, currentY)
			pdf.CellFormat(0, 14, "No products available.", "", 1, "L", false, 0, "")
			break
		}
		currentY = writeSectionHeading(pdf, currentY, "Products")

		headers := []string{"Product Name", "Price", "Stock", "Stock Value"}
		widths := []float64{200, 80, 80, 120}
		rows := make([][]string, 0, len(export.Products))
		for i := range export.Products {
			product := &export.Products[i]
			rows = append(rows, []string{
				product.Name,
				formatMoney(product.Price),
				strconv.Itoa(product.Stock),
				formatMoney(product.Price * float64(product.Stock)),
			})
		}
		drawTable(pdf, headers, widths, rows, currentY)

	case ReportCustomerLedger:
		report := data.Ledger
		summary := []string{
			fmt.Sprintf("Total Customers: %d", report.Summary.TotalCustomers),
			fmt.Sprintf("Total Revenue: %s", formatMoney(report.Summary.TotalRevenue)),
			fmt.Sprintf("Total Transactions: %d", report.Summary.TotalTransactions),
			fmt.Sprintf("Average Customer Value: %s", formatMoney(report.Summary.AverageCustomerValue)),
		}
		if report.Summary.TopCustomer != "" {
			summary = append(summary, fmt.Sprintf("Top Customer: %s", report.Summary.TopCustomer))
		}
		currentY = writeSummaryBlock(pdf, currentY, summary)
		currentY = writeSectionHeading(pdf, currentY, "Customers")

		headers := []string{"Customer Name", "Email", "Purchases", "Amount", "Avg. Order", "Last Purchase"}
		widths := []float64{100, 120, 70, 70, 70, 90}
		rows := make([][]string, 0, len(report.Customers))
		for i := range report.Customers {
			customer := &report.Customers[i]
			rows = append(rows, []string{
				customer.CustomerName,
				customer.Email,
				strconv.Itoa(customer.TotalPurchases),
				formatMoney(customer.TotalAmount),
				formatMoney(customer.AverageOrderValue),
				formatDate(customer.LastPurchase),
			})
		}
		drawTable(pdf, headers, widths, rows, currentY)

	default:
		return nil, ErrUnknownReport
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSummaryBlock(pdf *gofpdf.Fpdf, startY float64, lines []string) float64 {
	currentY := startY
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(tableStartX, currentY)
	pdf.CellFormat(0, 16, "Summary", "", 1, "L", false, 0, "")
	currentY += 25

	pdf.SetFont("Helvetica", "", 11)
	for _, line := range lines {
		pdf.SetXY(tableStartX, currentY)
		pdf.CellFormat(0, 13, line, "", 1, "L", false, 0, "")
		currentY += 18
	}

	return currentY + 20
}

func writeSectionHeading(pdf *gofpdf.Fpdf, startY float64, heading string) float64 {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(tableStartX, startY)
	pdf.CellFormat(0, 16, heading, "", 1, "L", false, 0, "")
	return startY + 30
}

// drawTable lays out a fixed-column-width ruled table starting at
// startY. Rows that would cross the page's bottom threshold move to a
// fresh page where the header band is redrawn first, so every page of
// the table carries its headers. Returns the Y below the last row so
// the caller can keep laying out.
func drawTable(pdf *gofpdf.Fpdf, headers []string, widths []float64, rows [][]string, startY float64) float64 {
	totalWidth := 0.0
	for _, w := range widths {
		totalWidth += w
	}
	currentY := startY

	drawHeaderBand := func(y float64) {
		pdf.SetFillColor(240, 240, 240)
		pdf.Rect(tableStartX, y, totalWidth, headerHeight, "F")
		pdf.SetDrawColor(0, 0, 0)
		pdf.SetLineWidth(1)
		pdf.Rect(tableStartX, y, totalWidth, headerHeight, "D")

		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "B", 10)
		x := tableStartX
		for i, header := range headers {
			if i > 0 {
				pdf.Line(x, y, x, y+headerHeight)
			}
			pdf.SetXY(x, y+8)
			pdf.CellFormat(widths[i], 14, header, "", 0, "C", false, 0, "")
			x += widths[i]
		}
	}

	drawHeaderBand(currentY)
	currentY += headerHeight

	pdf.SetFont("Helvetica", "", 9)
	for rowIndex, row := range rows {
		if currentY+rowHeight > pageBreakY {
			pdf.AddPage()
			currentY = topMargin
			drawHeaderBand(currentY)
			currentY += headerHeight
			pdf.SetFont("Helvetica", "", 9)
		}

		if rowIndex%2 == 1 {
			pdf.SetFillColor(249, 249, 249)
			pdf.Rect(tableStartX, currentY, totalWidth, rowHeight, "F")
		}

		pdf.SetDrawColor(204, 204, 204)
		pdf.Rect(tableStartX, currentY, totalWidth, rowHeight, "D")

		x := tableStartX
		for colIndex, cell := range row {
			if colIndex > 0 {
				pdf.Line(x, currentY, x, currentY+rowHeight)
			}

			interior := widths[colIndex] - 2*cellPadding
			display := truncateToWidth(pdf, cell, interior)

			align := "L"
			if isNumericCell(cell) {
				align = "R"
			}

			pdf.SetXY(x+cellPadding, currentY+8)
			pdf.CellFormat(interior, 12, display, "", 0, align, false, 0, "")
			x += widths[colIndex]
		}

		currentY += rowHeight
	}

	return currentY + 10
}

// truncateToWidth shortens s until it fits maxWidth in the current
// font, appending an ellipsis when anything was cut. The returned
// string, ellipsis included, never renders wider than maxWidth.
func truncateToWidth(pdf *gofpdf.Fpdf, s string, maxWidth float64) string {
	if pdf.GetStringWidth(s) <= maxWidth {
		return s
	}

	trimmed := s
	for len(trimmed) > 0 && pdf.GetStringWidth(trimmed+"...") > maxWidth {
		trimmed = trimmed[:len(trimmed)-1]
	}
	return trimmed + "..."
}

// Numeric and currency cells are right-aligned, text is left-aligned.
func isNumericCell(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '$' {
		return true
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
