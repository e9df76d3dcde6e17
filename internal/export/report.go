// Package export renders a computed report into one of the supported
// artifact formats. All renderers consume the same tagged ReportData
// union; exactly one payload field is set, selected by Type.
package export

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/stockbook/inventory-service/internal/domain"
)

type ReportType string

const (
	ReportSales          ReportType = "sales"
	ReportItems          ReportType = "items"
	ReportCustomerLedger ReportType = "customer-ledger"
)

type Format string

const (
	FormatPrint Format = "print"
	FormatExcel Format = "excel"
	FormatPDF   Format = "pdf"
	FormatEmail Format = "email"
)

const (
	MimeHTML  = "text/html"
	MimeExcel = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MimePDF   = "application/pdf"
)

// ErrUnknownReport is returned when a report type or payload reaches a
// renderer that the boundary layer should have rejected.
var ErrUnknownReport = errors.New("unknown report type")

type ReportData struct {
	Type   ReportType
	Sales  *domain.SalesReport
	Items  *domain.ItemsReportExport
	Ledger *domain.CustomerLedgerReport
	From   *time.Time
	To     *time.Time
}

// Title returns the display heading, e.g. "CUSTOMER LEDGER Report".
func (d ReportData) Title() string {
	return strings.ToUpper(strings.ReplaceAll(string(d.Type), "-", " ")) + " Report"
}

// Period returns the "Period: from - to" line, or "" when the report
// has no date range (items).
func (d ReportData) Period() string {
	if d.From == nil || d.To == nil {
		return ""
	}
	return fmt.Sprintf("Period: %s - %s", formatDate(*d.From), formatDate(*d.To))
}

func formatDate(t time.Time) string {
	return t.Format("01/02/2006")
}

func formatMoney(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
