package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/stockbook/inventory-service/internal/domain"
	"github.com/stockbook/inventory-service/internal/export"
)

type ExportService struct {
	reports *ReportService
	// nil when outbound email is not configured
	mailer Mailer
	logger *zap.Logger
}

func NewExportService(reports *ReportService, mailer Mailer, logger *zap.Logger) *ExportService {
	return &ExportService{
		reports: reports,
		mailer:  mailer,
		logger:  logger,
	}
}

// Export computes the requested report and renders it in the requested
// format. The email format renders the spreadsheet, dispatches it as an
// attachment and returns an empty inline payload.
func (s *ExportService) Export(ctx context.Context, userID string, req domain.ExportRequest) (*domain.ExportResult, error) {
	data := export.ReportData{
		Type: export.ReportType(req.ReportType),
		From: req.From,
		To:   req.To,
	}

	var baseFilename string

	switch data.Type {
	case export.ReportSales:
		if req.From == nil || req.To == nil {
			return nil, fmt.Errorf("%w: date range required for sales report", ErrInvalidRequest)
		}
		report, err := s.reports.SalesReport(ctx, userID, *req.From, *req.To)
		if err != nil {
			return nil, err
		}
		data.Sales = report
		baseFilename = "SalesReport_" + time.Now().Format("20060102")

	case export.ReportItems:
		report, err := s.reports.ItemsReportExport(ctx, userID)
		if err != nil {
			return nil, err
		}
		data.Items = report
		// no period line on the items report
		data.From, data.To = nil, nil
		baseFilename = "ItemsReport_" + time.Now().Format("20060102")

	case export.ReportCustomerLedger:
		if req.From == nil || req.To == nil {
			return nil, fmt.Errorf("%w: date range required for customer ledger", ErrInvalidRequest)
		}
		report, err := s.reports.CustomerLedger(ctx, userID, *req.From, *req.To)
		if err != nil {
			return nil, err
		}
		data.Ledger = report
		baseFilename = "CustomerLedger_" + time.Now().Format("20060102")

	default:
		return nil, fmt.Errorf("%w: unknown report type %q", ErrInvalidRequest, req.ReportType)
	}

	switch export.Format(req.Format) {
	case export.FormatPrint:
		html, err := export.GenerateHTML(data)
		if err != nil {
			return nil, err
		}
		return &domain.ExportResult{
			Content:  []byte(html),
			Filename: baseFilename + ".html",
			MimeType: export.MimeHTML,
		}, nil

	case export.FormatExcel:
		content, err := export.GenerateExcel(data)
		if err != nil {
			return nil, err
		}
		return &domain.ExportResult{
			Content:  content,
			Filename: baseFilename + ".xlsx",
			MimeType: export.MimeExcel,
		}, nil

	case export.FormatPDF:
		content, err := export.GeneratePDF(data)
		if err != nil {
			return nil, err
		}
		return &domain.ExportResult{
			Content:  content,
			Filename: baseFilename + ".pdf",
			MimeType: export.MimePDF,
		}, nil

	case export.FormatEmail:
		return s.emailReport(ctx, data, baseFilename, req.Email)

	default:
		return nil, fmt.Errorf("%w: unknown export format %q", ErrInvalidRequest, req.Format)
	}
}

func (s *ExportService) emailReport(ctx context.Context, data export.ReportData, baseFilename, to string) (*domain.ExportResult, error) {
	if to == "" {
		return nil, fmt.Errorf("%w: recipient email address is required for email export", ErrInvalidRequest)
	}
	if s.mailer == nil {
		return nil, fmt.Errorf("%w: email delivery is not configured", ErrInvalidRequest)
	}

	content, err := export.GenerateExcel(data)
	if err != nil {
		return nil, err
	}

	reportName := strings.ToUpper(strings.ReplaceAll(string(data.Type), "-", " "))
	filename := baseFilename + ".xlsx"
	if err := s.mailer.SendReportEmail(ctx, to, reportName, content, filename); err != nil {
		s.logger.Error("Failed to send report email",
			zap.String("report_type", string(data.Type)),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %s", ErrDeliveryFailed, err)
	}

	s.logger.Info("Report emailed",
		zap.String("report_type", string(data.Type)),
		zap.String("filename", filename))

	return &domain.ExportResult{
		Content:  nil,
		Filename: "",
		MimeType: "text/plain",
	}, nil
}
