package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stockbook/inventory-service/internal/domain"
	"github.com/stockbook/inventory-service/internal/export"
	"github.com/stockbook/inventory-service/internal/service"
)

type ReportHandler struct {
	reportService *service.ReportService
	exportService *service.ExportService
	logger        *zap.Logger
}

func NewReportHandler(reportService *service.ReportService, exportService *service.ExportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		exportService: exportService,
		logger:        logger,
	}
}

func (h *ReportHandler) SalesReport(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}

	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}

	report, err := h.reportService.SalesReport(c.Request.Context(), userID, from, to)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) ItemsReport(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}

	report, err := h.reportService.ItemsReport(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) CustomerLedger(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}

	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}

	report, err := h.reportService.CustomerLedger(c.Request.Context(), userID, from, to)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) Export(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}

	req := domain.ExportRequest{
		ReportType: c.Query("type"),
		Format:     c.DefaultQuery("format", string(export.FormatPrint)),
		Email:      c.Query("email"),
	}

	// The items report has no date dimension, sales and ledger do.
	if fromStr := c.Query("from"); fromStr != "" {
		from, err := service.ParseDate(fromStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date"})
			return
		}
		req.From = &from
	}
	if toStr := c.Query("to"); toStr != "" {
		to, err := service.ParseDate(toStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date"})
			return
		}
		req.To = &to
	}
	if req.From != nil && req.To != nil && req.From.After(*req.To) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from date is after to date"})
		return
	}

	result, err := h.exportService.Export(c.Request.Context(), userID, req)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}

	if export.Format(req.Format) == export.FormatEmail {
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Report sent to %s", req.Email),
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.MimeType, result.Content)
}
