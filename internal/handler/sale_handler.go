package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stockbook/inventory-service/internal/domain"
	"github.com/stockbook/inventory-service/internal/service"
)

type SaleHandler struct {
	saleService *service.SaleService
	logger      *zap.Logger
}

func NewSaleHandler(saleService *service.SaleService, logger *zap.Logger) *SaleHandler {
	return &SaleHandler{
		saleService: saleService,
		logger:      logger,
	}
}

func (h *SaleHandler) RecordSale(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}

	var req domain.RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	sale, err := h.saleService.RecordSale(c.Request.Context(), userID, req)
	if err != nil {
		h.writeSaleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sale)
}

func (h *SaleHandler) ReviseSale(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}

	var req domain.ReviseSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	sale, err := h.saleService.ReviseSale(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		h.writeSaleError(c, err)
		return
	}

	c.JSON(http.StatusOK, sale)
}

func (h *SaleHandler) RemoveSale(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}

	if err := h.saleService.RemoveSale(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Sale deleted successfully"})
}

func (h *SaleHandler) ListSales(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	search := c.Query("search")

	sales, err := h.saleService.ListSales(c.Request.Context(), userID, page, limit, search)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, sales)
}

// writeSaleError adds the stock detail the generic mapper cannot: a
// rejected deduction reports how much stock was actually available.
func (h *SaleHandler) writeSaleError(c *gin.Context, err error) {
	var stockErr *service.InsufficientStockError
	if errors.As(err, &stockErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Insufficient stock",
			"available": stockErr.Available,
			"requested": stockErr.Requested,
		})
		return
	}

	writeServiceError(c, h.logger, err)
}
