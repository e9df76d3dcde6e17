package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stockbook/inventory-service/internal/domain"
	"github.com/stockbook/inventory-service/internal/events"
	"github.com/stockbook/inventory-service/internal/repository"
)

type SaleService struct {
	sales    SaleStore
	products ProductStore
	// nil when event publishing is disabled
	publisher Publisher
	logger    *zap.Logger
	// restore stock when a sale is soft-deleted; off by default so
	// deleting a sale preserves historical stock accounting
	restoreOnDelete bool
}

func NewSaleService(sales SaleStore, products ProductStore, publisher Publisher, logger *zap.Logger, restoreOnDelete bool) *SaleService {
	return &SaleService{
		sales:           sales,
		products:        products,
		publisher:       publisher,
		logger:          logger,
		restoreOnDelete: restoreOnDelete,
	}
}

// resolveProduct binds a sale to exactly one product. The stable id
// wins when the caller supplies it; otherwise the per-owner unique name
// resolves it. The sale stores the id, the name is only a snapshot.
func (s *SaleService) resolveProduct(ctx context.Context, userID, productID, productName string) (*domain.Product, error) {
	var (
		product *domain.Product
		err     error
	)
	if productID != "" {
		product, err = s.products.Get(ctx, productID)
	} else {
		product, err = s.products.GetByName(ctx, userID, productName)
	}
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if product.UserID != userID || product.IsDeleted {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *SaleService) RecordSale(ctx context.Context, userID string, req domain.RecordSaleRequest) (*domain.SaleResponse, error) {
	saleDate, err := ParseDate(req.SaleDate)
	if err != nil {
		return nil, err
	}

	product, err := s.resolveProduct(ctx, userID, req.ProductID, req.ProductName)
	if err != nil {
		return nil, err
	}

	newStock, previousStock, err := s.products.DeductStock(ctx, product.ProductID, req.Quantity)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientStock) {
			return nil, &InsufficientStockError{Available: previousStock, Requested: req.Quantity}
		}
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	now := time.Now()
	sale := &domain.Sale{
		SaleID:       uuid.NewString(),
		UserID:       userID,
		ProductID:    product.ProductID,
		CustomerID:   req.CustomerID,
		ProductName:  product.Name,
		CustomerName: req.CustomerName,
		Quantity:     req.Quantity,
		TotalPrice:   req.TotalPrice,
		SaleDate:     saleDate,
		IsDeleted:    false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.sales.Insert(ctx, sale); err != nil {
		// Compensate the deduction so stock matches the recorded sales.
		if _, restoreErr := s.products.RestoreStock(ctx, product.ProductID, req.Quantity); restoreErr != nil {
			s.logger.Error("Failed to compensate stock after sale insert failure",
				zap.String("product_id", product.ProductID),
				zap.Int("quantity", req.Quantity),
				zap.Error(restoreErr))
		}
		return nil, err
	}

	s.logger.Info("Sale recorded",
		zap.String("sale_id", sale.SaleID),
		zap.String("product_id", product.ProductID),
		zap.Int("quantity", req.Quantity),
		zap.Int("previous_stock", previousStock),
		zap.Int("new_stock", newStock))

	s.publishSaleRecorded(sale, newStock)

	resp := sale.Response()
	return &resp, nil
}

func (s *SaleService) ReviseSale(ctx context.Context, userID, saleID string, req domain.ReviseSaleRequest) (*domain.SaleResponse, error) {
	saleDate, err := ParseDate(req.SaleDate)
	if err != nil {
		return nil, err
	}

	sale, err := s.getOwnedSale(ctx, userID, saleID)
	if err != nil {
		return nil, err
	}

	product, err := s.resolveProduct(ctx, userID, req.ProductID, req.ProductName)
	if err != nil {
		return nil, err
	}

	// Two-phase: give the old quantity back to the product the sale was
	// originally recorded against, then deduct the new quantity from the
	// (possibly different) product it now references.
	if _, err := s.products.RestoreStock(ctx, sale.ProductID, sale.Quantity); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	newStock, previousStock, err := s.products.DeductStock(ctx, product.ProductID, req.Quantity)
	if err != nil {
		// Undo the restore so the failed revision leaves stock untouched.
		if _, _, undoErr := s.products.DeductStock(ctx, sale.ProductID, sale.Quantity); undoErr != nil {
			s.logger.Error("Failed to undo stock restore after revise failure",
				zap.String("sale_id", saleID),
				zap.String("product_id", sale.ProductID),
				zap.Error(undoErr))
		}
		if errors.Is(err, repository.ErrInsufficientStock) {
			return nil, &InsufficientStockError{Available: previousStock, Requested: req.Quantity}
		}
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	sale.ProductID = product.ProductID
	sale.ProductName = product.Name
	sale.CustomerName = req.CustomerName
	sale.Quantity = req.Quantity
	sale.TotalPrice = req.TotalPrice
	sale.SaleDate = saleDate

	if err := s.sales.Update(ctx, sale); err != nil {
		s.logger.Error("Failed to update sale",
			zap.String("sale_id", saleID),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Sale revised",
		zap.String("sale_id", saleID),
		zap.String("product_id", product.ProductID),
		zap.Int("quantity", req.Quantity),
		zap.Int("new_stock", newStock))

	resp := sale.Response()
	return &resp, nil
}

func (s *SaleService) RemoveSale(ctx context.Context, userID, saleID string) error {
	sale, err := s.getOwnedSale(ctx, userID, saleID)
	if err != nil {
		return err
	}

	if err := s.sales.SoftDelete(ctx, saleID); err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			return ErrSaleNotFound
		}
		return err
	}

	if s.restoreOnDelete {
		if _, err := s.products.RestoreStock(ctx, sale.ProductID, sale.Quantity); err != nil {
			s.logger.Error("Failed to restore stock for deleted sale",
				zap.String("sale_id", saleID),
				zap.String("product_id", sale.ProductID),
				zap.Error(err))
		}
	}

	s.logger.Info("Sale deleted",
		zap.String("sale_id", saleID),
		zap.Bool("stock_restored", s.restoreOnDelete))

	return nil
}

func (s *SaleService) ListSales(ctx context.Context, userID string, page, limit int, search string) (*domain.PaginatedSales, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	sales, total, err := s.sales.FindPaginated(ctx, userID, page, limit, search)
	if err != nil {
		return nil, err
	}

	responses := make([]domain.SaleResponse, 0, len(sales))
	for i := range sales {
		responses = append(responses, sales[i].Response())
	}

	totalPages := (total + limit - 1) / limit
	return &domain.PaginatedSales{
		Data:        responses,
		TotalPages:  totalPages,
		CurrentPage: page,
	}, nil
}

func (s *SaleService) getOwnedSale(ctx context.Context, userID, saleID string) (*domain.Sale, error) {
	sale, err := s.sales.Get(ctx, saleID)
	if err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, err
	}
	if sale.UserID != userID || sale.IsDeleted {
		return nil, ErrSaleNotFound
	}
	return sale, nil
}

func (s *SaleService) publishSaleRecorded(sale *domain.Sale, newStock int) {
	if s.publisher == nil {
		return
	}

	if err := s.publisher.PublishSaleRecorded(events.SaleRecordedEvent{
		EventID:     uuid.NewString(),
		SaleID:      sale.SaleID,
		UserID:      sale.UserID,
		ProductID:   sale.ProductID,
		CustomerID:  sale.CustomerID,
		ProductName: sale.ProductName,
		Quantity:    sale.Quantity,
		TotalPrice:  sale.TotalPrice,
		SaleDate:    sale.SaleDate,
		Timestamp:   time.Now(),
	}); err != nil {
		s.logger.Error("Failed to publish sale event",
			zap.String("sale_id", sale.SaleID),
			zap.Error(err))
	}

	if err := s.publisher.PublishStockDeducted(events.StockDeductedEvent{
		EventID:   uuid.NewString(),
		ProductID: sale.ProductID,
		Quantity:  sale.Quantity,
		NewStock:  newStock,
		Timestamp: time.Now(),
	}); err != nil {
		s.logger.Error("Failed to publish stock event",
			zap.String("product_id", sale.ProductID),
			zap.Error(err))
	}
}

// ParseDate accepts the API's plain date form or a full RFC3339 stamp.
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, ErrInvalidRequest
	}
	return t, nil
}
