package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stockbook/inventory-service/internal/domain"
	"github.com/stockbook/inventory-service/internal/repository"
)

type ProductService struct {
	products ProductStore
	logger   *zap.Logger
}

func NewProductService(products ProductStore, logger *zap.Logger) *ProductService {
	return &ProductService{
		products: products,
		logger:   logger,
	}
}

func (s *ProductService) CreateProduct(ctx context.Context, userID string, req domain.CreateProductRequest) (*domain.Product, error) {
	// Names are the human handle for products, keep them unique per owner.
	existing, err := s.products.GetByName(ctx, userID, req.Name)
	if err != nil && !errors.Is(err, repository.ErrProductNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrProductExists
	}

	now := time.Now()
	product := &domain.Product{
		ProductID:   uuid.NewString(),
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		IsDeleted:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.products.Create(ctx, product); err != nil {
		s.logger.Error("Failed to save product",
			zap.String("product_id", product.ProductID),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Product created successfully",
		zap.String("product_id", product.ProductID),
		zap.Int("initial_stock", product.Stock))

	return product, nil
}

func (s *ProductService) GetProduct(ctx context.Context, userID, productID string) (*domain.Product, error) {
	product, err := s.products.Get(ctx, productID)
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

func (s *ProductService) ListProducts(ctx context.Context, userID string) ([]domain.Product, error) {
	return s.products.ListActive(ctx, userID)
}

func (s *ProductService) UpdateProduct(ctx context.Context, userID, productID string, req domain.UpdateProductRequest) (*domain.Product, error) {
	product, err := s.GetProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.Stock = req.Stock

	if err := s.products.Update(ctx, product); err != nil {
		s.logger.Error("Failed to update product",
			zap.String("product_id", productID),
			zap.Error(err))
		return nil, err
	}

	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, userID, productID string) error {
	if _, err := s.GetProduct(ctx, userID, productID); err != nil {
		return err
	}

	if err := s.products.SoftDelete(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	s.logger.Info("Product deleted", zap.String("product_id", productID))
	return nil
}
