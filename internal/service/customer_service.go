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

type CustomerService struct {
	customers CustomerStore
	logger    *zap.Logger
}

func NewCustomerService(customers CustomerStore, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		customers: customers,
		logger:    logger,
	}
}

func (s *CustomerService) CreateCustomer(ctx context.Context, userID string, req domain.CreateCustomerRequest) (*domain.Customer, error) {
	existing, err := s.customers.GetByEmail(ctx, userID, req.Email)
	if err != nil && !errors.Is(err, repository.ErrCustomerNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCustomerExists
	}

	now := time.Now()
	customer := &domain.Customer{
		CustomerID:  uuid.NewString(),
		UserID:      userID,
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		IsDeleted:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.customers.Create(ctx, customer); err != nil {
		s.logger.Error("Failed to save customer",
			zap.String("customer_id", customer.CustomerID),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Customer created successfully",
		zap.String("customer_id", customer.CustomerID))

	return customer, nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, userID, customerID string) (*domain.Customer, error) {
	customer, err := s.customers.Get(ctx, customerID)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	if customer.UserID != userID || customer.IsDeleted {
		return nil, ErrCustomerNotFound
	}
	return customer, nil
}

func (s *CustomerService) ListCustomers(ctx context.Context, userID string) ([]domain.Customer, error) {
	return s.customers.ListActive(ctx, userID)
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, userID, customerID string, req domain.UpdateCustomerRequest) (*domain.Customer, error) {
	customer, err := s.GetCustomer(ctx, userID, customerID)
	if err != nil {
		return nil, err
	}

	customer.Name = req.Name
	customer.Email = req.Email
	customer.PhoneNumber = req.PhoneNumber
	customer.Address = req.Address

	if err := s.customers.Update(ctx, customer); err != nil {
		s.logger.Error("Failed to update customer",
			zap.String("customer_id", customerID),
			zap.Error(err))
		return nil, err
	}

	return customer, nil
}

func (s *CustomerService) DeleteCustomer(ctx context.Context, userID, customerID string) error {
	if _, err := s.GetCustomer(ctx, userID, customerID); err != nil {
		return err
	}

	if err := s.customers.SoftDelete(ctx, customerID); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return ErrCustomerNotFound
		}
		return err
	}

	s.logger.Info("Customer deleted", zap.String("customer_id", customerID))
	return nil
}
