package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stockbook/inventory-service/internal/domain"
	"github.com/stockbook/inventory-service/internal/service"
)

func TestCreateCustomer(t *testing.T) {
	store := newFakeCustomerStore()
	svc := service.NewCustomerService(store, zap.NewNop())

	customer, err := svc.CreateCustomer(context.Background(), testUser, domain.CreateCustomerRequest{
		Name:        "Ada",
		Email:       "ada@example.com",
		PhoneNumber: "555-0100",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, customer.CustomerID)
	assert.Equal(t, testUser, customer.UserID)
}

func TestCreateCustomer_DuplicateEmail(t *testing.T) {
	store := newFakeCustomerStore(&domain.Customer{
		CustomerID: "c1",
		UserID:     testUser,
		Name:       "Ada",
		Email:      "ada@example.com",
	})
	svc := service.NewCustomerService(store, zap.NewNop())

	_, err := svc.CreateCustomer(context.Background(), testUser, domain.CreateCustomerRequest{
		Name:  "Ada Clone",
		Email: "ada@example.com",
	})
	assert.ErrorIs(t, err, service.ErrCustomerExists)
}

func TestGetCustomer_ScopedToOwner(t *testing.T) {
	store := newFakeCustomerStore(&domain.Customer{
		CustomerID: "c1",
		UserID:     "someone-else",
		Name:       "Ada",
	})
	svc := service.NewCustomerService(store, zap.NewNop())

	_, err := svc.GetCustomer(context.Background(), testUser, "c1")
	assert.ErrorIs(t, err, service.ErrCustomerNotFound)
}

func TestDeleteCustomer_HidesFromListing(t *testing.T) {
	store := newFakeCustomerStore(&domain.Customer{
		CustomerID: "c1",
		UserID:     testUser,
		Name:       "Ada",
	})
	svc := service.NewCustomerService(store, zap.NewNop())

	require.NoError(t, svc.DeleteCustomer(context.Background(), testUser, "c1"))

	customers, err := svc.ListCustomers(context.Background(), testUser)
	require.NoError(t, err)
	assert.Empty(t, customers)
}
