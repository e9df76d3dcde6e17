package domain

import (
	"time"
)

type Customer struct {
	CustomerID  string    `dynamodbav:"customer_id"  json:"customer_id"`
	UserID      string    `dynamodbav:"user_id"      json:"user_id"`
	Name        string    `dynamodbav:"name"         json:"name"`
	Email       string    `dynamodbav:"email"        json:"email"`
	PhoneNumber string    `dynamodbav:"phone_number" json:"phone_number"`
	Address     string    `dynamodbav:"address"      json:"address"`
	IsDeleted   bool      `dynamodbav:"is_deleted"   json:"-"`
	CreatedAt   time.Time `dynamodbav:"created_at"   json:"created_at"`
	UpdatedAt   time.Time `dynamodbav:"updated_at"   json:"updated_at"`
}

type CreateCustomerRequest struct {
	Name        string `json:"name"         binding:"required"`
	Email       string `json:"email"        binding:"required,email"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	Address     string `json:"address"      binding:"required"`
}

type UpdateCustomerRequest struct {
	Name        string `json:"name"         binding:"required"`
	Email       string `json:"email"        binding:"required,email"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	Address     string `json:"address"      binding:"required"`
}

type CustomerResponse struct {
	CustomerID  string `json:"customer_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}

func (c *Customer) Response() CustomerResponse {
	return CustomerResponse{
		CustomerID:  c.CustomerID,
		Name:        c.Name,
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
		Address:     c.Address,
	}
}
