package domain

import (
	"time"
)

type Product struct {
	ProductID   string    `dynamodbav:"product_id"  json:"product_id"`
	UserID      string    `dynamodbav:"user_id"     json:"user_id"`
	Name        string    `dynamodbav:"name"        json:"name"`
	Description string    `dynamodbav:"description" json:"description"`
	Price       float64   `dynamodbav:"price"       json:"price"`
	Stock       int       `dynamodbav:"stock"       json:"stock"`
	IsDeleted   bool      `dynamodbav:"is_deleted"  json:"-"`
	CreatedAt   time.Time `dynamodbav:"created_at"  json:"created_at"`
	UpdatedAt   time.Time `dynamodbav:"updated_at"  json:"updated_at"`
}

type CreateProductRequest struct {
	Name        string  `json:"name"        binding:"required"`
	Description string  `json:"description" binding:"required"`
	Price       float64 `json:"price"       binding:"required,gt=0"`
	Stock       int     `json:"stock"       binding:"required,gte=0"`
}

type UpdateProductRequest struct {
	Name        string  `json:"name"        binding:"required"`
	Description string  `json:"description" binding:"required"`
	Price       float64 `json:"price"       binding:"required,gt=0"`
	Stock       int     `json:"stock"       binding:"gte=0"`
}

type ProductResponse struct {
	ProductID   string  `json:"product_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
}

func (p *Product) Response() ProductResponse {
	return ProductResponse{
		ProductID:   p.ProductID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
	}
}
