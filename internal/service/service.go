package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stockbook/inventory-service/internal/domain"
	"github.com/stockbook/inventory-service/internal/events"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrProductExists     = errors.New("product already exists")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrCustomerExists    = errors.New("customer already exists")
	ErrSaleNotFound      = errors.New("sale not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidRequest    = errors.New("invalid request")
	ErrDeliveryFailed    = errors.New("email delivery failed")
)

// InsufficientStockError carries the detail a caller needs to correct
// the request; errors.Is(err, ErrInsufficientStock) still matches.
type InsufficientStockError struct {
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: requested %d, available %d", e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

type ProductStore interface {
	Create(ctx context.Context, product *domain.Product) error
	Get(ctx context.Context, productID string) (*domain.Product, error)
	GetByName(ctx context.Context, userID, name string) (*domain.Product, error)
	ListActive(ctx context.Context, userID string) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	SoftDelete(ctx context.Context, productID string) error
	DeductStock(ctx context.Context, productID string, quantity int) (newStock int, previousStock int, err error)
	RestoreStock(ctx context.Context, productID string, quantity int) (newStock int, err error)
}

type CustomerStore interface {
	Create(ctx context.Context, customer *domain.Customer) error
	Get(ctx context.Context, customerID string) (*domain.Customer, error)
	GetByEmail(ctx context.Context, userID, email string) (*domain.Customer, error)
	ListActive(ctx context.Context, userID string) ([]domain.Customer, error)
	Update(ctx context.Context, customer *domain.Customer) error
	SoftDelete(ctx context.Context, customerID string) error
}

type SaleStore interface {
	Insert(ctx context.Context, sale *domain.Sale) error
	Get(ctx context.Context, saleID string) (*domain.Sale, error)
	Update(ctx context.Context, sale *domain.Sale) error
	SoftDelete(ctx context.Context, saleID string) error
	FindByDateRange(ctx context.Context, userID string, start, end time.Time) ([]domain.Sale, error)
	FindPaginated(ctx context.Context, userID string, page, limit int, search string) ([]domain.Sale, int, error)
}

// Publisher is satisfied by events.KafkaProducer; publishing is
// fire-and-forget from the services' point of view.
type Publisher interface {
	PublishSaleRecorded(event events.SaleRecordedEvent) error
	PublishStockDeducted(event events.StockDeductedEvent) error
}

type Mailer interface {
	SendReportEmail(ctx context.Context, to, reportName string, attachment []byte, filename string) error
}
