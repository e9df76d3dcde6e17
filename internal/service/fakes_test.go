package service_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/stockbook/inventory-service/internal/domain"
	"github.com/stockbook/inventory-service/internal/events"
	"github.com/stockbook/inventory-service/internal/repository"
)

// In-memory stores covering the same contracts the DynamoDB
// repositories implement, including the conditional stock deduction.

type fakeProductStore struct {
	order    []string
	products map[string]*domain.Product
}

func newFakeProductStore(products ...*domain.Product) *fakeProductStore {
	s := &fakeProductStore{products: make(map[string]*domain.Product)}
	for _, p := range products {
		cp := *p
		s.products[p.ProductID] = &cp
		s.order = append(s.order, p.ProductID)
	}
	return s
}

func (s *fakeProductStore) Create(_ context.Context, p *domain.Product) error {
	cp := *p
	s.products[p.ProductID] = &cp
	s.order = append(s.order, p.ProductID)
	return nil
}

func (s *fakeProductStore) Get(_ context.Context, productID string) (*domain.Product, error) {
	p, ok := s.products[productID]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *fakeProductStore) GetByName(_ context.Context, userID, name string) (*domain.Product, error) {
	for _, id := range s.order {
		p := s.products[id]
		if p.UserID == userID && p.Name == name && !p.IsDeleted {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repository.ErrProductNotFound
}

func (s *fakeProductStore) ListActive(_ context.Context, userID string) ([]domain.Product, error) {
	var out []domain.Product
	for _, id := range s.order {
		p := s.products[id]
		if p.UserID == userID && !p.IsDeleted {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *fakeProductStore) Update(_ context.Context, p *domain.Product) error {
	if _, ok := s.products[p.ProductID]; !ok {
		return repository.ErrProductNotFound
	}
	cp := *p
	s.products[p.ProductID] = &cp
	return nil
}

func (s *fakeProductStore) SoftDelete(_ context.Context, productID string) error {
	p, ok := s.products[productID]
	if !ok {
		return repository.ErrProductNotFound
	}
	p.IsDeleted = true
	return nil
}

func (s *fakeProductStore) DeductStock(_ context.Context, productID string, quantity int) (int, int, error) {
	p, ok := s.products[productID]
	if !ok {
		return 0, 0, repository.ErrProductNotFound
	}
	if p.Stock < quantity {
		return 0, p.Stock, repository.ErrInsufficientStock
	}
	previous := p.Stock
	p.Stock -= quantity
	return p.Stock, previous, nil
}

func (s *fakeProductStore) RestoreStock(_ context.Context, productID string, quantity int) (int, error) {
	p, ok := s.products[productID]
	if !ok {
		return 0, repository.ErrProductNotFound
	}
	p.Stock += quantity
	return p.Stock, nil
}

func (s *fakeProductStore) stock(productID string) int {
	return s.products[productID].Stock
}

type fakeCustomerStore struct {
	order     []string
	customers map[string]*domain.Customer
}

func newFakeCustomerStore(customers ...*domain.Customer) *fakeCustomerStore {
	s := &fakeCustomerStore{customers: make(map[string]*domain.Customer)}
	for _, c := range customers {
		cp := *c
		s.customers[c.CustomerID] = &cp
		s.order = append(s.order, c.CustomerID)
	}
	return s
}

func (s *fakeCustomerStore) Create(_ context.Context, c *domain.Customer) error {
	cp := *c
	s.customers[c.CustomerID] = &cp
	s.order = append(s.order, c.CustomerID)
	return nil
}

func (s *fakeCustomerStore) Get(_ context.Context, customerID string) (*domain.Customer, error) {
	c, ok := s.customers[customerID]
	if !ok {
		return nil, repository.ErrCustomerNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *fakeCustomerStore) GetByEmail(_ context.Context, userID, email string) (*domain.Customer, error) {
	for _, id := range s.order {
		c := s.customers[id]
		if c.UserID == userID && c.Email == email && !c.IsDeleted {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repository.ErrCustomerNotFound
}

func (s *fakeCustomerStore) ListActive(_ context.Context, userID string) ([]domain.Customer, error) {
	var out []domain.Customer
	for _, id := range s.order {
		c := s.customers[id]
		if c.UserID == userID && !c.IsDeleted {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *fakeCustomerStore) Update(_ context.Context, c *domain.Customer) error {
	if _, ok := s.customers[c.CustomerID]; !ok {
		return repository.ErrCustomerNotFound
	}
	cp := *c
	s.customers[c.CustomerID] = &cp
	return nil
}

func (s *fakeCustomerStore) SoftDelete(_ context.Context, customerID string) error {
	c, ok := s.customers[customerID]
	if !ok {
		return repository.ErrCustomerNotFound
	}
	c.IsDeleted = true
	return nil
}

type fakeSaleStore struct {
	order []string
	sales map[string]*domain.Sale

	insertErr error
}

func newFakeSaleStore(sales ...*domain.Sale) *fakeSaleStore {
	s := &fakeSaleStore{sales: make(map[string]*domain.Sale)}
	for _, sale := range sales {
		cp := *sale
		s.sales[sale.SaleID] = &cp
		s.order = append(s.order, sale.SaleID)
	}
	return s
}

func (s *fakeSaleStore) Insert(_ context.Context, sale *domain.Sale) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	cp := *sale
	s.sales[sale.SaleID] = &cp
	s.order = append(s.order, sale.SaleID)
	return nil
}

func (s *fakeSaleStore) Get(_ context.Context, saleID string) (*domain.Sale, error) {
	sale, ok := s.sales[saleID]
	if !ok {
		return nil, repository.ErrSaleNotFound
	}
	cp := *sale
	return &cp, nil
}

func (s *fakeSaleStore) Update(_ context.Context, sale *domain.Sale) error {
	if _, ok := s.sales[sale.SaleID]; !ok {
		return repository.ErrSaleNotFound
	}
	cp := *sale
	s.sales[sale.SaleID] = &cp
	return nil
}

func (s *fakeSaleStore) SoftDelete(_ context.Context, saleID string) error {
	sale, ok := s.sales[saleID]
	if !ok {
		return repository.ErrSaleNotFound
	}
	sale.IsDeleted = true
	return nil
}

func (s *fakeSaleStore) FindByDateRange(_ context.Context, userID string, start, end time.Time) ([]domain.Sale, error) {
	var out []domain.Sale
	for _, id := range s.order {
		sale := s.sales[id]
		if sale.UserID != userID || sale.IsDeleted {
			continue
		}
		if sale.SaleDate.Before(start) || sale.SaleDate.After(end) {
			continue
		}
		out = append(out, *sale)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SaleDate.Before(out[j].SaleDate)
	})
	return out, nil
}

func (s *fakeSaleStore) FindPaginated(_ context.Context, userID string, page, limit int, search string) ([]domain.Sale, int, error) {
	var matched []domain.Sale
	for _, id := range s.order {
		sale := s.sales[id]
		if sale.UserID != userID || sale.IsDeleted {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(sale.ProductName), strings.ToLower(search)) {
			continue
		}
		matched = append(matched, *sale)
	}

	total := len(matched)
	offset := (page - 1) * limit
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

type fakePublisher struct {
	saleEvents  []events.SaleRecordedEvent
	stockEvents []events.StockDeductedEvent
}

func (p *fakePublisher) PublishSaleRecorded(event events.SaleRecordedEvent) error {
	p.saleEvents = append(p.saleEvents, event)
	return nil
}

func (p *fakePublisher) PublishStockDeducted(event events.StockDeductedEvent) error {
	p.stockEvents = append(p.stockEvents, event)
	return nil
}

type sentMail struct {
	to         string
	reportName string
	attachment []byte
	filename   string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (m *fakeMailer) SendReportEmail(_ context.Context, to, reportName string, attachment []byte, filename string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, reportName: reportName, attachment: attachment, filename: filename})
	return nil
}
