// Package catalog заводит клиентов и товары, с которыми затем работает оформление заказа.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
)

// Service создаёт клиентов и товары.
type Service struct {
	customers domain.CustomerRepository
	products  domain.ProductRepository
	logger    *log.Entry
	now       func() time.Time
	newID     func() string
}

// NewService создаёт сервис каталога. logger может быть nil.
func NewService(customers domain.CustomerRepository, products domain.ProductRepository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.WithField("component", "catalog")
	}
	return &Service{
		customers: customers,
		products:  products,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
}

// CreateCustomer регистрирует клиента; email уникален без учёта регистра.
func (s *Service) CreateCustomer(ctx context.Context, name, email string) (domain.Customer, error) {
	customer := domain.Customer{
		ID:        s.newID(),
		Name:      strings.TrimSpace(name),
		Email:     strings.TrimSpace(email),
		CreatedAt: s.now(),
	}
	if errs := customer.Validate(); len(errs) > 0 {
		return domain.Customer{}, errors.Join(errs...)
	}

	_, err := s.customers.FindByEmail(ctx, customer.Email)
	switch {
	case err == nil:
		return domain.Customer{}, domain.ErrCustomerAlreadyExists
	case !errors.Is(err, domain.ErrCustomerNotFound):
		return domain.Customer{}, fmt.Errorf("lookup customer by email: %w", err)
	}

	if err := s.customers.Create(ctx, customer); err != nil {
		return domain.Customer{}, err
	}

	s.logger.WithField("customer_id", customer.ID).Info("customer created")
	return customer, nil
}

// CreateProduct добавляет товар в каталог; название уникально.
func (s *Service) CreateProduct(ctx context.Context, name string, priceMinor int64, quantity int32) (domain.Product, error) {
	now := s.now()
	product := domain.Product{
		ID:         s.newID(),
		Name:       strings.TrimSpace(name),
		PriceMinor: priceMinor,
		Quantity:   quantity,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if errs := product.Validate(); len(errs) > 0 {
		return domain.Product{}, errors.Join(errs...)
	}

	_, err := s.products.FindByName(ctx, product.Name)
	switch {
	case err == nil:
		return domain.Product{}, domain.ErrProductAlreadyExists
	case !errors.Is(err, domain.ErrProductNotFound):
		return domain.Product{}, fmt.Errorf("lookup product by name: %w", err)
	}

	if err := s.products.Create(ctx, product); err != nil {
		return domain.Product{}, err
	}

	s.logger.WithFields(log.Fields{
		"product_id": product.ID,
		"quantity":   product.Quantity,
	}).Info("product created")
	return product, nil
}

// GetProduct возвращает товар или domain.ErrProductNotFound.
func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	return s.products.FindByID(ctx, id)
}

// GetCustomer возвращает клиента или domain.ErrCustomerNotFound.
func (s *Service) GetCustomer(ctx context.Context, id string) (domain.Customer, error) {
	return s.customers.FindByID(ctx, id)
}
