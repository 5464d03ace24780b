package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
)

type customerRepositoryInMemory struct {
	mu      sync.RWMutex
	byID    map[string]domain.Customer
	byEmail map[string]string
}

// NewCustomerRepository возвращает in-memory хранилище клиентов.
func NewCustomerRepository() domain.CustomerRepository {
	return &customerRepositoryInMemory{
		byID:    make(map[string]domain.Customer),
		byEmail: make(map[string]string),
	}
}

func (r *customerRepositoryInMemory) Create(_ context.Context, customer domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(customer.Email)
	if _, exists := r.byEmail[email]; exists {
		return domain.ErrCustomerAlreadyExists
	}
	if _, exists := r.byID[customer.ID]; exists {
		return domain.ErrCustomerAlreadyExists
	}
	r.byID[customer.ID] = customer
	r.byEmail[email] = customer.ID
	return nil
}

func (r *customerRepositoryInMemory) FindByID(_ context.Context, id string) (domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.byID[id]
	if !ok {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	return customer, nil
}

func (r *customerRepositoryInMemory) FindByEmail(_ context.Context, email string) (domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	return r.byID[id], nil
}

var _ domain.CustomerRepository = (*customerRepositoryInMemory)(nil)
