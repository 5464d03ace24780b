package memory

import (
	"context"
	"sync"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
)

// productRepositoryInMemory хранит каталог в map; остатки меняются только через SaveQuantities.
type productRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Product
}

// NewProductRepository возвращает in-memory каталог товаров.
func NewProductRepository() domain.ProductRepository {
	return &productRepositoryInMemory{
		items: make(map[string]domain.Product),
	}
}

func (r *productRepositoryInMemory) Create(_ context.Context, product domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[product.ID]; exists {
		return domain.ErrProductAlreadyExists
	}
	for _, existing := range r.items {
		if existing.Name == product.Name {
			return domain.ErrProductAlreadyExists
		}
	}
	r.items[product.ID] = product
	return nil
}

func (r *productRepositoryInMemory) FindByID(_ context.Context, id string) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.items[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return product, nil
}

func (r *productRepositoryInMemory) FindByName(_ context.Context, name string) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, product := range r.items {
		if product.Name == name {
			return product, nil
		}
	}
	return domain.Product{}, domain.ErrProductNotFound
}

// FindAllByID возвращает найденные товары в порядке первого упоминания id.
func (r *productRepositoryInMemory) FindAllByID(_ context.Context, ids []string) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{}, len(ids))
	result := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if product, ok := r.items[id]; ok {
			result = append(result, product)
		}
	}
	return result, nil
}

// SaveQuantities применяет остатки целиком: либо все товары существуют и обновляются, либо ничего.
func (r *productRepositoryInMemory) SaveQuantities(_ context.Context, products []domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, product := range products {
		if _, ok := r.items[product.ID]; !ok {
			return domain.ErrProductNotFound
		}
	}
	for _, product := range products {
		stored := r.items[product.ID]
		stored.Quantity = product.Quantity
		stored.UpdatedAt = product.UpdatedAt
		r.items[product.ID] = stored
	}
	return nil
}

var _ domain.ProductRepository = (*productRepositoryInMemory)(nil)
