// Package inventory списывает складские остатки по уже проверенным заказам.
package inventory

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
)

// Service реализует domain.StockUpdater поверх ProductRepository.
type Service struct {
	products domain.ProductRepository
	logger   *log.Entry
	now      func() time.Time
}

// Option настраивает Service.
type Option func(*Service)

// WithLogger задаёт логгер сервиса.
func WithLogger(logger *log.Entry) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock подменяет источник времени (для тестов).
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService создаёт сервис списания остатков.
func NewService(products domain.ProductRepository, opts ...Option) *Service {
	s := &Service{
		products: products,
		logger:   log.WithField("component", "inventory"),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UpdateStock уменьшает остаток каждого товара на запрошенное количество и
// сохраняет все строки одной пакетной записью. Отрицательный результат не проверяется:
// достаточность остатка проверяет вызывающий код.
func (s *Service) UpdateStock(ctx context.Context, deltas []domain.StockDelta) ([]domain.Product, error) {
	if len(deltas) == 0 {
		return []domain.Product{}, nil
	}

	ids := make([]string, 0, len(deltas))
	for _, d := range deltas {
		ids = append(ids, d.ProductID)
	}

	current, err := s.products.FindAllByID(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load products for stock update: %w", err)
	}

	index := make(map[string]int, len(current))
	for i, p := range current {
		index[p.ID] = i
	}

	now := s.now()
	for _, d := range deltas {
		i, ok := index[d.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, d.ProductID)
		}
		current[i].Quantity -= d.Qty
		current[i].UpdatedAt = now
	}

	if err := s.products.SaveQuantities(ctx, current); err != nil {
		return nil, fmt.Errorf("save product quantities: %w", err)
	}

	s.logger.WithFields(log.Fields{
		"products": len(current),
		"deltas":   len(deltas),
	}).Debug("stock updated")

	return current, nil
}

var _ domain.StockUpdater = (*Service)(nil)
