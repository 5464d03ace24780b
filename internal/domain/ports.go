package domain

import (
	"context"
	"time"
)

// CustomerRepository описывает хранилище клиентов.
type CustomerRepository interface {
	// Create сохраняет клиента. Дубликат email → ErrCustomerAlreadyExists.
	Create(ctx context.Context, customer Customer) error
	// FindByID возвращает клиента или ErrCustomerNotFound.
	FindByID(ctx context.Context, id string) (Customer, error)
	// FindByEmail возвращает клиента или ErrCustomerNotFound.
	FindByEmail(ctx context.Context, email string) (Customer, error)
}

// ProductRepository описывает хранилище каталога и складских остатков.
type ProductRepository interface {
	Create(ctx context.Context, product Product) error
	FindByID(ctx context.Context, id string) (Product, error)
	FindByName(ctx context.Context, name string) (Product, error)
	// FindAllByID возвращает только найденные товары, без ошибки для отсутствующих id.
	FindAllByID(ctx context.Context, ids []string) ([]Product, error)
	// SaveQuantities записывает остатки всех переданных товаров одной пакетной операцией.
	SaveQuantities(ctx context.Context, products []Product) error
}

// StockUpdater списывает остатки по уже проверенному заказу.
type StockUpdater interface {
	UpdateStock(ctx context.Context, deltas []StockDelta) ([]Product, error)
}

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	// Create атомарно сохраняет заказ вместе с позициями.
	Create(ctx context.Context, order Order) error
	// Get возвращает заказ по идентификатору или ErrOrderNotFound.
	Get(ctx context.Context, id string) (Order, error)
	// ListByCustomer возвращает заказы клиента, новые первыми; limit<=0 - без ограничения.
	ListByCustomer(ctx context.Context, customerID string, limit int) ([]Order, error)
}

// OutboxPublisher публикует события из transactional outbox.
type OutboxPublisher interface {
	// Publish передаёт событие наружу; должен быть идемпотентным.
	Publish(ctx context.Context, event OutboxMessage) error
}

// OutboxRepository позволяет сохранять события для последующей публикации.
type OutboxRepository interface {
	Enqueue(ctx context.Context, msg OutboxMessage) (OutboxMessage, error)
	PullPending(ctx context.Context, limit int) ([]OutboxMessage, error)
	Stats(ctx context.Context) (OutboxStats, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string) error
}

// OutboxMessage хранит данные для публикуемого события.
type OutboxMessage struct {
	ID            string
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
}

// OutboxStats описывает текущее состояние backlog transactional outbox.
type OutboxStats struct {
	PendingCount    int
	OldestPendingAt time.Time
}
