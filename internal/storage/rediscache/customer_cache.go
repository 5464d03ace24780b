// Package rediscache содержит read-through кеш поверх репозиториев в Redis.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
)

// NewClient создаёт клиента Redis с короткими таймаутами: кеш не должен тормозить оформление заказа.
func NewClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})
}

// Pinger адаптирует клиента Redis к health.Checker.
type Pinger struct {
	Client *redis.Client
}

func (p Pinger) Name() string { return "redis" }

func (p Pinger) Ping(ctx context.Context) error {
	return p.Client.Ping(ctx).Err()
}

type cachedCustomer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// CustomerRepository кеширует FindByID. Ошибки Redis не пробрасываются наружу:
// при недоступном кеше запрос уходит в исходный репозиторий.
type CustomerRepository struct {
	next   domain.CustomerRepository
	rdb    *redis.Client
	ttl    time.Duration
	logger *log.Entry
}

// NewCustomerRepository оборачивает next кешем в Redis.
func NewCustomerRepository(next domain.CustomerRepository, rdb *redis.Client, ttl time.Duration, logger *log.Entry) *CustomerRepository {
	if ttl <= 0 {
		ttl = DefaultCustomerTTL
	}
	if logger == nil {
		logger = log.WithField("component", "customer-cache")
	}
	return &CustomerRepository{next: next, rdb: rdb, ttl: ttl, logger: logger}
}

func (r *CustomerRepository) Create(ctx context.Context, customer domain.Customer) error {
	if err := r.next.Create(ctx, customer); err != nil {
		return err
	}
	r.store(ctx, customer)
	return nil
}

// FindByID читает клиента из кеша, а при промахе из next с последующей записью в кеш.
// Отсутствующие клиенты не кешируются.
func (r *CustomerRepository) FindByID(ctx context.Context, id string) (domain.Customer, error) {
	key := fmt.Sprintf(KeyCustomer, id)

	raw, err := r.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached cachedCustomer
		if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
			return domain.Customer(cached), nil
		}
		r.logger.WithField("key", key).Warn("discarding malformed cache entry")
	case errors.Is(err, redis.Nil):
	default:
		r.logger.WithError(err).WithField("key", key).Warn("customer cache read failed")
	}

	customer, err := r.next.FindByID(ctx, id)
	if err != nil {
		return domain.Customer{}, err
	}
	r.store(ctx, customer)
	return customer, nil
}

func (r *CustomerRepository) FindByEmail(ctx context.Context, email string) (domain.Customer, error) {
	return r.next.FindByEmail(ctx, email)
}

func (r *CustomerRepository) store(ctx context.Context, customer domain.Customer) {
	payload, err := json.Marshal(cachedCustomer(customer))
	if err != nil {
		return
	}
	key := fmt.Sprintf(KeyCustomer, customer.ID)
	if err := r.rdb.Set(ctx, key, payload, r.ttl).Err(); err != nil {
		r.logger.WithError(err).WithField("key", key).Warn("customer cache write failed")
	}
}

var _ domain.CustomerRepository = (*CustomerRepository)(nil)
