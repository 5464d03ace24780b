package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/checkout/internal/health"
	"github.com/vladislavdragonenkov/checkout/internal/storage/memory"
	"github.com/vladislavdragonenkov/checkout/internal/storage/postgres"
	"github.com/vladislavdragonenkov/checkout/internal/storage/rediscache"
)

// runtimeDependencies - хранилища и внешние подключения, выбранные конфигурацией.
type runtimeDependencies struct {
	customers  domain.CustomerRepository
	products   domain.ProductRepository
	orders     domain.OrderRepository
	outboxRepo domain.OutboxRepository

	// pingers - критичные зависимости, optional - деградация без отказа.
	pingers  []healthcheck.Pinger
	optional []healthcheck.Pinger

	closers []func() error
}

// initRuntimeDependencies открывает хранилище и, если задан адрес, подключает Redis-кеш клиентов.
func initRuntimeDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*runtimeDependencies, error) {
	deps := &runtimeDependencies{}

	switch cfg.StorageDriver {
	case "", StorageDriverMemory:
		deps.customers = memory.NewCustomerRepository()
		deps.products = memory.NewProductRepository()
		deps.orders = memory.NewOrderRepository()
		deps.outboxRepo = memory.NewOutboxRepository()
		logger.Info("using in-memory storage")
	case StorageDriverPostgres:
		if cfg.PostgresDSN == "" {
			return nil, errors.New("postgres storage requires OMS_POSTGRES_DSN")
		}
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		deps.closers = append(deps.closers, store.Close)

		if cfg.PostgresAutoMigrate {
			if err := store.MigrateUp(ctx, 0); err != nil {
				_ = deps.close()
				return nil, fmt.Errorf("apply migrations: %w", err)
			}
		}

		deps.customers = postgres.NewCustomerRepository(store)
		deps.products = postgres.NewProductRepository(store)
		deps.orders = postgres.NewOrderRepository(store)
		deps.outboxRepo = postgres.NewOutboxRepository(store)
		deps.pingers = append(deps.pingers, store)
		logger.Info("using postgres storage")
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}

	if cfg.RedisAddr != "" {
		rdb := rediscache.NewClient(cfg.RedisAddr)
		deps.closers = append(deps.closers, rdb.Close)
		deps.customers = rediscache.NewCustomerRepository(deps.customers, rdb, cfg.CustomerCacheTTL,
			logger.WithField("component", "customer-cache"))
		deps.optional = append(deps.optional, rediscache.Pinger{Client: rdb})
		logRedisStatus(ctx, rdb, logger)
	}

	return deps, nil
}

func logRedisStatus(ctx context.Context, rdb *redis.Client, logger *log.Entry) {
	entry := logger.WithField("redis_addr", rdb.Options().Addr)
	if err := rdb.Ping(ctx).Err(); err != nil {
		entry.WithError(err).Warn("redis is unavailable, customer cache will fall back to storage")
		return
	}
	entry.Info("customer cache enabled")
}

// registerHealth регистрирует проверки зависимостей.
func (d *runtimeDependencies) registerHealth(h *healthcheck.Handler) {
	for _, p := range d.pingers {
		h.RegisterPinger(p)
	}
	for _, p := range d.optional {
		h.RegisterOptionalPinger(p)
	}
}

// close закрывает подключения в обратном порядке.
func (d *runtimeDependencies) close() error {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	d.closers = nil
	return errors.Join(errs...)
}
