// Package httpapi публикует оформление заказов и каталог через REST.
package httpapi

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
	"github.com/vladislavdragonenkov/checkout/internal/service/ordering"
)

const requestTimeout = 15 * time.Second

// Orders - операции с заказами.
type Orders interface {
	CreateOrder(ctx context.Context, req ordering.CreateOrderRequest) (domain.Order, error)
	GetOrder(ctx context.Context, id string) (domain.Order, error)
	ListOrders(ctx context.Context, customerID string, limit int) ([]domain.Order, error)
}

// Catalog - операции с клиентами и товарами.
type Catalog interface {
	CreateCustomer(ctx context.Context, name, email string) (domain.Customer, error)
	GetCustomer(ctx context.Context, id string) (domain.Customer, error)
	CreateProduct(ctx context.Context, name string, priceMinor int64, quantity int32) (domain.Product, error)
	GetProduct(ctx context.Context, id string) (domain.Product, error)
}

// Handler обслуживает REST-маршруты сервиса.
type Handler struct {
	orders  Orders
	catalog Catalog
	logger  *log.Entry
}

// NewHandler создаёт обработчик. nil logger заменяется компонентным логгером.
func NewHandler(orders Orders, catalog Catalog, logger *log.Entry) *Handler {
	if logger == nil {
		logger = log.WithField("component", "http-api")
	}
	return &Handler{orders: orders, catalog: catalog, logger: logger}
}

// Register вешает маршруты на роутер.
func (h *Handler) Register(r chi.Router) {
	r.Post("/orders", h.createOrder)
	r.Get("/orders/{id}", h.getOrder)
	r.Get("/customers/{id}/orders", h.listCustomerOrders)
	r.Post("/customers", h.createCustomer)
	r.Get("/customers/{id}", h.getCustomer)
	r.Post("/products", h.createProduct)
	r.Get("/products/{id}", h.getProduct)
}

// NewRouter собирает chi-роутер со стандартными middleware и access-логом.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(AccessLog(h.logger))
	r.Use(middleware.Timeout(requestTimeout))
	h.Register(r)
	return r
}
