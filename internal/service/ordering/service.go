// Package ordering реализует оформление заказа: проверку клиента, количеств,
// наличия товаров и остатков, сохранение заказа и списание остатков.
package ordering

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
	"github.com/vladislavdragonenkov/checkout/internal/metrics"
	"github.com/vladislavdragonenkov/checkout/internal/telemetry"
)

// RequestedProduct - запрошенный товар и количество.
type RequestedProduct struct {
	ID       string
	Quantity int32
}

// CreateOrderRequest - входные данные оформления заказа.
type CreateOrderRequest struct {
	CustomerID string
	Products   []RequestedProduct
}

// Service оформляет заказы поверх репозиториев клиентов, товаров и заказов.
type Service struct {
	customers domain.CustomerRepository
	products  domain.ProductRepository
	orders    domain.OrderRepository
	stock     domain.StockUpdater

	outbox  domain.OutboxRepository
	metrics *metrics.OrderMetrics
	logger  *log.Entry
	tracer  trace.Tracer
	now     func() time.Time
	newID   func() string
}

// NewService создаёт сервис оформления заказов.
func NewService(
	customers domain.CustomerRepository,
	products domain.ProductRepository,
	orders domain.OrderRepository,
	stock domain.StockUpdater,
	opts ...Option,
) *Service {
	s := &Service{
		customers: customers,
		products:  products,
		orders:    orders,
		stock:     stock,
		logger:    log.WithField("component", "ordering"),
		tracer:    telemetry.Tracer(),
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateOrder проверяет запрос, сохраняет заказ и списывает остатки.
// Проверки выполняются строго по порядку и до первой ошибки; до сохранения заказа ничего не пишется.
func (s *Service) CreateOrder(ctx context.Context, req CreateOrderRequest) (order domain.Order, err error) {
	ctx, span := s.tracer.Start(ctx, "ordering.CreateOrder", trace.WithAttributes(
		attribute.String("customer.id", req.CustomerID),
		attribute.Int("request.lines", len(req.Products)),
	))
	defer span.End()

	if s.metrics != nil {
		done := s.metrics.StartCreate()
		defer done()
	}

	defer func() {
		if err == nil {
			return
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		entry := s.logger.WithField("customer_id", req.CustomerID)
		if domain.IsValidationError(err) {
			entry.WithField("reason", domain.RejectionReason(err)).Info("order rejected")
		} else {
			entry.WithError(err).Error("create order failed")
		}
		if s.metrics != nil {
			s.metrics.RecordOrderRejected(domain.RejectionReason(err))
		}
	}()

	customer, err := s.customers.FindByID(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return domain.Order{}, domain.ErrInvalidCustomer
		}
		return domain.Order{}, fmt.Errorf("lookup customer: %w", err)
	}

	if len(req.Products) == 0 {
		return domain.Order{}, domain.ErrItemsRequired
	}
	for _, p := range req.Products {
		if p.Quantity <= 0 {
			return domain.Order{}, domain.ErrInvalidQuantity
		}
	}

	requested := mergeRequested(req.Products)

	found, err := s.products.FindAllByID(ctx, requested.ids())
	if err != nil {
		return domain.Order{}, fmt.Errorf("lookup products: %w", err)
	}
	if len(found) != len(requested.order) {
		return domain.Order{}, fmt.Errorf("%w: %s", domain.ErrInvalidProduct, strings.Join(requested.missing(found), ", "))
	}

	for _, product := range found {
		qty, ok := requested.quantity(product.ID)
		if !ok {
			return domain.Order{}, fmt.Errorf("%w: %s", domain.ErrInvalidProduct, product.ID)
		}
		if int64(product.Quantity)-qty <= 0 {
			return domain.Order{}, fmt.Errorf("%w: %s", domain.ErrInsufficientStock, product.ID)
		}
	}

	now := s.now()
	order = domain.Order{
		ID:         s.newID(),
		CustomerID: customer.ID,
		Customer:   customer,
		Items:      make([]domain.OrderItem, 0, len(found)),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, product := range found {
		qty, ok := requested.quantity(product.ID)
		if !ok {
			return domain.Order{}, fmt.Errorf("%w: %s", domain.ErrInvalidProduct, product.ID)
		}
		// qty < product.Quantity после проверки остатков, сужение до int32 безопасно.
		order.Items = append(order.Items, domain.OrderItem{
			ID:         s.newID(),
			ProductID:  product.ID,
			PriceMinor: product.PriceMinor,
			Qty:        int32(qty),
			CreatedAt:  now,
		})
		order.AmountMinor += qty * product.PriceMinor
	}

	if errs := order.ValidateInvariants(); len(errs) > 0 {
		return domain.Order{}, fmt.Errorf("order invariants: %w", errors.Join(errs...))
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return domain.Order{}, fmt.Errorf("persist order: %w", err)
	}

	deltas := order.Deltas()
	// Заказ уже сохранён: ошибка списания возвращается, но не откатывает заказ.
	if _, err := s.stock.UpdateStock(ctx, deltas); err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID).Error("order persisted but stock update failed")
		return domain.Order{}, fmt.Errorf("update stock for order %s: %w", order.ID, err)
	}

	s.enqueueCreated(ctx, order)

	var units int64
	for _, d := range deltas {
		units += int64(d.Qty)
	}
	if s.metrics != nil {
		s.metrics.RecordOrderCreated(units)
	}
	span.SetAttributes(attribute.String("order.id", order.ID), attribute.Int64("order.amount_minor", order.AmountMinor))
	s.logger.WithFields(log.Fields{
		"order_id":     order.ID,
		"customer_id":  order.CustomerID,
		"lines":        len(order.Items),
		"amount_minor": order.AmountMinor,
	}).Info("order created")

	return order, nil
}

// GetOrder возвращает сохранённый заказ.
func (s *Service) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "ordering.GetOrder", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	order, err := s.orders.Get(ctx, id)
	if err != nil {
		span.RecordError(err)
		return domain.Order{}, err
	}
	return order, nil
}

// ListOrders возвращает заказы клиента, новые первыми.
func (s *Service) ListOrders(ctx context.Context, customerID string, limit int) ([]domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "ordering.ListOrders", trace.WithAttributes(attribute.String("customer.id", customerID)))
	defer span.End()

	if customerID == "" {
		return nil, domain.ErrCustomerRequired
	}
	orders, err := s.orders.ListByCustomer(ctx, customerID, limit)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return orders, nil
}

func (s *Service) enqueueCreated(ctx context.Context, order domain.Order) {
	if s.outbox == nil {
		return
	}
	msg, err := domain.NewOrderCreatedMessage(order)
	if err == nil {
		_, err = s.outbox.Enqueue(ctx, msg)
	}
	if err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID).Warn("failed to enqueue order.created event")
	}
}
