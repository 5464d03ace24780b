// Package grpcsvc публикует оформление и чтение заказов как checkout.v1.CheckoutService.
package grpcsvc

import (
	"context"

	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
	"github.com/vladislavdragonenkov/checkout/internal/service/ordering"
)

const (
	defaultListOrdersLimit = 100
	maxListOrdersLimit     = 1000
)

// OrderCreator - операции сервиса заказов, нужные транспорту.
type OrderCreator interface {
	CreateOrder(ctx context.Context, req ordering.CreateOrderRequest) (domain.Order, error)
	GetOrder(ctx context.Context, id string) (domain.Order, error)
	ListOrders(ctx context.Context, customerID string, limit int) ([]domain.Order, error)
}

// CheckoutService реализует CheckoutServiceServer поверх OrderCreator.
type CheckoutService struct {
	orders OrderCreator
	logger *log.Entry
}

// NewCheckoutService конструирует сервис с зависимостями.
func NewCheckoutService(orders OrderCreator, logger *log.Entry) *CheckoutService {
	if logger == nil {
		logger = log.WithField("component", "grpc-checkout")
	}
	return &CheckoutService{orders: orders, logger: logger}
}

func (s *CheckoutService) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*CreateOrderResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	products := make([]ordering.RequestedProduct, 0, len(req.Products))
	for _, p := range req.Products {
		products = append(products, ordering.RequestedProduct{ID: p.ID, Quantity: p.Quantity})
	}

	order, err := s.orders.CreateOrder(ctx, ordering.CreateOrderRequest{
		CustomerID: req.CustomerID,
		Products:   products,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &CreateOrderResponse{Order: toWireOrder(order)}, nil
}

func (s *CheckoutService) GetOrder(ctx context.Context, req *GetOrderRequest) (*GetOrderResponse, error) {
	if req == nil || req.OrderID == "" {
		return nil, status.Error(codes.InvalidArgument, "order_id is required")
	}

	order, err := s.orders.GetOrder(ctx, req.OrderID)
	if err != nil {
		if !domain.IsNotFound(err) {
			s.logger.WithError(err).WithField("order_id", req.OrderID).Error("failed to load order")
		}
		return nil, toStatus(err)
	}
	return &GetOrderResponse{Order: toWireOrder(order)}, nil
}

func (s *CheckoutService) ListOrders(ctx context.Context, req *ListOrdersRequest) (*ListOrdersResponse, error) {
	if req == nil || req.CustomerID == "" {
		return nil, status.Error(codes.InvalidArgument, "customer_id is required")
	}

	limit := int(req.Limit)
	switch {
	case limit <= 0:
		limit = defaultListOrdersLimit
	case limit > maxListOrdersLimit:
		limit = maxListOrdersLimit
	}

	orders, err := s.orders.ListOrders(ctx, req.CustomerID, limit)
	if err != nil {
		s.logger.WithError(err).WithField("customer_id", req.CustomerID).Error("failed to list orders")
		return nil, toStatus(err)
	}

	resp := &ListOrdersResponse{Orders: make([]*Order, 0, len(orders))}
	for _, order := range orders {
		resp.Orders = append(resp.Orders, toWireOrder(order))
	}
	return resp, nil
}

var _ CheckoutServiceServer = (*CheckoutService)(nil)
