package grpcsvc

import (
	"time"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
)

// ProductQuantity - запрошенный товар.
type ProductQuantity struct {
	ID       string `json:"id"`
	Quantity int32  `json:"quantity"`
}

type CreateOrderRequest struct {
	CustomerID string            `json:"customer_id"`
	Products   []ProductQuantity `json:"products"`
}

type CreateOrderResponse struct {
	Order *Order `json:"order"`
}

type GetOrderRequest struct {
	OrderID string `json:"order_id"`
}

type GetOrderResponse struct {
	Order *Order `json:"order"`
}

type ListOrdersRequest struct {
	CustomerID string `json:"customer_id"`
	Limit      int32  `json:"limit,omitempty"`
}

type ListOrdersResponse struct {
	Orders []*Order `json:"orders"`
}

type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type OrderItem struct {
	ID         string `json:"id"`
	ProductID  string `json:"product_id"`
	PriceMinor int64  `json:"price_minor"`
	Quantity   int32  `json:"quantity"`
}

type Order struct {
	ID          string       `json:"id"`
	CustomerID  string       `json:"customer_id"`
	Customer    *Customer    `json:"customer,omitempty"`
	AmountMinor int64        `json:"amount_minor"`
	Items       []*OrderItem `json:"items"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func toWireOrder(order domain.Order) *Order {
	out := &Order{
		ID:          order.ID,
		CustomerID:  order.CustomerID,
		AmountMinor: order.AmountMinor,
		Items:       make([]*OrderItem, 0, len(order.Items)),
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
	if order.Customer.ID != "" {
		out.Customer = &Customer{ID: order.Customer.ID, Name: order.Customer.Name, Email: order.Customer.Email}
	}
	for _, item := range order.Items {
		out.Items = append(out.Items, &OrderItem{
			ID:         item.ID,
			ProductID:  item.ProductID,
			PriceMinor: item.PriceMinor,
			Quantity:   item.Qty,
		})
	}
	return out
}
