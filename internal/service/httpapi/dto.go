package httpapi

import (
	"time"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
)

type productQuantity struct {
	ID       string `json:"id"`
	Quantity int32  `json:"quantity"`
}

type createOrderRequest struct {
	CustomerID string            `json:"customer_id"`
	Products   []productQuantity `json:"products"`
}

type createCustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type createProductRequest struct {
	Name       string `json:"name"`
	PriceMinor int64  `json:"price_minor"`
	Quantity   int32  `json:"quantity"`
}

type customerView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type productView struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	PriceMinor int64     `json:"price_minor"`
	Quantity   int32     `json:"quantity"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type orderItemView struct {
	ID         string `json:"id"`
	ProductID  string `json:"product_id"`
	PriceMinor int64  `json:"price_minor"`
	Quantity   int32  `json:"quantity"`
}

type orderView struct {
	ID          string          `json:"id"`
	CustomerID  string          `json:"customer_id"`
	Customer    *customerView   `json:"customer,omitempty"`
	AmountMinor int64           `json:"amount_minor"`
	Items       []orderItemView `json:"items"`
	OrderedAt   time.Time       `json:"ordered_at"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toCustomerView(c domain.Customer) customerView {
	return customerView{ID: c.ID, Name: c.Name, Email: c.Email, CreatedAt: c.CreatedAt}
}

func toProductView(p domain.Product) productView {
	return productView{
		ID:         p.ID,
		Name:       p.Name,
		PriceMinor: p.PriceMinor,
		Quantity:   p.Quantity,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func toOrderView(o domain.Order) orderView {
	view := orderView{
		ID:          o.ID,
		CustomerID:  o.CustomerID,
		AmountMinor: o.AmountMinor,
		Items:       make([]orderItemView, 0, len(o.Items)),
		OrderedAt:   o.CreatedAt,
	}
	if o.Customer.ID != "" {
		c := toCustomerView(o.Customer)
		view.Customer = &c
	}
	for _, item := range o.Items {
		view.Items = append(view.Items, orderItemView{
			ID:         item.ID,
			ProductID:  item.ProductID,
			PriceMinor: item.PriceMinor,
			Quantity:   item.Qty,
		})
	}
	return view
}
