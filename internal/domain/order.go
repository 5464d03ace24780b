package domain

import "time"

// OrderItem представляет одну позицию заказа.
type OrderItem struct {
	// ID позиции нужен для однозначной идентификации и аудита.
	ID        string
	ProductID string
	// PriceMinor - цена товара на момент оформления заказа.
	PriceMinor int64
	Qty        int32
	CreatedAt  time.Time
}

// Order агрегирует заказ клиента и его позиции. Позиции не живут отдельно от заказа.
type Order struct {
	ID         string
	CustomerID string
	// Customer заполняется репозиторием при чтении и сервисом при создании.
	Customer    Customer
	AmountMinor int64
	Items       []OrderItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidateInvariants проверяет базовые инварианты заказа и возвращает список замечаний.
func (o *Order) ValidateInvariants() []error {
	var errs []error

	if o.CustomerID == "" {
		errs = append(errs, ErrCustomerRequired)
	}
	if len(o.Items) == 0 {
		errs = append(errs, ErrItemsRequired)
	}
	if o.AmountMinor < 0 {
		errs = append(errs, ErrAmountNegative)
	}

	var calc int64
	for _, item := range o.Items {
		if item.ProductID == "" {
			errs = append(errs, ErrInvalidProduct)
		}
		if item.Qty <= 0 {
			errs = append(errs, ErrInvalidQuantity)
		}
		if item.PriceMinor < 0 {
			errs = append(errs, ErrItemPriceInvalid)
		}
		calc += int64(item.Qty) * item.PriceMinor
	}
	if calc != o.AmountMinor {
		errs = append(errs, ErrAmountMismatch)
	}

	return errs
}

// Deltas возвращает списание остатков, соответствующее позициям заказа.
func (o *Order) Deltas() []StockDelta {
	deltas := make([]StockDelta, 0, len(o.Items))
	for _, item := range o.Items {
		deltas = append(deltas, StockDelta{ProductID: item.ProductID, Qty: item.Qty})
	}
	return deltas
}
