package domain

import "time"

// Product описывает товар каталога вместе с текущим остатком на складе.
type Product struct {
	ID   string
	Name string
	// PriceMinor - цена за единицу в минимальных денежных единицах.
	PriceMinor int64
	// Quantity - доступный остаток. Уменьшается при каждом успешном заказе.
	Quantity  int32
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate проверяет корректность карточки товара.
func (p *Product) Validate() []error {
	var errs []error
	if p.Name == "" {
		errs = append(errs, ErrProductNameRequired)
	}
	if p.PriceMinor < 0 {
		errs = append(errs, ErrItemPriceInvalid)
	}
	if p.Quantity < 0 {
		errs = append(errs, ErrProductQuantityNegative)
	}
	return errs
}

// StockDelta - количество, которое нужно списать с остатка товара.
type StockDelta struct {
	ProductID string
	Qty       int32
}
