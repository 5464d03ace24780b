package domain

import "time"

// Customer - покупатель, от имени которого оформляется заказ.
// При создании заказа клиент только читается.
type Customer struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
}

// Validate проверяет обязательные поля клиента.
func (c *Customer) Validate() []error {
	var errs []error
	if c.Name == "" {
		errs = append(errs, ErrCustomerNameRequired)
	}
	if c.Email == "" {
		errs = append(errs, ErrCustomerEmailRequired)
	}
	return errs
}
