package domain

import "errors"

// Ошибки валидации запроса на создание заказа. Проверяются строго в этом порядке.
var (
	// ErrInvalidCustomer - клиент с указанным идентификатором не найден.
	ErrInvalidCustomer = errors.New("invalid customer")
	// ErrItemsRequired - в запросе нет ни одного товара.
	ErrItemsRequired = errors.New("order must contain at least one product")
	// ErrInvalidQuantity - количество в одной из позиций <= 0.
	ErrInvalidQuantity = errors.New("the quantity must be greater than zero")
	// ErrInvalidProduct - часть запрошенных товаров отсутствует в каталоге.
	ErrInvalidProduct = errors.New("invalid product(s)")
	// ErrInsufficientStock - после списания остаток одного из товаров станет <= 0.
	ErrInsufficientStock = errors.New("there are products with insufficient quantities")
)

var (
	// Ошибка отсутствующего идентификатора клиента.
	ErrCustomerRequired = errors.New("customer_id is required")
	// Ошибка отрицательной суммы заказа.
	ErrAmountNegative = errors.New("amount_minor must be non-negative")
	// Ошибка, если цена позиции отрицательная.
	ErrItemPriceInvalid = errors.New("price must be non-negative")
	// Ошибка несоответствия суммы заказа и сумм позиций.
	ErrAmountMismatch = errors.New("order amount does not match items sum")
	// ErrOrderNotFound возвращается, если заказ не найден в репозитории.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderAlreadyExists - заказ с таким ID уже сохранён.
	ErrOrderAlreadyExists = errors.New("order already exists")

	ErrCustomerNotFound      = errors.New("customer not found")
	ErrCustomerAlreadyExists = errors.New("customer with this email already exists")
	ErrCustomerNameRequired  = errors.New("customer name is required")
	ErrCustomerEmailRequired = errors.New("customer email is required")

	ErrProductNotFound         = errors.New("product not found")
	ErrProductAlreadyExists    = errors.New("product with this name already exists")
	ErrProductNameRequired     = errors.New("product name is required")
	ErrProductQuantityNegative = errors.New("product quantity must be non-negative")

	// ErrOutboxPublish - ошибка при публикации сообщения из outbox.
	ErrOutboxPublish = errors.New("outbox publish failed")
)

// Значения метки reason для метрик отклонённых заказов.
const (
	ReasonInvalidCustomer   = "invalid_customer"
	ReasonItemsRequired     = "items_required"
	ReasonInvalidQuantity   = "invalid_quantity"
	ReasonInvalidProduct    = "invalid_product"
	ReasonInsufficientStock = "insufficient_stock"
	ReasonInternal          = "internal"
)

// IsValidationError сообщает, что заказ отклонён бизнес-правилами, а не сбоем инфраструктуры.
func IsValidationError(err error) bool {
	return RejectionReason(err) != ReasonInternal
}

// RejectionReason возвращает причину отказа для логов и метрик.
func RejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidCustomer):
		return ReasonInvalidCustomer
	case errors.Is(err, ErrItemsRequired):
		return ReasonItemsRequired
	case errors.Is(err, ErrInvalidQuantity):
		return ReasonInvalidQuantity
	case errors.Is(err, ErrInvalidProduct):
		return ReasonInvalidProduct
	case errors.Is(err, ErrInsufficientStock):
		return ReasonInsufficientStock
	default:
		return ReasonInternal
	}
}

// IsNotFound объединяет ошибки отсутствия сущностей.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrCustomerNotFound) ||
		errors.Is(err, ErrProductNotFound)
}

// IsAlreadyExists объединяет конфликты уникальности.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrOrderAlreadyExists) ||
		errors.Is(err, ErrCustomerAlreadyExists) ||
		errors.Is(err, ErrProductAlreadyExists)
}

// IsInvalidInput объединяет ошибки валидации карточек клиента и товара.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrCustomerRequired) ||
		errors.Is(err, ErrCustomerNameRequired) ||
		errors.Is(err, ErrCustomerEmailRequired) ||
		errors.Is(err, ErrProductNameRequired) ||
		errors.Is(err, ErrItemPriceInvalid) ||
		errors.Is(err, ErrProductQuantityNegative)
}
