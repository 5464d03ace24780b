package rediscache

import "time"

const (
	// KeyCustomer - JSON-снимок клиента по идентификатору.
	KeyCustomer = "checkout:customer:%s"

	DefaultCustomerTTL = 5 * time.Minute
)
