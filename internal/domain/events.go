package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	// AggregateOrder - тип агрегата для событий заказа в outbox.
	AggregateOrder = "order"
	// EventOrderCreated публикуется после сохранения заказа и списания остатков.
	EventOrderCreated = "order.created"
)

// OrderCreatedLine - позиция заказа в событии.
type OrderCreatedLine struct {
	ProductID  string `json:"product_id"`
	Qty        int32  `json:"qty"`
	PriceMinor int64  `json:"price_minor"`
}

// OrderCreatedEvent - полезная нагрузка события order.created.
type OrderCreatedEvent struct {
	OrderID     string             `json:"order_id"`
	CustomerID  string             `json:"customer_id"`
	AmountMinor int64              `json:"amount_minor"`
	Lines       []OrderCreatedLine `json:"lines"`
	CreatedAt   time.Time          `json:"created_at"`
}

// NewOrderCreatedMessage сериализует событие о созданном заказе в сообщение outbox.
func NewOrderCreatedMessage(order Order) (OutboxMessage, error) {
	event := OrderCreatedEvent{
		OrderID:     order.ID,
		CustomerID:  order.CustomerID,
		AmountMinor: order.AmountMinor,
		Lines:       make([]OrderCreatedLine, 0, len(order.Items)),
		CreatedAt:   order.CreatedAt,
	}
	for _, item := range order.Items {
		event.Lines = append(event.Lines, OrderCreatedLine{
			ProductID:  item.ProductID,
			Qty:        item.Qty,
			PriceMinor: item.PriceMinor,
		})
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return OutboxMessage{}, fmt.Errorf("marshal order.created event: %w", err)
	}
	return OutboxMessage{
		AggregateType: AggregateOrder,
		AggregateID:   order.ID,
		EventType:     EventOrderCreated,
		Payload:       payload,
	}, nil
}
