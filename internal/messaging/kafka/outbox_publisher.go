package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"go.opentelemetry.io/otel"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
)

// headerCarrier переносит trace context в заголовки Kafka-сообщения.
type headerCarrier struct {
	msg *sarama.ProducerMessage
}

func (c headerCarrier) Get(key string) string {
	for _, h := range c.msg.Headers {
		if string(h.Key) == key {
			return string(h.Value)
		}
	}
	return ""
}

func (c headerCarrier) Set(key, value string) {
	c.msg.Headers = append(c.msg.Headers, sarama.RecordHeader{Key: []byte(key), Value: []byte(value)})
}

func (c headerCarrier) Keys() []string {
	keys := make([]string, 0, len(c.msg.Headers))
	for _, h := range c.msg.Headers {
		keys = append(keys, string(h.Key))
	}
	return keys
}

// OutboxTopicPublisher публикует outbox-сообщения в заданный Kafka topic.
type OutboxTopicPublisher struct {
	producer *Producer
	topic    string
	now      func() time.Time
}

// NewOutboxPublisher создаёт Kafka-паблишер для transactional outbox.
func NewOutboxPublisher(producer *Producer, topic string) *OutboxTopicPublisher {
	if topic == "" {
		topic = TopicOrderEvents
	}
	return &OutboxTopicPublisher{
		producer: producer,
		topic:    topic,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Publish отправляет сообщение, ключ партиционирования - идентификатор агрегата.
func (p *OutboxTopicPublisher) Publish(ctx context.Context, event domain.OutboxMessage) error {
	if p == nil || p.producer == nil {
		return fmt.Errorf("kafka outbox publisher is not initialized")
	}

	msg, err := p.buildMessage(ctx, event)
	if err != nil {
		return err
	}
	return p.producer.Send(ctx, msg)
}

func (p *OutboxTopicPublisher) buildMessage(ctx context.Context, event domain.OutboxMessage) (*sarama.ProducerMessage, error) {
	key := event.AggregateID
	if key == "" {
		key = event.ID
	}

	value, err := json.Marshal(Envelope{
		ID:            event.ID,
		AggregateType: event.AggregateType,
		AggregateID:   event.AggregateID,
		EventType:     event.EventType,
		Payload:       json.RawMessage(event.Payload),
		PublishedAt:   p.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal outbox envelope: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(value),
		Headers: []sarama.RecordHeader{
			{Key: []byte(HeaderEventType), Value: []byte(event.EventType)},
			{Key: []byte(HeaderOutboxID), Value: []byte(event.ID)},
		},
	}
	otel.GetTextMapPropagator().Inject(ctx, headerCarrier{msg: msg})
	return msg, nil
}

var _ domain.OutboxPublisher = (*OutboxTopicPublisher)(nil)
