package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	log "github.com/sirupsen/logrus"
)

func newMockedProducer(t *testing.T) (*Producer, *mocks.SyncProducer) {
	t.Helper()
	mockProducer := mocks.NewSyncProducer(t, nil)
	return newProducer(mockProducer, log.WithField("component", "kafka-producer-test")), mockProducer
}

func TestProducer_Send(t *testing.T) {
	producer, mockProducer := newMockedProducer(t)

	mockProducer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var decoded map[string]string
		if err := json.Unmarshal(val, &decoded); err != nil {
			return err
		}
		if decoded["order_id"] != "order-123" {
			return errors.New("unexpected payload")
		}
		return nil
	})

	msg := &sarama.ProducerMessage{
		Topic: TopicOrderEvents,
		Key:   sarama.StringEncoder("order-123"),
		Value: sarama.ByteEncoder(`{"order_id":"order-123"}`),
	}
	if err := producer.Send(context.Background(), msg); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if msg.Timestamp.IsZero() {
		t.Fatal("expected timestamp to be set")
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestProducer_Send_Error(t *testing.T) {
	producer, mockProducer := newMockedProducer(t)
	mockProducer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	err := producer.Send(context.Background(), &sarama.ProducerMessage{Topic: TopicOrderEvents})
	if !errors.Is(err, sarama.ErrOutOfBrokers) {
		t.Fatalf("expected ErrOutOfBrokers, got %v", err)
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestProducer_SendCanceledContext(t *testing.T) {
	producer, mockProducer := newMockedProducer(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := producer.Send(ctx, &sarama.ProducerMessage{Topic: TopicOrderEvents}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestNewProducer_RequiresBrokers(t *testing.T) {
	if _, err := NewProducer(ProducerConfig{}, nil); err == nil {
		t.Fatal("expected error without brokers")
	}
}
