// Package kafka publishes order status notifications to a Kafka topic.
// Messages are keyed by order number so all events of one order stay on one
// partition and arrive in order.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// Message kinds carried on the status topic.
const (
	kindOrderStatusChanged = "order_status_changed"
	kindLineStatusChanged  = "line_status_changed"
)

// statusChangedMessage is the wire form of a status change notification.
type statusChangedMessage struct {
	Kind        string    `json:"kind"`
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	LineID      string    `json:"line_id,omitempty"`
	OldStatus   string    `json:"old_status"`
	NewStatus   string    `json:"new_status"`
	ChangedAt   time.Time `json:"changed_at"`
}

// Publisher implements ports.EventPublisher on a kafka-go writer.
type Publisher struct {
	writer *kafka.Writer
}

var _ ports.EventPublisher = (*Publisher)(nil)

// NewPublisher creates a publisher writing to the given topic.
func NewPublisher(brokers []string, topic string) *Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
	return &Publisher{writer: writer}
}

// PublishOrderStatusChanged announces that an order moved to a new status.
func (p *Publisher) PublishOrderStatusChanged(ctx context.Context, event order.StatusChanged) error {
	return p.publish(ctx, event.OrderNumber, statusChangedMessage{
		Kind:        kindOrderStatusChanged,
		OrderID:     event.OrderID.String(),
		OrderNumber: event.OrderNumber,
		OldStatus:   string(event.OldStatus),
		NewStatus:   string(event.NewStatus),
		ChangedAt:   event.At,
	})
}

// PublishLineStatusChanged announces that a single line moved to a new
// status.
func (p *Publisher) PublishLineStatusChanged(ctx context.Context, event order.LineStatusChanged) error {
	return p.publish(ctx, event.OrderNumber, statusChangedMessage{
		Kind:        kindLineStatusChanged,
		OrderID:     event.OrderID.String(),
		OrderNumber: event.OrderNumber,
		LineID:      event.LineID.String(),
		OldStatus:   string(event.OldStatus),
		NewStatus:   string(event.NewStatus),
		ChangedAt:   event.At,
	})
}

// Close flushes pending messages and releases broker connections.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

func (p *Publisher) publish(ctx context.Context, key string, message statusChangedMessage) error {
	value, err := json.Marshal(message)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
	})
}

// EnsureTopicExists creates the status topic when the broker does not have it
// yet. Used at startup so a fresh environment works without manual topic
// administration.
func EnsureTopicExists(brokers []string, topic string) error {
	conn, err := kafka.Dial("tcp", brokers[0])
	if err != nil {
		return err
	}
	defer conn.Close()

	controller, err := conn.Controller()
	if err != nil {
		return err
	}
	controllerConn, err := kafka.Dial("tcp", controller.Host)
	if err != nil {
		return err
	}
	defer controllerConn.Close()

	err = controllerConn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	})
	if errors.Is(err, kafka.TopicAlreadyExists) {
		return nil
	}
	return err
}
