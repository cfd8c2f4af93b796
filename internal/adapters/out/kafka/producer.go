// Package kafka publishes outbox messages to a Kafka topic with segmentio/kafka-go.
package kafka

import (
	"context"
	"fmt"
	"time"

	"orders/internal/core/ports"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

const (
	HeaderEventType = "event-type"
	HeaderMessageID = "message-id"
)

// messageWriter is the part of *kafka.Writer the producer needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer implements ports.EventPublisher. Messages are keyed by order id, so all
// events of one order land on the same partition in commit order.
type Producer struct {
	writer messageWriter
}

func NewProducer(brokers []string, topic string) *Producer {
	return newProducer(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
	})
}

func newProducer(writer messageWriter) *Producer {
	return &Producer{writer: writer}
}

func (p *Producer) Publish(ctx context.Context, messages ...ports.OutboundMessage) error {
	if len(messages) == 0 {
		return nil
	}

	trace := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, trace)

	out := make([]kafka.Message, 0, len(messages))
	for _, m := range messages {
		headers := []kafka.Header{
			{Key: HeaderEventType, Value: []byte(m.EventType)},
			{Key: HeaderMessageID, Value: []byte(m.ID)},
		}
		for k, v := range trace {
			headers = append(headers, kafka.Header{Key: k, Value: []byte(v)})
		}

		out = append(out, kafka.Message{
			Key:     []byte(m.Key),
			Value:   m.Payload,
			Headers: headers,
			Time:    m.OccurredAt,
		})
	}

	if err := p.writer.WriteMessages(ctx, out...); err != nil {
		return fmt.Errorf("publish %d order events: %w", len(out), err)
	}
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
