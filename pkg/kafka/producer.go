// Package kafka wraps the event bus producer used to publish booking
// outcomes after a transaction commits.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Rajeswari195/kayak/internal/config"

	"github.com/segmentio/kafka-go"
)

// Producer publishes booking events to the configured topic.
type Producer struct {
	writer *kafka.Writer
	topic  string
}

// NewProducer creates a new event bus producer.
func NewProducer(cfg *config.EventBusConfig) *Producer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(cfg.Brokers...),
		Balancer: &kafka.LeastBytes{},
	}

	return &Producer{writer: writer, topic: cfg.TopicBookings}
}

// Publish writes a single JSON-encoded event keyed by key to the bookings
// topic. Callers are expected to treat publish failure as best-effort: the
// booking transaction has already committed by the time this is called.
func (p *Producer) Publish(ctx context.Context, key string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	message := kafka.Message{
		Topic: p.topic,
		Key:   []byte(key),
		Value: payload,
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// Close closes the producer.
func (p *Producer) Close() error {
	return p.writer.Close()
}
