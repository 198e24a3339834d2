package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"CakeshopWebhooks/internal/messaging"
	"CakeshopWebhooks/pkg/correlation"

	"github.com/segmentio/kafka-go"
)

// Publisher implements messaging.Publisher using Kafka.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher creates a publisher for one topic. Messages with the same key
// land on the same partition.
func NewPublisher(brokers []string, topic string) *Publisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: false,
	}

	return &Publisher{writer: writer}
}

// Publish writes the envelope synchronously; it returns once the brokers acknowledged it.
func (p *Publisher) Publish(ctx context.Context, env messaging.Envelope) error {
	msg, err := toMessage(ctx, env)
	if err != nil {
		return err
	}

	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish message",
			"topic", p.writer.Topic,
			"key", env.Key,
			slog.Any("error", err))
		return fmt.Errorf("publish to %s: %w", p.writer.Topic, err)
	}

	slog.DebugContext(ctx, "Message published",
		"topic", p.writer.Topic,
		"key", env.Key,
		"event_id", env.EventID)
	return nil
}

// Close flushes and closes the Kafka writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

func toMessage(ctx context.Context, env messaging.Envelope) (kafka.Message, error) {
	value, err := json.Marshal(env)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal envelope: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(env.Key),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(env.Type)},
		},
	}

	if corrID := correlation.FromContext(ctx); corrID != "" {
		msg.Headers = append(msg.Headers, kafka.Header{
			Key:   correlation.HeaderName,
			Value: []byte(corrID),
		})
	}

	return msg, nil
}
