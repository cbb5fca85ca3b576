package kafka

import (
	"context"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// Message is a single record bound for the event stream.
type Message struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// Producer publishes marketplace events onto a single Kafka topic. Every
// domain event rides the same stream, keyed by aggregate id; the Hash
// balancer pins a key to one partition so events for the same aggregate
// stay ordered.
type Producer struct {
	writer *kafkago.Writer
}

// NewProducer creates a producer for the configured brokers and topic.
func NewProducer(cfg Config) *Producer {
	return &Producer{
		writer: &kafkago.Writer{
			Addr:         kafkago.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafkago.Hash{},
			BatchTimeout: 10 * time.Millisecond,
			RequiredAcks: kafkago.RequireAll,
		},
	}
}

// Topic returns the stream the producer writes to.
func (p *Producer) Topic() string {
	return p.writer.Topic
}

// Publish sends messages to the event stream in a single batch.
func (p *Producer) Publish(ctx context.Context, messages ...Message) error {
	if len(messages) == 0 {
		return nil
	}

	out := make([]kafkago.Message, len(messages))
	for i, msg := range messages {
		out[i] = toKafkaMessage(msg)
	}

	if err := p.writer.WriteMessages(ctx, out...); err != nil {
		return fmt.Errorf("kafka publish to %s: %w", p.writer.Topic, err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Producer) Close() error {
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("closing writer for topic %s: %w", p.writer.Topic, err)
	}
	return nil
}

func toKafkaMessage(msg Message) kafkago.Message {
	km := kafkago.Message{
		Key:   msg.Key,
		Value: msg.Value,
	}
	for k, v := range msg.Headers {
		km.Headers = append(km.Headers, kafkago.Header{
			Key:   k,
			Value: []byte(v),
		})
	}
	return km
}
