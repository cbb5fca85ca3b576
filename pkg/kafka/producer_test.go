package kafka

import (
	"testing"

	kafkago "github.com/segmentio/kafka-go"
)

func TestNewProducer(t *testing.T) {
	p := NewProducer(Config{
		Brokers: []string{"localhost:9092", "localhost:9093"},
		Topic:   "marketplace.events",
	})

	if p.writer == nil {
		t.Fatal("expected a configured writer")
	}
	if p.Topic() != "marketplace.events" {
		t.Errorf("expected topic marketplace.events, got %s", p.Topic())
	}
	if _, ok := p.writer.Balancer.(*kafkago.Hash); !ok {
		t.Errorf("expected key-hash balancer, got %T", p.writer.Balancer)
	}
	if p.writer.RequiredAcks != kafkago.RequireAll {
		t.Errorf("expected RequireAll acks, got %v", p.writer.RequiredAcks)
	}
}

func TestToKafkaMessage(t *testing.T) {
	km := toKafkaMessage(Message{
		Key:   []byte("APP000123"),
		Value: []byte(`{"policy_fit_score":75}`),
		Headers: map[string]string{
			"event_type": "marketplace.application.submitted",
		},
	})

	if string(km.Key) != "APP000123" {
		t.Errorf("expected key APP000123, got %s", string(km.Key))
	}
	if string(km.Value) != `{"policy_fit_score":75}` {
		t.Errorf("unexpected value %s", string(km.Value))
	}
	if len(km.Headers) != 1 || km.Headers[0].Key != "event_type" {
		t.Fatalf("unexpected headers %v", km.Headers)
	}
	if string(km.Headers[0].Value) != "marketplace.application.submitted" {
		t.Errorf("unexpected event_type header: %s", string(km.Headers[0].Value))
	}
}
