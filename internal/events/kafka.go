package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// DefaultKafkaTimeout bounds a single Publish, retries included
const DefaultKafkaTimeout = 2 * time.Second

// KafkaConfig configures the Kafka sink
type KafkaConfig struct {
	Brokers []string
	Topic   string
	Timeout time.Duration
}

// KafkaPublisher writes events to a Kafka topic keyed by actor id,
// so one user's events stay ordered within a partition.
type KafkaPublisher struct {
	writer  *kafka.Writer
	timeout time.Duration
}

// NewKafkaPublisher creates a synchronous writer. Publish runs on the request path,
// so a broker outage costs at most cfg.Timeout per event.
func NewKafkaPublisher(cfg KafkaConfig) *KafkaPublisher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultKafkaTimeout
	}
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
		MaxAttempts:  2,
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: timeout,
		ReadTimeout:  timeout,
	}
	return &KafkaPublisher{writer: w, timeout: timeout}
}

func (p *KafkaPublisher) Publish(ctx context.Context, ev Event) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("kafka: marshal event: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("%d", ev.ActorID)),
		Value: value,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(ev.Type)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write %s: %w", ev.Type, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
