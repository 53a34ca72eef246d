package events

import (
	"context"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKafkaPublisherBoundsWrites(t *testing.T) {
	p := NewKafkaPublisher(KafkaConfig{Brokers: []string{"localhost:9092"}, Topic: "microblog.events"})
	defer p.Close()

	assert.Equal(t, DefaultKafkaTimeout, p.timeout)
	assert.Equal(t, DefaultKafkaTimeout, p.writer.WriteTimeout)
	assert.Equal(t, 2, p.writer.MaxAttempts)
	assert.Equal(t, kafka.RequireAll, p.writer.RequiredAcks)
	assert.False(t, p.writer.Async)

	p = NewKafkaPublisher(KafkaConfig{Brokers: []string{"localhost:9092"}, Topic: "t", Timeout: 500 * time.Millisecond})
	defer p.Close()
	assert.Equal(t, 500*time.Millisecond, p.timeout)
}

func TestKafkaPublishFailsFastWithoutBroker(t *testing.T) {
	// nothing listens on port 1
	p := NewKafkaPublisher(KafkaConfig{Brokers: []string{"127.0.0.1:1"}, Topic: "t", Timeout: 300 * time.Millisecond})
	defer p.Close()

	start := time.Now()
	err := p.Publish(context.Background(), Event{Type: PostCreated, ActorID: 1, PostID: 2, At: time.Now()})
	require.Error(t, err)
	assert.Less(t, time.Since(start), 3*time.Second)
}
