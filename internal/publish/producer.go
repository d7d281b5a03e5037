// Package publish announces computed workout summaries on Kafka.
package publish

import (
	"context"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// Summaries are published one per request, so writers flush immediately
// instead of waiting out kafka-go's one second default batch window.
const (
	summaryBatchSize    = 1
	summaryBatchTimeout = 10 * time.Millisecond
)

// KafkaProducer keeps one summary writer per topic. Messages are
// partitioned by key, which SummaryPublisher sets to the workout code.
type KafkaProducer struct {
	brokers []string
	mu      sync.Mutex
	writers map[string]*kafka.Writer
}

// NewKafkaProducer creates a KafkaProducer for brokers.
func NewKafkaProducer(brokers []string) *KafkaProducer {
	return &KafkaProducer{
		brokers: brokers,
		writers: make(map[string]*kafka.Writer),
	}
}

// WriteMessages writes summary messages to topic.
func (p *KafkaProducer) WriteMessages(ctx context.Context, topic string, msgs ...kafka.Message) error {
	return p.summaryWriter(topic).WriteMessages(ctx, msgs...)
}

func (p *KafkaProducer) summaryWriter(topic string) *kafka.Writer {
	p.mu.Lock()
	defer p.mu.Unlock()

	if writer, ok := p.writers[topic]; ok {
		return writer
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(p.brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchSize:              summaryBatchSize,
		BatchTimeout:           summaryBatchTimeout,
		RequiredAcks:           kafka.RequireAll,
		Compression:            kafka.Snappy,
		AllowAutoTopicCreation: true,
	}
	p.writers[topic] = writer
	return writer
}

// Close flushes and closes every summary writer, returning the first error.
func (p *KafkaProducer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	for topic, writer := range p.writers {
		if err := writer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(p.writers, topic)
	}
	return firstErr
}
