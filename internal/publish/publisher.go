package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"example.com/ftracker/internal/events"
)

// Publisher announces computed summaries.
type Publisher interface {
	Publish(ctx context.Context, evt events.WorkoutComputed) error
}

type messageWriter interface {
	WriteMessages(context.Context, string, ...kafka.Message) error
}

// SummaryPublisher writes WorkoutComputed events to a single topic, keyed by workout code
// so every summary of one discipline lands on the same partition.
type SummaryPublisher struct {
	writer  messageWriter
	topic   string
	timeout time.Duration
}

// NewSummaryPublisher constructs a SummaryPublisher. A non-positive timeout leaves the
// caller's context untouched.
func NewSummaryPublisher(writer messageWriter, topic string, timeout time.Duration) *SummaryPublisher {
	return &SummaryPublisher{writer: writer, topic: topic, timeout: timeout}
}

// Publish encodes evt as JSON and writes it to the configured topic.
func (p *SummaryPublisher) Publish(ctx context.Context, evt events.WorkoutComputed) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("encode %s: %w", events.WorkoutComputedType, err)
	}

	headers := []kafka.Header{
		{Key: "event_type", Value: []byte(events.WorkoutComputedType)},
		{Key: "workout_code", Value: []byte(evt.WorkoutCode)},
	}
	if evt.TenantID != "" {
		headers = append(headers, kafka.Header{Key: "tenant_id", Value: []byte(evt.TenantID)})
	}

	msg := kafka.Message{
		Key:     []byte(evt.WorkoutCode),
		Value:   payload,
		Headers: headers,
		Time:    evt.ComputedAt,
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	if err := p.writer.WriteMessages(ctx, p.topic, msg); err != nil {
		publishErrorCounter.WithLabelValues(p.topic).Inc()
		return fmt.Errorf("publish to %s: %w", p.topic, err)
	}
	publishedCounter.WithLabelValues(p.topic).Inc()
	return nil
}

// NoopPublisher drops every event. It is used when no brokers are configured.
type NoopPublisher struct{}

// Publish implements Publisher.
func (NoopPublisher) Publish(context.Context, events.WorkoutComputed) error { return nil }
