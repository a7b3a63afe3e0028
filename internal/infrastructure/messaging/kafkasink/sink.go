// Package kafkasink forwards domain events to a Kafka topic.
package kafkasink

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"signupservice/internal/domain"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Envelope is the JSON value written for every event.
type Envelope struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload"`
}

type Sink struct {
	writer messageWriter
	now    func() time.Time
}

func New(brokers []string, topic string) *Sink {
	return newSink(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Compression:  kafka.Snappy,
	})
}

func newSink(w messageWriter) *Sink {
	return &Sink{writer: w, now: time.Now}
}

func (s *Sink) Name() string { return "kafka" }

// Handle keys messages by activity. The bus hands one activity's events to
// a single worker, so they land in their partition in publish order.
func (s *Sink) Handle(ctx context.Context, e domain.Event) error {
	value, err := json.Marshal(Envelope{
		ID:         uuid.NewString(),
		Type:       e.Type,
		OccurredAt: s.now().UTC(),
		Payload:    e.Payload,
	})
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	var key []byte
	if name, ok := e.Payload["activity"].(string); ok {
		key = []byte(name)
	}

	if err := s.writer.WriteMessages(ctx, kafka.Message{
		Key:   key,
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(e.Type)},
		},
	}); err != nil {
		return fmt.Errorf("write kafka message: %w", err)
	}
	return nil
}

func (s *Sink) Close() error {
	return s.writer.Close()
}
