package kafkasink

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	"signupservice/internal/domain"
)

type writerFake struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *writerFake) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *writerFake) Close() error {
	w.closed = true
	return nil
}

func TestSink_HandleWritesEnvelope(t *testing.T) {
	w := &writerFake{}
	s := newSink(w)
	fixed := time.Date(2025, time.September, 1, 15, 30, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	err := s.Handle(context.Background(), domain.Event{
		Type: domain.EventActivitySignup,
		Payload: map[string]any{
			"activity": "Chess Club",
			"email":    "tester@example.com",
		},
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	require.Equal(t, []byte("Chess Club"), msg.Key)
	require.Equal(t, "event_type", msg.Headers[0].Key)
	require.Equal(t, domain.EventActivitySignup, string(msg.Headers[0].Value))

	var env Envelope
	require.NoError(t, json.Unmarshal(msg.Value, &env))
	require.Equal(t, domain.EventActivitySignup, env.Type)
	require.True(t, fixed.Equal(env.OccurredAt))
	require.Equal(t, "tester@example.com", env.Payload["email"])
	_, err = uuid.Parse(env.ID)
	require.NoError(t, err)
}

func TestSink_HandlePropagatesWriteError(t *testing.T) {
	s := newSink(&writerFake{err: errors.New("leader not available")})

	err := s.Handle(context.Background(), domain.Event{Type: domain.EventActivityUnregister})
	require.ErrorContains(t, err, "leader not available")
}

func TestSink_Close(t *testing.T) {
	w := &writerFake{}
	require.NoError(t, newSink(w).Close())
	require.True(t, w.closed)
}
