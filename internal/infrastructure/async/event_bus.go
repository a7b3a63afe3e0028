package async

import (
	"context"
	"time"

	"go.uber.org/zap"

	"signupservice/internal/domain"
)

const (
	sinkTimeout    = 2 * time.Second
	queuePerWorker = 64
)

// Sink receives every published event on a pool worker. Events of one
// activity reach a sink one at a time, in publish order.
type Sink interface {
	Name() string
	Handle(ctx context.Context, e domain.Event) error
}

type AsyncEventBus struct {
	pool  *WorkerPool
	sinks []Sink
	log   *zap.Logger
}

func NewAsyncEventBus(ctx context.Context, poolSize int, log *zap.Logger, sinks ...Sink) *AsyncEventBus {
	return &AsyncEventBus{
		pool:  NewWorkerPool(ctx, poolSize, queuePerWorker, sinkTimeout, log),
		sinks: sinks,
		log:   log,
	}
}

// Publish never waits for sinks. When the worker owning the event's
// activity is backed up the event is dropped and logged.
func (b *AsyncEventBus) Publish(ctx context.Context, e domain.Event) {
	key, _ := e.Payload["activity"].(string)

	ok := b.pool.Submit(key, func(taskCtx context.Context) {
		b.log.Info("domain_event",
			zap.String("type", e.Type),
			zap.Any("payload", e.Payload),
		)
		for _, s := range b.sinks {
			if err := s.Handle(taskCtx, e); err != nil {
				b.log.Warn("event sink failed",
					zap.String("sink", s.Name()),
					zap.String("type", e.Type),
					zap.Error(err),
				)
			}
		}
	})
	if !ok {
		b.log.Warn("event dropped",
			zap.String("type", e.Type),
			zap.String("activity", key),
		)
	}
}

// Close drains queued events.
func (b *AsyncEventBus) Close() {
	b.pool.Shutdown()
}
