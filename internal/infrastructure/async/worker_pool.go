package async

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Task func(ctx context.Context)

// WorkerPool runs submitted tasks on a fixed number of goroutines. Tasks
// sharing a key run on the same worker, in submission order. A task gets
// taskTimeout to finish; panics are logged and swallowed.
type WorkerPool struct {
	queues      []chan Task
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
	log         *zap.Logger
	taskTimeout time.Duration
	closeOnce   sync.Once
}

func NewWorkerPool(parent context.Context, size, queueSize int, taskTimeout time.Duration, log *zap.Logger) *WorkerPool {
	if size <= 0 {
		size = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	ctx, cancel := context.WithCancel(parent)
	p := &WorkerPool{
		queues:      make([]chan Task, size),
		ctx:         ctx,
		cancel:      cancel,
		log:         log,
		taskTimeout: taskTimeout,
	}

	for i := range p.queues {
		p.queues[i] = make(chan Task, queueSize)
		p.wg.Add(1)
		go p.worker(i)
	}

	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	for task := range p.queues[id] {
		p.run(id, task)
	}
}

func (p *WorkerPool) run(id int, task Task) {
	safeCtx, cancel := context.WithTimeout(p.ctx, p.taskTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			p.log.Error("task panicked", zap.Int("worker", id), zap.Any("panic", r))
		}
	}()
	task(safeCtx)
}

// Submit queues task on the worker owning key without waiting. It returns
// false when that worker's queue is full or the pool is shutting down.
func (p *WorkerPool) Submit(key string, task Task) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	if p.ctx.Err() != nil {
		return false
	}
	select {
	case p.queues[p.shard(key)] <- task:
		return true
	default:
		return false
	}
}

func (p *WorkerPool) shard(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(p.queues)))
}

// Shutdown stops accepting tasks and waits for queued ones to finish.
func (p *WorkerPool) Shutdown() {
	p.closeOnce.Do(func() {
		for _, q := range p.queues {
			close(q)
		}
		p.wg.Wait()
		p.cancel()
	})
}
