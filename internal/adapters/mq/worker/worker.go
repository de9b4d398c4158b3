// Package worker applies queued feedback events to the feedback store.
package worker

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/gigmatch/internal/domain/model"
	"github.com/okian/gigmatch/pkg/logger"
	"github.com/okian/gigmatch/pkg/metrics"
)

// Event is what workers read off the queue.
type Event = model.FeedbackEvent

// Applier persists a feedback event.
type Applier interface {
	PutRating(ctx context.Context, e model.FeedbackEvent) error
}

// Queue defines how workers receive events.
type Queue interface {
	Dequeue() <-chan Event
	Close() error
}

// acker is implemented by queues that track dequeues.
type acker interface {
	Done()
}

// Pool runs a fixed number of workers over one queue.
type Pool struct {
	name    string
	size    int
	queue   Queue
	applier Applier
	logger  logger.Logger

	wg        sync.WaitGroup
	active    atomic.Int64
	processed atomic.Int64
	failed    atomic.Int64
	startOnce sync.Once
}

// NewPool creates a pool of size workers. size < 1 is raised to 1.
func NewPool(size int, q Queue, applier Applier, opts ...Option) *Pool {
	if size < 1 {
		size = 1
	}
	p := &Pool{
		name:    "feedback",
		size:    size,
		queue:   q,
		applier: applier,
		logger:  logger.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.Named(p.name)

	metrics.UpdateWorkerCount(size)
	metrics.UpdateWorkerActiveCount(0)
	metrics.UpdateWorkerIdleCount(size)
	return p
}

// Start launches the workers. They exit when ctx is cancelled or the queue
// is closed and drained. Calling Start more than once has no effect.
func (p *Pool) Start(ctx context.Context) {
	p.startOnce.Do(func() {
		for i := 0; i < p.size; i++ {
			p.wg.Add(1)
			go p.run(ctx, i)
		}
		p.logger.Info(ctx, "worker pool started", logger.Int("workers", p.size))
	})
}

func (p *Pool) run(ctx context.Context, id int) {
	defer p.wg.Done()
	events := p.queue.Dequeue()
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			if a, ok := p.queue.(acker); ok {
				a.Done()
			}
			if err := p.apply(ctx, e); err != nil {
				p.logger.Error(ctx, "apply feedback failed",
					logger.Int("worker_id", id),
					logger.String("event_id", e.EventID),
					logger.Error(err),
				)
			}
		}
	}
}

func (p *Pool) apply(ctx context.Context, e Event) error {
	start := time.Now()
	busy := p.active.Add(1)
	metrics.UpdateWorkerActiveCount(int(busy))
	metrics.UpdateWorkerIdleCount(p.size - int(busy))
	defer func() {
		busy := p.active.Add(-1)
		metrics.UpdateWorkerActiveCount(int(busy))
		metrics.UpdateWorkerIdleCount(p.size - int(busy))
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	if err := p.applier.PutRating(ctx, e); err != nil {
		p.failed.Add(1)
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "apply_error")
		return fmt.Errorf("apply event %s: %w", e.EventID, err)
	}
	p.processed.Add(1)
	metrics.RecordFeedbackApplied()
	return nil
}

// Processed returns the number of events applied.
func (p *Pool) Processed() int64 { return p.processed.Load() }

// Failed returns the number of events that could not be applied.
func (p *Pool) Failed() int64 { return p.failed.Load() }

// Size returns the number of workers.
func (p *Pool) Size() int { return p.size }

// Shutdown closes the queue and waits for workers to drain it.
func (p *Pool) Shutdown(ctx context.Context) error {
	if err := p.queue.Close(); err != nil {
		p.logger.Error(ctx, "error closing queue", logger.Error(err))
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info(ctx, "worker pool drained", logger.Int("processed", int(p.Processed())))
		return nil
	case <-ctx.Done():
		p.logger.Warn(ctx, "worker pool shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}
