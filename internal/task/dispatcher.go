package task

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/phrazzld/amora-api/internal/scoring"
)

// DispatcherConfig holds configuration for the scoring dispatcher.
type DispatcherConfig struct {
	// WorkerCount determines how many dedicated worker goroutines run
	// engine calls. Engine calls may hold an internal interpreter lock,
	// so more workers than the engine can serve in parallel buys nothing.
	WorkerCount int

	// QueueSize determines the buffer size of the in-memory job queue.
	QueueSize int
}

// DefaultDispatcherConfig returns a DispatcherConfig with reasonable defaults.
func DefaultDispatcherConfig() DispatcherConfig {
	return DispatcherConfig{
		WorkerCount: 2,
		QueueSize:   64,
	}
}

// scoreJob is one queued engine invocation. The result channel is the
// caller's future: buffered with capacity 1 so the worker never blocks on
// delivery.
type scoreJob struct {
	ctx      context.Context
	profileA json.RawMessage
	profileB json.RawMessage
	result   chan scoreResult
}

type scoreResult struct {
	score float32
	err   error
}

// Dispatcher runs blocking engine calls on dedicated worker goroutines.
// It implements scoring.Scorer itself, so callers score through it exactly
// as they would through the engine, minus the head-of-line blocking.
type Dispatcher struct {
	scorer scoring.Scorer
	jobs   chan *scoreJob
	wg     sync.WaitGroup
	logger *slog.Logger

	// mu guards closed; Score holds it in read mode while enqueuing so a
	// concurrent Stop cannot close the channel under a sender.
	mu     sync.RWMutex
	closed bool
}

// NewDispatcher creates a dispatcher around the given engine. Invalid
// config values fall back to defaults.
func NewDispatcher(scorer scoring.Scorer, config DispatcherConfig, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	if config.WorkerCount <= 0 {
		logger.Warn("invalid worker count specified, using default",
			"specified_count", config.WorkerCount,
			"default_count", DefaultDispatcherConfig().WorkerCount)
		config.WorkerCount = DefaultDispatcherConfig().WorkerCount
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultDispatcherConfig().QueueSize
	}

	d := &Dispatcher{
		scorer: scorer,
		jobs:   make(chan *scoreJob, config.QueueSize),
		logger: logger,
	}

	for i := 0; i < config.WorkerCount; i++ {
		d.wg.Add(1)
		go d.worker(i)
	}
	logger.Debug("scoring dispatcher started",
		"worker_count", config.WorkerCount,
		"queue_size", config.QueueSize)

	return d
}

// Score implements scoring.Scorer. It enqueues the pair and blocks until a
// worker has delivered the engine's verdict. Once dispatched the engine
// call is not cancellable; a caller-side timeout belongs around this call,
// not inside it.
func (d *Dispatcher) Score(ctx context.Context, profileA, profileB json.RawMessage) (float32, error) {
	job := &scoreJob{
		ctx:      ctx,
		profileA: profileA,
		profileB: profileB,
		result:   make(chan scoreResult, 1),
	}

	d.mu.RLock()
	if d.closed {
		d.mu.RUnlock()
		return 0, fmt.Errorf("%w: dispatcher stopped", scoring.ErrUnavailable)
	}
	select {
	case d.jobs <- job:
		d.mu.RUnlock()
	default:
		d.mu.RUnlock()
		return 0, fmt.Errorf("%w: dispatch queue full (capacity %d)",
			scoring.ErrUnavailable, cap(d.jobs))
	}

	res := <-job.result
	return res.score, res.err
}

// Stop rejects new jobs, lets the workers finish everything already
// queued, and waits for them to exit.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.jobs)
	d.mu.Unlock()

	d.wg.Wait()
	d.logger.Debug("scoring dispatcher stopped")
}

// worker consumes jobs until the queue is closed and drained.
func (d *Dispatcher) worker(id int) {
	defer d.wg.Done()

	for job := range d.jobs {
		score, err := d.scorer.Score(job.ctx, job.profileA, job.profileB)
		if err != nil {
			d.logger.Debug("engine call failed",
				"worker", id,
				"error", err)
		}
		job.result <- scoreResult{score: score, err: err}
	}
}
