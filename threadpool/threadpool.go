// Package threadpool provides a bounded [Min, Max] worker pool with
// idle-timeout shrink, used by backends that must offload a genuinely
// blocking native call onto its own goroutine rather than suspend a task
// directly. It generalizes the fixed-concurrency worker pool pattern (one
// goroutine per worker, a shared task channel, a WaitGroup for shutdown)
// toward the original runtime's thread_pool.hpp: workers are created lazily
// up to Max and removed after sitting idle for IdleTimeout, down to Min.
package threadpool

import (
	"context"
	stdruntime "runtime"
	"sync"
	"time"

	"github.com/webcraft-project/async-core/asyncerrors"
	"github.com/webcraft-project/async-core/metrics"
)

func defaultMaxWorkers() int {
	return stdruntime.NumCPU()
}

// Option configures a Pool at construction.
type Option func(*config)

type config struct {
	min, max    int
	idleTimeout time.Duration
	metrics     metrics.Provider
	onPanic     func(recovered any)
}

// WithMinWorkers sets the number of workers kept alive even when idle.
// Default 0.
func WithMinWorkers(n int) Option {
	return func(c *config) { c.min = n }
}

// WithMaxWorkers sets the ceiling on concurrently running workers. Default
// is runtime.NumCPU().
func WithMaxWorkers(n int) Option {
	return func(c *config) { c.max = n }
}

// WithIdleTimeout sets how long a worker waits for work before exiting, once
// more than Min workers are alive. Default 10s.
func WithIdleTimeout(d time.Duration) Option {
	return func(c *config) { c.idleTimeout = d }
}

// WithMetrics attaches an optional instrumentation provider; the pool
// records an up-down counter of live workers and a counter of submitted
// tasks, adapted from ygrebnov-workers' metrics.Provider hook.
func WithMetrics(p metrics.Provider) Option {
	return func(c *config) { c.metrics = p }
}

// WithPanicHandler overrides what happens when a submitted task panics.
// The default absorbs the panic silently, matching the original thread
// pool's "log exception or handle appropriately... continue to prevent
// thread termination" behavior.
func WithPanicHandler(fn func(recovered any)) Option {
	return func(c *config) { c.onPanic = fn }
}

// Pool is a dynamically sized worker pool.
type Pool struct {
	cfg config

	mu        sync.Mutex
	cond      *sync.Cond
	tasks     []func(context.Context)
	taskCtx   []context.Context
	workers   int
	available int
	shutdown  bool
	wg        sync.WaitGroup

	workersGauge metrics.UpDownCounter
	tasksCounter metrics.Counter
}

// New creates a Pool and starts its Min workers. The pool accepts work
// immediately; there is no separate Start call, since unlike task/generator
// workers a thread pool worker has nothing meaningful to do before its first
// task arrives.
func New(opts ...Option) *Pool {
	cfg := config{
		max:         defaultMaxWorkers(),
		idleTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.max < 1 {
		cfg.max = 1
	}
	if cfg.min < 0 {
		cfg.min = 0
	}
	if cfg.min > cfg.max {
		cfg.min = cfg.max
	}

	p := &Pool{cfg: cfg}
	p.cond = sync.NewCond(&p.mu)

	if cfg.metrics != nil {
		p.workersGauge = cfg.metrics.UpDownCounter("threadpool.workers")
		p.tasksCounter = cfg.metrics.Counter("threadpool.tasks_submitted")
	}

	p.mu.Lock()
	for i := 0; i < cfg.min; i++ {
		p.spawnWorkerLocked()
	}
	p.mu.Unlock()

	return p
}

// Submit enqueues fn for execution on a worker, spinning one up if none is
// idle and the pool has not reached Max. It blocks only long enough to
// acquire the internal lock; the task itself runs asynchronously.
func (p *Pool) Submit(ctx context.Context, fn func(context.Context)) error {
	if err := ctx.Err(); err != nil {
		//nolint:wrapcheck
		return context.Cause(ctx)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.shutdown {
		return &asyncerrors.ShutdownError{Msg: "thread pool is shutting down"}
	}

	if p.available == 0 && p.workers < p.cfg.max {
		p.spawnWorkerLocked()
	}

	p.tasks = append(p.tasks, fn)
	p.taskCtx = append(p.taskCtx, ctx)
	if p.tasksCounter != nil {
		p.tasksCounter.Add(1)
	}
	p.cond.Signal()

	return nil
}

// Shutdown stops accepting new work, wakes every worker so it can observe
// the shutdown flag, and waits for all of them to exit.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	p.shutdown = true
	p.cond.Broadcast()
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		//nolint:wrapcheck
		return context.Cause(ctx)
	}
}

// Workers reports the current number of live worker goroutines.
func (p *Pool) Workers() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.workers
}

func (p *Pool) spawnWorkerLocked() {
	p.workers++
	p.available++
	if p.workersGauge != nil {
		p.workersGauge.Add(1)
	}
	p.wg.Add(1)
	go p.runWorker()
}

func (p *Pool) runWorker() {
	defer p.wg.Done()

	for {
		p.mu.Lock()

		deadline := time.Now().Add(p.cfg.idleTimeout)
		for len(p.tasks) == 0 && !p.shutdown {
			remaining := time.Until(deadline)
			if remaining <= 0 {
				if p.workers > p.cfg.min {
					p.workers--
					if p.workersGauge != nil {
						p.workersGauge.Add(-1)
					}
					p.available--
					p.mu.Unlock()

					return
				}
				// At the floor: keep waiting indefinitely for work or shutdown.
				deadline = time.Now().Add(p.cfg.idleTimeout)

				continue
			}

			timedWait(p.cond, remaining)
		}

		if p.shutdown && len(p.tasks) == 0 {
			p.workers--
			if p.workersGauge != nil {
				p.workersGauge.Add(-1)
			}
			p.available--
			p.mu.Unlock()

			return
		}

		fn := p.tasks[0]
		taskCtx := p.taskCtx[0]
		p.tasks = p.tasks[1:]
		p.taskCtx = p.taskCtx[1:]
		p.available--
		p.mu.Unlock()

		p.runTask(taskCtx, fn)

		p.mu.Lock()
		p.available++
		p.mu.Unlock()
	}
}

func (p *Pool) runTask(ctx context.Context, fn func(context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			if p.cfg.onPanic != nil {
				p.cfg.onPanic(r)
			}
		}
	}()

	fn(ctx)
}

// timedWait waits on cond for at most d, re-acquiring cond.L before
// returning regardless of how it woke. The caller must hold cond.L.
func timedWait(cond *sync.Cond, d time.Duration) {
	timer := time.AfterFunc(d, func() {
		cond.L.Lock()
		cond.Broadcast()
		cond.L.Unlock()
	})
	defer timer.Stop()

	cond.Wait()
}
