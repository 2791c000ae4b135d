package workerpool

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Task is a unit of work run by a pool worker.
type Task func()

// Pool runs submitted tasks on a fixed number of goroutines. It is shared by
// all requests; tasks must only capture request-local state.
type Pool struct {
	workers   int
	taskQueue chan Task
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once

	// mu guards closed. Submit enqueues under the read lock, so once Shutdown
	// has set closed nothing else can land in taskQueue.
	mu     sync.RWMutex
	closed bool

	logger    *zap.Logger
}

// New starts a pool with the given number of workers and queue capacity.
func New(workers int, queueSize int, logger *zap.Logger) *Pool {
	ctx, cancel := context.WithCancel(context.Background())

	pool := &Pool{
		workers:   workers,
		taskQueue: make(chan Task, queueSize),
		ctx:       ctx,
		cancel:    cancel,
		logger:    logger,
	}

	for i := 0; i < workers; i++ {
		pool.wg.Add(1)
		go pool.worker(i)
	}

	pool.logger.Info("Worker pool started",
		zap.Int("workers", workers),
		zap.Int("queue_size", queueSize))

	return pool
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			p.drain(id)
			return
		case task := <-p.taskQueue:
			p.run(id, task)
		}
	}
}

func (p *Pool) run(id int, task Task) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("Task panic recovered",
				zap.Int("worker_id", id),
				zap.Any("panic", r))
		}
	}()
	task()
}

// drain runs whatever is still queued so that no Future is left unresolved.
func (p *Pool) drain(id int) {
	for {
		select {
		case task := <-p.taskQueue:
			p.run(id, task)
		default:
			return
		}
	}
}

// Submit queues task, blocking while the queue is full. It returns false when
// ctx is done first or once the pool has been shut down.
func (p *Pool) Submit(ctx context.Context, task Task) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}
	select {
	case <-ctx.Done():
		return false
	case p.taskQueue <- task:
		return true
	}
}

// Shutdown stops accepting tasks, runs the ones already queued and waits for
// the workers to exit. Stop the HTTP server first.
func (p *Pool) Shutdown() {
	p.closeOnce.Do(func() {
		// workers are still running here, so blocked submitters get through
		p.mu.Lock()
		p.closed = true
		p.mu.Unlock()

		p.cancel()
		p.wg.Wait()
		p.drain(-1)
		p.logger.Info("Worker pool shutdown completed")
	})
}

// Future is the pending result of a function submitted with Go.
type Future[T any] struct {
	done  chan struct{}
	value T
}

// Wait blocks until the result is available.
func (f *Future[T]) Wait() T {
	<-f.done
	return f.value
}

// Go runs fn on p and returns a Future for its result. If p no longer accepts
// work, or ctx ends while the queue is full, fn runs on the calling goroutine
// instead so callers always get a result. A panicking fn resolves to the zero
// value.
func Go[T any](ctx context.Context, p *Pool, fn func() T) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	task := func() {
		defer close(f.done)
		f.value = fn()
	}
	if !p.Submit(ctx, task) {
		func() {
			defer func() {
				if r := recover(); r != nil {
					p.logger.Error("Inline task panic recovered", zap.Any("panic", r))
				}
			}()
			task()
		}()
	}
	return f
}
