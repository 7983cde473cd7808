// Package workerpool 提供固定数量 worker 的任务池
// Used to bound the goroutines spawned for background side effects.
package workerpool

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

var (
	// ErrWorkerPoolFull 任务队列已满
	ErrWorkerPoolFull = errors.New("worker pool queue is full")
	// ErrWorkerPoolClosed Worker Pool 已关闭
	ErrWorkerPoolClosed = errors.New("worker pool is closed")
)

// Config Worker Pool 配置
type Config struct {
	MaxWorkers int // default 8
	QueueSize  int // default 256
}

func DefaultConfig() Config {
	return Config{MaxWorkers: 8, QueueSize: 256}
}

type task struct {
	ctx  context.Context
	fn   func(context.Context) error
	done chan error // nil for fire-and-forget tasks
}

// Pool runs submitted tasks on a fixed set of workers
type Pool struct {
	config Config
	logger *zap.Logger

	tasks  chan task
	wg     sync.WaitGroup
	active atomic.Int64

	mu     sync.RWMutex
	closed bool
}

// New starts the workers; a nil cfg uses DefaultConfig and a nil logger is a no-op
// New 创建并启动 Worker Pool
func New(cfg *Config, logger *zap.Logger) *Pool {
	c := DefaultConfig()
	if cfg != nil {
		if cfg.MaxWorkers > 0 {
			c.MaxWorkers = cfg.MaxWorkers
		}
		if cfg.QueueSize > 0 {
			c.QueueSize = cfg.QueueSize
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &Pool{
		config: c,
		logger: logger,
		tasks:  make(chan task, c.QueueSize),
	}
	for i := 0; i < c.MaxWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for t := range p.tasks {
		err := p.run(t)
		if t.done != nil {
			t.done <- err
		} else if err != nil {
			p.logger.Warn("async task failed", zap.Error(err))
		}
	}
}

func (p *Pool) run(t task) (err error) {
	p.active.Add(1)
	defer p.active.Add(-1)
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("worker pool task panicked", zap.Any("panic", r))
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()
	if err := t.ctx.Err(); err != nil {
		return err
	}
	return t.fn(t.ctx)
}

func (p *Pool) enqueue(t task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrWorkerPoolClosed
	}
	select {
	case p.tasks <- t:
		return nil
	default:
		return ErrWorkerPoolFull
	}
}

// Submit runs fn on the pool and waits for it to finish
// Submit 提交任务并等待完成
func (p *Pool) Submit(ctx context.Context, fn func(context.Context) error) error {
	done := make(chan error, 1)
	if err := p.enqueue(task{ctx: ctx, fn: fn, done: done}); err != nil {
		return err
	}
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SubmitAsync queues fn without waiting. Errors from fn are logged by the pool.
// SubmitAsync 异步提交任务，不等待结果
func (p *Pool) SubmitAsync(ctx context.Context, fn func(context.Context) error) error {
	return p.enqueue(task{ctx: ctx, fn: fn})
}

// ActiveCount returns the number of tasks currently running
func (p *Pool) ActiveCount() int64 {
	return p.active.Load()
}

// QueuedCount returns the number of tasks waiting for a worker
func (p *Pool) QueuedCount() int {
	return len(p.tasks)
}

// Shutdown stops accepting tasks and waits for queued ones to drain
// Shutdown 关闭 Worker Pool，等待队列中的任务执行完毕
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.tasks)
	p.mu.Unlock()

	drained := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(drained)
	}()
	select {
	case <-drained:
		p.logger.Info("worker pool stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
