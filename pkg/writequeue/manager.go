// Package writequeue serializes writes per user.
// Package writequeue 按用户串行化写操作
//
// Every user gets a lazily started lane: a buffered channel drained by one
// goroutine, so operations for the same uid run one at a time in FIFO order
// while different users proceed in parallel. Idle lanes stop on their own.
package writequeue

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrWriteQueueFull 用户写队列已满
	ErrWriteQueueFull = errors.New("write queue is full")
	// ErrWriteQueueClosed 写队列管理器已关闭
	ErrWriteQueueClosed = errors.New("write queue is closed")
	// ErrWriteTimeout 写操作超时
	ErrWriteTimeout = errors.New("write operation timeout")
)

// Config 写队列配置
type Config struct {
	QueueCapacity int           // per-user capacity, default 100
	WriteTimeout  time.Duration // default 30s
	IdleTimeout   time.Duration // default 10m
}

func DefaultConfig() Config {
	return Config{
		QueueCapacity: 100,
		WriteTimeout:  30 * time.Second,
		IdleTimeout:   10 * time.Minute,
	}
}

type writeOp struct {
	ctx    context.Context
	fn     func() error
	result chan error
}

type lane struct {
	ch chan writeOp
}

// Manager owns the lanes of all users
// Manager 管理所有用户的写队列
type Manager struct {
	config Config
	logger *zap.Logger

	mu     sync.Mutex
	lanes  map[int64]*lane
	closed bool
	done   chan struct{}
	wg     sync.WaitGroup
}

// New creates a manager; a nil cfg uses DefaultConfig and a nil logger is a no-op
func New(cfg *Config, logger *zap.Logger) *Manager {
	c := DefaultConfig()
	if cfg != nil {
		if cfg.QueueCapacity > 0 {
			c.QueueCapacity = cfg.QueueCapacity
		}
		if cfg.WriteTimeout > 0 {
			c.WriteTimeout = cfg.WriteTimeout
		}
		if cfg.IdleTimeout > 0 {
			c.IdleTimeout = cfg.IdleTimeout
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		config: c,
		logger: logger,
		lanes:  make(map[int64]*lane),
		done:   make(chan struct{}),
	}
}

// Execute runs fn on the lane of uid and waits for its result.
// Operations of one uid never overlap and run in submission order.
// Execute 在用户的写队列上执行 fn 并等待结果
func (m *Manager) Execute(ctx context.Context, uid int64, fn func() error) error {
	op := writeOp{ctx: ctx, fn: fn, result: make(chan error, 1)}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrWriteQueueClosed
	}
	l, ok := m.lanes[uid]
	if !ok {
		l = &lane{ch: make(chan writeOp, m.config.QueueCapacity)}
		m.lanes[uid] = l
		m.wg.Add(1)
		go m.run(uid, l)
	}
	// enqueue under the lock so the lane cannot retire between lookup and send
	select {
	case l.ch <- op:
	default:
		m.mu.Unlock()
		return ErrWriteQueueFull
	}
	m.mu.Unlock()

	timer := time.NewTimer(m.config.WriteTimeout)
	defer timer.Stop()

	select {
	case err := <-op.result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrWriteTimeout
	case <-m.done:
		return ErrWriteQueueClosed
	}
}

func (m *Manager) run(uid int64, l *lane) {
	defer m.wg.Done()

	for {
		idle := time.NewTimer(m.config.IdleTimeout)
		select {
		case op := <-l.ch:
			idle.Stop()
			m.apply(uid, op)
		case <-idle.C:
			m.mu.Lock()
			if len(l.ch) > 0 {
				m.mu.Unlock()
				continue
			}
			delete(m.lanes, uid)
			m.mu.Unlock()
			return
		case <-m.done:
			idle.Stop()
			return
		}
	}
}

func (m *Manager) apply(uid int64, op writeOp) {
	if err := op.ctx.Err(); err != nil {
		op.result <- err
		return
	}
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("write queue operation panicked",
				zap.Int64("uid", uid),
				zap.Any("panic", r))
			op.result <- errors.New("write operation panicked")
		}
	}()
	op.result <- op.fn()
}

// QueueCount returns the number of live lanes
func (m *Manager) QueueCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.lanes)
}

// Shutdown stops all lanes; pending operations fail with ErrWriteQueueClosed
// Shutdown 关闭写队列管理器
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	close(m.done)
	m.mu.Unlock()

	stopped := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(stopped)
	}()

	select {
	case <-stopped:
		m.logger.Info("write queue manager stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
