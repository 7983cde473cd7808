// Package safe_close coordinates graceful shutdown of long running workers.
// Package safe_close 协调长期运行的 goroutine 的优雅关闭
package safe_close

import (
	"sync"
)

// SafeClose broadcasts one close signal to every attached worker and waits for them
type SafeClose struct {
	once   sync.Once
	signal chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
	err    error
}

func NewSafeClose() *SafeClose {
	return &SafeClose{signal: make(chan struct{})}
}

// Attach starts fn in a goroutine. fn must call done when it returns and
// should stop once closeSignal is closed.
func (s *SafeClose) Attach(fn func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	go fn(s.wg.Done, s.signal)
}

// SendCloseSignal closes the signal channel; the first non-nil err is kept
func (s *SafeClose) SendCloseSignal(err error) {
	s.mu.Lock()
	if s.err == nil && err != nil {
		s.err = err
	}
	s.mu.Unlock()
	s.once.Do(func() { close(s.signal) })
}

// Closed reports whether the close signal was sent
func (s *SafeClose) Closed() <-chan struct{} {
	return s.signal
}

// WaitClosed blocks until every attached worker has called done
func (s *SafeClose) WaitClosed() error {
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// SendCloseSignalAndWait signals and waits
func (s *SafeClose) SendCloseSignalAndWait(err error) error {
	s.SendCloseSignal(err)
	return s.WaitClosed()
}
