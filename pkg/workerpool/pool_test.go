package workerpool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_Submit(t *testing.T) {
	p := New(&Config{MaxWorkers: 2, QueueSize: 4}, nil)
	defer p.Shutdown(context.Background())

	var n atomic.Int32
	for i := 0; i < 10; i++ {
		require.NoError(t, p.Submit(context.Background(), func(context.Context) error {
			n.Add(1)
			return nil
		}))
	}
	assert.Equal(t, int32(10), n.Load())

	want := errors.New("boom")
	assert.ErrorIs(t, p.Submit(context.Background(), func(context.Context) error { return want }), want)
	assert.Error(t, p.Submit(context.Background(), func(context.Context) error { panic("x") }))
}

func TestPool_SubmitAsyncDrainsOnShutdown(t *testing.T) {
	p := New(&Config{MaxWorkers: 1, QueueSize: 16}, nil)

	var n atomic.Int32
	for i := 0; i < 8; i++ {
		require.NoError(t, p.SubmitAsync(context.Background(), func(context.Context) error {
			time.Sleep(time.Millisecond)
			n.Add(1)
			return nil
		}))
	}
	require.NoError(t, p.Shutdown(context.Background()))
	assert.Equal(t, int32(8), n.Load())

	assert.ErrorIs(t, p.SubmitAsync(context.Background(), func(context.Context) error { return nil }), ErrWorkerPoolClosed)
}

func TestPool_Full(t *testing.T) {
	p := New(&Config{MaxWorkers: 1, QueueSize: 1}, nil)
	defer p.Shutdown(context.Background())

	block := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, p.SubmitAsync(context.Background(), func(context.Context) error {
		close(started)
		<-block
		return nil
	}))
	<-started
	require.NoError(t, p.SubmitAsync(context.Background(), func(context.Context) error { return nil }))
	assert.ErrorIs(t, p.SubmitAsync(context.Background(), func(context.Context) error { return nil }), ErrWorkerPoolFull)
	close(block)
}
