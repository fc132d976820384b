package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerPool_RunsSubmittedTasks(t *testing.T) {
	wp := NewWorkerPool(3, 10, zerolog.Nop())

	var count atomic.Int32
	for range 20 {
		require.NoError(t, wp.Submit(func(context.Context) { count.Add(1) }))
	}

	require.NoError(t, wp.Shutdown(context.Background()))
	assert.Equal(t, int32(20), count.Load())
}

func TestWorkerPool_CallerRunsWhenQueueFull(t *testing.T) {
	wp := NewWorkerPool(1, 1, zerolog.Nop())

	release := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, wp.Submit(func(context.Context) {
		close(started)
		<-release
	}))
	<-started
	// Fills the single queue slot.
	require.NoError(t, wp.Submit(func(context.Context) {}))

	var ranOn atomic.Bool
	caller := make(chan struct{})
	go func() {
		defer close(caller)
		_ = wp.Submit(func(context.Context) { ranOn.Store(true) })
	}()

	select {
	case <-caller:
	case <-time.After(2 * time.Second):
		t.Fatal("overflow task was not run on the caller")
	}
	assert.True(t, ranOn.Load())

	close(release)
	require.NoError(t, wp.Shutdown(context.Background()))
}

func TestWorkerPool_TrySubmitRejectsWhenQueueFull(t *testing.T) {
	wp := NewWorkerPool(1, 1, zerolog.Nop())

	release := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, wp.Submit(func(context.Context) {
		close(started)
		<-release
	}))
	<-started

	var ran atomic.Int32
	require.NoError(t, wp.TrySubmit(func(context.Context) { ran.Add(1) }))
	err := wp.TrySubmit(func(context.Context) { ran.Add(1) })
	assert.ErrorIs(t, err, ErrPoolFull)

	close(release)
	require.NoError(t, wp.Shutdown(context.Background()))
	assert.Equal(t, int32(1), ran.Load(), "only the queued task runs")
	assert.ErrorIs(t, wp.TrySubmit(func(context.Context) {}), ErrPoolClosed)
}

func TestWorkerPool_SubmitAfterShutdown(t *testing.T) {
	wp := NewWorkerPool(2, 2, zerolog.Nop())
	require.NoError(t, wp.Shutdown(context.Background()))

	err := wp.Submit(func(context.Context) {})
	assert.ErrorIs(t, err, ErrPoolClosed)

	// Second shutdown is a no-op.
	assert.NoError(t, wp.Shutdown(context.Background()))
}

func TestWorkerPool_ShutdownDrainsQueue(t *testing.T) {
	wp := NewWorkerPool(1, 5, zerolog.Nop())

	var mu sync.Mutex
	var order []int
	for i := range 5 {
		require.NoError(t, wp.Submit(func(context.Context) {
			time.Sleep(5 * time.Millisecond)
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
		}))
	}

	require.NoError(t, wp.Shutdown(context.Background()))
	assert.Len(t, order, 5)
}

func TestWorkerPool_ShutdownCancelsAfterGrace(t *testing.T) {
	wp := NewWorkerPool(1, 1, zerolog.Nop())

	started := make(chan struct{})
	var cancelled atomic.Bool
	require.NoError(t, wp.Submit(func(ctx context.Context) {
		close(started)
		<-ctx.Done()
		cancelled.Store(true)
	}))
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := wp.Shutdown(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, cancelled.Load())
}

func TestWorkerPool_RecoversPanics(t *testing.T) {
	wp := NewWorkerPool(1, 2, zerolog.Nop())

	var ran atomic.Bool
	require.NoError(t, wp.Submit(func(context.Context) { panic("boom") }))
	require.NoError(t, wp.Submit(func(context.Context) { ran.Store(true) }))

	require.NoError(t, wp.Shutdown(context.Background()))
	assert.True(t, ran.Load())
}
