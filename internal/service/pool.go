package service

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

var (
	ErrPoolClosed = errors.New("worker pool is shut down")
	ErrPoolFull   = errors.New("worker pool queue is full")
)

// Task is a unit of work run by the pool. The context is cancelled when a
// shutdown runs past its grace period.
type Task func(ctx context.Context)

// WorkerPool runs tasks on a fixed number of workers fed by a bounded queue.
// When the queue is full the submitting goroutine runs the task itself, which
// slows producers down instead of growing the backlog.
type WorkerPool struct {
	tasks  chan Task
	ctx    context.Context
	cancel context.CancelFunc
	log    zerolog.Logger

	mu     sync.RWMutex
	closed bool

	workers sync.WaitGroup
	inline  sync.WaitGroup
}

func NewWorkerPool(workers, capacity int, log zerolog.Logger) *WorkerPool {
	if workers < 1 {
		workers = 1
	}
	if capacity < 0 {
		capacity = 0
	}
	ctx, cancel := context.WithCancel(context.Background())
	wp := &WorkerPool{
		tasks:  make(chan Task, capacity),
		ctx:    ctx,
		cancel: cancel,
		log:    log,
	}
	for i := range workers {
		wp.workers.Add(1)
		go wp.runWorker(i)
	}
	wp.log.Info().Int("workers", workers).Int("capacity", capacity).Msg("worker pool started")
	return wp
}

// Submit queues task, or runs it inline when the queue is full.
func (wp *WorkerPool) Submit(task Task) error {
	wp.mu.RLock()
	if wp.closed {
		wp.mu.RUnlock()
		return ErrPoolClosed
	}
	select {
	case wp.tasks <- task:
		wp.mu.RUnlock()
		return nil
	default:
	}
	wp.inline.Add(1)
	wp.mu.RUnlock()

	defer wp.inline.Done()
	wp.log.Debug().Msg("queue full, running task on caller")
	wp.run(task)
	return nil
}

// TrySubmit queues task but never runs it on the caller.
func (wp *WorkerPool) TrySubmit(task Task) error {
	wp.mu.RLock()
	defer wp.mu.RUnlock()
	if wp.closed {
		return ErrPoolClosed
	}
	select {
	case wp.tasks <- task:
		return nil
	default:
		return ErrPoolFull
	}
}

// Shutdown stops accepting work and waits for queued and running tasks.
// When ctx expires first the task context is cancelled and Shutdown waits
// for tasks to observe it before returning ctx.Err().
func (wp *WorkerPool) Shutdown(ctx context.Context) error {
	wp.mu.Lock()
	if wp.closed {
		wp.mu.Unlock()
		return nil
	}
	wp.closed = true
	close(wp.tasks)
	wp.mu.Unlock()

	done := make(chan struct{})
	go func() {
		wp.workers.Wait()
		wp.inline.Wait()
		close(done)
	}()

	select {
	case <-done:
		wp.cancel()
		wp.log.Info().Msg("worker pool drained")
		return nil
	case <-ctx.Done():
		wp.log.Warn().Msg("grace period expired, cancelling running tasks")
		wp.cancel()
		<-done
		return ctx.Err()
	}
}

func (wp *WorkerPool) runWorker(id int) {
	defer wp.workers.Done()
	for task := range wp.tasks {
		wp.run(task)
	}
	wp.log.Debug().Int("worker", id).Msg("worker stopped")
}

func (wp *WorkerPool) run(task Task) {
	defer func() {
		if r := recover(); r != nil {
			wp.log.Error().Interface("panic", r).Msg("task panicked")
		}
	}()
	task(wp.ctx)
}
