package relay

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

var ErrPoolClosed = errors.New("worker pool closed")

type WorkerPoolI interface {
	AddTask(ctx context.Context, task Task) error
	Close()
}

type Task func() error

type WorkerPool struct {
	pool chan Task
	quit chan struct{}
	once sync.Once
}

func NewWorkerPool(size int) *WorkerPool {
	wp := &WorkerPool{
		pool: make(chan Task, size),
		quit: make(chan struct{}),
	}

	for i := 0; i < size; i++ {
		go wp.worker()
	}
	return wp
}

func (wp *WorkerPool) worker() {
	for {
		select {
		case <-wp.quit:
			return
		case task := <-wp.pool:
			if err := task(); err != nil {
				zap.L().Error("Relay task failed", zap.Error(err))
			}
		}
	}
}

func (wp *WorkerPool) AddTask(ctx context.Context, task Task) error {
	select {
	case <-wp.quit:
		return ErrPoolClosed
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-wp.quit:
		return ErrPoolClosed
	case wp.pool <- task:
		return nil
	}
}

// Close stops the workers. Tasks still queued are dropped; their outbox rows
// stay at processing and the sweep reclaims them once the claim goes stale.
func (wp *WorkerPool) Close() {
	wp.once.Do(func() {
		close(wp.quit)
	})
}
