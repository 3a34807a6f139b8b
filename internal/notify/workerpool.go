package notify

import (
	"go.uber.org/zap"
)

type WorkerPoolI interface {
	TryAdd(task Task) bool
	Close()
}

type Task func() error

type WorkerPool struct {
	pool chan Task
}

func NewWorkerPool(size int) *WorkerPool {
	pool := make(chan Task, size)
	wp := &WorkerPool{pool: pool}

	for i := 0; i < size; i++ {
		go wp.worker()
	}
	return wp
}

func (wp *WorkerPool) worker() {
	for task := range wp.pool {
		if err := task(); err != nil {
			zap.L().Error("notification delivery failed", zap.Error(err))
		}
	}
}

// TryAdd never blocks: delivery is best effort, and a full queue drops the
// event rather than stalling the caller.
func (wp *WorkerPool) TryAdd(task Task) bool {
	select {
	case wp.pool <- task:
		return true
	default:
		return false
	}
}

// Close stops the workers once they drain the queue. Callers stop publishing
// before closing; the hub shuts down after the HTTP server has drained.
func (wp *WorkerPool) Close() {
	close(wp.pool)
}
