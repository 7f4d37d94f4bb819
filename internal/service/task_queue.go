package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"gstims/internal/config"
	"gstims/internal/port"
)

// TaskQueue is an in-process background task queue backed by a worker pool.
// Failed tasks are retried with a short backoff up to MaxRetries, so tasks
// must be idempotent.
type TaskQueue struct {
	tasks      chan port.Task
	maxRetries int
	wg         sync.WaitGroup
}

// NewTaskQueue creates a new TaskQueue from configuration.
func NewTaskQueue(cfg *config.QueueConfig) *TaskQueue {
	return &TaskQueue{
		tasks:      make(chan port.Task, cfg.Size),
		maxRetries: cfg.MaxRetries,
	}
}

var _ port.TaskQueue = (*TaskQueue)(nil)

// Submit enqueues a task. It fails fast when the queue is full rather than
// blocking the request handler.
func (q *TaskQueue) Submit(task port.Task) error {
	select {
	case q.tasks <- task:
		return nil
	default:
		return fmt.Errorf("task queue full, rejecting %q", task.Name)
	}
}

// Start launches the worker pool. It blocks until ctx is canceled and all
// in-flight tasks have finished.
func (q *TaskQueue) Start(ctx context.Context, concurrency int) {
	log.Printf("taskQueue: started (concurrency=%d, maxRetries=%d)", concurrency, q.maxRetries)

	for i := 0; i < concurrency; i++ {
		q.wg.Add(1)
		go q.worker(ctx)
	}

	<-ctx.Done()
	log.Printf("taskQueue: shutting down, waiting for in-flight tasks...")
	q.wg.Wait()
	log.Printf("taskQueue: shutdown complete")
}

func (q *TaskQueue) worker(ctx context.Context) {
	defer q.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case task := <-q.tasks:
			q.run(ctx, task)
		}
	}
}

func (q *TaskQueue) run(ctx context.Context, task port.Task) {
	for attempt := 1; attempt <= q.maxRetries; attempt++ {
		// Each attempt gets its own deadline independent of queue shutdown
		// ordering, so a task that started keeps its time budget.
		taskCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Minute)
		err := task.Run(taskCtx)
		cancel()

		if err == nil {
			return
		}
		log.Printf("taskQueue: task %q attempt %d/%d failed: %v", task.Name, attempt, q.maxRetries, err)

		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Duration(attempt) * time.Second):
		}
	}
	log.Printf("taskQueue: task %q exhausted retries, dropping", task.Name)
}
