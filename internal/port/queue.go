package port

import "context"

// Task is a unit of background work. Run is retried by the queue on failure,
// so it must be safe to re-apply.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// TaskQueue accepts long-running work so request handlers can return
// immediately. Implementations provide at-least-once execution.
type TaskQueue interface {
	Submit(task Task) error
}
