package service_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gstims/internal/config"
	"gstims/internal/port"
	"gstims/internal/service"
)

func TestTaskQueue_RetriesUntilSuccess(t *testing.T) {
	queue := service.NewTaskQueue(&config.QueueConfig{Size: 4, MaxRetries: 3})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		queue.Start(ctx, 1)
		close(done)
	}()

	var attempts int32
	finished := make(chan struct{})
	err := queue.Submit(port.Task{
		Name: "flaky",
		Run: func(ctx context.Context) error {
			if atomic.AddInt32(&attempts, 1) < 2 {
				return errors.New("transient")
			}
			close(finished)
			return nil
		},
	})
	assert.NoError(t, err)

	select {
	case <-finished:
	case <-time.After(10 * time.Second):
		t.Fatal("task did not complete after retry")
	}
	assert.Equal(t, int32(2), atomic.LoadInt32(&attempts))

	cancel()
	<-done
}

func TestTaskQueue_SubmitFailsFastWhenFull(t *testing.T) {
	// No workers started, so the buffer fills and stays full.
	queue := service.NewTaskQueue(&config.QueueConfig{Size: 1, MaxRetries: 1})

	noop := port.Task{Name: "noop", Run: func(ctx context.Context) error { return nil }}

	assert.NoError(t, queue.Submit(noop))
	err := queue.Submit(noop)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "queue full")
}
