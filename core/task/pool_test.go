package task_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/xle-project/scaffoldc/core/task"
)

func TestPoolRunsSubmittedJobs(t *testing.T) {
	p := task.NewPool(4, 2)
	defer p.Close()

	var n int32
	handles := make([]*task.Handle, 8)
	for i := range handles {
		handles[i] = p.Submit(context.Background(), func(ctx context.Context) error {
			atomic.AddInt32(&n, 1)
			return nil
		})
	}
	for _, h := range handles {
		if err := h.Wait(context.Background()); err != nil {
			t.Fatalf("Wait: %v", err)
		}
	}
	if got := atomic.LoadInt32(&n); got != 8 {
		t.Fatalf("ran %d jobs, want 8", got)
	}
}

func TestPoolPropagatesJobError(t *testing.T) {
	p := task.NewPool(1, 1)
	defer p.Close()

	wantErr := errors.New("boom")
	h := p.Submit(context.Background(), func(ctx context.Context) error { return wantErr })
	if err := h.Wait(context.Background()); !errors.Is(err, wantErr) {
		t.Fatalf("Wait() = %v, want %v", err, wantErr)
	}
}

func TestHandleWaitRespectsContextCancellation(t *testing.T) {
	p := task.NewPool(1, 1)
	defer p.Close()

	release := make(chan struct{})
	h := p.Submit(context.Background(), func(ctx context.Context) error {
		<-release
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := h.Wait(ctx); err != context.DeadlineExceeded {
		t.Fatalf("Wait() = %v, want context.DeadlineExceeded", err)
	}
	close(release)
}
