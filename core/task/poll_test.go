package task_test

import (
	"context"
	"testing"
	"time"

	"github.com/xle-project/scaffoldc/core/task"
)

type countdown struct{ n int }

func (c *countdown) Poll(ctx context.Context) task.PollResult {
	if c.n <= 0 {
		return task.Ready
	}
	c.n--
	return task.Continue
}

func TestFulfillWhenNotPending(t *testing.T) {
	task.PollInterval = time.Millisecond
	items := []task.Pending{&countdown{n: 2}, &countdown{n: 0}}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if !task.FulfillWhenNotPending(ctx, items) {
		t.Fatalf("expected all items to become ready")
	}
}

func TestFulfillWhenNotPendingCancelled(t *testing.T) {
	task.PollInterval = time.Millisecond
	items := []task.Pending{&countdown{n: 1000000}}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	if task.FulfillWhenNotPending(ctx, items) {
		t.Fatalf("expected cancellation before completion")
	}
}

func TestWithTimeoutContinuesOnExpiry(t *testing.T) {
	task.PollInterval = time.Millisecond
	c := &countdown{n: 1000000}
	res := task.WithTimeout(context.Background(), []task.Pending{c}, 5*time.Millisecond)
	if res != task.Continue {
		t.Fatalf("expected Continue on timeout, got %v", res)
	}
}
