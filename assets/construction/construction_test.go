package construction_test

import (
	"context"
	"testing"
	"time"

	"github.com/xle-project/scaffoldc/assets/construction"
	"github.com/xle-project/scaffoldc/core/task"
)

func TestAwaitBlocksUntilAllElementsBound(t *testing.T) {
	orig := task.PollInterval
	task.PollInterval = time.Millisecond
	defer func() { task.PollInterval = orig }()

	a := &construction.Element{Name: "a"}
	b := &construction.Element{Name: "b"}
	c := construction.New([]*construction.Element{a, b})

	go func() {
		time.Sleep(5 * time.Millisecond)
		a.Bind(nil)
		b.Bind(nil)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if !c.Await(ctx) {
		t.Fatalf("Await returned false, want true")
	}
}

func TestHashRequiresAllNamed(t *testing.T) {
	c := construction.New([]*construction.Element{{Name: "a"}, {Name: ""}})
	if _, ok := c.Hash(); ok {
		t.Fatalf("expected Hash to fail when an element is unnamed")
	}

	c2 := construction.New([]*construction.Element{{Name: "b"}, {Name: "a"}})
	c3 := construction.New([]*construction.Element{{Name: "a"}, {Name: "b"}})
	h2, ok2 := c2.Hash()
	h3, ok3 := c3.Hash()
	if !ok2 || !ok3 || h2 != h3 {
		t.Fatalf("expected order-independent hash, got %v/%v %v/%v", h2, ok2, h3, ok3)
	}
}
