// Package construction implements RendererConstruction: an async
// builder that aggregates per-drawable-element scaffolds, polling for
// readiness rather than blocking, and exposes a deterministic hash of
// the finished construction when every input scaffold is named.
package construction

import (
	"context"
	"hash/fnv"
	"sort"
	"sync"

	"github.com/xle-project/scaffoldc/assets/modelscaffold"
	"github.com/xle-project/scaffoldc/core/task"
)

// Element is one drawable's compiled inputs: its model scaffold (once
// ready) and the name it was compiled from, used for the deterministic
// hash.
type Element struct {
	Name  string
	model *modelscaffold.ModelScaffold
	ready bool
	mu    sync.Mutex
}

// Bind attaches the compiled scaffold once its compile operation has
// finished. Safe to call from a different goroutine than Poll.
func (e *Element) Bind(ms *modelscaffold.ModelScaffold) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.model = ms
	e.ready = true
}

// Poll implements task.Pending: an Element is Ready once Bind has run.
func (e *Element) Poll(ctx context.Context) task.PollResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ready {
		return task.Ready
	}
	return task.Continue
}

// Model returns the bound scaffold, or nil if not yet ready.
func (e *Element) Model() *modelscaffold.ModelScaffold {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.model
}

// RendererConstruction aggregates the Elements needed to draw one scene
// object: it is handed a list of elements up front (some possibly still
// compiling) and polls them to completion without blocking a caller
// thread.
type RendererConstruction struct {
	elements []*Element
}

func New(elements []*Element) *RendererConstruction {
	return &RendererConstruction{elements: elements}
}

// IsReady polls every element once, without blocking, and reports
// whether the construction can be drawn.
func (c *RendererConstruction) IsReady(ctx context.Context) bool {
	pending := make([]task.Pending, len(c.elements))
	for i, e := range c.elements {
		pending[i] = e
	}
	ready, _ := task.PollOnce(ctx, pending)
	return ready
}

// Await blocks (via repeated polling with backoff) until every element
// is ready or ctx is cancelled.
func (c *RendererConstruction) Await(ctx context.Context) bool {
	pending := make([]task.Pending, len(c.elements))
	for i, e := range c.elements {
		pending[i] = e
	}
	return task.FulfillWhenNotPending(ctx, pending)
}

// Elements returns the construction's elements in their original order.
func (c *RendererConstruction) Elements() []*Element { return c.elements }

// Hash computes a deterministic fnv hash of the construction's element
// names, in sorted order, so that two constructions built from the same
// named inputs - regardless of the order elements became ready - compare
// equal. Returns ok=false if any element is unnamed (anonymous/inline
// geometry never participates in the construction cache).
func (c *RendererConstruction) Hash() (sum uint64, ok bool) {
	names := make([]string, len(c.elements))
	for i, e := range c.elements {
		if e.Name == "" {
			return 0, false
		}
		names[i] = e.Name
	}
	sort.Strings(names)
	h := fnv.New64a()
	for _, n := range names {
		_, _ = h.Write([]byte(n))
		_, _ = h.Write([]byte{0})
	}
	return h.Sum64(), true
}

// Reconstruct rebuilds a RendererConstruction's elements from scratch
// (e.g. after an IsInvalidated dependency check failed), replacing the
// bound scaffolds with freshly-pending Elements.
func Reconstruct(names []string) *RendererConstruction {
	elements := make([]*Element, len(names))
	for i, n := range names {
		elements[i] = &Element{Name: n}
	}
	return New(elements)
}

// IsInvalidated reports whether any element's compiled artifact has been
// invalidated, consulting each element's DepVal handle. depVals must be
// parallel to Elements() (nil entries are treated as never-invalidated).
func (c *RendererConstruction) IsInvalidated(depVals []interface{ Validate() string }) (reason string, invalidated bool) {
	for i, dv := range depVals {
		if dv == nil {
			continue
		}
		if r := dv.Validate(); r != "" {
			name := ""
			if i < len(c.elements) {
				name = c.elements[i].Name
			}
			return "element " + name + ": " + r, true
		}
	}
	return "", false
}
