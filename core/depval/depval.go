// Package depval provides a concrete DepVal implementation that watches
// the source files an artifact was compiled from and reports invalidation
// once any of them changes, matching the fault.DepValHandle/chunk.DepVal
// contract the rest of the pipeline depends on.
package depval

import (
	"context"
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/xle-project/scaffoldc/core/log"
)

// FileSet is a DepVal backed by an fsnotify watch over a fixed set of
// source paths. It is safe for concurrent use: Validate may be called
// from a polling goroutine (core/task.FulfillWhenNotPending) while the
// watcher goroutine updates invalidation state.
type FileSet struct {
	mu          sync.Mutex
	paths       []string
	invalidated string
	watcher     *fsnotify.Watcher
	closed      bool
}

// NewFileSet starts watching paths and returns a FileSet DepVal. The
// caller must call Close when the artifact built from these paths is
// evicted, to release the underlying watcher.
func NewFileSet(paths []string) (*FileSet, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("depval: creating watcher: %w", err)
	}
	fs := &FileSet{paths: append([]string(nil), paths...), watcher: w}
	for _, p := range paths {
		if err := w.Add(p); err != nil {
			w.Close()
			return nil, fmt.Errorf("depval: watching %q: %w", p, err)
		}
	}
	go fs.run()
	return fs, nil
}

func (fs *FileSet) run() {
	for {
		select {
		case ev, ok := <-fs.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Remove|fsnotify.Rename|fsnotify.Create) != 0 {
				fs.mu.Lock()
				if fs.invalidated == "" {
					fs.invalidated = fmt.Sprintf("%s changed (%s)", ev.Name, ev.Op)
				}
				fs.mu.Unlock()
			}
		case err, ok := <-fs.watcher.Errors:
			if !ok {
				return
			}
			log.From(context.Background()).With("error", err).Warningf("depval: watch error")
		}
	}
}

// Validate implements chunk.DepVal / fault.DepValHandle.
func (fs *FileSet) Validate() string {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.invalidated
}

// Close stops the underlying watcher. Safe to call more than once.
func (fs *FileSet) Close() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if fs.closed {
		return nil
	}
	fs.closed = true
	return fs.watcher.Close()
}

// Static is a DepVal that never invalidates, for artifacts with no
// tracked filesystem dependency (e.g. built entirely from in-memory
// data).
type Static struct{}

func (Static) Validate() string { return "" }
