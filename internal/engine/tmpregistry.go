package engine

import (
	"os"
	"sync"
)

// tmpRegistry tracks in-progress temporary files so an interrupted run can
// sweep them instead of leaving half-written entries in the destination.
type tmpRegistry struct {
	mu    sync.Mutex
	paths map[string]struct{}
}

var tmpFiles = &tmpRegistry{}

func (r *tmpRegistry) register(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.paths == nil {
		r.paths = make(map[string]struct{})
	}
	r.paths[path] = struct{}{}
}

func (r *tmpRegistry) deregister(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.paths, path)
}

// sweep removes all registered temporary files.
func (r *tmpRegistry) sweep() {
	r.mu.Lock()
	paths := make([]string, 0, len(r.paths))
	for p := range r.paths {
		paths = append(paths, p)
	}
	r.paths = nil
	r.mu.Unlock()

	for _, p := range paths {
		_ = os.Remove(p)
	}
}
