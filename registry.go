// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corun

import (
	"slices"
	"sync"

	"code.hybscloud.com/atomix"
)

// Registry records which instances are currently running.
//
// An identifier is present iff its task holds a computation that has
// not completed. Only drivers mutate a Registry, from their stepping
// goroutine; any goroutine may query it. Drivers sharing a Registry
// must use disjoint identifiers.
type Registry struct {
	mu      sync.RWMutex
	running map[ID]Serial
	n       atomix.Uint32
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{running: make(map[ID]Serial)}
}

func (r *Registry) markRunning(id ID, s Serial) {
	r.mu.Lock()
	if _, ok := r.running[id]; !ok {
		r.n.Add(1)
	}
	r.running[id] = s
	r.mu.Unlock()
}

func (r *Registry) markFinished(id ID) {
	r.mu.Lock()
	if _, ok := r.running[id]; ok {
		delete(r.running, id)
		r.n.Add(^uint32(0))
	}
	r.mu.Unlock()
}

// IsRunning reports whether id is running.
func (r *Registry) IsRunning(id ID) bool {
	r.mu.RLock()
	_, ok := r.running[id]
	r.mu.RUnlock()
	return ok
}

// Serial returns the run serial of a running id.
func (r *Registry) Serial(id ID) (Serial, bool) {
	r.mu.RLock()
	s, ok := r.running[id]
	r.mu.RUnlock()
	return s, ok
}

// Len returns the number of running instances. Lock-free.
func (r *Registry) Len() int {
	return int(r.n.Load())
}

// Snapshot returns the running identifiers in ascending order.
func (r *Registry) Snapshot() []ID {
	r.mu.RLock()
	ids := make([]ID, 0, len(r.running))
	for id := range r.running {
		ids = append(ids, id)
	}
	r.mu.RUnlock()
	slices.Sort(ids)
	return ids
}
