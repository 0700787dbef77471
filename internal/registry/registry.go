// Package registry owns the lifecycle of per-user memory managers.
package registry

import (
	"sync"

	"github.com/wayfarer-ai/wayfarer/internal/memory"
)

// Factory creates a memory manager for a user seen for the first time.
type Factory func(userID string) *memory.Manager

// Registry is a process-wide map from user ID to memory manager. All
// lifecycle operations happen under one lock, so concurrent creation for
// the same new user is race-free. No eviction policy: managers live until
// removed explicitly.
type Registry struct {
	mu       sync.Mutex
	factory  Factory
	managers map[string]*memory.Manager
}

// New creates a Registry using factory for first-seen users.
func New(factory Factory) *Registry {
	return &Registry{
		factory:  factory,
		managers: make(map[string]*memory.Manager),
	}
}

// GetOrCreate returns the manager for userID, creating it on first use.
func (r *Registry) GetOrCreate(userID string) *memory.Manager {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m, ok := r.managers[userID]; ok {
		return m
	}
	m := r.factory(userID)
	r.managers[userID] = m
	return m
}

// Get returns the manager for userID, or nil if none exists.
func (r *Registry) Get(userID string) *memory.Manager {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.managers[userID]
}

// Remove discards the manager for userID, if any.
func (r *Registry) Remove(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.managers, userID)
}

// Snapshot returns a copy of the current user-to-manager map.
func (r *Registry) Snapshot() map[string]*memory.Manager {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]*memory.Manager, len(r.managers))
	for id, m := range r.managers {
		out[id] = m
	}
	return out
}

// Len returns the number of active managers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.managers)
}
