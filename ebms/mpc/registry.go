// Package mpc implements the MPC Registry (SPEC_FULL.md §4.4): lookup of
// Message Partition Channels by id, with a default-MPC fallback used
// exclusively for effective-MPC resolution on the UserMessage path.
package mpc

import (
	"sync"

	"github.com/ebms-as4/engine/ebms"
)

// Registry is the capability package header depends on. A host may back it
// with StaticRegistry or its own implementation (a database-backed
// registry, for instance); the core only ever consumes this interface.
type Registry interface {
	Contains(id string) bool
	Get(id string) (*ebms.MPC, bool)
	GetOrDefault(id string) (*ebms.MPC, bool)
}

// StaticRegistry is an in-memory Registry safe for concurrent reads while a
// separate goroutine calls Reload, following the copy-on-write publication
// shape SPEC_FULL.md §5 calls for shared registries.
type StaticRegistry struct {
	mu                  sync.RWMutex
	byID                map[string]*ebms.MPC
	defaultMPC          *ebms.MPC
	allowUnknownDefault bool
}

// NewStaticRegistry returns a StaticRegistry seeded with entries and a
// default MPC at ebms.DefaultMPCURI.
func NewStaticRegistry(entries ...*ebms.MPC) *StaticRegistry {
	r := &StaticRegistry{
		byID:       map[string]*ebms.MPC{},
		defaultMPC: &ebms.MPC{ID: ebms.DefaultMPCURI},
	}
	for _, e := range entries {
		r.byID[e.ID] = e
	}
	r.byID[r.defaultMPC.ID] = r.defaultMPC
	return r
}

// AllowUnknownAsDefault controls whether GetOrDefault falls back to the
// default MPC for an id that is non-empty but unregistered. Disabled by
// default: an unknown, non-empty id is reported as absent.
func (r *StaticRegistry) AllowUnknownAsDefault(allow bool) *StaticRegistry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.allowUnknownDefault = allow
	return r
}

// Reload atomically replaces the registered entries, publishing a new
// snapshot without holding the lock across resolution calls.
func (r *StaticRegistry) Reload(entries []*ebms.MPC) {
	byID := map[string]*ebms.MPC{r.defaultMPC.ID: r.defaultMPC}
	for _, e := range entries {
		byID[e.ID] = e
	}
	r.mu.Lock()
	r.byID = byID
	r.mu.Unlock()
}

// Contains reports whether id is registered (the strict form; used by
// P-Mode-side validation).
func (r *StaticRegistry) Contains(id string) bool {
	_, ok := r.Get(id)
	return ok
}

// Get looks up id strictly: no default fallback.
func (r *StaticRegistry) Get(id string) (*ebms.MPC, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.byID[id]
	return m, ok
}

// GetOrDefault looks up id, falling back to the default MPC when id is
// empty, and also when id is unknown if AllowUnknownAsDefault(true) was
// set. This is the form message-side effective-MPC resolution uses
// (SPEC_FULL.md §4.1 Phase P2a step 6).
func (r *StaticRegistry) GetOrDefault(id string) (*ebms.MPC, bool) {
	if id == "" {
		r.mu.RLock()
		d := r.defaultMPC
		r.mu.RUnlock()
		return d, true
	}
	if m, ok := r.Get(id); ok {
		return m, true
	}
	r.mu.RLock()
	allow := r.allowUnknownDefault
	d := r.defaultMPC
	r.mu.RUnlock()
	if allow {
		return d, true
	}
	return nil, false
}
