// Package pull implements the Pull-Request Processor Registry
// (SPEC_FULL.md §4.5): an ordered set of pluggable resolvers that, given a
// signal message, return a governing P-Mode. The first processor to return
// one wins.
package pull

import (
	"context"
	"sync"

	"github.com/ebms-as4/engine/ebms"
)

// Processor is the capability a pull-request resolution strategy
// implements. Modeled as an interface rather than a type switch, per
// SPEC_FULL.md §4.5 / spec.md §9's guidance to treat this as a tagged
// variant or abstract capability.
type Processor interface {
	Process(ctx context.Context, signal *ebms.SignalMessage) (*ebms.PMode, bool)
}

// ProcessorFunc adapts a plain function to the Processor interface.
type ProcessorFunc func(ctx context.Context, signal *ebms.SignalMessage) (*ebms.PMode, bool)

// Process calls f.
func (f ProcessorFunc) Process(ctx context.Context, signal *ebms.SignalMessage) (*ebms.PMode, bool) {
	return f(ctx, signal)
}

// Registry holds Processors in declared registration order and tries each
// in turn until one claims the signal.
type Registry struct {
	mu         sync.RWMutex
	processors []Processor
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends p to the end of the resolution order.
func (r *Registry) Register(p Processor) {
	r.mu.Lock()
	r.processors = append(r.processors, p)
	r.mu.Unlock()
}

// Resolve tries each registered Processor in order, returning the first
// P-Mode claimed. It returns (nil, false) if none claim the signal.
func (r *Registry) Resolve(ctx context.Context, signal *ebms.SignalMessage) (*ebms.PMode, bool) {
	r.mu.RLock()
	processors := make([]Processor, len(r.processors))
	copy(processors, r.processors)
	r.mu.RUnlock()

	for _, p := range processors {
		if pm, ok := p.Process(ctx, signal); ok {
			return pm, true
		}
	}
	return nil, false
}
