// Package pmode implements the P-Mode Resolver (SPEC_FULL.md §4.3): mapping
// (pmodeId, service, action, initiator, responder, responderAddress) to a
// governing ebms.PMode.
package pmode

import "github.com/ebms-as4/engine/ebms"

// Resolver is the capability package header depends on. Resolve must be
// pure with respect to its arguments within a single call: no side effects
// on caller state (SPEC_FULL.md §4.3).
type Resolver interface {
	Resolve(pmodeID, service, action, initiator, responder, responderAddress string) (*ebms.PMode, bool)
}

// ResolverFunc adapts a plain function to the Resolver interface, the way a
// single pull-request Processor can be expressed as a func value (see
// package pull).
type ResolverFunc func(pmodeID, service, action, initiator, responder, responderAddress string) (*ebms.PMode, bool)

// Resolve calls f.
func (f ResolverFunc) Resolve(pmodeID, service, action, initiator, responder, responderAddress string) (*ebms.PMode, bool) {
	return f(pmodeID, service, action, initiator, responder, responderAddress)
}
