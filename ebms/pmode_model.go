package ebms

// PMode is a bilateral Processing Mode configuration record: the agreement
// between two trading partners that governs how a message exchange is
// processed. The core never mutates a resolved PMode; it is a read-only
// reference owned by whatever P-Mode Resolver produced it (package pmode).
type PMode struct {
	ID          string
	MEPBinding  MEPBinding
	Leg1        *Leg
	Leg2        *Leg
}

// MEPBinding describes the message exchange pattern a P-Mode implements.
type MEPBinding struct {
	// RequiredLegs is 1 for a one-way exchange, 2 for a two-way
	// (request-response) exchange.
	RequiredLegs int
}

// Leg is one direction of a message exchange pattern.
type Leg struct {
	Protocol     Protocol
	BusinessInfo BusinessInfo

	// Security and reliability configuration are opaque to this core; a
	// host-specific P-Mode resolver implementation may attach whatever it
	// needs here without this package depending on it.
	Security    any
	Reliability any
}

// Protocol carries the leg's wire-level settings relevant to this core.
type Protocol struct {
	SOAPVersion SOAPVersion
}

// BusinessInfo carries the leg's business-level defaults: the MPC a
// UserMessage on this leg is expected to use absent an explicit mpc
// attribute, and the service/action the leg is scoped to.
type BusinessInfo struct {
	MPCID   string
	Service string
	Action  string
}

// MPC (Message Partition Channel) is a named logical queue for pull-style
// delivery. Every UserMessage is associated with exactly one, resolved by
// package mpc.
type MPC struct {
	ID string
}
