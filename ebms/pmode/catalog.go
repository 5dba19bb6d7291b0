package pmode

import (
	"fmt"
	"io"
	"sync"

	"github.com/ebms-as4/engine/ebms"
	"gopkg.in/yaml.v3"
)

// StaticResolver is a Resolver backed by an in-memory catalog of P-Modes,
// typically loaded once at startup from a YAML file a host maintains
// out-of-band (P-Mode persistence is explicitly out of scope for this core,
// §1; StaticResolver is a convenience implementation of the Resolver
// capability, not a persistence layer). Safe for concurrent Resolve calls
// while a separate goroutine calls Reload, the same copy-on-write
// publication shape client.Config snapshots use in the teacher.
type StaticResolver struct {
	mu      sync.RWMutex
	entries []*ebms.PMode
}

// catalogDoc is the YAML document shape LoadCatalog parses. It is kept
// separate from ebms.PMode so the domain model carries no YAML-specific
// struct tags.
type catalogDoc struct {
	PModes []pmodeDoc `yaml:"pmodes"`
}

type pmodeDoc struct {
	ID         string  `yaml:"id"`
	MEPBinding mepDoc  `yaml:"mepBinding"`
	Leg1       *legDoc `yaml:"leg1"`
	Leg2       *legDoc `yaml:"leg2,omitempty"`
}

type mepDoc struct {
	RequiredLegs int `yaml:"requiredLegs"`
}

type legDoc struct {
	Protocol     protocolDoc `yaml:"protocol"`
	BusinessInfo businessDoc `yaml:"businessInfo"`
}

type protocolDoc struct {
	SOAPVersion string `yaml:"soapVersion"`
}

type businessDoc struct {
	MPCID   string `yaml:"mpcId,omitempty"`
	Service string `yaml:"service,omitempty"`
	Action  string `yaml:"action,omitempty"`
}

// LoadCatalog parses a YAML catalog document into a StaticResolver.
func LoadCatalog(r io.Reader) (*StaticResolver, error) {
	var doc catalogDoc
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("pmode: decode catalog: %w", err)
	}
	entries := make([]*ebms.PMode, 0, len(doc.PModes))
	for _, d := range doc.PModes {
		entries = append(entries, fromDoc(d))
	}
	return &StaticResolver{entries: entries}, nil
}

func fromDoc(d pmodeDoc) *ebms.PMode {
	pm := &ebms.PMode{
		ID:         d.ID,
		MEPBinding: ebms.MEPBinding{RequiredLegs: d.MEPBinding.RequiredLegs},
	}
	if d.Leg1 != nil {
		pm.Leg1 = legFromDoc(*d.Leg1)
	}
	if d.Leg2 != nil {
		pm.Leg2 = legFromDoc(*d.Leg2)
	}
	return pm
}

func legFromDoc(d legDoc) *ebms.Leg {
	v := ebms.SOAP12
	if d.Protocol.SOAPVersion == "1.1" {
		v = ebms.SOAP11
	}
	return &ebms.Leg{
		Protocol: ebms.Protocol{SOAPVersion: v},
		BusinessInfo: ebms.BusinessInfo{
			MPCID:   d.BusinessInfo.MPCID,
			Service: d.BusinessInfo.Service,
			Action:  d.BusinessInfo.Action,
		},
	}
}

// Reload atomically replaces the catalog's entries.
func (r *StaticResolver) Reload(entries []*ebms.PMode) {
	r.mu.Lock()
	r.entries = entries
	r.mu.Unlock()
}

// Resolve implements Resolver. A non-empty pmodeID is matched exactly, and
// if no entry has that id no P-Mode is returned. Only when pmodeID is empty
// does it scan, in catalog order, for the first P-Mode whose leg1 (or leg2)
// business info agrees on service and action. initiator, responder and
// responderAddress are accepted for interface symmetry with hosts whose
// resolution also keys on them; StaticResolver does not use them, since the
// static catalog has no per-party or per-endpoint entries.
func (r *StaticResolver) Resolve(pmodeID, service, action, initiator, responder, responderAddress string) (*ebms.PMode, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if pmodeID != "" {
		for _, pm := range r.entries {
			if pm.ID == pmodeID {
				return pm, true
			}
		}
		return nil, false
	}

	for _, pm := range r.entries {
		if legMatches(pm.Leg1, service, action) || legMatches(pm.Leg2, service, action) {
			return pm, true
		}
	}
	return nil, false
}

func legMatches(leg *ebms.Leg, service, action string) bool {
	if leg == nil {
		return false
	}
	if leg.BusinessInfo.Service != "" && leg.BusinessInfo.Service != service {
		return false
	}
	if leg.BusinessInfo.Action != "" && leg.BusinessInfo.Action != action {
		return false
	}
	return true
}
