package mpc

import (
	"testing"

	"github.com/ebms-as4/engine/ebms"
)

func TestStaticRegistry_GetOrDefault_EmptyIDYieldsDefault(t *testing.T) {
	r := NewStaticRegistry()

	m, ok := r.GetOrDefault("")
	if !ok {
		t.Fatal("expected default MPC to be returned for empty id")
	}
	if m.ID != ebms.DefaultMPCURI {
		t.Errorf("expected default MPC URI, got %q", m.ID)
	}
}

func TestStaticRegistry_GetOrDefault_UnknownIDStrictByDefault(t *testing.T) {
	r := NewStaticRegistry()

	if _, ok := r.GetOrDefault("urn:example:unknown"); ok {
		t.Error("expected unknown, non-empty mpc id to be absent without AllowUnknownAsDefault")
	}
}

func TestStaticRegistry_AllowUnknownAsDefault(t *testing.T) {
	r := NewStaticRegistry().AllowUnknownAsDefault(true)

	m, ok := r.GetOrDefault("urn:example:unknown")
	if !ok {
		t.Fatal("expected unknown id to fall back to default when allowed")
	}
	if m.ID != ebms.DefaultMPCURI {
		t.Errorf("expected default MPC, got %q", m.ID)
	}
}

func TestStaticRegistry_RegisteredEntry(t *testing.T) {
	r := NewStaticRegistry(&ebms.MPC{ID: "urn:example:mpc-a"})

	if !r.Contains("urn:example:mpc-a") {
		t.Error("expected registered mpc to be found via Contains")
	}
	m, ok := r.Get("urn:example:mpc-a")
	if !ok || m.ID != "urn:example:mpc-a" {
		t.Errorf("expected strict Get to return the registered mpc, got %v, %v", m, ok)
	}
}

func TestStaticRegistry_Reload(t *testing.T) {
	r := NewStaticRegistry(&ebms.MPC{ID: "urn:example:old"})
	r.Reload([]*ebms.MPC{{ID: "urn:example:new"}})

	if r.Contains("urn:example:old") {
		t.Error("expected old entry to be gone after Reload")
	}
	if !r.Contains("urn:example:new") {
		t.Error("expected new entry to be present after Reload")
	}
	if !r.Contains(ebms.DefaultMPCURI) {
		t.Error("expected default MPC to survive Reload")
	}
}
