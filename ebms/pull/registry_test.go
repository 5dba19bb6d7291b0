package pull

import (
	"context"
	"testing"

	"github.com/ebms-as4/engine/ebms"
)

func TestRegistry_FirstClaimWins(t *testing.T) {
	r := NewRegistry()

	var calledSecond bool
	r.Register(ProcessorFunc(func(ctx context.Context, signal *ebms.SignalMessage) (*ebms.PMode, bool) {
		return nil, false
	}))
	r.Register(ProcessorFunc(func(ctx context.Context, signal *ebms.SignalMessage) (*ebms.PMode, bool) {
		calledSecond = true
		return &ebms.PMode{ID: "from-second"}, true
	}))
	r.Register(ProcessorFunc(func(ctx context.Context, signal *ebms.SignalMessage) (*ebms.PMode, bool) {
		t.Fatal("third processor should never be invoked once the second claims the signal")
		return nil, false
	}))

	pm, ok := r.Resolve(context.Background(), &ebms.SignalMessage{})
	if !ok {
		t.Fatal("expected a claimed P-Mode")
	}
	if !calledSecond {
		t.Error("expected the second processor to be invoked")
	}
	if pm.ID != "from-second" {
		t.Errorf("expected from-second, got %s", pm.ID)
	}
}

func TestRegistry_NoneClaim(t *testing.T) {
	r := NewRegistry()
	r.Register(ProcessorFunc(func(ctx context.Context, signal *ebms.SignalMessage) (*ebms.PMode, bool) {
		return nil, false
	}))

	_, ok := r.Resolve(context.Background(), &ebms.SignalMessage{})
	if ok {
		t.Error("expected no processor to claim the signal")
	}
}

func TestRegistry_EmptyRegistry(t *testing.T) {
	r := NewRegistry()
	_, ok := r.Resolve(context.Background(), &ebms.SignalMessage{})
	if ok {
		t.Error("expected an empty registry to never claim a signal")
	}
}
