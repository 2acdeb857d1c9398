package linking

import (
	"errors"
	"testing"
)

type idSet map[string]bool

func (s idSet) HasItem(id string) bool { return s[id] }
func (s idSet) Has(id string) bool     { return s[id] }

func newTestSession() *Session {
	items := idSet{"i1": true, "i2": true, "i3": true}
	markers := idSet{"m1": true, "m2": true, "m3": true}
	return NewSession(items, markers)
}

func TestSelectThenPick(t *testing.T) {
	s := newTestSession()

	if err := s.SelectItem("i1"); err != nil {
		t.Fatalf("SelectItem: %v", err)
	}
	if s.State() != ItemSelected {
		t.Fatalf("state = %v, want ItemSelected", s.State())
	}
	if err := s.PickMarker("m1"); err != nil {
		t.Fatalf("PickMarker: %v", err)
	}
	if s.State() != Idle {
		t.Errorf("state = %v after pick, want Idle", s.State())
	}
	if m, ok := s.Linked("i1"); !ok || m != "m1" {
		t.Errorf("Linked(i1) = %q, %v; want m1, true", m, ok)
	}
}

func TestLastSelectedWins(t *testing.T) {
	s := newTestSession()

	s.SelectItem("i1")
	s.SelectItem("i2")
	if err := s.PickMarker("m1"); err != nil {
		t.Fatalf("PickMarker: %v", err)
	}

	if _, ok := s.Linked("i1"); ok {
		t.Error("i1 got linked even though i2 replaced it")
	}
	if m, _ := s.Linked("i2"); m != "m1" {
		t.Errorf("Linked(i2) = %q, want m1", m)
	}
}

func TestPickInIdleIsNoOp(t *testing.T) {
	s := newTestSession()

	if err := s.PickMarker("m1"); err != nil {
		t.Fatalf("idle pick returned error: %v", err)
	}
	if len(s.Linkage()) != 0 {
		t.Error("idle pick mutated the linkage")
	}
}

func TestRePickReplaces(t *testing.T) {
	s := newTestSession()

	s.SelectItem("i1")
	s.PickMarker("m1")
	s.SelectItem("i1")
	s.PickMarker("m2")

	if m, _ := s.Linked("i1"); m != "m2" {
		t.Errorf("Linked(i1) = %q, want m2 (replace, never append)", m)
	}
	if len(s.Linkage()) != 1 {
		t.Errorf("linkage size = %d, want 1", len(s.Linkage()))
	}
}

func TestDuplicateMarkerAllowed(t *testing.T) {
	s := newTestSession()

	s.SelectItem("i1")
	s.PickMarker("m1")
	s.SelectItem("i2")
	if err := s.PickMarker("m1"); err != nil {
		t.Fatalf("duplicate marker use rejected: %v", err)
	}

	a, _ := s.Linked("i1")
	b, _ := s.Linked("i2")
	if a != "m1" || b != "m1" {
		t.Errorf("linkage = %q, %q; want m1, m1", a, b)
	}
}

func TestCancelKeepsLinkage(t *testing.T) {
	s := newTestSession()

	s.SelectItem("i1")
	s.PickMarker("m1")
	s.SelectItem("i2")
	s.Cancel()

	if s.State() != Idle {
		t.Errorf("state = %v after cancel, want Idle", s.State())
	}
	if _, ok := s.Pending(); ok {
		t.Error("pending item survived cancel")
	}
	if m, _ := s.Linked("i1"); m != "m1" {
		t.Error("cancel dropped an existing link")
	}
}

func TestUnknownIDs(t *testing.T) {
	s := newTestSession()

	if err := s.SelectItem("ghost"); !errors.Is(err, ErrUnknownItem) {
		t.Errorf("SelectItem(ghost) err = %v, want ErrUnknownItem", err)
	}

	s.SelectItem("i1")
	if err := s.PickMarker("ghost"); !errors.Is(err, ErrUnknownMarker) {
		t.Errorf("PickMarker(ghost) err = %v, want ErrUnknownMarker", err)
	}
	// Failed pick keeps the selection pending.
	if _, ok := s.Pending(); !ok {
		t.Error("failed pick cleared the pending item")
	}
}

func TestLinkageReturnsCopy(t *testing.T) {
	s := newTestSession()
	s.SelectItem("i1")
	s.PickMarker("m1")

	l := s.Linkage()
	l["i1"] = "m3"

	if m, _ := s.Linked("i1"); m != "m1" {
		t.Error("mutating the returned map leaked into the session")
	}
}
