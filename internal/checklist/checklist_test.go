package checklist

import (
	"errors"
	"testing"
)

// markerSet is a MarkerLookup over a fixed id set.
type markerSet map[string]bool

func (s markerSet) Has(id string) bool { return s[id] }

func TestAddItem_UnknownMarker(t *testing.T) {
	c := New("before start", markerSet{"m1": true})

	if _, err := c.AddItem("nope", "check altimeter", 0); !errors.Is(err, ErrUnknownMarker) {
		t.Errorf("err = %v, want ErrUnknownMarker", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d after failed add, want 0", c.Len())
	}
}

func TestAddItem_SeedsStepTenOrder(t *testing.T) {
	c := New("before start", markerSet{"m1": true})

	a, err := c.AddItem("m1", "first", 0)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	b, _ := c.AddItem("m1", "second", 0)
	explicit, _ := c.AddItem("m1", "third", 7)

	if a.Order != 10 || b.Order != 20 {
		t.Errorf("seeded orders = %d, %d; want 10, 20", a.Order, b.Order)
	}
	if explicit.Order != 7 {
		t.Errorf("explicit order = %d, want 7", explicit.Order)
	}
}

func TestRemoveItem(t *testing.T) {
	c := New("x", markerSet{"m1": true})
	it, _ := c.AddItem("m1", "a", 0)

	if err := c.RemoveItem(it.ID); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if err := c.RemoveItem(it.ID); !errors.Is(err, ErrUnknownItem) {
		t.Errorf("second remove err = %v, want ErrUnknownItem", err)
	}
}

func buildList(t *testing.T, n int) *Checklist {
	t.Helper()
	ms := markerSet{"m": true}
	c := New("list", ms)
	for i := 0; i < n; i++ {
		if _, err := c.AddItem("m", string(rune('a'+i)), 0); err != nil {
			t.Fatalf("AddItem %d: %v", i, err)
		}
	}
	return c
}

func idsOf(c *Checklist) []string {
	items := c.Items()
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}

func TestReorder_MovesAndRenumbers(t *testing.T) {
	c := buildList(t, 4)
	before := idsOf(c)

	if err := c.Reorder(0, 2); err != nil {
		t.Fatalf("Reorder: %v", err)
	}

	after := idsOf(c)
	want := []string{before[1], before[2], before[0], before[3]}
	for i := range want {
		if after[i] != want[i] {
			t.Fatalf("position %d: got %s, want %s", i, after[i], want[i])
		}
	}
	for i, it := range c.Items() {
		if it.Order != i {
			t.Errorf("item %d Order = %d, want %d", i, it.Order, i)
		}
	}
}

func TestReorder_IsPermutation(t *testing.T) {
	c := buildList(t, 6)
	before := map[string]bool{}
	for _, id := range idsOf(c) {
		before[id] = true
	}

	moves := [][2]int{{0, 5}, {3, 1}, {5, 0}, {2, 2}, {4, 3}}
	for _, mv := range moves {
		if err := c.Reorder(mv[0], mv[1]); err != nil {
			t.Fatalf("Reorder(%d,%d): %v", mv[0], mv[1], err)
		}
	}

	after := idsOf(c)
	if len(after) != len(before) {
		t.Fatalf("length changed: %d -> %d", len(before), len(after))
	}
	for _, id := range after {
		if !before[id] {
			t.Errorf("unexpected id %s after reorders", id)
		}
	}
}

func TestReorder_SameIndexNoOp(t *testing.T) {
	c := buildList(t, 3)
	before := idsOf(c)
	ordersBefore := []int{}
	for _, it := range c.Items() {
		ordersBefore = append(ordersBefore, it.Order)
	}

	if err := c.Reorder(1, 1); err != nil {
		t.Fatalf("Reorder(1,1): %v", err)
	}

	after := idsOf(c)
	for i := range before {
		if after[i] != before[i] {
			t.Errorf("order changed by no-op reorder at %d", i)
		}
	}
	for i, it := range c.Items() {
		if it.Order != ordersBefore[i] {
			t.Errorf("Order field changed by no-op reorder at %d", i)
		}
	}
}

func TestReorder_OutOfRange(t *testing.T) {
	c := buildList(t, 3)

	for _, mv := range [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 3}} {
		if err := c.Reorder(mv[0], mv[1]); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Reorder(%d,%d) err = %v, want ErrIndexOutOfRange", mv[0], mv[1], err)
		}
	}
}

func TestOnMarkerRemoved_Cascades(t *testing.T) {
	ms := markerSet{"m1": true, "m2": true}
	c := New("x", ms)
	c.AddItem("m1", "a", 0)
	keep, _ := c.AddItem("m2", "b", 0)
	c.AddItem("m1", "c", 0)

	removed := c.OnMarkerRemoved("m1")

	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}
	if c.Len() != 1 {
		t.Fatalf("Len = %d, want 1", c.Len())
	}
	if c.Items()[0].ID != keep.ID {
		t.Error("wrong item survived the cascade")
	}
	for _, it := range c.Items() {
		if it.MarkerID == "m1" {
			t.Error("dangling reference to removed marker")
		}
	}
}

func TestRecordAttempt_MonotonicNumbers(t *testing.T) {
	c := New("x", markerSet{})

	first := c.RecordAttempt(40)
	second := c.RecordAttempt(90)
	third := c.RecordAttempt(10)

	if first.Number != 1 || second.Number != 2 || third.Number != 3 {
		t.Errorf("attempt numbers = %d, %d, %d; want 1, 2, 3",
			first.Number, second.Number, third.Number)
	}
	if len(c.Attempts()) != 3 {
		t.Errorf("history length = %d, want 3", len(c.Attempts()))
	}
}
