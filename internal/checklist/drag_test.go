package checklist

import "testing"

func TestDrag_CommitsSingleReorder(t *testing.T) {
	c := buildList(t, 4)
	before := idsOf(c)

	var d Drag
	d.Start(0)
	d.Over(1)
	d.Over(3) // only the last hover matters
	if err := d.End(c); err != nil {
		t.Fatalf("End: %v", err)
	}

	after := idsOf(c)
	want := []string{before[1], before[2], before[3], before[0]}
	for i := range want {
		if after[i] != want[i] {
			t.Fatalf("position %d: got %s, want %s", i, after[i], want[i])
		}
	}
	if d.Active() {
		t.Error("drag still active after End")
	}
}

func TestDrag_OverDoesNotMutate(t *testing.T) {
	c := buildList(t, 3)
	before := idsOf(c)

	var d Drag
	d.Start(0)
	d.Over(2)

	after := idsOf(c)
	for i := range before {
		if after[i] != before[i] {
			t.Fatal("checklist mutated before drag end")
		}
	}
}

func TestDrag_CancelLeavesListUnchanged(t *testing.T) {
	c := buildList(t, 3)
	before := idsOf(c)

	var d Drag
	d.Start(2)
	d.Over(0)
	d.Cancel()
	if err := d.End(c); err != nil {
		t.Fatalf("End after cancel: %v", err)
	}

	after := idsOf(c)
	for i := range before {
		if after[i] != before[i] {
			t.Fatal("cancelled drag mutated the checklist")
		}
	}
}

func TestDrag_EndWithoutTargetIsNoOp(t *testing.T) {
	c := buildList(t, 3)
	before := idsOf(c)

	var d Drag
	d.Start(1)
	// dropped outside any valid target: no Over call
	if err := d.End(c); err != nil {
		t.Fatalf("End: %v", err)
	}

	after := idsOf(c)
	for i := range before {
		if after[i] != before[i] {
			t.Fatal("targetless drop mutated the checklist")
		}
	}
}

func TestDrag_OverBeforeStartIgnored(t *testing.T) {
	var d Drag
	d.Over(2)
	if _, ok := d.Target(); ok {
		t.Error("Target set without an active drag")
	}
}
