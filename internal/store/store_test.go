package store

import (
	"context"
	"errors"
	"testing"

	"github.com/akozyrev/checkride/internal/checklist"
	"github.com/akozyrev/checkride/internal/cockpit"
	"github.com/akozyrev/checkride/internal/scoring"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleAggregate(t *testing.T) (*cockpit.Cockpit, []*checklist.Checklist) {
	t.Helper()
	c := cockpit.New("Cessna 172", "Cessna", "172S", "single-prop", "trainer",
		cockpit.Panorama{Link: "pano.jpg", Width: 4096, Height: 2048})
	alt := c.Markers.Add(1000, 800, "Altimeter", "indicates altitude")
	asi := c.Markers.Add(1400, 820, "Airspeed indicator", "")

	cl := checklist.New("before takeoff", c.Markers)
	if _, err := cl.AddItem(alt.ID, "set altimeter", 0); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if _, err := cl.AddItem(asi.ID, "check airspeed", 0); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	return c, []*checklist.Checklist{cl}
}

func TestSaveAndGetRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	c, lists := sampleAggregate(t)

	if err := s.Cockpits().Save(ctx, c, lists); err != nil {
		t.Fatalf("Save: %v", err)
	}

	gotC, gotLists, err := s.Cockpits().Get(ctx, c.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if gotC.Name != "Cessna 172" || gotC.Panorama.Width != 4096 {
		t.Errorf("cockpit fields lost: %+v", gotC)
	}
	if gotC.Markers.Len() != 2 {
		t.Fatalf("marker count = %d, want 2", gotC.Markers.Len())
	}
	wantOrder := c.Markers.All()
	for i, m := range gotC.Markers.All() {
		if m.ID != wantOrder[i].ID {
			t.Errorf("marker order broken at %d", i)
		}
	}
	if len(gotLists) != 1 {
		t.Fatalf("checklist count = %d, want 1", len(gotLists))
	}
	gotItems := gotLists[0].Items()
	wantItems := lists[0].Items()
	if len(gotItems) != len(wantItems) {
		t.Fatalf("item count = %d, want %d", len(gotItems), len(wantItems))
	}
	for i := range wantItems {
		if gotItems[i].ID != wantItems[i].ID || gotItems[i].MarkerID != wantItems[i].MarkerID {
			t.Errorf("item %d does not round-trip", i)
		}
	}
}

func TestSavePreservesAttemptHistory(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	c, lists := sampleAggregate(t)
	cl := lists[0]

	items := cl.Items()
	if _, err := scoring.Submit(cl, map[string]string{
		items[0].ID: items[0].MarkerID,
		items[1].ID: items[1].MarkerID,
	}); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if err := s.Cockpits().Save(ctx, c, lists); err != nil {
		t.Fatalf("Save: %v", err)
	}
	// Second save must not lose or duplicate history.
	if err := s.Cockpits().Save(ctx, c, lists); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	_, gotLists, err := s.Cockpits().Get(ctx, c.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	attempts := gotLists[0].Attempts()
	if len(attempts) != 1 {
		t.Fatalf("attempt count = %d, want 1", len(attempts))
	}
	if attempts[0].Percent != 100 || attempts[0].Number != 1 {
		t.Errorf("attempt = %+v, want percent 100 number 1", attempts[0])
	}

	// Numbering continues from loaded history.
	next := gotLists[0].RecordAttempt(50)
	if next.Number != 2 {
		t.Errorf("next attempt number = %d, want 2", next.Number)
	}
}

func TestAttemptRepo_AppendAndList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	c, lists := sampleAggregate(t)
	if err := s.Cockpits().Save(ctx, c, lists); err != nil {
		t.Fatalf("Save: %v", err)
	}
	cl := lists[0]

	a1 := cl.RecordAttempt(40)
	a2 := cl.RecordAttempt(80)
	if err := s.Attempts().Append(ctx, cl.ID, a1); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := s.Attempts().Append(ctx, cl.ID, a2); err != nil {
		t.Fatalf("Append: %v", err)
	}

	got, err := s.Attempts().ByChecklist(ctx, cl.ID)
	if err != nil {
		t.Fatalf("ByChecklist: %v", err)
	}
	if len(got) != 2 || got[0].Number != 1 || got[1].Number != 2 {
		t.Errorf("attempts = %+v", got)
	}

	n, err := s.Attempts().Count(ctx, cl.ID)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 2 {
		t.Errorf("Count = %d, want 2", n)
	}
}

func TestListAndFind(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	c, lists := sampleAggregate(t)
	if err := s.Cockpits().Save(ctx, c, lists); err != nil {
		t.Fatalf("Save: %v", err)
	}

	infos, err := s.Cockpits().List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(infos) != 1 || infos[0].InstrumentCnt != 2 || infos[0].ChecklistCnt != 1 {
		t.Errorf("List = %+v", infos)
	}

	cls, err := s.Cockpits().ListChecklists(ctx)
	if err != nil {
		t.Fatalf("ListChecklists: %v", err)
	}
	if len(cls) != 1 || cls[0].CockpitName != "Cessna 172" || cls[0].ItemCnt != 2 {
		t.Errorf("ListChecklists = %+v", cls)
	}

	cockpitID, checklistID, err := s.Cockpits().FindChecklist(ctx, "before takeoff")
	if err != nil {
		t.Fatalf("FindChecklist by name: %v", err)
	}
	if cockpitID != c.ID || checklistID != lists[0].ID {
		t.Errorf("FindChecklist = %s, %s", cockpitID, checklistID)
	}

	if _, _, err := s.Cockpits().FindChecklist(ctx, "no such list"); !errors.Is(err, ErrNotFound) {
		t.Errorf("FindChecklist(missing) err = %v, want ErrNotFound", err)
	}
}

func TestGetMissingCockpit(t *testing.T) {
	s := openTestStore(t)

	if _, _, err := s.Cockpits().Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteCascades(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	c, lists := sampleAggregate(t)
	if err := s.Cockpits().Save(ctx, c, lists); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := s.Cockpits().Delete(ctx, c.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, _, err := s.Cockpits().Get(ctx, c.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete err = %v, want ErrNotFound", err)
	}
	got, err := s.Attempts().ByChecklist(ctx, lists[0].ID)
	if err != nil {
		t.Fatalf("ByChecklist: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("attempts survived cockpit delete: %+v", got)
	}

	if err := s.Cockpits().Delete(ctx, c.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("double delete err = %v, want ErrNotFound", err)
	}
}
