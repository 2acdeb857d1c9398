package viewer

import (
	"testing"

	"github.com/akozyrev/checkride/internal/cockpit"
)

// fakeSurface records overlay operations.
type fakeSurface struct {
	overlays map[string][2]float64
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{overlays: make(map[string][2]float64)}
}

func (f *fakeSurface) RegisterOverlay(id string, yaw, pitch float64) error {
	f.overlays[id] = [2]float64{yaw, pitch}
	return nil
}

func (f *fakeSurface) RemoveOverlay(id string) {
	delete(f.overlays, id)
}

func TestBinder_SyncRegistersAllMarkers(t *testing.T) {
	reg := cockpit.NewRegistry(360, 180)
	a := reg.Add(180, 90, "center", "")
	b := reg.Add(0, 0, "corner", "")

	surf := newFakeSurface()
	binder := NewBinder(reg, surf)
	if err := binder.Sync(); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	if len(surf.overlays) != 2 {
		t.Fatalf("overlay count = %d, want 2", len(surf.overlays))
	}
	if got := surf.overlays[a.ID]; got != [2]float64{0, 0} {
		t.Errorf("center overlay at %v, want (0, 0)", got)
	}
	if got := surf.overlays[b.ID]; got != [2]float64{-180, 90} {
		t.Errorf("corner overlay at %v, want (-180, 90)", got)
	}
}

func TestBinder_RemovedMarkerDroppedOnSync(t *testing.T) {
	reg := cockpit.NewRegistry(360, 180)
	a := reg.Add(10, 10, "a", "")
	b := reg.Add(20, 20, "b", "")

	surf := newFakeSurface()
	binder := NewBinder(reg, surf)
	if err := binder.Sync(); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	if err := reg.Remove(a.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := binder.Sync(); err != nil {
		t.Fatalf("second Sync: %v", err)
	}

	if _, ok := surf.overlays[a.ID]; ok {
		t.Error("overlay for removed marker survived sync")
	}
	if _, ok := surf.overlays[b.ID]; !ok {
		t.Error("overlay for live marker went missing")
	}
}

func TestBinder_MarkerMoved(t *testing.T) {
	reg := cockpit.NewRegistry(360, 180)
	m := reg.Add(0, 0, "m", "")

	surf := newFakeSurface()
	binder := NewBinder(reg, surf)
	if err := binder.MarkerAdded(m.ID); err != nil {
		t.Fatalf("MarkerAdded: %v", err)
	}

	x, y := 180, 90
	if err := reg.Update(m.ID, cockpit.MarkerPatch{PixelX: &x, PixelY: &y}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := binder.MarkerMoved(m.ID); err != nil {
		t.Fatalf("MarkerMoved: %v", err)
	}

	if got := surf.overlays[m.ID]; got != [2]float64{0, 0} {
		t.Errorf("moved overlay at %v, want (0, 0)", got)
	}
}
