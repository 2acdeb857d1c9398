package viewer

import "github.com/akozyrev/checkride/internal/cockpit"

// Binder keeps a marker registry reflected onto a Surface. Registry edits
// do not touch the surface themselves; the orchestrating screen calls the
// matching Binder method after each edit.
type Binder struct {
	reg     *cockpit.Registry
	surface Surface
	bound   map[string]bool
}

// NewBinder creates a binder for the given registry and surface.
func NewBinder(reg *cockpit.Registry, surface Surface) *Binder {
	return &Binder{
		reg:     reg,
		surface: surface,
		bound:   make(map[string]bool),
	}
}

// Sync registers an overlay for every marker currently in the registry and
// drops overlays for markers that no longer exist.
func (b *Binder) Sync() error {
	live := make(map[string]bool, b.reg.Len())
	for _, m := range b.reg.All() {
		live[m.ID] = true
		if err := b.MarkerAdded(m.ID); err != nil {
			return err
		}
	}
	for id := range b.bound {
		if !live[id] {
			b.MarkerRemoved(id)
		}
	}
	return nil
}

// MarkerAdded registers (or refreshes) the overlay for one marker.
func (b *Binder) MarkerAdded(id string) error {
	yaw, pitch, err := b.reg.Angular(id)
	if err != nil {
		return err
	}
	if err := b.surface.RegisterOverlay(id, yaw, pitch); err != nil {
		return err
	}
	b.bound[id] = true
	return nil
}

// MarkerMoved re-registers the overlay at the marker's new position.
func (b *Binder) MarkerMoved(id string) error {
	b.surface.RemoveOverlay(id)
	delete(b.bound, id)
	return b.MarkerAdded(id)
}

// MarkerRemoved removes the overlay for a deleted marker.
func (b *Binder) MarkerRemoved(id string) {
	b.surface.RemoveOverlay(id)
	delete(b.bound, id)
}
