package cockpit

import (
	"errors"

	"github.com/google/uuid"

	"github.com/akozyrev/checkride/internal/geo"
)

// ErrNotFound is returned when a marker id does not resolve.
var ErrNotFound = errors.New("cockpit: marker not found")

// Registry is the authoritative marker set for one panorama. Iteration
// order is insertion order. The registry knows nothing about checklists or
// rendering surfaces; callers orchestrate cascades and overlay updates.
type Registry struct {
	width   int
	height  int
	markers []*Marker
	byID    map[string]*Marker
}

// NewRegistry creates an empty registry for an image of the given size.
func NewRegistry(width, height int) *Registry {
	return &Registry{
		width:  width,
		height: height,
		byID:   make(map[string]*Marker),
	}
}

// RestoreRegistry rebuilds a registry from previously persisted markers,
// preserving their ids and order.
func RestoreRegistry(width, height int, markers []Marker) *Registry {
	r := NewRegistry(width, height)
	for i := range markers {
		m := markers[i]
		r.markers = append(r.markers, &m)
		r.byID[m.ID] = &m
	}
	return r
}

// Add creates a marker at the given pixel position and returns it.
func (r *Registry) Add(pixelX, pixelY int, name, description string) *Marker {
	m := &Marker{
		ID:          uuid.NewString(),
		PixelX:      pixelX,
		PixelY:      pixelY,
		Name:        name,
		Description: description,
	}
	r.markers = append(r.markers, m)
	r.byID[m.ID] = m
	return m
}

// Update applies a partial update to the marker with the given id.
func (r *Registry) Update(id string, patch MarkerPatch) error {
	m, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	if patch.Name != nil {
		m.Name = *patch.Name
	}
	if patch.Description != nil {
		m.Description = *patch.Description
	}
	if patch.PixelX != nil {
		m.PixelX = *patch.PixelX
	}
	if patch.PixelY != nil {
		m.PixelY = *patch.PixelY
	}
	return nil
}

// Remove deletes the marker with the given id. Pruning checklist items that
// reference it is the caller's job, via ChecklistModel.OnMarkerRemoved.
func (r *Registry) Remove(id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	for i, m := range r.markers {
		if m.ID == id {
			r.markers = append(r.markers[:i], r.markers[i+1:]...)
			break
		}
	}
	return nil
}

// Get returns the marker with the given id.
func (r *Registry) Get(id string) (*Marker, bool) {
	m, ok := r.byID[id]
	return m, ok
}

// Has reports whether a marker with the given id exists.
func (r *Registry) Has(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// All returns the markers in insertion order.
func (r *Registry) All() []*Marker {
	out := make([]*Marker, len(r.markers))
	copy(out, r.markers)
	return out
}

// Len returns the number of markers.
func (r *Registry) Len() int {
	return len(r.markers)
}

// ImageSize returns the panorama dimensions the registry was created for.
func (r *Registry) ImageSize() (width, height int) {
	return r.width, r.height
}

// Angular returns the marker's position in yaw/pitch degrees, derived from
// its pixel position and the registry's image size.
func (r *Registry) Angular(id string) (yaw, pitch float64, err error) {
	m, ok := r.byID[id]
	if !ok {
		return 0, 0, ErrNotFound
	}
	return geo.PixelToAngular(m.PixelX, m.PixelY, r.width, r.height)
}
