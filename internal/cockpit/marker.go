// Package cockpit holds the authoritative set of instrument markers placed
// on one panorama, together with the cockpit's descriptive metadata.
package cockpit

import "github.com/google/uuid"

// Marker is a labeled point of interest on the panorama, addressed by pixel
// coordinates. Its angular position is derived on demand (see
// Registry.Angular) so that a later correction of the image dimensions
// cannot leave a stale cached value behind.
type Marker struct {
	ID          string
	PixelX      int
	PixelY      int
	Name        string
	Description string
}

// MarkerPatch is a partial update for a marker. Nil fields are left
// untouched.
type MarkerPatch struct {
	Name        *string
	Description *string
	PixelX      *int
	PixelY      *int
}

// Panorama describes the equirectangular image backing a cockpit.
type Panorama struct {
	Link   string
	Width  int
	Height int
}

// Cockpit is one panorama with its metadata and markers. Checklists
// referencing the markers are owned elsewhere; the dependency runs from
// checklist to marker, never the reverse.
type Cockpit struct {
	ID           string
	Name         string
	Manufacturer string
	Model        string
	Type         string
	Description  string
	Panorama     Panorama
	Markers      *Registry
}

// New creates a cockpit with a fresh id and an empty marker registry sized
// to the panorama.
func New(name, manufacturer, model, typ, description string, pano Panorama) *Cockpit {
	return &Cockpit{
		ID:           uuid.NewString(),
		Name:         name,
		Manufacturer: manufacturer,
		Model:        model,
		Type:         typ,
		Description:  description,
		Panorama:     pano,
		Markers:      NewRegistry(pano.Width, pano.Height),
	}
}
