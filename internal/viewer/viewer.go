// Package viewer defines the narrow capability the core drives instead of
// holding a rendering handle: given yaw/pitch, register a clickable
// overlay; given an overlay id, remove it. The terminal panorama pane
// implements Surface; the core never touches rendering beyond it.
package viewer

// Surface is the rendering capability consumed by the core.
type Surface interface {
	// RegisterOverlay places a clickable overlay at the given angular
	// position, keyed by id.
	RegisterOverlay(id string, yaw, pitch float64) error

	// RemoveOverlay removes the overlay with the given id. Removing an
	// unknown id is harmless.
	RemoveOverlay(id string)
}
