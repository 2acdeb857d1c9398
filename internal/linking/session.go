// Package linking implements the short-lived interactive state machine that
// associates checklist items with panorama markers, one pair at a time. It
// is used while authoring and, mandatorily, while taking a test.
package linking

import "errors"

var (
	// ErrUnknownItem is returned when selecting a nonexistent item.
	ErrUnknownItem = errors.New("linking: unknown item")

	// ErrUnknownMarker is returned when picking a nonexistent marker.
	ErrUnknownMarker = errors.New("linking: unknown marker")
)

// State is the tagged session state. Representing "nothing selected" as its
// own state makes a marker pick with no pending item a no-op by
// construction instead of a null check in every handler.
type State int

const (
	// Idle means no item is awaiting a marker pick.
	Idle State = iota
	// ItemSelected means one item is pending and the next marker pick
	// links it.
	ItemSelected
)

// ItemLookup answers whether a checklist item id is live.
type ItemLookup interface {
	HasItem(id string) bool
}

// MarkerLookup answers whether a marker id is live.
type MarkerLookup interface {
	Has(id string) bool
}

// Session binds checklist items to markers. It only reads item/marker
// existence through the lookups and mutates nothing but its own linkage.
type Session struct {
	state   State
	pending string
	linkage map[string]string // item id -> marker id
	items   ItemLookup
	markers MarkerLookup
}

// NewSession creates an idle session over the given lookups.
func NewSession(items ItemLookup, markers MarkerLookup) *Session {
	return &Session{
		linkage: make(map[string]string),
		items:   items,
		markers: markers,
	}
}

// SelectItem marks itemID as awaiting a marker pick. Selecting while
// another item is already pending replaces it; last selected wins.
func (s *Session) SelectItem(itemID string) error {
	if s.items == nil || !s.items.HasItem(itemID) {
		return ErrUnknownItem
	}
	s.pending = itemID
	s.state = ItemSelected
	return nil
}

// PickMarker links the pending item to markerID, replacing any earlier link
// for that item, and returns the session to Idle. With no pending item the
// pick is a no-op: clicks on the panorama when nothing is selected must not
// mutate state.
func (s *Session) PickMarker(markerID string) error {
	if s.state != ItemSelected {
		return nil
	}
	if s.markers == nil || !s.markers.Has(markerID) {
		return ErrUnknownMarker
	}
	s.linkage[s.pending] = markerID
	s.pending = ""
	s.state = Idle
	return nil
}

// Cancel returns to Idle without touching the linkage.
func (s *Session) Cancel() {
	s.pending = ""
	s.state = Idle
}

// State returns the current session state.
func (s *Session) State() State {
	return s.state
}

// Pending returns the item awaiting a marker pick, if any.
func (s *Session) Pending() (string, bool) {
	if s.state != ItemSelected {
		return "", false
	}
	return s.pending, true
}

// Linked returns the marker linked to the given item, if any.
func (s *Session) Linked(itemID string) (string, bool) {
	m, ok := s.linkage[itemID]
	return m, ok
}

// Linkage returns a copy of the item-to-marker map.
func (s *Session) Linkage() map[string]string {
	out := make(map[string]string, len(s.linkage))
	for k, v := range s.linkage {
		out[k] = v
	}
	return out
}
