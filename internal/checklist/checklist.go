// Package checklist models an ordered list of instrument identification
// steps for one cockpit, plus the append-only history of scored attempts.
package checklist

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrUnknownMarker is returned when an item would reference a marker
	// that does not exist in the cockpit's registry.
	ErrUnknownMarker = errors.New("checklist: unknown marker")

	// ErrUnknownItem is returned when an item id does not resolve.
	ErrUnknownItem = errors.New("checklist: unknown item")

	// ErrIndexOutOfRange is returned by Reorder for indices outside
	// [0, len). Out-of-range indices are caller bugs; they are never
	// clamped.
	ErrIndexOutOfRange = errors.New("checklist: index out of range")
)

// OrderStep is the spacing between seeded item order hints, matching how
// authored checklists number their steps (10, 20, 30, ...).
const OrderStep = 10

// MarkerLookup answers whether a marker id is live. *cockpit.Registry
// satisfies it; the checklist never learns anything else about markers.
type MarkerLookup interface {
	Has(id string) bool
}

// Item is one step of a checklist: a described reference to exactly one
// marker. Order is a display hint only; the item's position in the
// checklist sequence is what scoring uses.
type Item struct {
	ID          string
	Description string
	Order       int
	MarkerID    string
}

// Attempt is one scored submission, immutable once recorded.
type Attempt struct {
	ID      string
	Percent int
	Number  int // 1-based, monotonic per checklist
	TakenAt time.Time
}

// Checklist owns its items (sequence order is authoritative) and its
// attempt history.
type Checklist struct {
	ID       string
	Name     string
	items    []*Item
	attempts []Attempt
	markers  MarkerLookup
}

// New creates an empty checklist validating item references against the
// given marker lookup.
func New(name string, markers MarkerLookup) *Checklist {
	return &Checklist{
		ID:      uuid.NewString(),
		Name:    name,
		markers: markers,
	}
}

// Restore rebuilds a checklist from persisted state, preserving ids, item
// order and attempt history.
func Restore(id, name string, items []*Item, attempts []Attempt, markers MarkerLookup) *Checklist {
	return &Checklist{
		ID:       id,
		Name:     name,
		items:    items,
		attempts: attempts,
		markers:  markers,
	}
}

// AddItem appends an item referencing markerID. An order of zero or less
// seeds the next step-10 hint.
func (c *Checklist) AddItem(markerID, description string, order int) (*Item, error) {
	if c.markers == nil || !c.markers.Has(markerID) {
		return nil, ErrUnknownMarker
	}
	if order <= 0 {
		order = c.NextOrder()
	}
	it := &Item{
		ID:          uuid.NewString(),
		Description: description,
		Order:       order,
		MarkerID:    markerID,
	}
	c.items = append(c.items, it)
	return it, nil
}

// NextOrder returns the order hint the next appended item would receive.
func (c *Checklist) NextOrder() int {
	return (len(c.items) + 1) * OrderStep
}

// RemoveItem deletes the item with the given id.
func (c *Checklist) RemoveItem(id string) error {
	for i, it := range c.items {
		if it.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return nil
		}
	}
	return ErrUnknownItem
}

// Reorder removes the item at from and reinserts it at to in one atomic
// operation, then renumbers every item's Order to its new 0-based position.
// Reorder(i, i) is a no-op.
func (c *Checklist) Reorder(from, to int) error {
	n := len(c.items)
	if from < 0 || from >= n || to < 0 || to >= n {
		return ErrIndexOutOfRange
	}
	if from == to {
		return nil
	}

	moved := c.items[from]
	c.items = append(c.items[:from], c.items[from+1:]...)
	c.items = append(c.items[:to], append([]*Item{moved}, c.items[to:]...)...)

	for i, it := range c.items {
		it.Order = i
	}
	return nil
}

// OnMarkerRemoved prunes every item referencing the removed marker and
// returns how many were dropped. Whoever orchestrates both the registry and
// the checklist calls this right after Registry.Remove, keeping the
// no-dangling-reference invariant without the registry knowing about
// checklists.
func (c *Checklist) OnMarkerRemoved(markerID string) int {
	kept := c.items[:0]
	removed := 0
	for _, it := range c.items {
		if it.MarkerID == markerID {
			removed++
			continue
		}
		kept = append(kept, it)
	}
	c.items = kept
	return removed
}

// Item returns the item with the given id.
func (c *Checklist) Item(id string) (*Item, bool) {
	for _, it := range c.items {
		if it.ID == id {
			return it, true
		}
	}
	return nil, false
}

// HasItem reports whether an item with the given id exists.
func (c *Checklist) HasItem(id string) bool {
	_, ok := c.Item(id)
	return ok
}

// Items returns the items in canonical order.
func (c *Checklist) Items() []*Item {
	out := make([]*Item, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of items.
func (c *Checklist) Len() int {
	return len(c.items)
}

// Attempts returns the attempt history, oldest first.
func (c *Checklist) Attempts() []Attempt {
	out := make([]Attempt, len(c.attempts))
	copy(out, c.attempts)
	return out
}

// RecordAttempt appends a new attempt with the next 1-based number and
// returns it. Attempts cannot be edited or deleted afterwards.
func (c *Checklist) RecordAttempt(percent int) Attempt {
	a := Attempt{
		ID:      uuid.NewString(),
		Percent: percent,
		Number:  len(c.attempts) + 1,
		TakenAt: time.Now(),
	}
	c.attempts = append(c.attempts, a)
	return a
}
