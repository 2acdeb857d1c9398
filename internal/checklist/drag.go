package checklist

// Drag tracks an in-progress drag-reorder. Start captures the source index,
// Over only updates the pending target, and the checklist is not touched
// until End commits the move. A cancelled drag, or one that never hovered a
// target, leaves the list unchanged.
type Drag struct {
	active bool
	from   int
	over   int
	hasTgt bool
}

// Start begins a drag from the given index.
func (d *Drag) Start(index int) {
	d.active = true
	d.from = index
	d.hasTgt = false
}

// Over records the index currently hovered as the drop target.
func (d *Drag) Over(index int) {
	if !d.active {
		return
	}
	d.over = index
	d.hasTgt = true
}

// End commits the drag as a single Reorder on the checklist. Dropping
// without a hovered target behaves like Cancel.
func (d *Drag) End(c *Checklist) error {
	if !d.active || !d.hasTgt {
		d.Cancel()
		return nil
	}
	from, to := d.from, d.over
	d.Cancel()
	return c.Reorder(from, to)
}

// Cancel abandons the drag without mutating anything.
func (d *Drag) Cancel() {
	d.active = false
	d.hasTgt = false
}

// Active reports whether a drag is in progress.
func (d *Drag) Active() bool {
	return d.active
}

// Source returns the captured source index of the active drag.
func (d *Drag) Source() int {
	return d.from
}

// Target returns the pending target index and whether one has been hovered.
func (d *Drag) Target() (int, bool) {
	if !d.active || !d.hasTgt {
		return 0, false
	}
	return d.over, true
}
