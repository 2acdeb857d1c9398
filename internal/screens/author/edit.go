package author

import (
	tea "charm.land/bubbletea/v2"

	"github.com/akozyrev/checkride/internal/checklist"
	"github.com/akozyrev/checkride/internal/cockpit"
	"github.com/akozyrev/checkride/internal/linking"
)

func (s *AuthorScreen) updateEditing(msg tea.KeyMsg) tea.Cmd {
	s.notice = ""

	if msg.String() == "ctrl+s" {
		return s.save(false)
	}

	// A pending marker pick (new item or relink) owns the pane.
	if s.picking != pickNone {
		return s.updatePanePick(msg)
	}

	if msg.String() == "tab" {
		if s.drag.Active() {
			s.drag.Cancel()
		}
		if s.mode == modeMarkers {
			s.mode = modeItems
		} else {
			s.mode = modeMarkers
		}
		return nil
	}

	if s.mode == modeMarkers {
		return s.updateMarkers(msg)
	}
	return s.updateItems(msg)
}

func (s *AuthorScreen) updateMarkers(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "left", "h":
		s.pane.MoveCursor(-1, 0)
	case "right", "l":
		s.pane.MoveCursor(1, 0)
	case "up", "k":
		s.pane.MoveCursor(0, -1)
	case "down", "j":
		s.pane.MoveCursor(0, 1)
	case "H":
		s.pane.MoveCursor(-5, 0)
	case "L":
		s.pane.MoveCursor(5, 0)

	case "a", "A":
		x, y := s.pane.CursorPixel()
		s.openPrompt("Instrument name", func(name string) {
			m := s.cockpit.Markers.Add(x, y, name, "")
			if err := s.binder.MarkerAdded(m.ID); err != nil {
				s.errMsg = err.Error()
				return
			}
			s.pane.SetLabel(m.ID, m.Name)
			s.dirty = true
		})

	case "m", "M":
		id := s.pane.HitTest()
		if id == "" {
			return nil
		}
		if s.moveID == id {
			s.moveID = ""
			s.pane.Highlight("")
			return nil
		}
		s.moveID = id
		s.pane.Highlight(id)

	case "enter":
		if s.moveID == "" {
			return nil
		}
		x, y := s.pane.CursorPixel()
		if err := s.cockpit.Markers.Update(s.moveID, cockpit.MarkerPatch{PixelX: &x, PixelY: &y}); err != nil {
			s.errMsg = err.Error()
			return nil
		}
		if err := s.binder.MarkerMoved(s.moveID); err != nil {
			s.errMsg = err.Error()
			return nil
		}
		s.moveID = ""
		s.pane.Highlight("")
		s.dirty = true

	case "d", "D":
		id := s.pane.HitTest()
		if id == "" {
			return nil
		}
		if err := s.cockpit.Markers.Remove(id); err != nil {
			s.errMsg = err.Error()
			return nil
		}
		s.binder.MarkerRemoved(id)
		// Removing an instrument drops every checklist item that
		// referenced it, across every checklist of the cockpit.
		pruned := 0
		for _, cl := range s.lists {
			pruned += cl.OnMarkerRemoved(id)
		}
		if pruned > 0 {
			s.noticef("removed instrument and %d checklist item(s)", pruned)
		}
		if s.moveID == id {
			s.moveID = ""
			s.pane.Highlight("")
		}
		s.dirty = true
	}
	return nil
}

func (s *AuthorScreen) updateItems(msg tea.KeyMsg) tea.Cmd {
	cl := s.currentList()

	switch msg.String() {
	case "n", "N":
		s.openPrompt("Checklist name", func(name string) {
			s.lists = append(s.lists, checklist.New(name, s.cockpit.Markers))
			s.listIdx = len(s.lists) - 1
			s.itemIdx = 0
			s.dirty = true
		})
		return nil

	case "[":
		if s.drag.Active() {
			s.drag.Cancel()
		}
		if s.listIdx > 0 {
			s.listIdx--
			s.itemIdx = 0
		}
		return nil
	case "]":
		if s.drag.Active() {
			s.drag.Cancel()
		}
		if s.listIdx < len(s.lists)-1 {
			s.listIdx++
			s.itemIdx = 0
		}
		return nil
	}

	if cl == nil {
		return nil
	}

	switch msg.String() {
	case "up", "k":
		if s.itemIdx > 0 {
			s.itemIdx--
			if s.drag.Active() {
				s.drag.Over(s.itemIdx)
			}
		}
	case "down", "j":
		if s.itemIdx < cl.Len()-1 {
			s.itemIdx++
			if s.drag.Active() {
				s.drag.Over(s.itemIdx)
			}
		}

	case "space", " ":
		if cl.Len() == 0 {
			return nil
		}
		if s.drag.Active() {
			if err := s.drag.End(cl); err != nil {
				s.errMsg = err.Error()
				return nil
			}
			s.dirty = true
			return nil
		}
		s.drag.Start(s.itemIdx)

	case "a", "A":
		if s.cockpit.Markers.Len() == 0 {
			s.errMsg = "place an instrument first"
			return nil
		}
		s.openPrompt("Item description", func(desc string) {
			s.pickDesc = desc
			s.picking = pickAddItem
		})

	case "r", "R":
		items := cl.Items()
		if s.itemIdx >= len(items) {
			return nil
		}
		s.sess = linking.NewSession(cl, s.cockpit.Markers)
		if err := s.sess.SelectItem(items[s.itemIdx].ID); err != nil {
			s.errMsg = err.Error()
			return nil
		}
		s.picking = pickRelink

	case "d", "D":
		items := cl.Items()
		if s.itemIdx >= len(items) {
			return nil
		}
		if err := cl.RemoveItem(items[s.itemIdx].ID); err != nil {
			s.errMsg = err.Error()
			return nil
		}
		if s.itemIdx >= cl.Len() && s.itemIdx > 0 {
			s.itemIdx--
		}
		s.dirty = true
	}
	return nil
}

// updatePanePick handles cursor movement and the final pick while an item
// is waiting for its instrument.
func (s *AuthorScreen) updatePanePick(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "left", "h":
		s.pane.MoveCursor(-1, 0)
	case "right", "l":
		s.pane.MoveCursor(1, 0)
	case "up", "k":
		s.pane.MoveCursor(0, -1)
	case "down", "j":
		s.pane.MoveCursor(0, 1)
	case "H":
		s.pane.MoveCursor(-5, 0)
	case "L":
		s.pane.MoveCursor(5, 0)

	case "enter", "space", " ":
		id := s.pane.HitTest()
		if id == "" {
			return nil
		}
		cl := s.currentList()
		if cl == nil {
			s.picking = pickNone
			return nil
		}
		switch s.picking {
		case pickAddItem:
			if _, err := cl.AddItem(id, s.pickDesc, 0); err != nil {
				s.errMsg = err.Error()
				return nil
			}
			s.itemIdx = cl.Len() - 1
		case pickRelink:
			if err := s.sess.PickMarker(id); err != nil {
				s.errMsg = err.Error()
				return nil
			}
			items := cl.Items()
			for itemID, markerID := range s.sess.Linkage() {
				for _, it := range items {
					if it.ID == itemID {
						it.MarkerID = markerID
					}
				}
			}
			s.sess = nil
		}
		s.picking = pickNone
		s.pickDesc = ""
		s.dirty = true
	}
	return nil
}
