// Package train implements the test-taking screen: pick a checklist, link
// every item to an instrument on the panorama, submit for a score.
package train

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/akozyrev/checkride/internal/checklist"
	"github.com/akozyrev/checkride/internal/cockpit"
	"github.com/akozyrev/checkride/internal/linking"
	"github.com/akozyrev/checkride/internal/router"
	"github.com/akozyrev/checkride/internal/screen"
	"github.com/akozyrev/checkride/internal/scoring"
	"github.com/akozyrev/checkride/internal/store"
	"github.com/akozyrev/checkride/internal/ui/components"
	"github.com/akozyrev/checkride/internal/ui/layout"
	"github.com/akozyrev/checkride/internal/viewer"
)

type phase int

const (
	phasePicking phase = iota
	phaseFlying
	phaseResult
)

type checklistsLoadedMsg struct {
	Lists []store.ChecklistInfo
	Err   error
}

type aggregateLoadedMsg struct {
	Cockpit   *cockpit.Cockpit
	Checklist *checklist.Checklist
	Err       error
}

type attemptSavedMsg struct {
	Attempt checklist.Attempt
	Err     error
}

// TrainScreen runs one checklist test.
type TrainScreen struct {
	st *store.Store

	phase  phase
	loaded bool
	errMsg string

	directCockpit   string
	directChecklist string

	// picking
	lists    []store.ChecklistInfo
	selected int

	// flying
	cockpit   *cockpit.Cockpit
	checklist *checklist.Checklist
	sess      *linking.Session
	pane      *components.Panorama
	binder    *viewer.Binder
	itemIdx   int
	focusPane bool

	// result
	attempt checklist.Attempt
}

var _ screen.Screen = (*TrainScreen)(nil)
var _ screen.KeyHintProvider = (*TrainScreen)(nil)
var _ screen.EscHandler = (*TrainScreen)(nil)
var _ screen.StatusProvider = (*TrainScreen)(nil)

// New creates the screen in its checklist picking phase.
func New(st *store.Store) *TrainScreen {
	return &TrainScreen{st: st}
}

// NewFor creates the screen flying the given checklist directly, skipping
// the picker.
func NewFor(st *store.Store, cockpitID, checklistID string) *TrainScreen {
	return &TrainScreen{st: st, directCockpit: cockpitID, directChecklist: checklistID}
}

func (s *TrainScreen) Init() tea.Cmd {
	if s.directChecklist != "" {
		return s.loadAggregate(s.directCockpit, s.directChecklist)
	}
	return func() tea.Msg {
		lists, err := s.st.Cockpits().ListChecklists(context.Background())
		return checklistsLoadedMsg{Lists: lists, Err: err}
	}
}

func (s *TrainScreen) Title() string {
	switch s.phase {
	case phaseFlying:
		return "Checkride: " + s.checklist.Name
	case phaseResult:
		return "Debrief"
	default:
		return "Pick a checklist"
	}
}

func (s *TrainScreen) Status() string {
	if s.cockpit != nil {
		return s.cockpit.Name
	}
	return ""
}

func (s *TrainScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseFlying:
		if s.focusPane {
			return []layout.KeyHint{
				{Key: "←↑↓→", Description: "Aim"},
				{Key: "Enter", Description: "Pick instrument"},
				{Key: "Tab", Description: "Checklist"},
				{Key: "S", Description: "Submit"},
				{Key: "Esc", Description: "Back"},
			}
		}
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Item"},
			{Key: "Enter", Description: "Select item"},
			{Key: "Tab", Description: "Panorama"},
			{Key: "S", Description: "Submit"},
			{Key: "Esc", Description: "Back"},
		}
	case phaseResult:
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Esc", Description: "Done"},
		}
	default:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Fly"},
			{Key: "Esc", Description: "Back"},
		}
	}
}

// HandleEsc cancels a pending item selection before falling back to
// navigation.
func (s *TrainScreen) HandleEsc() (bool, tea.Cmd) {
	if s.phase == phaseFlying && s.sess.State() == linking.ItemSelected {
		s.sess.Cancel()
		s.pane.Highlight("")
		return true, nil
	}
	if s.phase == phaseResult {
		// Leave the whole screen; history screen shows past attempts.
		return true, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return false, nil
}

func (s *TrainScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case checklistsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.lists = msg.Lists
		}
		s.loaded = true
		return s, nil

	case aggregateLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.startFlight(msg.Cockpit, msg.Checklist)
		return s, nil

	case attemptSavedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.attempt = msg.Attempt
		s.phase = phaseResult
		return s, nil

	case tea.KeyMsg:
		switch s.phase {
		case phasePicking:
			return s, s.updatePicking(msg)
		case phaseFlying:
			return s, s.updateFlying(msg)
		case phaseResult:
			return s, s.updateResult(msg)
		}
	}
	return s, nil
}

func (s *TrainScreen) updatePicking(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.lists)-1 {
			s.selected++
		}
	case "enter":
		if s.selected >= len(s.lists) {
			return nil
		}
		info := s.lists[s.selected]
		return s.loadAggregate(info.CockpitID, info.ID)
	}
	return nil
}

func (s *TrainScreen) loadAggregate(cockpitID, checklistID string) tea.Cmd {
	return func() tea.Msg {
		c, lists, err := s.st.Cockpits().Get(context.Background(), cockpitID)
		if err != nil {
			return aggregateLoadedMsg{Err: err}
		}
		var target *checklist.Checklist
		for _, cl := range lists {
			if cl.ID == checklistID {
				target = cl
				break
			}
		}
		if target == nil {
			return aggregateLoadedMsg{Err: store.ErrNotFound}
		}
		return aggregateLoadedMsg{Cockpit: c, Checklist: target}
	}
}

func (s *TrainScreen) startFlight(c *cockpit.Cockpit, cl *checklist.Checklist) {
	s.cockpit = c
	s.checklist = cl
	s.sess = linking.NewSession(cl, c.Markers)

	s.pane = components.NewPanorama(c.Panorama.Width, c.Panorama.Height)
	s.pane.SetSize(paneWidth, paneHeight)
	s.binder = viewer.NewBinder(c.Markers, s.pane)
	if err := s.binder.Sync(); err != nil {
		s.errMsg = err.Error()
		return
	}
	for _, m := range c.Markers.All() {
		s.pane.SetLabel(m.ID, m.Name)
	}

	s.itemIdx = 0
	s.focusPane = false
	s.phase = phaseFlying
	s.errMsg = ""
}

func (s *TrainScreen) updateFlying(msg tea.KeyMsg) tea.Cmd {
	items := s.checklist.Items()

	switch msg.String() {
	case "tab":
		s.focusPane = !s.focusPane
		return nil
	case "s", "S":
		return s.submit()
	}

	if s.focusPane {
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
		case "enter", "space":
			id := s.pane.HitTest()
			if id == "" {
				return nil
			}
			if err := s.sess.PickMarker(id); err != nil {
				s.errMsg = err.Error()
				return nil
			}
			s.errMsg = ""
			s.pane.Highlight("")
			s.focusPane = false
			s.advanceToUnlinked()
		}
		return nil
	}

	switch msg.String() {
	case "up", "k":
		if s.itemIdx > 0 {
			s.itemIdx--
		}
	case "down", "j":
		if s.itemIdx < len(items)-1 {
			s.itemIdx++
		}
	case "enter":
		if s.itemIdx >= len(items) {
			return nil
		}
		if err := s.sess.SelectItem(items[s.itemIdx].ID); err != nil {
			s.errMsg = err.Error()
			return nil
		}
		s.errMsg = ""
		s.focusPane = true
	}
	return nil
}

// advanceToUnlinked moves the item cursor to the first item without a link,
// so the flow reads select, pick, select, pick.
func (s *TrainScreen) advanceToUnlinked() {
	for i, it := range s.checklist.Items() {
		if _, ok := s.sess.Linked(it.ID); !ok {
			s.itemIdx = i
			return
		}
	}
}

func (s *TrainScreen) submit() tea.Cmd {
	attempt, err := scoring.Submit(s.checklist, s.sess.Linkage())
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	cl := s.checklist
	return func() tea.Msg {
		if err := s.st.Attempts().Append(context.Background(), cl.ID, attempt); err != nil {
			return attemptSavedMsg{Err: err}
		}
		return attemptSavedMsg{Attempt: attempt}
	}
}

func (s *TrainScreen) updateResult(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "r", "R":
		// Fresh linking session over the same aggregate; the recorded
		// attempt stays in the history.
		s.sess = linking.NewSession(s.checklist, s.cockpit.Markers)
		s.itemIdx = 0
		s.focusPane = false
		s.errMsg = ""
		s.phase = phaseFlying
	}
	return nil
}
