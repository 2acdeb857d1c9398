// Package author implements the cockpit builder screen: cockpit metadata,
// marker placement on the panorama, and checklist editing with
// drag-reorder.
package author

import (
	"context"
	"strconv"

	tea "charm.land/bubbletea/v2"

	"github.com/akozyrev/checkride/internal/checklist"
	"github.com/akozyrev/checkride/internal/cockpit"
	"github.com/akozyrev/checkride/internal/linking"
	"github.com/akozyrev/checkride/internal/router"
	"github.com/akozyrev/checkride/internal/screen"
	"github.com/akozyrev/checkride/internal/store"
	"github.com/akozyrev/checkride/internal/ui/components"
	"github.com/akozyrev/checkride/internal/ui/layout"
	"github.com/akozyrev/checkride/internal/viewer"
)

type phase int

const (
	phasePicking phase = iota
	phaseMeta
	phaseEditing
)

type editMode int

const (
	modeMarkers editMode = iota
	modeItems
)

type pickTarget int

const (
	pickNone pickTarget = iota
	pickAddItem
	pickRelink
)

type cockpitsLoadedMsg struct {
	Cockpits []store.CockpitInfo
	Err      error
}

type cockpitLoadedMsg struct {
	Cockpit *cockpit.Cockpit
	Lists   []*checklist.Checklist
	Err     error
}

type savedMsg struct {
	Exit bool
	Err  error
}

type prompt struct {
	label    string
	input    components.TextInput
	onSubmit func(value string)
}

// AuthorScreen builds and edits cockpit aggregates.
type AuthorScreen struct {
	st *store.Store

	phase  phase
	loaded bool
	errMsg string
	notice string

	// picking
	cockpits []store.CockpitInfo
	selected int

	// meta form for a new cockpit
	fieldIdx int
	fields   []string
	input    components.TextInput

	// editing
	cockpit *cockpit.Cockpit
	lists   []*checklist.Checklist
	pane    *components.Panorama
	binder  *viewer.Binder
	mode    editMode
	listIdx int
	itemIdx int
	drag    checklist.Drag

	moveID   string // marker being repositioned
	picking  pickTarget
	pickDesc string // pending item description while picking its marker
	sess     *linking.Session

	prompt *prompt
	dirty  bool
}

var _ screen.Screen = (*AuthorScreen)(nil)
var _ screen.KeyHintProvider = (*AuthorScreen)(nil)
var _ screen.EscHandler = (*AuthorScreen)(nil)
var _ screen.StatusProvider = (*AuthorScreen)(nil)

var metaLabels = []string{
	"Cockpit name", "Manufacturer", "Model", "Aircraft type",
	"Description", "Panorama link", "Panorama width (px)", "Panorama height (px)",
}

// New creates the screen in its cockpit picking phase.
func New(st *store.Store) *AuthorScreen {
	return &AuthorScreen{st: st}
}

func (s *AuthorScreen) Init() tea.Cmd {
	return func() tea.Msg {
		infos, err := s.st.Cockpits().List(context.Background())
		return cockpitsLoadedMsg{Cockpits: infos, Err: err}
	}
}

func (s *AuthorScreen) Title() string {
	switch s.phase {
	case phaseMeta:
		return "New cockpit"
	case phaseEditing:
		if s.mode == modeItems {
			return "Checklists: " + s.cockpit.Name
		}
		return "Instruments: " + s.cockpit.Name
	default:
		return "Cockpit builder"
	}
}

func (s *AuthorScreen) Status() string {
	if s.cockpit != nil && s.dirty {
		return s.cockpit.Name + " *"
	}
	if s.cockpit != nil {
		return s.cockpit.Name
	}
	return ""
}

func (s *AuthorScreen) KeyHints() []layout.KeyHint {
	if s.prompt != nil {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Confirm"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	switch s.phase {
	case phaseMeta:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next field"},
			{Key: "Esc", Description: "Cancel"},
		}
	case phaseEditing:
		if s.picking != pickNone || s.moveID != "" {
			return []layout.KeyHint{
				{Key: "←↑↓→", Description: "Aim"},
				{Key: "Enter", Description: "Place"},
				{Key: "Esc", Description: "Cancel"},
			}
		}
		if s.mode == modeItems {
			return []layout.KeyHint{
				{Key: "A", Description: "Add item"},
				{Key: "R", Description: "Relink"},
				{Key: "D", Description: "Delete"},
				{Key: "Space", Description: "Grab/Drop"},
				{Key: "N", Description: "New checklist"},
				{Key: "[]", Description: "Switch list"},
				{Key: "Tab", Description: "Instruments"},
				{Key: "Ctrl+S", Description: "Save"},
			}
		}
		return []layout.KeyHint{
			{Key: "←↑↓→", Description: "Aim"},
			{Key: "A", Description: "Add"},
			{Key: "M", Description: "Move"},
			{Key: "D", Description: "Delete"},
			{Key: "Tab", Description: "Checklists"},
			{Key: "Ctrl+S", Description: "Save"},
		}
	default:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Edit"},
			{Key: "N", Description: "New cockpit"},
			{Key: "Esc", Description: "Back"},
		}
	}
}

// HandleEsc unwinds the innermost interaction first: prompt, drag, pick,
// then saves and leaves the editor.
func (s *AuthorScreen) HandleEsc() (bool, tea.Cmd) {
	if s.prompt != nil {
		s.prompt = nil
		return true, nil
	}
	switch s.phase {
	case phaseMeta:
		s.phase = phasePicking
		return true, nil
	case phaseEditing:
		if s.drag.Active() {
			s.drag.Cancel()
			return true, nil
		}
		if s.moveID != "" {
			s.moveID = ""
			s.pane.Highlight("")
			return true, nil
		}
		if s.picking != pickNone {
			s.picking = pickNone
			s.pickDesc = ""
			if s.sess != nil {
				s.sess.Cancel()
			}
			return true, nil
		}
		if s.dirty {
			return true, s.save(true)
		}
		return true, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return false, nil
}

func (s *AuthorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case cockpitsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.cockpits = msg.Cockpits
		}
		s.loaded = true
		return s, nil

	case cockpitLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.startEditing(msg.Cockpit, msg.Lists, false)
		return s, nil

	case savedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.dirty = false
		s.notice = "saved"
		if msg.Exit {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil

	case tea.KeyMsg:
		if s.prompt != nil {
			return s, s.updatePrompt(msg)
		}
		switch s.phase {
		case phasePicking:
			return s, s.updatePicking(msg)
		case phaseMeta:
			return s, s.updateMeta(msg)
		case phaseEditing:
			return s, s.updateEditing(msg)
		}
	}

	if s.prompt != nil {
		var cmd tea.Cmd
		s.prompt.input, cmd = s.prompt.input.Update(msg)
		return s, cmd
	}
	if s.phase == phaseMeta {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *AuthorScreen) updatePrompt(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "enter" {
		value := s.prompt.input.Value()
		if value == "" {
			return nil
		}
		onSubmit := s.prompt.onSubmit
		s.prompt = nil
		onSubmit(value)
		return nil
	}
	var cmd tea.Cmd
	s.prompt.input, cmd = s.prompt.input.Update(msg)
	return cmd
}

func (s *AuthorScreen) openPrompt(label string, onSubmit func(string)) {
	s.prompt = &prompt{
		label:    label,
		input:    components.NewTextInput(label, false, 60),
		onSubmit: onSubmit,
	}
}

func (s *AuthorScreen) updatePicking(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.cockpits)-1 {
			s.selected++
		}
	case "n", "N":
		s.phase = phaseMeta
		s.fieldIdx = 0
		s.fields = make([]string, len(metaLabels))
		s.input = components.NewTextInput(metaLabels[0], false, 80)
		return s.input.Init()
	case "enter":
		if s.selected >= len(s.cockpits) {
			return nil
		}
		id := s.cockpits[s.selected].ID
		return func() tea.Msg {
			c, lists, err := s.st.Cockpits().Get(context.Background(), id)
			return cockpitLoadedMsg{Cockpit: c, Lists: lists, Err: err}
		}
	}
	return nil
}

func (s *AuthorScreen) updateMeta(msg tea.KeyMsg) tea.Cmd {
	if msg.String() != "enter" {
		numeric := s.fieldIdx >= 6 // width and height fields
		if numeric {
			key := msg.String()
			if len(key) == 1 && (key[0] < '0' || key[0] > '9') {
				return nil
			}
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return cmd
	}

	value := s.input.Value()
	if value == "" && (s.fieldIdx == 0 || s.fieldIdx >= 5) {
		return nil // name, link and dimensions are required
	}
	s.fields[s.fieldIdx] = value
	s.fieldIdx++
	if s.fieldIdx < len(metaLabels) {
		s.input = components.NewTextInput(metaLabels[s.fieldIdx], false, 80)
		return s.input.Init()
	}

	width, err := strconv.Atoi(s.fields[6])
	if err != nil || width <= 0 {
		s.errMsg = "panorama width must be a positive number"
		s.fieldIdx = 6
		s.input = components.NewTextInput(metaLabels[6], false, 80)
		return s.input.Init()
	}
	height, err := strconv.Atoi(s.fields[7])
	if err != nil || height <= 0 {
		s.errMsg = "panorama height must be a positive number"
		s.fieldIdx = 7
		s.input = components.NewTextInput(metaLabels[7], false, 80)
		return s.input.Init()
	}

	c := cockpit.New(s.fields[0], s.fields[1], s.fields[2], s.fields[3], s.fields[4],
		cockpit.Panorama{Link: s.fields[5], Width: width, Height: height})
	s.errMsg = ""
	s.startEditing(c, nil, true)
	return nil
}

func (s *AuthorScreen) startEditing(c *cockpit.Cockpit, lists []*checklist.Checklist, dirty bool) {
	s.cockpit = c
	s.lists = lists
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

	s.mode = modeMarkers
	s.listIdx = 0
	s.itemIdx = 0
	s.moveID = ""
	s.picking = pickNone
	s.dirty = dirty
	s.notice = ""
	s.phase = phaseEditing
}

func (s *AuthorScreen) currentList() *checklist.Checklist {
	if s.listIdx < 0 || s.listIdx >= len(s.lists) {
		return nil
	}
	return s.lists[s.listIdx]
}

func (s *AuthorScreen) save(exit bool) tea.Cmd {
	c, lists := s.cockpit, s.lists
	return func() tea.Msg {
		err := s.st.Cockpits().Save(context.Background(), c, lists)
		return savedMsg{Exit: exit, Err: err}
	}
}
