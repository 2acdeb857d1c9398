// Package history displays the attempt history of a checklist.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/akozyrev/checkride/internal/checklist"
	"github.com/akozyrev/checkride/internal/screen"
	"github.com/akozyrev/checkride/internal/store"
	"github.com/akozyrev/checkride/internal/ui/layout"
	"github.com/akozyrev/checkride/internal/ui/theme"
)

type checklistsLoadedMsg struct {
	Lists []store.ChecklistInfo
	Err   error
}

type attemptsLoadedMsg struct {
	Attempts []checklist.Attempt
	Err      error
}

// HistoryScreen lists checklists, then the selected one's attempts newest
// first.
type HistoryScreen struct {
	st *store.Store

	lists    []store.ChecklistInfo
	selected int
	loaded   bool
	errMsg   string

	viewing  bool
	current  store.ChecklistInfo
	attempts []checklist.Attempt
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)
var _ screen.EscHandler = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(st *store.Store) *HistoryScreen {
	return &HistoryScreen{st: st}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		lists, err := s.st.Cockpits().ListChecklists(context.Background())
		return checklistsLoadedMsg{Lists: lists, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	if s.viewing {
		return "Attempts: " + s.current.Name
	}
	return "Attempt history"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "Esc", Description: "Back"},
	}
}

// HandleEsc steps back from the attempts table to the checklist list.
func (s *HistoryScreen) HandleEsc() (bool, tea.Cmd) {
	if s.viewing {
		s.viewing = false
		s.attempts = nil
		return true, nil
	}
	return false, nil
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case checklistsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.lists = msg.Lists
		}
		s.loaded = true
		return s, nil

	case attemptsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		// Newest first for display; storage orders oldest first.
		rev := make([]checklist.Attempt, 0, len(msg.Attempts))
		for i := len(msg.Attempts) - 1; i >= 0; i-- {
			rev = append(rev, msg.Attempts[i])
		}
		s.attempts = rev
		s.viewing = true
		return s, nil

	case tea.KeyMsg:
		if s.viewing {
			return s, nil
		}
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
				return s, nil
			}
			s.current = s.lists[s.selected]
			id := s.current.ID
			return s, func() tea.Msg {
				attempts, err := s.st.Attempts().ByChecklist(context.Background(), id)
				return attemptsLoadedMsg{Attempts: attempts, Err: err}
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return "\n\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Incorrect.Render("Error: "+s.errMsg))
	}
	if !s.loaded {
		return "\n\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render("Loading..."))
	}

	if s.viewing {
		return s.viewAttempts(width)
	}
	return s.viewLists(width)
}

func (s *HistoryScreen) viewLists(width int) string {
	if len(s.lists) == 0 {
		return "\n\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render("No checklists yet. Build a cockpit first."))
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, info := range s.lists {
		prefix := "  "
		style := theme.Unselected
		if i == s.selected {
			prefix = "> "
			style = theme.Selected
		}
		line := fmt.Sprintf("%s%s — %s  (%d attempts)",
			prefix, info.CockpitName, info.Name, info.AttemptCnt)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *HistoryScreen) viewAttempts(width int) string {
	if len(s.attempts) == 0 {
		return "\n\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render("No attempts yet. Go fly it!"))
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, a := range s.attempts {
		style := theme.Correct
		if a.Percent < 70 {
			style = theme.Incorrect
		}
		line := fmt.Sprintf("#%-3d  %s  %s",
			a.Number, a.TakenAt.Format("Jan 02, 2006 15:04"),
			style.Render(fmt.Sprintf("%3d%%", a.Percent)))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Body.Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}
