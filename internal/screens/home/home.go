// Package home implements the main menu screen.
package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/akozyrev/checkride/internal/router"
	"github.com/akozyrev/checkride/internal/screen"
	"github.com/akozyrev/checkride/internal/screens/author"
	"github.com/akozyrev/checkride/internal/screens/history"
	"github.com/akozyrev/checkride/internal/screens/train"
	"github.com/akozyrev/checkride/internal/store"
	"github.com/akozyrev/checkride/internal/ui/components"
	"github.com/akozyrev/checkride/internal/ui/theme"
)

type statsLoadedMsg struct {
	Cockpits   int
	Checklists int
	Attempts   int
	Err        error
}

// HomeScreen is the entry screen: main menu plus library stats.
type HomeScreen struct {
	st         *store.Store
	menu       components.Menu
	cockpits   int
	checklists int
	attempts   int
	loaded     bool
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(st *store.Store) *HomeScreen {
	items := []components.MenuItem{
		{Label: "FLY A CHECKLIST", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: train.New(st)}
			}
		}},
		{Label: "COCKPIT BUILDER", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: author.New(st)}
			}
		}},
		{Label: "ATTEMPT HISTORY", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(st)}
			}
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		st:   st,
		menu: components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		infos, err := h.st.Cockpits().List(ctx)
		if err != nil {
			return statsLoadedMsg{Err: err}
		}
		cls, err := h.st.Cockpits().ListChecklists(ctx)
		if err != nil {
			return statsLoadedMsg{Err: err}
		}
		attempts := 0
		for _, cl := range cls {
			attempts += cl.AttemptCnt
		}
		return statsLoadedMsg{Cockpits: len(infos), Checklists: len(cls), Attempts: attempts}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(statsLoadedMsg); ok {
		if m.Err == nil {
			h.cockpits = m.Cockpits
			h.checklists = m.Checklists
			h.attempts = m.Attempts
		}
		h.loaded = true
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	title := theme.Title.Width(width).Render("CHECKRIDE")
	subtitle := theme.Subtitle.Width(width).Render("panorama cockpit trainer")
	sections = append(sections, title, subtitle)

	if h.loaded {
		stats := fmt.Sprintf("%d cockpits   %d checklists   %d attempts",
			h.cockpits, h.checklists, h.attempts)
		sections = append(sections, theme.Hint.Width(width).Align(lipgloss.Center).Render(stats))
	}

	menu := lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View())
	sections = append(sections, "", menu)

	content := strings.Join(sections, "\n")
	return lipgloss.PlaceVertical(height, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
