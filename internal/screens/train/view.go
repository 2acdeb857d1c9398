package train

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/akozyrev/checkride/internal/ui/components"
	"github.com/akozyrev/checkride/internal/ui/theme"
)

const (
	paneWidth  = 52
	paneHeight = 13
)

func (s *TrainScreen) View(width, height int) string {
	if s.errMsg != "" && s.phase == phasePicking {
		return centered(width, theme.Incorrect.Render("Error: "+s.errMsg))
	}

	switch s.phase {
	case phaseFlying:
		return s.viewFlying(width, height)
	case phaseResult:
		return s.viewResult(width, height)
	default:
		return s.viewPicking(width, height)
	}
}

func (s *TrainScreen) viewPicking(width, height int) string {
	if !s.loaded {
		return centered(width, theme.Hint.Render("Loading checklists..."))
	}
	if len(s.lists) == 0 {
		return centered(width, theme.Hint.Render("No checklists yet. Build a cockpit first."))
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
		line := fmt.Sprintf("%s%s — %s  (%d items, %d attempts)",
			prefix, info.CockpitName, info.Name, info.ItemCnt, info.AttemptCnt)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *TrainScreen) viewFlying(width, height int) string {
	items := s.checklist.Items()

	var list strings.Builder
	list.WriteString(theme.Title.Render(s.checklist.Name) + "\n\n")
	pendingID, hasPending := s.sess.Pending()
	for i, it := range items {
		mark := "[ ]"
		if _, ok := s.sess.Linked(it.ID); ok {
			mark = "[✓]"
		}

		line := fmt.Sprintf("%s %d. %s", mark, i+1, it.Description)
		style := theme.Unselected
		switch {
		case hasPending && it.ID == pendingID:
			style = theme.Grabbed
			line = "▸ " + line
		case i == s.itemIdx && !s.focusPane:
			style = theme.Selected
			line = "> " + line
		default:
			line = "  " + line
		}
		list.WriteString(style.Render(line) + "\n")
	}

	if hasPending {
		list.WriteString("\n" + theme.Hint.Render("pick the instrument on the panorama"))
	}
	if s.errMsg != "" {
		list.WriteString("\n" + theme.Incorrect.Render(s.errMsg))
	}

	listWidth := width - paneWidth - 8
	if listWidth < 22 {
		listWidth = 22
	}
	listBox := theme.Card.Width(listWidth).Render(list.String())
	pane := s.pane.View()

	row := lipgloss.JoinHorizontal(lipgloss.Top, listBox, "  ", pane)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, row)
}

func (s *TrainScreen) viewResult(width, height int) string {
	bar := components.NewProgressBar("Score", float64(s.attempt.Percent)/100, true, 40)

	verdict := theme.Correct.Render("Solid checkride!")
	if s.attempt.Percent < 70 {
		verdict = theme.Incorrect.Render("More pattern work needed.")
	}

	body := strings.Join([]string{
		theme.Title.Render(fmt.Sprintf("Attempt #%d", s.attempt.Number)),
		"",
		bar.View(),
		"",
		theme.Body.Render(fmt.Sprintf("%d%% of items matched their instruments", s.attempt.Percent)),
		verdict,
	}, "\n")

	card := theme.Card.Render(body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func centered(width int, content string) string {
	return "\n\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, content)
}
