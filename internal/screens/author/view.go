package author

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/akozyrev/checkride/internal/ui/theme"
)

const (
	paneWidth  = 52
	paneHeight = 13
)

func (s *AuthorScreen) noticef(format string, args ...any) {
	s.notice = fmt.Sprintf(format, args...)
}

func (s *AuthorScreen) View(width, height int) string {
	switch s.phase {
	case phaseMeta:
		return s.viewMeta(width, height)
	case phaseEditing:
		return s.viewEditing(width, height)
	default:
		return s.viewPicking(width, height)
	}
}

func (s *AuthorScreen) viewPicking(width, height int) string {
	if s.errMsg != "" {
		return centered(width, theme.Incorrect.Render("Error: "+s.errMsg))
	}
	if !s.loaded {
		return centered(width, theme.Hint.Render("Loading cockpits..."))
	}

	var b strings.Builder
	b.WriteString("\n")
	if len(s.cockpits) == 0 {
		b.WriteString(centered(width, theme.Hint.Render("No cockpits yet. Press N to build one.")))
		return b.String()
	}
	for i, info := range s.cockpits {
		prefix := "  "
		style := theme.Unselected
		if i == s.selected {
			prefix = "> "
			style = theme.Selected
		}
		line := fmt.Sprintf("%s%s %s — %s  (%d instruments, %d checklists)",
			prefix, info.Manufacturer, info.Model, info.Name,
			info.InstrumentCnt, info.ChecklistCnt)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *AuthorScreen) viewMeta(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("New cockpit") + "\n\n")

	for i := 0; i < s.fieldIdx; i++ {
		b.WriteString(theme.Hint.Render(metaLabels[i]+": ") +
			theme.Body.Render(s.fields[i]) + "\n")
	}
	b.WriteString("\n" + theme.Selected.Render(metaLabels[s.fieldIdx]) + "\n")
	b.WriteString(s.input.View() + "\n")

	if s.errMsg != "" {
		b.WriteString("\n" + theme.Incorrect.Render(s.errMsg))
	}

	card := theme.Card.Width(70).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (s *AuthorScreen) viewEditing(width, height int) string {
	sideWidth := width - paneWidth - 10
	if sideWidth < 22 {
		sideWidth = 22
	}
	sidebar := s.viewSidebar(sideWidth)
	pane := s.pane.View()

	row := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, "  ", pane)
	out := lipgloss.PlaceHorizontal(width, lipgloss.Center, row)

	if s.prompt != nil {
		box := theme.Card.Render(
			theme.Selected.Render(s.prompt.label) + "\n" + s.prompt.input.View())
		out += "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
	}

	var status string
	switch {
	case s.errMsg != "":
		status = theme.Incorrect.Render(s.errMsg)
	case s.notice != "":
		status = theme.Hint.Render(s.notice)
	case s.picking == pickAddItem:
		status = theme.Grabbed.Render("pick the instrument for: " + s.pickDesc)
	case s.picking == pickRelink:
		status = theme.Grabbed.Render("pick the new instrument")
	case s.moveID != "":
		status = theme.Grabbed.Render("moving instrument, Enter places it")
	case s.drag.Active():
		status = theme.Grabbed.Render("carrying item, Space drops it")
	}
	if status != "" {
		out += "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, status)
	}
	return out
}

func (s *AuthorScreen) viewSidebar(width int) string {
	var b strings.Builder

	if s.mode == modeMarkers {
		b.WriteString(theme.Title.Render("Instruments") + "\n\n")
		markers := s.cockpit.Markers.All()
		if len(markers) == 0 {
			b.WriteString(theme.Hint.Render("Aim and press A to place one.") + "\n")
		}
		hovered := s.pane.HitTest()
		for _, m := range markers {
			style := theme.Unselected
			prefix := "  "
			switch {
			case m.ID == s.moveID:
				style = theme.Grabbed
				prefix = "✈ "
			case m.ID == hovered:
				style = theme.Selected
				prefix = "> "
			}
			b.WriteString(style.Render(fmt.Sprintf("%s%s  (%d, %d)", prefix, m.Name, m.PixelX, m.PixelY)) + "\n")
		}
	} else {
		cl := s.currentList()
		if cl == nil {
			b.WriteString(theme.Title.Render("Checklists") + "\n\n")
			b.WriteString(theme.Hint.Render("No checklists. Press N to add one.") + "\n")
		} else {
			title := fmt.Sprintf("Checklist %d/%d: %s", s.listIdx+1, len(s.lists), cl.Name)
			b.WriteString(theme.Title.Render(title) + "\n\n")

			items := cl.Items()
			if len(items) == 0 {
				b.WriteString(theme.Hint.Render("Press A to add an item.") + "\n")
			}
			dragTarget, dragging := s.drag.Target()
			for i, it := range items {
				name := "?"
				if m, ok := s.cockpit.Markers.Get(it.MarkerID); ok {
					name = m.Name
				}
				style := theme.Unselected
				prefix := "  "
				switch {
				case s.drag.Active() && i == s.drag.Source():
					style = theme.Grabbed
					prefix = "≡ "
				case dragging && i == dragTarget:
					style = theme.Selected
					prefix = "↳ "
				case i == s.itemIdx:
					style = theme.Selected
					prefix = "> "
				}
				b.WriteString(style.Render(fmt.Sprintf("%s%d. %s → %s", prefix, i+1, it.Description, name)) + "\n")
			}
		}
	}

	return theme.Card.Width(width).Render(b.String())
}

func centered(width int, content string) string {
	return "\n\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, content)
}
