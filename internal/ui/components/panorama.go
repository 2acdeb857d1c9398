package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/akozyrev/checkride/internal/geo"
	"github.com/akozyrev/checkride/internal/ui/theme"
)

// Panorama renders an equirectangular cockpit image as a cell grid with
// instrument overlays and a movable cursor. The full 360°x180° sphere is
// squeezed into the pane, so a cell covers many image pixels; overlays
// land on the cell their view angles project to.
//
// It satisfies the viewer surface contract: overlays are registered by id
// and view angles, and removed by id.
type Panorama struct {
	imgWidth  int
	imgHeight int

	width  int
	height int

	cursorX int
	cursorY int

	overlays map[string]overlay
	order    []string

	highlight string
}

type overlay struct {
	yaw   float64
	pitch float64
	label string
}

// NewPanorama creates a pane for an image of the given pixel dimensions.
func NewPanorama(imgWidth, imgHeight int) *Panorama {
	return &Panorama{
		imgWidth:  imgWidth,
		imgHeight: imgHeight,
		overlays:  make(map[string]overlay),
	}
}

// SetSize sets the pane's cell dimensions and clamps the cursor.
func (p *Panorama) SetSize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	p.width = width
	p.height = height
	p.cursorX = clamp(p.cursorX, 0, width-1)
	p.cursorY = clamp(p.cursorY, 0, height-1)
}

// RegisterOverlay places or re-places an overlay at the given view angles.
func (p *Panorama) RegisterOverlay(id string, yaw, pitch float64) error {
	if yaw < -180 || yaw >= 180 || pitch < -90 || pitch > 90 {
		return fmt.Errorf("overlay %s: angles out of range (yaw %.2f, pitch %.2f)", id, yaw, pitch)
	}
	if _, ok := p.overlays[id]; !ok {
		p.order = append(p.order, id)
	}
	prev := p.overlays[id]
	p.overlays[id] = overlay{yaw: yaw, pitch: pitch, label: prev.label}
	return nil
}

// RemoveOverlay drops an overlay. Unknown ids are ignored.
func (p *Panorama) RemoveOverlay(id string) {
	if _, ok := p.overlays[id]; !ok {
		return
	}
	delete(p.overlays, id)
	for i, oid := range p.order {
		if oid == id {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
	if p.highlight == id {
		p.highlight = ""
	}
}

// SetLabel attaches a display label to an overlay.
func (p *Panorama) SetLabel(id, label string) {
	if o, ok := p.overlays[id]; ok {
		o.label = label
		p.overlays[id] = o
	}
}

// Highlight marks one overlay as emphasized; empty clears it.
func (p *Panorama) Highlight(id string) {
	p.highlight = id
}

// MoveCursor moves the cursor by whole cells, clamped to the pane.
func (p *Panorama) MoveCursor(dx, dy int) {
	p.cursorX = clamp(p.cursorX+dx, 0, p.width-1)
	p.cursorY = clamp(p.cursorY+dy, 0, p.height-1)
}

// CursorPixel maps the cursor cell center back to image pixels.
func (p *Panorama) CursorPixel() (x, y int) {
	if p.width == 0 || p.height == 0 {
		return 0, 0
	}
	x = int((float64(p.cursorX) + 0.5) / float64(p.width) * float64(p.imgWidth))
	y = int((float64(p.cursorY) + 0.5) / float64(p.height) * float64(p.imgHeight))
	return clamp(x, 0, p.imgWidth-1), clamp(y, 0, p.imgHeight-1)
}

// CursorAngular returns the view angles under the cursor.
func (p *Panorama) CursorAngular() (yaw, pitch float64) {
	px, py := p.CursorPixel()
	yaw, pitch, _ = geo.PixelToAngular(px, py, p.imgWidth, p.imgHeight)
	return yaw, pitch
}

// HitTest returns the id of the overlay on the cursor cell, or "".
func (p *Panorama) HitTest() string {
	for i := len(p.order) - 1; i >= 0; i-- {
		id := p.order[i]
		o := p.overlays[id]
		cx, cy := p.cell(o.yaw, o.pitch)
		if cx == p.cursorX && cy == p.cursorY {
			return id
		}
	}
	return ""
}

// CenterCursorOn moves the cursor to the overlay's cell.
func (p *Panorama) CenterCursorOn(id string) {
	o, ok := p.overlays[id]
	if !ok {
		return
	}
	p.cursorX, p.cursorY = p.cell(o.yaw, o.pitch)
}

func (p *Panorama) cell(yaw, pitch float64) (x, y int) {
	x = int((yaw + 180) / 360 * float64(p.width))
	y = int((90 - pitch) / 180 * float64(p.height))
	return clamp(x, 0, p.width-1), clamp(y, 0, p.height-1)
}

// View renders the pane.
func (p *Panorama) View() string {
	if p.width == 0 || p.height == 0 {
		return ""
	}

	type cellMark struct {
		id string
	}
	marks := make(map[[2]int]cellMark, len(p.overlays))
	for _, id := range p.order {
		o := p.overlays[id]
		cx, cy := p.cell(o.yaw, o.pitch)
		marks[[2]int{cx, cy}] = cellMark{id: id}
	}

	dot := lipgloss.NewStyle().Foreground(theme.Border).Render("·")
	blank := " "

	var b strings.Builder
	for y := 0; y < p.height; y++ {
		for x := 0; x < p.width; x++ {
			mark, marked := marks[[2]int{x, y}]
			onCursor := x == p.cursorX && y == p.cursorY

			switch {
			case marked && onCursor:
				b.WriteString(theme.CursorGlyph.Render("◉"))
			case marked && mark.id == p.highlight:
				b.WriteString(theme.Grabbed.Render("◉"))
			case marked:
				b.WriteString(theme.MarkerGlyph.Render("●"))
			case onCursor:
				b.WriteString(theme.CursorGlyph.Render("+"))
			case x%4 == 0 && y%2 == 0:
				b.WriteString(dot)
			default:
				b.WriteString(blank)
			}
		}
		if y < p.height-1 {
			b.WriteString("\n")
		}
	}

	yaw, pitch := p.CursorAngular()
	status := theme.Hint.Render(fmt.Sprintf("yaw %+7.2f°  pitch %+6.2f°", yaw, pitch))
	if id := p.HitTest(); id != "" {
		if o := p.overlays[id]; o.label != "" {
			status += "  " + theme.Selected.Render(o.label)
		}
	}

	grid := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(b.String())

	return grid + "\n" + status
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
