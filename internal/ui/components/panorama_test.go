package components

import (
	"strings"
	"testing"
)

func newTestPane() *Panorama {
	p := NewPanorama(4096, 2048)
	p.SetSize(40, 10)
	return p
}

func TestPanoramaRegisterAndHitTest(t *testing.T) {
	p := newTestPane()

	// Image center projects to yaw 0, pitch 0, the middle cell.
	if err := p.RegisterOverlay("alt", 0, 0); err != nil {
		t.Fatalf("RegisterOverlay: %v", err)
	}
	p.CenterCursorOn("alt")
	if got := p.HitTest(); got != "alt" {
		t.Errorf("HitTest = %q, want alt", got)
	}

	p.MoveCursor(5, 3)
	if got := p.HitTest(); got != "" {
		t.Errorf("HitTest after move = %q, want empty", got)
	}
}

func TestPanoramaRejectsOutOfRangeAngles(t *testing.T) {
	p := newTestPane()
	if err := p.RegisterOverlay("x", 200, 0); err == nil {
		t.Error("accepted yaw 200")
	}
	if err := p.RegisterOverlay("x", 0, -95); err == nil {
		t.Error("accepted pitch -95")
	}
}

func TestPanoramaRemoveOverlay(t *testing.T) {
	p := newTestPane()
	if err := p.RegisterOverlay("alt", 0, 0); err != nil {
		t.Fatalf("RegisterOverlay: %v", err)
	}
	p.Highlight("alt")
	p.RemoveOverlay("alt")

	p.CenterCursorOn("alt") // no-op for unknown id
	if got := p.HitTest(); got != "" {
		t.Errorf("HitTest after remove = %q, want empty", got)
	}
	// Removing again is harmless.
	p.RemoveOverlay("alt")
}

func TestPanoramaCursorClamping(t *testing.T) {
	p := newTestPane()
	p.MoveCursor(-1000, -1000)
	x, y := p.CursorPixel()
	if x < 0 || y < 0 {
		t.Errorf("pixel went negative: %d, %d", x, y)
	}

	p.MoveCursor(1000, 1000)
	x, y = p.CursorPixel()
	if x >= 4096 || y >= 2048 {
		t.Errorf("pixel out of image: %d, %d", x, y)
	}
}

func TestPanoramaCursorAngularRange(t *testing.T) {
	p := newTestPane()
	for _, mv := range [][2]int{{0, 0}, {39, 9}, {-39, -9}, {20, 5}} {
		p.MoveCursor(mv[0], mv[1])
		yaw, pitch := p.CursorAngular()
		if yaw < -180 || yaw >= 180 || pitch < -90 || pitch > 90 {
			t.Errorf("angles out of range: yaw %f pitch %f", yaw, pitch)
		}
	}
}

func TestPanoramaViewShowsMarkersAndStatus(t *testing.T) {
	p := newTestPane()
	if err := p.RegisterOverlay("alt", -90, 30); err != nil {
		t.Fatalf("RegisterOverlay: %v", err)
	}
	p.SetLabel("alt", "Altimeter")
	p.CenterCursorOn("alt")

	view := p.View()
	if !strings.Contains(view, "◉") {
		t.Error("view does not render the overlay under the cursor")
	}
	if !strings.Contains(view, "Altimeter") {
		t.Error("view does not show the hovered overlay label")
	}
	if !strings.Contains(view, "yaw") {
		t.Error("view does not show the angle readout")
	}
}
