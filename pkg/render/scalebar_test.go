package render

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/LeoMengTCM/Leo-ROI-Zoom-Tool/pkg/types"
)

// stubText is a deterministic TextRenderer: every byte is charW x charH and
// Draw fills the whole text box, making text placement exactly checkable.
type stubText struct {
	charW, charH int
}

func (s stubText) Measure(text string, _ float64) (int, int) {
	return len(text) * s.charW, s.charH
}

func (s stubText) Draw(dst draw.Image, text string, x, y int, _ float64, c color.Color) {
	w, h := s.Measure(text, 0)
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			dst.Set(x+dx, y+dy, c)
		}
	}
}

func testBar() types.ScaleBarSpec {
	sb := types.DefaultScaleBar()
	sb.Corner = types.CornerLeft
	sb.Style = types.ScaleBarLine
	sb.Thickness = 1
	sb.ShowText = false
	return sb
}

func TestScaleBarLineExtent(t *testing.T) {
	img := newCanvas(400, 300)
	r := NewWithText(stubText{8, 12})

	// 100 um at 1 px/um anchored 30 px inside the bottom-left corner.
	r.drawScaleBar(img, testBar(), image.Rect(0, 0, 400, 300))

	y := 300 - 30
	if n := countColor(img, black); n != 101 {
		t.Errorf("expected 101 bar pixels, got %d", n)
	}
	if !pixelIs(img, 30, y, black) || !pixelIs(img, 130, y, black) {
		t.Error("bar endpoints missing")
	}
	if !pixelIs(img, 29, y, white) || !pixelIs(img, 131, y, white) {
		t.Error("bar overruns its length")
	}
	if !pixelIs(img, 80, y-1, white) || !pixelIs(img, 80, y+1, white) {
		t.Error("thickness 1 bar touched adjacent rows")
	}
}

func TestScaleBarRightCorner(t *testing.T) {
	img := newCanvas(400, 300)
	r := NewWithText(stubText{8, 12})

	sb := testBar()
	sb.Corner = types.CornerRight
	r.drawScaleBar(img, sb, image.Rect(0, 0, 400, 300))

	y := 270
	if !pixelIs(img, 270, y, black) || !pixelIs(img, 370, y, black) {
		t.Error("right-anchored bar misplaced")
	}
	if !pixelIs(img, 269, y, white) || !pixelIs(img, 371, y, white) {
		t.Error("right-anchored bar overruns")
	}
}

func TestScaleBarTargetRect(t *testing.T) {
	img := newCanvas(400, 300)
	r := NewWithText(stubText{8, 12})

	// Anchors follow the target's placement rectangle, not the canvas.
	r.drawScaleBar(img, testBar(), image.Rect(50, 40, 250, 200))

	if !pixelIs(img, 80, 170, black) {
		t.Error("bar not anchored to the target rectangle")
	}
}

func TestScaleBarStyles(t *testing.T) {
	ends := testBar()
	ends.Style = types.ScaleBarEnds

	img := newCanvas(400, 300)
	r := NewWithText(stubText{8, 12})
	r.drawScaleBar(img, ends, image.Rect(0, 0, 400, 300))

	// End ticks span three thicknesses above and below the baseline.
	y := 270
	for _, p := range []image.Point{{30, y - 3}, {30, y + 3}, {130, y - 3}, {130, y + 3}} {
		if !pixelIs(img, p.X, p.Y, black) {
			t.Errorf("end tick missing at %v", p)
		}
	}
	if !pixelIs(img, 80, y-1, white) {
		t.Error("ends style drew a center tick")
	}

	ticks := testBar()
	ticks.Style = types.ScaleBarTicks

	img = newCanvas(400, 300)
	r.drawScaleBar(img, ticks, image.Rect(0, 0, 400, 300))

	if !pixelIs(img, 80, y-1, black) || !pixelIs(img, 80, y+1, black) {
		t.Error("ticks style missing the center tick")
	}
	if !pixelIs(img, 80, y-3, white) {
		t.Error("center tick as tall as end ticks")
	}
}

func TestScaleBarLabelPlacement(t *testing.T) {
	img := newCanvas(400, 300)
	r := NewWithText(stubText{8, 12})

	sb := testBar()
	sb.Style = types.ScaleBarEnds
	sb.ShowText = true
	r.drawScaleBar(img, sb, image.Rect(0, 0, 400, 300))

	// Label "100 μm" is 7 bytes, so the stub box is 56x12, centered over the
	// bar and lifted above the end ticks by the text gap.
	x := 30 + (100-56)/2
	y := 270 - 3 - 12 - 5
	if !pixelIs(img, x, y, black) || !pixelIs(img, x+55, y+11, black) {
		t.Error("label box misplaced")
	}
	if !pixelIs(img, x-1, y, white) || !pixelIs(img, x, y-1, white) {
		t.Error("label box larger than measured")
	}
}

func TestScaleBarNoText(t *testing.T) {
	img := newCanvas(400, 300)
	r := NewWithText(stubText{8, 12})

	sb := testBar()
	sb.Style = types.ScaleBarEnds
	r.drawScaleBar(img, sb, image.Rect(0, 0, 400, 300))

	// 101 bar pixels plus two 7-pixel end ticks that each share one pixel
	// with the bar. No label box anywhere.
	if n := countColor(img, black); n != 113 {
		t.Errorf("expected bar and ticks only, got %d pixels", n)
	}
}
