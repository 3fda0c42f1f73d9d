package types

import (
	"image"
	"testing"
)

func TestParseDirection(t *testing.T) {
	tests := []struct {
		input    string
		expected Direction
		wantErr  bool
	}{
		{"right", DirectionRight, false},
		{"LEFT", DirectionLeft, false},
		{"Bottom", DirectionBottom, false},
		{"top", DirectionTop, false},
		{"diagonal", "", true},
		{"", "", true},
	}

	for _, test := range tests {
		got, err := ParseDirection(test.input)
		if test.wantErr {
			if err == nil {
				t.Errorf("ParseDirection(%q) expected error, got %q", test.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDirection(%q) failed: %v", test.input, err)
			continue
		}
		if got != test.expected {
			t.Errorf("ParseDirection(%q) = %q, expected %q", test.input, got, test.expected)
		}
	}
}

func TestParseEnums(t *testing.T) {
	if _, err := ParseTarget("Panorama"); err != nil {
		t.Errorf("ParseTarget failed: %v", err)
	}
	if _, err := ParseTarget("canvas"); err == nil {
		t.Error("ParseTarget accepted unknown target")
	}

	if _, err := ParseLineStyle("dashed"); err != nil {
		t.Errorf("ParseLineStyle failed: %v", err)
	}
	if _, err := ParseLineStyle("dotted"); err == nil {
		t.Error("ParseLineStyle accepted unknown style")
	}

	if _, err := ParseCorner("left"); err != nil {
		t.Errorf("ParseCorner failed: %v", err)
	}
	if _, err := ParseCorner("middle"); err == nil {
		t.Error("ParseCorner accepted unknown corner")
	}

	if _, err := ParseScaleBarStyle("ticks"); err != nil {
		t.Errorf("ParseScaleBarStyle failed: %v", err)
	}
	if _, err := ParseScaleBarStyle("ruler"); err == nil {
		t.Error("ParseScaleBarStyle accepted unknown style")
	}

	if _, err := ParseAnnotationKind("star"); err != nil {
		t.Errorf("ParseAnnotationKind failed: %v", err)
	}
	if _, err := ParseAnnotationKind("blob"); err == nil {
		t.Error("ParseAnnotationKind accepted unknown kind")
	}

	if _, err := ParseArrowDirection("down"); err != nil {
		t.Errorf("ParseArrowDirection failed: %v", err)
	}
	if _, err := ParseArrowDirection("northwest"); err == nil {
		t.Error("ParseArrowDirection accepted unknown direction")
	}

	if _, err := ParseWatermarkAnchor("bottom-right"); err != nil {
		t.Errorf("ParseWatermarkAnchor failed: %v", err)
	}
	if _, err := ParseWatermarkAnchor("middle-out"); err == nil {
		t.Error("ParseWatermarkAnchor accepted unknown anchor")
	}
}

func TestScaleBarLengthPixels(t *testing.T) {
	tests := []struct {
		lengthUM    float64
		pixelsPerUM float64
		expected    int
	}{
		{100, 2.0, 200},
		{100, 1.0, 100},
		{50, 1.5, 75},
		{10, 0.26, 3},  // 2.6 rounds up
		{10, 0.24, 2},  // 2.4 rounds down
		{100, 0, 0},    // degenerate, caught by validation
	}

	for _, test := range tests {
		spec := DefaultScaleBar()
		spec.LengthUM = test.lengthUM
		spec.PixelsPerUM = test.pixelsPerUM
		if got := spec.LengthPixels(); got != test.expected {
			t.Errorf("LengthPixels(%v um, %v px/um) = %d, expected %d",
				test.lengthUM, test.pixelsPerUM, got, test.expected)
		}
	}
}

func TestScaleBarLabel(t *testing.T) {
	tests := []struct {
		lengthUM float64
		expected string
	}{
		{100, "100 μm"},
		{999, "999 μm"},
		{1000, "1.0 mm"},
		{1500, "1.5 mm"},
		{2340, "2.3 mm"},
		{5, "5 μm"},
	}

	for _, test := range tests {
		spec := DefaultScaleBar()
		spec.LengthUM = test.lengthUM
		if got := spec.Label(); got != test.expected {
			t.Errorf("Label(%v um) = %q, expected %q", test.lengthUM, got, test.expected)
		}
	}
}

func TestMatchResultBounds(t *testing.T) {
	m := MatchResult{X: 10, Y: 20, W: 30, H: 40, Confidence: 0.9, Scale: 1.0}
	want := image.Rect(10, 20, 40, 60)
	if got := m.Bounds(); got != want {
		t.Errorf("Bounds() = %v, expected %v", got, want)
	}
}

func TestMetadataCoordinateTranslation(t *testing.T) {
	meta := Metadata{
		ROIX: 40, ROIY: 30, ROIW: 80, ROIH: 60,
		PanoPos: image.Pt(8, 8),
		ZoomPos: image.Pt(228, 18),
	}

	p := meta.CanvasToPanorama(image.Pt(48, 38))
	if p != image.Pt(40, 30) {
		t.Errorf("CanvasToPanorama = %v, expected (40,30)", p)
	}

	z := meta.CanvasToZoom(image.Pt(238, 28))
	if z != image.Pt(10, 10) {
		t.Errorf("CanvasToZoom = %v, expected (10,10)", z)
	}

	if want := image.Rect(40, 30, 120, 90); meta.ROIBox() != want {
		t.Errorf("ROIBox() = %v, expected %v", meta.ROIBox(), want)
	}
}

func TestDefaults(t *testing.T) {
	sb := DefaultScaleBar()
	if sb.Target != TargetZoom || sb.Corner != CornerRight {
		t.Errorf("DefaultScaleBar placement = %s/%s, expected zoom/right", sb.Target, sb.Corner)
	}
	if sb.Style != ScaleBarEnds || !sb.ShowText {
		t.Error("DefaultScaleBar should be labeled with end ticks")
	}

	ann := DefaultAnnotation()
	if ann.Kind != AnnotationArrow || ann.Direction != ArrowUp {
		t.Errorf("DefaultAnnotation = %s/%s, expected arrow/up", ann.Kind, ann.Direction)
	}

	wm := DefaultWatermark()
	if wm.Anchor != AnchorBottomRight || wm.Opacity != 128 {
		t.Errorf("DefaultWatermark = %s/%d, expected bottom-right/128", wm.Anchor, wm.Opacity)
	}
}
