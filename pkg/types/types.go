package types

import (
	"fmt"
	"image"
	"image/color"
	"strings"
)

// Target selects which of the two placed images an element is positioned against.
type Target string

const (
	TargetPanorama Target = "panorama"
	TargetZoom     Target = "zoom"
)

// Valid reports whether the target names one of the two placed images.
func (t Target) Valid() bool {
	return t == TargetPanorama || t == TargetZoom
}

// ParseTarget parses a target name, case-insensitively.
func ParseTarget(s string) (Target, error) {
	t := Target(strings.ToLower(s))
	if !t.Valid() {
		return "", fmt.Errorf("unknown target %q", s)
	}
	return t, nil
}

// Direction places the zoom image relative to the panorama on the canvas.
type Direction string

const (
	DirectionRight  Direction = "right"
	DirectionLeft   Direction = "left"
	DirectionBottom Direction = "bottom"
	DirectionTop    Direction = "top"
)

// Valid reports whether the direction is one of the four supported placements.
func (d Direction) Valid() bool {
	switch d {
	case DirectionRight, DirectionLeft, DirectionBottom, DirectionTop:
		return true
	}
	return false
}

// ParseDirection parses a placement direction, case-insensitively.
func ParseDirection(s string) (Direction, error) {
	d := Direction(strings.ToLower(s))
	if !d.Valid() {
		return "", fmt.Errorf("unknown direction %q", s)
	}
	return d, nil
}

// LineStyle selects how guide lines are stroked.
type LineStyle string

const (
	LineSolid  LineStyle = "solid"
	LineDashed LineStyle = "dashed"
)

// Valid reports whether the line style is supported.
func (l LineStyle) Valid() bool {
	return l == LineSolid || l == LineDashed
}

// ParseLineStyle parses a guide-line style, case-insensitively.
func ParseLineStyle(s string) (LineStyle, error) {
	l := LineStyle(strings.ToLower(s))
	if !l.Valid() {
		return "", fmt.Errorf("unknown line style %q", s)
	}
	return l, nil
}

// Corner anchors a scale bar to the left or right edge of its target image.
type Corner string

const (
	CornerLeft  Corner = "left"
	CornerRight Corner = "right"
)

// Valid reports whether the corner is supported.
func (c Corner) Valid() bool {
	return c == CornerLeft || c == CornerRight
}

// ParseCorner parses a scale-bar corner, case-insensitively.
func ParseCorner(s string) (Corner, error) {
	c := Corner(strings.ToLower(s))
	if !c.Valid() {
		return "", fmt.Errorf("unknown corner %q", s)
	}
	return c, nil
}

// ScaleBarStyle selects the tick decoration of a scale bar.
type ScaleBarStyle string

const (
	ScaleBarLine  ScaleBarStyle = "line"
	ScaleBarEnds  ScaleBarStyle = "ends"
	ScaleBarTicks ScaleBarStyle = "ticks"
)

// Valid reports whether the scale-bar style is supported.
func (s ScaleBarStyle) Valid() bool {
	switch s {
	case ScaleBarLine, ScaleBarEnds, ScaleBarTicks:
		return true
	}
	return false
}

// ParseScaleBarStyle parses a scale-bar style, case-insensitively.
func ParseScaleBarStyle(s string) (ScaleBarStyle, error) {
	st := ScaleBarStyle(strings.ToLower(s))
	if !st.Valid() {
		return "", fmt.Errorf("unknown scale bar style %q", s)
	}
	return st, nil
}

// AnnotationKind selects the marker shape drawn by an annotation.
type AnnotationKind string

const (
	AnnotationArrow    AnnotationKind = "arrow"
	AnnotationStar     AnnotationKind = "star"
	AnnotationCircle   AnnotationKind = "circle"
	AnnotationTriangle AnnotationKind = "triangle"
	AnnotationText     AnnotationKind = "text"
)

// Valid reports whether the annotation kind is supported.
func (k AnnotationKind) Valid() bool {
	switch k {
	case AnnotationArrow, AnnotationStar, AnnotationCircle, AnnotationTriangle, AnnotationText:
		return true
	}
	return false
}

// ParseAnnotationKind parses an annotation kind, case-insensitively.
func ParseAnnotationKind(s string) (AnnotationKind, error) {
	k := AnnotationKind(strings.ToLower(s))
	if !k.Valid() {
		return "", fmt.Errorf("unknown annotation kind %q", s)
	}
	return k, nil
}

// ArrowDirection orients arrow annotations.
type ArrowDirection string

const (
	ArrowUp    ArrowDirection = "up"
	ArrowDown  ArrowDirection = "down"
	ArrowLeft  ArrowDirection = "left"
	ArrowRight ArrowDirection = "right"
)

// Valid reports whether the arrow direction is supported.
func (d ArrowDirection) Valid() bool {
	switch d {
	case ArrowUp, ArrowDown, ArrowLeft, ArrowRight:
		return true
	}
	return false
}

// ParseArrowDirection parses an arrow direction, case-insensitively.
func ParseArrowDirection(s string) (ArrowDirection, error) {
	d := ArrowDirection(strings.ToLower(s))
	if !d.Valid() {
		return "", fmt.Errorf("unknown arrow direction %q", s)
	}
	return d, nil
}

// WatermarkAnchor positions the watermark text on the canvas.
type WatermarkAnchor string

const (
	AnchorBottomRight WatermarkAnchor = "bottom-right"
	AnchorBottomLeft  WatermarkAnchor = "bottom-left"
	AnchorTopRight    WatermarkAnchor = "top-right"
	AnchorTopLeft     WatermarkAnchor = "top-left"
	AnchorCenter      WatermarkAnchor = "center"
)

// Valid reports whether the watermark anchor is supported.
func (a WatermarkAnchor) Valid() bool {
	switch a {
	case AnchorBottomRight, AnchorBottomLeft, AnchorTopRight, AnchorTopLeft, AnchorCenter:
		return true
	}
	return false
}

// ParseWatermarkAnchor parses a watermark anchor, case-insensitively.
func ParseWatermarkAnchor(s string) (WatermarkAnchor, error) {
	a := WatermarkAnchor(strings.ToLower(s))
	if !a.Valid() {
		return "", fmt.Errorf("unknown watermark anchor %q", s)
	}
	return a, nil
}

// MatchResult is the ROI box found by template matching, in panorama pixel
// coordinates. Confidence is the normalized correlation peak in [-1, 1];
// Scale is the template scale that produced it.
type MatchResult struct {
	X          int     `json:"x"`
	Y          int     `json:"y"`
	W          int     `json:"w"`
	H          int     `json:"h"`
	Confidence float64 `json:"confidence"`
	Scale      float64 `json:"scale"`
}

// Bounds returns the matched region as a rectangle in panorama coordinates.
func (m MatchResult) Bounds() image.Rectangle {
	return image.Rect(m.X, m.Y, m.X+m.W, m.Y+m.H)
}

// ScaleBarSpec describes one calibrated scale bar.
type ScaleBarSpec struct {
	Target      Target
	Corner      Corner
	OffsetX     int
	OffsetY     int
	LengthUM    float64
	PixelsPerUM float64
	Color       color.NRGBA
	Thickness   int
	FontSize    float64
	Style       ScaleBarStyle
	TextGap     int
	ShowText    bool
}

// LengthPixels returns the bar length rounded to whole pixels.
func (s ScaleBarSpec) LengthPixels() int {
	return int(s.LengthUM*s.PixelsPerUM + 0.5)
}

// Label returns the unit-aware text for the bar: millimetres with one
// decimal at or above 1000 um, whole micrometres below.
func (s ScaleBarSpec) Label() string {
	if s.LengthUM >= 1000 {
		return fmt.Sprintf("%.1f mm", s.LengthUM/1000)
	}
	return fmt.Sprintf("%.0f μm", s.LengthUM)
}

// DefaultScaleBar returns a scale bar with the stock settings: 100 um at the
// zoom image's bottom-right corner, black, end-tick style, labeled.
func DefaultScaleBar() ScaleBarSpec {
	return ScaleBarSpec{
		Target:      TargetZoom,
		Corner:      CornerRight,
		OffsetX:     30,
		OffsetY:     30,
		LengthUM:    100,
		PixelsPerUM: 1.0,
		Color:       color.NRGBA{0, 0, 0, 255},
		Thickness:   5,
		FontSize:    24,
		Style:       ScaleBarEnds,
		TextGap:     5,
		ShowText:    true,
	}
}

// AnnotationSpec describes one point marker. Position is relative to the
// top-left corner of the target image as placed on the canvas.
type AnnotationSpec struct {
	Kind      AnnotationKind
	Target    Target
	Position  image.Point
	Color     color.NRGBA
	Size      int
	Thickness int
	Text      string
	FontSize  float64
	Direction ArrowDirection
}

// DefaultAnnotation returns an annotation with the stock settings: a red
// upward arrow on the zoom image.
func DefaultAnnotation() AnnotationSpec {
	return AnnotationSpec{
		Kind:      AnnotationArrow,
		Target:    TargetZoom,
		Color:     color.NRGBA{255, 0, 0, 255},
		Size:      20,
		Thickness: 3,
		FontSize:  16,
		Direction: ArrowUp,
	}
}

// WatermarkSpec describes the translucent text label composited over the
// finished canvas.
type WatermarkSpec struct {
	Text     string
	Anchor   WatermarkAnchor
	Opacity  uint8
	FontSize float64
	Color    color.NRGBA
}

// DefaultWatermark returns a watermark with the stock settings: gray,
// half-opaque, bottom-right. Text is left for the caller.
func DefaultWatermark() WatermarkSpec {
	return WatermarkSpec{
		Anchor:   AnchorBottomRight,
		Opacity:  128,
		FontSize: 24,
		Color:    color.NRGBA{128, 128, 128, 255},
	}
}

// Metadata is the record returned alongside the canvas. It carries the
// offset-adjusted ROI box, the match quality, and the anchor of each image
// on the canvas, which presentation layers use to translate canvas clicks
// back into image-relative coordinates.
type Metadata struct {
	ROIX          int         `json:"roi_x"`
	ROIY          int         `json:"roi_y"`
	ROIW          int         `json:"roi_w"`
	ROIH          int         `json:"roi_h"`
	Confidence    float64     `json:"confidence"`
	Scale         float64     `json:"scale"`
	PanoPos       image.Point `json:"pano_pos"`
	ZoomPos       image.Point `json:"zoom_pos"`
	LowConfidence bool        `json:"low_confidence"`
}

// ROIBox returns the matched region as a rectangle in panorama coordinates.
func (m Metadata) ROIBox() image.Rectangle {
	return image.Rect(m.ROIX, m.ROIY, m.ROIX+m.ROIW, m.ROIY+m.ROIH)
}

// CanvasToPanorama translates a canvas point into panorama pixel coordinates.
func (m Metadata) CanvasToPanorama(p image.Point) image.Point {
	return p.Sub(m.PanoPos)
}

// CanvasToZoom translates a canvas point into coordinates relative to the
// zoom image as placed (post display scaling).
func (m Metadata) CanvasToZoom(p image.Point) image.Point {
	return p.Sub(m.ZoomPos)
}

// CompositeResult is the rendered figure plus its metadata record.
type CompositeResult struct {
	Canvas *image.NRGBA
	Meta   Metadata
}
