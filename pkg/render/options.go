package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/LeoMengTCM/Leo-ROI-Zoom-Tool/pkg/types"
)

// Options is the complete parameter set for one composite figure. Start from
// DefaultOptions and override; the zero value does not validate.
type Options struct {
	// Direction places the zoom image relative to the panorama.
	Direction types.Direction
	// Padding is the gap between the two images along the placement axis.
	Padding int
	// ZoomScale resizes the zoom image for display after matching has run.
	// The located box keeps the dimensions of the matched template.
	ZoomScale float64

	// BoxColor and BoxThickness style the located region box drawn on the
	// panorama.
	BoxColor     color.NRGBA
	BoxThickness int

	// ZoomBoxColor and ZoomBoxThickness style the borders framing both
	// placed images.
	ZoomBoxColor     color.NRGBA
	ZoomBoxThickness int

	// Guide lines connect the located box to the zoom border.
	LineColor     color.NRGBA
	LineThickness int
	LineStyle     types.LineStyle
	DashLength    int
	GapLength     int

	// ROIOffset nudges the located box by a manual correction, in panorama
	// pixels.
	ROIOffset image.Point

	// MinConfidence is the threshold below which the result metadata flags
	// the match as low confidence. The figure is still rendered.
	MinConfidence float64

	ScaleBars   []types.ScaleBarSpec
	Annotations []types.AnnotationSpec
	Watermark   *types.WatermarkSpec
}

// DefaultOptions returns the stock figure style: zoom placed to the right,
// red boxes and solid red guide lines.
func DefaultOptions() Options {
	return Options{
		Direction:        types.DirectionRight,
		Padding:          50,
		ZoomScale:        1.0,
		BoxColor:         color.NRGBA{255, 0, 0, 255},
		BoxThickness:     3,
		ZoomBoxColor:     color.NRGBA{255, 0, 0, 255},
		ZoomBoxThickness: 3,
		LineColor:        color.NRGBA{255, 0, 0, 255},
		LineThickness:    2,
		LineStyle:        types.LineSolid,
		DashLength:       15,
		GapLength:        10,
		MinConfidence:    0.5,
	}
}

// ValidationError reports a structurally invalid option field. When Compose
// returns one, nothing has been drawn.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate checks the option set before any drawing happens. Geometric
// overflow is not an error: elements positioned outside the canvas are
// clipped at draw time.
func (o Options) Validate() error {
	if !o.Direction.Valid() {
		return &ValidationError{Field: "direction", Reason: fmt.Sprintf("unknown value %q", string(o.Direction))}
	}
	if o.Padding < 0 {
		return &ValidationError{Field: "padding", Reason: "must not be negative"}
	}
	if o.ZoomScale <= 0 {
		return &ValidationError{Field: "zoom_scale", Reason: "must be positive"}
	}
	if o.BoxThickness < 1 {
		return &ValidationError{Field: "box_thickness", Reason: "must be at least 1"}
	}
	if o.ZoomBoxThickness < 1 {
		return &ValidationError{Field: "zoom_box_thickness", Reason: "must be at least 1"}
	}
	if o.LineThickness < 1 {
		return &ValidationError{Field: "line_thickness", Reason: "must be at least 1"}
	}
	if !o.LineStyle.Valid() {
		return &ValidationError{Field: "line_style", Reason: fmt.Sprintf("unknown value %q", string(o.LineStyle))}
	}
	if o.LineStyle == types.LineDashed && (o.DashLength < 1 || o.GapLength < 1) {
		return &ValidationError{Field: "dash_pattern", Reason: "dash and gap lengths must be at least 1"}
	}

	for i, sb := range o.ScaleBars {
		if !sb.Target.Valid() {
			return &ValidationError{Field: fmt.Sprintf("scale_bars[%d].target", i), Reason: fmt.Sprintf("unknown value %q", string(sb.Target))}
		}
		if !sb.Corner.Valid() {
			return &ValidationError{Field: fmt.Sprintf("scale_bars[%d].corner", i), Reason: fmt.Sprintf("unknown value %q", string(sb.Corner))}
		}
		if !sb.Style.Valid() {
			return &ValidationError{Field: fmt.Sprintf("scale_bars[%d].style", i), Reason: fmt.Sprintf("unknown value %q", string(sb.Style))}
		}
		if sb.LengthPixels() <= 0 {
			return &ValidationError{Field: fmt.Sprintf("scale_bars[%d].length", i), Reason: "computed pixel length must be positive"}
		}
		if sb.Thickness < 1 {
			return &ValidationError{Field: fmt.Sprintf("scale_bars[%d].thickness", i), Reason: "must be at least 1"}
		}
	}

	for i, ann := range o.Annotations {
		if !ann.Kind.Valid() {
			return &ValidationError{Field: fmt.Sprintf("annotations[%d].kind", i), Reason: fmt.Sprintf("unknown value %q", string(ann.Kind))}
		}
		if !ann.Target.Valid() {
			return &ValidationError{Field: fmt.Sprintf("annotations[%d].target", i), Reason: fmt.Sprintf("unknown value %q", string(ann.Target))}
		}
		if ann.Kind == types.AnnotationArrow && !ann.Direction.Valid() {
			return &ValidationError{Field: fmt.Sprintf("annotations[%d].direction", i), Reason: fmt.Sprintf("unknown value %q", string(ann.Direction))}
		}
		if ann.Kind != types.AnnotationText && ann.Size < 1 {
			return &ValidationError{Field: fmt.Sprintf("annotations[%d].size", i), Reason: "must be at least 1"}
		}
	}

	if o.Watermark != nil {
		if o.Watermark.Text == "" {
			return &ValidationError{Field: "watermark.text", Reason: "must not be empty"}
		}
		if !o.Watermark.Anchor.Valid() {
			return &ValidationError{Field: "watermark.anchor", Reason: fmt.Sprintf("unknown value %q", string(o.Watermark.Anchor))}
		}
	}

	return nil
}
