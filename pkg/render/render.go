// Package render assembles composite zoom figures: it lays the panorama and
// zoom images onto a shared canvas and draws borders, the located region box,
// guide lines, scale bars, annotations, and an optional watermark.
package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"

	"github.com/LeoMengTCM/Leo-ROI-Zoom-Tool/pkg/fonts"
	"github.com/LeoMengTCM/Leo-ROI-Zoom-Tool/pkg/layout"
	"github.com/LeoMengTCM/Leo-ROI-Zoom-Tool/pkg/types"
)

// TextRenderer is the text capability the renderer depends on. The default
// implementation lives in pkg/fonts; tests and callers with special typeface
// needs can inject their own.
type TextRenderer interface {
	// Measure returns the pixel width and height of text at the given size.
	Measure(text string, size float64) (int, int)
	// Draw renders text with the top-left corner of its box at (x, y).
	Draw(dst draw.Image, text string, x, y int, size float64, c color.Color)
}

// Renderer draws composite figures. It holds no mutable state beyond the
// text renderer's face cache; create one per goroutine for concurrent use.
type Renderer struct {
	text TextRenderer
}

// New returns a Renderer using the embedded default typeface.
func New() *Renderer {
	return &Renderer{text: fonts.New()}
}

// NewWithText returns a Renderer drawing text through the given implementation.
func NewWithText(text TextRenderer) *Renderer {
	return &Renderer{text: text}
}

// Compose renders the composite figure for an already-located match. The
// returned metadata carries the offset-adjusted region box and the placement
// of both images, which is everything needed to map canvas coordinates back
// into image coordinates. Neither input image is mutated.
//
// Options are validated up front; on a ValidationError no canvas is produced.
func (r *Renderer) Compose(panorama, zoom image.Image, match types.MatchResult, opts Options) (*types.CompositeResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	// Manual correction supplied by the caller.
	match.X += opts.ROIOffset.X
	match.Y += opts.ROIOffset.Y

	var zoomImg image.Image = zoom
	if opts.ZoomScale != 1.0 {
		zb := zoom.Bounds()
		zoomImg = imaging.Resize(zoom,
			int(float64(zb.Dx())*opts.ZoomScale),
			int(float64(zb.Dy())*opts.ZoomScale),
			imaging.Lanczos)
	}

	pb := panorama.Bounds()
	panoW, panoH := pb.Dx(), pb.Dy()
	zoomW := zoomImg.Bounds().Dx()
	zoomH := zoomImg.Bounds().Dy()

	margin := layout.Margin(opts.BoxThickness, opts.ZoomBoxThickness)
	l := layout.Compute(panoW, panoH, zoomW, zoomH, opts.Direction, opts.Padding, margin)

	canvas := imaging.New(l.CanvasW, l.CanvasH, color.NRGBA{255, 255, 255, 255})
	canvas = imaging.Paste(canvas, panorama, l.PanoPos)
	canvas = imaging.Paste(canvas, zoomImg, l.ZoomPos)

	// Both image frames share the zoom border style; the located region box
	// has its own.
	panoBox := boxCorners(l.PanoPos, panoW, panoH)
	roiBox := boxCorners(l.PanoPos.Add(image.Pt(match.X, match.Y)), match.W, match.H)
	zoomBox := boxCorners(l.ZoomPos, zoomW, zoomH)

	drawNestedRect(canvas, panoBox.Min.X, panoBox.Min.Y, panoBox.Max.X, panoBox.Max.Y, opts.ZoomBoxThickness, opts.ZoomBoxColor)
	drawNestedRect(canvas, roiBox.Min.X, roiBox.Min.Y, roiBox.Max.X, roiBox.Max.Y, opts.BoxThickness, opts.BoxColor)
	drawNestedRect(canvas, zoomBox.Min.X, zoomBox.Min.Y, zoomBox.Max.X, zoomBox.Max.Y, opts.ZoomBoxThickness, opts.ZoomBoxColor)

	for _, g := range guideLines(opts.Direction, roiBox, zoomBox) {
		r.drawGuideLine(canvas, g[0], g[1], opts)
	}

	panoRect := l.PanoRect(panoW, panoH)
	zoomRect := l.ZoomRect(zoomW, zoomH)
	for _, sb := range opts.ScaleBars {
		target := zoomRect
		if sb.Target == types.TargetPanorama {
			target = panoRect
		}
		r.drawScaleBar(canvas, sb, target)
	}

	for _, ann := range opts.Annotations {
		anchor := l.ZoomPos
		if ann.Target == types.TargetPanorama {
			anchor = l.PanoPos
		}
		r.drawAnnotation(canvas, ann, anchor.Add(ann.Position))
	}

	if opts.Watermark != nil {
		canvas = r.applyWatermark(canvas, *opts.Watermark)
	}

	meta := types.Metadata{
		ROIX:          match.X,
		ROIY:          match.Y,
		ROIW:          match.W,
		ROIH:          match.H,
		Confidence:    match.Confidence,
		Scale:         match.Scale,
		PanoPos:       l.PanoPos,
		ZoomPos:       l.ZoomPos,
		LowConfidence: match.Confidence < opts.MinConfidence,
	}
	return &types.CompositeResult{Canvas: canvas, Meta: meta}, nil
}

// drawGuideLine strokes one guide in the configured style.
func (r *Renderer) drawGuideLine(dst *image.NRGBA, from, to image.Point, opts Options) {
	if opts.LineStyle == types.LineDashed {
		drawDashedLine(dst, float64(from.X), float64(from.Y), float64(to.X), float64(to.Y),
			opts.LineThickness, opts.LineColor, opts.DashLength, opts.GapLength)
		return
	}
	drawThickLine(dst, float64(from.X), float64(from.Y), float64(to.X), float64(to.Y),
		opts.LineThickness, opts.LineColor)
}

// boxCorners returns the border corners for an image pasted at pos. Max is
// pos+(w, h) and both corners are drawn inclusively, so the outline hugs the
// pasted pixels on all four sides.
func boxCorners(pos image.Point, w, h int) image.Rectangle {
	return image.Rectangle{Min: pos, Max: pos.Add(image.Pt(w, h))}
}

// guideLines returns the two corner pairs connecting the located box to the
// zoom border. The pairing follows the placement direction so the lines
// never cross the zoom image.
func guideLines(dir types.Direction, roi, zoom image.Rectangle) [2][2]image.Point {
	switch dir {
	case types.DirectionLeft:
		return [2][2]image.Point{
			{image.Pt(roi.Min.X, roi.Min.Y), image.Pt(zoom.Max.X, zoom.Min.Y)},
			{image.Pt(roi.Min.X, roi.Max.Y), image.Pt(zoom.Max.X, zoom.Max.Y)},
		}
	case types.DirectionBottom:
		return [2][2]image.Point{
			{image.Pt(roi.Min.X, roi.Max.Y), image.Pt(zoom.Min.X, zoom.Min.Y)},
			{image.Pt(roi.Max.X, roi.Max.Y), image.Pt(zoom.Max.X, zoom.Min.Y)},
		}
	case types.DirectionTop:
		return [2][2]image.Point{
			{image.Pt(roi.Min.X, roi.Min.Y), image.Pt(zoom.Min.X, zoom.Max.Y)},
			{image.Pt(roi.Max.X, roi.Min.Y), image.Pt(zoom.Max.X, zoom.Max.Y)},
		}
	default:
		return [2][2]image.Point{
			{image.Pt(roi.Max.X, roi.Min.Y), image.Pt(zoom.Min.X, zoom.Min.Y)},
			{image.Pt(roi.Max.X, roi.Max.Y), image.Pt(zoom.Min.X, zoom.Max.Y)},
		}
	}
}
