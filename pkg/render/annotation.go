package render

import (
	"image"
	"image/color"

	"github.com/LeoMengTCM/Leo-ROI-Zoom-Tool/pkg/types"
)

// drawAnnotation renders one marker at pos, already resolved to canvas
// coordinates by Compose. Annotations draw in list order, so later entries
// paint over earlier ones.
func (r *Renderer) drawAnnotation(dst *image.NRGBA, spec types.AnnotationSpec, pos image.Point) {
	switch spec.Kind {
	case types.AnnotationArrow:
		drawArrow(dst, pos, spec.Direction, spec.Size, spec.Thickness, spec.Color)
	case types.AnnotationStar:
		// The asterisk glyph renders small for its point size and its ink
		// sits high in the em box, so it is drawn oversized and nudged to
		// center on pos.
		r.text.Draw(dst, "*", pos.X-spec.Size/2, pos.Y-spec.Size, float64(spec.Size*2), spec.Color)
	case types.AnnotationCircle:
		drawCircleOutline(dst, pos.X, pos.Y, spec.Size, spec.Thickness, spec.Color)
	case types.AnnotationTriangle:
		drawTriangleOutline(dst, pos, spec.Size, spec.Thickness, spec.Color)
	case types.AnnotationText:
		if spec.Text == "" {
			return
		}
		r.text.Draw(dst, spec.Text, pos.X, pos.Y, spec.FontSize, spec.Color)
	}
}

// drawArrow strokes a shaft of the given length starting at pos and pointing
// in the named direction, capped with a filled head at the far end.
func drawArrow(img *image.NRGBA, pos image.Point, dir types.ArrowDirection, size, thickness int, c color.NRGBA) {
	headLen := size / 3
	headHalf := size / 4
	x, y := pos.X, pos.Y

	var end, left, right image.Point
	switch dir {
	case types.ArrowDown:
		end = image.Pt(x, y+size)
		left = image.Pt(x-headHalf, end.Y-headLen)
		right = image.Pt(x+headHalf, end.Y-headLen)
	case types.ArrowLeft:
		end = image.Pt(x-size, y)
		left = image.Pt(end.X+headLen, y-headHalf)
		right = image.Pt(end.X+headLen, y+headHalf)
	case types.ArrowRight:
		end = image.Pt(x+size, y)
		left = image.Pt(end.X-headLen, y-headHalf)
		right = image.Pt(end.X-headLen, y+headHalf)
	default:
		end = image.Pt(x, y-size)
		left = image.Pt(x-headHalf, end.Y+headLen)
		right = image.Pt(x+headHalf, end.Y+headLen)
	}

	drawThickLine(img, float64(x), float64(y), float64(end.X), float64(end.Y), thickness, c)
	fillTriangle(img, end, left, right, c)
}

// drawTriangleOutline strokes the marker triangle: apex above the anchor,
// base corners below it.
func drawTriangleOutline(img *image.NRGBA, pos image.Point, size, thickness int, c color.NRGBA) {
	apex := image.Pt(pos.X, pos.Y-size)
	bl := image.Pt(pos.X-size, pos.Y+size)
	br := image.Pt(pos.X+size, pos.Y+size)

	drawThickLine(img, float64(apex.X), float64(apex.Y), float64(bl.X), float64(bl.Y), thickness, c)
	drawThickLine(img, float64(bl.X), float64(bl.Y), float64(br.X), float64(br.Y), thickness, c)
	drawThickLine(img, float64(br.X), float64(br.Y), float64(apex.X), float64(apex.Y), thickness, c)
}
