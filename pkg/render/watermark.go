package render

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/LeoMengTCM/Leo-ROI-Zoom-Tool/pkg/types"
)

// watermarkMargin is the fixed inset between the text box and the canvas edge.
const watermarkMargin = 20

// applyWatermark draws the label onto a transparent layer and composites it
// over the canvas, so opacity applies uniformly to the whole text box.
func (r *Renderer) applyWatermark(canvas *image.NRGBA, spec types.WatermarkSpec) *image.NRGBA {
	textW, textH := r.text.Measure(spec.Text, spec.FontSize)
	w := canvas.Bounds().Dx()
	h := canvas.Bounds().Dy()

	var x, y int
	switch spec.Anchor {
	case types.AnchorBottomLeft:
		x = watermarkMargin
		y = h - textH - watermarkMargin
	case types.AnchorTopRight:
		x = w - textW - watermarkMargin
		y = watermarkMargin
	case types.AnchorTopLeft:
		x = watermarkMargin
		y = watermarkMargin
	case types.AnchorCenter:
		x = (w - textW) / 2
		y = (h - textH) / 2
	default:
		x = w - textW - watermarkMargin
		y = h - textH - watermarkMargin
	}

	layer := image.NewNRGBA(canvas.Bounds())
	c := spec.Color
	c.A = spec.Opacity
	r.text.Draw(layer, spec.Text, x, y, spec.FontSize, c)

	return imaging.Overlay(canvas, layer, image.Pt(0, 0), 1.0)
}
