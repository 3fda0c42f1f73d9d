package render

import (
	"image"

	"github.com/LeoMengTCM/Leo-ROI-Zoom-Tool/pkg/types"
)

// drawScaleBar renders one calibrated bar onto the canvas. The baseline sits
// OffsetY above the target's bottom edge and OffsetX in from the chosen side;
// target is the placement rectangle of the panorama or zoom image. Bars that
// do not fit are clipped at the canvas edge, not repositioned.
func (r *Renderer) drawScaleBar(dst *image.NRGBA, spec types.ScaleBarSpec, target image.Rectangle) {
	lengthPixels := spec.LengthPixels()

	var x int
	if spec.Corner == types.CornerLeft {
		x = target.Min.X + spec.OffsetX
	} else {
		x = target.Max.X - lengthPixels - spec.OffsetX
	}
	y := target.Max.Y - spec.OffsetY

	drawHBar(dst, x, x+lengthPixels, y, spec.Thickness, spec.Color)

	endHeight := spec.Thickness * 3
	switch spec.Style {
	case types.ScaleBarEnds:
		drawVBar(dst, x, y-endHeight, y+endHeight, spec.Thickness, spec.Color)
		drawVBar(dst, x+lengthPixels, y-endHeight, y+endHeight, spec.Thickness, spec.Color)
	case types.ScaleBarTicks:
		drawVBar(dst, x, y-endHeight, y+endHeight, spec.Thickness, spec.Color)
		drawVBar(dst, x+lengthPixels, y-endHeight, y+endHeight, spec.Thickness, spec.Color)
		mid := endHeight / 2
		drawVBar(dst, x+lengthPixels/2, y-mid, y+mid, max(1, spec.Thickness/2), spec.Color)
	}

	if !spec.ShowText {
		return
	}
	label := spec.Label()
	textW, textH := r.text.Measure(label, spec.FontSize)
	textX := x + (lengthPixels-textW)/2
	textY := y - textH - spec.TextGap
	if spec.Style != types.ScaleBarLine {
		textY = y - endHeight - textH - spec.TextGap
	}
	r.text.Draw(dst, label, textX, textY, spec.FontSize, spec.Color)
}
