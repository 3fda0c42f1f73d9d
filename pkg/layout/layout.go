// Package layout computes the placement of the panorama and zoom images on
// the output canvas. All arithmetic is integral with floor division for
// centering, so identical inputs always produce identical pixel offsets.
package layout

import (
	"image"

	"github.com/LeoMengTCM/Leo-ROI-Zoom-Tool/pkg/types"
)

// Layout is the computed canvas geometry: overall size plus the top-left
// anchor of each image. Both images sit inside the margin on every side and
// never overlap.
type Layout struct {
	CanvasW int
	CanvasH int
	PanoPos image.Point
	ZoomPos image.Point
}

// Margin returns the border clearance derived from the two box thicknesses.
func Margin(boxThickness, zoomBoxThickness int) int {
	return max(boxThickness, zoomBoxThickness) + 5
}

// Compute lays the two images edge-to-adjacent-edge along the primary axis
// with exactly padding pixels of gap, centered along the cross axis within
// the larger of the two cross-axis extents.
func Compute(panoW, panoH, zoomW, zoomH int, dir types.Direction, padding, margin int) Layout {
	switch dir {
	case types.DirectionLeft:
		maxH := max(panoH, zoomH)
		return Layout{
			CanvasW: margin + zoomW + padding + panoW + margin,
			CanvasH: margin + maxH + margin,
			PanoPos: image.Pt(margin+zoomW+padding, margin+(maxH-panoH)/2),
			ZoomPos: image.Pt(margin, margin+(maxH-zoomH)/2),
		}
	case types.DirectionBottom:
		maxW := max(panoW, zoomW)
		return Layout{
			CanvasW: margin + maxW + margin,
			CanvasH: margin + panoH + padding + zoomH + margin,
			PanoPos: image.Pt(margin+(maxW-panoW)/2, margin),
			ZoomPos: image.Pt(margin+(maxW-zoomW)/2, margin+panoH+padding),
		}
	case types.DirectionTop:
		maxW := max(panoW, zoomW)
		return Layout{
			CanvasW: margin + maxW + margin,
			CanvasH: margin + zoomH + padding + panoH + margin,
			PanoPos: image.Pt(margin+(maxW-panoW)/2, margin+zoomH+padding),
			ZoomPos: image.Pt(margin+(maxW-zoomW)/2, margin),
		}
	default: // right
		maxH := max(panoH, zoomH)
		return Layout{
			CanvasW: margin + panoW + padding + zoomW + margin,
			CanvasH: margin + maxH + margin,
			PanoPos: image.Pt(margin, margin+(maxH-panoH)/2),
			ZoomPos: image.Pt(margin+panoW+padding, margin+(maxH-zoomH)/2),
		}
	}
}

// PanoRect returns the panorama's placement rectangle on the canvas.
func (l Layout) PanoRect(panoW, panoH int) image.Rectangle {
	return image.Rectangle{Min: l.PanoPos, Max: l.PanoPos.Add(image.Pt(panoW, panoH))}
}

// ZoomRect returns the zoom image's placement rectangle on the canvas.
func (l Layout) ZoomRect(zoomW, zoomH int) image.Rectangle {
	return image.Rectangle{Min: l.ZoomPos, Max: l.ZoomPos.Add(image.Pt(zoomW, zoomH))}
}
