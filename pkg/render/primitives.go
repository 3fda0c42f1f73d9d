package render

import (
	"image"
	"image/color"
	"math"
)

// setPixel writes one pixel, ignoring coordinates outside the canvas.
func setPixel(img *image.NRGBA, x, y int, c color.NRGBA) {
	b := img.Bounds()
	if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y {
		return
	}
	i := (y-b.Min.Y)*img.Stride + (x-b.Min.X)*4
	img.Pix[i+0] = c.R
	img.Pix[i+1] = c.G
	img.Pix[i+2] = c.B
	img.Pix[i+3] = c.A
}

// drawHLine fills the inclusive span [x0, x1] on row y, clipped to the canvas.
func drawHLine(img *image.NRGBA, y, x0, x1 int, c color.NRGBA) {
	b := img.Bounds()
	if y < b.Min.Y || y >= b.Max.Y {
		return
	}
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if x1 < b.Min.X || x0 >= b.Max.X {
		return
	}
	if x0 < b.Min.X {
		x0 = b.Min.X
	}
	if x1 >= b.Max.X {
		x1 = b.Max.X - 1
	}
	i := (y-b.Min.Y)*img.Stride + (x0-b.Min.X)*4
	for x := x0; x <= x1; x++ {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
		i += 4
	}
}

// drawVLine fills the inclusive span [y0, y1] on column x, clipped to the canvas.
func drawVLine(img *image.NRGBA, x, y0, y1 int, c color.NRGBA) {
	b := img.Bounds()
	if x < b.Min.X || x >= b.Max.X {
		return
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	if y1 < b.Min.Y || y0 >= b.Max.Y {
		return
	}
	if y0 < b.Min.Y {
		y0 = b.Min.Y
	}
	if y1 >= b.Max.Y {
		y1 = b.Max.Y - 1
	}
	i := (y0-b.Min.Y)*img.Stride + (x-b.Min.X)*4
	for y := y0; y <= y1; y++ {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
		i += img.Stride
	}
}

// drawRectOutline strokes the 1-px rectangle with inclusive corners
// (x1, y1) and (x2, y2).
func drawRectOutline(img *image.NRGBA, x1, y1, x2, y2 int, c color.NRGBA) {
	drawHLine(img, y1, x1, x2, c)
	drawHLine(img, y2, x1, x2, c)
	drawVLine(img, x1, y1, y2, c)
	drawVLine(img, x2, y1, y2, c)
}

// drawNestedRect draws a border of the given thickness as concentric 1-px
// outlines, the i-th pushed outward by i pixels. The innermost ring sits on
// the given corners, so thickness never eats into the framed content.
func drawNestedRect(img *image.NRGBA, x1, y1, x2, y2, thickness int, c color.NRGBA) {
	for i := 0; i < thickness; i++ {
		drawRectOutline(img, x1-i, y1-i, x2+i, y2+i, c)
	}
}

// drawHBar fills a horizontal bar over [x0, x1] whose stroke width is
// centered on row y.
func drawHBar(img *image.NRGBA, x0, x1, y, thickness int, c color.NRGBA) {
	top := y - thickness/2
	for i := 0; i < thickness; i++ {
		drawHLine(img, top+i, x0, x1, c)
	}
}

// drawVBar fills a vertical bar over [y0, y1] whose stroke width is centered
// on column x.
func drawVBar(img *image.NRGBA, x, y0, y1, thickness int, c color.NRGBA) {
	left := x - thickness/2
	for i := 0; i < thickness; i++ {
		drawVLine(img, left+i, y0, y1, c)
	}
}

// drawLine draws a 1-px line between two points (Bresenham).
func drawLine(img *image.NRGBA, x1, y1, x2, y2 int, c color.NRGBA) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy

	for {
		setPixel(img, x1, y1, c)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// drawThickLine sweeps 1-px lines across the perpendicular of the segment to
// reach the requested stroke width. Zero-length segments are a no-op.
func drawThickLine(img *image.NRGBA, x1, y1, x2, y2 float64, thickness int, c color.NRGBA) {
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	if thickness <= 1 {
		drawLine(img, int(x1), int(y1), int(x2), int(y2), c)
		return
	}

	px := -dy / length
	py := dx / length
	half := float64(thickness) / 2
	for t := -half; t <= half; t += 1.0 {
		drawLine(img,
			int(x1+px*t), int(y1+py*t),
			int(x2+px*t), int(y2+py*t), c)
	}
}

// drawDashedLine marches from (x1, y1) toward (x2, y2) alternating drawn
// dashes and gaps. The final dash is clipped at the endpoint, but the march
// still advances by the full dash length, so the pattern phase is identical
// for every line of the same length.
func drawDashedLine(img *image.NRGBA, x1, y1, x2, y2 float64, thickness int, c color.NRGBA, dashLength, gapLength int) {
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	ux := dx / length
	uy := dy / length

	pos := 0.0
	drawing := true
	for pos < length {
		if drawing {
			seg := math.Min(float64(dashLength), length-pos)
			drawThickLine(img,
				x1+ux*pos, y1+uy*pos,
				x1+ux*(pos+seg), y1+uy*(pos+seg),
				thickness, c)
			pos += float64(dashLength)
		} else {
			pos += float64(gapLength)
		}
		drawing = !drawing
	}
}

// drawCircle rasterizes a 1-px circle outline (midpoint algorithm).
func drawCircle(img *image.NRGBA, cx, cy, r int, c color.NRGBA) {
	x, y := r, 0
	err := 0

	for x >= y {
		setPixel(img, cx+x, cy+y, c)
		setPixel(img, cx+y, cy+x, c)
		setPixel(img, cx-y, cy+x, c)
		setPixel(img, cx-x, cy+y, c)
		setPixel(img, cx-x, cy-y, c)
		setPixel(img, cx-y, cy-x, c)
		setPixel(img, cx+y, cy-x, c)
		setPixel(img, cx+x, cy-y, c)

		y++
		err += 1 + 2*y
		if 2*(err-x)+1 > 0 {
			x--
			err += 1 - 2*x
		}
	}
}

// drawCircleOutline strokes a circle whose stroke width grows inward from
// the given radius.
func drawCircleOutline(img *image.NRGBA, cx, cy, r, thickness int, c color.NRGBA) {
	for i := 0; i < thickness; i++ {
		if r-i <= 0 {
			break
		}
		drawCircle(img, cx, cy, r-i, c)
	}
}

// fillTriangle fills a triangle using horizontal scanlines.
func fillTriangle(img *image.NRGBA, p1, p2, p3 image.Point, c color.NRGBA) {
	minY := min(p1.Y, p2.Y, p3.Y)
	maxY := max(p1.Y, p2.Y, p3.Y)

	for y := minY; y <= maxY; y++ {
		var xs []int
		xs = appendEdgeX(xs, y, p1, p2)
		xs = appendEdgeX(xs, y, p2, p3)
		xs = appendEdgeX(xs, y, p3, p1)
		if len(xs) == 0 {
			continue
		}
		lo, hi := xs[0], xs[0]
		for _, x := range xs[1:] {
			if x < lo {
				lo = x
			}
			if x > hi {
				hi = x
			}
		}
		drawHLine(img, y, lo, hi, c)
	}
}

// appendEdgeX appends the x intersection of scanline y with edge a-b, if any.
func appendEdgeX(xs []int, y int, a, b image.Point) []int {
	if a.Y == b.Y {
		if y == a.Y {
			xs = append(xs, a.X, b.X)
		}
		return xs
	}
	if y < min(a.Y, b.Y) || y > max(a.Y, b.Y) {
		return xs
	}
	x := a.X + (y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
	return append(xs, x)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
