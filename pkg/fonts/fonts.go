// Package fonts provides the text measurement and rendering capability used
// by the figure renderer. The default typeface is the embedded Go Regular;
// callers can load their own TTF/OTF file instead. When no scalable face can
// be built the renderer falls back to a fixed bitmap face, so drawing text
// never fails outright.
package fonts

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Renderer draws and measures text with a single typeface, building and
// caching one font.Face per requested size. The face cache is not
// synchronized; callers running concurrent pipelines should construct one
// Renderer per worker.
type Renderer struct {
	source *opentype.Font
	faces  map[float64]font.Face
}

// New returns a renderer backed by the embedded Go Regular typeface.
func New() *Renderer {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		// Embedded asset; parsing cannot realistically fail, but the bitmap
		// fallback keeps the renderer usable regardless.
		return &Renderer{faces: make(map[float64]font.Face)}
	}
	return &Renderer{source: f, faces: make(map[float64]font.Face)}
}

// NewFromFile returns a renderer backed by a TTF/OTF file.
func NewFromFile(path string) (*Renderer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file: %w", err)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", path, err)
	}
	return &Renderer{source: f, faces: make(map[float64]font.Face)}, nil
}

func (r *Renderer) face(size float64) font.Face {
	if size <= 0 {
		size = 12
	}
	if f, ok := r.faces[size]; ok {
		return f
	}

	var f font.Face = basicfont.Face7x13
	if r.source != nil {
		of, err := opentype.NewFace(r.source, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err == nil {
			f = of
		}
	}
	r.faces[size] = f
	return f
}

// Measure returns the pixel width and height of text rendered at size.
func (r *Renderer) Measure(text string, size float64) (int, int) {
	f := r.face(size)
	w := font.MeasureString(f, text).Ceil()
	m := f.Metrics()
	return w, (m.Ascent + m.Descent).Ceil()
}

// Draw renders text onto dst with the top-left corner of its box at (x, y).
func (r *Renderer) Draw(dst draw.Image, text string, x, y int, size float64, c color.Color) {
	if text == "" {
		return
	}
	f := r.face(size)
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: f,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y) + f.Metrics().Ascent},
	}
	d.DrawString(text)
}
