// Package roizoom locates a high-magnification crop inside its
// lower-magnification source image and renders a publication-style composite
// figure from the pair.
//
// The crop ("zoom") is found inside the source ("panorama") by multi-scale
// template matching, so neither manual alignment nor acquisition metadata is
// needed. The composite places both images side by side, frames them, boxes
// the located region, and connects box and zoom image with guide lines.
// Calibrated scale bars, point annotations, and a watermark can be layered on
// top.
//
// Basic usage:
//
//	package main
//
//	import (
//		"fmt"
//		"log"
//
//		roizoom "github.com/LeoMengTCM/Leo-ROI-Zoom-Tool"
//		"github.com/LeoMengTCM/Leo-ROI-Zoom-Tool/pkg/render"
//	)
//
//	func main() {
//		tool := roizoom.New()
//
//		opts := render.DefaultOptions()
//		opts.Direction = "right"
//
//		result, err := tool.CreateZoomFigure("slide.png", "detail.png", opts)
//		if err != nil {
//			log.Fatal(err)
//		}
//		if result.Meta.LowConfidence {
//			fmt.Printf("warning: weak match, confidence %.4f\n", result.Meta.Confidence)
//		}
//
//		if err := tool.SaveImage(result.Canvas, "figure.png", 95, false); err != nil {
//			log.Fatal(err)
//		}
//	}
//
// The package consists of four main components:
//
// 1. Locator (pkg/locator): multi-scale normalized cross-correlation matching
// 2. Layout (pkg/layout): deterministic canvas geometry for the four placements
// 3. Render (pkg/render): borders, guide lines, scale bars, annotations, watermark
// 4. Imgio (pkg/imgio): PNG/JPEG/WebP/TIFF decoding and encoding
//
// Matching runs on luminance and tries a fixed ladder of template scales, so
// it tolerates the zoom image being exported at a different magnification
// than the region it came from. A weak correlation peak never fails the
// pipeline; the result is flagged instead so batch runs can sort out figures
// needing manual review.
package roizoom

import (
	"fmt"
	"image"
	"io"

	"github.com/LeoMengTCM/Leo-ROI-Zoom-Tool/pkg/imgio"
	"github.com/LeoMengTCM/Leo-ROI-Zoom-Tool/pkg/locator"
	"github.com/LeoMengTCM/Leo-ROI-Zoom-Tool/pkg/render"
	"github.com/LeoMengTCM/Leo-ROI-Zoom-Tool/pkg/types"
)

// Version of the roizoom library
const Version = "1.0.0"

// Locator finds the zoom crop inside the panorama. The pure Go matcher from
// pkg/locator is the default; an OpenCV-backed one is available behind the
// gocv build tag.
type Locator interface {
	Locate(panorama, zoom image.Image) (types.MatchResult, error)
}

// Tool provides a high-level interface over locating and rendering
type Tool struct {
	locator  Locator
	renderer *render.Renderer
}

// New creates a new Tool with the default locator and renderer
func New() *Tool {
	return &Tool{
		locator:  locator.New(),
		renderer: render.New(),
	}
}

// NewWithComponents creates a new Tool from caller-supplied components
func NewWithComponents(loc Locator, r *render.Renderer) *Tool {
	return &Tool{
		locator:  loc,
		renderer: r,
	}
}

// LoadImage loads an image from file
func (t *Tool) LoadImage(path string) (image.Image, error) {
	return imgio.Load(path)
}

// LoadImageFromReader loads an image from an io.Reader
func (t *Tool) LoadImageFromReader(reader io.Reader) (image.Image, error) {
	return imgio.LoadFromReader(reader)
}

// SaveImage saves an image to file; the format follows the file extension
func (t *Tool) SaveImage(img image.Image, path string, quality int, lossless bool) error {
	return imgio.Save(img, path, quality, lossless)
}

// SaveImageScaled saves an image resized by factor before encoding
func (t *Tool) SaveImageScaled(img image.Image, path string, quality int, lossless bool, factor float64) error {
	return imgio.SaveScaled(img, path, quality, lossless, factor)
}

// Locate runs template matching only and returns the best match
func (t *Tool) Locate(panorama, zoom image.Image) (types.MatchResult, error) {
	return t.locator.Locate(panorama, zoom)
}

// Compose locates the zoom crop and renders the composite figure from
// in-memory images
func (t *Tool) Compose(panorama, zoom image.Image, opts render.Options) (*types.CompositeResult, error) {
	match, err := t.locator.Locate(panorama, zoom)
	if err != nil {
		return nil, fmt.Errorf("region location failed: %w", err)
	}
	return t.renderer.Compose(panorama, zoom, match, opts)
}

// Render draws the composite figure for an already-located match, skipping
// the search. Useful when the caller cached a match or adjusted one manually.
func (t *Tool) Render(panorama, zoom image.Image, match types.MatchResult, opts render.Options) (*types.CompositeResult, error) {
	return t.renderer.Compose(panorama, zoom, match, opts)
}

// CreateZoomFigure loads both images from disk and renders the composite
func (t *Tool) CreateZoomFigure(panoramaPath, zoomPath string, opts render.Options) (*types.CompositeResult, error) {
	panorama, err := imgio.Load(panoramaPath)
	if err != nil {
		return nil, err
	}
	zoom, err := imgio.Load(zoomPath)
	if err != nil {
		return nil, err
	}
	return t.Compose(panorama, zoom, opts)
}

// ProcessFigure is a convenience function that loads both images, renders the
// composite, and saves it to outputPath. The result is returned so callers
// can inspect the metadata.
func (t *Tool) ProcessFigure(panoramaPath, zoomPath, outputPath string, opts render.Options, quality int, lossless bool) (*types.CompositeResult, error) {
	result, err := t.CreateZoomFigure(panoramaPath, zoomPath, opts)
	if err != nil {
		return nil, err
	}
	if err := imgio.Save(result.Canvas, outputPath, quality, lossless); err != nil {
		return nil, fmt.Errorf("failed to save figure: %w", err)
	}
	return result, nil
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
