package roizoom

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/LeoMengTCM/Leo-ROI-Zoom-Tool/pkg/imgio"
	"github.com/LeoMengTCM/Leo-ROI-Zoom-Tool/pkg/locator"
	"github.com/LeoMengTCM/Leo-ROI-Zoom-Tool/pkg/render"
	"github.com/LeoMengTCM/Leo-ROI-Zoom-Tool/pkg/types"
)

// createTestPair builds a textured panorama with the zoom crop embedded at a
// known position.
func createTestPair() (pano *image.NRGBA, zoom *image.NRGBA, at image.Point) {
	zoom = image.NewNRGBA(image.Rect(0, 0, 80, 60))
	s := uint32(1)
	for y := 0; y < 60; y++ {
		for x := 0; x < 80; x++ {
			s = s*1664525 + 1013904223
			zoom.Set(x, y, color.NRGBA{uint8(s >> 24), uint8(x * 3), uint8(y * 5), 255})
		}
	}

	background := image.NewNRGBA(image.Rect(0, 0, 200, 150))
	s = 2
	for y := 0; y < 150; y++ {
		for x := 0; x < 200; x++ {
			s = s*1664525 + 1013904223
			background.Set(x, y, color.NRGBA{uint8(s >> 24), uint8(y), uint8(x), 255})
		}
	}

	at = image.Pt(70, 40)
	pano = imaging.Paste(background, zoom, at)
	return pano, zoom, at
}

func TestNew(t *testing.T) {
	tool := New()
	if tool == nil {
		t.Fatal("New returned nil")
	}
	if tool.locator == nil {
		t.Error("locator not initialized")
	}
	if tool.renderer == nil {
		t.Error("renderer not initialized")
	}
}

func TestNewWithComponents(t *testing.T) {
	loc := locator.NewWithConfig(locator.Config{Scales: []float64{1.0}})
	tool := NewWithComponents(loc, render.New())
	if tool.locator != loc {
		t.Error("custom locator not kept")
	}
	if tool.renderer == nil {
		t.Error("renderer not set")
	}
}

func TestGetVersion(t *testing.T) {
	if GetVersion() != Version {
		t.Errorf("GetVersion() = %q, want %q", GetVersion(), Version)
	}
	if Version == "" {
		t.Error("empty version")
	}
}

func TestLocate(t *testing.T) {
	pano, zoom, at := createTestPair()

	match, err := New().Locate(pano, zoom)
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	if match.X != at.X || match.Y != at.Y {
		t.Errorf("match at (%d, %d), want %v", match.X, match.Y, at)
	}
	if match.Confidence < 0.999 {
		t.Errorf("weak confidence %v for an exact embed", match.Confidence)
	}
}

func TestCompose(t *testing.T) {
	pano, zoom, at := createTestPair()

	result, err := New().Compose(pano, zoom, render.DefaultOptions())
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if result.Canvas == nil {
		t.Fatal("nil canvas")
	}

	// 200x150 panorama, 80x60 zoom placed right, margin 8, padding 50.
	if w := result.Canvas.Bounds().Dx(); w != 346 {
		t.Errorf("canvas width = %d, want 346", w)
	}
	if h := result.Canvas.Bounds().Dy(); h != 166 {
		t.Errorf("canvas height = %d, want 166", h)
	}

	meta := result.Meta
	if meta.ROIX != at.X || meta.ROIY != at.Y || meta.ROIW != 80 || meta.ROIH != 60 {
		t.Errorf("region box %+v, want 80x60 at %v", meta, at)
	}
	if meta.LowConfidence {
		t.Error("exact embed flagged as low confidence")
	}
}

func TestComposeNoMatch(t *testing.T) {
	pano := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	zoom := image.NewNRGBA(image.Rect(0, 0, 50, 50))

	_, err := New().Compose(pano, zoom, render.DefaultOptions())
	if !errors.Is(err, locator.ErrNoMatch) {
		t.Fatalf("expected wrapped ErrNoMatch, got %v", err)
	}
}

func TestRenderSkipsSearch(t *testing.T) {
	pano, zoom, _ := createTestPair()
	match := types.MatchResult{X: 10, Y: 10, W: 80, H: 60, Confidence: 1.0, Scale: 1.0}

	result, err := New().Render(pano, zoom, match, render.DefaultOptions())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if result.Meta.ROIX != 10 || result.Meta.ROIY != 10 {
		t.Errorf("supplied match not used: %+v", result.Meta)
	}
}

func TestCreateZoomFigure(t *testing.T) {
	pano, zoom, at := createTestPair()
	dir := t.TempDir()

	panoPath := filepath.Join(dir, "pano.png")
	zoomPath := filepath.Join(dir, "zoom.png")
	if err := imgio.Save(pano, panoPath, 95, false); err != nil {
		t.Fatal(err)
	}
	if err := imgio.Save(zoom, zoomPath, 95, false); err != nil {
		t.Fatal(err)
	}

	result, err := New().CreateZoomFigure(panoPath, zoomPath, render.DefaultOptions())
	if err != nil {
		t.Fatalf("CreateZoomFigure failed: %v", err)
	}
	if result.Meta.ROIX != at.X || result.Meta.ROIY != at.Y {
		t.Errorf("region at (%d, %d), want %v", result.Meta.ROIX, result.Meta.ROIY, at)
	}
}

func TestCreateZoomFigureMissingFile(t *testing.T) {
	_, err := New().CreateZoomFigure("does-not-exist.png", "also-missing.png", render.DefaultOptions())
	if err == nil {
		t.Fatal("expected an error for missing input")
	}
	if !imgio.IsReadError(err) {
		t.Errorf("expected a read error, got %v", err)
	}
}

func TestProcessFigure(t *testing.T) {
	pano, zoom, _ := createTestPair()
	dir := t.TempDir()

	panoPath := filepath.Join(dir, "pano.png")
	zoomPath := filepath.Join(dir, "zoom.png")
	outPath := filepath.Join(dir, "figure.png")
	if err := imgio.Save(pano, panoPath, 95, false); err != nil {
		t.Fatal(err)
	}
	if err := imgio.Save(zoom, zoomPath, 95, false); err != nil {
		t.Fatal(err)
	}

	result, err := New().ProcessFigure(panoPath, zoomPath, outPath, render.DefaultOptions(), 95, false)
	if err != nil {
		t.Fatalf("ProcessFigure failed: %v", err)
	}

	if _, err := os.Stat(outPath); err != nil {
		t.Fatalf("output not written: %v", err)
	}
	saved, err := imgio.Load(outPath)
	if err != nil {
		t.Fatalf("output not readable: %v", err)
	}
	if saved.Bounds().Dx() != result.Canvas.Bounds().Dx() {
		t.Errorf("saved width %d, canvas width %d", saved.Bounds().Dx(), result.Canvas.Bounds().Dx())
	}
}

func BenchmarkCompose(b *testing.B) {
	pano, zoom, _ := createTestPair()
	tool := New()
	opts := render.DefaultOptions()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := tool.Compose(pano, zoom, opts); err != nil {
			b.Fatal(err)
		}
	}
}
