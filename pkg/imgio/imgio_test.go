package imgio

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// createTestImage creates a simple test image
func createTestImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))

	// Fill with a gradient pattern
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r := uint8((x * 255) / width)
			g := uint8((y * 255) / height)
			img.SetNRGBA(x, y, color.NRGBA{r, g, 128, 255})
		}
	}

	return img
}

func TestSaveLoadPNGRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fig.png")

	src := createTestImage(64, 48)
	if err := Save(src, path, 95, false); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	bounds := got.Bounds()
	if bounds.Dx() != 64 || bounds.Dy() != 48 {
		t.Errorf("Loaded size = %dx%d, expected 64x48", bounds.Dx(), bounds.Dy())
	}

	// PNG must preserve pixels exactly
	r0, g0, b0, _ := got.At(10, 10).RGBA()
	r1, g1, b1, _ := src.At(10, 10).RGBA()
	if r0 != r1 || g0 != g1 || b0 != b1 {
		t.Errorf("PNG round trip changed pixel (10,10): got %v/%v/%v want %v/%v/%v",
			r0, g0, b0, r1, g1, b1)
	}
}

func TestSaveJPEGAndTIFF(t *testing.T) {
	dir := t.TempDir()
	src := createTestImage(40, 40)

	for _, name := range []string{"fig.jpg", "fig.jpeg", "fig.tif", "fig.tiff"} {
		path := filepath.Join(dir, name)
		if err := Save(src, path, 95, false); err != nil {
			t.Errorf("Save(%s) failed: %v", name, err)
			continue
		}
		got, err := Load(path)
		if err != nil {
			t.Errorf("Load(%s) failed: %v", name, err)
			continue
		}
		if got.Bounds().Dx() != 40 || got.Bounds().Dy() != 40 {
			t.Errorf("%s: size = %v, expected 40x40", name, got.Bounds())
		}
	}
}

func TestSaveLoadWebPLossless(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fig.webp")

	src := createTestImage(32, 32)
	if err := Save(src, path, 90, true); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Bounds().Dx() != 32 || got.Bounds().Dy() != 32 {
		t.Fatalf("Loaded size = %v, expected 32x32", got.Bounds())
	}

	// Lossless WebP must preserve pixels exactly
	r0, g0, b0, _ := got.At(7, 21).RGBA()
	r1, g1, b1, _ := src.At(7, 21).RGBA()
	if r0 != r1 || g0 != g1 || b0 != b1 {
		t.Errorf("WebP lossless round trip changed pixel (7,21)")
	}
}

func TestSaveUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	src := createTestImage(10, 10)

	if err := Save(src, filepath.Join(dir, "fig.xyz"), 95, false); err == nil {
		t.Error("Save should reject unknown extensions")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.png"))
	if err == nil {
		t.Fatal("Load of missing file should fail")
	}
	if !IsReadError(err) {
		t.Errorf("Expected ReadError, got %T: %v", err, err)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "garbage.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load of corrupt file should fail")
	}
	if !IsReadError(err) {
		t.Errorf("Expected ReadError, got %T: %v", err, err)
	}
}

func TestLoadFromReader(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, createTestImage(20, 30)); err != nil {
		t.Fatalf("png.Encode failed: %v", err)
	}

	img, err := LoadFromReader(&buf)
	if err != nil {
		t.Fatalf("LoadFromReader failed: %v", err)
	}
	if img.Bounds().Dx() != 20 || img.Bounds().Dy() != 30 {
		t.Errorf("Loaded size = %v, expected 20x30", img.Bounds())
	}

	if _, err := LoadFromReader(bytes.NewReader([]byte("junk"))); err == nil {
		t.Error("LoadFromReader should fail on junk input")
	}
}

func TestSaveScaled(t *testing.T) {
	dir := t.TempDir()
	src := createTestImage(100, 60)

	path := filepath.Join(dir, "half.png")
	if err := SaveScaled(src, path, 95, false, 0.5); err != nil {
		t.Fatalf("SaveScaled failed: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Bounds().Dx() != 50 || got.Bounds().Dy() != 30 {
		t.Errorf("Scaled size = %v, expected 50x30", got.Bounds())
	}

	if err := SaveScaled(src, filepath.Join(dir, "bad.png"), 95, false, 0); err == nil {
		t.Error("SaveScaled should reject non-positive factors")
	}
}

func TestInfo(t *testing.T) {
	img := createTestImage(400, 300)
	info := Info(img)

	if info.Width != 400 {
		t.Errorf("Expected width 400, got %d", info.Width)
	}
	if info.Height != 300 {
		t.Errorf("Expected height 300, got %d", info.Height)
	}

	expectedRatio := float64(400) / float64(300)
	if info.AspectRatio != expectedRatio {
		t.Errorf("Expected aspect ratio %f, got %f", expectedRatio, info.AspectRatio)
	}
	if info.Area != 120000 {
		t.Errorf("Expected area 120000, got %d", info.Area)
	}
}

func BenchmarkLoadPNG(b *testing.B) {
	dir := b.TempDir()
	path := filepath.Join(dir, "bench.png")
	if err := Save(createTestImage(800, 600), path, 95, false); err != nil {
		b.Fatalf("Save failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Load(path); err != nil {
			b.Fatal(err)
		}
	}
}
