// Package imgio owns image decode and encode for the figure pipeline. The
// rendering core works on in-memory buffers only; everything that touches
// the filesystem lives here.
package imgio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ReadError reports a source image that could not be opened or decoded.
// Decoding is deterministic, so a ReadError is never worth retrying.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("read image: %v", e.Err)
	}
	return fmt.Sprintf("read image %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// IsReadError reports whether err is (or wraps) a ReadError.
func IsReadError(err error) bool {
	var re *ReadError
	return errors.As(err, &re)
}

// Load reads an image from a file. Formats registered with image.Decode
// (PNG, JPEG, GIF, TIFF, BMP) are tried first, then WebP explicitly.
func Load(path string) (image.Image, error) {
	if img, err := imaging.Open(path); err == nil {
		return img, nil
	}

	// Fallback: explicit WebP decode
	f, err := os.Open(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	defer f.Close()

	if img, err := webp.Decode(f); err == nil {
		return img, nil
	}
	if _, err := f.Seek(0, 0); err == nil {
		if img, _, err := image.Decode(f); err == nil {
			return img, nil
		}
	}
	return nil, &ReadError{Path: path, Err: fmt.Errorf("unknown image format")}
}

// LoadFromReader decodes an image from a stream with WebP support.
func LoadFromReader(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ReadError{Err: err}
	}

	if img, _, err := image.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}
	if img, err := webp.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}
	return nil, &ReadError{Err: fmt.Errorf("unknown image format")}
}

// Save writes an image, selecting the encoder from the file extension:
// png, jpg/jpeg, webp, tif/tiff. Quality applies to JPEG and lossy WebP;
// lossless applies to WebP only. PNG and TIFF are always lossless.
func Save(img image.Image, path string, quality int, lossless bool) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".webp":
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		return webp.Encode(f, img, &webp.Options{Lossless: lossless, Quality: float32(quality)})
	case ".tif", ".tiff":
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		return tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate})
	case ".png":
		return imaging.Save(img, path)
	case ".jpg", ".jpeg":
		return imaging.Save(img, path, imaging.JPEGQuality(quality))
	default:
		return fmt.Errorf("unsupported output format: %s", ext)
	}
}

// SaveScaled resizes the image by factor (Lanczos) before writing it.
// A factor of 1 writes the image unchanged.
func SaveScaled(img image.Image, path string, quality int, lossless bool, factor float64) error {
	if factor <= 0 {
		return fmt.Errorf("invalid export scale %g", factor)
	}
	if factor != 1.0 {
		b := img.Bounds()
		w := int(float64(b.Dx())*factor + 0.5)
		h := int(float64(b.Dy())*factor + 0.5)
		img = imaging.Resize(img, w, h, imaging.Lanczos)
	}
	return Save(img, path, quality, lossless)
}

// ImageInfo contains basic image metadata.
type ImageInfo struct {
	Width       int
	Height      int
	AspectRatio float64
	Area        int
}

// Info returns basic information about an image.
func Info(img image.Image) ImageInfo {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	return ImageInfo{
		Width:       width,
		Height:      height,
		AspectRatio: float64(width) / float64(height),
		Area:        width * height,
	}
}
