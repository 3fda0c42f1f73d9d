//go:build gocv

package locator

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/LeoMengTCM/Leo-ROI-Zoom-Tool/pkg/types"
)

// OpenCVLocator runs the same multi-scale search on OpenCV's FFT-accelerated
// matcher. It needs a cgo build against OpenCV, so it lives behind the gocv
// build tag; the pure Go Locator remains the default.
type OpenCVLocator struct {
	config Config
}

// NewOpenCV creates an OpenCV-backed locator with default settings.
func NewOpenCV() *OpenCVLocator {
	return &OpenCVLocator{config: DefaultConfig()}
}

// NewOpenCVWithConfig creates an OpenCV-backed locator with custom search
// parameters. Zero-value fields fall back to the defaults.
func NewOpenCVWithConfig(config Config) *OpenCVLocator {
	if len(config.Scales) == 0 {
		config.Scales = DefaultScales
	}
	if config.MinTemplateSide <= 0 {
		config.MinTemplateSide = 10
	}
	return &OpenCVLocator{config: config}
}

// Locate searches for the zoom image inside the panorama. Same contract as
// Locator.Locate.
func (l *OpenCVLocator) Locate(panorama, zoom image.Image) (types.MatchResult, error) {
	panoMat, err := gocv.ImageToMatRGB(panorama)
	if err != nil {
		return types.MatchResult{}, fmt.Errorf("convert panorama: %w", err)
	}
	defer panoMat.Close()

	zoomMat, err := gocv.ImageToMatRGB(zoom)
	if err != nil {
		return types.MatchResult{}, fmt.Errorf("convert zoom: %w", err)
	}
	defer zoomMat.Close()

	panoW, panoH := panoMat.Cols(), panoMat.Rows()
	zoomW, zoomH := zoomMat.Cols(), zoomMat.Rows()

	mask := gocv.NewMat()
	defer mask.Close()

	best := types.MatchResult{Confidence: -1}
	found := false

	for _, scale := range l.config.Scales {
		newW := int(float64(zoomW) * scale)
		newH := int(float64(zoomH) * scale)

		if newW >= panoW || newH >= panoH {
			continue
		}
		if newW < l.config.MinTemplateSide || newH < l.config.MinTemplateSide {
			continue
		}

		tmpl := gocv.NewMat()
		gocv.Resize(zoomMat, &tmpl, image.Pt(newW, newH), 0, 0, gocv.InterpolationArea)

		result := gocv.NewMat()
		gocv.MatchTemplate(panoMat, tmpl, &result, gocv.TmCcoeffNormed, mask)
		_, maxVal, _, maxPt := gocv.MinMaxLoc(result)
		result.Close()
		tmpl.Close()

		if conf := float64(maxVal); !found || conf > best.Confidence {
			best = types.MatchResult{X: maxPt.X, Y: maxPt.Y, W: newW, H: newH, Confidence: conf, Scale: scale}
			found = true
		}
	}

	if !found {
		return types.MatchResult{}, ErrNoMatch
	}
	return best, nil
}
