//go:build !gocv

package locator

import (
	"errors"
	"image"

	"github.com/LeoMengTCM/Leo-ROI-Zoom-Tool/pkg/types"
)

// OpenCVLocator is only functional when built with the gocv tag. This stub
// keeps callers compiling without OpenCV installed.
type OpenCVLocator struct {
	config Config
}

// NewOpenCV creates a stub locator whose Locate always fails.
func NewOpenCV() *OpenCVLocator {
	return &OpenCVLocator{config: DefaultConfig()}
}

// NewOpenCVWithConfig creates a stub locator whose Locate always fails.
func NewOpenCVWithConfig(config Config) *OpenCVLocator {
	return &OpenCVLocator{config: config}
}

// Locate fails immediately; build with the gocv tag for the real matcher.
func (l *OpenCVLocator) Locate(panorama, zoom image.Image) (types.MatchResult, error) {
	return types.MatchResult{}, errors.New("opencv matching requires building with the gocv tag")
}
