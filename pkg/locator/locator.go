// Package locator finds where a high-magnification crop sits inside its
// source panorama using multi-scale template matching on normalized
// cross-correlation.
package locator

import (
	"errors"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/LeoMengTCM/Leo-ROI-Zoom-Tool/pkg/types"
)

// ErrNoMatch is returned when every scale in the search list is skipped, so
// no correlation was ever computed.
var ErrNoMatch = errors.New("no template scale fits inside the panorama")

// DefaultScales is the descending scale ladder searched by Locate. The crop
// is usually a reduced version of the panorama region, so scales below 1.0
// dominate in practice.
var DefaultScales = []float64{1.0, 0.9, 0.8, 0.7, 0.6, 0.5, 0.4, 0.3, 0.25, 0.2, 0.15, 0.1}

// flat-window cutoff for the correlation denominator
const matchEps = 1e-9

// Config holds the search parameters for the multi-scale matcher.
type Config struct {
	// Scales lists the template scales to try. The best correlation peak
	// across all of them wins.
	Scales []float64

	// MinTemplateSide skips any scale whose template width or height falls
	// below this value. Tiny templates correlate with almost anything.
	MinTemplateSide int
}

// DefaultConfig returns the stock search parameters.
func DefaultConfig() Config {
	return Config{
		Scales:          DefaultScales,
		MinTemplateSide: 10,
	}
}

// Locator performs the multi-scale search in pure Go. Matching runs on the
// luminance channel only; color carries no extra alignment signal for
// microscopy and slide-scanner output.
type Locator struct {
	config Config
}

// New creates a Locator with default settings.
func New() *Locator {
	return &Locator{config: DefaultConfig()}
}

// NewWithConfig creates a Locator with custom search parameters. Zero-value
// fields fall back to the defaults.
func NewWithConfig(config Config) *Locator {
	if len(config.Scales) == 0 {
		config.Scales = DefaultScales
	}
	if config.MinTemplateSide <= 0 {
		config.MinTemplateSide = 10
	}
	return &Locator{config: config}
}

// Locate searches for the zoom image inside the panorama and returns the
// single best match across all surviving scales. The returned box has the
// dimensions of the winning scaled template, not of the zoom input.
//
// It returns ErrNoMatch when no scale produces a template that strictly fits
// inside the panorama with both sides at or above the minimum.
func (l *Locator) Locate(panorama, zoom image.Image) (types.MatchResult, error) {
	pb := panorama.Bounds()
	zb := zoom.Bounds()
	panoW, panoH := pb.Dx(), pb.Dy()
	zoomW, zoomH := zb.Dx(), zb.Dy()

	pano := luminance(panorama)

	best := types.MatchResult{Confidence: -1}
	found := false

	for _, scale := range l.config.Scales {
		newW := int(float64(zoomW) * scale)
		newH := int(float64(zoomH) * scale)

		// The template must fit strictly inside the panorama.
		if newW >= panoW || newH >= panoH {
			continue
		}
		if newW < l.config.MinTemplateSide || newH < l.config.MinTemplateSide {
			continue
		}

		tmpl := luminance(imaging.Resize(zoom, newW, newH, imaging.Box))
		x, y, conf := matchTemplate(pano, tmpl)

		if !found || conf > best.Confidence {
			best = types.MatchResult{X: x, Y: y, W: newW, H: newH, Confidence: conf, Scale: scale}
			found = true
		}
	}

	if !found {
		return types.MatchResult{}, ErrNoMatch
	}
	return best, nil
}

// matchTemplate slides tmpl over pano and returns the location and value of
// the global correlation maximum.
func matchTemplate(pano, tmpl *mat.Dense) (x, y int, conf float64) {
	resp := responseMap(pano, tmpl)
	if resp == nil {
		return 0, 0, 0
	}
	return maxLoc(resp)
}

// responseMap computes the zero-mean normalized cross-correlation of tmpl
// against every placement inside pano. Each response value lies in [-1, 1];
// placements over a flat window score 0. A nil return means the template
// itself is flat and cannot discriminate.
func responseMap(pano, tmpl *mat.Dense) *mat.Dense {
	ph, pw := pano.Dims()
	th, tw := tmpl.Dims()
	outH := ph - th + 1
	outW := pw - tw + 1
	n := float64(th * tw)

	// Zero-mean template. With the template mean removed, the windowed
	// image mean cancels out of the cross term, leaving a plain dot
	// product per placement.
	tMean := floats.Sum(tmpl.RawMatrix().Data) / n
	tZero := mat.NewDense(th, tw, nil)
	tZero.Apply(func(_, _ int, v float64) float64 { return v - tMean }, tmpl)

	tZeroData := tZero.RawMatrix().Data
	tEnergy := floats.Dot(tZeroData, tZeroData)
	if tEnergy < matchEps {
		return nil
	}

	sum, sumSq := integralImages(pano)
	stride := pw + 1

	resp := mat.NewDense(outH, outW, nil)
	for y := 0; y < outH; y++ {
		for x := 0; x < outW; x++ {
			winSum := rectSum(sum, stride, x, y, tw, th)
			winSqSum := rectSum(sumSq, stride, x, y, tw, th)
			winEnergy := winSqSum - winSum*winSum/n
			if winEnergy < matchEps {
				continue
			}

			var cross float64
			for ty := 0; ty < th; ty++ {
				row := pano.RawRowView(y + ty)
				cross += floats.Dot(tZeroData[ty*tw:(ty+1)*tw], row[x:x+tw])
			}

			resp.Set(y, x, cross/math.Sqrt(tEnergy*winEnergy))
		}
	}
	return resp
}

// maxLoc returns the position and value of the largest element in resp.
func maxLoc(resp *mat.Dense) (x, y int, v float64) {
	h, w := resp.Dims()
	v = math.Inf(-1)
	for ry := 0; ry < h; ry++ {
		row := resp.RawRowView(ry)
		for rx := 0; rx < w; rx++ {
			if row[rx] > v {
				v = row[rx]
				x, y = rx, ry
			}
		}
	}
	return x, y, v
}

// integralImages builds summed-area tables of pano and pano squared, each
// padded by one row and column of zeros so window sums need no edge cases.
func integralImages(m *mat.Dense) (sum, sumSq []float64) {
	h, w := m.Dims()
	stride := w + 1
	sum = make([]float64, (h+1)*stride)
	sumSq = make([]float64, (h+1)*stride)
	for y := 0; y < h; y++ {
		row := m.RawRowView(y)
		var rowSum, rowSqSum float64
		for x := 0; x < w; x++ {
			v := row[x]
			rowSum += v
			rowSqSum += v * v
			sum[(y+1)*stride+x+1] = sum[y*stride+x+1] + rowSum
			sumSq[(y+1)*stride+x+1] = sumSq[y*stride+x+1] + rowSqSum
		}
	}
	return sum, sumSq
}

// rectSum reads the total over the w x h window at (x, y) from a padded
// summed-area table.
func rectSum(table []float64, stride, x, y, w, h int) float64 {
	return table[(y+h)*stride+x+w] - table[y*stride+x+w] - table[(y+h)*stride+x] + table[y*stride+x]
}

// luminance flattens an image into a single-channel float matrix using the
// Rec. 601 weights.
func luminance(img image.Image) *mat.Dense {
	nrgba := imaging.Clone(img)
	b := nrgba.Bounds()
	w, h := b.Dx(), b.Dy()
	data := make([]float64, w*h)
	for y := 0; y < h; y++ {
		i := y * nrgba.Stride
		row := data[y*w : (y+1)*w]
		for x := 0; x < w; x++ {
			row[x] = 0.299*float64(nrgba.Pix[i]) + 0.587*float64(nrgba.Pix[i+1]) + 0.114*float64(nrgba.Pix[i+2])
			i += 4
		}
	}
	return mat.NewDense(h, w, data)
}
