// Package config persists complete figure specifications as JSON so the CLI
// and batch runs can share one style file.
package config

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/LeoMengTCM/Leo-ROI-Zoom-Tool/pkg/render"
	"github.com/LeoMengTCM/Leo-ROI-Zoom-Tool/pkg/types"
)

// Config holds the application configuration
type Config struct {
	Figure      FigureConfig       `json:"figure"`
	ScaleBars   []ScaleBarConfig   `json:"scale_bars,omitempty"`
	Annotations []AnnotationConfig `json:"annotations,omitempty"`
	Watermark   *WatermarkConfig   `json:"watermark,omitempty"`
	Output      OutputConfig       `json:"output"`
}

// FigureConfig mirrors render.Options in JSON-friendly form: colors are hex
// strings and enums are their lowercase names.
type FigureConfig struct {
	Direction        string  `json:"direction"`
	Padding          int     `json:"padding"`
	ZoomScale        float64 `json:"zoom_scale"`
	BoxColor         string  `json:"box_color"`
	BoxThickness     int     `json:"box_thickness"`
	ZoomBoxColor     string  `json:"zoom_box_color"`
	ZoomBoxThickness int     `json:"zoom_box_thickness"`
	LineColor        string  `json:"line_color"`
	LineThickness    int     `json:"line_thickness"`
	LineStyle        string  `json:"line_style"`
	DashLength       int     `json:"dash_length"`
	GapLength        int     `json:"gap_length"`
	ROIOffsetX       int     `json:"roi_offset_x"`
	ROIOffsetY       int     `json:"roi_offset_y"`
	MinConfidence    float64 `json:"min_confidence"`
}

// ScaleBarConfig describes one calibrated scale bar. Zero-valued style fields
// inherit the stock settings; HideText inverts the label default so plain
// JSON omission keeps labels on.
type ScaleBarConfig struct {
	Target      string  `json:"target,omitempty"`
	Corner      string  `json:"corner,omitempty"`
	OffsetX     int     `json:"offset_x"`
	OffsetY     int     `json:"offset_y"`
	LengthUM    float64 `json:"length_um"`
	PixelsPerUM float64 `json:"pixels_per_um"`
	Color       string  `json:"color,omitempty"`
	Thickness   int     `json:"thickness,omitempty"`
	FontSize    float64 `json:"font_size,omitempty"`
	Style       string  `json:"style,omitempty"`
	TextGap     int     `json:"text_gap,omitempty"`
	HideText    bool    `json:"hide_text,omitempty"`
}

// AnnotationConfig describes one point marker positioned relative to the
// top-left corner of its target image.
type AnnotationConfig struct {
	Kind      string  `json:"kind"`
	Target    string  `json:"target,omitempty"`
	X         int     `json:"x"`
	Y         int     `json:"y"`
	Color     string  `json:"color,omitempty"`
	Size      int     `json:"size,omitempty"`
	Thickness int     `json:"thickness,omitempty"`
	Text      string  `json:"text,omitempty"`
	FontSize  float64 `json:"font_size,omitempty"`
	Direction string  `json:"direction,omitempty"`
}

// WatermarkConfig describes the translucent label composited over the figure.
type WatermarkConfig struct {
	Text     string  `json:"text"`
	Anchor   string  `json:"anchor,omitempty"`
	Opacity  int     `json:"opacity,omitempty"`
	FontSize float64 `json:"font_size,omitempty"`
	Color    string  `json:"color,omitempty"`
}

// OutputConfig holds configuration for output generation
type OutputConfig struct {
	Format    string  `json:"format"`
	Quality   int     `json:"quality"`
	Lossless  bool    `json:"lossless"`
	Scale     float64 `json:"scale"`
	OutputDir string  `json:"output_dir"`
	Suffix    string  `json:"suffix"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Figure: FigureConfig{
			Direction:        "right",
			Padding:          50,
			ZoomScale:        1.0,
			BoxColor:         "#ff0000",
			BoxThickness:     3,
			ZoomBoxColor:     "#ff0000",
			ZoomBoxThickness: 3,
			LineColor:        "#ff0000",
			LineThickness:    2,
			LineStyle:        "solid",
			DashLength:       15,
			GapLength:        10,
			MinConfidence:    0.5,
		},
		Output: OutputConfig{
			Format:    "png",
			Quality:   95,
			Lossless:  false,
			Scale:     1.0,
			OutputDir: "./output",
			Suffix:    "_figure",
		},
	}
}

// LoadFromFile loads configuration from a JSON file. Fields absent from the
// file keep their default values.
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Output.Quality < 1 || c.Output.Quality > 100 {
		return fmt.Errorf("output.quality must be between 1 and 100")
	}
	if c.Output.Scale <= 0 {
		return fmt.Errorf("output.scale must be positive")
	}
	switch c.Output.Format {
	case "png", "jpg", "jpeg", "webp", "tif", "tiff":
	default:
		return fmt.Errorf("output.format %q not supported", c.Output.Format)
	}

	opts, err := c.Options()
	if err != nil {
		return err
	}
	return opts.Validate()
}

// Options converts the figure specification into render options.
func (c *Config) Options() (render.Options, error) {
	opts := render.DefaultOptions()
	f := c.Figure

	var err error
	if f.Direction != "" {
		if opts.Direction, err = types.ParseDirection(f.Direction); err != nil {
			return opts, fmt.Errorf("figure.direction: %w", err)
		}
	}
	opts.Padding = f.Padding
	opts.ZoomScale = f.ZoomScale
	if opts.BoxColor, err = parseColorOr(f.BoxColor, opts.BoxColor); err != nil {
		return opts, fmt.Errorf("figure.box_color: %w", err)
	}
	opts.BoxThickness = f.BoxThickness
	if opts.ZoomBoxColor, err = parseColorOr(f.ZoomBoxColor, opts.ZoomBoxColor); err != nil {
		return opts, fmt.Errorf("figure.zoom_box_color: %w", err)
	}
	opts.ZoomBoxThickness = f.ZoomBoxThickness
	if opts.LineColor, err = parseColorOr(f.LineColor, opts.LineColor); err != nil {
		return opts, fmt.Errorf("figure.line_color: %w", err)
	}
	opts.LineThickness = f.LineThickness
	if f.LineStyle != "" {
		if opts.LineStyle, err = types.ParseLineStyle(f.LineStyle); err != nil {
			return opts, fmt.Errorf("figure.line_style: %w", err)
		}
	}
	opts.DashLength = f.DashLength
	opts.GapLength = f.GapLength
	opts.ROIOffset = image.Pt(f.ROIOffsetX, f.ROIOffsetY)
	opts.MinConfidence = f.MinConfidence

	for i, sc := range c.ScaleBars {
		sb, err := sc.spec()
		if err != nil {
			return opts, fmt.Errorf("scale_bars[%d]: %w", i, err)
		}
		opts.ScaleBars = append(opts.ScaleBars, sb)
	}

	for i, ac := range c.Annotations {
		ann, err := ac.spec()
		if err != nil {
			return opts, fmt.Errorf("annotations[%d]: %w", i, err)
		}
		opts.Annotations = append(opts.Annotations, ann)
	}

	if c.Watermark != nil {
		wm, err := c.Watermark.spec()
		if err != nil {
			return opts, fmt.Errorf("watermark: %w", err)
		}
		opts.Watermark = &wm
	}

	return opts, nil
}

func (sc ScaleBarConfig) spec() (types.ScaleBarSpec, error) {
	sb := types.DefaultScaleBar()

	var err error
	if sc.Target != "" {
		if sb.Target, err = types.ParseTarget(sc.Target); err != nil {
			return sb, err
		}
	}
	if sc.Corner != "" {
		if sb.Corner, err = types.ParseCorner(sc.Corner); err != nil {
			return sb, err
		}
	}
	if sc.Style != "" {
		if sb.Style, err = types.ParseScaleBarStyle(sc.Style); err != nil {
			return sb, err
		}
	}
	if sb.Color, err = parseColorOr(sc.Color, sb.Color); err != nil {
		return sb, err
	}
	if sc.OffsetX != 0 {
		sb.OffsetX = sc.OffsetX
	}
	if sc.OffsetY != 0 {
		sb.OffsetY = sc.OffsetY
	}
	if sc.LengthUM != 0 {
		sb.LengthUM = sc.LengthUM
	}
	if sc.PixelsPerUM != 0 {
		sb.PixelsPerUM = sc.PixelsPerUM
	}
	if sc.Thickness != 0 {
		sb.Thickness = sc.Thickness
	}
	if sc.FontSize != 0 {
		sb.FontSize = sc.FontSize
	}
	if sc.TextGap != 0 {
		sb.TextGap = sc.TextGap
	}
	sb.ShowText = !sc.HideText
	return sb, nil
}

func (ac AnnotationConfig) spec() (types.AnnotationSpec, error) {
	ann := types.DefaultAnnotation()

	var err error
	if ann.Kind, err = types.ParseAnnotationKind(ac.Kind); err != nil {
		return ann, err
	}
	if ac.Target != "" {
		if ann.Target, err = types.ParseTarget(ac.Target); err != nil {
			return ann, err
		}
	}
	if ac.Direction != "" {
		if ann.Direction, err = types.ParseArrowDirection(ac.Direction); err != nil {
			return ann, err
		}
	}
	if ann.Color, err = parseColorOr(ac.Color, ann.Color); err != nil {
		return ann, err
	}
	ann.Position = image.Pt(ac.X, ac.Y)
	if ac.Size != 0 {
		ann.Size = ac.Size
	}
	if ac.Thickness != 0 {
		ann.Thickness = ac.Thickness
	}
	if ac.FontSize != 0 {
		ann.FontSize = ac.FontSize
	}
	ann.Text = ac.Text
	return ann, nil
}

func (wc WatermarkConfig) spec() (types.WatermarkSpec, error) {
	wm := types.DefaultWatermark()

	var err error
	wm.Text = wc.Text
	if wc.Anchor != "" {
		if wm.Anchor, err = types.ParseWatermarkAnchor(wc.Anchor); err != nil {
			return wm, err
		}
	}
	if wc.Opacity != 0 {
		if wc.Opacity < 0 || wc.Opacity > 255 {
			return wm, fmt.Errorf("opacity must be between 0 and 255")
		}
		wm.Opacity = uint8(wc.Opacity)
	}
	if wc.FontSize != 0 {
		wm.FontSize = wc.FontSize
	}
	if wm.Color, err = parseColorOr(wc.Color, wm.Color); err != nil {
		return wm, err
	}
	return wm, nil
}

// ParseHexColor parses "#rgb" and "#rrggbb" strings into an opaque color.
func ParseHexColor(s string) (color.NRGBA, error) {
	c := color.NRGBA{A: 255}
	if len(s) == 0 || s[0] != '#' {
		return c, fmt.Errorf("invalid hex color %q", s)
	}

	var err error
	switch len(s) {
	case 7:
		_, err = fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
	case 4:
		_, err = fmt.Sscanf(s, "#%1x%1x%1x", &c.R, &c.G, &c.B)
		c.R *= 17
		c.G *= 17
		c.B *= 17
	default:
		err = fmt.Errorf("must be 4 or 7 characters long")
	}
	if err != nil {
		return color.NRGBA{A: 255}, fmt.Errorf("invalid hex color %q: %v", s, err)
	}
	return c, nil
}

// FormatHexColor renders a color as a "#rrggbb" string, dropping alpha.
func FormatHexColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func parseColorOr(s string, fallback color.NRGBA) (color.NRGBA, error) {
	if s == "" {
		return fallback, nil
	}
	return ParseHexColor(s)
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "roizoom", "config.json")
}
