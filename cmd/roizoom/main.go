package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	roizoom "github.com/LeoMengTCM/Leo-ROI-Zoom-Tool"
	"github.com/LeoMengTCM/Leo-ROI-Zoom-Tool/internal/config"
	"github.com/LeoMengTCM/Leo-ROI-Zoom-Tool/internal/utils"
	"github.com/LeoMengTCM/Leo-ROI-Zoom-Tool/pkg/fonts"
	"github.com/LeoMengTCM/Leo-ROI-Zoom-Tool/pkg/locator"
	"github.com/LeoMengTCM/Leo-ROI-Zoom-Tool/pkg/render"
)

func main() {
	// .env files are optional; a missing file is not an error
	_ = godotenv.Load()

	var panoPath, zoomPath, zoomDir string
	var outPath, outDir string
	var configPath, savePath, fontPath string
	var direction string
	var padding int
	var zoomScale float64
	var format string
	var quality int
	var lossless bool
	var exportScale float64
	var writeMeta bool
	var useOpenCV bool
	var verbose bool

	flag.StringVar(&panoPath, "pano", "", "panorama (overview) image path")
	flag.StringVar(&zoomPath, "zoom", "", "zoom (high magnification) image path")
	flag.StringVar(&zoomDir, "zoomdir", "", "directory of zoom images for batch mode")
	flag.StringVar(&outPath, "out", "", "output figure path (single mode, default derived from the zoom name)")
	flag.StringVar(&outDir, "outdir", envOr("ROIZOOM_OUT", ""), "output directory for derived names and batch mode")
	flag.StringVar(&configPath, "config", envOr("ROIZOOM_CONFIG", ""), "JSON config file (default ~/.config/roizoom/config.json if present)")
	flag.StringVar(&savePath, "saveconfig", "", "write the active configuration to this path and exit")
	flag.StringVar(&fontPath, "font", envOr("ROIZOOM_FONT", ""), "TTF/OTF font for labels (default: embedded Go Regular)")

	flag.StringVar(&direction, "direction", "", "zoom placement: right|left|top|bottom")
	flag.IntVar(&padding, "padding", 0, "gap between panorama and zoom in pixels")
	flag.Float64Var(&zoomScale, "zoomscale", 0, "display scale applied to the zoom image")

	flag.StringVar(&format, "format", "", "output format: png|jpg|webp|tiff")
	flag.IntVar(&quality, "quality", 0, "JPEG/WebP quality (1-100)")
	flag.BoolVar(&lossless, "lossless", false, "WebP lossless mode")
	flag.Float64Var(&exportScale, "scale", 0, "resize factor applied to the figure on export")

	flag.BoolVar(&writeMeta, "meta", false, "write match metadata JSON next to each figure")
	flag.BoolVar(&useOpenCV, "opencv", false, "use the OpenCV matcher (requires the gocv build tag)")
	flag.BoolVar(&verbose, "verbose", false, "log match details and output sizes")

	flag.Parse()

	cfg, err := loadConfig(configPath)
	if err != nil {
		log.Fatal(err)
	}

	if v := os.Getenv("ROIZOOM_QUALITY"); v != "" {
		if q, err := strconv.Atoi(v); err == nil {
			cfg.Output.Quality = q
		}
	}

	// Explicit flags win over config file and environment
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["direction"] {
		cfg.Figure.Direction = direction
	}
	if set["padding"] {
		cfg.Figure.Padding = padding
	}
	if set["zoomscale"] {
		cfg.Figure.ZoomScale = zoomScale
	}
	if set["format"] {
		cfg.Output.Format = strings.ToLower(format)
	}
	if set["quality"] {
		cfg.Output.Quality = quality
	}
	if set["lossless"] {
		cfg.Output.Lossless = lossless
	}
	if set["scale"] {
		cfg.Output.Scale = exportScale
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	if savePath != "" {
		if err := cfg.SaveToFile(savePath); err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote %s", savePath)
		return
	}

	if panoPath == "" || (zoomPath == "" && zoomDir == "") {
		log.Fatalf("usage: %s -pano overview.png -zoom detail.png [-out figure.png] | -zoomdir crops/ [-outdir figures/]",
			filepath.Base(os.Args[0]))
	}
	if zoomPath != "" && zoomDir != "" {
		log.Fatalf("-zoom and -zoomdir are mutually exclusive")
	}

	opts, err := cfg.Options()
	if err != nil {
		log.Fatal(err)
	}
	if outDir == "" {
		outDir = cfg.Output.OutputDir
	}

	text := fonts.New()
	if fontPath != "" {
		if text, err = fonts.NewFromFile(fontPath); err != nil {
			log.Fatal(err)
		}
	}
	var loc roizoom.Locator = locator.New()
	if useOpenCV {
		loc = locator.NewOpenCV()
	}
	tool := roizoom.NewWithComponents(loc, render.NewWithText(text))

	// Single figure
	if zoomDir == "" {
		if outPath == "" {
			outPath = utils.GenerateOutputFilename(zoomPath, outDir, "", cfg.Output.Suffix, cfg.Output.Format)
		}
		if err := utils.EnsureDir(filepath.Dir(outPath)); err != nil {
			log.Fatal(err)
		}
		if err := makeFigure(tool, panoPath, zoomPath, outPath, opts, cfg, writeMeta, verbose); err != nil {
			log.Fatal(err)
		}
		return
	}

	// Batch: one figure per image in the zoom directory
	if !utils.DirExists(zoomDir) {
		log.Fatalf("zoom directory %s does not exist", zoomDir)
	}
	files, err := utils.ListImageFiles(zoomDir)
	if err != nil {
		log.Fatal(err)
	}
	if len(files) == 0 {
		log.Fatalf("no images found in %s", zoomDir)
	}
	if err := utils.EnsureDir(outDir); err != nil {
		log.Fatal(err)
	}

	done := 0
	for _, file := range files {
		out := utils.GenerateOutputFilename(file, outDir, "", cfg.Output.Suffix, cfg.Output.Format)
		if err := makeFigure(tool, panoPath, file, out, opts, cfg, writeMeta, verbose); err != nil {
			log.Printf("%s: %v", file, err)
			continue
		}
		done++
	}
	log.Printf("created %d/%d figures", done, len(files))
}

func makeFigure(tool *roizoom.Tool, panoPath, zoomPath, outPath string, opts render.Options, cfg *config.Config, writeMeta, verbose bool) error {
	result, err := tool.CreateZoomFigure(panoPath, zoomPath, opts)
	if err != nil {
		return err
	}

	meta := result.Meta
	if meta.LowConfidence {
		log.Printf("warning: low match confidence %.2f for %s", meta.Confidence, filepath.Base(zoomPath))
	}
	if verbose {
		log.Printf("match scale=%.2f conf=%.3f roi=%dx%d@%d,%d",
			meta.Scale, meta.Confidence, meta.ROIW, meta.ROIH, meta.ROIX, meta.ROIY)
	}

	if err := tool.SaveImageScaled(result.Canvas, outPath, cfg.Output.Quality, cfg.Output.Lossless, cfg.Output.Scale); err != nil {
		return err
	}
	log.Printf("wrote %s", outPath)
	if verbose {
		if info, err := os.Stat(outPath); err == nil {
			log.Printf("  %s (%dx%d canvas)", utils.FormatFileSize(info.Size()),
				result.Canvas.Bounds().Dx(), result.Canvas.Bounds().Dy())
		}
	}

	if writeMeta {
		metaPath := strings.TrimSuffix(outPath, filepath.Ext(outPath)) + ".json"
		js, err := json.MarshalIndent(meta, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(metaPath, js, 0o644); err != nil {
			return err
		}
		log.Printf("wrote %s", metaPath)
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	if def := config.GetConfigPath(); utils.FileExists(def) {
		return config.LoadFromFile(def)
	}
	return config.Default(), nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
