package images

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

var disableConfigDir sync.Once

// Result describes a completed conversion.
type Result struct {
	Width  int
	Height int
	Format string
}

// Converter turns a single raster image into a one-page PDF.
type Converter struct {
	dpi       int
	maxPixels int
	logger    *slog.Logger
}

// NewConverter creates a converter from a finalized configuration.
func NewConverter(cfg *Config, logger *slog.Logger) *Converter {
	disableConfigDir.Do(api.DisableConfigDir)

	return &Converter{
		dpi:       cfg.DPI,
		maxPixels: cfg.MaxPixels,
		logger:    logger.With("system", "images"),
	}
}

// PageDim returns the page size in points for an image of w by h pixels
// rendered at the configured resolution.
func (c *Converter) PageDim(w, h int) *types.Dim {
	return &types.Dim{
		Width:  float64(w) * 72 / float64(c.dpi),
		Height: float64(h) * 72 / float64(c.dpi),
	}
}

// Convert decodes the image in src and writes a single-page PDF to w.
// The image fills a page sized by PageDim.
// Decoder and encoder panics are reported as ErrConversionFailed.
func (c *Converter) Convert(ctx context.Context, src io.ReadSeeker, w io.Writer) (res *Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			c.logger.Error("conversion panic", "panic", p)
			res, err = nil, fmt.Errorf("%w: %v", ErrConversionFailed, p)
		}
	}()

	cfg, format, err := image.DecodeConfig(src)
	if err != nil {
		return nil, fmt.Errorf("%w: decode header: %v", ErrConversionFailed, err)
	}

	if cfg.Width < 1 || cfg.Height < 1 {
		return nil, fmt.Errorf("%w: empty image", ErrConversionFailed)
	}

	if cfg.Width*cfg.Height > c.maxPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrImageTooLarge, cfg.Width, cfg.Height)
	}

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConversionFailed, err)
	}

	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrConversionFailed, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, Flatten(img)); err != nil {
		return nil, fmt.Errorf("%w: encode: %v", ErrConversionFailed, err)
	}

	imp := pdfcpu.DefaultImportConfig()
	imp.PageDim = c.PageDim(cfg.Width, cfg.Height)
	imp.UserDim = true
	imp.Pos = types.BottomLeft
	imp.DPI = c.dpi
	imp.Scale = 1
	imp.ScaleAbs = true

	conf := model.NewDefaultConfiguration()
	if err := api.ImportImages(nil, w, []io.Reader{&buf}, imp, conf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConversionFailed, err)
	}

	c.logger.Debug(
		"image converted",
		"format", format,
		"width", cfg.Width,
		"height", cfg.Height,
	)

	return &Result{
		Width:  cfg.Width,
		Height: cfg.Height,
		Format: format,
	}, nil
}
