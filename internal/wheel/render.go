package wheel

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"
	"time"
)

const (
	DefaultSize = 12.0
	DefaultDPI  = 100.0

	pointsPerInch = 72
)

type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatPNG, nil
	case FormatPNG, FormatSVG:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported image format %q, expected png or svg", s)
	}
}

// Options describe one render. Zero Start and Today fall back to the Monday
// on or before January 1 and to today as read from Clock in Location. Size
// is the width and height of the square figure in inches.
type Options struct {
	Year     int
	Start    time.Time
	Today    time.Time
	Clock    Clock
	Location *time.Location
	Size     float64
	DPI      float64
	Format   Format
	Palette  *Palette
}

var errNonPositiveSize = errors.New("figure size and dpi must be positive")

// Render lays out opts.Year and draws it onto a new Figure.
func Render(opts Options) (Figure, error) {
	today := opts.Today
	if today.IsZero() {
		today = Today(opts.Clock, opts.Location)
	}

	layout, err := NewLayout(opts.Year, opts.Start, today)
	if err != nil {
		return nil, fmt.Errorf("laying out %d: %w", opts.Year, err)
	}

	palette := opts.Palette
	if palette == nil {
		palette = DefaultPalette()
	}

	figure, err := NewFigure(opts.Format, opts.Size, opts.DPI, palette.Background)
	if err != nil {
		return nil, err
	}

	Draw(figure, layout, palette)

	return figure, nil
}

// NewFigure creates an empty square figure of size inches at dpi.
func NewFigure(format Format, size, dpi float64, background color.NRGBA) (Figure, error) {
	if size <= 0 || dpi <= 0 {
		return nil, fmt.Errorf("%w: size %.2f, dpi %.2f", errNonPositiveSize, size, dpi)
	}

	pixels := int(math.Round(size * dpi))

	switch format {
	case FormatPNG, "":
		raster, err := NewRaster(pixels, dpi, background)
		if err != nil {
			return nil, fmt.Errorf("creating raster figure: %w", err)
		}
		return raster, nil
	case FormatSVG:
		return NewVector(pixels, dpi, background), nil
	default:
		return nil, fmt.Errorf("unsupported image format %q", format)
	}
}

// viewport maps plot coordinates onto a square y-down pixel space.
type viewport struct {
	pixels float64
	dpi    float64
}

func (v viewport) scale() float64 {
	return v.pixels / (2 * Extent)
}

func (v viewport) toPixel(p Point) (float64, float64) {
	half := v.pixels / 2
	return half + p.X*v.scale(), half - p.Y*v.scale()
}

func (v viewport) length(l float64) float64 {
	return l * v.scale()
}

func (v viewport) points(pt float64) float64 {
	return pt * v.dpi / pointsPerInch
}
