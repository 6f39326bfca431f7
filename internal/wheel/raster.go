package wheel

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
)

type fontKind uint8

const (
	fontRegular fontKind = iota
	fontBold
	fontMono
	fontMonoBold
)

func styleFont(style TextStyle) fontKind {
	switch {
	case style.Mono && style.Bold:
		return fontMonoBold
	case style.Mono:
		return fontMono
	case style.Bold:
		return fontBold
	default:
		return fontRegular
	}
}

type fontSet [4]*truetype.Font

var loadFonts = sync.OnceValues(func() (*fontSet, error) {
	sources := [...][]byte{
		fontRegular:  goregular.TTF,
		fontBold:     gobold.TTF,
		fontMono:     gomono.TTF,
		fontMonoBold: gomonobold.TTF,
	}

	var fonts fontSet
	for kind, ttf := range sources {
		f, err := truetype.Parse(ttf)
		if err != nil {
			return nil, fmt.Errorf("parsing font %d: %w", kind, err)
		}
		fonts[kind] = f
	}

	return &fonts, nil
})

type faceKey struct {
	kind fontKind
	size float64
}

// Raster is a PNG Figure drawn with gg.
type Raster struct {
	dc    *gg.Context
	view  viewport
	fonts *fontSet
	faces map[faceKey]font.Face
}

func NewRaster(pixels int, dpi float64, background color.NRGBA) (*Raster, error) {
	fonts, err := loadFonts()
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(pixels, pixels)
	dc.SetColor(background)
	dc.Clear()

	return &Raster{
		dc:    dc,
		view:  viewport{pixels: float64(pixels), dpi: dpi},
		fonts: fonts,
		faces: make(map[faceKey]font.Face),
	}, nil
}

// gg uses a y-down pixel space, so angles are mirrored.
func ggAngle(degrees float64) float64 {
	return -gg.Radians(degrees)
}

func (r *Raster) fillAndStroke(fill, edge color.NRGBA, width float64) {
	r.dc.SetColor(fill)
	r.dc.FillPreserve()
	r.dc.SetColor(edge)
	r.dc.SetLineWidth(r.view.points(width))
	r.dc.Stroke()
}

func (r *Raster) Wedge(w Wedge) {
	cx, cy := r.view.toPixel(w.Center)
	outer := r.view.length(w.Radius)
	inner := r.view.length(w.Radius - w.Width)

	r.dc.NewSubPath()
	r.dc.DrawArc(cx, cy, outer, ggAngle(w.From), ggAngle(w.To))
	r.dc.DrawArc(cx, cy, inner, ggAngle(w.To), ggAngle(w.From))
	r.dc.ClosePath()
	r.fillAndStroke(w.Fill, w.Edge, w.EdgeWidth)
}

func (r *Raster) Circle(c Circle) {
	cx, cy := r.view.toPixel(c.Center)
	r.dc.DrawCircle(cx, cy, r.view.length(c.Radius))
	r.fillAndStroke(c.Fill, c.Edge, c.EdgeWidth)
}

func (r *Raster) Line(l Line) {
	x1, y1 := r.view.toPixel(l.From)
	x2, y2 := r.view.toPixel(l.To)

	r.dc.DrawLine(x1, y1, x2, y2)
	r.dc.SetColor(l.Color)
	r.dc.SetLineWidth(r.view.points(l.Width))
	r.dc.Stroke()
}

func (r *Raster) Rect(rect Rect) {
	x, y := r.view.toPixel(Point{X: rect.Origin.X, Y: rect.Origin.Y + rect.Height})

	r.dc.DrawRectangle(x, y, r.view.length(rect.Width), r.view.length(rect.Height))
	r.dc.SetColor(rect.Edge)
	r.dc.SetLineWidth(r.view.points(rect.EdgeWidth))
	r.dc.Stroke()
}

func (r *Raster) face(style TextStyle) font.Face {
	key := faceKey{kind: styleFont(style), size: style.Size}

	if f, ok := r.faces[key]; ok {
		return f
	}

	f := truetype.NewFace(r.fonts[key.kind], &truetype.Options{
		Size:    style.Size,
		DPI:     r.view.dpi,
		Hinting: font.HintingFull,
	})
	r.faces[key] = f

	return f
}

func (r *Raster) Text(t Text) {
	x, y := r.view.toPixel(t.At)

	var ax, ay float64
	switch t.Style.HAlign {
	case AlignLeft:
		ax = 0
	case AlignRight:
		ax = 1
	default:
		ax = 0.5
	}

	switch t.Style.VAlign {
	case AnchorBaseline:
		ay = 0
	case AnchorTop:
		ay = 1
	default:
		ay = 0.5
	}

	r.dc.SetFontFace(r.face(t.Style))
	r.dc.SetColor(t.Style.Color)
	r.dc.DrawStringAnchored(t.Value, math.Round(x), math.Round(y), ax, ay)
}

func (r *Raster) Encode(w io.Writer) error {
	if err := r.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}

	return nil
}

func (r *Raster) ContentType() string {
	return "image/png"
}
