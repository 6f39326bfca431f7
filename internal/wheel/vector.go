package wheel

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"
)

// Vector is an SVG Figure written with svgo.
type Vector struct {
	buf    bytes.Buffer
	canvas *svg.SVG
	view   viewport
	ended  bool
}

func NewVector(pixels int, dpi float64, background color.NRGBA) *Vector {
	v := &Vector{view: viewport{pixels: float64(pixels), dpi: dpi}}
	v.canvas = svg.New(&v.buf)
	v.canvas.Start(pixels, pixels)
	v.canvas.Rect(0, 0, pixels, pixels, svgFill(background))

	return v
}

func svgNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func svgPaint(property string, c color.NRGBA) string {
	s := property + ":" + Hex(color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
	if c.A != 0xff {
		s += ";" + property + "-opacity:" + svgNumber(float64(c.A)/0xff)
	}

	return s
}

func svgFill(c color.NRGBA) string {
	return svgPaint("fill", c)
}

func (v *Vector) svgStroke(c color.NRGBA, width float64) string {
	return svgPaint("stroke", c) + ";stroke-width:" + svgNumber(v.view.points(width))
}

func (v *Vector) pixel(p Point) (int, int) {
	x, y := v.view.toPixel(p)
	return int(math.Round(x)), int(math.Round(y))
}

// arc appends two half arcs through the midpoint so that a full circle
// sector still produces distinct endpoints. sweep follows the SVG flag.
func (v *Vector) arc(d *strings.Builder, center Point, radius, from, to float64, sweep int) {
	r := svgNumber(v.view.length(radius))

	for _, angle := range []float64{(from + to) / 2, to} {
		p := Polar(radius, angle)
		x, y := v.view.toPixel(Point{X: center.X + p.X, Y: center.Y + p.Y})
		fmt.Fprintf(d, " A %s %s 0 0 %d %s %s", r, r, sweep, svgNumber(x), svgNumber(y))
	}
}

func (v *Vector) Wedge(w Wedge) {
	inner := w.Radius - w.Width
	start := Polar(w.Radius, w.From)
	sx, sy := v.view.toPixel(Point{X: w.Center.X + start.X, Y: w.Center.Y + start.Y})
	end := Polar(inner, w.To)
	ex, ey := v.view.toPixel(Point{X: w.Center.X + end.X, Y: w.Center.Y + end.Y})

	var d strings.Builder
	fmt.Fprintf(&d, "M %s %s", svgNumber(sx), svgNumber(sy))
	// counter-clockwise on screen is sweep 0 in a y-down space
	v.arc(&d, w.Center, w.Radius, w.From, w.To, 0)
	fmt.Fprintf(&d, " L %s %s", svgNumber(ex), svgNumber(ey))
	v.arc(&d, w.Center, inner, w.To, w.From, 1)
	d.WriteString(" Z")

	v.canvas.Path(d.String(), svgFill(w.Fill)+";"+v.svgStroke(w.Edge, w.EdgeWidth))
}

func (v *Vector) Circle(c Circle) {
	x, y := v.pixel(c.Center)
	r := int(math.Round(v.view.length(c.Radius)))

	v.canvas.Circle(x, y, r, svgFill(c.Fill)+";"+v.svgStroke(c.Edge, c.EdgeWidth))
}

func (v *Vector) Line(l Line) {
	x1, y1 := v.pixel(l.From)
	x2, y2 := v.pixel(l.To)

	v.canvas.Line(x1, y1, x2, y2, v.svgStroke(l.Color, l.Width))
}

func (v *Vector) Rect(r Rect) {
	x, y := v.pixel(Point{X: r.Origin.X, Y: r.Origin.Y + r.Height})
	w := int(math.Round(v.view.length(r.Width)))
	h := int(math.Round(v.view.length(r.Height)))

	v.canvas.Rect(x, y, w, h, "fill:none;"+v.svgStroke(r.Edge, r.EdgeWidth))
}

func (v *Vector) Text(t Text) {
	x, y := v.pixel(t.At)

	style := []string{
		svgFill(t.Style.Color),
		"font-size:" + svgNumber(v.view.points(t.Style.Size)) + "px",
	}

	if t.Style.Mono {
		style = append(style, "font-family:monospace")
	} else {
		style = append(style, "font-family:sans-serif")
	}

	if t.Style.Bold {
		style = append(style, "font-weight:bold")
	}

	switch t.Style.HAlign {
	case AlignLeft:
		style = append(style, "text-anchor:start")
	case AlignRight:
		style = append(style, "text-anchor:end")
	default:
		style = append(style, "text-anchor:middle")
	}

	switch t.Style.VAlign {
	case AnchorBaseline:
		style = append(style, "dominant-baseline:alphabetic")
	case AnchorTop:
		style = append(style, "dominant-baseline:hanging")
	default:
		style = append(style, "dominant-baseline:central")
	}

	// preserve the column alignment of the monospace info blocks
	if t.Style.Mono {
		style = append(style, "white-space:pre")
	}

	v.canvas.Text(x, y, t.Value, strings.Join(style, ";"))
}

func (v *Vector) Encode(w io.Writer) error {
	if !v.ended {
		v.canvas.End()
		v.ended = true
	}

	if _, err := w.Write(v.buf.Bytes()); err != nil {
		return fmt.Errorf("writing svg: %w", err)
	}

	return nil
}

func (v *Vector) ContentType() string {
	return "image/svg+xml"
}
