package wheel

import (
	"image/color"
	"io"
)

// Surface is a 2D drawing target in plot coordinates: the origin is the
// centre of the disc, y grows upwards and the visible area is
// [-Extent, Extent] on both axes. Widths and font sizes are in points.
type Surface interface {
	Wedge(w Wedge)
	Circle(c Circle)
	Line(l Line)
	Rect(r Rect)
	Text(t Text)
}

// Figure is a Surface that produces one encoded image.
type Figure interface {
	Surface
	Encode(w io.Writer) error
	ContentType() string
}

// Wedge is an annular sector between From and To degrees (From < To,
// counter-clockwise), from Radius-Width to Radius.
type Wedge struct {
	Center    Point
	Radius    float64
	Width     float64
	From      float64
	To        float64
	Fill      color.NRGBA
	Edge      color.NRGBA
	EdgeWidth float64
}

type Circle struct {
	Center    Point
	Radius    float64
	Fill      color.NRGBA
	Edge      color.NRGBA
	EdgeWidth float64
}

type Line struct {
	From  Point
	To    Point
	Color color.NRGBA
	Width float64
}

// Rect is an unfilled axis-aligned rectangle anchored at its lower left corner.
type Rect struct {
	Origin    Point
	Width     float64
	Height    float64
	Edge      color.NRGBA
	EdgeWidth float64
}

type HAlign uint8

const (
	AlignCenter HAlign = iota
	AlignLeft
	AlignRight
)

type VAlign uint8

const (
	AnchorMiddle VAlign = iota
	AnchorBaseline
	AnchorTop
)

type TextStyle struct {
	Color  color.NRGBA
	Size   float64
	Bold   bool
	Mono   bool
	HAlign HAlign
	VAlign VAlign
}

// Text is a single horizontal line of text.
type Text struct {
	At    Point
	Value string
	Style TextStyle
}
