package wheel

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

type Palette struct {
	Background color.NRGBA
	Completed  color.NRGBA
	Current    color.NRGBA
	LeapToday  color.NRGBA
	LeapFuture color.NRGBA
	Outline    color.NRGBA
	Label      color.NRGBA
	Month      color.NRGBA
	Boundary   color.NRGBA
	Scanline   color.NRGBA
	Frame      color.NRGBA
	Info       color.NRGBA
}

func DefaultPalette() *Palette {
	return &Palette{
		Background: MustParseHex("#000000"),
		Completed:  MustParseHex("#00FF00"),
		Current:    MustParseHex("#FFFFFF"),
		LeapToday:  MustParseHex("#FFD700"),
		LeapFuture: MustParseHex("#003A3A"),
		Outline:    MustParseHex("#006600"),
		Label:      MustParseHex("#00AA00"),
		Month:      MustParseHex("#00FFAA"),
		Boundary:   MustParseHex("#00CC00"),
		Scanline:   withAlpha(MustParseHex("#003300"), 0.1),
		Frame:      MustParseHex("#005500"),
		Info:       MustParseHex("#00FF00"),
	}
}

// Fill returns the wedge color for a day status.
func (p *Palette) Fill(s Status) color.NRGBA {
	switch s {
	case StatusCompleted:
		return p.Completed
	case StatusCurrent:
		return p.Current
	case StatusLeapToday:
		return p.LeapToday
	case StatusLeapFuture:
		return p.LeapFuture
	default:
		return p.Background
	}
}

// ParseHex parses #RGB, #RRGGBB and #RRGGBBAA colors.
func ParseHex(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")

	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}

	if len(hex) == 6 {
		hex += "ff"
	}

	if len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid hex color: %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color: %q", s)
	}

	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

func MustParseHex(s string) color.NRGBA {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}

	return c
}

// Hex formats c as #RRGGBB, or #RRGGBBAA when it is not opaque.
func Hex(c color.NRGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}

	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

func withAlpha(c color.NRGBA, alpha float64) color.NRGBA {
	c.A = uint8(alpha*255 + 0.5)
	return c
}
