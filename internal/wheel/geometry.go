package wheel

import "math"

const (
	OuterRadius = 10.0
	InnerRadius = 2.0
	// Extent is the half width of the square plot area around the disc.
	Extent = OuterRadius + 3

	topAngle = 90.0
)

type Point struct {
	X, Y float64
}

// Polar places a point at radius r and angle degrees, counter-clockwise
// from the positive x axis.
func Polar(r, degrees float64) Point {
	rad := degrees * math.Pi / 180
	return Point{X: r * math.Cos(rad), Y: r * math.Sin(rad)}
}

// Geometry maps week and weekday indices onto the disc. Sectors proceed
// clockwise from 12 o'clock.
type Geometry struct {
	SectorAngle float64
	RingWidth   float64
}

func NewGeometry(totalWeeks int) Geometry {
	return Geometry{
		SectorAngle: 360 / float64(totalWeeks),
		RingWidth:   (OuterRadius - InnerRadius) / DaysPerWeek,
	}
}

// WeekAngle is the angle of the leading (counter-clockwise) edge of a week.
func (g Geometry) WeekAngle(week int) float64 {
	return topAngle - float64(week)*g.SectorAngle
}

// WeekSpan returns the angular range [from, to] of a week sector, from < to.
func (g Geometry) WeekSpan(week int) (from, to float64) {
	return g.WeekAngle(week + 1), g.WeekAngle(week)
}

// Ring returns the radial band of a weekday, Monday outermost.
func (g Geometry) Ring(weekday int) (inner, outer float64) {
	outer = OuterRadius - float64(weekday)*g.RingWidth
	return outer - g.RingWidth, outer
}

func (g Geometry) RingMiddle(weekday int) float64 {
	inner, outer := g.Ring(weekday)
	return (inner + outer) / 2
}

// MidAngle returns the angle half way between from and the angle that
// follows it clockwise.
func MidAngle(from, next float64) float64 {
	if next > from {
		next -= 360
	}

	return (from + next) / 2
}
