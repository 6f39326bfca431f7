package wheel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeometry(t *testing.T) {
	g := NewGeometry(52)

	from, to := g.WeekSpan(0)
	assert.Equal(t, 90.0, to)
	assert.InDelta(t, 90-360.0/52, from, 1e-9)

	// sectors proceed clockwise and cover the full circle
	assert.InDelta(t, -270.0, g.WeekAngle(52), 1e-9)

	inner, outer := g.Ring(0)
	assert.Equal(t, OuterRadius, outer)
	assert.InDelta(t, OuterRadius-(OuterRadius-InnerRadius)/7, inner, 1e-9)

	inner, _ = g.Ring(6)
	assert.InDelta(t, InnerRadius, inner, 1e-9)
}

func TestPolar(t *testing.T) {
	p := Polar(2, 90)
	assert.InDelta(t, 0, p.X, 1e-9)
	assert.InDelta(t, 2, p.Y, 1e-9)

	p = Polar(1, 180)
	assert.InDelta(t, -1, p.X, 1e-9)
	assert.InDelta(t, 0, p.Y, 1e-9)
}

func TestMidAngle(t *testing.T) {
	assert.Equal(t, 60.0, MidAngle(90, 30))
	// the next boundary of the final label wraps past 12 o'clock
	assert.Equal(t, -240.0, MidAngle(-210, -270))
	assert.Equal(t, -90.0, MidAngle(0, 180))
}
