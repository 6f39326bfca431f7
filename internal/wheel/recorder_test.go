package wheel

import "image/color"

type recorder struct {
	wedges  []Wedge
	circles []Circle
	lines   []Line
	rects   []Rect
	texts   []Text
}

func (r *recorder) Wedge(w Wedge)   { r.wedges = append(r.wedges, w) }
func (r *recorder) Circle(c Circle) { r.circles = append(r.circles, c) }
func (r *recorder) Line(l Line)     { r.lines = append(r.lines, l) }
func (r *recorder) Rect(rect Rect)  { r.rects = append(r.rects, rect) }
func (r *recorder) Text(t Text)     { r.texts = append(r.texts, t) }

func (r *recorder) textValues() []string {
	values := make([]string, len(r.texts))
	for i := range r.texts {
		values[i] = r.texts[i].Value
	}
	return values
}

func (r *recorder) linesColored(c color.NRGBA) []Line {
	var lines []Line
	for _, l := range r.lines {
		if l.Color == c {
			lines = append(lines, l)
		}
	}
	return lines
}
