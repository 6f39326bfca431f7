package wheel

import "strconv"

const (
	wedgeEdgeWidth    = 0.5
	weekLabelOffset   = 0.3
	monthTickLength   = 0.3
	monthLabelOffset  = 0.6
	weekdayLabelAngle = 135.0
	scanlineCount     = 100
	infoInset         = 0.5
	infoLineSpacing   = 0.55
)

var weekdayLabels = [DaysPerWeek]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Draw issues every drawing command for l onto s.
func Draw(s Surface, l *Layout, p *Palette) {
	if p == nil {
		p = DefaultPalette()
	}

	g := NewGeometry(l.TotalWeeks)

	drawDays(s, l, g, p)
	drawWeekLabels(s, l, g, p)
	drawMonths(s, l, g, p)
	drawCustomMonths(s, l, g, p)
	drawCenter(s, l, p)
	drawWeekdayLabels(s, g, p)
	drawScanlines(s, p)
	drawFrame(s, p)
	drawInfo(s, l, p)
}

func drawDays(s Surface, l *Layout, g Geometry, p *Palette) {
	for _, day := range l.Days {
		from, to := g.WeekSpan(day.Week)
		_, outer := g.Ring(day.Weekday)

		s.Wedge(Wedge{
			Radius:    outer,
			Width:     g.RingWidth,
			From:      from,
			To:        to,
			Fill:      p.Fill(day.Status),
			Edge:      p.Outline,
			EdgeWidth: wedgeEdgeWidth,
		})
	}
}

func drawWeekLabels(s Surface, l *Layout, g Geometry, p *Palette) {
	style := TextStyle{Color: p.Label, Size: 8, Bold: true}

	for week := 0; week < l.TotalWeeks; week++ {
		from, to := g.WeekSpan(week)

		s.Text(Text{
			At:    Polar(OuterRadius+weekLabelOffset, (from+to)/2),
			Value: "W" + strconv.Itoa(week+1),
			Style: style,
		})
	}
}

func drawMonths(s Surface, l *Layout, g Geometry, p *Palette) {
	style := TextStyle{Color: p.Month, Size: 10, Bold: true}

	for i, month := range l.Months {
		tick := g.WeekAngle(month.Week)

		s.Line(Line{
			From:  Polar(OuterRadius, tick),
			To:    Polar(OuterRadius+monthTickLength, tick),
			Color: p.Month,
			Width: 2,
		})

		// the last label runs up to where the next year would start
		next := g.WeekAngle(l.TotalWeeks)
		if i < len(l.Months)-1 {
			next = g.WeekAngle(l.Months[i+1].Week)
		}

		s.Text(Text{
			At:    Polar(OuterRadius+monthLabelOffset, MidAngle(tick, next)),
			Value: month.Label,
			Style: style,
		})
	}
}

func drawCustomMonths(s Surface, l *Layout, g Geometry, p *Palette) {
	style := TextStyle{Color: p.Label, Size: 12, Bold: true}
	middle := (InnerRadius + OuterRadius) / 2

	for i, month := range l.CustomMonths {
		start := g.WeekAngle(month.FirstWeek)
		end := g.WeekAngle(month.FirstWeek + month.Weeks)

		s.Text(Text{
			At:    Polar(middle, (start+end)/2),
			Value: month.Label,
			Style: style,
		})

		if i == 0 {
			continue
		}

		s.Line(Line{
			From:  Polar(InnerRadius, start),
			To:    Polar(OuterRadius, start),
			Color: p.Boundary,
			Width: 1,
		})
	}
}

func drawCenter(s Surface, l *Layout, p *Palette) {
	s.Circle(Circle{
		Radius:    InnerRadius,
		Fill:      p.Background,
		Edge:      p.Outline,
		EdgeWidth: 1,
	})

	s.Text(Text{
		Value: strconv.Itoa(l.Year),
		Style: TextStyle{Color: p.Label, Size: 16, Bold: true},
	})
}

func drawWeekdayLabels(s Surface, g Geometry, p *Palette) {
	style := TextStyle{Color: p.Label, Size: 8}

	for i, label := range weekdayLabels {
		s.Text(Text{
			At:    Polar(g.RingMiddle(i), weekdayLabelAngle),
			Value: label,
			Style: style,
		})
	}
}

func drawScanlines(s Surface, p *Palette) {
	step := 2 * Extent / (scanlineCount - 1)

	for i := 0; i < scanlineCount; i++ {
		y := -Extent + float64(i)*step

		s.Line(Line{
			From:  Point{X: -Extent, Y: y},
			To:    Point{X: Extent, Y: y},
			Color: p.Scanline,
			Width: 0.5,
		})
	}
}

func drawFrame(s Surface, p *Palette) {
	s.Rect(Rect{
		Origin:    Point{X: -Extent, Y: -Extent},
		Width:     2 * Extent,
		Height:    2 * Extent,
		Edge:      p.Frame,
		EdgeWidth: 3,
	})
}

func drawInfo(s Surface, l *Layout, p *Palette) {
	today := []string{"TODAY: " + dayString(l.Today)}
	if IsLeapDay(l.Today) {
		today = append(today, "LEAP DAY! An extra day this year.")
	}

	span := []string{
		"START: " + dayString(l.Start),
		"END:   " + dayString(l.End),
		"WEEKS: " + strconv.Itoa(l.TotalWeeks),
	}

	left := TextStyle{Color: p.Info, Size: 10, Mono: true, HAlign: AlignLeft, VAlign: AnchorBaseline}
	right := left
	right.HAlign = AlignRight

	drawTextBlock(s, Point{X: -Extent + infoInset, Y: -Extent + infoInset}, today, left)
	drawTextBlock(s, Point{X: Extent - infoInset, Y: -Extent + infoInset}, span, right)
}

// drawTextBlock stacks lines upwards so the last line sits on the baseline at.
func drawTextBlock(s Surface, at Point, lines []string, style TextStyle) {
	for i := range lines {
		line := lines[len(lines)-1-i]

		s.Text(Text{
			At:    Point{X: at.X, Y: at.Y + float64(i)*infoLineSpacing},
			Value: line,
			Style: style,
		})
	}
}
