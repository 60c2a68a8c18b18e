package charts

import (
	"fmt"
	"html"
	"math"
	"strings"
	"zoodash/internal/aggregate"
)

const (
	lineChartWidth  = 520
	lineChartHeight = 260
	lineMarginX     = 48
	lineMarginY     = 28
)

// deviationLimit returns the symmetric y extent: at least ±5 percentage
// points, or ±1.2x the largest observed magnitude, whichever is larger.
func deviationLimit(points []aggregate.DeviationPoint) float64 {
	maxAbs := 0.0
	for _, p := range points {
		for _, d := range p.Deltas {
			if a := math.Abs(d); a > maxAbs {
				maxAbs = a
			}
		}
	}
	return math.Max(5, maxAbs*1.2)
}

// RenderDeviationLines draws one line per behavior category across the
// trailing window, y-domain centered on zero. Each point carries a
// <title> tooltip and data attributes for the page's hover/click handler.
func RenderDeviationLines(points []aggregate.DeviationPoint) string {
	var b strings.Builder
	openSVG(&b, lineChartWidth, lineChartHeight)

	if len(points) == 0 {
		noData(&b, lineChartWidth, lineChartHeight)
		b.WriteString("</svg>")
		return b.String()
	}

	limit := deviationLimit(points)
	y := NewLinearScale(-limit, limit, float64(lineChartHeight-lineMarginY), lineMarginY)
	x := NewLinearScale(0, float64(len(points)-1), lineMarginX, float64(lineChartWidth-lineMarginX))

	// zero line and extent labels
	zeroY := y.Map(0)
	fmt.Fprintf(&b, `<line x1="%d" y1="%.1f" x2="%d" y2="%.1f" stroke="#bbb" stroke-dasharray="2,2"/>`,
		lineMarginX, zeroY, lineChartWidth-lineMarginX, zeroY)
	for _, tick := range []float64{-limit, 0, limit} {
		fmt.Fprintf(&b, `<text x="%d" y="%.1f" font-size="10" fill="#888" text-anchor="end">%+.1f</text>`,
			lineMarginX-6, y.Map(tick)+3, tick)
	}

	for i, p := range points {
		px := x.Map(float64(i))
		// short date label: MM-DD
		label := p.Date
		if len(label) == 10 {
			label = label[5:]
		}
		fmt.Fprintf(&b, `<text x="%.1f" y="%d" font-size="9" fill="#888" text-anchor="middle">%s</text>`,
			px, lineChartHeight-8, html.EscapeString(label))
	}

	for _, cat := range aggregate.Categories {
		var path strings.Builder
		for i, p := range points {
			cmd := "L"
			if i == 0 {
				cmd = "M"
			}
			fmt.Fprintf(&path, "%s%.1f,%.1f ", cmd, x.Map(float64(i)), y.Map(p.Deltas[cat]))
		}
		fmt.Fprintf(&b, `<path d="%s" fill="none" stroke="%s" stroke-width="1.5"/>`,
			strings.TrimSpace(path.String()), colorFor(cat))

		for i, p := range points {
			d := p.Deltas[cat]
			fmt.Fprintf(&b, `<circle cx="%.1f" cy="%.1f" r="3" fill="%s" class="dev-point" data-date="%s" data-category="%s" data-value="%.1f"><title>%s %s: %+.1f pp</title></circle>`,
				x.Map(float64(i)), y.Map(d), colorFor(cat),
				html.EscapeString(p.Date), html.EscapeString(cat), d,
				html.EscapeString(p.Date), html.EscapeString(cat), d)
		}
	}

	b.WriteString("</svg>")
	return b.String()
}
