package charts

import (
	"fmt"
	"html"
	"strings"
	"zoodash/internal/aggregate"
)

const (
	barChartWidth  = 520
	barChartHeight = 240
	barMarginX     = 48
	barMarginY     = 24
)

// RenderPercentageBars draws one bar per behavior category on a fixed
// 0-100 domain, with a dashed baseline marker over any category that has
// a nonzero baseline. An empty percentages map renders a "no data"
// placeholder instead of an empty axis.
func RenderPercentageBars(percentages, baseline map[string]float64) string {
	var b strings.Builder
	openSVG(&b, barChartWidth, barChartHeight)

	if len(percentages) == 0 {
		noData(&b, barChartWidth, barChartHeight)
		b.WriteString("</svg>")
		return b.String()
	}

	plotW := float64(barChartWidth - 2*barMarginX)
	plotH := float64(barChartHeight - 2*barMarginY)
	y := NewLinearScale(0, 100, float64(barChartHeight-barMarginY), float64(barChartHeight)-barMarginY-plotH)

	slot := plotW / float64(len(aggregate.Categories))
	barW := slot * 0.6

	// y axis gridlines every 25%
	for _, tick := range []float64{0, 25, 50, 75, 100} {
		ty := y.Map(tick)
		fmt.Fprintf(&b, `<line x1="%d" y1="%.1f" x2="%d" y2="%.1f" stroke="#eee"/>`,
			barMarginX, ty, barChartWidth-barMarginX, ty)
		fmt.Fprintf(&b, `<text x="%d" y="%.1f" font-size="10" fill="#888" text-anchor="end">%.0f%%</text>`,
			barMarginX-6, ty+3, tick)
	}

	for i, cat := range aggregate.Categories {
		pct := percentages[cat]
		x := float64(barMarginX) + float64(i)*slot + (slot-barW)/2
		top := y.Map(pct)
		h := y.Map(0) - top

		fmt.Fprintf(&b, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"><title>%s: %.1f%%</title></rect>`,
			x, top, barW, h, colorFor(cat), html.EscapeString(cat), pct)

		if base := baseline[cat]; base != 0 {
			by := y.Map(base)
			fmt.Fprintf(&b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#333" stroke-width="1.5" stroke-dasharray="4,3"><title>%s baseline: %.1f%%</title></line>`,
				x-4, by, x+barW+4, by, html.EscapeString(cat), base)
		}

		fmt.Fprintf(&b, `<text x="%.1f" y="%d" font-size="9" fill="#555" text-anchor="middle">%s</text>`,
			x+barW/2, barChartHeight-barMarginY+14, html.EscapeString(cat))
	}

	b.WriteString("</svg>")
	return b.String()
}

func openSVG(b *strings.Builder, width, height int) {
	fmt.Fprintf(b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`,
		width, height, width, height)
}

func noData(b *strings.Builder, width, height int) {
	fmt.Fprintf(b, `<text x="%d" y="%d" font-size="13" fill="#999" text-anchor="middle">no data</text>`,
		width/2, height/2)
}
