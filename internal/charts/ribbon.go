package charts

import (
	"fmt"
	"html"
	"strings"
	"zoodash/internal/zooapi"
)

const (
	ribbonWidth  = 520
	ribbonHeight = 56
	ribbonLabelH = 14
)

// RenderRibbon draws the hour-by-hour strip of a day's dominant behavior:
// 24 fixed slots, one per hour, with hours that have no sample rendered
// as neutral "no data" cells.
func RenderRibbon(timeline []zooapi.TimelineEntry) string {
	byHour := make(map[int]string, len(timeline))
	for _, entry := range timeline {
		if entry.Hour >= 0 && entry.Hour < 24 {
			byHour[entry.Hour] = entry.Behavior
		}
	}

	var b strings.Builder
	openSVG(&b, ribbonWidth, ribbonHeight)

	slotW := float64(ribbonWidth) / 24
	cellH := ribbonHeight - ribbonLabelH
	for hour := 0; hour < 24; hour++ {
		x := float64(hour) * slotW
		behavior, ok := byHour[hour]
		if ok {
			fmt.Fprintf(&b, `<rect x="%.1f" y="0" width="%.1f" height="%d" fill="%s"><title>%02d:00 %s</title></rect>`,
				x, slotW, cellH, colorFor(behavior), hour, html.EscapeString(behavior))
		} else {
			fmt.Fprintf(&b, `<rect x="%.1f" y="0" width="%.1f" height="%d" fill="%s"><title>%02d:00 no data</title></rect>`,
				x, slotW, cellH, noDataColor, hour)
		}
		if hour%6 == 0 {
			fmt.Fprintf(&b, `<text x="%.1f" y="%d" font-size="9" fill="#888">%02d</text>`,
				x+2, ribbonHeight-3, hour)
		}
	}

	b.WriteString("</svg>")
	return b.String()
}
