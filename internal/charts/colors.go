package charts

// One stable color per behavior category, shared by all three charts so
// the legend reads the same everywhere.
var categoryColors = map[string]string{
	"Foraging":   "#2e7d32",
	"Resting":    "#1565c0",
	"Locomotion": "#ef6c00",
	"Social":     "#6a1b9a",
	"Play":       "#00838f",
	"Stereotypy": "#c62828",
}

const noDataColor = "#d0d0d0"

func colorFor(category string) string {
	if c, ok := categoryColors[category]; ok {
		return c
	}
	return noDataColor
}
