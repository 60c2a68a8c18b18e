package aggregate

import (
	"time"
	"zoodash/internal/zooapi"
)

// Categories is the fixed behavior taxonomy shared with the backend.
// Every percentage mapping covers exactly this set.
var Categories = []string{"Foraging", "Resting", "Locomotion", "Social", "Play", "Stereotypy"}

const DateFormat = "2006-01-02"

// PercentagesFromTimeline converts hourly samples into percent-of-observed
// per category. Categories absent from the timeline yield 0. An empty
// timeline yields an empty map so callers render "no data" instead of
// dividing by zero.
func PercentagesFromTimeline(timeline []zooapi.TimelineEntry) map[string]float64 {
	result := make(map[string]float64)
	if len(timeline) == 0 {
		return result
	}

	counts := make(map[string]int, len(Categories))
	for _, entry := range timeline {
		counts[entry.Behavior]++
	}

	n := float64(len(timeline))
	for _, cat := range Categories {
		result[cat] = float64(counts[cat]) / n * 100
	}
	return result
}

// DeviationPoint is one calendar date with signed per-category deltas
// against the animal's baseline.
type DeviationPoint struct {
	Date   string             `json:"date"`
	Deltas map[string]float64 `json:"deltas"`
}

// Window returns `days` consecutive calendar dates ending at today,
// oldest first.
func Window(today time.Time, days int) []string {
	dates := make([]string, 0, days)
	for i := days - 1; i >= 0; i-- {
		dates = append(dates, today.AddDate(0, 0, -i).Format(DateFormat))
	}
	return dates
}

// DeviationHistory produces one point per window date, oldest first.
// A date without a distribution (failed or missing fetch) contributes
// all-zero deltas so the series keeps its fixed width. Distributions
// already expressed relative to baseline pass through unchanged;
// absolute ones have the baseline subtracted (baseline omission = 0).
func DeviationHistory(window []string, dists map[string]*zooapi.DayDistribution, baseline map[string]float64) []DeviationPoint {
	points := make([]DeviationPoint, 0, len(window))
	for _, date := range window {
		deltas := make(map[string]float64, len(Categories))
		dist := dists[date]
		for _, cat := range Categories {
			if dist == nil {
				deltas[cat] = 0
				continue
			}
			if dist.Relative {
				deltas[cat] = dist.Percentages[cat]
				continue
			}
			deltas[cat] = dist.Percentages[cat] - baseline[cat]
		}
		points = append(points, DeviationPoint{Date: date, Deltas: deltas})
	}
	return points
}
