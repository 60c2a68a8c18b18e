package zooapi

import "time"

// Wire types mirror the backend JSON field names (Spanish for the zoo
// domain fields, as the backend emits them).

type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

type Animal struct {
	ID       string             `json:"animal_id"`
	Name     string             `json:"nombre"`
	Species  string             `json:"especie"`
	Baseline map[string]float64 `json:"baseline,omitempty"`
}

const (
	AlertOpen = "open"
	AlertAck  = "ack"
)

type Alert struct {
	ID       string    `json:"alert_id"`
	AnimalID string    `json:"animal_id,omitempty"`
	Type     string    `json:"tipo"`
	Severity string    `json:"severidad"`
	Summary  string    `json:"resumen"`
	Ts       time.Time `json:"ts"`
	State    string    `json:"estado"`
}

// Unread reports whether the alert is still open (not acknowledged).
func (a *Alert) Unread() bool {
	return a.State == AlertOpen
}

type CurrentBehavior struct {
	AnimalID   string    `json:"animal_id"`
	Behavior   string    `json:"behavior"`
	Confidence float64   `json:"confidence"`
	Ts         time.Time `json:"ts"`
}

// ConfidencePct reports the classifier confidence on a 0-100 scale.
func (c *CurrentBehavior) ConfidencePct() float64 {
	return c.Confidence * 100
}

type TimelineEntry struct {
	Hour     int    `json:"hour"`
	Behavior string `json:"behavior"`
}

type DayDistribution struct {
	Date        string             `json:"date"`
	Percentages map[string]float64 `json:"percentages"`
	Relative    bool               `json:"relative"`
}

type Report struct {
	ID          string `json:"report_id"`
	PeriodStart string `json:"period_start"`
	AlertCount  int    `json:"alert_count"`
}

// KPI is the backend /api/metrics payload shown on the dashboard header.
type KPI struct {
	UptimeDays int `json:"uptime_days"`
	AlertsOpen int `json:"alerts_open"`
	Animals    int `json:"animals"`
}
