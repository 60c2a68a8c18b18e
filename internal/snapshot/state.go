package snapshot

import (
	"time"
	"zoodash/internal/zooapi"
)

// State is the persisted form of the poller caches. A restored state is
// shown as stale until the first successful poll confirms it, so a
// restarted dashboard is not blank while the backend is slow.
type State struct {
	SavedAt time.Time `json:"saved_at"`

	Animals []zooapi.Animal `json:"animals,omitempty"`
	KPI     *zooapi.KPI     `json:"kpi,omitempty"`

	AlertScope string         `json:"alert_scope"`
	Alerts     []zooapi.Alert `json:"alerts,omitempty"`

	AnimalScope   string                              `json:"animal_scope"`
	Current       *zooapi.CurrentBehavior             `json:"current,omitempty"`
	Timeline      []zooapi.TimelineEntry              `json:"timeline,omitempty"`
	Reports       []zooapi.Report                     `json:"reports,omitempty"`
	HistoryWindow []string                            `json:"history_window,omitempty"`
	Distributions map[string]*zooapi.DayDistribution `json:"distributions,omitempty"`
}

// Source is implemented by the poller's resource set.
type Source interface {
	Snapshot() *State
	RestoreSnapshot(state *State)
}
