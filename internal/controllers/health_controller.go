package controllers

import (
	"fmt"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"zoodash/internal/poller"
	"zoodash/internal/session"
)

type HealthController struct {
	store     session.StoreInterface
	resources *poller.Resources
	startTime time.Time
}

type resourceHealth struct {
	HasData   bool   `json:"has_data"`
	Stale     bool   `json:"stale"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

type healthResponse struct {
	Status        string                    `json:"status"`
	Uptime        string                    `json:"uptime"`
	UptimeSeconds float64                   `json:"uptime_seconds"`
	Session       string                    `json:"session"`
	Selected      string                    `json:"selected_animal,omitempty"`
	Resources     map[string]resourceHealth `json:"resources"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	res := hc.resources
	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		Session:       hc.store.State().String(),
		Selected:      res.SelectedAnimal(),
		Resources: map[string]resourceHealth{
			"animals":  health(getOK(res.Animals.Get()), res.Animals.Stale(), res.Animals.UpdatedAt()),
			"kpi":      health(getOK(res.KPI.Get()), res.KPI.Stale(), res.KPI.UpdatedAt()),
			"alerts":   health(getOK(res.Alerts.Get()), res.Alerts.Stale(), res.Alerts.UpdatedAt()),
			"current":  health(getOK(res.Current.Get()), res.Current.Stale(), res.Current.UpdatedAt()),
			"timeline": health(getOK(res.Timeline.Get()), res.Timeline.Stale(), res.Timeline.UpdatedAt()),
			"reports":  health(getOK(res.Reports.Get()), res.Reports.Stale(), res.Reports.UpdatedAt()),
			"history":  historyHealth(res),
		},
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func getOK[T any](_ T, ok bool) bool {
	return ok
}

func health(hasData, stale bool, updatedAt time.Time) resourceHealth {
	h := resourceHealth{HasData: hasData, Stale: stale}
	if !updatedAt.IsZero() {
		h.UpdatedAt = updatedAt.UTC().Format(time.RFC3339)
	}
	return h
}

func historyHealth(res *poller.Resources) resourceHealth {
	_, _, ok := res.History.Get()
	return health(ok, res.History.Stale(), res.History.UpdatedAt())
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(store session.StoreInterface, resources *poller.Resources) *HealthController {
	return &HealthController{
		store:     store,
		resources: resources,
		startTime: time.Now(),
	}
}
