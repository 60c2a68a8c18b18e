package controllers

import (
	"net/http"

	"zoodash/internal/aggregate"
	"zoodash/internal/charts"
	"zoodash/internal/poller"
	"zoodash/internal/providers"
	"zoodash/internal/session"
	"zoodash/internal/structures"
	"zoodash/internal/views"
	"zoodash/internal/zooapi"

	"html/template"
)

type DashboardController struct {
	logger    providers.Logger
	store     session.StoreInterface
	resources *poller.Resources
	api       zooapi.ClientInterface
	gate      *Gate
	conf      *structures.Config
}

func NewDashboardController(conf *structures.Config, logger providers.Logger, store session.StoreInterface, resources *poller.Resources, api zooapi.ClientInterface, gate *Gate) *DashboardController {
	return &DashboardController{
		logger:    logger,
		store:     store,
		resources: resources,
		api:       api,
		gate:      gate,
		conf:      conf,
	}
}

func (dc *DashboardController) Dashboard(w http.ResponseWriter, r *http.Request) {
	// the mux "/" pattern matches everything not routed elsewhere
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	switch dc.store.State() {
	case session.StateChecking:
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := views.RenderChecking(w, dc.conf.AppName); err != nil {
			dc.logger.Errorf(providers.TypeGet, "Checking page render failed: %s", err)
		}
		return
	case session.StateAnonymous:
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if !dc.gate.Authorized(r) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if id := r.URL.Query().Get("id"); id != "" {
		dc.resources.SelectAnimal(id)
	}

	data := dc.buildData()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.RenderDashboard(w, data); err != nil {
		dc.logger.Errorf(providers.TypeGet, "Dashboard render failed: %s", err)
	}
}

func (dc *DashboardController) buildData() views.DashboardData {
	res := dc.resources
	selectedID := res.SelectedAnimal()

	data := views.DashboardData{
		AppName:        dc.conf.AppName,
		User:           dc.store.User(),
		RefreshSeconds: int(dc.conf.Polling.BehaviorInterval.Seconds()),
		AlertsSeconds:  int(dc.conf.Polling.AlertsInterval.Seconds()),
		Tray: views.TrayData{
			Alerts:     res.Alerts.Unread(),
			ScopeAll:   res.Alerts.Scope() == "",
			SelectedID: selectedID,
		},
	}

	if animals, ok := res.Animals.Get(); ok {
		data.Animals = animals
	}
	if kpi, ok := res.KPI.Get(); ok {
		data.KPI = kpi
	}
	data.Stale = res.Animals.Stale() || res.Alerts.Stale()

	if selectedID == "" {
		return data
	}
	if animal, ok := res.AnimalByID(selectedID); ok {
		data.Selected = animal
	}
	if current, ok := res.Current.Get(); ok {
		data.Current = current
	}
	data.Stale = data.Stale || res.Current.Stale()

	baseline := res.BaselineFor(selectedID)
	data.PercentBars = template.HTML(BarsSVG(res, baseline))
	data.Ribbon = template.HTML(RibbonSVG(res))
	data.DeviationChart = template.HTML(DeviationSVG(res, baseline))

	if reports, ok := res.Reports.Get(); ok {
		data.Reports = make([]views.ReportView, 0, len(reports))
		for _, rep := range reports {
			data.Reports = append(data.Reports, views.ReportView{
				Report: rep,
				PDFURL: dc.api.ReportPDFURL(rep.ID),
			})
		}
	}
	return data
}

// Chart builders are shared between the full page render and the SVG
// refresh endpoints so both always agree on what the charts show.

func BarsSVG(res *poller.Resources, baseline map[string]float64) string {
	timeline, ok := res.Timeline.Get()
	if !ok {
		return charts.RenderPercentageBars(nil, nil)
	}
	return charts.RenderPercentageBars(aggregate.PercentagesFromTimeline(timeline), baseline)
}

func RibbonSVG(res *poller.Resources) string {
	timeline, _ := res.Timeline.Get()
	return charts.RenderRibbon(timeline)
}

func DeviationSVG(res *poller.Resources, baseline map[string]float64) string {
	window, dists, ok := res.History.Get()
	if !ok {
		return charts.RenderDeviationLines(nil)
	}
	return charts.RenderDeviationLines(aggregate.DeviationHistory(window, dists, baseline))
}
