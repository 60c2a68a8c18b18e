package poller

import (
	"context"
	"fmt"
	"time"
	"zoodash/internal/aggregate"
	"zoodash/internal/providers"
	"zoodash/internal/snapshot"
	"zoodash/internal/structures"
	"zoodash/internal/zooapi"
)

// Resources is the full set of polled backend caches the dashboard renders
// from. Per-animal resources share one scope key (the selected animal);
// alerts carry their own scope so the notification tray can toggle between
// "this animal" and "all animals" independently of the selection.
type Resources struct {
	api    zooapi.ClientInterface
	logger providers.Logger
	loc    *time.Location

	Animals  *Resource[[]zooapi.Animal]
	KPI      *Resource[*zooapi.KPI]
	Alerts   *AlertsResource
	Current  *Resource[*zooapi.CurrentBehavior]
	Timeline *Resource[[]zooapi.TimelineEntry]
	Reports  *Resource[[]zooapi.Report]
	History  *HistoryResource
}

func NewResources(conf *structures.Config, api zooapi.ClientInterface, cache providers.CacheProviderInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) (*Resources, error) {
	loc, err := time.LoadLocation(conf.Backend.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid backend timezone %q: %w", conf.Backend.Timezone, err)
	}

	r := &Resources{
		api:    api,
		logger: logger,
		loc:    loc,
	}

	r.Animals = NewResource("animals", func(ctx context.Context, _ string) ([]zooapi.Animal, error) {
		return api.Animals(ctx)
	}, logger, metrics)

	r.KPI = NewResource("kpi", func(ctx context.Context, _ string) (*zooapi.KPI, error) {
		return api.KPIs(ctx)
	}, logger, metrics)

	r.Alerts = NewAlertsResource(api, logger, metrics)

	r.Current = NewResource("current", func(ctx context.Context, scope string) (*zooapi.CurrentBehavior, error) {
		return api.BehaviorCurrent(ctx, scope)
	}, logger, metrics)

	r.Timeline = NewResource("timeline", func(ctx context.Context, scope string) ([]zooapi.TimelineEntry, error) {
		return api.BehaviorTimeline(ctx, scope, r.Today())
	}, logger, metrics)

	r.Reports = NewResource("reports", func(ctx context.Context, scope string) ([]zooapi.Report, error) {
		return api.Reports(ctx, scope)
	}, logger, metrics)

	r.History = NewHistoryResource(api, cache, logger, metrics, loc, conf.Polling.HistoryDays)

	return r, nil
}

// Today is the current date in the fixed reference timezone, so "today"
// is computed consistently regardless of where the dashboard runs.
func (r *Resources) Today() string {
	return time.Now().In(r.loc).Format(aggregate.DateFormat)
}

func (r *Resources) Location() *time.Location {
	return r.loc
}

// SelectAnimal re-scopes every per-animal resource. In-flight fetches for
// the previous animal are discarded by the generation guard, and the new
// scope is loaded immediately rather than waiting for the next tick. The
// loads run detached from any request context: the selecting request
// finishes long before they do, and its cancellation must not abort them.
func (r *Resources) SelectAnimal(id string) {
	if r.Current.Scope() == id {
		return
	}
	r.Current.SetScope(id)
	r.Timeline.SetScope(id)
	r.History.SetScope(id)
	r.Reports.SetScope(id)

	if id == "" {
		return
	}
	ctx := context.Background()
	go r.Current.Load(ctx)
	go r.Timeline.Load(ctx)
	go r.History.Load(ctx)
	go r.Reports.Load(ctx)
}

func (r *Resources) SelectedAnimal() string {
	return r.Current.Scope()
}

// SetAlertScope switches the notification tray between one animal and all
// animals ("" = all) and reloads under the new scope, detached from the
// toggling request's context.
func (r *Resources) SetAlertScope(animalID string) {
	if r.Alerts.Scope() == animalID {
		return
	}
	r.Alerts.SetScope(animalID)
	go r.Alerts.Load(context.Background())
}

// AnimalByID looks the animal up in the roster cache.
func (r *Resources) AnimalByID(id string) (*zooapi.Animal, bool) {
	animals, ok := r.Animals.Get()
	if !ok {
		return nil, false
	}
	for i := range animals {
		if animals[i].ID == id {
			return &animals[i], true
		}
	}
	return nil, false
}

// BaselineFor returns the animal's expected percent-of-day mapping, or an
// empty one when the roster has no baseline for it.
func (r *Resources) BaselineFor(id string) map[string]float64 {
	if animal, ok := r.AnimalByID(id); ok && animal.Baseline != nil {
		return animal.Baseline
	}
	return map[string]float64{}
}

// LoadSessionScoped fetches the once-per-session resources (roster, KPIs)
// plus the alerts under their current scope.
func (r *Resources) LoadSessionScoped(ctx context.Context) {
	r.Animals.Load(ctx)
	r.KPI.Load(ctx)
	r.Alerts.Load(ctx)
}

// Snapshot implements snapshot.Source.
func (r *Resources) Snapshot() *snapshot.State {
	state := &snapshot.State{
		SavedAt:     time.Now(),
		AlertScope:  r.Alerts.Scope(),
		AnimalScope: r.SelectedAnimal(),
	}
	if animals, ok := r.Animals.Get(); ok {
		state.Animals = animals
	}
	if kpi, ok := r.KPI.Get(); ok {
		state.KPI = kpi
	}
	if alerts, ok := r.Alerts.Get(); ok {
		state.Alerts = alerts
	}
	if current, ok := r.Current.Get(); ok {
		state.Current = current
	}
	if timeline, ok := r.Timeline.Get(); ok {
		state.Timeline = timeline
	}
	if reports, ok := r.Reports.Get(); ok {
		state.Reports = reports
	}
	if window, dists, ok := r.History.Get(); ok {
		state.HistoryWindow = window
		state.Distributions = dists
	}
	return state
}

// RestoreSnapshot implements snapshot.Source. Restored values are marked
// stale until the first successful poll.
func (r *Resources) RestoreSnapshot(state *snapshot.State) {
	if state.Animals != nil {
		r.Animals.Restore("", state.Animals, state.SavedAt)
	}
	if state.KPI != nil {
		r.KPI.Restore("", state.KPI, state.SavedAt)
	}
	if state.Alerts != nil {
		r.Alerts.Restore(state.AlertScope, state.Alerts, state.SavedAt)
	}
	if state.Current != nil {
		r.Current.Restore(state.AnimalScope, state.Current, state.SavedAt)
	}
	if state.Timeline != nil {
		r.Timeline.Restore(state.AnimalScope, state.Timeline, state.SavedAt)
	}
	if state.Reports != nil {
		r.Reports.Restore(state.AnimalScope, state.Reports, state.SavedAt)
	}
	if state.Distributions != nil {
		r.History.Restore(state.AnimalScope, state.HistoryWindow, state.Distributions, state.SavedAt)
	}
}
