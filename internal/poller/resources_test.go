package poller

import (
	"context"
	"testing"
	"time"
	"zoodash/internal/structures"
	"zoodash/internal/testutil"
	"zoodash/internal/zooapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resourcesConfig() *structures.Config {
	return &structures.Config{
		Backend: structures.Backend{Timezone: "UTC"},
		Polling: structures.PollingConfig{
			AlertsInterval:   10 * time.Second,
			BehaviorInterval: 15 * time.Second,
			HistoryDays:      7,
		},
	}
}

func rosterClient() *testutil.MockClient {
	return &testutil.MockClient{
		AnimalsFn: func(_ context.Context) ([]zooapi.Animal, error) {
			return []zooapi.Animal{
				{ID: "leo-01", Name: "León", Species: "Panthera leo", Baseline: map[string]float64{"Resting": 50}},
				{ID: "pan-02", Name: "Pandora", Species: "Ailuropoda melanoleuca"},
			}, nil
		},
		KPIsFn: func(_ context.Context) (*zooapi.KPI, error) {
			return &zooapi.KPI{UptimeDays: 12, AlertsOpen: 3, Animals: 2}, nil
		},
	}
}

func newTestResources(t *testing.T, api zooapi.ClientInterface) *Resources {
	t.Helper()
	res, err := NewResources(resourcesConfig(), api, testutil.NewMockCache(), &testutil.MockLogger{}, &pollerTestMetrics{})
	require.NoError(t, err)
	return res
}

func TestNewResources_RejectsUnknownTimezone(t *testing.T) {
	conf := resourcesConfig()
	conf.Backend.Timezone = "Mars/Olympus_Mons"
	_, err := NewResources(conf, &testutil.MockClient{}, testutil.NewMockCache(), &testutil.MockLogger{}, &pollerTestMetrics{})
	assert.Error(t, err)
}

func TestResources_AnimalLookupAndBaseline(t *testing.T) {
	res := newTestResources(t, rosterClient())
	res.Animals.Load(context.Background())

	animal, ok := res.AnimalByID("leo-01")
	require.True(t, ok)
	assert.Equal(t, "León", animal.Name)

	_, ok = res.AnimalByID("ghost")
	assert.False(t, ok)

	assert.Equal(t, map[string]float64{"Resting": 50}, res.BaselineFor("leo-01"))
	assert.Empty(t, res.BaselineFor("pan-02"))
	assert.Empty(t, res.BaselineFor("ghost"))
}

func TestResources_SelectAnimalReScopes(t *testing.T) {
	res := newTestResources(t, rosterClient())

	res.SelectAnimal("leo-01")

	assert.Equal(t, "leo-01", res.SelectedAnimal())
	assert.Equal(t, "leo-01", res.Timeline.Scope())
	assert.Equal(t, "leo-01", res.History.Scope())
	assert.Equal(t, "leo-01", res.Reports.Scope())
	// the alert tray scope is independent of the selection
	assert.Equal(t, "", res.Alerts.Scope())
}

func TestResources_SelectSameAnimalIsNoop(t *testing.T) {
	res := newTestResources(t, rosterClient())

	res.SelectAnimal("leo-01")
	res.Current.Restore("leo-01", &zooapi.CurrentBehavior{Behavior: "Resting"}, time.Now())

	res.SelectAnimal("leo-01")

	// re-selecting must not clear the cached data
	_, ok := res.Current.Get()
	assert.True(t, ok)
}

func TestResources_LoadSessionScoped(t *testing.T) {
	api := rosterClient()
	res := newTestResources(t, api)

	res.LoadSessionScoped(context.Background())

	animals, ok := res.Animals.Get()
	require.True(t, ok)
	assert.Len(t, animals, 2)

	kpi, ok := res.KPI.Get()
	require.True(t, ok)
	assert.Equal(t, 12, kpi.UptimeDays)
}

func TestResources_SnapshotRoundTrip(t *testing.T) {
	res := newTestResources(t, rosterClient())
	res.LoadSessionScoped(context.Background())
	res.Current.Restore("leo-01", &zooapi.CurrentBehavior{AnimalID: "leo-01", Behavior: "Foraging"}, time.Now())

	state := res.Snapshot()
	require.NotNil(t, state)
	assert.Len(t, state.Animals, 2)
	assert.Equal(t, "leo-01", state.AnimalScope)

	restored := newTestResources(t, &testutil.MockClient{})
	restored.RestoreSnapshot(state)

	animals, ok := restored.Animals.Get()
	require.True(t, ok)
	assert.Len(t, animals, 2)
	assert.True(t, restored.Animals.Stale())

	current, ok := restored.Current.Get()
	require.True(t, ok)
	assert.Equal(t, "Foraging", current.Behavior)
	assert.Equal(t, "leo-01", restored.Current.Scope())
}

func TestResources_SelectAnimalLoadsInBackground(t *testing.T) {
	api := rosterClient()
	api.ReportsFn = func(ctx context.Context, animalID string) ([]zooapi.Report, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return []zooapi.Report{{ID: "r-1", PeriodStart: "2025-03-03", AlertCount: 4}}, nil
	}
	res := newTestResources(t, api)

	// reports have no poll tick; the selection load is their only feed,
	// so it must complete even though the selecting request is long gone
	res.SelectAnimal("leo-01")

	require.Eventually(t, func() bool {
		reports, ok := res.Reports.Get()
		return ok && len(reports) == 1
	}, time.Second, 5*time.Millisecond)
}
