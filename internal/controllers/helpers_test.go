package controllers

import (
	"context"
	"testing"
	"time"
	"zoodash/internal/poller"
	"zoodash/internal/session"
	"zoodash/internal/structures"
	"zoodash/internal/testutil"
	"zoodash/internal/zooapi"

	"github.com/stretchr/testify/require"
)

type controllersTestMetrics struct{}

func (m *controllersTestMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *controllersTestMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *controllersTestMetrics) IncCacheHits()                                    {}
func (m *controllersTestMetrics) IncCacheMisses()                                  {}
func (m *controllersTestMetrics) IncBackendRequests(_ string, _ int)               {}
func (m *controllersTestMetrics) ObserveBackendDuration(_ string, _ time.Duration) {}
func (m *controllersTestMetrics) IncPollCycles(_ string)                           {}
func (m *controllersTestMetrics) IncPollFailures(_ string)                         {}
func (m *controllersTestMetrics) IncStaleDrops(_ string)                           {}
func (m *controllersTestMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (m *controllersTestMetrics) SetUnreadAlerts(_ int)                            {}

func testConfig(kiosk bool) *structures.Config {
	conf := &structures.Config{
		AppName: "ZooBehaviorDashboard",
		Backend: structures.Backend{
			BaseURL:        "http://backend.test",
			RequestTimeout: 5 * time.Second,
			Timezone:       "UTC",
		},
		Polling: structures.PollingConfig{
			AlertsInterval:   10 * time.Second,
			BehaviorInterval: 15 * time.Second,
			HistoryDays:      7,
		},
	}
	if kiosk {
		conf.Auth = structures.Auth{Username: "kiosk", Password: "secret"}
	}
	return conf
}

func zooClient() *testutil.MockClient {
	return &testutil.MockClient{
		MeFn: func(_ context.Context) (*zooapi.User, error) {
			return &zooapi.User{ID: 1, Username: "keeper", FullName: "Head Keeper"}, nil
		},
		LoginFn: func(_ context.Context, username, password string) (*zooapi.User, error) {
			if username == "keeper" && password == "secret" {
				return &zooapi.User{ID: 1, Username: "keeper"}, nil
			}
			return nil, &zooapi.HttpError{StatusCode: 401, Body: "bad credentials"}
		},
		AnimalsFn: func(_ context.Context) ([]zooapi.Animal, error) {
			return []zooapi.Animal{
				{ID: "leo-01", Name: "León", Species: "Panthera leo", Baseline: map[string]float64{"Resting": 50}},
				{ID: "pan-02", Name: "Pandora", Species: "Ailuropoda melanoleuca"},
			}, nil
		},
		AlertsFn: func(_ context.Context, _ string) ([]zooapi.Alert, error) {
			return []zooapi.Alert{
				{ID: "a-1", Type: "stereotypy", Severity: "high", Summary: "pacing", State: zooapi.AlertOpen},
				{ID: "a-2", Type: "inactivity", Severity: "low", Summary: "quiet day", State: zooapi.AlertAck},
			}, nil
		},
		KPIsFn: func(_ context.Context) (*zooapi.KPI, error) {
			return &zooapi.KPI{UptimeDays: 12, AlertsOpen: 1, Animals: 2}, nil
		},
		BehaviorCurrentFn: func(_ context.Context, animalID string) (*zooapi.CurrentBehavior, error) {
			return &zooapi.CurrentBehavior{AnimalID: animalID, Behavior: "Foraging", Confidence: 0.8}, nil
		},
		TimelineFn: func(_ context.Context, _, _ string) ([]zooapi.TimelineEntry, error) {
			return []zooapi.TimelineEntry{{Hour: 9, Behavior: "Foraging"}, {Hour: 10, Behavior: "Resting"}}, nil
		},
		DayDistributionFn: func(_ context.Context, _, date string) (*zooapi.DayDistribution, error) {
			return &zooapi.DayDistribution{Date: date, Percentages: map[string]float64{"Resting": 60}}, nil
		},
		ReportsFn: func(_ context.Context, _ string) ([]zooapi.Report, error) {
			return []zooapi.Report{{ID: "r-1", PeriodStart: "2025-03-03", AlertCount: 4}}, nil
		},
	}
}

type fixture struct {
	conf      *structures.Config
	api       *testutil.MockClient
	logger    *testutil.MockLogger
	store     session.StoreInterface
	resources *poller.Resources
	gate      *Gate
}

func newFixture(t *testing.T, kiosk bool) *fixture {
	t.Helper()
	conf := testConfig(kiosk)
	api := zooClient()
	logger := &testutil.MockLogger{}

	resources, err := poller.NewResources(conf, api, testutil.NewMockCache(), logger, &controllersTestMetrics{})
	require.NoError(t, err)

	return &fixture{
		conf:      conf,
		api:       api,
		logger:    logger,
		store:     session.NewStore(api, logger),
		resources: resources,
		gate:      NewGate(conf),
	}
}

// authenticate settles the session and loads the session-scoped caches.
func (f *fixture) authenticate(t *testing.T) {
	t.Helper()
	f.store.Establish(context.Background())
	require.Equal(t, session.StateAuthenticated, f.store.State())
	f.resources.LoadSessionScoped(context.Background())
}
