package internal

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"zoodash/internal/controllers"
	"zoodash/internal/poller"
	"zoodash/internal/providers"
	"zoodash/internal/session"
	"zoodash/internal/structures"
	"zoodash/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func routesFixture(t *testing.T) providers.RouterProviderInterface {
	t.Helper()
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
	api := &testutil.MockClient{}
	logger := &testutil.MockLogger{}
	metrics := providers.NewMetricsProvider(conf)
	cache := testutil.NewMockCache()

	resources, err := poller.NewResources(conf, api, cache, logger, metrics)
	require.NoError(t, err)

	store := session.NewStore(api, logger)
	gate := controllers.NewGate(conf)

	return InitRoutes(
		controllers.NewAuthController(conf, logger, store, resources, gate),
		controllers.NewDashboardController(conf, logger, store, resources, api, gate),
		controllers.NewApiController(logger, store, resources, gate),
		controllers.NewChartsController(logger, store, resources, gate, cache),
	)
}

func TestInitRoutes_RegistersExpectedURLs(t *testing.T) {
	routes := routesFixture(t).GetRoutes()

	urls := make([]string, 0, len(routes))
	for _, route := range routes {
		urls = append(urls, route.Url)
	}

	assert.Equal(t, []string{
		"/login",
		"/logout",
		"/charts/bars.svg",
		"/charts/ribbon.svg",
		"/charts/deviation.svg",
		"/api/alerts",
		"/api/alerts/ack",
		"/api/alerts/ack_all",
		"/api/alerts/scope",
		"/api/reload",
		"/",
	}, urls)
}

func TestInitRoutes_LoginCarriesBothMethods(t *testing.T) {
	mux := http.NewServeMux()
	for _, route := range routesFixture(t).GetRoutes() {
		mux.Handle(route.Url, route.Handler)
	}

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.NotEqual(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestInitRoutes_UnregisteredMethodIs405(t *testing.T) {
	mux := http.NewServeMux()
	for _, route := range routesFixture(t).GetRoutes() {
		mux.Handle(route.Url, route.Handler)
	}

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/charts/bars.svg", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/reload", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
