package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"zoodash/internal/snapshot"
	"zoodash/internal/zooapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDashboardController(f *fixture) *DashboardController {
	return NewDashboardController(f.conf, f.logger, f.store, f.resources, f.api, f.gate)
}

func TestDashboard_CheckingState(t *testing.T) {
	f := newFixture(t, true)
	dc := newDashboardController(f)

	rr := httptest.NewRecorder()
	dc.Dashboard(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Checking backend session")
}

func TestDashboard_AnonymousRedirectsToLogin(t *testing.T) {
	f := newFixture(t, true)
	f.api.MeFn = func(_ context.Context) (*zooapi.User, error) {
		return nil, &zooapi.HttpError{StatusCode: 401, Body: "unauthorized"}
	}
	f.store.Establish(context.Background())
	dc := newDashboardController(f)

	rr := httptest.NewRecorder()
	dc.Dashboard(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))
}

func TestDashboard_UngatedBrowserRedirectsToLogin(t *testing.T) {
	f := newFixture(t, false)
	f.authenticate(t)
	dc := newDashboardController(f)

	rr := httptest.NewRecorder()
	dc.Dashboard(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))
}

func TestDashboard_UnknownPathIs404(t *testing.T) {
	f := newFixture(t, true)
	f.authenticate(t)
	dc := newDashboardController(f)

	rr := httptest.NewRecorder()
	dc.Dashboard(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDashboard_RendersRosterAndKPIs(t *testing.T) {
	f := newFixture(t, true)
	f.authenticate(t)
	dc := newDashboardController(f)

	rr := httptest.NewRecorder()
	dc.Dashboard(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	body := rr.Body.String()
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, body, "León")
	assert.Contains(t, body, "Pandora")
	assert.Contains(t, body, "uptime 12d")
	assert.Contains(t, body, "Head Keeper")
	assert.Contains(t, body, "Select an animal")
}

func TestDashboard_SelectAnimalRendersDetail(t *testing.T) {
	f := newFixture(t, true)
	f.authenticate(t)
	dc := newDashboardController(f)

	rr := httptest.NewRecorder()
	dc.Dashboard(rr, httptest.NewRequest(http.MethodGet, "/?id=leo-01", nil))
	require.Equal(t, "leo-01", f.resources.SelectedAnimal())

	// selection loads run in goroutines; render again once they settle
	f.resources.Current.Load(context.Background())
	f.resources.Timeline.Load(context.Background())
	f.resources.Reports.Load(context.Background())

	rr = httptest.NewRecorder()
	dc.Dashboard(rr, httptest.NewRequest(http.MethodGet, "/?id=leo-01", nil))

	body := rr.Body.String()
	assert.Contains(t, body, "Foraging")
	assert.Contains(t, body, "<svg")
	assert.Contains(t, body, "http://backend.test/api/reports/r-1/pdf")
	assert.Contains(t, body, `class="selected"`)
}

func TestDashboard_TrayShowsUnreadOnly(t *testing.T) {
	f := newFixture(t, true)
	f.authenticate(t)
	dc := newDashboardController(f)

	rr := httptest.NewRecorder()
	dc.Dashboard(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	body := rr.Body.String()
	assert.Contains(t, body, "pacing")
	assert.NotContains(t, body, "quiet day")
}

func TestDashboard_StaleBannerAfterRestore(t *testing.T) {
	f := newFixture(t, true)
	f.store.Establish(context.Background())
	f.resources.RestoreSnapshot(&snapshot.State{
		SavedAt: time.Now().Add(-time.Hour),
		Animals: []zooapi.Animal{{ID: "leo-01", Name: "León", Species: "Lion"}},
	})
	dc := newDashboardController(f)

	rr := httptest.NewRecorder()
	dc.Dashboard(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	body := rr.Body.String()
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, body, "showing last snapshot")
	assert.Contains(t, body, "León")
}

func TestDashboard_SelectionLoadsOutliveRequest(t *testing.T) {
	f := newFixture(t, true)
	f.api.ReportsFn = func(ctx context.Context, _ string) ([]zooapi.Report, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return []zooapi.Report{{ID: "r-1", PeriodStart: "2025-03-03", AlertCount: 4}}, nil
	}
	f.authenticate(t)
	dc := newDashboardController(f)

	// the server cancels the request context as soon as the handler
	// returns; model that with a context that is already dead
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/?id=leo-01", nil).WithContext(ctx)

	rr := httptest.NewRecorder()
	dc.Dashboard(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	require.Eventually(t, func() bool {
		reports, ok := f.resources.Reports.Get()
		return ok && len(reports) == 1
	}, time.Second, 5*time.Millisecond)
}
