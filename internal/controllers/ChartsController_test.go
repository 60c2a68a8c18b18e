package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"zoodash/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChartsFixture(t *testing.T) (*fixture, *ChartsController, *testutil.MockCache) {
	t.Helper()
	f := newFixture(t, true)
	f.authenticate(t)
	f.resources.SelectAnimal("leo-01")
	f.resources.Timeline.Load(context.Background())
	f.resources.History.Load(context.Background())

	cache := testutil.NewMockCache()
	return f, NewChartsController(f.logger, f.store, f.resources, f.gate, cache), cache
}

func TestCharts_UnauthenticatedIs401(t *testing.T) {
	f := newFixture(t, true)
	cc := NewChartsController(f.logger, f.store, f.resources, f.gate, testutil.NewMockCache())

	rr := httptest.NewRecorder()
	cc.Bars(rr, httptest.NewRequest(http.MethodGet, "/charts/bars.svg?id=leo-01", nil))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestCharts_WrongAnimalIs404(t *testing.T) {
	_, cc, _ := newChartsFixture(t)

	rr := httptest.NewRecorder()
	cc.Bars(rr, httptest.NewRequest(http.MethodGet, "/charts/bars.svg?id=pan-02", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = httptest.NewRecorder()
	cc.Bars(rr, httptest.NewRequest(http.MethodGet, "/charts/bars.svg", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCharts_BarsServesSVG(t *testing.T) {
	_, cc, _ := newChartsFixture(t)

	rr := httptest.NewRecorder()
	cc.Bars(rr, httptest.NewRequest(http.MethodGet, "/charts/bars.svg?id=leo-01", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/svg+xml", rr.Header().Get("Content-Type"))
	assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))
	assert.Contains(t, rr.Body.String(), "<svg")
	assert.Contains(t, rr.Body.String(), "Foraging")
}

func TestCharts_SecondRequestHitsCache(t *testing.T) {
	f, cc, cache := newChartsFixture(t)

	rr := httptest.NewRecorder()
	cc.Deviation(rr, httptest.NewRequest(http.MethodGet, "/charts/deviation.svg?id=leo-01", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, cache.Data, 1)

	// poison the cached copy to prove the second response comes from it
	key := "svg:deviation:leo-01:" + f.resources.Today()
	cache.Set(key, []byte("<svg>cached</svg>"))

	rr = httptest.NewRecorder()
	cc.Deviation(rr, httptest.NewRequest(http.MethodGet, "/charts/deviation.svg?id=leo-01", nil))
	assert.Equal(t, "<svg>cached</svg>", rr.Body.String())
}

func TestCharts_RibbonRendersWithoutTimeline(t *testing.T) {
	f := newFixture(t, true)
	f.authenticate(t)
	f.resources.SelectAnimal("leo-01")
	cc := NewChartsController(f.logger, f.store, f.resources, f.gate, testutil.NewMockCache())

	rr := httptest.NewRecorder()
	cc.Ribbon(rr, httptest.NewRequest(http.MethodGet, "/charts/ribbon.svg?id=leo-01", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "<svg")
}
