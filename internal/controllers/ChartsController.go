package controllers

import (
	"net/http"

	"zoodash/internal/poller"
	"zoodash/internal/providers"
	"zoodash/internal/session"
)

// ChartsController serves the standalone SVG documents the dashboard page
// swaps in on its refresh timer. Rendered charts are cached per animal and
// day so concurrent browsers do not redo the geometry.
type ChartsController struct {
	logger    providers.Logger
	store     session.StoreInterface
	resources *poller.Resources
	gate      *Gate
	cache     providers.CacheProviderInterface
}

func NewChartsController(logger providers.Logger, store session.StoreInterface, resources *poller.Resources, gate *Gate, cache providers.CacheProviderInterface) *ChartsController {
	return &ChartsController{
		logger:    logger,
		store:     store,
		resources: resources,
		gate:      gate,
		cache:     cache,
	}
}

func (cc *ChartsController) serveFromCacheOrCompute(w http.ResponseWriter, r *http.Request, kind string, compute func() string) {
	if cc.store.State() != session.StateAuthenticated || !cc.gate.Authorized(r) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" || id != cc.resources.SelectedAnimal() {
		// charts only exist for the animal the poller is scoped to
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	cacheKey := "svg:" + kind + ":" + id + ":" + cc.resources.Today()
	if data, ok := cc.cache.Get(cacheKey); ok {
		writeSVG(w, data)
		return
	}

	svg := []byte(compute())
	cc.cache.Set(cacheKey, svg)
	writeSVG(w, svg)
}

func writeSVG(w http.ResponseWriter, svg []byte) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(svg)
}

func (cc *ChartsController) Bars(w http.ResponseWriter, r *http.Request) {
	cc.serveFromCacheOrCompute(w, r, "bars", func() string {
		return BarsSVG(cc.resources, cc.resources.BaselineFor(cc.resources.SelectedAnimal()))
	})
}

func (cc *ChartsController) Ribbon(w http.ResponseWriter, r *http.Request) {
	cc.serveFromCacheOrCompute(w, r, "ribbon", func() string {
		return RibbonSVG(cc.resources)
	})
}

func (cc *ChartsController) Deviation(w http.ResponseWriter, r *http.Request) {
	cc.serveFromCacheOrCompute(w, r, "deviation", func() string {
		return DeviationSVG(cc.resources, cc.resources.BaselineFor(cc.resources.SelectedAnimal()))
	})
}
