package controllers

import (
	"net/http"

	json "github.com/goccy/go-json"
	"zoodash/internal/poller"
	"zoodash/internal/providers"
	"zoodash/internal/session"
)

// ApiController backs the dashboard's own JSON/form endpoints: the alert
// tray polling, acknowledgements and the manual reload button. These are
// dashboard-local; everything backend-facing goes through the poller.
type ApiController struct {
	logger    providers.Logger
	store     session.StoreInterface
	resources *poller.Resources
	gate      *Gate
}

func NewApiController(logger providers.Logger, store session.StoreInterface, resources *poller.Resources, gate *Gate) *ApiController {
	return &ApiController{
		logger:    logger,
		store:     store,
		resources: resources,
		gate:      gate,
	}
}

func (ac *ApiController) authorized(w http.ResponseWriter, r *http.Request) bool {
	if ac.store.State() != session.StateAuthenticated || !ac.gate.Authorized(r) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return false
	}
	return true
}

func (ac *ApiController) GetAlerts(w http.ResponseWriter, r *http.Request) {
	if !ac.authorized(w, r) {
		return
	}

	alerts, _ := ac.resources.Alerts.Get()
	gson, err := json.Marshal(alerts)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func (ac *ApiController) AckAlert(w http.ResponseWriter, r *http.Request) {
	if !ac.authorized(w, r) {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	id := r.PostFormValue("id")
	if id == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	ac.resources.Alerts.Ack(r.Context(), id)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (ac *ApiController) AckAll(w http.ResponseWriter, r *http.Request) {
	if !ac.authorized(w, r) {
		return
	}
	ac.resources.Alerts.AckAll(r.Context())
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// SetAlertScope toggles the tray between "this animal" and "all animals".
// An empty animal_id means all.
func (ac *ApiController) SetAlertScope(w http.ResponseWriter, r *http.Request) {
	if !ac.authorized(w, r) {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	ac.resources.SetAlertScope(r.PostFormValue("animal_id"))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Reload forces a full refetch of every resource without waiting for the
// next poll tick.
func (ac *ApiController) Reload(w http.ResponseWriter, r *http.Request) {
	if !ac.authorized(w, r) {
		return
	}

	ctx := r.Context()
	ac.resources.LoadSessionScoped(ctx)
	if ac.resources.SelectedAnimal() != "" {
		ac.resources.Current.Load(ctx)
		ac.resources.Timeline.Load(ctx)
		ac.resources.History.Load(ctx)
		ac.resources.Reports.Load(ctx)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
