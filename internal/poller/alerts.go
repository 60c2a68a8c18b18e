package poller

import (
	"context"
	"zoodash/internal/providers"
	"zoodash/internal/zooapi"
)

// AlertsResource is the alerts cache. Its scope key is an animal id, with
// the empty string meaning "all animals". Acknowledge operations flip the
// local state optimistically, fire the backend request, and reconcile with
// an unconditional reload regardless of the request outcome.
type AlertsResource struct {
	*Resource[[]zooapi.Alert]
	api     zooapi.ClientInterface
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewAlertsResource(api zooapi.ClientInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) *AlertsResource {
	ar := &AlertsResource{
		api:     api,
		logger:  logger,
		metrics: metrics,
	}
	ar.Resource = NewResource("alerts", func(ctx context.Context, scope string) ([]zooapi.Alert, error) {
		alerts, err := api.Alerts(ctx, scope)
		if err == nil {
			metrics.SetUnreadAlerts(countUnread(alerts))
		}
		return alerts, err
	}, logger, metrics)
	return ar
}

func countUnread(alerts []zooapi.Alert) int {
	n := 0
	for i := range alerts {
		if alerts[i].Unread() {
			n++
		}
	}
	return n
}

// Unread returns only the open alerts, in list order.
func (a *AlertsResource) Unread() []zooapi.Alert {
	alerts, ok := a.Get()
	if !ok {
		return nil
	}
	unread := make([]zooapi.Alert, 0, len(alerts))
	for i := range alerts {
		if alerts[i].Unread() {
			unread = append(unread, alerts[i])
		}
	}
	return unread
}

func markAck(alerts []zooapi.Alert, match func(*zooapi.Alert) bool) []zooapi.Alert {
	out := make([]zooapi.Alert, len(alerts))
	copy(out, alerts)
	for i := range out {
		if match(&out[i]) {
			out[i].State = zooapi.AlertAck
		}
	}
	return out
}

// Ack acknowledges one alert: optimistic local flip first, then the
// backend request, then a reconciling reload either way. A failed request
// is logged and not rolled back; the reload restores server truth.
func (a *AlertsResource) Ack(ctx context.Context, id string) {
	a.Mutate(func(alerts []zooapi.Alert) []zooapi.Alert {
		return markAck(alerts, func(al *zooapi.Alert) bool { return al.ID == id })
	})
	a.syncUnreadGauge()

	if err := a.api.AckAlert(ctx, id); err != nil {
		a.logger.Warnf(providers.TypePost, "Acknowledge alert %s failed: %s", id, err)
	}
	a.Load(ctx)
}

// AckAll acknowledges every unread alert in the current scope via the
// bulk endpoint, with the same optimistic-then-reconcile shape as Ack.
func (a *AlertsResource) AckAll(ctx context.Context) {
	unread := a.Unread()
	if len(unread) == 0 {
		return
	}
	ids := make([]string, 0, len(unread))
	for i := range unread {
		ids = append(ids, unread[i].ID)
	}

	a.Mutate(func(alerts []zooapi.Alert) []zooapi.Alert {
		return markAck(alerts, func(al *zooapi.Alert) bool { return al.Unread() })
	})
	a.syncUnreadGauge()

	if err := a.api.AckAlerts(ctx, ids); err != nil {
		a.logger.Warnf(providers.TypePost, "Bulk acknowledge of %d alerts failed: %s", len(ids), err)
	}
	a.Load(ctx)
}

func (a *AlertsResource) syncUnreadGauge() {
	if alerts, ok := a.Get(); ok {
		a.metrics.SetUnreadAlerts(countUnread(alerts))
	}
}
