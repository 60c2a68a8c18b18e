package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"zoodash/internal/controllers"
	"zoodash/internal/poller"
	"zoodash/internal/poller/interfaces"
	"zoodash/internal/providers"
	"zoodash/internal/session"
	"zoodash/internal/structures"
)

type App struct {
	WebServer *http.Server
}

func NewApp(healthController *controllers.HealthController, scheduler interfaces.SchedulerInterface, store session.StoreInterface, resources *poller.Resources, conf *structures.Config, logger providers.Logger, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface) (*App, error) {
	// Inner mux: dashboard routes
	pageMux := http.NewServeMux()
	for _, route := range router.GetRoutes() {
		pageMux.Handle(route.Url, route.Handler)
	}

	// Wrap dashboard routes with metrics middleware
	instrumentedPages := providers.MetricsMiddleware(metrics, logger, pageMux)

	// Outer mux: infrastructure + instrumented dashboard
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthController.Health)
	if conf.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.Handle("/", instrumentedPages)

	logger.Infof(providers.TypeApp, "Starting %s", conf.AppName)
	err := scheduler.Restore()
	if err != nil {
		logger.Errorf(providers.TypeApp, "Restore error: %s", err)
	}

	// Settle the backend session off the serve path so the first page can
	// render the checking state immediately.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		store.Establish(ctx)
		if store.State() == session.StateAnonymous && conf.Auth.Username != "" {
			if lerr := store.Login(ctx, conf.Auth.Username, conf.Auth.Password); lerr != nil {
				logger.Errorf(providers.TypeApp, "Kiosk auto-login failed: %s", lerr)
			}
		}
		if store.State() == session.StateAuthenticated {
			resources.LoadSessionScoped(ctx)
		}
	}()

	app := &App{
		WebServer: &http.Server{
			Addr:         conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
			Handler:      gzhttp.GzipHandler(mux),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}

	scheduler.Init()

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof(providers.TypeApp, "Listening HTTP clients on %s:%d", conf.WebServer.Host, conf.WebServer.Port)
		if err := app.WebServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		return nil, fmt.Errorf("server error: %w", err)
	}

	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err = app.WebServer.Shutdown(ctx); err != nil {
		return nil, err
	}
	err = scheduler.Persist()
	if err != nil {
		return nil, err
	}
	logger.Infof(providers.TypeApp, "gracefully stopped")
	return app, nil
}
