//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"zoodash/internal"
	"zoodash/internal/controllers"
	"zoodash/internal/poller"
	"zoodash/internal/providers"
	"zoodash/internal/session"
	"zoodash/internal/snapshot"
	"zoodash/internal/structures"
	"zoodash/internal/zooapi"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		zooapi.NewClient,
		session.NewStore,
		poller.NewResources,
		wire.Bind(new(snapshot.Source), new(*poller.Resources)),
		snapshot.NewZstdCompressor,
		snapshot.NewFileManager,
		poller.NewScheduler,

		controllers.NewGate,
		controllers.NewAuthController,
		controllers.NewDashboardController,
		controllers.NewApiController,
		controllers.NewChartsController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
