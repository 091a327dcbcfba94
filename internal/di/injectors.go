//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"github.com/chiuchau-cyril/moltbot-dashboard/internal"
	"github.com/chiuchau-cyril/moltbot-dashboard/internal/providers"
	"github.com/chiuchau-cyril/moltbot-dashboard/internal/publisher"
	"github.com/chiuchau-cyril/moltbot-dashboard/internal/services"
	"github.com/chiuchau-cyril/moltbot-dashboard/internal/sources"
	"github.com/chiuchau-cyril/moltbot-dashboard/internal/storage"
	"github.com/chiuchau-cyril/moltbot-dashboard/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, func(), error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewHTTPClient,

		sources.NewRedditFetcher,
		sources.NewGitHubFetcher,

		storage.NewZstdCompressor,
		storage.NewSnapshotStore,
		storage.NewHistoryArchive,
		storage.NewHistoryStore,

		services.NewCollectorService,
		publisher.NewExecRunner,
		publisher.NewGitPublisher,
		internal.NewApp,
	)

	return nil, nil, nil
}
