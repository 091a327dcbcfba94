package internal

import (
	"context"

	"github.com/chiuchau-cyril/moltbot-dashboard/internal/providers"
	"github.com/chiuchau-cyril/moltbot-dashboard/internal/publisher"
	"github.com/chiuchau-cyril/moltbot-dashboard/internal/services"
	"github.com/chiuchau-cyril/moltbot-dashboard/internal/storage/interfaces"
	"github.com/chiuchau-cyril/moltbot-dashboard/internal/structures"
)

type App struct {
	conf      *structures.Config
	collector services.CollectorServiceInterface
	publisher publisher.PublisherInterface
	metrics   providers.MetricsProviderInterface
	archive   interfaces.ArchiveInterface
	logger    providers.Logger
}

func NewApp(conf *structures.Config, collector services.CollectorServiceInterface, pub publisher.PublisherInterface, metrics providers.MetricsProviderInterface, archive interfaces.ArchiveInterface, logger providers.Logger) *App {
	return &App{
		conf:      conf,
		collector: collector,
		publisher: pub,
		metrics:   metrics,
		archive:   archive,
		logger:    logger,
	}
}

// Run collects once and then publishes. Only a failure to persist the collected
// data is returned; metrics and publication are best effort.
func (a *App) Run(ctx context.Context) error {
	snapshot, err := a.collector.Collect(ctx)
	if err != nil {
		a.logger.Errorf(providers.TypeApp, "Collection failed: %s", err)
		return err
	}

	if err := a.metrics.Flush(); err != nil {
		a.logger.Errorf(providers.TypeApp, "Unable to write metrics textfile: %s", err)
	}

	if !a.conf.Publisher.Enabled || a.conf.NoPush {
		a.logger.Infof(providers.TypeGit, "Publishing disabled, leaving changes uncommitted")
		return nil
	}
	a.publisher.Publish(ctx, publisher.CommitMessage(snapshot.TimestampLocal))
	return nil
}

// Close releases the archive. The logger is closed by the injector cleanup.
func (a *App) Close() {
	a.archive.Close()
}
