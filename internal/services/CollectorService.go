package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/chiuchau-cyril/moltbot-dashboard/internal/models"
	"github.com/chiuchau-cyril/moltbot-dashboard/internal/providers"
	"github.com/chiuchau-cyril/moltbot-dashboard/internal/sources"
	"github.com/chiuchau-cyril/moltbot-dashboard/internal/storage/interfaces"
	"github.com/chiuchau-cyril/moltbot-dashboard/internal/structures"
)

type CollectorServiceInterface interface {
	Collect(ctx context.Context) (*models.AggregateSnapshot, error)
}

type CollectorService struct {
	conf      *structures.Config
	reddit    sources.RedditFetcherInterface
	github    sources.GitHubFetcherInterface
	snapshots interfaces.SnapshotStoreInterface
	history   interfaces.HistoryStoreInterface
	metrics   providers.MetricsProviderInterface
	logger    providers.Logger
	printer   *message.Printer
	zone      *time.Location
	now       func() time.Time
}

func NewCollectorService(
	conf *structures.Config,
	reddit sources.RedditFetcherInterface,
	github sources.GitHubFetcherInterface,
	snapshots interfaces.SnapshotStoreInterface,
	history interfaces.HistoryStoreInterface,
	metrics providers.MetricsProviderInterface,
	logger providers.Logger,
) CollectorServiceInterface {
	return &CollectorService{
		conf:      conf,
		reddit:    reddit,
		github:    github,
		snapshots: snapshots,
		history:   history,
		metrics:   metrics,
		logger:    logger,
		printer:   message.NewPrinter(language.English),
		zone:      conf.Zone(),
		now:       time.Now,
	}
}

// Collect performs one run: fetch every source, derive totals and deltas against
// the persisted snapshot, then write the snapshot and append to the history.
// Source failures only shrink the result; an error is returned only when the
// output files cannot be written.
func (c *CollectorService) Collect(ctx context.Context) (*models.AggregateSnapshot, error) {
	now := c.now()
	c.logger.Infof(providers.TypeApp, "%s - Collecting stats at %s", c.conf.AppName, now.In(c.zone).Format(models.TimestampLocalFormat))

	prev := c.snapshots.Load()
	history := c.history.Load()

	snapshot := models.NewAggregateSnapshot(now, c.zone, len(history)+1)

	reddit := c.collectReddit(ctx)
	reddit.DeltaSubscribers = reddit.TotalSubscribers - prev.SubscribersBaseline(reddit.TotalSubscribers)
	snapshot.Reddit = reddit

	repo, ok := c.collectGitHub(ctx)
	aggregate := &models.RepoAggregate{
		Stars:      repo.Stars,
		Forks:      repo.Forks,
		OpenIssues: repo.OpenIssues,
	}
	if ok {
		aggregate.StarsDelta = repo.Stars - prev.StarsBaseline(repo.Stars)
		aggregate.ForksDelta = repo.Forks - prev.ForksBaseline(repo.Forks)
	}
	snapshot.GitHub = aggregate

	if err := c.snapshots.Save(snapshot); err != nil {
		return nil, fmt.Errorf("save snapshot: %w", err)
	}
	c.logger.Infof(providers.TypeStorage, "Saved %s", c.conf.Persistence.DataFile)

	entry := models.NewHistoryEntry(now, c.zone, reddit, repo)
	size, err := c.history.Append(entry)
	if err != nil {
		return nil, fmt.Errorf("append history: %w", err)
	}
	c.logger.Infof(providers.TypeStorage, "Updated %s (%d entries)", c.conf.Persistence.HistoryFile, size)

	c.metrics.SetSnapshot(snapshot)
	return snapshot, nil
}

func (c *CollectorService) collectReddit(ctx context.Context) *models.RedditAggregate {
	reddit := &models.RedditAggregate{Subreddits: make([]models.SubredditStats, 0, len(c.conf.Reddit.Subreddits))}

	for _, key := range c.conf.Reddit.Subreddits {
		stats, err := c.reddit.FetchSubreddit(ctx, key)
		if err != nil || stats == nil {
			c.logger.Warnf(providers.TypeReddit, "r/%s: skipped (%v)", key, err)
			continue
		}
		reddit.Add(*stats)
		c.logger.Infof(providers.TypeReddit, "r/%s: %s subs, %d posts/24h", key, c.printer.Sprintf("%d", stats.Subscribers), stats.Posts24h)
	}
	return reddit
}

// collectGitHub substitutes zero counters when the repository is unavailable,
// ok reports whether the counters are real.
func (c *CollectorService) collectGitHub(ctx context.Context) (models.RepoStats, bool) {
	repo, err := c.github.FetchRepository(ctx, c.conf.GitHub.Repo)
	if err != nil || repo == nil {
		c.logger.Warnf(providers.TypeGitHub, "%s: skipped (%v)", c.conf.GitHub.Repo, err)
		return models.RepoStats{}, false
	}
	c.logger.Infof(providers.TypeGitHub, "%s: %s stars | %s forks", c.conf.GitHub.Repo,
		c.printer.Sprintf("%d", repo.Stars), c.printer.Sprintf("%d", repo.Forks))
	return *repo, true
}
