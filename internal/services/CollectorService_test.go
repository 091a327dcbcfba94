package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chiuchau-cyril/moltbot-dashboard/internal/models"
	"github.com/chiuchau-cyril/moltbot-dashboard/internal/storage"
	"github.com/chiuchau-cyril/moltbot-dashboard/internal/storage/interfaces"
	"github.com/chiuchau-cyril/moltbot-dashboard/internal/structures"
	"github.com/chiuchau-cyril/moltbot-dashboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var runTime = time.Date(2026, 10, 18, 6, 0, 0, 0, time.UTC)

type fixture struct {
	conf      *structures.Config
	reddit    *testutil.MockRedditFetcher
	github    *testutil.MockGitHubFetcher
	snapshots interfaces.SnapshotStoreInterface
	history   interfaces.HistoryStoreInterface
	metrics   *testutil.MockMetrics
	logger    *testutil.MockLogger
	service   *CollectorService
}

func newFixture(t *testing.T, subreddits ...string) *fixture {
	dir := t.TempDir()
	conf := &structures.Config{
		AppName: "test",
		Reddit:  structures.RedditConfig{Subreddits: subreddits},
		GitHub:  structures.GitHubConfig{Repo: "owner/repo"},
		Persistence: structures.Persistence{
			DataFile:     filepath.Join(dir, "data.json"),
			HistoryFile:  filepath.Join(dir, "history.json"),
			HistoryLimit: 1000,
		},
		Location: structures.LocationConfig{Name: "GMT+8", UTCOffset: 8 * time.Hour},
	}

	f := &fixture{
		conf:    conf,
		reddit:  &testutil.MockRedditFetcher{Stats: map[string]*models.SubredditStats{}, Errs: map[string]error{}},
		github:  &testutil.MockGitHubFetcher{Repo: &models.RepoStats{}},
		metrics: &testutil.MockMetrics{},
		logger:  &testutil.MockLogger{},
	}
	f.snapshots = storage.NewSnapshotStore(conf, f.logger, f.metrics)
	f.history = storage.NewHistoryStore(conf, storage.NewHistoryArchive(conf, &testutil.MockCompressor{}, f.logger), f.logger, f.metrics)
	f.service = NewCollectorService(conf, f.reddit, f.github, f.snapshots, f.history, f.metrics, f.logger).(*CollectorService)
	f.service.now = func() time.Time { return runTime }
	return f
}

func subreddit(key string, subs int, scores ...int) *models.SubredditStats {
	s := models.NewSubredditStats(key, subs, 1)
	for _, score := range scores {
		s.AddPost(1, score)
	}
	return s
}

func TestCollect_EndToEndExample(t *testing.T) {
	f := newFixture(t, "a", "b")
	require.NoError(t, f.snapshots.Save(&models.AggregateSnapshot{
		Reddit: &models.RedditAggregate{TotalSubscribers: 1000},
		GitHub: &models.RepoAggregate{Stars: 45, Forks: 9},
	}))

	f.reddit.Stats["a"] = subreddit("a", 600, 10, 20)
	f.reddit.Errs["b"] = errors.New("HTTP 403")
	f.github.Repo = &models.RepoStats{Stars: 50, Forks: 10, OpenIssues: 3}

	snapshot, err := f.service.Collect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 600, snapshot.Reddit.TotalSubscribers)
	assert.Equal(t, -400, snapshot.Reddit.DeltaSubscribers)
	require.Len(t, snapshot.Reddit.Subreddits, 1)
	assert.Equal(t, "a", snapshot.Reddit.Subreddits[0].Key)
	assert.Equal(t, 15, snapshot.Reddit.Subreddits[0].AvgScore)
	assert.Equal(t, 20, snapshot.Reddit.Subreddits[0].TopScore)
	assert.Equal(t, 50, snapshot.GitHub.Stars)
	assert.Equal(t, 5, snapshot.GitHub.StarsDelta)
	assert.Equal(t, 1, snapshot.GitHub.ForksDelta)
	assert.Equal(t, 3, snapshot.GitHub.OpenIssues)

	assert.Equal(t, []string{"a", "b"}, f.reddit.Calls)
	assert.Equal(t, snapshot, f.snapshots.Load())
	assert.Same(t, snapshot, f.metrics.Snapshot)
}

func TestCollect_FirstRunHasZeroDeltas(t *testing.T) {
	f := newFixture(t, "a")
	f.reddit.Stats["a"] = subreddit("a", 600)
	f.github.Repo = &models.RepoStats{Stars: 50, Forks: 5}

	snapshot, err := f.service.Collect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, snapshot.Reddit.DeltaSubscribers)
	assert.Equal(t, 0, snapshot.GitHub.StarsDelta)
	assert.Equal(t, 0, snapshot.GitHub.ForksDelta)
	assert.Equal(t, 1, snapshot.DataPoints)
	assert.Equal(t, "2026-10-18T06:00:00Z", snapshot.Timestamp)
	assert.Equal(t, "2026-10-18 14:00:00", snapshot.TimestampLocal)
}

func TestCollect_TotalsOnlyCountAvailableCommunities(t *testing.T) {
	f := newFixture(t, "a", "b", "c")
	f.reddit.Stats["a"] = subreddit("a", 100, 5)
	f.reddit.Errs["b"] = errors.New("timeout")
	f.reddit.Stats["c"] = subreddit("c", 30, 1, 2)

	snapshot, err := f.service.Collect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 130, snapshot.Reddit.TotalSubscribers)
	assert.Equal(t, 2, snapshot.Reddit.TotalActive)
	assert.Equal(t, 3, snapshot.Reddit.TotalPosts24h)
	assert.Equal(t, 3, snapshot.Reddit.TotalComments)
	assert.Equal(t, 8, snapshot.Reddit.TotalUpvotes)
	require.Len(t, snapshot.Reddit.Subreddits, 2)
	assert.Equal(t, "c", snapshot.Reddit.Subreddits[1].Key)
	assert.True(t, f.logger.HasLevel("warn"))
}

func TestCollect_RepositoryFailureZeroesCounters(t *testing.T) {
	f := newFixture(t, "a")
	require.NoError(t, f.snapshots.Save(&models.AggregateSnapshot{
		GitHub: &models.RepoAggregate{Stars: 45, Forks: 9, OpenIssues: 2},
	}))
	f.reddit.Stats["a"] = subreddit("a", 1)
	f.github.Err = errors.New("HTTP 502")

	snapshot, err := f.service.Collect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.RepoAggregate{}, *snapshot.GitHub)
}

func TestCollect_PartialPreviousSnapshot(t *testing.T) {
	f := newFixture(t, "a")
	require.NoError(t, os.WriteFile(f.conf.Persistence.DataFile,
		[]byte(`{"reddit":{"total_active":3},"github":{"stars":40}}`), 0644))
	f.reddit.Stats["a"] = subreddit("a", 600)
	f.github.Repo = &models.RepoStats{Stars: 50, Forks: 10}

	snapshot, err := f.service.Collect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, snapshot.Reddit.DeltaSubscribers)
	assert.Equal(t, 10, snapshot.GitHub.StarsDelta)
	assert.Equal(t, 0, snapshot.GitHub.ForksDelta)
}

func TestCollect_AllSourcesFail(t *testing.T) {
	f := newFixture(t, "a", "b")
	f.reddit.Errs["a"] = errors.New("down")
	f.reddit.Errs["b"] = errors.New("down")
	f.github.Err = errors.New("down")

	snapshot, err := f.service.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, snapshot.Reddit.TotalSubscribers)
	assert.NotNil(t, snapshot.Reddit.Subreddits)
	assert.Empty(t, snapshot.Reddit.Subreddits)

	entries := f.history.Load()
	require.Len(t, entries, 1)
	assert.Empty(t, entries[0].Communities)
}

func TestCollect_AppendsHistoryAndCountsDataPoints(t *testing.T) {
	f := newFixture(t, "a", "b")
	f.reddit.Stats["a"] = subreddit("a", 600, 10, 20)
	f.reddit.Stats["b"] = subreddit("b", 40)
	f.github.Repo = &models.RepoStats{Stars: 50, Forks: 5, OpenIssues: 2}

	first, err := f.service.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first.DataPoints)

	f.reddit.Stats["a"] = subreddit("a", 610)
	second, err := f.service.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, second.DataPoints)
	assert.Equal(t, 10, second.Reddit.DeltaSubscribers)

	entries := f.history.Load()
	require.Len(t, entries, 2)
	e := entries[0]
	assert.Equal(t, "2026-10-18T14:00:00.000000+08:00", e.Timestamp)
	assert.Equal(t, "10/18 14:00", e.TimeLocal)
	assert.Equal(t, 640, e.RedditTotal)
	assert.Equal(t, 30, e.RedditUpvotes)
	require.Len(t, e.Communities, 2)
	assert.Equal(t, models.CommunityCounters{Key: "a", Subscribers: 600, Active: 1, Posts: 2, Upvotes: 30, Comments: 2}, e.Communities[0])
	assert.Equal(t, "b", e.Communities[1].Key)
	assert.Equal(t, 50, e.GitHubStars)
	assert.Equal(t, 5, e.GitHubForks)
	assert.Equal(t, 2, e.GitHubIssues)
	assert.Equal(t, 2, f.metrics.HistorySize)
}

type failingSnapshotStore struct{}

func (failingSnapshotStore) Load() *models.AggregateSnapshot { return &models.AggregateSnapshot{} }
func (failingSnapshotStore) Save(_ *models.AggregateSnapshot) error {
	return errors.New("disk full")
}

func TestCollect_PersistenceFailurePropagates(t *testing.T) {
	f := newFixture(t, "a")
	f.reddit.Stats["a"] = subreddit("a", 1)
	f.service.snapshots = failingSnapshotStore{}

	snapshot, err := f.service.Collect(context.Background())
	assert.Nil(t, snapshot)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Empty(t, f.history.Load())
}
