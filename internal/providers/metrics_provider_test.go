package providers

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chiuchau-cyril/moltbot-dashboard/internal/models"
	"github.com/chiuchau-cyril/moltbot-dashboard/internal/structures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopMetrics_WhenDisabled(t *testing.T) {
	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: false},
	}
	m := NewMetricsProvider(conf)
	_, ok := m.(*noopMetrics)
	assert.True(t, ok, "should return noopMetrics when disabled")

	// Ensure no-op methods don't panic
	m.IncFetchTotal("www.reddit.com", 200)
	m.ObserveFetchDuration("www.reddit.com", time.Millisecond)
	m.ObservePersistenceDuration(time.Millisecond)
	m.SetSnapshot(&models.AggregateSnapshot{})
	m.SetHistorySize(10)
	assert.NoError(t, m.Flush())
}

func TestMetricsProvider_WritesTextfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moltbot.prom")
	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true, TextfilePath: path},
	}
	m := NewMetricsProvider(conf)
	_, ok := m.(*MetricsProvider)
	require.True(t, ok, "should return MetricsProvider when enabled")

	m.IncFetchTotal("api.github.com", 200)
	m.IncFetchTotal("www.reddit.com", 0)
	m.ObserveFetchDuration("api.github.com", 5*time.Millisecond)
	m.ObservePersistenceDuration(100 * time.Millisecond)
	m.SetHistorySize(42)
	m.SetSnapshot(&models.AggregateSnapshot{
		Reddit: &models.RedditAggregate{Subreddits: []models.SubredditStats{{Key: "moltbot", Subscribers: 600}}},
		GitHub: &models.RepoAggregate{Stars: 50},
	})
	require.NoError(t, m.Flush())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `moltbot_fetch_requests_total{host="api.github.com",status="2xx"} 1`)
	assert.Contains(t, text, `moltbot_fetch_requests_total{host="www.reddit.com",status="error"} 1`)
	assert.Contains(t, text, `moltbot_subreddit_subscribers{subreddit="moltbot"} 600`)
	assert.Contains(t, text, `moltbot_github_repo{kind="stars"} 50`)
	assert.Contains(t, text, `moltbot_history_entries 42`)
}

func TestMetricsProvider_IndependentRegistries(t *testing.T) {
	dir := t.TempDir()
	conf := &structures.Config{Metrics: structures.MetricsConfig{Enabled: true, TextfilePath: filepath.Join(dir, "a.prom")}}
	assert.NotPanics(t, func() {
		NewMetricsProvider(conf)
		NewMetricsProvider(conf)
	})
}

func TestHttpStatusBucket(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{0, "error"},
		{100, "1xx"},
		{200, "2xx"},
		{201, "2xx"},
		{301, "3xx"},
		{400, "4xx"},
		{429, "4xx"},
		{500, "5xx"},
		{503, "5xx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, httpStatusBucket(tt.code))
	}
}
