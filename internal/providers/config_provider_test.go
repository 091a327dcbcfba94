package providers

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chiuchau-cyril/moltbot-dashboard/internal/structures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigProvider_DefaultsWithoutFile(t *testing.T) {
	flags := &structures.CliFlags{ConfigPath: filepath.Join(t.TempDir(), "missing.yaml"), NoPush: true}

	conf, err := NewConfigProvider(flags)
	require.NoError(t, err)

	assert.Equal(t, AppName, conf.AppName)
	assert.True(t, conf.NoPush)
	assert.Equal(t, []string{"clawdbot", "moltbot", "moltbothub", "moltbothq", "moltbotcommunity"}, conf.Reddit.Subreddits)
	assert.Equal(t, 100, conf.Reddit.HotLimit)
	assert.Equal(t, "anthropics/claude-code", conf.GitHub.Repo)
	assert.Equal(t, 10*time.Second, conf.HTTP.Timeout)
	assert.Equal(t, 1000, conf.Persistence.HistoryLimit)
	assert.Equal(t, 8*time.Hour, conf.Location.UTCOffset)
}

func TestNewConfigProvider_ReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "collector.yaml")
	yaml := `
reddit:
  subreddits: [alpha, beta]
github:
  repo: owner/name
http:
  timeout: 3s
persistence:
  dataFile: /tmp/out/data.json
  historyLimit: 50
location:
  utcOffset: -5h
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path, DebugMode: true})
	require.NoError(t, err)

	assert.True(t, conf.Debug)
	assert.Equal(t, path, conf.Path)
	assert.Equal(t, []string{"alpha", "beta"}, conf.Reddit.Subreddits)
	assert.Equal(t, "owner/name", conf.GitHub.Repo)
	assert.Equal(t, 3*time.Second, conf.HTTP.Timeout)
	assert.Equal(t, "/tmp/out/data.json", conf.Persistence.DataFile)
	assert.Equal(t, "history.json", conf.Persistence.HistoryFile)
	assert.Equal(t, 50, conf.Persistence.HistoryLimit)
	assert.Equal(t, -5*time.Hour, conf.Location.UTCOffset)
}

func TestNewConfigProvider_EnvOverride(t *testing.T) {
	t.Setenv("MOLTBOT_GITHUB_REPO", "someone/else")
	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: filepath.Join(t.TempDir(), "none.yaml")})
	require.NoError(t, err)
	assert.Equal(t, "someone/else", conf.GitHub.Repo)
}

func TestNewConfigProvider_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logger:\n  level: loud\n"), 0644))

	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	assert.Error(t, err)
}

func TestConfig_Zone(t *testing.T) {
	conf := &structures.Config{Location: structures.LocationConfig{Name: "GMT+8", UTCOffset: 8 * time.Hour}}
	ts := time.Date(2026, 1, 1, 20, 0, 0, 0, time.UTC).In(conf.Zone())
	assert.Equal(t, "2026-01-02 04:00", ts.Format("2006-01-02 15:04"))
}
