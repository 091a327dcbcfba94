package testutil

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/chiuchau-cyril/moltbot-dashboard/internal/models"
	"github.com/chiuchau-cyril/moltbot-dashboard/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

func (m *MockLogger) HasLevel(level string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.Logs {
		if l.Level == level {
			return true
		}
	}
	return false
}

// Contains reports whether any format string contains substr.
func (m *MockLogger) Contains(substr string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.Logs {
		if strings.Contains(l.Format, substr) {
			return true
		}
	}
	return false
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
	Closed       bool
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {
	m.Closed = true
}

// MockMetrics implements providers.MetricsProviderInterface.
type MockMetrics struct {
	mu               sync.Mutex
	FetchCalls       map[string]int
	PersistenceCalls int
	Snapshot         *models.AggregateSnapshot
	HistorySize      int
	FlushCalls       int
	FlushErr         error
}

func (m *MockMetrics) IncFetchTotal(host string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FetchCalls == nil {
		m.FetchCalls = make(map[string]int)
	}
	m.FetchCalls[host]++
}
func (m *MockMetrics) ObserveFetchDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PersistenceCalls++
}
func (m *MockMetrics) SetSnapshot(snapshot *models.AggregateSnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Snapshot = snapshot
}
func (m *MockMetrics) SetHistorySize(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.HistorySize = count
}
func (m *MockMetrics) Flush() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FlushCalls++
	return m.FlushErr
}

// MockRedditFetcher returns canned results keyed by community.
type MockRedditFetcher struct {
	Stats map[string]*models.SubredditStats
	Errs  map[string]error
	Calls []string
}

func (m *MockRedditFetcher) FetchSubreddit(_ context.Context, key string) (*models.SubredditStats, error) {
	m.Calls = append(m.Calls, key)
	if err, ok := m.Errs[key]; ok {
		return nil, err
	}
	if s, ok := m.Stats[key]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, errors.New("no canned result for " + key)
}

// MockGitHubFetcher returns Repo or Err.
type MockGitHubFetcher struct {
	Repo  *models.RepoStats
	Err   error
	Calls int
}

func (m *MockGitHubFetcher) FetchRepository(_ context.Context, _ string) (*models.RepoStats, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Repo, nil
}

// MockRunner records commands and fails the ones listed in FailOn.
type MockRunner struct {
	Commands [][]string
	Dirs     []string
	FailOn   map[string]error
}

func (m *MockRunner) Run(_ context.Context, dir string, name string, args ...string) ([]byte, error) {
	cmd := append([]string{name}, args...)
	m.Commands = append(m.Commands, cmd)
	m.Dirs = append(m.Dirs, dir)
	if len(args) > 0 {
		if err, ok := m.FailOn[args[0]]; ok {
			return []byte(args[0] + " failed"), err
		}
	}
	return nil, nil
}
