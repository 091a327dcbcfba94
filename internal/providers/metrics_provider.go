package providers

import (
	"time"

	"github.com/chiuchau-cyril/moltbot-dashboard/internal/models"
	"github.com/chiuchau-cyril/moltbot-dashboard/internal/structures"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncFetchTotal(host string, status int)
	ObserveFetchDuration(host string, duration time.Duration)
	ObservePersistenceDuration(duration time.Duration)
	SetSnapshot(snapshot *models.AggregateSnapshot)
	SetHistorySize(count int)
	Flush() error
}

type MetricsProvider struct {
	registry            *prometheus.Registry
	textfilePath        string
	fetchTotal          *prometheus.CounterVec
	fetchDuration       *prometheus.HistogramVec
	persistenceDuration prometheus.Histogram
	subscribers         *prometheus.GaugeVec
	repoCounters        *prometheus.GaugeVec
	historySize         prometheus.Gauge
	lastRun             prometheus.Gauge
}

func (m *MetricsProvider) IncFetchTotal(host string, status int) {
	m.fetchTotal.WithLabelValues(host, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveFetchDuration(host string, duration time.Duration) {
	m.fetchDuration.WithLabelValues(host).Observe(duration.Seconds())
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) SetSnapshot(snapshot *models.AggregateSnapshot) {
	if snapshot == nil {
		return
	}
	if snapshot.Reddit != nil {
		for _, sub := range snapshot.Reddit.Subreddits {
			m.subscribers.WithLabelValues(sub.Key).Set(float64(sub.Subscribers))
		}
	}
	if snapshot.GitHub != nil {
		m.repoCounters.WithLabelValues("stars").Set(float64(snapshot.GitHub.Stars))
		m.repoCounters.WithLabelValues("forks").Set(float64(snapshot.GitHub.Forks))
		m.repoCounters.WithLabelValues("open_issues").Set(float64(snapshot.GitHub.OpenIssues))
	}
	m.lastRun.SetToCurrentTime()
}

func (m *MetricsProvider) SetHistorySize(count int) {
	m.historySize.Set(float64(count))
}

// Flush writes every collected metric in the node_exporter textfile format.
func (m *MetricsProvider) Flush() error {
	return prometheus.WriteToTextfile(m.textfilePath, m.registry)
}

func httpStatusBucket(code int) string {
	switch {
	case code == 0:
		return "error"
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &MetricsProvider{
		registry:     reg,
		textfilePath: conf.Metrics.TextfilePath,

		fetchTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "moltbot_fetch_requests_total",
			Help: "Total number of upstream API requests",
		}, []string{"host", "status"}),

		fetchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "moltbot_fetch_duration_seconds",
			Help:    "Upstream API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"host"}),

		persistenceDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "moltbot_persistence_duration_seconds",
			Help:    "Duration of snapshot and history writes in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		subscribers: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "moltbot_subreddit_subscribers",
			Help: "Subscriber count per tracked subreddit",
		}, []string{"subreddit"}),

		repoCounters: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "moltbot_github_repo",
			Help: "Repository counters by kind",
		}, []string{"kind"}),

		historySize: factory.NewGauge(prometheus.GaugeOpts{
			Name: "moltbot_history_entries",
			Help: "Number of entries kept in the history file",
		}),

		lastRun: factory.NewGauge(prometheus.GaugeOpts{
			Name: "moltbot_last_run_timestamp_seconds",
			Help: "Unix time of the last completed collection",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncFetchTotal(_ string, _ int)                  {}
func (n *noopMetrics) ObserveFetchDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)     {}
func (n *noopMetrics) SetSnapshot(_ *models.AggregateSnapshot)        {}
func (n *noopMetrics) SetHistorySize(_ int)                           {}
func (n *noopMetrics) Flush() error                                   { return nil }
