package providers

import (
	"net/http"
	"time"
)

type metricsTransport struct {
	metrics MetricsProviderInterface
	next    http.RoundTripper
}

func (t *metricsTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(r)
	duration := time.Since(start)

	status := 0
	if err == nil {
		status = resp.StatusCode
	}
	host := r.URL.Host
	t.metrics.IncFetchTotal(host, status)
	t.metrics.ObserveFetchDuration(host, duration)
	return resp, err
}

// MetricsTransport counts and times every outgoing request by host.
func MetricsTransport(metrics MetricsProviderInterface, next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &metricsTransport{metrics: metrics, next: next}
}
