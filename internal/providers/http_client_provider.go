package providers

import (
	"net/http"

	"github.com/chiuchau-cyril/moltbot-dashboard/internal/structures"
)

// NewHTTPClient returns the client shared by every fetcher. Requests that exceed
// http.timeout fail like any other transport error.
func NewHTTPClient(conf *structures.Config, metrics MetricsProviderInterface) *http.Client {
	return &http.Client{
		Timeout:   conf.HTTP.Timeout,
		Transport: MetricsTransport(metrics, http.DefaultTransport),
	}
}
