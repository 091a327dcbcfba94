package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"

	json "github.com/goccy/go-json"
)

type response struct {
	status int
	body   []byte
}

func (r *response) ok() bool {
	return r.status >= 200 && r.status < 300
}

// get performs one GET and reads the whole body. Only transport failures are
// returned as errors; the caller decides what a status code means.
func get(ctx context.Context, client *http.Client, url string, headers map[string]string) (*response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return &response{status: resp.StatusCode, body: body}, nil
}

func decode(r *response, v interface{}) error {
	return json.Unmarshal(r.body, v)
}
