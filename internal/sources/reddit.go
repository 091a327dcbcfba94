package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/chiuchau-cyril/moltbot-dashboard/internal/models"
	"github.com/chiuchau-cyril/moltbot-dashboard/internal/providers"
	"github.com/chiuchau-cyril/moltbot-dashboard/internal/structures"
)

// ActivityWindow is the trailing window post activity is counted over.
const ActivityWindow = 24 * time.Hour

type RedditFetcherInterface interface {
	FetchSubreddit(ctx context.Context, key string) (*models.SubredditStats, error)
}

type aboutResponse struct {
	Data struct {
		Subscribers    int `json:"subscribers"`
		AccountsActive int `json:"accounts_active"`
	} `json:"data"`
}

type listingResponse struct {
	Data struct {
		Children []struct {
			Data post `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type post struct {
	CreatedUTC  float64 `json:"created_utc"`
	NumComments int     `json:"num_comments"`
	Score       int     `json:"score"`
}

type RedditFetcher struct {
	client *http.Client
	conf   structures.RedditConfig
	logger providers.Logger
	now    func() time.Time
}

func NewRedditFetcher(conf *structures.Config, client *http.Client, logger providers.Logger) RedditFetcherInterface {
	return &RedditFetcher{
		client: client,
		conf:   conf.Reddit,
		logger: logger,
		now:    time.Now,
	}
}

func (r *RedditFetcher) headers() map[string]string {
	return map[string]string{"User-Agent": r.conf.UserAgent}
}

// FetchSubreddit reads community metadata and one page of hot posts. Only the
// metadata call is mandatory: a failed status on the listing counts as no posts.
// A single page undercounts busy communities; the sampling is kept as is so
// published history stays comparable between runs.
func (r *RedditFetcher) FetchSubreddit(ctx context.Context, key string) (*models.SubredditStats, error) {
	if key == "" || strings.ContainsAny(key, "/?#") {
		return nil, NewValidationError("subreddit", key)
	}
	source := "r/" + key
	base := strings.TrimRight(r.conf.BaseURL, "/")

	aboutURL := fmt.Sprintf("%s/r/%s/about.json", base, url.PathEscape(key))
	resp, err := get(ctx, r.client, aboutURL, r.headers())
	if err != nil {
		r.logger.Errorf(providers.TypeReddit, "%s about: %s", source, err)
		return nil, NewUnavailableError(source, 0, "about request failed", err)
	}
	if !resp.ok() {
		r.logger.Warnf(providers.TypeReddit, "%s about: HTTP %d", source, resp.status)
		return nil, NewUnavailableError(source, resp.status, "about returned non-success status", nil)
	}

	var about aboutResponse
	if err := decode(resp, &about); err != nil {
		r.logger.Errorf(providers.TypeReddit, "%s about: malformed response: %s", source, err)
		return nil, NewUnavailableError(source, resp.status, "malformed about response", err)
	}

	stats := models.NewSubredditStats(key, about.Data.Subscribers, about.Data.AccountsActive)

	hotURL := fmt.Sprintf("%s/r/%s/hot.json?limit=%d", base, url.PathEscape(key), r.conf.HotLimit)
	resp, err = get(ctx, r.client, hotURL, r.headers())
	if err != nil {
		r.logger.Errorf(providers.TypeReddit, "%s hot: %s", source, err)
		return nil, NewUnavailableError(source, 0, "hot request failed", err)
	}
	if !resp.ok() {
		r.logger.Warnf(providers.TypeReddit, "%s hot: HTTP %d, counting no posts", source, resp.status)
		return stats, nil
	}

	var listing listingResponse
	if err := decode(resp, &listing); err != nil {
		r.logger.Errorf(providers.TypeReddit, "%s hot: malformed response: %s", source, err)
		return nil, NewUnavailableError(source, resp.status, "malformed hot response", err)
	}

	cutoff := float64(r.now().Add(-ActivityWindow).UnixNano()) / float64(time.Second)
	for _, child := range listing.Data.Children {
		p := child.Data
		if p.CreatedUTC > cutoff {
			stats.AddPost(p.NumComments, p.Score)
		}
	}

	r.logger.Debugf(providers.TypeReddit, "%s: %d of %d hot posts inside the window", source, stats.Posts24h, len(listing.Data.Children))
	return stats, nil
}
