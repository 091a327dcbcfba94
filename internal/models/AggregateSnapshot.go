package models

import (
	"time"

	json "github.com/goccy/go-json"
)

const (
	TimestampFormat      = "2006-01-02T15:04:05Z"
	TimestampLocalFormat = "2006-01-02 15:04:05"
)

type RedditAggregate struct {
	TotalSubscribers int              `json:"total_subscribers"`
	DeltaSubscribers int              `json:"delta_subscribers"`
	TotalActive      int              `json:"total_active"`
	TotalPosts24h    int              `json:"total_posts_24h"`
	TotalComments    int              `json:"total_comments"`
	TotalUpvotes     int              `json:"total_upvotes"`
	Subreddits       []SubredditStats `json:"subreddits"`

	subscribersUnknown bool
}

// UnmarshalJSON remembers whether total_subscribers was present so a partial
// document still falls back to the current value.
func (r *RedditAggregate) UnmarshalJSON(data []byte) error {
	type plain RedditAggregate
	var presence struct {
		TotalSubscribers *int `json:"total_subscribers"`
	}
	if err := json.Unmarshal(data, (*plain)(r)); err != nil {
		return err
	}
	if err := json.Unmarshal(data, &presence); err != nil {
		return err
	}
	r.subscribersUnknown = presence.TotalSubscribers == nil
	return nil
}

// Add folds one available community into the totals.
func (r *RedditAggregate) Add(stats SubredditStats) {
	r.TotalSubscribers += stats.Subscribers
	r.TotalActive += stats.Active
	r.TotalPosts24h += stats.Posts24h
	r.TotalComments += stats.Comments
	r.TotalUpvotes += stats.TotalUpvotes
	r.Subreddits = append(r.Subreddits, stats)
}

type RepoAggregate struct {
	Stars      int `json:"stars"`
	StarsDelta int `json:"stars_delta"`
	Forks      int `json:"forks"`
	ForksDelta int `json:"forks_delta"`
	OpenIssues int `json:"open_issues"`

	starsUnknown bool
	forksUnknown bool
}

func (r *RepoAggregate) UnmarshalJSON(data []byte) error {
	type plain RepoAggregate
	var presence struct {
		Stars *int `json:"stars"`
		Forks *int `json:"forks"`
	}
	if err := json.Unmarshal(data, (*plain)(r)); err != nil {
		return err
	}
	if err := json.Unmarshal(data, &presence); err != nil {
		return err
	}
	r.starsUnknown = presence.Stars == nil
	r.forksUnknown = presence.Forks == nil
	return nil
}

// AggregateSnapshot is the content of the current-state file. A section left nil
// was absent from the file it was loaded from.
type AggregateSnapshot struct {
	Timestamp      string           `json:"timestamp"`
	TimestampLocal string           `json:"timestamp_local"`
	DataPoints     int              `json:"data_points"`
	Reddit         *RedditAggregate `json:"reddit,omitempty"`
	GitHub         *RepoAggregate   `json:"github,omitempty"`
}

func NewAggregateSnapshot(now time.Time, zone *time.Location, dataPoints int) *AggregateSnapshot {
	return &AggregateSnapshot{
		Timestamp:      now.UTC().Format(TimestampFormat),
		TimestampLocal: now.In(zone).Format(TimestampLocalFormat),
		DataPoints:     dataPoints,
		Reddit:         &RedditAggregate{Subreddits: make([]SubredditStats, 0)},
		GitHub:         &RepoAggregate{},
	}
}

// SubscribersBaseline returns the previous subscriber total, or current when the
// previous snapshot has no value for it.
func (s *AggregateSnapshot) SubscribersBaseline(current int) int {
	if s == nil || s.Reddit == nil || s.Reddit.subscribersUnknown {
		return current
	}
	return s.Reddit.TotalSubscribers
}

func (s *AggregateSnapshot) StarsBaseline(current int) int {
	if s == nil || s.GitHub == nil || s.GitHub.starsUnknown {
		return current
	}
	return s.GitHub.Stars
}

func (s *AggregateSnapshot) ForksBaseline(current int) int {
	if s == nil || s.GitHub == nil || s.GitHub.forksUnknown {
		return current
	}
	return s.GitHub.Forks
}
