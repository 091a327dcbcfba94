package models

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

const (
	HistoryTimestampFormat = "2006-01-02T15:04:05.000000-07:00"
	HistoryLabelFormat     = "01/02 15:04"
)

var communitySuffixes = []string{"_subs", "_active", "_posts", "_upvotes", "_comments"}

// CommunityCounters is the per-community slice of a history entry.
type CommunityCounters struct {
	Key         string
	Subscribers int
	Active      int
	Posts       int
	Upvotes     int
	Comments    int
}

func (c *CommunityCounters) set(suffix string, value int) {
	switch suffix {
	case "_subs":
		c.Subscribers = value
	case "_active":
		c.Active = value
	case "_posts":
		c.Posts = value
	case "_upvotes":
		c.Upvotes = value
	case "_comments":
		c.Comments = value
	}
}

func (c *CommunityCounters) values() []int {
	return []int{c.Subscribers, c.Active, c.Posts, c.Upvotes, c.Comments}
}

// HistoryEntry is one run in the history file. On disk it is a single flat
// object whose community fields are prefixed with the community key.
type HistoryEntry struct {
	Timestamp      string
	TimeLocal      string
	RedditTotal    int
	RedditActive   int
	RedditPosts    int
	RedditComments int
	RedditUpvotes  int
	Communities    []CommunityCounters
	GitHubStars    int
	GitHubForks    int
	GitHubIssues   int
}

func NewHistoryEntry(now time.Time, zone *time.Location, reddit *RedditAggregate, repo RepoStats) HistoryEntry {
	local := now.In(zone)
	entry := HistoryEntry{
		Timestamp:      local.Format(HistoryTimestampFormat),
		TimeLocal:      local.Format(HistoryLabelFormat),
		RedditTotal:    reddit.TotalSubscribers,
		RedditActive:   reddit.TotalActive,
		RedditPosts:    reddit.TotalPosts24h,
		RedditComments: reddit.TotalComments,
		RedditUpvotes:  reddit.TotalUpvotes,
		Communities:    make([]CommunityCounters, 0, len(reddit.Subreddits)),
		GitHubStars:    repo.Stars,
		GitHubForks:    repo.Forks,
		GitHubIssues:   repo.OpenIssues,
	}
	for _, sub := range reddit.Subreddits {
		entry.Communities = append(entry.Communities, CommunityCounters{
			Key:         sub.Key,
			Subscribers: sub.Subscribers,
			Active:      sub.Active,
			Posts:       sub.Posts24h,
			Upvotes:     sub.TotalUpvotes,
			Comments:    sub.Comments,
		})
	}
	return entry
}

// Month is the YYYY-MM prefix of the entry timestamp.
func (e HistoryEntry) Month() string {
	return monthOf(e.Timestamp)
}

// StoredMonth reads the month of an entry kept as raw JSON without decoding
// the rest of it.
func StoredMonth(raw json.RawMessage) string {
	var head struct {
		Timestamp string `json:"timestamp"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return "unknown"
	}
	return monthOf(head.Timestamp)
}

func monthOf(timestamp string) string {
	if len(timestamp) < 7 {
		return "unknown"
	}
	return timestamp[:7]
}

type field struct {
	key   string
	value interface{}
}

func (e HistoryEntry) fields() []field {
	fields := []field{
		{"timestamp", e.Timestamp},
		{"time_local", e.TimeLocal},
		{"reddit_total", e.RedditTotal},
		{"reddit_active", e.RedditActive},
		{"reddit_posts", e.RedditPosts},
		{"reddit_comments", e.RedditComments},
		{"reddit_upvotes", e.RedditUpvotes},
	}
	for _, c := range e.Communities {
		for i, v := range c.values() {
			fields = append(fields, field{c.Key + communitySuffixes[i], v})
		}
	}
	return append(fields,
		field{"github_stars", e.GitHubStars},
		field{"github_forks", e.GitHubForks},
		field{"github_issues", e.GitHubIssues},
	)
}

func (e HistoryEntry) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range e.fields() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (e *HistoryEntry) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	strs := map[string]*string{
		"timestamp":  &e.Timestamp,
		"time_local": &e.TimeLocal,
	}
	ints := map[string]*int{
		"reddit_total":    &e.RedditTotal,
		"reddit_active":   &e.RedditActive,
		"reddit_posts":    &e.RedditPosts,
		"reddit_comments": &e.RedditComments,
		"reddit_upvotes":  &e.RedditUpvotes,
		"github_stars":    &e.GitHubStars,
		"github_forks":    &e.GitHubForks,
		"github_issues":   &e.GitHubIssues,
	}

	communities := make(map[string]*CommunityCounters)
	for key, value := range raw {
		if dst, ok := strs[key]; ok {
			if err := json.Unmarshal(value, dst); err != nil {
				return fmt.Errorf("history field %s: %w", key, err)
			}
			continue
		}
		if dst, ok := ints[key]; ok {
			if err := json.Unmarshal(value, dst); err != nil {
				return fmt.Errorf("history field %s: %w", key, err)
			}
			continue
		}
		for _, suffix := range communitySuffixes {
			if !strings.HasSuffix(key, suffix) || len(key) == len(suffix) {
				continue
			}
			var v int
			if err := json.Unmarshal(value, &v); err != nil {
				return fmt.Errorf("history field %s: %w", key, err)
			}
			name := strings.TrimSuffix(key, suffix)
			c, ok := communities[name]
			if !ok {
				c = &CommunityCounters{Key: name}
				communities[name] = c
			}
			c.set(suffix, v)
			break
		}
	}

	// Maps lose key order, the position of each community's first key in the
	// document restores it.
	e.Communities = make([]CommunityCounters, 0, len(communities))
	positions := make(map[string]int, len(communities))
	for name, c := range communities {
		positions[name] = firstKeyOffset(data, name)
		e.Communities = append(e.Communities, *c)
	}
	sort.SliceStable(e.Communities, func(i, j int) bool {
		pi, pj := positions[e.Communities[i].Key], positions[e.Communities[j].Key]
		if pi != pj {
			return pi < pj
		}
		return e.Communities[i].Key < e.Communities[j].Key
	})
	return nil
}

func firstKeyOffset(data []byte, name string) int {
	best := len(data)
	for _, suffix := range communitySuffixes {
		quoted, err := json.Marshal(name + suffix)
		if err != nil {
			continue
		}
		if idx := bytes.Index(data, quoted); idx >= 0 && idx < best {
			best = idx
		}
	}
	return best
}
