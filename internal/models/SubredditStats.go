package models

import (
	"fmt"
	"math"
)

// SubredditStats is one community's measurement for a run. The 24h counters
// only cover the single page of hot posts the fetcher samples.
type SubredditStats struct {
	Name         string `json:"name"`
	Key          string `json:"key"`
	Subscribers  int    `json:"subscribers"`
	Active       int    `json:"active"`
	Posts24h     int    `json:"posts_24h"`
	Comments     int    `json:"comments"`
	AvgScore     int    `json:"avg_score"`
	TotalUpvotes int    `json:"total_upvotes"`
	TopScore     int    `json:"top_score"`
}

func NewSubredditStats(key string, subscribers, active int) *SubredditStats {
	return &SubredditStats{
		Name:        fmt.Sprintf("r/%s", key),
		Key:         key,
		Subscribers: subscribers,
		Active:      active,
	}
}

// AddPost accounts one post from the trailing window.
func (s *SubredditStats) AddPost(comments, score int) {
	s.Posts24h++
	s.Comments += comments
	s.TotalUpvotes += score
	if score > s.TopScore {
		s.TopScore = score
	}
	s.AvgScore = AverageScore(s.TotalUpvotes, s.Posts24h)
}

// AverageScore rounds half to even so values match the ones already published.
func AverageScore(total, posts int) int {
	return int(math.RoundToEven(float64(total) / float64(max(posts, 1))))
}
