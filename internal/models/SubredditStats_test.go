package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSubredditStats_Name(t *testing.T) {
	s := NewSubredditStats("moltbot", 120, 7)
	assert.Equal(t, "r/moltbot", s.Name)
	assert.Equal(t, "moltbot", s.Key)
	assert.Equal(t, 120, s.Subscribers)
	assert.Equal(t, 7, s.Active)
	assert.Equal(t, 0, s.AvgScore)
	assert.Equal(t, 0, s.TopScore)
}

func TestSubredditStats_AddPost(t *testing.T) {
	s := NewSubredditStats("a", 600, 0)
	s.AddPost(3, 10)
	s.AddPost(4, 20)

	assert.Equal(t, 2, s.Posts24h)
	assert.Equal(t, 7, s.Comments)
	assert.Equal(t, 30, s.TotalUpvotes)
	assert.Equal(t, 15, s.AvgScore)
	assert.Equal(t, 20, s.TopScore)
}

func TestSubredditStats_NegativeScoresKeepTopAtZero(t *testing.T) {
	s := NewSubredditStats("a", 1, 0)
	s.AddPost(0, -4)
	assert.Equal(t, 0, s.TopScore)
	assert.Equal(t, -4, s.AvgScore)
}

func TestAverageScore(t *testing.T) {
	tests := []struct {
		total, posts, expected int
	}{
		{0, 0, 0},
		{30, 2, 15},
		{10, 3, 3},
		{11, 3, 4},
		{5, 2, 2},
		{7, 2, 4},
		{42, 0, 42},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, AverageScore(tt.total, tt.posts), "total=%d posts=%d", tt.total, tt.posts)
	}
}
