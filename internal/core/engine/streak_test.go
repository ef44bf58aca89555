package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrentAndLongestStreak(t *testing.T) {
	tests := []struct {
		name        string
		history     History
		today       string
		wantCurrent int
		wantLongest int
	}{
		{
			name:        "Empty history",
			history:     historyOf(),
			today:       "2024-01-05",
			wantCurrent: 0,
			wantLongest: 0,
		},
		{
			name:        "Five consecutive days ending today",
			history:     historyOf("2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05"),
			today:       "2024-01-05",
			wantCurrent: 5,
			wantLongest: 5,
		},
		{
			name:        "Gap on the 3rd",
			history:     historyOf("2024-01-01", "2024-01-02", "2024-01-04"),
			today:       "2024-01-04",
			wantCurrent: 1,
			wantLongest: 2,
		},
		{
			name:        "Incomplete today does not break a streak ending yesterday",
			history:     historyOf("2024-01-02", "2024-01-03", "2024-01-04"),
			today:       "2024-01-05",
			wantCurrent: 3,
			wantLongest: 3,
		},
		{
			name:        "Last completion two days ago breaks the streak",
			history:     historyOf("2024-01-02", "2024-01-03"),
			today:       "2024-01-05",
			wantCurrent: 0,
			wantLongest: 2,
		},
		{
			name:        "Longest streak in the past",
			history:     historyOf("2023-12-01", "2023-12-02", "2023-12-03", "2023-12-04", "2024-01-05"),
			today:       "2024-01-05",
			wantCurrent: 1,
			wantLongest: 4,
		},
		{
			name:        "Future completions are ignored by the current streak",
			history:     historyOf("2024-01-04", "2024-01-05", "2024-01-09"),
			today:       "2024-01-05",
			wantCurrent: 2,
			wantLongest: 2,
		},
		{
			name:        "Single completion",
			history:     historyOf("2024-01-01"),
			today:       "2024-03-01",
			wantCurrent: 0,
			wantLongest: 1,
		},
		{
			name:        "Streak across a month and leap day",
			history:     historyOf("2024-02-28", "2024-02-29", "2024-03-01"),
			today:       "2024-03-01",
			wantCurrent: 3,
			wantLongest: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCurrent, CurrentStreak(tt.history, d(tt.today)), "current streak mismatch")
			assert.Equal(t, tt.wantLongest, LongestStreak(tt.history), "longest streak mismatch")
		})
	}
}

func TestStreakProperties(t *testing.T) {
	histories := []History{
		historyOf(),
		historyOf("2024-01-01"),
		historyOf("2024-01-01", "2024-01-02", "2024-01-04", "2024-01-05", "2024-01-06"),
		historyOf("2024-01-10", "2024-01-03", "2024-01-02", "2024-01-01"),
		historyOf("2024-01-01", "2024-01-01", "2024-01-02"),
	}

	for _, h := range histories {
		for day := d("2023-12-30"); !day.After(d("2024-01-12")); day = day.AddDays(1) {
			current := CurrentStreak(h, day)
			assert.GreaterOrEqual(t, current, 0)
			assert.LessOrEqual(t, current, h.Len())
			assert.GreaterOrEqual(t, LongestStreak(h), current, day.String())
			assert.Equal(t, current, CurrentStreak(h, day), "same inputs must give the same output")
		}
	}
}

func TestNextMilestone(t *testing.T) {
	milestones := []int{3, 7, 14, 30, 60, 100, 365}

	tests := []struct {
		streak int
		want   int
		ok     bool
	}{
		{0, 3, true},
		{3, 7, true},
		{6, 7, true},
		{99, 100, true},
		{364, 365, true},
		{365, 0, false},
		{1000, 0, false},
	}

	for _, tt := range tests {
		got, ok := NextMilestone(tt.streak, milestones)
		assert.Equal(t, tt.ok, ok, "streak %d", tt.streak)
		assert.Equal(t, tt.want, got, "streak %d", tt.streak)
	}

	assert.True(t, IsMilestone(7, milestones))
	assert.False(t, IsMilestone(8, milestones))
}
