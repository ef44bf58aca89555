package engine

import (
	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

// CurrentStreak counts consecutive completed days ending today, or ending
// yesterday when today has no completion yet.
func CurrentStreak(history History, today domain.Date) int {
	cursor := today
	if !history.Has(today) {
		cursor = today.AddDays(-1)
	}

	streak := 0
	for i := len(history.sorted) - 1; i >= 0; i-- {
		d := history.sorted[i]
		if d.After(cursor) {
			continue
		}
		if !d.Equal(cursor) {
			break
		}
		streak++
		cursor = cursor.AddDays(-1)
	}

	return streak
}

// LongestStreak is the longest run of consecutive completed days anywhere in
// the history.
func LongestStreak(history History) int {
	if history.Len() == 0 {
		return 0
	}

	longest, run := 1, 1
	for i := 1; i < len(history.sorted); i++ {
		if history.sorted[i].DaysSince(history.sorted[i-1]) == 1 {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 1
		}
	}

	return longest
}
