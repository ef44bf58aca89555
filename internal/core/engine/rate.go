package engine

import (
	"math"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

const DefaultWindowDays = 30

// CompletionRate returns the percentage (0-100) of due days between
// today-windowDays and today, both inclusive, that were completed.
func CompletionRate(rule domain.RecurrenceRule, createdAt domain.Date, history History, windowDays int, today domain.Date) int {
	if windowDays < 0 {
		windowDays = 0
	}

	expected, completed := 0, 0
	for day := today.AddDays(-windowDays); !day.After(today); day = day.AddDays(1) {
		if !DueOn(rule, day, createdAt) {
			continue
		}
		expected++
		if history.Has(day) {
			completed++
		}
	}

	return percent(completed, expected)
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
