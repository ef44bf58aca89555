package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

func d(s string) domain.Date { return domain.MustParseDate(s) }

func historyOf(days ...string) History {
	completions := make([]domain.Completion, 0, len(days))
	for _, s := range days {
		completions = append(completions, domain.Completion{Date: d(s), Value: 1})
	}
	return NewHistory(completions)
}

func TestIsDueOn_Daily(t *testing.T) {
	rule := domain.DailyRule()
	created := d("2024-01-01")

	for day := d("2023-12-01"); !day.After(d("2024-03-01")); day = day.AddDays(1) {
		assert.True(t, DueOn(rule, day, created), day.String())
		assert.True(t, IsDueOn(rule, day, created, History{}, CompletionGated), day.String())
	}
}

func TestIsDueOn_Weekly(t *testing.T) {
	rule := domain.RecurrenceRule{Frequency: domain.FrequencyWeekly, Weekdays: []int{1, 3, 5}}
	created := d("2024-01-01")

	tests := []struct {
		day  string
		want bool
	}{
		{"2024-01-01", true},  // Monday
		{"2024-01-02", false}, // Tuesday
		{"2024-01-03", true},  // Wednesday
		{"2024-01-05", true},  // Friday
		{"2024-01-06", false}, // Saturday
		{"2024-01-07", false}, // Sunday
	}

	for _, tt := range tests {
		t.Run(tt.day, func(t *testing.T) {
			assert.Equal(t, tt.want, DueOn(rule, d(tt.day), created))
		})
	}

	t.Run("Empty day set is never due", func(t *testing.T) {
		empty := domain.RecurrenceRule{Frequency: domain.FrequencyWeekly}
		for day := d("2024-01-01"); day.Before(d("2024-01-08")); day = day.AddDays(1) {
			assert.False(t, DueOn(empty, day, created))
		}
	})
}

func TestIsDueOn_Monthly(t *testing.T) {
	rule := domain.RecurrenceRule{Frequency: domain.FrequencyMonthly, MonthDays: []int{1, 15, 31}}
	created := d("2024-01-01")

	assert.True(t, DueOn(rule, d("2024-01-31"), created))
	assert.True(t, DueOn(rule, d("2024-02-15"), created))
	assert.False(t, DueOn(rule, d("2024-02-16"), created))

	t.Run("No rollover into the next month", func(t *testing.T) {
		assert.False(t, DueOn(rule, d("2024-02-29"), created))
		assert.True(t, DueOn(rule, d("2024-03-01"), created), "only because the 1st is in the set")

		only31 := domain.RecurrenceRule{Frequency: domain.FrequencyMonthly, MonthDays: []int{31}}
		for day := d("2024-04-01"); day.Before(d("2024-05-01")); day = day.AddDays(1) {
			assert.False(t, DueOn(only31, day, created), day.String())
		}
	})
}

func TestIsDueOn_CustomPointInTime(t *testing.T) {
	rule := domain.RecurrenceRule{Frequency: domain.FrequencyCustom, Interval: 7}
	created := d("2024-01-01")

	assert.True(t, DueOn(rule, d("2024-01-01"), created))
	assert.True(t, DueOn(rule, d("2024-01-08"), created))
	assert.False(t, DueOn(rule, d("2024-01-09"), created))
	assert.True(t, DueOn(rule, d("2024-01-15"), created))

	t.Run("Completions do not shift the point-in-time schedule", func(t *testing.T) {
		h := historyOf("2024-01-05")
		assert.False(t, IsDueOn(rule, d("2024-01-12"), created, h, PointInTime))
		assert.True(t, IsDueOn(rule, d("2024-01-15"), created, h, PointInTime))
	})

	t.Run("Far future dates keep exact day counts", func(t *testing.T) {
		start := d("2400-01-01")
		due := 0
		for day := start; day.Before(start.AddDays(14)); day = day.AddDays(1) {
			if DueOn(rule, day, created) {
				due++
			}
		}
		assert.Equal(t, 2, due)
	})

	t.Run("Unclamped stored interval is treated as 1", func(t *testing.T) {
		broken := domain.RecurrenceRule{Frequency: domain.FrequencyCustom, Interval: 0}
		assert.True(t, DueOn(broken, d("2024-01-09"), created))
	})
}

func TestIsDueOn_CustomCompletionGated(t *testing.T) {
	rule := domain.RecurrenceRule{Frequency: domain.FrequencyCustom, Interval: 3}
	created := d("2024-01-01")

	t.Run("Never completed is always due", func(t *testing.T) {
		assert.True(t, IsDueOn(rule, d("2024-01-02"), created, History{}, CompletionGated))
	})

	t.Run("Due once the interval has elapsed since the last completion", func(t *testing.T) {
		h := historyOf("2024-01-01", "2024-01-05")
		assert.False(t, IsDueOn(rule, d("2024-01-06"), created, h, CompletionGated))
		assert.False(t, IsDueOn(rule, d("2024-01-07"), created, h, CompletionGated))
		assert.True(t, IsDueOn(rule, d("2024-01-08"), created, h, CompletionGated))
		assert.True(t, IsDueOn(rule, d("2024-01-20"), created, h, CompletionGated))
	})

	t.Run("Policies disagree after an early completion", func(t *testing.T) {
		h := historyOf("2024-01-03")
		day := d("2024-01-04")

		assert.True(t, IsDueOn(rule, day, created, h, PointInTime))
		assert.False(t, IsDueOn(rule, day, created, h, CompletionGated))
	})

	t.Run("Completions after the day do not change the answer", func(t *testing.T) {
		day := d("2024-01-05")
		before := historyOf("2024-01-01")
		after := historyOf("2024-01-01", "2024-01-10")

		assert.True(t, IsDueOn(rule, day, created, before, CompletionGated))
		assert.True(t, IsDueOn(rule, day, created, after, CompletionGated))
		assert.True(t, NeedsAction(rule, day, created, after))
		assert.True(t, IsDueOn(rule, d("2024-01-02"), created, historyOf("2024-01-10"), CompletionGated))
	})
}

func TestHistory_LatestOnOrBefore(t *testing.T) {
	h := historyOf("2024-01-10", "2024-01-01", "2024-01-05")

	got, ok := h.LatestOnOrBefore(d("2024-01-07"))
	assert.True(t, ok)
	assert.Equal(t, "2024-01-05", got.String())

	got, ok = h.LatestOnOrBefore(d("2024-01-05"))
	assert.True(t, ok)
	assert.Equal(t, "2024-01-05", got.String())

	got, ok = h.LatestOnOrBefore(d("2024-02-01"))
	assert.True(t, ok)
	assert.Equal(t, "2024-01-10", got.String())

	_, ok = h.LatestOnOrBefore(d("2023-12-31"))
	assert.False(t, ok)

	_, ok = History{}.LatestOnOrBefore(d("2024-01-01"))
	assert.False(t, ok)
}

func TestIsDueOn_UnknownFrequencyFailsOpen(t *testing.T) {
	rule := domain.RecurrenceRule{Frequency: "lunar"}
	assert.True(t, DueOn(rule, d("2024-01-09"), d("2024-01-01")))
	assert.True(t, DueOn(domain.RecurrenceRule{}, d("2024-01-09"), d("2024-01-01")))
}

func TestNeedsAction(t *testing.T) {
	rule := domain.RecurrenceRule{Frequency: domain.FrequencyCustom, Interval: 2}
	created := d("2024-01-01")

	assert.True(t, NeedsAction(rule, d("2024-01-04"), created, historyOf("2024-01-01")))
	assert.False(t, NeedsAction(rule, d("2024-01-04"), created, historyOf("2024-01-04")))
	assert.False(t, NeedsAction(domain.DailyRule(), d("2024-01-04"), created, historyOf("2024-01-04")))
	assert.True(t, NeedsAction(domain.DailyRule(), d("2024-01-04"), created, historyOf("2024-01-03")))
}

func TestCustomPolicy_String(t *testing.T) {
	assert.Equal(t, "point_in_time", PointInTime.String())
	assert.Equal(t, "completion_gated", CompletionGated.String())
	assert.Equal(t, "unknown", CustomPolicy(9).String())
}
