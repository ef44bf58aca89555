package engine

import (
	"math"
	"time"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

const DefaultTrendDays = 7

type Options struct {
	// Location is the reference timezone used to turn instants into days.
	Location   *time.Location
	Milestones []int
	WindowDays int
	TrendDays  int
}

func DefaultOptions() Options {
	return Options{
		Location:   time.UTC,
		Milestones: domain.DefaultMilestones,
		WindowDays: DefaultWindowDays,
		TrendDays:  DefaultTrendDays,
	}
}

func (o Options) location() *time.Location {
	if o.Location == nil {
		return time.UTC
	}
	return o.Location
}

// Analyze derives every per-habit statistic for the given day.
func Analyze(h *domain.Habit, today domain.Date, opts Options) domain.HabitStatistics {
	history := NewHistory(h.Completions)
	createdOn := h.CreatedOn(opts.location())
	current := CurrentStreak(history, today)

	stats := domain.HabitStatistics{
		HabitID:          h.ID,
		Date:             today,
		CurrentStreak:    current,
		LongestStreak:    LongestStreak(history),
		CompletionRate:   CompletionRate(h.RecurrenceRule, createdOn, history, opts.WindowDays, today),
		WindowDays:       opts.WindowDays,
		IsDueToday:       DueOn(h.RecurrenceRule, today, createdOn),
		IsCompletedToday: history.Has(today),
		NeedsAction:      NeedsAction(h.RecurrenceRule, today, createdOn, history),
	}

	if next, ok := NextMilestone(current, opts.Milestones); ok {
		stats.NextMilestone = &next
	}

	return stats
}

// Summarize aggregates today's totals across habits.
func Summarize(habits []*domain.Habit, today domain.Date, opts Options) domain.DailySummary {
	summary := domain.DailySummary{Date: today, TotalHabits: len(habits)}

	totalStreak := 0
	for _, h := range habits {
		history := NewHistory(h.Completions)
		createdOn := h.CreatedOn(opts.location())

		if DueOn(h.RecurrenceRule, today, createdOn) {
			summary.DueToday++
			if history.Has(today) {
				summary.CompletedToday++
			}
		}

		streak := CurrentStreak(history, today)
		totalStreak += streak
		if streak > summary.MaxStreak {
			summary.MaxStreak = streak
		}
	}

	summary.CompletionPercentage = percent(summary.CompletedToday, summary.DueToday)
	if len(habits) > 0 {
		summary.AverageStreak = int(math.Round(float64(totalStreak) / float64(len(habits))))
	}

	return summary
}

// Trend returns one rollup per day for the trailing window ending today, oldest
// first. Each day's due set is evaluated as of that day.
func Trend(habits []*domain.Habit, today domain.Date, days int, opts Options) []domain.DayRollup {
	if days < 1 {
		days = 1
	}

	histories := make([]History, len(habits))
	anchors := make([]domain.Date, len(habits))
	for i, h := range habits {
		histories[i] = NewHistory(h.Completions)
		anchors[i] = h.CreatedOn(opts.location())
	}

	rollups := make([]domain.DayRollup, 0, days)
	for day := today.AddDays(-(days - 1)); !day.After(today); day = day.AddDays(1) {
		r := domain.DayRollup{Date: day}
		for i, h := range habits {
			if !DueOn(h.RecurrenceRule, day, anchors[i]) {
				continue
			}
			r.TotalDue++
			if histories[i].Has(day) {
				r.Completed++
			}
		}
		r.Rate = percent(r.Completed, r.TotalDue)
		rollups = append(rollups, r)
	}

	return rollups
}

// ShouldNotify reports whether a daily email would carry anything.
func ShouldNotify(summary domain.DailySummary) bool {
	return summary.DueToday > 0 || summary.CompletedToday > 0
}

// Preview classifies every habit for the notification collaborator.
func Preview(habits []*domain.Habit, today domain.Date, opts Options) domain.NotificationPreview {
	summary := Summarize(habits, today, opts)

	items := make([]domain.NotificationItem, 0, len(habits))
	for _, h := range habits {
		s := Analyze(h, today, opts)
		items = append(items, domain.NotificationItem{
			HabitID:       h.ID,
			Name:          h.Name,
			IsDue:         s.IsDueToday,
			IsCompleted:   s.IsCompletedToday,
			NeedsAction:   s.NeedsAction,
			CurrentStreak: s.CurrentStreak,
		})
	}

	return domain.NotificationPreview{
		Date:       today,
		ShouldSend: ShouldNotify(summary),
		Summary:    summary,
		Habits:     items,
	}
}

// Dashboard bundles today's summary, the trailing trend and per-habit stats.
func Dashboard(habits []*domain.Habit, today domain.Date, opts Options) domain.Dashboard {
	stats := make([]domain.HabitStatistics, 0, len(habits))
	for _, h := range habits {
		stats = append(stats, Analyze(h, today, opts))
	}

	trendDays := opts.TrendDays
	if trendDays < 1 {
		trendDays = DefaultTrendDays
	}

	return domain.Dashboard{
		Summary: Summarize(habits, today, opts),
		Trend:   Trend(habits, today, trendDays, opts),
		Habits:  stats,
	}
}
