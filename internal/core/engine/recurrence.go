package engine

import (
	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

// CustomPolicy selects how a custom-interval rule is evaluated.
type CustomPolicy int

const (
	// PointInTime: due when the days since creation are a multiple of the interval.
	PointInTime CustomPolicy = iota
	// CompletionGated: due when no completion exists up to the day, or the last
	// one is at least one interval old. An early completion satisfies the next
	// window. Completions after the day are ignored.
	CompletionGated
)

func (p CustomPolicy) String() string {
	switch p {
	case PointInTime:
		return "point_in_time"
	case CompletionGated:
		return "completion_gated"
	default:
		return "unknown"
	}
}

// IsDueOn reports whether a habit with rule, created on createdAt, is due on
// the given day. history is only consulted by CompletionGated custom rules.
func IsDueOn(rule domain.RecurrenceRule, on, createdAt domain.Date, history History, policy CustomPolicy) bool {
	switch rule.Frequency {
	case domain.FrequencyDaily:
		return true

	case domain.FrequencyWeekly:
		// An empty day set is never due.
		return rule.HasWeekday(int(on.Weekday()))

	case domain.FrequencyMonthly:
		return rule.HasMonthDay(on.Day())

	case domain.FrequencyCustom:
		interval := rule.SafeInterval()
		if policy == CompletionGated {
			latest, ok := history.LatestOnOrBefore(on)
			if !ok {
				return true
			}
			return on.DaysSince(latest) >= interval
		}
		return on.DaysSince(createdAt)%interval == 0

	default:
		return true
	}
}

// DueOn is the point-in-time check used for "due today" and historical rollups.
func DueOn(rule domain.RecurrenceRule, on, createdAt domain.Date) bool {
	return IsDueOn(rule, on, createdAt, History{}, PointInTime)
}

// NeedsAction reports whether the habit still needs doing on the given day:
// it is due under the completion-gated policy and not yet completed that day.
func NeedsAction(rule domain.RecurrenceRule, on, createdAt domain.Date, history History) bool {
	if history.Has(on) {
		return false
	}
	return IsDueOn(rule, on, createdAt, history, CompletionGated)
}
