package domain

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrInvalidRule = errors.New("invalid recurrence rule")
)

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyCustom  Frequency = "custom"
)

// RecurrenceRule decides which calendar days a habit is due. Frequency selects
// the variant; only the fields of that variant are meaningful.
type RecurrenceRule struct {
	Frequency Frequency `json:"frequency"`
	Weekdays  []int     `json:"weekdays,omitempty"`
	MonthDays []int     `json:"month_days,omitempty"`
	Interval  int       `json:"interval,omitempty"`
}

func DailyRule() RecurrenceRule {
	return RecurrenceRule{Frequency: FrequencyDaily}
}

// NewRecurrenceRule validates and normalizes a rule. A custom interval below 1
// is clamped to 1 rather than rejected.
func NewRecurrenceRule(freq Frequency, weekdays, monthDays []int, interval int) (RecurrenceRule, error) {
	switch freq {
	case "", FrequencyDaily:
		return DailyRule(), nil

	case FrequencyWeekly:
		days, err := normalizeDays(weekdays, 0, 6)
		if err != nil {
			return RecurrenceRule{}, fmt.Errorf("%w: weekdays must be 0-6", ErrInvalidRule)
		}
		if len(days) == 0 {
			return RecurrenceRule{}, fmt.Errorf("%w: weekly rule needs at least one weekday", ErrInvalidRule)
		}
		return RecurrenceRule{Frequency: FrequencyWeekly, Weekdays: days}, nil

	case FrequencyMonthly:
		days, err := normalizeDays(monthDays, 1, 31)
		if err != nil {
			return RecurrenceRule{}, fmt.Errorf("%w: month days must be 1-31", ErrInvalidRule)
		}
		if len(days) == 0 {
			return RecurrenceRule{}, fmt.Errorf("%w: monthly rule needs at least one day", ErrInvalidRule)
		}
		return RecurrenceRule{Frequency: FrequencyMonthly, MonthDays: days}, nil

	case FrequencyCustom:
		if interval < 1 {
			interval = 1
		}
		return RecurrenceRule{Frequency: FrequencyCustom, Interval: interval}, nil

	default:
		return RecurrenceRule{}, fmt.Errorf("%w: unknown frequency %q", ErrInvalidRule, freq)
	}
}

func normalizeDays(days []int, lo, hi int) ([]int, error) {
	if len(days) == 0 {
		return nil, nil
	}

	seen := make(map[int]bool)
	var unique []int
	for _, d := range days {
		if d < lo || d > hi {
			return nil, ErrInvalidRule
		}
		if !seen[d] {
			seen[d] = true
			unique = append(unique, d)
		}
	}

	sort.Ints(unique)
	return unique, nil
}

func (r RecurrenceRule) HasWeekday(wd int) bool {
	for _, d := range r.Weekdays {
		if d == wd {
			return true
		}
	}
	return false
}

func (r RecurrenceRule) HasMonthDay(day int) bool {
	for _, d := range r.MonthDays {
		if d == day {
			return true
		}
	}
	return false
}

// SafeInterval never returns less than 1, even for rules loaded from storage
// that bypassed NewRecurrenceRule.
func (r RecurrenceRule) SafeInterval() int {
	if r.Interval < 1 {
		return 1
	}
	return r.Interval
}
