package domain

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrHabitNameEmpty     = errors.New("habit name cannot be empty")
	ErrHabitNameTooLong   = errors.New("habit name is too long (max 100 chars)")
	ErrHabitDescTooLong   = errors.New("habit description is too long (max 500 chars)")
	ErrHabitInvalidUserID = errors.New("invalid user id")
	ErrInvalidTarget      = errors.New("target cannot be negative")
)

const (
	MaxNameLen = 100
	MaxDescLen = 500
)

type Completion struct {
	Date      Date      `json:"date" db:"completion_date"`
	Timestamp time.Time `json:"timestamp" db:"recorded_at"`
	Value     int       `json:"value" db:"value"`
}

type Habit struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
	Difficulty  string `json:"difficulty"`
	TargetValue int    `json:"target_value"`

	RecurrenceRule

	Completions []Completion `json:"completions"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// HabitParams carries the user-editable fields of a habit.
type HabitParams struct {
	Name        string
	Description string
	Category    string
	Difficulty  string
	TargetValue int
	Frequency   Frequency
	Weekdays    []int
	MonthDays   []int
	Interval    int
}

type normalizedParams struct {
	name, desc, category, difficulty string
	target                           int
	rule                             RecurrenceRule
}

func validateAndNormalize(p HabitParams) (normalizedParams, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return normalizedParams{}, ErrHabitNameEmpty
	}
	if len(name) > MaxNameLen {
		return normalizedParams{}, ErrHabitNameTooLong
	}

	desc := strings.TrimSpace(p.Description)
	if len(desc) > MaxDescLen {
		return normalizedParams{}, ErrHabitDescTooLong
	}

	if p.TargetValue < 0 {
		return normalizedParams{}, ErrInvalidTarget
	}
	target := p.TargetValue
	if target == 0 {
		target = 1
	}

	rule, err := NewRecurrenceRule(p.Frequency, p.Weekdays, p.MonthDays, p.Interval)
	if err != nil {
		return normalizedParams{}, err
	}

	return normalizedParams{
		name:       name,
		desc:       desc,
		category:   LookupCategory(p.Category).ID,
		difficulty: LookupDifficulty(p.Difficulty).ID,
		target:     target,
		rule:       rule,
	}, nil
}

func NewHabit(userID string, p HabitParams, now time.Time) (*Habit, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrHabitInvalidUserID
	}

	n, err := validateAndNormalize(p)
	if err != nil {
		return nil, err
	}

	now = now.UTC()

	return &Habit{
		ID:             uuid.New().String(),
		UserID:         userID,
		Name:           n.name,
		Description:    n.desc,
		Category:       n.category,
		Difficulty:     n.difficulty,
		TargetValue:    n.target,
		RecurrenceRule: n.rule,
		Completions:    []Completion{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

func (h *Habit) Update(p HabitParams, now time.Time) error {
	n, err := validateAndNormalize(p)
	if err != nil {
		return err
	}

	h.Name = n.name
	h.Description = n.desc
	h.Category = n.category
	h.Difficulty = n.difficulty
	h.TargetValue = n.target
	h.RecurrenceRule = n.rule
	h.UpdatedAt = now.UTC()

	return nil
}

// Reanchor moves the creation instant. Custom rules evaluated point-in-time
// count their interval from this day.
func (h *Habit) Reanchor(createdAt, now time.Time) {
	h.CreatedAt = createdAt.UTC()
	h.UpdatedAt = now.UTC()
}

func (h *Habit) HasCompletion(date Date) bool {
	_, ok := h.completionIndex(date)
	return ok
}

func (h *Habit) completionIndex(date Date) (int, bool) {
	for i, c := range h.Completions {
		if c.Date.Equal(date) {
			return i, true
		}
	}
	return -1, false
}

// ToggleCompletion removes the completion for date if present, otherwise
// records one. It reports whether the day is completed afterwards.
func (h *Habit) ToggleCompletion(date Date, at time.Time, value *int) (Completion, bool) {
	if i, ok := h.completionIndex(date); ok {
		removed := h.Completions[i]
		h.Completions = append(h.Completions[:i:i], h.Completions[i+1:]...)
		h.UpdatedAt = at.UTC()
		return removed, false
	}

	v := h.TargetValue
	if value != nil {
		v = *value
	}
	if v < 1 {
		v = 1
	}

	c := Completion{Date: date, Timestamp: at.UTC(), Value: v}
	h.Completions = append(h.Completions, c)
	sort.Slice(h.Completions, func(i, j int) bool {
		return h.Completions[i].Date.Before(h.Completions[j].Date)
	})
	h.UpdatedAt = at.UTC()
	return c, true
}

// Clone returns a deep copy so callers can hand out snapshots.
func (h *Habit) Clone() *Habit {
	c := *h
	c.Weekdays = append([]int(nil), h.Weekdays...)
	c.MonthDays = append([]int(nil), h.MonthDays...)
	c.Completions = append([]Completion{}, h.Completions...)
	return &c
}

func (h *Habit) CreatedOn(loc *time.Location) Date {
	return DateIn(h.CreatedAt, loc)
}
