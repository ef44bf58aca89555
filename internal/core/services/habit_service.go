package services

import (
	"context"
	"fmt"
	"time"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

// StreakEnqueuer receives habit ids whose completion set just changed.
type StreakEnqueuer interface {
	Enqueue(habitID string)
}

type HabitService struct {
	repo   domain.HabitRepository
	worker StreakEnqueuer
	loc    *time.Location
	clock  func() time.Time
}

func NewHabitService(repo domain.HabitRepository, worker StreakEnqueuer, loc *time.Location) *HabitService {
	if loc == nil {
		loc = time.UTC
	}
	return &HabitService{
		repo:   repo,
		worker: worker,
		loc:    loc,
		clock:  time.Now,
	}
}

// WithClock replaces the wall clock, mainly for tests.
func (s *HabitService) WithClock(clock func() time.Time) *HabitService {
	s.clock = clock
	return s
}

type CreateHabitInput struct {
	UserID      string
	Name        string
	Description string
	Category    string
	Difficulty  string
	TargetValue int
	Frequency   domain.Frequency
	Weekdays    []int
	MonthDays   []int
	Interval    int
}

type UpdateHabitInput struct {
	ID          string
	UserID      string
	Name        string
	Description string
	Category    string
	Difficulty  string
	TargetValue int
	Frequency   domain.Frequency
	Weekdays    []int
	MonthDays   []int
	Interval    int
	CreatedAt   *time.Time
}

type ToggleCompletionInput struct {
	HabitID string
	UserID  string
	// Date is a YYYY-MM-DD day; empty means today in the reference timezone.
	Date  string
	Value *int
}

type ToggleResult struct {
	Habit      *domain.Habit     `json:"habit"`
	Completion domain.Completion `json:"completion"`
	Completed  bool              `json:"completed"`
}

func mergeString(newVal, oldVal string) string {
	if newVal == "" {
		return oldVal
	}
	return newVal
}

func (s *HabitService) Create(ctx context.Context, input CreateHabitInput) (*domain.Habit, error) {
	habit, err := domain.NewHabit(input.UserID, domain.HabitParams{
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Difficulty:  input.Difficulty,
		TargetValue: input.TargetValue,
		Frequency:   input.Frequency,
		Weekdays:    input.Weekdays,
		MonthDays:   input.MonthDays,
		Interval:    input.Interval,
	}, s.clock())
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, habit); err != nil {
		return nil, fmt.Errorf("habit service: create: %w", err)
	}

	return habit, nil
}

func (s *HabitService) Get(ctx context.Context, id, userID string) (*domain.Habit, error) {
	habit, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, domain.ErrHabitNotFound
	}
	return habit, nil
}

func (s *HabitService) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	return s.repo.ListByUserID(ctx, userID)
}

func (s *HabitService) Update(ctx context.Context, input UpdateHabitInput) (*domain.Habit, error) {
	habit, err := s.Get(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	freq := input.Frequency
	weekdays, monthDays, interval := input.Weekdays, input.MonthDays, input.Interval
	if freq == "" {
		freq = habit.Frequency
		if weekdays == nil {
			weekdays = habit.Weekdays
		}
		if monthDays == nil {
			monthDays = habit.MonthDays
		}
		if interval == 0 {
			interval = habit.Interval
		}
	}

	target := habit.TargetValue
	if input.TargetValue > 0 {
		target = input.TargetValue
	}

	now := s.clock()
	err = habit.Update(domain.HabitParams{
		Name:        mergeString(input.Name, habit.Name),
		Description: mergeString(input.Description, habit.Description),
		Category:    mergeString(input.Category, habit.Category),
		Difficulty:  mergeString(input.Difficulty, habit.Difficulty),
		TargetValue: target,
		Frequency:   freq,
		Weekdays:    weekdays,
		MonthDays:   monthDays,
		Interval:    interval,
	}, now)
	if err != nil {
		return nil, err
	}

	if input.CreatedAt != nil {
		habit.Reanchor(*input.CreatedAt, now)
	}

	if err := s.repo.Update(ctx, habit); err != nil {
		return nil, err
	}

	return habit, nil
}

func (s *HabitService) Delete(ctx context.Context, id string, userID string) error {
	if _, err := s.Get(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ToggleCompletion flips the completion of one day: it is removed when present
// and recorded otherwise.
func (s *HabitService) ToggleCompletion(ctx context.Context, input ToggleCompletionInput) (*ToggleResult, error) {
	now := s.clock()

	day := domain.DateIn(now, s.loc)
	if input.Date != "" {
		parsed, err := domain.ParseDate(input.Date)
		if err != nil {
			return nil, err
		}
		day = parsed
	}

	habit, err := s.Get(ctx, input.HabitID, input.UserID)
	if err != nil {
		return nil, err
	}

	completion, completed := habit.ToggleCompletion(day, now, input.Value)

	if completed {
		err = s.repo.AddCompletion(ctx, habit.ID, completion)
	} else {
		err = s.repo.RemoveCompletion(ctx, habit.ID, day)
	}
	if err != nil {
		return nil, fmt.Errorf("habit service: toggle %s on %s: %w", habit.ID, day, err)
	}

	if s.worker != nil {
		s.worker.Enqueue(habit.ID)
	}

	return &ToggleResult{Habit: habit, Completion: completion, Completed: completed}, nil
}
