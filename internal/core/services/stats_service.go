package services

import (
	"context"
	"time"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/core/engine"
)

type StatsService struct {
	habitRepo domain.HabitRepository
	opts      engine.Options
	clock     func() time.Time
}

func NewStatsService(habitRepo domain.HabitRepository, opts engine.Options) *StatsService {
	return &StatsService{
		habitRepo: habitRepo,
		opts:      opts,
		clock:     time.Now,
	}
}

func (s *StatsService) WithClock(clock func() time.Time) *StatsService {
	s.clock = clock
	return s
}

// Today returns the current day in the reference timezone.
func (s *StatsService) Today() domain.Date {
	return domain.DateIn(s.clock(), s.opts.Location)
}

func (s *StatsService) resolve(on domain.Date) domain.Date {
	if on.IsZero() {
		return s.Today()
	}
	return on
}

// HabitStats computes the statistics of one habit. windowDays <= 0 uses the
// configured default window.
func (s *StatsService) HabitStats(ctx context.Context, userID, habitID string, on domain.Date, windowDays int) (*domain.HabitStatistics, error) {
	habit, err := s.habitRepo.GetByID(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, domain.ErrHabitNotFound
	}

	opts := s.opts
	if windowDays > 0 {
		opts.WindowDays = windowDays
	}

	stats := engine.Analyze(habit, s.resolve(on), opts)
	return &stats, nil
}

func (s *StatsService) Summary(ctx context.Context, userID string, on domain.Date) (*domain.DailySummary, error) {
	habits, err := s.habitRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := engine.Summarize(habits, s.resolve(on), s.opts)
	return &summary, nil
}

func (s *StatsService) Trend(ctx context.Context, userID string, end domain.Date, days int) ([]domain.DayRollup, error) {
	habits, err := s.habitRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if days <= 0 {
		days = s.opts.TrendDays
	}

	return engine.Trend(habits, s.resolve(end), days, s.opts), nil
}

func (s *StatsService) Dashboard(ctx context.Context, userID string, on domain.Date) (*domain.Dashboard, error) {
	habits, err := s.habitRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	dash := engine.Dashboard(habits, s.resolve(on), s.opts)
	return &dash, nil
}

// Preview classifies today's habits for the email collaborator. Nothing is sent.
func (s *StatsService) Preview(ctx context.Context, userID string, on domain.Date) (*domain.NotificationPreview, error) {
	habits, err := s.habitRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	preview := engine.Preview(habits, s.resolve(on), s.opts)
	return &preview, nil
}
