package workers

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/core/engine"
)

const defaultQueueSize = 100

type HabitRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Habit, error)
}

// MilestoneRecorder is told when a habit's current streak lands on a milestone.
type MilestoneRecorder interface {
	MilestoneReached(milestone int)
}

type StreakJob struct {
	HabitID string
}

// StreakWorker recomputes streaks after completion toggles and reports habits
// that just reached a milestone.
type StreakWorker struct {
	habitRepo HabitRepository
	recorder  MilestoneRecorder
	opts      engine.Options
	log       *logrus.Logger
	clock     func() time.Time
	jobs      chan StreakJob
	done      chan struct{}
}

func NewStreakWorker(hRepo HabitRepository, recorder MilestoneRecorder, opts engine.Options, log *logrus.Logger) *StreakWorker {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &StreakWorker{
		habitRepo: hRepo,
		recorder:  recorder,
		opts:      opts,
		log:       log,
		clock:     time.Now,
		jobs:      make(chan StreakJob, defaultQueueSize),
		done:      make(chan struct{}),
	}
}

func (w *StreakWorker) WithClock(clock func() time.Time) *StreakWorker {
	w.clock = clock
	return w
}

// Start consumes jobs until ctx is cancelled. Done is closed on exit.
func (w *StreakWorker) Start(ctx context.Context) {
	go func() {
		defer close(w.done)
		w.log.Info("streak worker started")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				w.log.Info("streak worker shutting down")
				return
			}
		}
	}()
}

func (w *StreakWorker) Done() <-chan struct{} {
	return w.done
}

// Enqueue never blocks; jobs are dropped when the queue is full.
func (w *StreakWorker) Enqueue(habitID string) {
	select {
	case w.jobs <- StreakJob{HabitID: habitID}:
	default:
		w.log.WithField("habit_id", habitID).Warn("streak worker queue full, dropping job")
	}
}

func (w *StreakWorker) processJob(ctx context.Context, job StreakJob) {
	entry := w.log.WithField("habit_id", job.HabitID)

	habit, err := w.habitRepo.GetByID(ctx, job.HabitID)
	if err != nil {
		entry.WithError(err).Error("streak worker: fetching habit failed")
		return
	}

	today := domain.DateIn(w.clock(), w.opts.Location)
	history := engine.NewHistory(habit.Completions)
	current := engine.CurrentStreak(history, today)

	entry.WithFields(logrus.Fields{
		"current_streak": current,
		"longest_streak": engine.LongestStreak(history),
	}).Debug("streak recomputed")

	if history.Has(today) && engine.IsMilestone(current, w.opts.Milestones) {
		entry.WithFields(logrus.Fields{
			"user_id":   habit.UserID,
			"milestone": current,
		}).Info("habit reached a streak milestone")

		if w.recorder != nil {
			w.recorder.MilestoneReached(current)
		}
	}
}
