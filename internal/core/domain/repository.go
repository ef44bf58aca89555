package domain

import (
	"context"
	"errors"
)

var (
	ErrHabitNotFound      = errors.New("habit not found")
	ErrCompletionNotFound = errors.New("completion not found")
	ErrCompletionExists   = errors.New("completion already recorded for this date")
)

type HabitRepository interface {
	// Create persists a new habit definition in the storage.
	Create(ctx context.Context, habit *Habit) error

	// GetByID retrieves a habit, completions included.
	GetByID(ctx context.Context, id string) (*Habit, error)

	// ListByUserID retrieves all habits of a user, completions included.
	ListByUserID(ctx context.Context, userID string) ([]*Habit, error)

	// Update overwrites the habit definition (last write wins).
	Update(ctx context.Context, habit *Habit) error

	// Delete permanently removes a habit and its completions.
	Delete(ctx context.Context, id string) error

	// AddCompletion records a completion. At most one per habit and date.
	AddCompletion(ctx context.Context, habitID string, c Completion) error

	// RemoveCompletion deletes the completion of habitID on date.
	RemoveCompletion(ctx context.Context, habitID string, date Date) error
}
