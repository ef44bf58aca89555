package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

var (
	_ domain.HabitRepository = (*InMemoryHabitRepository)(nil)
	_ domain.UserRepository  = (*InMemoryUserRepository)(nil)
)

// InMemoryHabitRepository hands out clones so callers never share state with
// the store.
type InMemoryHabitRepository struct {
	store map[string]*domain.Habit

	mu sync.RWMutex
}

func NewInMemoryHabitRepository() *InMemoryHabitRepository {
	return &InMemoryHabitRepository{
		store: make(map[string]*domain.Habit),
	}
}

func (r *InMemoryHabitRepository) Create(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[habit.ID] = habit.Clone()
	return nil
}

func (r *InMemoryHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habit, ok := r.store[id]
	if !ok {
		return nil, domain.ErrHabitNotFound
	}
	return habit.Clone(), nil
}

func (r *InMemoryHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habits := []*domain.Habit{}
	for _, h := range r.store {
		if h.UserID == userID {
			habits = append(habits, h.Clone())
		}
	}

	sort.Slice(habits, func(i, j int) bool {
		if habits[i].CreatedAt.Equal(habits[j].CreatedAt) {
			return habits[i].ID < habits[j].ID
		}
		return habits[i].CreatedAt.Before(habits[j].CreatedAt)
	})

	return habits, nil
}

// Update replaces the definition but keeps the stored completions, which are
// only changed through AddCompletion and RemoveCompletion.
func (r *InMemoryHabitRepository) Update(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.store[habit.ID]
	if !ok {
		return domain.ErrHabitNotFound
	}

	next := habit.Clone()
	next.Completions = existing.Completions
	r.store[habit.ID] = next
	return nil
}

func (r *InMemoryHabitRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return domain.ErrHabitNotFound
	}

	delete(r.store, id)
	return nil
}

func (r *InMemoryHabitRepository) AddCompletion(ctx context.Context, habitID string, c domain.Completion) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.store[habitID]
	if !ok {
		return domain.ErrHabitNotFound
	}
	if h.HasCompletion(c.Date) {
		return domain.ErrCompletionExists
	}

	h.Completions = append(h.Completions, c)
	sort.Slice(h.Completions, func(i, j int) bool {
		return h.Completions[i].Date.Before(h.Completions[j].Date)
	})
	h.UpdatedAt = c.Timestamp
	return nil
}

func (r *InMemoryHabitRepository) RemoveCompletion(ctx context.Context, habitID string, date domain.Date) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.store[habitID]
	if !ok {
		return domain.ErrHabitNotFound
	}

	for i, c := range h.Completions {
		if c.Date.Equal(date) {
			h.Completions = append(h.Completions[:i:i], h.Completions[i+1:]...)
			return nil
		}
	}
	return domain.ErrCompletionNotFound
}

type InMemoryUserRepository struct {
	byID map[string]*domain.User

	mu sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{byID: make(map[string]*domain.User)}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.byID {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}

	clone := *user
	r.byID[user.ID] = &clone
	return nil
}

func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.byID {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}
