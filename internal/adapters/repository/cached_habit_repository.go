package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

var _ domain.HabitRepository = (*CachedHabitRepository)(nil)

const DefaultCacheTTL = 30 * time.Minute

// CachedHabitRepository caches each user's habit list, completions included,
// since every stats request reads the whole list. Any write that touches a
// habit drops its owner's entry.
type CachedHabitRepository struct {
	next  domain.HabitRepository
	cache *redis.Client
	ttl   time.Duration
	log   *logrus.Logger
}

func NewCachedHabitRepository(next domain.HabitRepository, cache *redis.Client, ttl time.Duration, log *logrus.Logger) *CachedHabitRepository {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &CachedHabitRepository{
		next:  next,
		cache: cache,
		ttl:   ttl,
		log:   log,
	}
}

func cacheKey(userID string) string {
	return fmt.Sprintf("habits:%s", userID)
}

func (r *CachedHabitRepository) invalidate(ctx context.Context, userID string) {
	if err := r.cache.Del(ctx, cacheKey(userID)).Err(); err != nil {
		r.log.WithError(err).WithField("user_id", userID).Warn("cache invalidation failed")
	}
}

// invalidateOwner looks the habit up first because completion writes only
// carry the habit ID.
func (r *CachedHabitRepository) invalidateOwner(ctx context.Context, habitID string) {
	habit, err := r.next.GetByID(ctx, habitID)
	if err != nil {
		return
	}
	r.invalidate(ctx, habit.UserID)
}

func (r *CachedHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	key := cacheKey(userID)
	entry := r.log.WithField("user_id", userID)

	val, err := r.cache.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var habits []*domain.Habit
		if err := json.Unmarshal(val, &habits); err == nil {
			return habits, nil
		}
		entry.Warn("corrupted cache entry, dropping key")
		r.cache.Del(ctx, key)
	case !errors.Is(err, redis.Nil):
		entry.WithError(err).Warn("cache read failed")
	}

	habits, err := r.next.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(habits); err == nil {
		if setErr := r.cache.Set(ctx, key, data, r.ttl).Err(); setErr != nil {
			entry.WithError(setErr).Warn("cache write failed")
		}
	}

	return habits, nil
}

func (r *CachedHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	return r.next.GetByID(ctx, id)
}

func (r *CachedHabitRepository) Create(ctx context.Context, habit *domain.Habit) error {
	if err := r.next.Create(ctx, habit); err != nil {
		return err
	}
	r.invalidate(ctx, habit.UserID)
	return nil
}

func (r *CachedHabitRepository) Update(ctx context.Context, habit *domain.Habit) error {
	if err := r.next.Update(ctx, habit); err != nil {
		return err
	}
	r.invalidate(ctx, habit.UserID)
	return nil
}

func (r *CachedHabitRepository) Delete(ctx context.Context, id string) error {
	habit, err := r.next.GetByID(ctx, id)
	if err == nil {
		defer r.invalidate(ctx, habit.UserID)
	}

	return r.next.Delete(ctx, id)
}

func (r *CachedHabitRepository) AddCompletion(ctx context.Context, habitID string, c domain.Completion) error {
	if err := r.next.AddCompletion(ctx, habitID, c); err != nil {
		return err
	}
	r.invalidateOwner(ctx, habitID)
	return nil
}

func (r *CachedHabitRepository) RemoveCompletion(ctx context.Context, habitID string, date domain.Date) error {
	if err := r.next.RemoveCompletion(ctx, habitID, date); err != nil {
		return err
	}
	r.invalidateOwner(ctx, habitID)
	return nil
}
