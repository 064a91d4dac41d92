package repository

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/habitquest/internal/core/domain"
)

var _ domain.HabitRepository = (*KVHabitRepository)(nil)

// KVHabitRepository stores each user's habits as one JSON array under
// "habits_<userId>".
type KVHabitRepository struct {
	store  domain.KVStore
	logger *zap.Logger

	mu sync.Mutex
}

func NewKVHabitRepository(store domain.KVStore, logger *zap.Logger) *KVHabitRepository {
	return &KVHabitRepository{
		store:  store,
		logger: logger.With(zap.String("component", "habit_repository")),
	}
}

func (r *KVHabitRepository) load(ctx context.Context, userID string) ([]*domain.Habit, error) {
	return loadJSON[[]*domain.Habit](ctx, r.store, r.logger, domain.UserKey(domain.CategoryHabits, userID))
}

func (r *KVHabitRepository) save(ctx context.Context, userID string, habits []*domain.Habit) error {
	return saveJSON(ctx, r.store, domain.UserKey(domain.CategoryHabits, userID), habits)
}

func (r *KVHabitRepository) Create(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	habits, err := r.load(ctx, habit.UserID)
	if err != nil {
		return err
	}

	for _, h := range habits {
		if h.ID == habit.ID {
			return domain.ErrHabitExists
		}
	}

	clone := *habit
	return r.save(ctx, habit.UserID, append(habits, &clone))
}

func (r *KVHabitRepository) GetByID(ctx context.Context, userID, id string) (*domain.Habit, error) {
	habits, err := r.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, h := range habits {
		if h.ID == id {
			return h, nil
		}
	}
	return nil, domain.ErrHabitNotFound
}

func (r *KVHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	habits, err := r.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if habits == nil {
		habits = []*domain.Habit{}
	}
	return habits, nil
}

func (r *KVHabitRepository) Delete(ctx context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	habits, err := r.load(ctx, userID)
	if err != nil {
		return err
	}

	kept := make([]*domain.Habit, 0, len(habits))
	found := false
	for _, h := range habits {
		if h.ID == id {
			found = true
			continue
		}
		kept = append(kept, h)
	}

	if !found {
		return domain.ErrHabitNotFound
	}

	return r.save(ctx, userID, kept)
}
