package repository

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/habitquest/internal/core/domain"
)

var _ domain.HabitLogRepository = (*KVHabitLogRepository)(nil)

// KVHabitLogRepository stores each user's logs as one JSON array under
// "logs_<userId>". Toggle is the only write path, which keeps (habit, date)
// unique.
type KVHabitLogRepository struct {
	store  domain.KVStore
	logger *zap.Logger

	mu sync.Mutex
}

func NewKVHabitLogRepository(store domain.KVStore, logger *zap.Logger) *KVHabitLogRepository {
	return &KVHabitLogRepository{
		store:  store,
		logger: logger.With(zap.String("component", "log_repository")),
	}
}

func (r *KVHabitLogRepository) key(userID string) string {
	return domain.UserKey(domain.CategoryLogs, userID)
}

func (r *KVHabitLogRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.HabitLog, error) {
	logs, err := loadJSON[[]*domain.HabitLog](ctx, r.store, r.logger, r.key(userID))
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []*domain.HabitLog{}
	}
	return logs, nil
}

func (r *KVHabitLogRepository) Toggle(ctx context.Context, userID, habitID, date string, now time.Time) (*domain.HabitLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	logs, err := r.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var target *domain.HabitLog
	for _, l := range logs {
		if l.HabitID == habitID && l.Date == date {
			target = l
			break
		}
	}

	if target != nil {
		target.Toggle(now)
	} else {
		target = domain.NewHabitLog(habitID, date, now)
		logs = append(logs, target)
	}

	if err := saveJSON(ctx, r.store, r.key(userID), logs); err != nil {
		return nil, err
	}

	clone := *target
	return &clone, nil
}

func (r *KVHabitLogRepository) DeleteByHabitID(ctx context.Context, userID, habitID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	logs, err := r.ListByUserID(ctx, userID)
	if err != nil {
		return err
	}

	kept := make([]*domain.HabitLog, 0, len(logs))
	for _, l := range logs {
		if l.HabitID != habitID {
			kept = append(kept, l)
		}
	}

	if len(kept) == len(logs) {
		return nil
	}

	return saveJSON(ctx, r.store, r.key(userID), kept)
}
