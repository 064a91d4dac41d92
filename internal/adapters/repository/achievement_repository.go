package repository

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/habitquest/internal/core/domain"
)

var _ domain.AchievementRepository = (*KVAchievementRepository)(nil)

type unlockRecord struct {
	ID         string    `json:"id"`
	UnlockedAt time.Time `json:"unlocked_at"`
}

// KVAchievementRepository persists unlock timestamps under "achievements_<userId>".
// The catalog itself is static and never stored.
type KVAchievementRepository struct {
	store  domain.KVStore
	logger *zap.Logger
	mu     sync.Mutex
}

func NewKVAchievementRepository(store domain.KVStore, logger *zap.Logger) *KVAchievementRepository {
	return &KVAchievementRepository{
		store:  store,
		logger: logger.With(zap.String("component", "achievement_repository")),
	}
}

func (r *KVAchievementRepository) GetUnlocks(ctx context.Context, userID string) (domain.Unlocks, error) {
	records, err := loadJSON[[]unlockRecord](ctx, r.store, r.logger, domain.UserKey(domain.CategoryAchievements, userID))
	if err != nil {
		return nil, err
	}

	unlocks := make(domain.Unlocks, len(records))
	for _, rec := range records {
		if rec.ID == "" {
			continue
		}
		unlocks[rec.ID] = rec.UnlockedAt
	}
	return unlocks, nil
}

func (r *KVAchievementRepository) AddUnlocks(ctx context.Context, userID string, newly domain.Unlocks) (domain.Unlocks, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	unlocks, err := r.GetUnlocks(ctx, userID)
	if err != nil {
		return nil, err
	}

	added := false
	for id, at := range newly {
		if _, ok := unlocks[id]; ok {
			continue
		}
		unlocks[id] = at
		added = true
	}
	if !added {
		return unlocks, nil
	}

	if err := r.save(ctx, userID, unlocks); err != nil {
		return nil, err
	}
	return unlocks, nil
}

func (r *KVAchievementRepository) save(ctx context.Context, userID string, unlocks domain.Unlocks) error {
	records := make([]unlockRecord, 0, len(unlocks))
	for id, at := range unlocks {
		records = append(records, unlockRecord{ID: id, UnlockedAt: at.UTC()})
	}
	sort.Slice(records, func(i, j int) bool {
		return lessID(records[i].ID, records[j].ID)
	})

	return saveJSON(ctx, r.store, domain.UserKey(domain.CategoryAchievements, userID), records)
}

// lessID orders numeric ids numerically and falls back to string order.
func lessID(a, b string) bool {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil {
		return ai < bi
	}
	return a < b
}
