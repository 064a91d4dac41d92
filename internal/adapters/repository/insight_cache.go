package repository

import (
	"context"

	"github.com/comitanigiacomo/habitquest/internal/core/domain"
)

var _ domain.InsightCache = (*KVInsightCache)(nil)

// KVInsightCache stores generated payloads under "<category>_<userId>_<date>".
// Entries are never evicted; a new day simply uses a new key.
type KVInsightCache struct {
	store domain.KVStore
}

func NewKVInsightCache(store domain.KVStore) *KVInsightCache {
	return &KVInsightCache{store: store}
}

func (c *KVInsightCache) Get(ctx context.Context, category, userID, date string) (string, error) {
	return c.store.Get(ctx, domain.DayKey(category, userID, date))
}

func (c *KVInsightCache) Put(ctx context.Context, category, userID, date, payload string) error {
	return c.store.Set(ctx, domain.DayKey(category, userID, date), payload)
}
