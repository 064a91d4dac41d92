package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/habitquest/internal/core/domain"
)

var _ domain.KVStore = (*CachedStore)(nil)

const cachePrefix = "kvcache:"

// tombstone marks a removed key so a fill racing the removal cannot bring the
// old value back. Reads that hit it go to the backing store.
const tombstone = "\x00removed"

// CachedStore is a Redis read-through cache in front of a slower store. Writes go
// to the backing store first and then overwrite the cached copy. Fills after a
// miss use SETNX so they never replace a value written since the miss.
type CachedStore struct {
	next   domain.KVStore
	cache  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedStore(next domain.KVStore, cache *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &CachedStore{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger.With(zap.String("component", "cache")),
	}
}

func (s *CachedStore) cacheKey(key string) string {
	return cachePrefix + key
}

// overwrite replaces the cached copy. If Redis refuses the write the key is
// dropped instead, and if that fails too the entry expires with its TTL.
func (s *CachedStore) overwrite(ctx context.Context, key, value string) {
	err := s.cache.Set(ctx, s.cacheKey(key), value, s.ttl).Err()
	if err == nil {
		return
	}
	s.logger.Warn("redis set error", zap.String("key", key), zap.Error(err))

	if err := s.cache.Del(ctx, s.cacheKey(key)).Err(); err != nil {
		s.logger.Warn("failed to invalidate", zap.String("key", key), zap.Error(err))
	}
}

func (s *CachedStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.cache.Get(ctx, s.cacheKey(key)).Result()
	if err == nil && val != tombstone {
		return val, nil
	}
	if err != nil && !errors.Is(err, redis.Nil) {
		s.logger.Warn("redis read error", zap.String("key", key), zap.Error(err))
	}

	val, err = s.next.Get(ctx, key)
	if err != nil {
		return "", err
	}

	s.fill(ctx, key, val)
	return val, nil
}

// fill caches a value read from the backing store unless a writer got there
// first.
func (s *CachedStore) fill(ctx context.Context, key, val string) {
	if err := s.cache.SetNX(ctx, s.cacheKey(key), val, s.ttl).Err(); err != nil {
		s.logger.Warn("redis set error", zap.String("key", key), zap.Error(err))
	}
}

func (s *CachedStore) Set(ctx context.Context, key, value string) error {
	if err := s.next.Set(ctx, key, value); err != nil {
		return err
	}
	s.overwrite(ctx, key, value)
	return nil
}

func (s *CachedStore) Remove(ctx context.Context, key string) error {
	if err := s.next.Remove(ctx, key); err != nil {
		return err
	}
	s.overwrite(ctx, key, tombstone)
	return nil
}
