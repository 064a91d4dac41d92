package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/habitquest/internal/core/domain"
)

// loadJSON decodes the value at key. An absent key yields the zero value. A value
// that does not parse is logged, removed and treated as absent.
func loadJSON[T any](ctx context.Context, store domain.KVStore, logger *zap.Logger, key string) (T, error) {
	var zero T

	raw, err := store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return zero, nil
		}
		return zero, err
	}

	var out T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		logger.Warn("corrupted value, resetting to empty", zap.String("key", key), zap.Error(err))
		if rmErr := store.Remove(ctx, key); rmErr != nil {
			logger.Warn("failed to clean up corrupted key", zap.String("key", key), zap.Error(rmErr))
		}
		return zero, nil
	}

	return out, nil
}

func saveJSON(ctx context.Context, store domain.KVStore, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("repository: marshal %q: %w", key, err)
	}
	return store.Set(ctx, key, string(data))
}
