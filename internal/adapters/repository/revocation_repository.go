package repository

import (
	"context"
	"errors"
	"time"

	"github.com/comitanigiacomo/habitquest/internal/core/domain"
)

// KVRevocationRepository tracks logged-out token ids under "revoked_<jti>".
// The stored value is the token expiry so stale entries can be told apart.
type KVRevocationRepository struct {
	store domain.KVStore
}

func NewKVRevocationRepository(store domain.KVStore) *KVRevocationRepository {
	return &KVRevocationRepository{store: store}
}

func (r *KVRevocationRepository) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	return r.store.Set(ctx, domain.UserKey(domain.CategoryRevoked, jti), expiresAt.UTC().Format(time.RFC3339))
}

func (r *KVRevocationRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	_, err := r.store.Get(ctx, domain.UserKey(domain.CategoryRevoked, jti))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, domain.ErrKeyNotFound) {
		return false, nil
	}
	return false, err
}
