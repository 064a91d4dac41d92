package repository

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/habitquest/internal/core/domain"
)

var _ domain.UserRepository = (*KVUserRepository)(nil)

// KVUserRepository keeps one record per user under "users_<id>" plus two lookup
// keys, "useremail_<email>" and "username_<handle>", that hold the user id.
type KVUserRepository struct {
	store  domain.KVStore
	logger *zap.Logger

	mu sync.Mutex
}

func NewKVUserRepository(store domain.KVStore, logger *zap.Logger) *KVUserRepository {
	return &KVUserRepository{
		store:  store,
		logger: logger.With(zap.String("component", "user_repository")),
	}
}

func (r *KVUserRepository) exists(ctx context.Context, key string) (bool, error) {
	_, err := r.store.Get(ctx, key)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, domain.ErrKeyNotFound) {
		return false, nil
	}
	return false, err
}

func (r *KVUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	emailKey := domain.UserKey(domain.CategoryUserEmail, strings.ToLower(user.Email))
	nameKey := domain.UserKey(domain.CategoryUsername, strings.ToLower(user.Username))

	taken, err := r.exists(ctx, emailKey)
	if err != nil {
		return err
	}
	if taken {
		return domain.ErrEmailAlreadyExists
	}

	taken, err = r.exists(ctx, nameKey)
	if err != nil {
		return err
	}
	if taken {
		return domain.ErrUsernameTaken
	}

	if err := saveJSON(ctx, r.store, domain.UserKey(domain.CategoryUsers, user.ID), user); err != nil {
		return err
	}
	if err := r.store.Set(ctx, emailKey, user.ID); err != nil {
		return err
	}
	return r.store.Set(ctx, nameKey, user.ID)
}

func (r *KVUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := loadJSON[*domain.User](ctx, r.store, r.logger, domain.UserKey(domain.CategoryUsers, id))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *KVUserRepository) GetByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	identifier = strings.ToLower(strings.TrimSpace(identifier))
	if identifier == "" {
		return nil, domain.ErrUserNotFound
	}

	category := domain.CategoryUsername
	if strings.Contains(identifier, "@") {
		category = domain.CategoryUserEmail
	}

	id, err := r.store.Get(ctx, domain.UserKey(category, identifier))
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	return r.GetByID(ctx, id)
}
