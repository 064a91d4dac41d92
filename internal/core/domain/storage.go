package domain

import (
	"context"
	"errors"
	"fmt"
)

var ErrKeyNotFound = errors.New("key not found")

// KVStore is the text key/value persistence surface. Values are opaque strings;
// absence is reported as ErrKeyNotFound, never as an empty value.
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

const (
	CategoryHabits       = "habits"
	CategoryLogs         = "logs"
	CategoryAchievements = "achievements"
	CategoryCoach        = "coach"
	CategoryInsight      = "insight"
	CategoryUsers        = "users"
	CategoryUserEmail    = "useremail"
	CategoryUsername     = "username"
	CategoryRevoked      = "revoked"
)

// UserKey builds "<category>_<userId>".
func UserKey(category, userID string) string {
	return fmt.Sprintf("%s_%s", category, userID)
}

// DayKey builds "<category>_<userId>_<date>" for day-scoped caches.
func DayKey(category, userID, date string) string {
	return fmt.Sprintf("%s_%s_%s", category, userID, date)
}
