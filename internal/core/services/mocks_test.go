package services

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/comitanigiacomo/habitquest/internal/core/domain"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, req domain.GenerateRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

type fakeRevocations struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func newFakeRevocations() *fakeRevocations {
	return &fakeRevocations{revoked: make(map[string]time.Time)}
}

func (f *fakeRevocations) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revoked[jti] = expiresAt
	return nil
}

func (f *fakeRevocations) IsRevoked(ctx context.Context, jti string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.revoked[jti]
	return ok, nil
}

type fakeHabitRepo struct {
	mu     sync.Mutex
	habits map[string][]*domain.Habit
}

func newFakeHabitRepo() *fakeHabitRepo {
	return &fakeHabitRepo{habits: make(map[string][]*domain.Habit)}
}

func (f *fakeHabitRepo) Create(ctx context.Context, habit *domain.Habit) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.habits[habit.UserID] = append(f.habits[habit.UserID], habit)
	return nil
}

func (f *fakeHabitRepo) GetByID(ctx context.Context, userID, id string) (*domain.Habit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, h := range f.habits[userID] {
		if h.ID == id {
			return h, nil
		}
	}
	return nil, domain.ErrHabitNotFound
}

func (f *fakeHabitRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*domain.Habit{}, f.habits[userID]...), nil
}

func (f *fakeHabitRepo) Delete(ctx context.Context, userID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := f.habits[userID]
	for i, h := range list {
		if h.ID == id {
			f.habits[userID] = append(list[:i:i], list[i+1:]...)
			return nil
		}
	}
	return domain.ErrHabitNotFound
}

type fakeLogRepo struct {
	mu   sync.Mutex
	logs map[string][]*domain.HabitLog
}

func newFakeLogRepo() *fakeLogRepo {
	return &fakeLogRepo{logs: make(map[string][]*domain.HabitLog)}
}

func (f *fakeLogRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.HabitLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*domain.HabitLog{}, f.logs[userID]...), nil
}

func (f *fakeLogRepo) Toggle(ctx context.Context, userID, habitID, date string, now time.Time) (*domain.HabitLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.logs[userID] {
		if l.HabitID == habitID && l.Date == date {
			l.Toggle(now)
			clone := *l
			return &clone, nil
		}
	}
	l := domain.NewHabitLog(habitID, date, now)
	f.logs[userID] = append(f.logs[userID], l)
	clone := *l
	return &clone, nil
}

func (f *fakeLogRepo) DeleteByHabitID(ctx context.Context, userID, habitID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	var kept []*domain.HabitLog
	for _, l := range f.logs[userID] {
		if l.HabitID != habitID {
			kept = append(kept, l)
		}
	}
	f.logs[userID] = kept
	return nil
}

// seed marks the given dates completed without going through Toggle.
func (f *fakeLogRepo) seed(userID, habitID string, dates ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range dates {
		f.logs[userID] = append(f.logs[userID], &domain.HabitLog{ID: d, HabitID: habitID, Date: d, Completed: true})
	}
}

type fakeAchievementRepo struct {
	mu      sync.Mutex
	unlocks map[string]domain.Unlocks
	saves   int
}

func newFakeAchievementRepo() *fakeAchievementRepo {
	return &fakeAchievementRepo{unlocks: make(map[string]domain.Unlocks)}
}

func (f *fakeAchievementRepo) GetUnlocks(ctx context.Context, userID string) (domain.Unlocks, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := domain.Unlocks{}
	for k, v := range f.unlocks[userID] {
		out[k] = v
	}
	return out, nil
}

func (f *fakeAchievementRepo) AddUnlocks(ctx context.Context, userID string, newly domain.Unlocks) (domain.Unlocks, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored := f.unlocks[userID]
	if stored == nil {
		stored = domain.Unlocks{}
		f.unlocks[userID] = stored
	}
	out := domain.Unlocks{}
	for k, v := range stored {
		out[k] = v
	}

	added := false
	for k, v := range newly {
		if _, ok := stored[k]; !ok {
			stored[k] = v
			out[k] = v
			added = true
		}
	}
	if added {
		f.saves++
	}
	return out, nil
}

func (f *fakeAchievementRepo) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves
}

type fakeInsightCache struct {
	mu      sync.Mutex
	entries map[string]string
}

func newFakeInsightCache() *fakeInsightCache {
	return &fakeInsightCache{entries: make(map[string]string)}
}

func (f *fakeInsightCache) Get(ctx context.Context, category, userID, date string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.entries[domain.DayKey(category, userID, date)]
	if !ok {
		return "", domain.ErrKeyNotFound
	}
	return v, nil
}

func (f *fakeInsightCache) Put(ctx context.Context, category, userID, date, payload string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[domain.DayKey(category, userID, date)] = payload
	return nil
}

func (f *fakeInsightCache) has(category, userID, date string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.entries[domain.DayKey(category, userID, date)]
	return ok
}
