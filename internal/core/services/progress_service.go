package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/habitquest/internal/core/domain"
	"github.com/comitanigiacomo/habitquest/internal/core/progress"
)

// ProgressService owns the completion toggle and everything derived from it:
// streaks, XP, level and achievement unlocks. Mutations of one user's logs and
// unlocks run under that user's lock.
type ProgressService struct {
	habits       domain.HabitRepository
	logs         domain.HabitLogRepository
	achievements domain.AchievementRepository
	clock        Clock
	locks        *userLocks
	logger       *zap.Logger
}

func NewProgressService(habits domain.HabitRepository, logs domain.HabitLogRepository, achievements domain.AchievementRepository, clock Clock, logger *zap.Logger) *ProgressService {
	return &ProgressService{
		habits:       habits,
		logs:         logs,
		achievements: achievements,
		clock:        clock,
		locks:        newUserLocks(),
		logger:       logger.With(zap.String("component", "progress")),
	}
}

func (s *ProgressService) snapshot(ctx context.Context, userID string) ([]*domain.Habit, []*domain.HabitLog, error) {
	habits, err := s.habits.ListByUserID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("progress service: list habits: %w", err)
	}
	logs, err := s.logs.ListByUserID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("progress service: list logs: %w", err)
	}
	return habits, logs, nil
}

func buildProgress(habits []*domain.Habit, unlocks domain.Unlocks, m domain.Metrics, streaks map[string]int) domain.Progress {
	lvl := progress.NewLevel(m.TotalCompletions)
	return domain.Progress{
		TotalCompletions: m.TotalCompletions,
		TotalXP:          lvl.TotalXP,
		Level:            lvl.Level,
		LevelProgress:    lvl.Progress,
		HabitCount:       len(habits),
		MaxStreak:        m.MaxStreak,
		Streaks:          streaks,
		UnlockedCount:    progress.UnlockedCount(domain.AchievementCatalog, unlocks),
	}
}

// evaluate re-runs the achievement rules against the current snapshot and
// persists unlocks only when something new was earned. Callers hold the user's
// lock.
func (s *ProgressService) evaluate(ctx context.Context, userID string) (domain.Progress, []domain.Achievement, error) {
	habits, logs, err := s.snapshot(ctx, userID)
	if err != nil {
		return domain.Progress{}, nil, err
	}

	unlocks, err := s.achievements.GetUnlocks(ctx, userID)
	if err != nil {
		return domain.Progress{}, nil, fmt.Errorf("progress service: load unlocks: %w", err)
	}

	now := s.clock.now()
	today := progress.Day(now)
	m := progress.MetricsFor(habits, logs, today)

	updated, newly := progress.Evaluate(domain.AchievementCatalog, unlocks, m, now)

	var unlocked []domain.Achievement
	if len(newly) > 0 {
		earned := make(domain.Unlocks, len(newly))
		for _, rule := range newly {
			earned[rule.ID] = updated[rule.ID]
		}
		updated, err = s.achievements.AddUnlocks(ctx, userID, earned)
		if err != nil {
			return domain.Progress{}, nil, fmt.Errorf("progress service: save unlocks: %w", err)
		}
		for _, rule := range newly {
			at := updated[rule.ID]
			unlocked = append(unlocked, domain.Achievement{AchievementRule: rule, UnlockedAt: &at})
			s.logger.Info("achievement unlocked",
				zap.String("user_id", userID),
				zap.String("achievement", rule.Title),
			)
		}
	}

	return buildProgress(habits, updated, m, progress.Streaks(habits, logs, today)), unlocked, nil
}

// Reevaluate is called after anything that changes the metrics outside of a
// toggle, such as adding or deleting a habit.
func (s *ProgressService) Reevaluate(ctx context.Context, userID string) ([]domain.Achievement, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	_, unlocked, err := s.evaluate(ctx, userID)
	return unlocked, err
}

// Toggle flips the completion of a habit on a date. An empty date means today.
func (s *ProgressService) Toggle(ctx context.Context, userID, habitID, date string) (*domain.ToggleResult, error) {
	if habitID == "" {
		return nil, domain.ErrInvalidLog
	}

	day, err := s.clock.day(date)
	if err != nil {
		return nil, err
	}
	if day.After(s.clock.today()) {
		return nil, domain.ErrFutureDate
	}
	date = domain.FormatDate(day)

	unlock := s.locks.lock(userID)
	defer unlock()

	if _, err := s.habits.GetByID(ctx, userID, habitID); err != nil {
		return nil, err
	}

	habitLog, err := s.logs.Toggle(ctx, userID, habitID, date, s.clock.now())
	if err != nil {
		return nil, fmt.Errorf("progress service: toggle: %w", err)
	}

	p, unlocked, err := s.evaluate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if unlocked == nil {
		unlocked = []domain.Achievement{}
	}

	return &domain.ToggleResult{Log: habitLog, Progress: p, NewlyUnlocked: unlocked}, nil
}

func (s *ProgressService) Progress(ctx context.Context, userID string) (*domain.Progress, error) {
	habits, logs, err := s.snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	unlocks, err := s.achievements.GetUnlocks(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("progress service: load unlocks: %w", err)
	}

	today := s.clock.today()
	m := progress.MetricsFor(habits, logs, today)
	p := buildProgress(habits, unlocks, m, progress.Streaks(habits, logs, today))
	return &p, nil
}

// Achievements lists the whole catalog with the user's unlock state.
func (s *ProgressService) Achievements(ctx context.Context, userID string) ([]domain.Achievement, int, error) {
	unlocks, err := s.achievements.GetUnlocks(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("progress service: load unlocks: %w", err)
	}
	return progress.Join(domain.AchievementCatalog, unlocks), progress.UnlockedCount(domain.AchievementCatalog, unlocks), nil
}

func (s *ProgressService) Logs(ctx context.Context, userID string) ([]*domain.HabitLog, error) {
	logs, err := s.logs.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("progress service: list logs: %w", err)
	}
	return logs, nil
}
