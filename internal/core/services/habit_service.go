package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/habitquest/internal/core/domain"
)

// InsightWarmer is the background hook fired when a user's habit list changes.
type InsightWarmer interface {
	Enqueue(userID string)
}

type HabitService struct {
	repo     domain.HabitRepository
	logs     domain.HabitLogRepository
	progress *ProgressService
	warmer   InsightWarmer
	logger   *zap.Logger
}

func NewHabitService(repo domain.HabitRepository, logs domain.HabitLogRepository, progress *ProgressService, warmer InsightWarmer, logger *zap.Logger) *HabitService {
	return &HabitService{
		repo:     repo,
		logs:     logs,
		progress: progress,
		warmer:   warmer,
		logger:   logger.With(zap.String("component", "habits")),
	}
}

type CreateHabitInput struct {
	UserID        string
	Name          string
	Color         string
	Icon          string
	PreferredTime string
	Description   string
}

type CreateHabitResult struct {
	Habit         *domain.Habit        `json:"habit"`
	NewlyUnlocked []domain.Achievement `json:"newly_unlocked"`
}

func (s *HabitService) Create(ctx context.Context, input CreateHabitInput) (*CreateHabitResult, error) {
	habit, err := domain.NewHabit(input.UserID, input.Name, input.Color, input.Icon, input.PreferredTime, input.Description)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, habit); err != nil {
		return nil, fmt.Errorf("habit service: create: %w", err)
	}

	unlocked, err := s.progress.Reevaluate(ctx, input.UserID)
	if err != nil {
		s.logger.Error("achievement evaluation failed", zap.String("user_id", input.UserID), zap.Error(err))
	}
	if unlocked == nil {
		unlocked = []domain.Achievement{}
	}

	if s.warmer != nil {
		s.warmer.Enqueue(input.UserID)
	}

	return &CreateHabitResult{Habit: habit, NewlyUnlocked: unlocked}, nil
}

func (s *HabitService) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	return s.repo.ListByUserID(ctx, userID)
}

// Delete removes the habit and cascades to its logs. It holds the user's
// progress lock so no toggle can land between the two steps.
func (s *HabitService) Delete(ctx context.Context, userID, id string) error {
	unlock := s.progress.locks.lock(userID)
	defer unlock()

	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return err
	}

	if err := s.logs.DeleteByHabitID(ctx, userID, id); err != nil {
		return fmt.Errorf("habit service: delete logs: %w", err)
	}

	if _, _, err := s.progress.evaluate(ctx, userID); err != nil {
		s.logger.Error("achievement evaluation failed", zap.String("user_id", userID), zap.Error(err))
	}

	return nil
}
