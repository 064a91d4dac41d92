package services

import (
	"context"
	"fmt"

	"github.com/comitanigiacomo/habitquest/internal/core/domain"
	"github.com/comitanigiacomo/habitquest/internal/core/progress"
)

// StatsService renders the read-side aggregates. Every window has a fixed number
// of slots regardless of how much data exists.
type StatsService struct {
	habitRepo domain.HabitRepository
	logRepo   domain.HabitLogRepository
	clock     Clock
}

func NewStatsService(habitRepo domain.HabitRepository, logRepo domain.HabitLogRepository, clock Clock) *StatsService {
	return &StatsService{
		habitRepo: habitRepo,
		logRepo:   logRepo,
		clock:     clock,
	}
}

func (s *StatsService) load(ctx context.Context, userID string) ([]*domain.Habit, []*domain.HabitLog, error) {
	habits, err := s.habitRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("stats service: list habits: %w", err)
	}
	logs, err := s.logRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("stats service: list logs: %w", err)
	}
	return habits, logs, nil
}

func (s *StatsService) Chart(ctx context.Context, userID, granularity, date string) ([]domain.Bucket, error) {
	g := domain.Granularity(granularity)
	if g == "" {
		g = domain.GranularityDaily
	}
	if g != domain.GranularityDaily && g != domain.GranularityMonthly {
		return nil, domain.ErrInvalidGranularity
	}

	ref, err := s.clock.day(date)
	if err != nil {
		return nil, err
	}

	_, logs, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	return progress.Chart(logs, g, ref)
}

func (s *StatsService) Calendar(ctx context.Context, userID, date string) (*domain.CalendarMonth, error) {
	ref, err := s.clock.day(date)
	if err != nil {
		return nil, err
	}

	habits, logs, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	grid := progress.MonthGrid(habits, logs, ref, s.clock.today())
	return &grid, nil
}

func (s *StatsService) History(ctx context.Context, userID, date string) ([]domain.HabitHistory, error) {
	ref, err := s.clock.day(date)
	if err != nil {
		return nil, err
	}

	habits, logs, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	return progress.History(habits, logs, ref), nil
}

func (s *StatsService) Rates(ctx context.Context, userID string) ([]domain.HabitRate, error) {
	habits, logs, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return progress.Rates(habits, logs), nil
}
