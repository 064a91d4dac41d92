package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/comitanigiacomo/habitquest/internal/core/domain"
	"github.com/comitanigiacomo/habitquest/internal/core/progress"
)

const (
	MinAnalysisLogs       = 5
	WeeklyWindow          = 7
	defaultInsightTimeout = 30 * time.Second
)

var errGeneratorDisabled = errors.New("generator not configured")

// InsightService fronts the text generator. Each call makes one attempt; any
// failure is logged and replaced with the call site's static fallback.
type InsightService struct {
	habits  domain.HabitRepository
	logs    domain.HabitLogRepository
	cache   domain.InsightCache
	gen     domain.Generator
	clock   Clock
	timeout time.Duration
	logger  *zap.Logger

	group singleflight.Group
}

func NewInsightService(habits domain.HabitRepository, logs domain.HabitLogRepository, cache domain.InsightCache, gen domain.Generator, clock Clock, timeout time.Duration, logger *zap.Logger) *InsightService {
	if timeout <= 0 {
		timeout = defaultInsightTimeout
	}
	return &InsightService{
		habits:  habits,
		logs:    logs,
		cache:   cache,
		gen:     gen,
		clock:   clock,
		timeout: timeout,
		logger:  logger.With(zap.String("component", "insight")),
	}
}

// generate runs one generator call shared by every concurrent caller with the
// same key. The call itself is detached from the caller so one caller leaving
// does not fail the others; a caller whose context ends gets ctx.Err() and the
// reply is discarded on its side.
func (s *InsightService) generate(ctx context.Context, key string, req domain.GenerateRequest) (string, error) {
	if s.gen == nil {
		return "", errGeneratorDisabled
	}

	ch := s.group.DoChan(key, func() (interface{}, error) {
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()
		return s.gen.Generate(callCtx, req)
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func decode[T any](raw string, valid func(T) bool) (T, error) {
	var out T
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return out, domain.ErrEmptyGeneration
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return out, fmt.Errorf("malformed reply: %w", err)
	}
	if !valid(out) {
		return out, errors.New("reply is missing required fields")
	}
	return out, nil
}

func (s *InsightService) warn(call, userID string, err error) {
	s.logger.Warn("generation failed, serving fallback",
		zap.String("call", call),
		zap.String("user_id", userID),
		zap.Error(err),
	)
}

// readCache returns the cached payload for today. Unreadable entries are treated
// as a miss.
func readCache[T any](ctx context.Context, s *InsightService, category, userID, date string) (T, bool) {
	var out T
	if s.cache == nil {
		return out, false
	}

	raw, err := s.cache.Get(ctx, category, userID, date)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			s.logger.Warn("insight cache read failed", zap.String("category", category), zap.Error(err))
		}
		return out, false
	}

	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		s.logger.Warn("corrupted insight cache entry", zap.String("category", category), zap.String("user_id", userID), zap.Error(err))
		return out, false
	}
	return out, true
}

func (s *InsightService) writeCache(ctx context.Context, category, userID, date string, v any) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Warn("insight cache encode failed", zap.String("category", category), zap.Error(err))
		return
	}
	if err := s.cache.Put(ctx, category, userID, date, string(data)); err != nil {
		s.logger.Warn("insight cache write failed", zap.String("category", category), zap.Error(err))
	}
}

func (s *InsightService) DailyInsight(ctx context.Context, userID string) (*domain.Insight[domain.DailyInsight], error) {
	return s.dailyInsight(ctx, userID, true)
}

// RefreshDailyInsight regenerates today's insight even when one is cached. The
// background worker calls it after the habit list changes.
func (s *InsightService) RefreshDailyInsight(ctx context.Context, userID string) (*domain.Insight[domain.DailyInsight], error) {
	return s.dailyInsight(ctx, userID, false)
}

func (s *InsightService) dailyInsight(ctx context.Context, userID string, useCache bool) (*domain.Insight[domain.DailyInsight], error) {
	habits, err := s.habits.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("insight service: list habits: %w", err)
	}

	if len(habits) == 0 {
		return &domain.Insight[domain.DailyInsight]{Data: NoHabitsInsight}, nil
	}

	date := domain.FormatDate(s.clock.today())

	if useCache {
		if cached, ok := readCache[domain.DailyInsight](ctx, s, domain.CategoryInsight, userID, date); ok {
			return &domain.Insight[domain.DailyInsight]{Data: cached, Cached: true}, nil
		}
	}

	raw, err := s.generate(ctx, domain.DayKey(domain.CategoryInsight, userID, date), domain.GenerateRequest{
		Prompt: dailyInsightPrompt(habits),
		Schema: dailyInsightSchema,
		JSON:   true,
	})
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	insight, err := decodeAfter(raw, err, validDailyInsight)
	if err != nil {
		s.warn("daily_insight", userID, err)
		return &domain.Insight[domain.DailyInsight]{Data: DailyInsightFallback, Fallback: true}, nil
	}

	s.writeCache(ctx, domain.CategoryInsight, userID, date, insight)
	return &domain.Insight[domain.DailyInsight]{Data: insight}, nil
}

func decodeAfter[T any](raw string, err error, valid func(T) bool) (T, error) {
	if err != nil {
		var zero T
		return zero, err
	}
	return decode(raw, valid)
}

// Motivation returns a short quote. It never fails except on cancellation.
func (s *InsightService) Motivation(ctx context.Context) (*domain.Insight[string], error) {
	temperature := float32(0.9)
	topP := float32(0.95)

	raw, err := s.generate(ctx, "motivation", domain.GenerateRequest{
		Prompt:          motivationPrompt,
		Temperature:     &temperature,
		TopP:            &topP,
		MaxOutputTokens: 100,
	})
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err != nil {
		s.warn("motivation", "", err)
		return &domain.Insight[string]{Data: MotivationFallback, Fallback: true}, nil
	}

	quote := stripQuotes(strings.TrimSpace(raw))
	if quote == "" {
		return &domain.Insight[string]{Data: MotivationEmpty}, nil
	}
	return &domain.Insight[string]{Data: quote}, nil
}

func stripQuotes(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}

type logDigest struct {
	H string `json:"h,omitempty"`
	D string `json:"d"`
	C bool   `json:"c"`
	T string `json:"t"`
}

func (s *InsightService) digest(habits []*domain.Habit, logs []*domain.HabitLog) string {
	names := make(map[string]string, len(habits))
	for _, h := range habits {
		names[h.ID] = h.Name
	}

	out := make([]logDigest, 0, len(logs))
	for _, l := range logs {
		t := "N/A"
		if l.CompletedAt != nil {
			t = l.CompletedAt.In(s.clock.location()).Format("15:04:05")
		}
		out = append(out, logDigest{H: names[l.HabitID], D: l.Date, C: l.Completed, T: t})
	}

	data, _ := json.Marshal(out)
	return string(data)
}

// DeepAnalysis needs at least MinAnalysisLogs logs to say anything useful.
func (s *InsightService) DeepAnalysis(ctx context.Context, userID string) (*domain.Insight[domain.DeepAnalysis], error) {
	habits, logs, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(logs) < MinAnalysisLogs {
		return nil, domain.ErrInsufficientData
	}

	raw, err := s.generate(ctx, "analysis_"+userID, domain.GenerateRequest{
		Prompt: deepAnalysisPrompt(s.digest(habits, logs)),
		Schema: deepAnalysisSchema,
		JSON:   true,
	})
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	analysis, err := decodeAfter(raw, err, validDeepAnalysis)
	if err != nil {
		s.warn("deep_analysis", userID, err)
		return &domain.Insight[domain.DeepAnalysis]{Data: DeepAnalysisFallback, Fallback: true}, nil
	}
	return &domain.Insight[domain.DeepAnalysis]{Data: analysis}, nil
}

func (s *InsightService) WeeklyReport(ctx context.Context, userID string) (*domain.Insight[domain.WeeklyReport], error) {
	habits, logs, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	window := make(map[string]bool, WeeklyWindow)
	for _, d := range progress.LastDays(s.clock.today(), WeeklyWindow) {
		window[d] = true
	}

	var weekly []*domain.HabitLog
	for _, l := range logs {
		if window[l.Date] {
			weekly = append(weekly, l)
		}
	}

	if len(weekly) == 0 {
		return nil, domain.ErrNoWeeklyData
	}

	data, err := json.Marshal(weekly)
	if err != nil {
		return nil, fmt.Errorf("insight service: encode weekly logs: %w", err)
	}

	raw, err := s.generate(ctx, "weekly_"+userID, domain.GenerateRequest{
		Prompt: weeklyReportPrompt(string(data), habits),
		Schema: weeklyReportSchema,
		JSON:   true,
	})
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	report, err := decodeAfter(raw, err, validWeeklyReport)
	if err != nil {
		s.warn("weekly_report", userID, err)
		return &domain.Insight[domain.WeeklyReport]{Data: weeklyFallback(weekly), Fallback: true}, nil
	}
	return &domain.Insight[domain.WeeklyReport]{Data: report}, nil
}

// weeklyFallback still reports the consistency figure, which needs no generator.
func weeklyFallback(weekly []*domain.HabitLog) domain.WeeklyReport {
	done := progress.CompletedCount(weekly)
	pct := 0.0
	if len(weekly) > 0 {
		pct = math.Round(float64(done) / float64(len(weekly)) * 100)
	}
	return domain.WeeklyReport{
		StrongestHabits:       []domain.HabitVerdict{},
		WeakestHabits:         []domain.HabitVerdict{},
		TrendChanges:          "Trend analysis is offline for this cycle.",
		ConsistencyPercentage: pct,
		MotivationAnalysis:    "Report generation is unavailable right now. Your completion data is intact.",
		Summary:               fmt.Sprintf("%d of %d logged protocols completed this week.", done, len(weekly)),
	}
}

// CoachCheckIn runs at most once per user per day: a cached interaction is
// returned as is. Fallback replies are not cached so the next attempt retries.
func (s *InsightService) CoachCheckIn(ctx context.Context, userID string, in domain.CoachInput) (*domain.Insight[domain.CoachInteraction], error) {
	date := domain.FormatDate(s.clock.today())

	if cached, ok := readCache[domain.CoachInteraction](ctx, s, domain.CategoryCoach, userID, date); ok {
		return &domain.Insight[domain.CoachInteraction]{Data: cached, Cached: true}, nil
	}

	habits, err := s.habits.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("insight service: list habits: %w", err)
	}

	byID := make(map[string]*domain.Habit, len(habits))
	for _, h := range habits {
		byID[h.ID] = h
	}

	completedIDs := make([]string, 0, len(in.CompletedHabitIDs))
	var completed []*domain.Habit
	for _, id := range in.CompletedHabitIDs {
		if h, ok := byID[id]; ok {
			completedIDs = append(completedIDs, id)
			completed = append(completed, h)
		}
	}

	interaction := domain.CoachInteraction{
		Date:              date,
		CompletedHabitIDs: completedIDs,
		Obstacles:         in.Obstacles,
		Mood:              in.Mood,
	}

	raw, err := s.generate(ctx, domain.DayKey(domain.CategoryCoach, userID, date), domain.GenerateRequest{
		Prompt: coachPrompt(completed, habits, in.Obstacles, in.Mood),
		Schema: coachSchema,
		JSON:   true,
	})
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	reply, err := decodeAfter(raw, err, validCoachReply)
	if err != nil {
		s.warn("coach", userID, err)
		interaction.CoachResponse = CoachFallback.Response
		interaction.Suggestion = CoachFallback.Suggestion
		return &domain.Insight[domain.CoachInteraction]{Data: interaction, Fallback: true}, nil
	}

	interaction.CoachResponse = reply.Response
	interaction.Suggestion = reply.Suggestion

	s.writeCache(ctx, domain.CategoryCoach, userID, date, interaction)
	return &domain.Insight[domain.CoachInteraction]{Data: interaction}, nil
}

func (s *InsightService) load(ctx context.Context, userID string) ([]*domain.Habit, []*domain.HabitLog, error) {
	habits, err := s.habits.ListByUserID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("insight service: list habits: %w", err)
	}
	logs, err := s.logs.ListByUserID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("insight service: list logs: %w", err)
	}
	return habits, logs, nil
}
