package domain

import (
	"context"
	"errors"

	"google.golang.org/genai"
)

var (
	ErrInsufficientData = errors.New("insufficient data nodes, synchronize more logs before running deep analysis")
	ErrNoWeeklyData     = errors.New("no data streams detected for the current weekly cycle")
	ErrEmptyGeneration  = errors.New("generator returned an empty reply")
)

type DailyInsight struct {
	Tip   string `json:"tip"`
	Quote string `json:"quote"`
	Focus string `json:"focus"`
}

type DeepAnalysis struct {
	Patterns       []string `json:"patterns"`
	StreakBreaks   string   `json:"streakBreaks"`
	ProductiveTime string   `json:"productiveTime"`
	RiskyDays      string   `json:"riskyDays"`
	LikelyReasons  []string `json:"likelyReasons"`
	Suggestions    []string `json:"suggestions"`
}

type HabitVerdict struct {
	Name string `json:"name"`
	Why  string `json:"why"`
}

type WeeklyReport struct {
	StrongestHabits       []HabitVerdict `json:"strongestHabits"`
	WeakestHabits         []HabitVerdict `json:"weakestHabits"`
	TrendChanges          string         `json:"trendChanges"`
	ConsistencyPercentage float64        `json:"consistencyPercentage"`
	MotivationAnalysis    string         `json:"motivationAnalysis"`
	Summary               string         `json:"summary"`
}

type CoachReply struct {
	Response   string `json:"response"`
	Suggestion string `json:"suggestion"`
}

type CoachInteraction struct {
	Date              string   `json:"date"`
	CompletedHabitIDs []string `json:"completedHabitIds"`
	Obstacles         string   `json:"obstacles"`
	Mood              string   `json:"mood"`
	CoachResponse     string   `json:"coachResponse"`
	Suggestion        string   `json:"suggestion"`
}

type CoachInput struct {
	CompletedHabitIDs []string
	Obstacles         string
	Mood              string
}

// Insight wraps a generated payload with whether it came from the fallback path.
type Insight[T any] struct {
	Data     T    `json:"data"`
	Fallback bool `json:"fallback"`
	Cached   bool `json:"cached"`
}

type GenerateRequest struct {
	Prompt          string
	Schema          *genai.Schema
	JSON            bool
	Temperature     *float32
	TopP            *float32
	MaxOutputTokens int32
}

// Generator is the outbound text-generation collaborator.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// InsightCache stores day-scoped generated payloads as raw JSON.
type InsightCache interface {
	Get(ctx context.Context, category, userID, date string) (string, error)
	Put(ctx context.Context, category, userID, date, payload string) error
}
