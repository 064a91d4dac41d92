package domain

import (
	"context"
	"time"
)

type MetricKind string

const (
	MetricCompletions MetricKind = "completions"
	MetricStreak      MetricKind = "streak"
	MetricHabitCount  MetricKind = "habit_count"
	MetricLevel       MetricKind = "level"
)

// Metrics is the live snapshot achievement rules are checked against.
type Metrics struct {
	TotalCompletions int `json:"total_completions"`
	MaxStreak        int `json:"max_streak"`
	HabitCount       int `json:"habit_count"`
	Level            int `json:"level"`
}

// Value returns the metric a rule of the given kind compares against.
// Unknown kinds report 0 so they can never unlock.
func (m Metrics) Value(kind MetricKind) int {
	switch kind {
	case MetricCompletions:
		return m.TotalCompletions
	case MetricStreak:
		return m.MaxStreak
	case MetricHabitCount:
		return m.HabitCount
	case MetricLevel:
		return m.Level
	default:
		return 0
	}
}

type AchievementRule struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Kind        MetricKind `json:"kind"`
	Threshold   int        `json:"threshold"`
}

// Achievement is a catalog rule joined with the user's unlock state.
type Achievement struct {
	AchievementRule
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
}

// Unlocks maps achievement ids to the moment they were earned.
type Unlocks map[string]time.Time

var AchievementCatalog = []AchievementRule{
	{ID: "1", Title: "First Blood", Description: "Complete your first habit protocol.", Icon: "fa-skull-crossbones", Kind: MetricCompletions, Threshold: 1},
	{ID: "2", Title: "Double Down", Description: "Log 10 successful habit completions.", Icon: "fa-angles-up", Kind: MetricCompletions, Threshold: 10},
	{ID: "3", Title: "Persistence", Description: "Complete 50 total habit nodes.", Icon: "fa-shield-halved", Kind: MetricCompletions, Threshold: 50},
	{ID: "4", Title: "Century Node", Description: "Reach 100 total habit completions.", Icon: "fa-gem", Kind: MetricCompletions, Threshold: 100},
	{ID: "5", Title: "Millennium Protocol", Description: "Reach 1000 total completions.", Icon: "fa-dharmachakra", Kind: MetricCompletions, Threshold: 1000},
	{ID: "6", Title: "Fire Starter", Description: "Maintain a 3-day streak on any habit.", Icon: "fa-fire", Kind: MetricStreak, Threshold: 3},
	{ID: "7", Title: "Weekly Pulse", Description: "Achieve a 7-day streak on any habit.", Icon: "fa-bolt-lightning", Kind: MetricStreak, Threshold: 7},
	{ID: "8", Title: "Fortress of Will", Description: "Reach a 14-day streak on any habit.", Icon: "fa-castle", Kind: MetricStreak, Threshold: 14},
	{ID: "9", Title: "God Mode", Description: "Maintain a 30-day streak on any habit.", Icon: "fa-eye", Kind: MetricStreak, Threshold: 30},
	{ID: "10", Title: "Architect", Description: "Manage 3 active habit protocols.", Icon: "fa-microchip", Kind: MetricHabitCount, Threshold: 3},
	{ID: "11", Title: "Master Architect", Description: "Manage 5 active habit protocols.", Icon: "fa-city", Kind: MetricHabitCount, Threshold: 5},
	{ID: "12", Title: "Grand Planner", Description: "Manage 10 active habit protocols.", Icon: "fa-monument", Kind: MetricHabitCount, Threshold: 10},
	{ID: "13", Title: "Advanced Protocol", Description: "Reach Level 5.", Icon: "fa-medal", Kind: MetricLevel, Threshold: 5},
	{ID: "14", Title: "Transcendent", Description: "Reach Level 10.", Icon: "fa-crown", Kind: MetricLevel, Threshold: 10},
	{ID: "15", Title: "Immortal", Description: "Reach Level 25.", Icon: "fa-infinity", Kind: MetricLevel, Threshold: 25},
}

type AchievementRepository interface {
	// GetUnlocks returns an empty map for users that never unlocked anything.
	GetUnlocks(ctx context.Context, userID string) (Unlocks, error)
	// AddUnlocks merges newly earned ids into the stored set atomically and
	// returns the merged set. Ids already stored keep their original timestamp.
	AddUnlocks(ctx context.Context, userID string, newly Unlocks) (Unlocks, error)
}
