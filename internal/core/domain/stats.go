package domain

import "errors"

var ErrInvalidGranularity = errors.New("invalid granularity (must be daily or monthly)")

type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityMonthly Granularity = "monthly"
)

type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type Progress struct {
	TotalCompletions int            `json:"total_completions"`
	TotalXP          int            `json:"total_xp"`
	Level            int            `json:"level"`
	LevelProgress    int            `json:"level_progress"`
	HabitCount       int            `json:"habit_count"`
	MaxStreak        int            `json:"max_streak"`
	Streaks          map[string]int `json:"streaks"`
	UnlockedCount    int            `json:"unlocked_achievements"`
}

// ToggleResult is what a completion toggle reports back, including any
// achievements the toggle unlocked.
type ToggleResult struct {
	Log           *HabitLog     `json:"log"`
	Progress      Progress      `json:"progress"`
	NewlyUnlocked []Achievement `json:"newly_unlocked"`
}

type CalendarCell struct {
	HabitID   string `json:"habit_id"`
	Completed bool   `json:"completed"`
	Missed    bool   `json:"missed"`
	Future    bool   `json:"future"`
}

type CalendarRow struct {
	Date  string         `json:"date"`
	Day   int            `json:"day"`
	Cells []CalendarCell `json:"cells"`
}

type CalendarMonth struct {
	Month string        `json:"month"`
	Rows  []CalendarRow `json:"rows"`
}

type HabitHistory struct {
	HabitID string   `json:"habit_id"`
	Name    string   `json:"name"`
	Dates   []string `json:"dates"`
	Days    []bool   `json:"days"`
}

type HabitRate struct {
	HabitID string `json:"habit_id"`
	Name    string `json:"name"`
	Color   string `json:"color"`
	Icon    string `json:"icon"`
	Rate    int    `json:"rate"`
}
