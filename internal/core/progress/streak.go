// Package progress holds the pure habit progress computations: streaks,
// XP and levels, achievement evaluation and time bucketing. Nothing in here
// touches storage or the clock; callers pass snapshots and the reference day.
package progress

import (
	"sort"
	"time"

	"github.com/comitanigiacomo/habitquest/internal/core/domain"
)

// Day normalizes t to noon of its calendar day so AddDate never crosses a
// day boundary on DST transitions.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 12, 0, 0, 0, t.Location())
}

func completedDates(logs []*domain.HabitLog, habitID string) map[string]bool {
	dates := make(map[string]bool)
	for _, l := range logs {
		if l.HabitID == habitID && l.Completed {
			dates[l.Date] = true
		}
	}
	return dates
}

// Streak counts consecutive completed days walking back from yesterday, plus
// one when today is completed. Today being still open never breaks the streak.
func Streak(logs []*domain.HabitLog, habitID string, today time.Time) int {
	dates := completedDates(logs, habitID)
	if len(dates) == 0 {
		return 0
	}

	day := Day(today)
	streak := 0

	check := day.AddDate(0, 0, -1)
	for dates[domain.FormatDate(check)] {
		streak++
		check = check.AddDate(0, 0, -1)
	}

	if dates[domain.FormatDate(day)] {
		streak++
	}

	return streak
}

// LongestStreak is the longest run of consecutive completed days ever logged.
func LongestStreak(logs []*domain.HabitLog, habitID string) int {
	dates := completedDates(logs, habitID)
	if len(dates) == 0 {
		return 0
	}

	sorted := make([]string, 0, len(dates))
	for d := range dates {
		sorted = append(sorted, d)
	}
	sort.Strings(sorted)

	longest, run := 0, 0
	prev := ""
	for _, d := range sorted {
		if prev != "" && nextDay(prev) == d {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
		prev = d
	}

	return longest
}

func nextDay(date string) string {
	t, err := domain.ParseDate(date)
	if err != nil {
		return ""
	}
	return domain.FormatDate(t.AddDate(0, 0, 1))
}

// Streaks returns the current streak of every habit, keyed by habit id.
func Streaks(habits []*domain.Habit, logs []*domain.HabitLog, today time.Time) map[string]int {
	out := make(map[string]int, len(habits))
	for _, h := range habits {
		out[h.ID] = Streak(logs, h.ID, today)
	}
	return out
}

// MaxStreak is the best current streak across habits, or 0 without habits.
func MaxStreak(habits []*domain.Habit, logs []*domain.HabitLog, today time.Time) int {
	best := 0
	for _, h := range habits {
		if s := Streak(logs, h.ID, today); s > best {
			best = s
		}
	}
	return best
}
