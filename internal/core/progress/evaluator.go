package progress

import (
	"time"

	"github.com/comitanigiacomo/habitquest/internal/core/domain"
)

// MetricsFor derives the achievement metrics from a user's habits and logs.
func MetricsFor(habits []*domain.Habit, logs []*domain.HabitLog, today time.Time) domain.Metrics {
	completions := CompletedCount(logs)
	return domain.Metrics{
		TotalCompletions: completions,
		MaxStreak:        MaxStreak(habits, logs, today),
		HabitCount:       len(habits),
		Level:            NewLevel(completions).Level,
	}
}

// Evaluate unlocks every rule whose threshold is met and that is not already
// unlocked. Existing unlock timestamps are never touched. The returned map is a
// copy; newly holds only the rules unlocked by this call, in catalog order, so an
// empty newly means nothing needs to be written.
func Evaluate(catalog []domain.AchievementRule, unlocks domain.Unlocks, m domain.Metrics, now time.Time) (domain.Unlocks, []domain.AchievementRule) {
	out := make(domain.Unlocks, len(unlocks))
	for id, at := range unlocks {
		out[id] = at
	}

	var newly []domain.AchievementRule
	for _, rule := range catalog {
		if _, ok := out[rule.ID]; ok {
			continue
		}
		if m.Value(rule.Kind) >= rule.Threshold {
			out[rule.ID] = now.UTC()
			newly = append(newly, rule)
		}
	}

	return out, newly
}

// Join pairs each catalog rule with its unlock timestamp, if any.
func Join(catalog []domain.AchievementRule, unlocks domain.Unlocks) []domain.Achievement {
	out := make([]domain.Achievement, 0, len(catalog))
	for _, rule := range catalog {
		a := domain.Achievement{AchievementRule: rule}
		if at, ok := unlocks[rule.ID]; ok {
			a.UnlockedAt = &at
		}
		out = append(out, a)
	}
	return out
}

func UnlockedCount(catalog []domain.AchievementRule, unlocks domain.Unlocks) int {
	n := 0
	for _, rule := range catalog {
		if _, ok := unlocks[rule.ID]; ok {
			n++
		}
	}
	return n
}
