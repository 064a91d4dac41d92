package progress

import "github.com/comitanigiacomo/habitquest/internal/core/domain"

const (
	XPPerCompletion = 10
	XPPerLevel      = 100
)

type Level struct {
	TotalXP int
	Level   int
	// Progress is the XP earned inside the current level, which with 100 XP
	// bands doubles as the percentage toward the next level.
	Progress int
}

func NewLevel(completions int) Level {
	if completions < 0 {
		completions = 0
	}
	xp := completions * XPPerCompletion
	return Level{
		TotalXP:  xp,
		Level:    xp/XPPerLevel + 1,
		Progress: xp % XPPerLevel,
	}
}

func CompletedCount(logs []*domain.HabitLog) int {
	n := 0
	for _, l := range logs {
		if l.Completed {
			n++
		}
	}
	return n
}
