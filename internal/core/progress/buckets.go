package progress

import (
	"fmt"
	"math"
	"time"

	"github.com/comitanigiacomo/habitquest/internal/core/domain"
)

const (
	DailyWindow   = 7
	HistoryWindow = 14
)

type logIndex map[string]bool

func indexCompleted(logs []*domain.HabitLog) logIndex {
	idx := make(logIndex, len(logs))
	for _, l := range logs {
		if l.Completed {
			idx[l.HabitID+"|"+l.Date] = true
		}
	}
	return idx
}

func (idx logIndex) done(habitID, date string) bool {
	return idx[habitID+"|"+date]
}

// Chart dispatches to the bucketing for the requested granularity.
func Chart(logs []*domain.HabitLog, g domain.Granularity, ref time.Time) ([]domain.Bucket, error) {
	switch g {
	case domain.GranularityDaily:
		return Daily(logs, ref), nil
	case domain.GranularityMonthly:
		return Monthly(logs, ref), nil
	default:
		return nil, domain.ErrInvalidGranularity
	}
}

// Daily returns one point per day for the 7 days ending at ref, oldest first.
func Daily(logs []*domain.HabitLog, ref time.Time) []domain.Bucket {
	counts := make(map[string]int)
	for _, l := range logs {
		if l.Completed {
			counts[l.Date]++
		}
	}

	day := Day(ref)
	out := make([]domain.Bucket, 0, DailyWindow)
	for i := DailyWindow - 1; i >= 0; i-- {
		d := day.AddDate(0, 0, -i)
		out = append(out, domain.Bucket{
			Label: d.Format("Mon"),
			Count: counts[domain.FormatDate(d)],
		})
	}
	return out
}

// Monthly returns one point per month of ref's calendar year.
func Monthly(logs []*domain.HabitLog, ref time.Time) []domain.Bucket {
	year := ref.Year()
	counts := make(map[string]int)
	for _, l := range logs {
		if l.Completed && len(l.Date) >= 7 {
			counts[l.Date[:7]]++
		}
	}

	out := make([]domain.Bucket, 0, 12)
	for m := time.January; m <= time.December; m++ {
		out = append(out, domain.Bucket{
			Label: m.String()[:3],
			Count: counts[fmt.Sprintf("%04d-%02d", year, int(m))],
		})
	}
	return out
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 12, 0, 0, 0, loc).Day()
}

// MonthGrid builds the tracking table for ref's month: one row per day with a
// cell per habit. Cells before today that were not completed are missed; cells
// after today are future.
func MonthGrid(habits []*domain.Habit, logs []*domain.HabitLog, ref, today time.Time) domain.CalendarMonth {
	idx := indexCompleted(logs)
	todayStr := domain.FormatDate(today)

	year, month, _ := ref.Date()
	n := daysIn(year, month, ref.Location())

	grid := domain.CalendarMonth{
		Month: fmt.Sprintf("%04d-%02d", year, int(month)),
		Rows:  make([]domain.CalendarRow, 0, n),
	}

	for day := 1; day <= n; day++ {
		date := fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
		row := domain.CalendarRow{
			Date:  date,
			Day:   day,
			Cells: make([]domain.CalendarCell, 0, len(habits)),
		}
		for _, h := range habits {
			done := idx.done(h.ID, date)
			row.Cells = append(row.Cells, domain.CalendarCell{
				HabitID:   h.ID,
				Completed: done,
				Missed:    date < todayStr && !done,
				Future:    date > todayStr,
			})
		}
		grid.Rows = append(grid.Rows, row)
	}

	return grid
}

// History returns the trailing 14-day completion strip of every habit,
// oldest day first, ending at ref.
func History(habits []*domain.Habit, logs []*domain.HabitLog, ref time.Time) []domain.HabitHistory {
	idx := indexCompleted(logs)
	day := Day(ref)

	dates := make([]string, 0, HistoryWindow)
	for i := HistoryWindow - 1; i >= 0; i-- {
		dates = append(dates, domain.FormatDate(day.AddDate(0, 0, -i)))
	}

	out := make([]domain.HabitHistory, 0, len(habits))
	for _, h := range habits {
		hist := domain.HabitHistory{
			HabitID: h.ID,
			Name:    h.Name,
			Dates:   dates,
			Days:    make([]bool, len(dates)),
		}
		for i, d := range dates {
			hist.Days[i] = idx.done(h.ID, d)
		}
		out = append(out, hist)
	}
	return out
}

// Rates is completed over touched logs per habit, as a rounded percentage.
func Rates(habits []*domain.Habit, logs []*domain.HabitLog) []domain.HabitRate {
	touched := make(map[string]int)
	done := make(map[string]int)
	for _, l := range logs {
		touched[l.HabitID]++
		if l.Completed {
			done[l.HabitID]++
		}
	}

	out := make([]domain.HabitRate, 0, len(habits))
	for _, h := range habits {
		denom := touched[h.ID]
		if denom < 1 {
			denom = 1
		}
		out = append(out, domain.HabitRate{
			HabitID: h.ID,
			Name:    h.Name,
			Color:   h.Color,
			Icon:    h.Icon,
			Rate:    int(math.Round(float64(done[h.ID]) / float64(denom) * 100)),
		})
	}
	return out
}

// LastDays lists the n calendar dates ending at ref, newest first.
func LastDays(ref time.Time, n int) []string {
	day := Day(ref)
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.FormatDate(day.AddDate(0, 0, -i)))
	}
	return out
}
