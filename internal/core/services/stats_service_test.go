package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/habitquest/internal/core/domain"
)

func TestStatsService(t *testing.T) {
	ctx := context.Background()
	habits := newFakeHabitRepo()
	logs := newFakeLogRepo()
	svc := NewStatsService(habits, logs, fixedClock())

	h, err := domain.NewHabit("u1", "Read", "", "", "", "")
	require.NoError(t, err)
	require.NoError(t, habits.Create(ctx, h))
	logs.seed("u1", h.ID, "2024-03-15", "2024-03-14", "2024-01-02")

	t.Run("Success: daily chart has 7 points ending today", func(t *testing.T) {
		points, err := svc.Chart(ctx, "u1", "", "")
		require.NoError(t, err)
		require.Len(t, points, 7)
		assert.Equal(t, "Fri", points[6].Label)
		assert.Equal(t, 1, points[6].Count)
		assert.Equal(t, 1, points[5].Count)
	})

	t.Run("Success: monthly chart has 12 points", func(t *testing.T) {
		points, err := svc.Chart(ctx, "u1", "monthly", "")
		require.NoError(t, err)
		require.Len(t, points, 12)
		assert.Equal(t, "Jan", points[0].Label)
		assert.Equal(t, 1, points[0].Count)
		assert.Equal(t, 2, points[2].Count)
	})

	t.Run("Success: empty user still gets every slot", func(t *testing.T) {
		points, err := svc.Chart(ctx, "nobody", "daily", "2023-07-01")
		require.NoError(t, err)
		assert.Len(t, points, 7)
	})

	t.Run("Fail: bad granularity", func(t *testing.T) {
		_, err := svc.Chart(ctx, "u1", "weekly", "")
		assert.ErrorIs(t, err, domain.ErrInvalidGranularity)
	})

	t.Run("Fail: bad date", func(t *testing.T) {
		_, err := svc.Chart(ctx, "u1", "daily", "yesterday")
		assert.ErrorIs(t, err, domain.ErrInvalidDate)
	})

	t.Run("Success: calendar marks missed and future", func(t *testing.T) {
		grid, err := svc.Calendar(ctx, "u1", "")
		require.NoError(t, err)
		assert.Equal(t, "2024-03", grid.Month)
		require.Len(t, grid.Rows, 31)

		assert.True(t, grid.Rows[0].Cells[0].Missed)
		assert.True(t, grid.Rows[14].Cells[0].Completed)
		assert.True(t, grid.Rows[15].Cells[0].Future)
	})

	t.Run("Success: history is 14 days oldest first", func(t *testing.T) {
		hist, err := svc.History(ctx, "u1", "")
		require.NoError(t, err)
		require.Len(t, hist, 1)
		require.Len(t, hist[0].Days, 14)
		assert.Equal(t, "2024-03-15", hist[0].Dates[13])
		assert.True(t, hist[0].Days[13])
		assert.True(t, hist[0].Days[12])
		assert.False(t, hist[0].Days[11])
	})

	t.Run("Success: rates", func(t *testing.T) {
		rates, err := svc.Rates(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, rates, 1)
		assert.Equal(t, 100, rates[0].Rate)
	})
}
