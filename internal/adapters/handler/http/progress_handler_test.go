package http_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/habitquest/internal/core/domain"
)

func TestToggleLog(t *testing.T) {
	srv := newTestServer(t, nil)
	session := srv.signup(t, "pilot")
	habit := srv.createHabit(t, session.Token, "Read")

	t.Run("Success: First toggle completes and unlocks First Blood", func(t *testing.T) {
		w := srv.do(t, http.MethodPost, "/logs/toggle", session.Token, map[string]string{"habit_id": habit.ID})

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		res := decodeBody[domain.ToggleResult](t, w)
		assert.True(t, res.Log.Completed)
		assert.Equal(t, 1, res.Progress.TotalCompletions)
		assert.Equal(t, 10, res.Progress.TotalXP)
		assert.Equal(t, 1, res.Progress.Streaks[habit.ID])
		require.Len(t, res.NewlyUnlocked, 1)
		assert.Equal(t, "First Blood", res.NewlyUnlocked[0].Title)
	})

	t.Run("Success: Second toggle on the same day uncompletes", func(t *testing.T) {
		w := srv.do(t, http.MethodPost, "/logs/toggle", session.Token, map[string]string{"habit_id": habit.ID})

		require.Equal(t, http.StatusOK, w.Code)
		res := decodeBody[domain.ToggleResult](t, w)
		assert.False(t, res.Log.Completed)
		assert.Nil(t, res.Log.CompletedAt)
		assert.Equal(t, 0, res.Progress.TotalCompletions)
		assert.Empty(t, res.NewlyUnlocked)

		logs := decodeBody[[]domain.HabitLog](t, srv.do(t, http.MethodGet, "/logs", session.Token, nil))
		assert.Len(t, logs, 1)
	})

	tomorrow := domain.FormatDate(time.Now().UTC().AddDate(0, 0, 2))

	tests := []struct {
		name     string
		payload  map[string]string
		wantCode int
	}{
		{"Fail: 400 Missing habit id", map[string]string{}, http.StatusBadRequest},
		{"Fail: 400 Malformed date", map[string]string{"habit_id": habit.ID, "date": "15/03/2024"}, http.StatusBadRequest},
		{"Fail: 400 Future date", map[string]string{"habit_id": habit.ID, "date": tomorrow}, http.StatusBadRequest},
		{"Fail: 404 Unknown habit", map[string]string{"habit_id": "missing"}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := srv.do(t, http.MethodPost, "/logs/toggle", session.Token, tt.payload)
			assert.Equal(t, tt.wantCode, w.Code, w.Body.String())
		})
	}
}

func TestProgressAndAchievements(t *testing.T) {
	srv := newTestServer(t, nil)
	session := srv.signup(t, "pilot")
	habit := srv.createHabit(t, session.Token, "Read")

	today := time.Now().UTC()
	for i := 2; i >= 0; i-- {
		date := domain.FormatDate(today.AddDate(0, 0, -i))
		w := srv.do(t, http.MethodPost, "/logs/toggle", session.Token, map[string]string{"habit_id": habit.ID, "date": date})
		require.Equal(t, http.StatusOK, w.Code)
	}

	t.Run("Success: Progress reports the streak", func(t *testing.T) {
		w := srv.do(t, http.MethodGet, "/progress", session.Token, nil)

		require.Equal(t, http.StatusOK, w.Code)
		p := decodeBody[domain.Progress](t, w)
		assert.Equal(t, 3, p.TotalCompletions)
		assert.Equal(t, 30, p.TotalXP)
		assert.Equal(t, 1, p.Level)
		assert.Equal(t, 3, p.MaxStreak)
		assert.Equal(t, 1, p.HabitCount)
		assert.Equal(t, 2, p.UnlockedCount)
	})

	t.Run("Success: Achievements list the whole catalog", func(t *testing.T) {
		w := srv.do(t, http.MethodGet, "/achievements", session.Token, nil)

		require.Equal(t, http.StatusOK, w.Code)
		res := decodeBody[struct {
			Achievements []domain.Achievement `json:"achievements"`
			Unlocked     int                  `json:"unlocked"`
			Total        int                  `json:"total"`
		}](t, w)
		assert.Equal(t, len(domain.AchievementCatalog), res.Total)
		assert.Equal(t, 2, res.Unlocked)

		unlocked := map[string]bool{}
		for _, a := range res.Achievements {
			if a.UnlockedAt != nil {
				unlocked[a.Title] = true
			}
		}
		assert.Equal(t, map[string]bool{"First Blood": true, "Fire Starter": true}, unlocked)
	})

	t.Run("Fail: 401 without token", func(t *testing.T) {
		w := srv.do(t, http.MethodGet, "/progress", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
