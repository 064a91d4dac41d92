package http_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/habitquest/internal/core/domain"
	"github.com/comitanigiacomo/habitquest/internal/core/services"
)

func TestDailyInsight(t *testing.T) {
	t.Run("Success: No habits skips the generator", func(t *testing.T) {
		srv := newTestServer(t, &stubGenerator{err: errors.New("must not be called")})
		session := srv.signup(t, "pilot")

		w := srv.do(t, http.MethodGet, "/insights/daily", session.Token, nil)

		require.Equal(t, http.StatusOK, w.Code)
		res := decodeBody[domain.Insight[domain.DailyInsight]](t, w)
		assert.Equal(t, services.NoHabitsInsight, res.Data)
		assert.False(t, res.Fallback)
	})

	t.Run("Success: Generated insight is cached for the day", func(t *testing.T) {
		gen := &stubGenerator{reply: `{"tip":"Stack it","quote":"Onward","focus":"Reading"}`}
		srv := newTestServer(t, gen)
		session := srv.signup(t, "pilot")
		srv.createHabit(t, session.Token, "Read")

		first := decodeBody[domain.Insight[domain.DailyInsight]](t, srv.do(t, http.MethodGet, "/insights/daily", session.Token, nil))
		assert.Equal(t, "Reading", first.Data.Focus)
		assert.False(t, first.Cached)

		gen.err = errors.New("quota")
		second := decodeBody[domain.Insight[domain.DailyInsight]](t, srv.do(t, http.MethodGet, "/insights/daily", session.Token, nil))
		assert.Equal(t, first.Data, second.Data)
		assert.True(t, second.Cached)
	})

	t.Run("Success: Generator failure serves the fallback with 200", func(t *testing.T) {
		srv := newTestServer(t, &stubGenerator{err: errors.New("quota")})
		session := srv.signup(t, "pilot")
		srv.createHabit(t, session.Token, "Read")

		w := srv.do(t, http.MethodGet, "/insights/daily", session.Token, nil)

		require.Equal(t, http.StatusOK, w.Code)
		res := decodeBody[domain.Insight[domain.DailyInsight]](t, w)
		assert.True(t, res.Fallback)
		assert.Equal(t, services.DailyInsightFallback, res.Data)
	})
}

func TestMotivation(t *testing.T) {
	t.Run("Success: Quotes are unwrapped", func(t *testing.T) {
		srv := newTestServer(t, &stubGenerator{reply: `"Slay the dragon of doubt."`})
		session := srv.signup(t, "pilot")

		res := decodeBody[domain.Insight[string]](t, srv.do(t, http.MethodGet, "/insights/motivation", session.Token, nil))
		assert.Equal(t, "Slay the dragon of doubt.", res.Data)
	})

	t.Run("Success: Disabled generator falls back", func(t *testing.T) {
		srv := newTestServer(t, nil)
		session := srv.signup(t, "pilot")

		res := decodeBody[domain.Insight[string]](t, srv.do(t, http.MethodGet, "/insights/motivation", session.Token, nil))
		assert.True(t, res.Fallback)
		assert.Equal(t, services.MotivationFallback, res.Data)
	})
}

func TestAnalysisAndWeeklyReport(t *testing.T) {
	srv := newTestServer(t, nil)
	session := srv.signup(t, "pilot")
	habit := srv.createHabit(t, session.Token, "Read")

	t.Run("Fail: 400 Weekly report without logs", func(t *testing.T) {
		w := srv.do(t, http.MethodPost, "/insights/weekly-report", session.Token, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, domain.ErrNoWeeklyData.Error(), decodeBody[map[string]string](t, w)["error"])
	})

	w := srv.do(t, http.MethodPost, "/logs/toggle", session.Token, map[string]string{"habit_id": habit.ID})
	require.Equal(t, http.StatusOK, w.Code)

	t.Run("Fail: 400 Analysis with too few logs", func(t *testing.T) {
		w := srv.do(t, http.MethodPost, "/insights/analysis", session.Token, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Success: Weekly fallback computes consistency locally", func(t *testing.T) {
		w := srv.do(t, http.MethodPost, "/insights/weekly-report", session.Token, nil)

		require.Equal(t, http.StatusOK, w.Code)
		res := decodeBody[domain.Insight[domain.WeeklyReport]](t, w)
		assert.True(t, res.Fallback)
		assert.Equal(t, float64(100), res.Data.ConsistencyPercentage)
	})
}

func TestCoachCheckIn(t *testing.T) {
	gen := &stubGenerator{reply: `{"response":"Solid work","suggestion":"Read before bed"}`}
	srv := newTestServer(t, gen)
	session := srv.signup(t, "pilot")
	habit := srv.createHabit(t, session.Token, "Read")

	payload := map[string]any{
		"completed_habit_ids": []string{habit.ID, "unknown"},
		"obstacles":           "late meeting",
		"mood":                "tired",
	}

	t.Run("Success: First check-in generates and drops unknown ids", func(t *testing.T) {
		w := srv.do(t, http.MethodPost, "/insights/coach", session.Token, payload)

		require.Equal(t, http.StatusOK, w.Code)
		res := decodeBody[domain.Insight[domain.CoachInteraction]](t, w)
		assert.Equal(t, "Solid work", res.Data.CoachResponse)
		assert.Equal(t, []string{habit.ID}, res.Data.CompletedHabitIDs)
		assert.False(t, res.Cached)
	})

	t.Run("Success: Second check-in the same day is served from cache", func(t *testing.T) {
		gen.reply = `{"response":"Different","suggestion":"Different"}`

		w := srv.do(t, http.MethodPost, "/insights/coach", session.Token, map[string]any{"mood": "great"})

		require.Equal(t, http.StatusOK, w.Code)
		res := decodeBody[domain.Insight[domain.CoachInteraction]](t, w)
		assert.True(t, res.Cached)
		assert.Equal(t, "Solid work", res.Data.CoachResponse)
		assert.Equal(t, "tired", res.Data.Mood)
	})
}
