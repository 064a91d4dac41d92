package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/habitquest/internal/config"
	"github.com/comitanigiacomo/habitquest/internal/core/domain"
)

type client struct {
	t     *testing.T
	base  string
	token string
}

func (c *client) call(method, path string, body any, out any) int {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, c.base+path, &buf)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 && resp.StatusCode != http.StatusNoContent {
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestEndToEnd_ReadScenario(t *testing.T) {
	gin.SetMode(gin.TestMode)

	drivers := []struct {
		name  string
		setup func(cfg *config.Config)
	}{
		{"memory", func(cfg *config.Config) { cfg.Storage.Driver = config.DriverMemory }},
		{"sqlite", func(cfg *config.Config) {
			cfg.Storage.Driver = config.DriverSQLite
			cfg.Storage.SQLitePath = ":memory:"
		}},
	}

	for _, d := range drivers {
		t.Run(d.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Auth.JWTSecret = "e2e-secret"
			d.setup(cfg)
			require.NoError(t, cfg.Validate())

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			app, err := newApp(ctx, cfg, zap.NewNop())
			require.NoError(t, err)
			defer app.Close()

			srv := httptest.NewServer(app.router)
			defer srv.Close()

			c := &client{t: t, base: srv.URL + "/api/v1"}

			var session domain.Session
			t.Run("1. Signup", func(t *testing.T) {
				code := c.call(http.MethodPost, "/auth/signup", map[string]string{
					"full_name":        "Ada Reader",
					"username":         "ada",
					"email":            "ada@habitquest.app",
					"password":         "password123",
					"confirm_password": "password123",
				}, &session)
				require.Equal(t, http.StatusCreated, code)
				c.token = session.Token
			})

			var created struct {
				Habit domain.Habit `json:"habit"`
			}
			t.Run("2. Create Habit", func(t *testing.T) {
				code := c.call(http.MethodPost, "/habits", map[string]string{"name": "Read"}, &created)
				require.Equal(t, http.StatusCreated, code)
				assert.Equal(t, "Read", created.Habit.Name)
			})

			t.Run("3. Complete Today", func(t *testing.T) {
				var res domain.ToggleResult
				code := c.call(http.MethodPost, "/logs/toggle", map[string]string{"habit_id": created.Habit.ID}, &res)
				require.Equal(t, http.StatusOK, code)

				assert.True(t, res.Log.Completed)
				assert.Equal(t, 1, res.Progress.Streaks[created.Habit.ID])
				assert.Equal(t, 10, res.Progress.TotalXP)
				assert.Equal(t, 1, res.Progress.Level)
				assert.Equal(t, 10, res.Progress.LevelProgress)
				require.Len(t, res.NewlyUnlocked, 1)
				assert.Equal(t, "1", res.NewlyUnlocked[0].ID)
			})

			t.Run("4. Progress Survives Re-read", func(t *testing.T) {
				var p domain.Progress
				require.Equal(t, http.StatusOK, c.call(http.MethodGet, "/progress", nil, &p))
				assert.Equal(t, 1, p.TotalCompletions)
				assert.Equal(t, 1, p.UnlockedCount)
			})

			t.Run("5. Delete Habit", func(t *testing.T) {
				require.Equal(t, http.StatusNoContent, c.call(http.MethodDelete, "/habits/"+created.Habit.ID, nil, nil))

				var logs []domain.HabitLog
				require.Equal(t, http.StatusOK, c.call(http.MethodGet, "/logs", nil, &logs))
				assert.Empty(t, logs)
			})

			t.Run("6. Logout", func(t *testing.T) {
				require.Equal(t, http.StatusNoContent, c.call(http.MethodPost, "/auth/logout", nil, nil))
				assert.Equal(t, http.StatusUnauthorized, c.call(http.MethodGet, "/auth/me", nil, nil))
			})
		})
	}
}
