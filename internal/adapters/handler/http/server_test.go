package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	adapterHTTP "github.com/comitanigiacomo/habitquest/internal/adapters/handler/http"
	"github.com/comitanigiacomo/habitquest/internal/adapters/repository"
	"github.com/comitanigiacomo/habitquest/internal/core/domain"
	"github.com/comitanigiacomo/habitquest/internal/core/services"
)

type stubGenerator struct {
	reply string
	err   error
}

func (g *stubGenerator) Generate(ctx context.Context, req domain.GenerateRequest) (string, error) {
	return g.reply, g.err
}

type testServer struct {
	router *gin.Engine
}

// newTestServer wires the real services over an in-memory store. gen may be nil,
// in which case every insight call takes the fallback path.
func newTestServer(t *testing.T, gen domain.Generator) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	store := repository.NewInMemoryStore()

	users := repository.NewKVUserRepository(store, logger)
	habits := repository.NewKVHabitRepository(store, logger)
	logs := repository.NewKVHabitLogRepository(store, logger)
	achievements := repository.NewKVAchievementRepository(store, logger)
	cache := repository.NewKVInsightCache(store)
	revocations := repository.NewKVRevocationRepository(store)

	clock := services.NewClock(time.UTC)
	tokens := services.NewTokenService("test-secret", "habitquest", time.Hour, users, revocations)
	auth := services.NewAuthService(users, tokens, logger)
	progress := services.NewProgressService(habits, logs, achievements, clock, logger)
	habitSvc := services.NewHabitService(habits, logs, progress, nil, logger)
	stats := services.NewStatsService(habits, logs, clock)
	insights := services.NewInsightService(habits, logs, cache, gen, clock, time.Second, logger)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:     adapterHTTP.NewAuthHandler(auth),
		HabitHandler:    adapterHTTP.NewHabitHandler(habitSvc),
		ProgressHandler: adapterHTTP.NewProgressHandler(progress),
		StatsHandler:    adapterHTTP.NewStatsHandler(stats),
		InsightHandler:  adapterHTTP.NewInsightHandler(insights),
		TokenValidator:  tokens,
		StartTime:       time.Now(),
	})

	return &testServer{router: router}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, "/api/v1"+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) signup(t *testing.T, username string) domain.Session {
	t.Helper()

	w := s.do(t, http.MethodPost, "/auth/signup", "", map[string]string{
		"full_name":        "Test Pilot",
		"username":         username,
		"email":            username + "@habitquest.app",
		"password":         "password123",
		"confirm_password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var session domain.Session
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	return session
}

func (s *testServer) createHabit(t *testing.T, token, name string) domain.Habit {
	t.Helper()

	w := s.do(t, http.MethodPost, "/habits", token, map[string]string{"name": name})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var res services.CreateHabitResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return *res.Habit
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
