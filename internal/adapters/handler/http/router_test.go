package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter(t *testing.T) {
	srv := newTestServer(t, nil)

	t.Run("Success: Health on the memory driver", func(t *testing.T) {
		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody[map[string]string](t, w)
		assert.Equal(t, "ok", body["status"])
		assert.Equal(t, "memory", body["database"])
		assert.Equal(t, "disabled", body["redis"])
		assert.NotEmpty(t, body["uptime"])
	})

	t.Run("Success: CORS preflight", func(t *testing.T) {
		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/v1/habits", nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Success: Swagger document is served", func(t *testing.T) {
		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "HabitQuest API")
	})
}
