package http_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/comitanigiacomo/kanso-habits/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-habits/internal/adapters/metrics"
	"github.com/comitanigiacomo/kanso-habits/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-habits/internal/core/engine"
	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
)

func newFullRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logrus.New()
	log.SetOutput(io.Discard)

	users := repository.NewInMemoryUserRepository()
	habits := repository.NewInMemoryHabitRepository()
	tokens := services.NewTokenService("router-secret", "kanso-test", time.Hour, users)
	m := metrics.New()

	return adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:    adapterHTTP.NewAuthHandler(services.NewAuthService(users, tokens)),
		HabitHandler:   adapterHTTP.NewHabitHandler(services.NewHabitService(habits, nil, time.UTC), m),
		StatsHandler:   adapterHTTP.NewStatsHandler(services.NewStatsService(habits, engine.DefaultOptions())),
		CatalogHandler: adapterHTTP.NewCatalogHandler(nil),
		TokenValidator: tokens,
		Metrics:        m,
		Logger:         log,
		StartTime:      time.Now(),
	})
}

func serve(router *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRouter_PublicEndpoints(t *testing.T) {
	router := newFullRouter(t)

	t.Run("Health reports in-memory storage", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/health", "", "")
		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]string
		decode(t, w, &body)
		assert.Equal(t, "ok", body["status"])
		assert.Equal(t, "memory", body["database"])
		assert.Equal(t, "disabled", body["redis"])
	})

	t.Run("Catalog needs no token", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/api/v1/catalog", "", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "milestones")
	})

	t.Run("Swagger UI is served", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/swagger/doc.json", "", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Kanso Habits API")
	})
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	router := newFullRouter(t)

	for _, path := range []string{"/api/v1/habits", "/api/v1/stats/today", "/api/v1/stats/dashboard", "/api/v1/notifications/preview"} {
		w := serve(router, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	w := serve(router, http.MethodGet, "/api/v1/habits", "not-a-jwt", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_RegisterLoginAndToggle(t *testing.T) {
	router := newFullRouter(t)

	w := serve(router, http.MethodPost, "/api/v1/auth/register", "", `{"email":"flow@kanso.app","password":"password123"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = serve(router, http.MethodPost, "/api/v1/auth/login", "", `{"email":"flow@kanso.app","password":"password123"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var login struct {
		Token string `json:"token"`
	}
	decode(t, w, &login)
	require.NotEmpty(t, login.Token)

	w = serve(router, http.MethodPost, "/api/v1/habits", login.Token, `{"name":"Meditate"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var habit struct {
		ID string `json:"id"`
	}
	decode(t, w, &habit)

	w = serve(router, http.MethodPost, "/api/v1/habits/"+habit.ID+"/completions/toggle", login.Token, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = serve(router, http.MethodGet, "/api/v1/stats/today", login.Token, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"completed_today":1`)

	t.Run("Metrics expose request and toggle counters", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/metrics", "", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "kanso_http_requests_total")
		assert.Contains(t, w.Body.String(), `kanso_completion_toggles_total{state="completed"} 1`)
	})
}
