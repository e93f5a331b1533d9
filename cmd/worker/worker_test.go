package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"bookstore-catalog/internal/config"
	"bookstore-catalog/internal/infrastructure/queue"
	"bookstore-catalog/pkg/container"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, redisAddr string) *config.Config {
	t.Helper()
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "worker.db"))
	t.Setenv("CACHE_DRIVER", "memory")
	t.Setenv("REDIS_HOST", redisAddr)

	cfg, err := config.ParseEnv()
	require.NoError(t, err)
	return cfg
}

func TestServerConfig(t *testing.T) {
	cfg := testConfig(t, "localhost:6379")
	cfg.Worker.Concurrency = 0

	sc := serverConfig(cfg)
	assert.Equal(t, 1, sc.Concurrency)
	assert.Equal(t, 10, sc.Queues[queue.QueueDefault])
	assert.Equal(t, 5, sc.Queues[queue.QueueLow])
	assert.NotNil(t, sc.ErrorHandler)
}

func TestSetupSchedulerDisabledWithoutSpec(t *testing.T) {
	cfg := testConfig(t, "localhost:6379")

	s, err := setupScheduler(cfg)
	require.NoError(t, err)
	assert.Nil(t, s)
	s.Shutdown() // nil-safe
}

func TestSetupSchedulerRejectsBadSpec(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(t, mr.Addr())
	cfg.Worker.SeedSchedule = "not a cron spec"

	_, err := setupScheduler(cfg)
	assert.Error(t, err)
}

func TestHandlersRegistered(t *testing.T) {
	cfg := testConfig(t, "localhost:6379")
	c, err := container.NewContainer(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { c.Cleanup(context.Background()) })

	mux := asynq.NewServeMux()
	initializeHandlers(c).RegisterHandlers(mux)

	h, pattern := mux.Handler(asynq.NewTask("catalog:seed", nil))
	assert.NotNil(t, h)
	assert.Equal(t, "catalog:seed", pattern)
}

func TestHealthRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)
	cfg := testConfig(t, mr.Addr())

	c, err := container.NewContainer(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { c.Cleanup(context.Background()) })

	checker := newHealthChecker(cfg, c)
	t.Cleanup(func() { checker.Close() })
	r := checker.router()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"UP"`)

	mr.Close()
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "redis check failed")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
