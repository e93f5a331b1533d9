package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"bookstore-catalog/internal/config"
	"bookstore-catalog/pkg/container"
	"bookstore-catalog/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/redis/go-redis/v9/maintnotifications"
)

// HealthChecker performs startup and liveness checks.
type HealthChecker struct {
	redisClient *redis.Client
	container   *container.Container
}

func newHealthChecker(cfg *config.Config, c *container.Container) *HealthChecker {
	return &HealthChecker{
		redisClient: redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			MaintNotificationsConfig: &maintnotifications.Config{
				Mode: maintnotifications.ModeDisabled,
			},
		}),
		container: c,
	}
}

// checkAll runs every check in order and stops at the first failure.
func (h *HealthChecker) checkAll(ctx context.Context) error {
	checks := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"redis", h.checkRedis},
		{"store", h.checkStore},
	}

	for _, check := range checks {
		if err := check.fn(ctx); err != nil {
			return fmt.Errorf("%s check failed: %w", check.name, err)
		}
		logger.Debug(check.name + " check ok")
	}
	return nil
}

func (h *HealthChecker) checkRedis(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return h.redisClient.Ping(ctx).Err()
}

func (h *HealthChecker) checkStore(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return h.container.Health(ctx).Store
}

func (h *HealthChecker) Close() error {
	return h.redisClient.Close()
}

// router serves /health (liveness with dependency status) and /ready.
func (h *HealthChecker) router() *gin.Engine {
	r := gin.New()
	r.GET("/health", func(c *gin.Context) {
		if err := h.checkAll(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "DOWN",
				"service": "bookstore-catalog-worker",
				"error":   err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "UP", "service": "bookstore-catalog-worker"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "READY"})
	})
	return r
}

// startHealthCheckServer serves the health router on port until Shutdown.
func startHealthCheckServer(h *HealthChecker, port string) *http.Server {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           h.router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("health server starting", map[string]interface{}{"port": port})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", err)
		}
	}()
	return srv
}
