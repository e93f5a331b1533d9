package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookstore-catalog/internal/config"
	"bookstore-catalog/pkg/container"
	"bookstore-catalog/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger.Init(cfg.App.Environment, cfg.App.LogLevel)
	gin.SetMode(gin.ReleaseMode)

	if err := run(cfg); err != nil {
		logger.Error("worker exited with error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	initCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	c, err := container.NewContainer(initCtx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
		defer cancel()
		c.Cleanup(cleanupCtx)
	}()

	checker := newHealthChecker(cfg, c)
	defer checker.Close()
	if err := checker.checkAll(initCtx); err != nil {
		return err
	}

	srv, err := setupAsynqServer(cfg, initializeHandlers(c))
	if err != nil {
		return err
	}

	scheduler, err := setupScheduler(cfg)
	if err != nil {
		srv.Shutdown()
		return err
	}

	health := startHealthCheckServer(checker, cfg.Worker.HealthPort)

	<-ctx.Done()
	logger.Info("shutting down worker", nil)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancelShutdown()
	if err := health.Shutdown(shutdownCtx); err != nil {
		logger.Error("health server forced to shutdown", err)
	}
	scheduler.Shutdown()
	srv.Shutdown()
	return nil
}
