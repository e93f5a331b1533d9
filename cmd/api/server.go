package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"bookstore-catalog/internal/config"
	"bookstore-catalog/pkg/container"
	"bookstore-catalog/pkg/logger"
)

// Serve builds the container, runs the HTTP server and blocks until SIGINT
// or SIGTERM, then drains in-flight requests and releases resources.
func Serve(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	initCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	appContainer, err := container.NewContainer(initCtx, cfg)
	cancel()
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        SetupRouter(appContainer),
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   60 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", map[string]interface{}{
			"port": cfg.App.Port,
			"env":  cfg.App.Environment,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("shutting down server", nil)
	case serveErr = <-errCh:
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", err)
	}
	appContainer.Cleanup(shutdownCtx)

	if serveErr != nil {
		return fmt.Errorf("listen: %w", serveErr)
	}
	logger.Info("server exited gracefully", nil)
	return nil
}
