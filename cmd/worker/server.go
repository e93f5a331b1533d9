package main

import (
	"fmt"

	"bookstore-catalog/internal/config"
	"bookstore-catalog/internal/infrastructure/queue"
	"bookstore-catalog/pkg/logger"

	"github.com/hibiken/asynq"
)

// asynqServer wraps asynq.Server with the registered mux.
type asynqServer struct {
	*asynq.Server
}

// setupAsynqServer starts processing tasks in the background. Signals are
// handled by main, so Start is used instead of Run.
func setupAsynqServer(cfg *config.Config, handlers *HandlerRegistry) (*asynqServer, error) {
	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)

	srv := asynq.NewServer(queue.RedisOpt(cfg.Redis), serverConfig(cfg))
	if err := srv.Start(mux); err != nil {
		return nil, fmt.Errorf("start asynq server: %w", err)
	}

	logger.Info("worker started", map[string]interface{}{"concurrency": cfg.Worker.Concurrency})
	return &asynqServer{Server: srv}, nil
}

// Shutdown stops fetching new tasks and waits for in-flight ones.
func (s *asynqServer) Shutdown() {
	s.Server.Shutdown()
	logger.Debug("worker stopped")
}
