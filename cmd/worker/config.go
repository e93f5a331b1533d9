package main

import (
	"context"

	"bookstore-catalog/internal/config"
	"bookstore-catalog/internal/infrastructure/queue"
	"bookstore-catalog/pkg/logger"

	"github.com/hibiken/asynq"
)

// queueWeights gives interactive seed requests priority over scheduled ones.
var queueWeights = map[string]int{
	queue.QueueDefault: 10,
	queue.QueueLow:     5,
}

// serverConfig builds the asynq server settings from the shared configuration.
func serverConfig(cfg *config.Config) asynq.Config {
	concurrency := cfg.Worker.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return asynq.Config{
		Queues:      queueWeights,
		Concurrency: concurrency,
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			retried, _ := asynq.GetRetryCount(ctx)
			maxRetry, _ := asynq.GetMaxRetry(ctx)
			logger.Warn("task failed", map[string]interface{}{
				"type":      task.Type(),
				"error":     err.Error(),
				"retried":   retried,
				"max_retry": maxRetry,
			})
		}),
	}
}
