// Package queue wires asynq for background catalog jobs.
package queue

import (
	"encoding/json"
	"fmt"

	"bookstore-catalog/internal/config"

	"github.com/hibiken/asynq"
)

const (
	QueueDefault = "default"
	QueueLow     = "low"
)

// RedisOpt maps the shared Redis settings onto asynq's connection options.
func RedisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Host,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

func NewClient(cfg config.RedisConfig) *asynq.Client {
	return asynq.NewClient(RedisOpt(cfg))
}

// NewTask marshals payload as JSON.
func NewTask(taskType string, payload any, opts ...asynq.Option) (*asynq.Task, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", taskType, err)
	}
	return asynq.NewTask(taskType, raw, opts...), nil
}

// UnmarshalPayload decodes a task payload. Malformed payloads are never retried.
func UnmarshalPayload(t *asynq.Task, dest any) error {
	if err := json.Unmarshal(t.Payload(), dest); err != nil {
		return fmt.Errorf("unmarshal %s payload: %v: %w", t.Type(), err, asynq.SkipRetry)
	}
	return nil
}
