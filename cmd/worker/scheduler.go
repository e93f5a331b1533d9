package main

import (
	"fmt"

	"bookstore-catalog/internal/config"
	"bookstore-catalog/internal/domains/seed"
	seedJob "bookstore-catalog/internal/domains/seed/job"
	"bookstore-catalog/internal/infrastructure/queue"
	"bookstore-catalog/pkg/logger"
)

// asynqScheduler enqueues periodic seed jobs. A nil *asynqScheduler means
// no schedule is configured.
type asynqScheduler struct {
	*queue.Scheduler
}

func setupScheduler(cfg *config.Config) (*asynqScheduler, error) {
	if cfg.Worker.SeedSchedule == "" {
		return nil, nil
	}

	task, err := seedJob.NewSeedTask(seed.Payload{
		Books:   cfg.Worker.SeedBooks,
		Authors: cfg.Worker.SeedAuthors,
	})
	if err != nil {
		return nil, err
	}

	scheduler := queue.NewScheduler(queue.RedisOpt(cfg.Redis))
	if err := scheduler.Register(cfg.Worker.SeedSchedule, task); err != nil {
		return nil, fmt.Errorf("register seed schedule: %w", err)
	}

	go func() {
		logger.Info("scheduler starting", map[string]interface{}{"spec": cfg.Worker.SeedSchedule})
		if err := scheduler.Start(); err != nil {
			logger.Error("scheduler stopped", err)
		}
	}()

	return &asynqScheduler{Scheduler: scheduler}, nil
}

func (s *asynqScheduler) Shutdown() {
	if s == nil {
		return
	}
	s.Scheduler.Shutdown()
	logger.Debug("scheduler stopped")
}
