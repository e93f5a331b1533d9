package queue

import (
	"time"

	"bookstore-catalog/pkg/logger"

	"github.com/hibiken/asynq"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(opt asynq.RedisClientOpt) *Scheduler {
	scheduler := asynq.NewScheduler(
		opt,
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)
	return &Scheduler{scheduler: scheduler}
}

// Register enqueues task on every tick of the cron spec.
func (s *Scheduler) Register(spec string, task *asynq.Task, opts ...asynq.Option) error {
	entryID, err := s.scheduler.Register(spec, task, opts...)
	if err != nil {
		logger.Error("Failed to register periodic task", err)
		return err
	}

	logger.Info("Registered periodic task", map[string]interface{}{
		"type":     task.Type(),
		"spec":     spec,
		"entry_id": entryID,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
