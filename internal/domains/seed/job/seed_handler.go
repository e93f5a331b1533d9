package job

import (
	"context"
	"fmt"

	"bookstore-catalog/internal/domains/seed"
	"bookstore-catalog/internal/infrastructure/queue"
	"bookstore-catalog/pkg/logger"

	"github.com/hibiken/asynq"
)

type SeedCatalogHandler struct {
	seeder *seed.Seeder
}

func NewSeedCatalogHandler(seeder *seed.Seeder) *SeedCatalogHandler {
	return &SeedCatalogHandler{seeder: seeder}
}

func (h *SeedCatalogHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload seed.Payload
	if err := queue.UnmarshalPayload(t, &payload); err != nil {
		return err
	}
	if err := payload.Validate(); err != nil {
		return fmt.Errorf("invalid seed payload: %v: %w", err, asynq.SkipRetry)
	}

	logger.Info("Processing seed task", map[string]interface{}{
		"books":   payload.Books,
		"authors": payload.Authors,
	})

	n, err := h.seeder.SeedRandom(ctx, payload)
	if err != nil {
		logger.Error("Seed task failed", err)
		return fmt.Errorf("seed catalog: %w", err)
	}

	logger.Info("Seeded catalog", map[string]interface{}{
		"books":   n.Books,
		"authors": n.Authors,
	})
	return nil
}

// NewSeedTask builds the task enqueued by the API and the scheduler.
func NewSeedTask(p seed.Payload) (*asynq.Task, error) {
	return queue.NewTask(seed.TypeSeedCatalog, p, asynq.Queue(queue.QueueLow), asynq.MaxRetry(2))
}
