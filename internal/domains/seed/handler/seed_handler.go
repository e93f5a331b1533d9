package handler

import (
	"context"
	"net/http"

	"bookstore-catalog/internal/domains/seed"
	"bookstore-catalog/internal/domains/seed/job"
	"bookstore-catalog/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

// Enqueuer is satisfied by *asynq.Client.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type SeedHandler struct {
	seeder *seed.Seeder
	queue  Enqueuer
}

// NewSeedHandler builds the handler. A nil queue disables background seed jobs.
func NewSeedHandler(seeder *seed.Seeder, queue Enqueuer) *SeedHandler {
	return &SeedHandler{seeder: seeder, queue: queue}
}

// SeedSamples handles POST /seed-data
func (h *SeedHandler) SeedSamples(c *gin.Context) {
	n, err := h.seeder.SeedSamples(c.Request.Context())
	if err != nil {
		response.HandleError(c, err, nil)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Sample data seeded successfully",
		"books":   n.Books,
		"authors": n.Authors,
	})
}

// EnqueueSeedJob handles POST /seed-jobs
func (h *SeedHandler) EnqueueSeedJob(c *gin.Context) {
	if h.queue == nil {
		response.ErrorResponse(c, http.StatusServiceUnavailable, "QUEUE_UNAVAILABLE", "background jobs are disabled")
		return
	}

	var p seed.Payload
	if err := c.ShouldBindJSON(&p); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if err := p.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	task, err := job.NewSeedTask(p)
	if err != nil {
		response.HandleError(c, err, nil)
		return
	}
	info, err := h.queue.EnqueueContext(c.Request.Context(), task)
	if err != nil {
		response.HandleError(c, err, nil)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{
		"taskId":  info.ID,
		"queue":   info.Queue,
		"books":   p.Books,
		"authors": p.Authors,
	})
}
