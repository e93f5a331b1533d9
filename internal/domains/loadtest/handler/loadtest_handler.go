package handler

import (
	"errors"
	"net/http"
	"time"

	"bookstore-catalog/internal/domains/loadtest"
	"bookstore-catalog/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const defaultCleanupAge = time.Hour

type LoadTestHandler struct {
	registry *loadtest.Registry
}

func NewLoadTestHandler(registry *loadtest.Registry) *LoadTestHandler {
	return &LoadTestHandler{registry: registry}
}

func (h *LoadTestHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, loadtest.ErrJobNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, loadtest.ErrJobFinished), errors.Is(err, loadtest.ErrResultPending):
		response.ErrorResponse(c, http.StatusConflict, "CONFLICT", err.Error())
	case errors.Is(err, loadtest.ErrTooManyRunning), errors.Is(err, loadtest.ErrShuttingDown):
		response.ErrorResponse(c, http.StatusServiceUnavailable, "UNAVAILABLE", err.Error())
	default:
		response.BadRequest(c, err.Error())
	}
}

// StartLoadTest handles POST /loadtests
func (h *LoadTestHandler) StartLoadTest(c *gin.Context) {
	var cfg loadtest.Config
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&cfg); err != nil {
			response.BadRequest(c, "invalid request body: "+err.Error())
			return
		}
	}

	job, err := h.registry.Start(cfg)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Location", c.FullPath()+"/"+job.ID)
	c.JSON(http.StatusCreated, job)
}

// ListLoadTests handles GET /loadtests
func (h *LoadTestHandler) ListLoadTests(c *gin.Context) {
	c.JSON(http.StatusOK, h.registry.List())
}

// RunningLoadTests handles GET /loadtests/running
func (h *LoadTestHandler) RunningLoadTests(c *gin.Context) {
	c.JSON(http.StatusOK, h.registry.Running())
}

// ListScenarios handles GET /loadtests/scenarios
func (h *LoadTestHandler) ListScenarios(c *gin.Context) {
	c.JSON(http.StatusOK, loadtest.Builtins())
}

// GetLoadTest handles GET /loadtests/:id
func (h *LoadTestHandler) GetLoadTest(c *gin.Context) {
	job, err := h.registry.Get(c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// GetLoadTestResults handles GET /loadtests/:id/results
func (h *LoadTestHandler) GetLoadTestResults(c *gin.Context) {
	res, err := h.registry.Result(c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// CancelLoadTest handles DELETE /loadtests/:id
func (h *LoadTestHandler) CancelLoadTest(c *gin.Context) {
	if err := h.registry.Cancel(c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}

// CleanupLoadTests handles POST /loadtests/cleanup?olderThan=1h
func (h *LoadTestHandler) CleanupLoadTests(c *gin.Context) {
	age := defaultCleanupAge
	if raw := c.Query("olderThan"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			response.BadRequest(c, "olderThan must be a non-negative duration")
			return
		}
		age = d
	}
	c.JSON(http.StatusOK, gin.H{"removed": h.registry.Cleanup(age)})
}
