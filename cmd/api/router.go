package main

import (
	"context"
	"net/http"
	"time"

	"bookstore-catalog/internal/shared/middleware"
	"bookstore-catalog/pkg/container"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.ClientIP(),
		middleware.Tracing(),
		middleware.Metrics(c.Metrics),
		middleware.Logger(),
		middleware.CORS(c.Config.App.CORSOrigins),
	)

	router.GET("/health", healthCheckHandler(c))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(c.Metrics.Registry, promhttp.HandlerOpts{})))
	router.POST("/seed-data", c.SeedHandler.SeedSamples)

	v1 := router.Group("/api/v1")
	{
		setupBookRoutes(v1, c)
		setupAuthorRoutes(v1, c)
		setupSummaryRoutes(v1, c)
		setupLoadTestRoutes(v1, c)
		setupSeedRoutes(v1, c)
	}

	return router
}

// ========================================
// BOOK ROUTES
// ========================================
func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container) {
	books := v1.Group("/books")
	{
		books.GET("", c.BookHandler.ListBooks)
		books.GET("/search", c.BookHandler.SearchBooks)
		books.GET("/export", c.BookHandler.ExportBooks)
		books.GET("/:id", c.BookHandler.GetBook)
		books.POST("", c.BookHandler.CreateBook)
		books.PUT("/:id", c.BookHandler.UpdateBook)
		books.PATCH("/:id", c.BookHandler.PatchBook)
		books.DELETE("/:id", c.BookHandler.DeleteBook)
		books.POST("/:id/generate-summary", c.SummaryHandler.GenerateSummary)
	}
}

// ========================================
// AUTHOR ROUTES
// ========================================
func setupAuthorRoutes(v1 *gin.RouterGroup, c *container.Container) {
	authors := v1.Group("/authors")
	{
		authors.GET("", c.AuthorHandler.ListAuthors)
		authors.GET("/search", c.AuthorHandler.SearchAuthors)
		authors.GET("/:id", c.AuthorHandler.GetAuthor)
		authors.POST("", c.AuthorHandler.CreateAuthor)
		authors.PUT("/:id", c.AuthorHandler.UpdateAuthor)
		authors.PATCH("/:id", c.AuthorHandler.PatchAuthor)
		authors.DELETE("/:id", c.AuthorHandler.DeleteAuthor)
	}
}

func setupSummaryRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.GET("/summary/providers", c.SummaryHandler.ListProviders)
}

// ========================================
// LOAD TEST ROUTES
// ========================================
func setupLoadTestRoutes(v1 *gin.RouterGroup, c *container.Container) {
	loadtests := v1.Group("/loadtests")
	{
		loadtests.POST("", c.LoadTestHandler.StartLoadTest)
		loadtests.GET("", c.LoadTestHandler.ListLoadTests)
		loadtests.GET("/running", c.LoadTestHandler.RunningLoadTests)
		loadtests.GET("/scenarios", c.LoadTestHandler.ListScenarios)
		loadtests.POST("/cleanup", c.LoadTestHandler.CleanupLoadTests)
		loadtests.GET("/:id", c.LoadTestHandler.GetLoadTest)
		loadtests.GET("/:id/results", c.LoadTestHandler.GetLoadTestResults)
		loadtests.DELETE("/:id", c.LoadTestHandler.CancelLoadTest)
	}
}

func setupSeedRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.POST("/seed-jobs", c.SeedHandler.EnqueueSeedJob)
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		h := appCtx.Health(ctx)

		status := "healthy"
		statusCode := http.StatusOK
		storeStatus, cacheStatus := "ok", "ok"

		if h.Cache != nil {
			status = "degraded"
			cacheStatus = "error: " + h.Cache.Error()
		}
		if h.Store != nil {
			status = "unhealthy"
			statusCode = http.StatusServiceUnavailable
			storeStatus = "error: " + h.Store.Error()
		}

		c.JSON(statusCode, gin.H{
			"status":      status,
			"version":     appCtx.Config.App.Version,
			"environment": appCtx.Config.App.Environment,
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"services": gin.H{
				"store": gin.H{"driver": appCtx.Config.Database.Driver, "status": storeStatus},
				"cache": gin.H{"driver": appCtx.Config.Cache.Driver, "status": cacheStatus},
			},
		})
	}
}
