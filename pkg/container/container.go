package container

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"bookstore-catalog/internal/config"
	authorHandler "bookstore-catalog/internal/domains/author/handler"
	authorModel "bookstore-catalog/internal/domains/author/model"
	authorRepo "bookstore-catalog/internal/domains/author/repository"
	authorService "bookstore-catalog/internal/domains/author/service"
	bookHandler "bookstore-catalog/internal/domains/book/handler"
	bookModel "bookstore-catalog/internal/domains/book/model"
	bookRepo "bookstore-catalog/internal/domains/book/repository"
	bookService "bookstore-catalog/internal/domains/book/service"
	"bookstore-catalog/internal/domains/catalog"
	"bookstore-catalog/internal/domains/loadtest"
	loadtestHandler "bookstore-catalog/internal/domains/loadtest/handler"
	"bookstore-catalog/internal/domains/seed"
	seedHandler "bookstore-catalog/internal/domains/seed/handler"
	"bookstore-catalog/internal/domains/summary"
	summaryHandler "bookstore-catalog/internal/domains/summary/handler"
	infraCache "bookstore-catalog/internal/infrastructure/cache"
	"bookstore-catalog/internal/infrastructure/database"
	"bookstore-catalog/internal/infrastructure/queue"
	"bookstore-catalog/internal/infrastructure/telemetry"
	"bookstore-catalog/pkg/cache"
	"bookstore-catalog/pkg/logger"

	"github.com/hibiken/asynq"
)

const (
	loadTestRequestTimeout = 10 * time.Second
	loadTestCleanupEvery   = 5 * time.Minute
	loadTestRetention      = time.Hour
)

// Container wires every catalog dependency for one process.
//
// Initialization order matters:
//  1. Infrastructure (store, cache, metrics, queue)
//  2. Repositories
//  3. Services
//  4. Handlers
type Container struct {
	Config  *config.Config
	Metrics *telemetry.Metrics

	// Exactly one of PG / SQLite is set, depending on STORE_DRIVER.
	PG     *database.PostgresDB
	SQLite *sql.DB

	Cache cache.Cache
	Redis *infraCache.RedisClient
	Queue *asynq.Client

	BookRepo   bookRepo.RepositoryInterface
	AuthorRepo authorRepo.RepositoryInterface

	BookService    *bookService.BookService
	AuthorService  *authorService.AuthorService
	SummaryService *summary.Service
	Seeder         *seed.Seeder
	LoadTests      *loadtest.Registry

	BookHandler     *bookHandler.BookHandler
	AuthorHandler   *authorHandler.AuthorHandler
	SummaryHandler  *summaryHandler.SummaryHandler
	SeedHandler     *seedHandler.SeedHandler
	LoadTestHandler *loadtestHandler.LoadTestHandler
}

// NewContainer connects the store and cache described by cfg and builds the
// service graph on top of them. The store is required; the cache is not.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{
		Config:  cfg,
		Metrics: telemetry.NewMetrics(),
	}

	if err := c.initStore(ctx); err != nil {
		c.Cleanup(ctx)
		return nil, fmt.Errorf("failed to init store: %w", err)
	}

	if err := c.initCache(ctx); err != nil {
		c.Cleanup(ctx)
		return nil, fmt.Errorf("failed to init cache: %w", err)
	}

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	logger.Info("container initialized", map[string]interface{}{
		"store": cfg.Database.Driver,
		"cache": cfg.Cache.Driver,
		"queue": c.Queue != nil,
	})
	return c, nil
}

func (c *Container) initStore(ctx context.Context) error {
	switch c.Config.Database.Driver {
	case "sqlite":
		db, err := database.OpenSQLite(ctx, c.Config.SQLite.Path)
		if err != nil {
			return err
		}
		c.SQLite = db
		return nil

	default:
		pg := database.NewPostgresDB(c.Config.PostgresConfig())
		if err := pg.Connect(ctx); err != nil {
			return err
		}
		c.PG = pg
		return pg.Migrate(ctx)
	}
}

// initCache never fails on an unreachable Redis: the catalog keeps serving
// from the store and cache errors are counted as failures.
func (c *Container) initCache(ctx context.Context) error {
	switch c.Config.Cache.Driver {
	case "none":
		c.Cache = cache.Nop{}

	case "memory":
		mc, err := infraCache.NewMemoryCache(infraCache.MemoryConfig{
			Capacity: c.Config.Cache.Capacity,
			Shards:   c.Config.Cache.Shards,
		})
		if err != nil {
			return err
		}
		c.Cache = mc

	default:
		c.Redis = infraCache.NewRedisClient(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
		if err := c.Redis.Connect(ctx); err != nil {
			logger.Warn("redis unavailable, continuing without a warm cache", map[string]interface{}{
				"addr":  c.Config.Redis.Host,
				"error": err.Error(),
			})
		}
		c.Cache = infraCache.NewRedisCache(c.Redis)
		// Background seeding rides on the same Redis.
		c.Queue = queue.NewClient(c.Config.Redis)
	}
	return nil
}

func (c *Container) initRepositories() {
	if c.SQLite != nil {
		c.BookRepo = bookRepo.NewSQLiteRepository(c.SQLite)
		c.AuthorRepo = authorRepo.NewSQLiteRepository(c.SQLite)
		return
	}
	c.BookRepo = bookRepo.NewPostgresRepository(c.PG.Pool)
	c.AuthorRepo = authorRepo.NewPostgresRepository(c.PG.Pool)
}

func (c *Container) initServices() {
	bookPolicy := catalog.NewPolicy(bookModel.EntityName, c.Config.Cache.BookTTL, c.Cache, c.Metrics)
	authorPolicy := catalog.NewPolicy(authorModel.EntityName, c.Config.Cache.AuthorTTL, c.Cache, c.Metrics)

	c.BookService = bookService.NewBookService(c.BookRepo, bookPolicy)
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo, authorPolicy)
	c.SummaryService = summary.NewService(c.BookService, summary.NewRegistryFromConfig(c.Config.AI))
	c.Seeder = seed.NewSeeder(c.BookService, c.AuthorService)

	runner := loadtest.NewRunner(c.Config.App.BaseURL, loadTestRequestTimeout)
	c.LoadTests = loadtest.NewRegistry(runner.Run, c.Config.Worker.MaxLoadTests)
	c.LoadTests.CleanupEvery(loadTestCleanupEvery, loadTestRetention)
}

func (c *Container) initHandlers() {
	c.BookHandler = bookHandler.NewBookHandler(c.BookService, "/api/v1/books")
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService, "/api/v1/authors")
	c.SummaryHandler = summaryHandler.NewSummaryHandler(c.SummaryService)
	c.LoadTestHandler = loadtestHandler.NewLoadTestHandler(c.LoadTests)

	// A nil *asynq.Client must not become a non-nil Enqueuer.
	var enqueuer seedHandler.Enqueuer
	if c.Queue != nil {
		enqueuer = c.Queue
	}
	c.SeedHandler = seedHandler.NewSeedHandler(c.Seeder, enqueuer)
}

// Health reports store and cache reachability. The store is authoritative;
// a failing cache only degrades the service.
type Health struct {
	Store error
	Cache error
}

func (c *Container) Health(ctx context.Context) Health {
	var h Health
	switch {
	case c.SQLite != nil:
		h.Store = c.SQLite.PingContext(ctx)
	case c.PG != nil:
		h.Store = c.PG.Ping(ctx)
	default:
		h.Store = fmt.Errorf("store not initialized")
	}
	if c.Cache != nil {
		h.Cache = c.Cache.Ping(ctx)
	}
	return h
}

// Cleanup stops running load tests and releases connections.
// Call it during graceful shutdown.
func (c *Container) Cleanup(ctx context.Context) {
	if c.LoadTests != nil {
		if err := c.LoadTests.Shutdown(ctx); err != nil {
			logger.Error("load tests did not stop in time", err)
		}
	}

	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil {
			logger.Error("failed to close queue client", err)
		}
	}

	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			logger.Error("failed to close cache", err)
		}
	}

	if c.PG != nil {
		if err := c.PG.Close(); err != nil {
			logger.Error("failed to close postgres", err)
		}
	}
	if c.SQLite != nil {
		if err := c.SQLite.Close(); err != nil {
			logger.Error("failed to close sqlite", err)
		}
	}

	logger.Debug("container cleanup completed")
}
