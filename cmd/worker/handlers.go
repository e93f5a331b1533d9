package main

import (
	"bookstore-catalog/internal/domains/seed"
	seedJob "bookstore-catalog/internal/domains/seed/job"
	"bookstore-catalog/pkg/container"

	"github.com/hibiken/asynq"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	seedCatalog *seedJob.SeedCatalogHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		seedCatalog: seedJob.NewSeedCatalogHandler(c.Seeder),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(seed.TypeSeedCatalog, h.seedCatalog.ProcessTask)
}
