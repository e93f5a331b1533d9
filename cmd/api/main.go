package main

import (
	"context"
	"os"

	"bookstore-catalog/internal/config"
	"bookstore-catalog/internal/infrastructure/telemetry"
	"bookstore-catalog/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logger.Init(cfg.App.Environment, cfg.App.LogLevel)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	shutdownTracing, err := telemetry.Setup(context.Background(), cfg.App.Name, cfg.App.Version, cfg.Telemetry.OTLPEndpoint)
	if err != nil {
		// Tracing is optional; keep serving without it.
		logger.Error("failed to set up tracing", err)
	}

	code := 0
	if err := Serve(cfg); err != nil {
		logger.Error("server exited with error", err)
		code = 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := shutdownTracing(ctx); err != nil {
		logger.Error("failed to flush traces", err)
	}
	os.Exit(code)
}
