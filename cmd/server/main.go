// Olive - Mobile Marketing Intelligence and Analytics
// Copyright 2026 Olive Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/olivehq/olive

// Command server runs the Olive analytics API: it opens the embedded
// database, generates the synthetic dataset when needed, and serves the
// dashboard endpoints under a supervisor tree.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/olivehq/olive/internal/api"
	"github.com/olivehq/olive/internal/auth"
	"github.com/olivehq/olive/internal/config"
	"github.com/olivehq/olive/internal/database"
	"github.com/olivehq/olive/internal/generator"
	"github.com/olivehq/olive/internal/logging"
	"github.com/olivehq/olive/internal/ml"
	"github.com/olivehq/olive/internal/supervisor"
	"github.com/olivehq/olive/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Config errors are reported through the default logger since
		// the configured one is not available yet.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("auth_mode", cfg.Security.AuthMode).
		Str("environment", cfg.Server.Environment).
		Msg("Configuration loaded")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Generator.Enabled {
		if err := generator.New(db, &cfg.Generator).Run(ctx); err != nil {
			logging.Fatal().Err(err).Msg("Dataset generation failed")
		}
	} else {
		logging.Info().Msg("Dataset generation disabled")
	}

	mlService := ml.New(&cfg.ML)

	authenticator, err := auth.New(&cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize authentication")
	}
	if !authenticator.Enabled() {
		logging.Warn().Msg("Authentication is DISABLED (AUTH_MODE=none); all endpoints are publicly accessible")
	}

	handler := api.NewHandler(db, cfg, mlService, authenticator)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: cfg.Server.Timeout,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
	}

	treeCfg := supervisor.DefaultTreeConfig()
	treeCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout
	tree := supervisor.NewTree(logging.NewSlogLogger(), treeCfg)

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	if cfg.Signals.Enabled {
		tree.AddJobService(services.NewSignalDetectorService(db, handler.Cache(), &cfg.Signals))
		logging.Info().Dur("sweep_interval", cfg.Signals.SweepInterval).Msg("Signal detector service added")
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Server stopped gracefully")
}
