// Attendly - Event Discovery, Review, and Recommendation Platform
// Copyright 2026 The Attendly Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attendly/attendly

// Package main is the entry point for the Attendly server.
//
// Attendly is a self-hosted event discovery platform where users review
// events, plan attendance on a personal calendar, and receive
// personalized event recommendations derived from those signals.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: layered loading from defaults, config.yaml, and
//     ATTENDLY_* environment variables (Koanf v2)
//  2. Database: DuckDB storage for users, events, reviews, calendars,
//     recommendations, and notifications
//  3. Recommendation engine: preference profiles, candidate scoring,
//     and popularity ranking
//  4. Notification bus: in-process pub/sub fanning generation events
//     out to stored notifications
//  5. Scheduler: periodic background recommendation refresh
//  6. HTTP server: REST API on Chi with JWT authentication
//
// All long-running components run under a suture supervision tree and
// restart on failure with backoff.
//
// # Configuration
//
// Environment variables use the ATTENDLY_ prefix with "__" between
// sections, for example:
//
//	export ATTENDLY_SERVER__PORT=8380
//	export ATTENDLY_SECURITY__JWT_SECRET=$(openssl rand -base64 32)
//	export ATTENDLY_DATABASE__PATH=/data/attendly.duckdb
//	export ATTENDLY_DATABASE__SEED_MOCK_DATA=true
//	./attendly
//
// # Signal Handling
//
// The server shuts down gracefully on SIGINT and SIGTERM: it stops
// accepting connections, drains in-flight requests within the shutdown
// timeout, then closes the bus and the database.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/attendly/attendly/internal/api"
	"github.com/attendly/attendly/internal/auth"
	"github.com/attendly/attendly/internal/config"
	"github.com/attendly/attendly/internal/database"
	"github.com/attendly/attendly/internal/logging"
	"github.com/attendly/attendly/internal/notify"
	"github.com/attendly/attendly/internal/recommend"
	"github.com/attendly/attendly/internal/scheduler"
	"github.com/attendly/attendly/internal/supervisor"
	"github.com/attendly/attendly/internal/supervisor/services"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("db_path", cfg.Database.Path).
		Bool("scheduler_enabled", cfg.Scheduler.Enabled).
		Msg("Starting Attendly")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	engine, err := recommend.NewEngine(&cfg.Recommend, db, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}

	tokens, err := auth.NewTokenManager(cfg.Security.JWTSecret, cfg.Security.SessionTimeout)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create token manager")
	}
	hasher := auth.NewPasswordHasher(cfg.Security.BcryptCost)

	// Notification plumbing: bus plus the consumer that stores messages.
	bus := notify.NewBus(logging.Logger())
	defer func() {
		if err := bus.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing notification bus")
		}
	}()
	consumer := notify.NewConsumer(bus, db, logging.Logger())

	// Context canceled by SIGINT/SIGTERM drives the whole tree down.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddMessagingService(consumer)
	logging.Info().Msg("Notification consumer added to supervisor tree")

	if cfg.Scheduler.Enabled {
		sched := scheduler.New(cfg.Scheduler, engine, db, bus, logging.Logger())
		tree.AddJobService(sched)
		logging.Info().
			Dur("interval", cfg.Scheduler.Interval).
			Msg("Recommendation scheduler added to supervisor tree")
	}

	handler := api.NewHandler(db, engine, bus, tokens, hasher, cfg)
	router := api.NewRouter(handler, tokens, api.NewChiMiddleware(&api.ChiMiddlewareConfig{
		CORSAllowedOrigins: cfg.Security.CORSOrigins,
		CORSAllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		CORSAllowedHeaders: []string{"Content-Type", "Authorization"},
		CORSMaxAge:         86400,
		RateLimitRequests:  cfg.Security.RateLimitReqs,
		RateLimitWindow:    cfg.Security.RateLimitWindow,
		RateLimitDisabled:  cfg.Security.RateLimitDisabled,
	}))

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Wait for the error channel to close (supervisor finished)
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
