// MovieDepot - Movie Catalog Ingestion and Query Backend
// Copyright 2026 MovieDepot contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviedepot/moviedepot

// Package main is the entry point for the MovieDepot server.
//
// MovieDepot ingests movie metadata CSV exports (IMDb TSV-style and TMDB-style
// column layouts) into DuckDB and serves a paginated, filtered, sorted query
// API over the resulting catalog.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: load settings from environment variables and config files (Koanf v2)
//  2. Database: open DuckDB and create the movies schema
//  3. Importer: wire the CSV ingestion pipeline to the store
//  4. HTTP server: chi router with upload, query, and diagnostics endpoints
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority
// wins): environment variables, config file (config.yaml), built-in defaults.
// Commonly tuned settings:
//
//   - HTTP_PORT: listen port (default 8080)
//   - DUCKDB_PATH: database file path (default /data/moviedepot.duckdb)
//   - UPLOAD_DIR: transient upload directory (default /tmp/moviedepot_uploads)
//   - INGEST_BATCH_SIZE: rows per insert batch (default 1000)
//   - LOG_LEVEL, LOG_FORMAT: zerolog settings
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM: it stops
// accepting new connections, waits up to 10 seconds for in-flight requests
// (an in-progress ingestion included), then closes the database.
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

	"github.com/moviedepot/moviedepot/internal/api"
	"github.com/moviedepot/moviedepot/internal/config"
	"github.com/moviedepot/moviedepot/internal/database"
	"github.com/moviedepot/moviedepot/internal/ingest"
	"github.com/moviedepot/moviedepot/internal/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("upload_dir", cfg.Upload.Dir).
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
	logging.Info().Msg("Database initialized successfully")

	importer := ingest.NewImporter(&cfg.Ingest, db)
	handler := api.NewHandler(cfg, db, importer)
	mw := api.NewMiddleware(&cfg.Security)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      api.NewRouter(handler, mw),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		errCh <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server error")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logging.Error().Err(err).Msg("HTTP server shutdown error")
	}

	logging.Info().Msg("Application stopped gracefully")
}
