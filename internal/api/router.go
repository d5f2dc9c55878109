// MovieDepot - Movie Catalog Ingestion and Query Backend
// Copyright 2026 MovieDepot contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviedepot/moviedepot

package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the chi router with the full middleware stack and all
// routes.
func NewRouter(handler *Handler, mw *Middleware) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware. CORS must be global to handle OPTIONS preflight.
	r.Use(RequestID())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(mw.CORS())

	// Liveness and metrics stay outside the rate limiter so monitoring
	// never gets throttled out.
	r.Get("/", handler.HandleIndex)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(mw.RateLimit())
		r.Use(RequestMetrics())

		r.Route("/upload", func(r chi.Router) {
			r.Post("/", handler.HandleUpload)
			r.Get("/status", handler.HandleUploadStatus)
		})

		r.Route("/movies", func(r chi.Router) {
			r.Get("/", handler.HandleMovies)
			r.Get("/filters", handler.HandleFilters)
			r.Get("/debug", handler.HandleDebug)
		})
	})

	return r
}
