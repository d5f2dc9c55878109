// MovieDepot - Movie Catalog Ingestion and Query Backend
// Copyright 2026 MovieDepot contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviedepot/moviedepot

// Package api provides the HTTP surface: upload, movie listing, filter
// discovery, and diagnostics, served over chi.
package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/moviedepot/moviedepot/internal/logging"
	"github.com/moviedepot/moviedepot/internal/models"
)

// respondJSON sends a JSON response with proper headers.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")

	data, err := json.Marshal(v)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondError sends an ErrorResponse body. The wire message stays generic;
// err carries the detail into the log only when details is empty.
func respondError(w http.ResponseWriter, status int, message, details string, err error) {
	if err != nil {
		logging.Error().Err(err).Int("status", status).Str("message", message).Msg("API error")
	}

	respondJSON(w, status, models.ErrorResponse{
		Error:   message,
		Details: details,
	})
}
