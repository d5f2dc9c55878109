// MovieDepot - Movie Catalog Ingestion and Query Backend
// Copyright 2026 MovieDepot contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviedepot/moviedepot

package api

// MoviesRequest represents the validated query parameters for the /api/movies
// endpoint. Sort parameters are deliberately absent: an unknown sort_by or
// sort_order is not a client error, it silently falls back to the default
// ordering in the store layer.
//
// Fields:
//   - Page: 1-based page number (min 1)
//   - PerPage: results per page (1-100)
//   - Year: optional equality filter, a 4-digit year as sent by clients
//   - Language: optional equality filter on the language code
type MoviesRequest struct {
	Page     int    `validate:"min=1"`
	PerPage  int    `validate:"min=1,max=100"`
	Year     string `validate:"omitempty,max=10"`
	Language string `validate:"omitempty,max=50"`
}
