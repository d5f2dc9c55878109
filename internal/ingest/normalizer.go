// MovieDepot - Movie Catalog Ingestion and Query Backend
// Copyright 2026 MovieDepot contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviedepot/moviedepot

package ingest

import (
	"strconv"
	"strings"
	"time"

	"github.com/moviedepot/moviedepot/internal/models"
)

// Normalizer converts one mapped row into a MovieRecord, or rejects it.
// Rejection is silent: the orchestrator counts it, nothing errors.
type Normalizer struct {
	// now supplies the ingestion-time clock for the unparseable-date year
	// fallback. Injected so tests can pin it.
	now func() time.Time
}

// NewNormalizer creates a normalizer using the wall clock.
func NewNormalizer() *Normalizer {
	return &Normalizer{now: time.Now}
}

// Normalize applies the per-row transformation: type coercion, derived-field
// computation, and the drop-invalid-row policy. It returns the record and true,
// or a zero record and false when the row has no usable title.
func (n *Normalizer) Normalize(mapped Row) (models.MovieRecord, bool) {
	title := mapped[fieldTitle]
	if title == "" {
		return models.MovieRecord{}, false
	}

	rec := models.MovieRecord{
		Title:  title,
		Genres: splitGenres(mapped[fieldGenres]),
	}

	rec.IMDBID = optional(mapped, fieldIMDBID)
	rec.OriginalTitle = optional(mapped, fieldOriginalTitle)
	rec.Type = optional(mapped, fieldType)
	rec.OriginalLanguage = optional(mapped, fieldOriginalLanguage)
	rec.Overview = optional(mapped, fieldOverview)
	rec.VoteCount = optional(mapped, fieldVoteCount)
	rec.Budget = optional(mapped, fieldBudget)
	rec.ProductionCompanies = optional(mapped, fieldProductionCompanies)
	rec.ProductionCompanyID = optional(mapped, fieldProductionCompanyID)
	rec.Homepage = optional(mapped, fieldHomepage)
	rec.GenreID = optional(mapped, fieldGenreID)
	rec.Languages = optional(mapped, fieldLanguages)
	rec.IsAdult = optional(mapped, fieldIsAdult)

	// language falls back to original_language when unset.
	rec.Language = optional(mapped, fieldLanguage)
	if rec.Language == nil {
		rec.Language = rec.OriginalLanguage
	}

	if releaseDate, ok := mapped[fieldReleaseDate]; ok && releaseDate != "" {
		rec.ReleaseDate = &releaseDate
		year := n.deriveYear(releaseDate)
		rec.Year = &year
	} else if rawYear, ok := mapped[fieldYear]; ok && rawYear != "" {
		// startYear-style sources supply the year directly. Unparseable
		// values stay absent; the current-year fallback applies only when a
		// release date was present.
		if year, ok := parseYear(rawYear); ok {
			rec.Year = &year
		}
	}

	if rawRatings, ok := mapped[fieldRatings]; ok && rawRatings != "" {
		ratings, err := strconv.ParseFloat(strings.TrimSpace(rawRatings), 64)
		if err != nil {
			ratings = 0
		}
		rec.Ratings = &ratings
	}

	if rawRuntime, ok := mapped[fieldRuntimeMinutes]; ok && rawRuntime != "" {
		if minutes, err := strconv.ParseFloat(strings.TrimSpace(rawRuntime), 64); err == nil {
			m := int(minutes)
			rec.RuntimeMinutes = &m
		}
		// invalid runtimes stay absent, never zero
	}

	return rec, true
}

// deriveYear extracts the year from a release date string. A value containing
// a dash contributes its leading segment; otherwise the whole value is parsed
// as a number and truncated. On any parse failure the ingestion-time current
// year is used: a record with a release date always gets a year.
func (n *Normalizer) deriveYear(releaseDate string) int {
	candidate := releaseDate
	if idx := strings.IndexByte(releaseDate, '-'); idx >= 0 {
		candidate = releaseDate[:idx]
	}
	if year, ok := parseYear(candidate); ok {
		return year
	}
	return n.now().Year()
}

// parseYear leniently parses a year: integer first, then float with
// truncation ("1999.0" -> 1999).
func parseYear(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if year, err := strconv.Atoi(s); err == nil {
		return year, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f), true
	}
	return 0, false
}

// splitGenres splits a comma-delimited genre string into a trimmed slice.
// Empty input yields an empty slice, never nil and never a raw string.
func splitGenres(raw string) []string {
	if raw == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	genres := make([]string, 0, len(parts))
	for _, p := range parts {
		genres = append(genres, strings.TrimSpace(p))
	}
	return genres
}

// optional returns a pointer to the value when the key is present and
// non-empty.
func optional(row Row, key string) *string {
	if value, ok := row[key]; ok && value != "" {
		return &value
	}
	return nil
}
