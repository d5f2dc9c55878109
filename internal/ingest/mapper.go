// MovieDepot - Movie Catalog Ingestion and Query Backend
// Copyright 2026 MovieDepot contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviedepot/moviedepot

package ingest

// Canonical field names used by the normalizer. They are independent of source
// CSV header naming.
const (
	fieldIMDBID              = "imdb_id"
	fieldTitle               = "title"
	fieldOriginalTitle       = "original_title"
	fieldType                = "type"
	fieldReleaseDate         = "release_date"
	fieldYear                = "year"
	fieldRuntimeMinutes      = "runtime_minutes"
	fieldGenres              = "genres"
	fieldLanguage            = "language"
	fieldOriginalLanguage    = "original_language"
	fieldRatings             = "ratings"
	fieldOverview            = "overview"
	fieldVoteCount           = "vote_count"
	fieldBudget              = "budget"
	fieldProductionCompanies = "production_companies"
	fieldProductionCompanyID = "production_company_id"
	fieldHomepage            = "homepage"
	fieldGenreID             = "genre_id"
	fieldLanguages           = "languages"
	fieldIsAdult             = "is_adult"
)

// mappingRule maps one source CSV column to a canonical field.
type mappingRule struct {
	source string
	target string
}

// mappingRules is evaluated top to bottom. When two rules write the same
// target and both source columns are present in a row, the later rule wins.
// The ordering is therefore part of the contract: TMDB-style columns override
// IMDb TSV columns because they carry richer values for the same field.
var mappingRules = []mappingRule{
	// Canonical names map to themselves at lowest precedence so that mapping
	// an already-mapped row is a no-op. Canonical names that double as source
	// columns (title, genres, ...) get their identity rule in the TMDB block.
	{fieldIMDBID, fieldIMDBID},
	{fieldType, fieldType},
	{fieldYear, fieldYear},
	{fieldRuntimeMinutes, fieldRuntimeMinutes},
	{fieldRatings, fieldRatings},
	{fieldIsAdult, fieldIsAdult},

	// IMDb TSV export columns
	{"tconst", fieldIMDBID},
	{"primaryTitle", fieldTitle},
	{"originalTitle", fieldOriginalTitle},
	{"titleType", fieldType},
	{"startYear", fieldYear},
	{"runtimeMinutes", fieldRuntimeMinutes},
	{"genres", fieldGenres},
	{"isAdult", fieldIsAdult},

	// TMDB-style export columns
	{"title", fieldTitle},
	{"original_title", fieldOriginalTitle},
	{"release_date", fieldReleaseDate},
	{"overview", fieldOverview},
	{"runtime", fieldRuntimeMinutes},
	{"language", fieldLanguage},
	{"vote_average", fieldRatings},
	{"vote_count", fieldVoteCount},
	{"budget", fieldBudget},
	{"production_companies", fieldProductionCompanies},
	{"production_company_id", fieldProductionCompanyID},
	{"homepage", fieldHomepage},
	{"genre_id", fieldGenreID},
	{"languages", fieldLanguages},
	{"original_language", fieldOriginalLanguage},
}

// MapRow converts a raw row keyed by source column names into a row keyed by
// canonical field names. Unmapped source columns are dropped. When a title is
// missing the original title is backfilled into it. MapRow is a pure function
// and is idempotent over canonical field names: mapping an already-mapped row
// is a no-op.
func MapRow(row Row) Row {
	mapped := make(Row, len(row))
	for _, rule := range mappingRules {
		if value, ok := row[rule.source]; ok {
			mapped[rule.target] = value
		}
	}

	if _, ok := mapped[fieldTitle]; !ok {
		if original, ok := mapped[fieldOriginalTitle]; ok {
			mapped[fieldTitle] = original
		}
	}

	return mapped
}
