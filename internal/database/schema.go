// MovieDepot - Movie Catalog Ingestion and Query Backend
// Copyright 2026 MovieDepot contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviedepot/moviedepot

package database

// schemaMovies defines the movie collection. The table is append-only from the
// application's perspective: ingestion bulk-inserts, the query engine reads,
// nothing updates or deletes.
//
// release_date holds the value when it parses as a calendar date; otherwise the
// raw source string is kept in release_date_raw so foreign or malformed data is
// never lost. genres is a JSON-encoded array of strings, always an array once a
// record is past normalization.
const schemaMovies = `
CREATE TABLE IF NOT EXISTS movies (
    id                   VARCHAR PRIMARY KEY,
    imdb_id              VARCHAR,
    title                VARCHAR NOT NULL,
    original_title       VARCHAR,
    type                 VARCHAR,
    release_date         DATE,
    release_date_raw     VARCHAR,
    year                 INTEGER,
    runtime_minutes      INTEGER,
    genres               VARCHAR NOT NULL DEFAULT '[]',
    language             VARCHAR,
    original_language    VARCHAR,
    ratings              DOUBLE,
    overview             VARCHAR,
    vote_count           VARCHAR,
    budget               VARCHAR,
    production_companies VARCHAR,
    production_company_id VARCHAR,
    homepage             VARCHAR,
    genre_id             VARCHAR,
    languages            VARCHAR,
    is_adult             VARCHAR,
    created_at           TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// movieIndexes back the query engine's filter and sort paths.
var movieIndexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_movies_release_date ON movies (release_date)`,
	`CREATE INDEX IF NOT EXISTS idx_movies_ratings ON movies (ratings)`,
	`CREATE INDEX IF NOT EXISTS idx_movies_language ON movies (language)`,
	`CREATE INDEX IF NOT EXISTS idx_movies_year ON movies (year)`,
}
