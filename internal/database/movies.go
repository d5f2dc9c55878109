// MovieDepot - Movie Catalog Ingestion and Query Backend
// Copyright 2026 MovieDepot contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviedepot/moviedepot

package database

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/moviedepot/moviedepot/internal/logging"
	"github.com/moviedepot/moviedepot/internal/metrics"
	"github.com/moviedepot/moviedepot/internal/models"
)

// movieColumns is the select list shared by all read paths. Order must match
// scanMovie.
const movieColumns = `id, imdb_id, title, original_title, type, release_date,
release_date_raw, year, runtime_minutes, genres, language, original_language,
ratings, overview, vote_count, budget, production_companies,
production_company_id, homepage, genre_id, languages, is_adult`

const insertMovieSQL = `INSERT INTO movies (
	id, imdb_id, title, original_title, type, release_date, release_date_raw,
	year, runtime_minutes, genres, language, original_language, ratings,
	overview, vote_count, budget, production_companies, production_company_id,
	homepage, genre_id, languages, is_adult
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// InsertMovies bulk-appends one batch of records. Identifiers are assigned
// here; any id set by the caller is ignored. The batch is inserted in a single
// transaction, so a failure leaves no partial batch behind.
func (db *DB) InsertMovies(ctx context.Context, records []models.MovieRecord) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}

	start := time.Now()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		metrics.RecordDBQuery("insert", "movies", time.Since(start), err)
		return 0, fmt.Errorf("%w: begin: %v", ErrInsertFailed, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx, insertMovieSQL)
	if err != nil {
		metrics.RecordDBQuery("insert", "movies", time.Since(start), err)
		return 0, fmt.Errorf("%w: prepare: %v", ErrInsertFailed, err)
	}
	defer closeQuietly(stmt)

	for i := range records {
		rec := &records[i]

		releaseDate, releaseDateRaw := splitReleaseDate(rec.ReleaseDate)

		genres := rec.Genres
		if genres == nil {
			genres = []string{}
		}
		genresJSON, err := json.Marshal(genres)
		if err != nil {
			metrics.RecordDBQuery("insert", "movies", time.Since(start), err)
			return 0, fmt.Errorf("%w: encode genres: %v", ErrInsertFailed, err)
		}

		if _, err := stmt.ExecContext(ctx,
			uuid.New().String(),
			rec.IMDBID,
			rec.Title,
			rec.OriginalTitle,
			rec.Type,
			releaseDate,
			releaseDateRaw,
			rec.Year,
			rec.RuntimeMinutes,
			string(genresJSON),
			rec.Language,
			rec.OriginalLanguage,
			rec.Ratings,
			rec.Overview,
			rec.VoteCount,
			rec.Budget,
			rec.ProductionCompanies,
			rec.ProductionCompanyID,
			rec.Homepage,
			rec.GenreID,
			rec.Languages,
			rec.IsAdult,
		); err != nil {
			metrics.RecordDBQuery("insert", "movies", time.Since(start), err)
			return 0, fmt.Errorf("%w: %v", ErrInsertFailed, err)
		}
	}

	if err := tx.Commit(); err != nil {
		metrics.RecordDBQuery("insert", "movies", time.Since(start), err)
		return 0, fmt.Errorf("%w: commit: %v", ErrInsertFailed, err)
	}

	metrics.RecordDBQuery("insert", "movies", time.Since(start), nil)
	return int64(len(records)), nil
}

// splitReleaseDate routes a raw release date into the DATE column when it
// parses as YYYY-MM-DD, or the raw VARCHAR column otherwise.
func splitReleaseDate(raw *string) (*time.Time, *string) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", *raw); err == nil {
		return &t, nil
	}
	return nil, raw
}

// sortColumns whitelists the fields the query engine may sort by. Anything
// outside this map falls back to release_date.
var sortColumns = map[string]string{
	models.SortByReleaseDate: "release_date",
	models.SortByRatings:     "ratings",
	models.SortByTitle:       "title",
	models.SortByYear:        "year",
}

// sortColumn resolves a client-supplied sort field to a SQL column.
func sortColumn(sortBy string) string {
	if col, ok := sortColumns[sortBy]; ok {
		return col
	}
	return "release_date"
}

// sortDirection resolves a client-supplied sort order. Only "asc" is accepted;
// everything else means descending.
func sortDirection(sortOrder string) string {
	if sortOrder == models.SortOrderAsc {
		return "ASC"
	}
	return "DESC"
}

// buildMovieFilter turns the query's filters into a WHERE clause. An invalid
// year value is dropped from the filter (logged, never an error).
func buildMovieFilter(q *models.MovieQuery) (string, []interface{}) {
	var clauses []string
	var args []interface{}

	if q.Year != "" {
		if year, err := strconv.Atoi(strings.TrimSpace(q.Year)); err == nil {
			clauses = append(clauses, "year = ?")
			args = append(args, year)
		} else {
			logging.Warn().Str("year", q.Year).Msg("Invalid year filter dropped")
		}
	}
	if q.Language != "" {
		clauses = append(clauses, "language = ?")
		args = append(args, q.Language)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// FindMovies executes a filtered, sorted, paginated find over the collection.
// It returns the page of sanitized records plus the total count of matching
// documents. The caller owns the degrade-to-empty policy on error.
func (db *DB) FindMovies(ctx context.Context, q *models.MovieQuery) ([]models.MovieRecord, int64, error) {
	start := time.Now()

	where, args := buildMovieFilter(q)

	var total int64
	countSQL := "SELECT COUNT(*) FROM movies" + where
	if err := db.conn.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		metrics.RecordDBQuery("count", "movies", time.Since(start), err)
		return nil, 0, fmt.Errorf("count movies: %w", err)
	}

	offset := (q.Page - 1) * q.PerPage
	findSQL := fmt.Sprintf("SELECT %s FROM movies%s ORDER BY %s %s NULLS LAST LIMIT ? OFFSET ?",
		movieColumns, where, sortColumn(q.SortBy), sortDirection(q.SortOrder))
	findArgs := append(append([]interface{}{}, args...), q.PerPage, offset)

	rows, err := db.conn.QueryContext(ctx, findSQL, findArgs...)
	if err != nil {
		metrics.RecordDBQuery("find", "movies", time.Since(start), err)
		return nil, 0, fmt.Errorf("find movies: %w", err)
	}
	defer closeQuietly(rows)

	movies := make([]models.MovieRecord, 0, q.PerPage)
	for rows.Next() {
		rec, err := scanMovie(rows)
		if err != nil {
			metrics.RecordDBQuery("find", "movies", time.Since(start), err)
			return nil, 0, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, rec)
	}
	if err := rows.Err(); err != nil {
		metrics.RecordDBQuery("find", "movies", time.Since(start), err)
		return nil, 0, fmt.Errorf("iterate movies: %w", err)
	}

	metrics.RecordDBQuery("find", "movies", time.Since(start), nil)
	return movies, total, nil
}

// SampleMovies returns the first few records for the debug endpoint.
func (db *DB) SampleMovies(ctx context.Context, limit int) ([]models.MovieRecord, error) {
	start := time.Now()

	sampleSQL := fmt.Sprintf("SELECT %s FROM movies LIMIT ?", movieColumns)
	rows, err := db.conn.QueryContext(ctx, sampleSQL, limit)
	if err != nil {
		metrics.RecordDBQuery("sample", "movies", time.Since(start), err)
		return nil, fmt.Errorf("sample movies: %w", err)
	}
	defer closeQuietly(rows)

	movies := make([]models.MovieRecord, 0, limit)
	for rows.Next() {
		rec, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movies: %w", err)
	}

	metrics.RecordDBQuery("sample", "movies", time.Since(start), nil)
	return movies, nil
}

// DistinctLanguages lists the unique non-empty language values, sorted, for
// the filter-selection UI.
func (db *DB) DistinctLanguages(ctx context.Context) ([]string, error) {
	start := time.Now()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT DISTINCT language FROM movies
		 WHERE language IS NOT NULL AND language <> ''
		 ORDER BY language`)
	if err != nil {
		metrics.RecordDBQuery("distinct", "movies", time.Since(start), err)
		return nil, fmt.Errorf("distinct languages: %w", err)
	}
	defer closeQuietly(rows)

	languages := []string{}
	for rows.Next() {
		var lang string
		if err := rows.Scan(&lang); err != nil {
			return nil, fmt.Errorf("scan language: %w", err)
		}
		languages = append(languages, lang)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate languages: %w", err)
	}

	metrics.RecordDBQuery("distinct", "movies", time.Since(start), nil)
	return languages, nil
}

// DistinctYears lists the unique non-null year values, ascending, for the
// filter-selection UI.
func (db *DB) DistinctYears(ctx context.Context) ([]int, error) {
	start := time.Now()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT DISTINCT year FROM movies WHERE year IS NOT NULL ORDER BY year`)
	if err != nil {
		metrics.RecordDBQuery("distinct", "movies", time.Since(start), err)
		return nil, fmt.Errorf("distinct years: %w", err)
	}
	defer closeQuietly(rows)

	years := []int{}
	for rows.Next() {
		var year int
		if err := rows.Scan(&year); err != nil {
			return nil, fmt.Errorf("scan year: %w", err)
		}
		years = append(years, year)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate years: %w", err)
	}

	metrics.RecordDBQuery("distinct", "movies", time.Since(start), nil)
	return years, nil
}

// TotalCount returns the total number of stored records.
func (db *DB) TotalCount(ctx context.Context) (int64, error) {
	var total int64
	err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM movies").Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("total count: %w", err)
	}
	return total, nil
}

// Stats returns collection-level statistics for the debug endpoint.
func (db *DB) Stats(ctx context.Context) (models.CollectionStats, error) {
	var stats models.CollectionStats

	total, err := db.TotalCount(ctx)
	if err != nil {
		return stats, err
	}
	stats.Count = total

	var sizeBytes int64
	err = db.conn.QueryRowContext(ctx,
		"SELECT total_blocks * block_size FROM pragma_database_size()").Scan(&sizeBytes)
	if err != nil {
		return stats, fmt.Errorf("database size: %w", err)
	}
	stats.SizeBytes = sizeBytes
	if total > 0 {
		stats.AvgObjSize = sizeBytes / total
	}

	return stats, nil
}

// scanMovie reads one row in movieColumns order and post-processes it into the
// JSON-safe shape: id as string, release_date as YYYY-MM-DD (or the raw string
// kept at ingest time), genres decoded to a slice, NaN/Inf ratings to absent.
func scanMovie(rows *sql.Rows) (models.MovieRecord, error) {
	var (
		rec            models.MovieRecord
		imdbID         sql.NullString
		originalTitle  sql.NullString
		mediaType      sql.NullString
		releaseDate    sql.NullTime
		releaseDateRaw sql.NullString
		year           sql.NullInt32
		runtime        sql.NullInt32
		genresJSON     string
		language       sql.NullString
		originalLang   sql.NullString
		ratings        sql.NullFloat64
		overview       sql.NullString
		voteCount      sql.NullString
		budget         sql.NullString
		prodCompanies  sql.NullString
		prodCompanyID  sql.NullString
		homepage       sql.NullString
		genreID        sql.NullString
		languages      sql.NullString
		isAdult        sql.NullString
	)

	if err := rows.Scan(
		&rec.ID, &imdbID, &rec.Title, &originalTitle, &mediaType,
		&releaseDate, &releaseDateRaw, &year, &runtime, &genresJSON,
		&language, &originalLang, &ratings, &overview, &voteCount,
		&budget, &prodCompanies, &prodCompanyID, &homepage, &genreID,
		&languages, &isAdult,
	); err != nil {
		return rec, err
	}

	rec.IMDBID = nullableString(imdbID)
	rec.OriginalTitle = nullableString(originalTitle)
	rec.Type = nullableString(mediaType)
	rec.Language = nullableString(language)
	rec.OriginalLanguage = nullableString(originalLang)
	rec.Overview = nullableString(overview)
	rec.VoteCount = nullableString(voteCount)
	rec.Budget = nullableString(budget)
	rec.ProductionCompanies = nullableString(prodCompanies)
	rec.ProductionCompanyID = nullableString(prodCompanyID)
	rec.Homepage = nullableString(homepage)
	rec.GenreID = nullableString(genreID)
	rec.Languages = nullableString(languages)
	rec.IsAdult = nullableString(isAdult)

	switch {
	case releaseDate.Valid:
		formatted := releaseDate.Time.Format("2006-01-02")
		rec.ReleaseDate = &formatted
	case releaseDateRaw.Valid:
		raw := releaseDateRaw.String
		rec.ReleaseDate = &raw
	}

	if year.Valid {
		y := int(year.Int32)
		rec.Year = &y
	}
	if runtime.Valid {
		m := int(runtime.Int32)
		rec.RuntimeMinutes = &m
	}

	// NaN/Inf are never written by ingestion but must be tolerated when read
	// from pre-existing or foreign data.
	if ratings.Valid && !math.IsNaN(ratings.Float64) && !math.IsInf(ratings.Float64, 0) {
		r := ratings.Float64
		rec.Ratings = &r
	}

	rec.Genres = []string{}
	if genresJSON != "" {
		if err := json.Unmarshal([]byte(genresJSON), &rec.Genres); err != nil {
			logging.Warn().Str("id", rec.ID).Msg("Undecodable genres value, serving empty list")
			rec.Genres = []string{}
		}
	}

	return rec, nil
}

// nullableString converts a sql.NullString to an optional field.
func nullableString(s sql.NullString) *string {
	if !s.Valid || s.String == "" {
		return nil
	}
	v := s.String
	return &v
}
