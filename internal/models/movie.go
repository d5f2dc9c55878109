// MovieDepot - Movie Catalog Ingestion and Query Backend
// Copyright 2026 MovieDepot contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviedepot/moviedepot

// Package models defines the canonical movie record, the ephemeral query value
// object, and the JSON response shapes served by the API.
package models

// MovieRecord is the canonical stored entity. Records are created in batches
// during ingestion, never updated in place and never deleted. The store layer
// assigns the identifier; ingestion never sets it.
//
// Optional fields are pointers so that "absent" survives the trip through the
// store and is distinguishable from a zero value. Ratings is serialized without
// omitempty: a record without ratings (or with a NaN/Inf value read from
// pre-existing data) renders as JSON null, never as a NaN/Infinity token.
type MovieRecord struct {
	ID               string   `json:"_id,omitempty"`
	IMDBID           *string  `json:"imdb_id,omitempty"`
	Title            string   `json:"title"`
	OriginalTitle    *string  `json:"original_title,omitempty"`
	Type             *string  `json:"type,omitempty"`
	ReleaseDate      *string  `json:"release_date,omitempty"`
	Year             *int     `json:"year,omitempty"`
	RuntimeMinutes   *int     `json:"runtime_minutes,omitempty"`
	Genres           []string `json:"genres"`
	Language         *string  `json:"language,omitempty"`
	OriginalLanguage *string  `json:"original_language,omitempty"`
	Ratings          *float64 `json:"ratings"`

	// Passthrough fields, stored as raw strings from the source CSV.
	Overview            *string `json:"overview,omitempty"`
	VoteCount           *string `json:"vote_count,omitempty"`
	Budget              *string `json:"budget,omitempty"`
	ProductionCompanies *string `json:"production_companies,omitempty"`
	ProductionCompanyID *string `json:"production_company_id,omitempty"`
	Homepage            *string `json:"homepage,omitempty"`
	GenreID             *string `json:"genre_id,omitempty"`
	Languages           *string `json:"languages,omitempty"`
	IsAdult             *string `json:"is_adult,omitempty"`
}

// Sort fields accepted by the query engine. Anything else silently falls back
// to SortByReleaseDate / SortOrderDesc.
const (
	SortByReleaseDate = "release_date"
	SortByRatings     = "ratings"
	SortByTitle       = "title"
	SortByYear        = "year"

	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// MovieQuery is the ephemeral per-request query value object. It is constructed
// from request parameters and never persisted.
type MovieQuery struct {
	// Year and Language are equality filters; empty means unfiltered. Year is
	// coerced to an integer by the store layer, invalid values are dropped.
	Year     string
	Language string

	SortBy    string
	SortOrder string
	Page      int
	PerPage   int
}

// Pagination is the pagination metadata attached to movie listing responses.
type Pagination struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalCount int64 `json:"total_count"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// NewPagination computes pagination metadata for a result window.
// TotalPages is ceil(totalCount/perPage) with a floor of 1 for empty results.
func NewPagination(page, perPage int, totalCount int64) Pagination {
	totalPages := 1
	if totalCount > 0 {
		totalPages = int((totalCount + int64(perPage) - 1) / int64(perPage))
	}
	return Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalCount: totalCount,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// ZeroPagination is the zero-valued metadata returned when a query fails and
// the read path degrades to an empty result set.
func ZeroPagination(page, perPage int) Pagination {
	return Pagination{
		Page:    page,
		PerPage: perPage,
	}
}

// MoviesResponse is the shape of GET /api/movies.
type MoviesResponse struct {
	Movies     []MovieRecord `json:"movies"`
	Pagination Pagination    `json:"pagination"`
}

// FiltersResponse is the shape of GET /api/movies/filters.
type FiltersResponse struct {
	Languages []string `json:"languages"`
	Years     []int    `json:"years"`
}

// UploadStats summarizes a completed ingestion for the upload response.
type UploadStats struct {
	RecordsProcessed      int64   `json:"records_processed"`
	ProcessingTimeSeconds float64 `json:"processing_time_seconds"`
	OriginalFilename      string  `json:"original_filename"`
}

// UploadResponse is the shape of a successful POST /api/upload.
type UploadResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Stats   UploadStats `json:"stats"`
}

// UploadStatusResponse is the shape of GET /api/upload/status.
type UploadStatusResponse struct {
	Status            string   `json:"status"`
	MaxSize           int64    `json:"max_size"`
	AllowedExtensions []string `json:"allowed_extensions"`
}

// ErrorResponse is the shape of 4xx/5xx bodies.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// CollectionStats holds diagnostic statistics for the debug endpoint.
type CollectionStats struct {
	Count      int64 `json:"count"`
	SizeBytes  int64 `json:"size"`
	AvgObjSize int64 `json:"avg_obj_size"`
}

// DebugResponse is the shape of GET /api/movies/debug.
type DebugResponse struct {
	SampleMovies    []MovieRecord   `json:"sample_movies"`
	TotalCount      int64           `json:"total_count"`
	CollectionStats CollectionStats `json:"collection_stats"`
}
