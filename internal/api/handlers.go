// MovieDepot - Movie Catalog Ingestion and Query Backend
// Copyright 2026 MovieDepot contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviedepot/moviedepot

package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/moviedepot/moviedepot/internal/config"
	"github.com/moviedepot/moviedepot/internal/ingest"
	"github.com/moviedepot/moviedepot/internal/logging"
	"github.com/moviedepot/moviedepot/internal/models"
)

// MovieStore is the query side of the movie collection.
// Implemented by *database.DB.
type MovieStore interface {
	FindMovies(ctx context.Context, q *models.MovieQuery) ([]models.MovieRecord, int64, error)
	SampleMovies(ctx context.Context, limit int) ([]models.MovieRecord, error)
	DistinctLanguages(ctx context.Context) ([]string, error)
	DistinctYears(ctx context.Context) ([]int, error)
	TotalCount(ctx context.Context) (int64, error)
	Stats(ctx context.Context) (models.CollectionStats, error)
}

// Ingestor runs one CSV ingestion. Implemented by *ingest.Importer.
type Ingestor interface {
	Import(ctx context.Context, path string) (*ingest.ImportStats, error)
}

// debugSampleSize is the number of records returned by the debug endpoint.
const debugSampleSize = 5

// Handler holds the HTTP handlers and their dependencies.
type Handler struct {
	cfg      *config.Config
	store    MovieStore
	importer Ingestor
}

// NewHandler creates the API handler set.
func NewHandler(cfg *config.Config, store MovieStore, importer Ingestor) *Handler {
	return &Handler{
		cfg:      cfg,
		store:    store,
		importer: importer,
	}
}

// HandleIndex handles GET / (liveness check).
func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"message": "MovieDepot API is running",
		"version": "1.0.0",
	})
}

// HandleUpload handles POST /api/upload: a multipart form with a "file" field
// containing a CSV. The upload is written to the transient upload directory,
// ingested synchronously, and removed on every exit path.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.Upload.MaxSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			respondError(w, http.StatusRequestEntityTooLarge, "File exceeds the maximum upload size", "", err)
			return
		}
		respondError(w, http.StatusBadRequest, "No file part in the request", "", err)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			logging.Warn().Err(closeErr).Msg("Error closing uploaded file")
		}
	}()

	if header.Filename == "" {
		respondError(w, http.StatusBadRequest, "No file selected", "", nil)
		return
	}
	if !allowedFile(header.Filename, h.cfg.Upload.AllowedExtensions) {
		logging.Warn().Str("filename", sanitizeLogValue(header.Filename)).Msg("File type not allowed")
		respondError(w, http.StatusBadRequest, "File type not allowed, please upload CSV files only", "", nil)
		return
	}

	originalFilename := filepath.Base(header.Filename)
	uploadPath, err := h.saveUpload(file, originalFilename)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "An error occurred while processing the file", err.Error(), err)
		return
	}
	defer func() {
		if removeErr := os.Remove(uploadPath); removeErr != nil {
			logging.Error().Err(removeErr).Str("path", uploadPath).Msg("Error cleaning up uploaded file")
		}
	}()

	stats, err := h.importer.Import(r.Context(), uploadPath)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "An error occurred while processing the file", err.Error(), err)
		return
	}

	respondJSON(w, http.StatusOK, models.UploadResponse{
		Success: true,
		Message: "File processed successfully",
		Stats: models.UploadStats{
			RecordsProcessed:      stats.Persisted,
			ProcessingTimeSeconds: stats.Duration().Seconds(),
			OriginalFilename:      originalFilename,
		},
	})
}

// saveUpload writes the uploaded file under a collision-free name in the
// upload directory and returns its path.
func (h *Handler) saveUpload(src io.Reader, originalFilename string) (string, error) {
	if err := os.MkdirAll(h.cfg.Upload.Dir, 0o750); err != nil {
		return "", err
	}

	path := filepath.Join(h.cfg.Upload.Dir, uuid.New().String()+"_"+originalFilename)
	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(dst, src); err != nil {
		if closeErr := dst.Close(); closeErr != nil {
			logging.Warn().Err(closeErr).Str("path", path).Msg("Error closing upload file")
		}
		if removeErr := os.Remove(path); removeErr != nil {
			logging.Warn().Err(removeErr).Str("path", path).Msg("Failed to remove partial upload")
		}
		return "", err
	}
	if err := dst.Close(); err != nil {
		return "", err
	}

	logging.Info().Str("path", path).Msg("Upload saved")
	return path, nil
}

// HandleUploadStatus handles GET /api/upload/status: a connectivity check for
// clients, reporting the upload constraints.
func (h *Handler) HandleUploadStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.UploadStatusResponse{
		Status:            "online",
		MaxSize:           h.cfg.Upload.MaxSize,
		AllowedExtensions: h.cfg.Upload.AllowedExtensions,
	})
}

// HandleMovies handles GET /api/movies: a paginated, filtered, sorted listing.
//
// A store failure degrades to an empty page with zeroed pagination rather than
// an error response; unknown sort parameters silently fall back to the default
// ordering in the store layer.
func (h *Handler) HandleMovies(w http.ResponseWriter, r *http.Request) {
	req := MoviesRequest{
		Page:     getIntParam(r, "page", 1),
		PerPage:  getIntParam(r, "per_page", h.cfg.API.DefaultPageSize),
		Year:     r.URL.Query().Get("year"),
		Language: r.URL.Query().Get("language"),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Message, "", nil)
		return
	}
	if req.PerPage > h.cfg.API.MaxPageSize {
		req.PerPage = h.cfg.API.MaxPageSize
	}

	query := &models.MovieQuery{
		Year:      req.Year,
		Language:  req.Language,
		SortBy:    getStringParam(r, "sort_by", models.SortByReleaseDate),
		SortOrder: getStringParam(r, "sort_order", models.SortOrderDesc),
		Page:      req.Page,
		PerPage:   req.PerPage,
	}

	movies, totalCount, err := h.store.FindMovies(r.Context(), query)
	if err != nil {
		logging.Error().Err(err).Msg("Movie query failed, returning empty result")
		respondJSON(w, http.StatusOK, models.MoviesResponse{
			Movies:     []models.MovieRecord{},
			Pagination: models.ZeroPagination(req.Page, req.PerPage),
		})
		return
	}
	if movies == nil {
		movies = []models.MovieRecord{}
	}

	respondJSON(w, http.StatusOK, models.MoviesResponse{
		Movies:     movies,
		Pagination: models.NewPagination(req.Page, req.PerPage, totalCount),
	})
}

// HandleFilters handles GET /api/movies/filters: the distinct languages and
// years available for filtering. Store failures degrade to empty lists.
func (h *Handler) HandleFilters(w http.ResponseWriter, r *http.Request) {
	languages, err := h.store.DistinctLanguages(r.Context())
	if err != nil {
		logging.Error().Err(err).Msg("Failed to fetch distinct languages")
		languages = nil
	}
	years, err := h.store.DistinctYears(r.Context())
	if err != nil {
		logging.Error().Err(err).Msg("Failed to fetch distinct years")
		years = nil
	}

	if languages == nil {
		languages = []string{}
	}
	if years == nil {
		years = []int{}
	}

	respondJSON(w, http.StatusOK, models.FiltersResponse{
		Languages: languages,
		Years:     years,
	})
}

// HandleDebug handles GET /api/movies/debug: a small record sample plus
// collection statistics for troubleshooting.
func (h *Handler) HandleDebug(w http.ResponseWriter, r *http.Request) {
	sample, err := h.store.SampleMovies(r.Context(), debugSampleSize)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "An error occurred while debugging movies", err.Error(), err)
		return
	}
	if sample == nil {
		sample = []models.MovieRecord{}
	}

	totalCount, err := h.store.TotalCount(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "An error occurred while debugging movies", err.Error(), err)
		return
	}

	stats, err := h.store.Stats(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "An error occurred while debugging movies", err.Error(), err)
		return
	}

	respondJSON(w, http.StatusOK, models.DebugResponse{
		SampleMovies:    sample,
		TotalCount:      totalCount,
		CollectionStats: stats,
	})
}
