// MovieDepot - Movie Catalog Ingestion and Query Backend
// Copyright 2026 MovieDepot contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviedepot/moviedepot

package ingest

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/moviedepot/moviedepot/internal/config"
	"github.com/moviedepot/moviedepot/internal/logging"
	"github.com/moviedepot/moviedepot/internal/metrics"
	"github.com/moviedepot/moviedepot/internal/models"
)

// Sink is the store side of an ingestion: a bulk append of normalized
// records. Implemented by *database.DB.
type Sink interface {
	InsertMovies(ctx context.Context, records []models.MovieRecord) (int64, error)
}

// Importer runs CSV ingestions against a sink. It holds no per-run state, so
// a single Importer is safe for concurrent Import calls; each run owns its
// own working copy and statistics.
type Importer struct {
	cfg        *config.IngestConfig
	sink       Sink
	normalizer *Normalizer
}

// NewImporter creates a CSV importer writing to the given sink.
func NewImporter(cfg *config.IngestConfig, sink Sink) *Importer {
	return &Importer{
		cfg:        cfg,
		sink:       sink,
		normalizer: NewNormalizer(),
	}
}

// Import ingests the CSV file at path. It works on a private copy of the
// file, so the caller may delete the original as soon as Import returns;
// the copy is removed on every exit path.
//
// Rejected and malformed rows are counted, never fatal. A failed batch
// insert is logged and counted, and the run continues with the next batch.
func (i *Importer) Import(ctx context.Context, path string) (*ImportStats, error) {
	stats := &ImportStats{StartTime: time.Now()}
	defer func() {
		stats.EndTime = time.Now()
		metrics.IngestDuration.Observe(stats.Duration().Seconds())
	}()

	workingPath, err := copyToWorkingFile(path)
	if err != nil {
		return stats, fmt.Errorf("create working copy: %w", err)
	}
	defer func() {
		if removeErr := os.Remove(workingPath); removeErr != nil {
			logging.Warn().Err(removeErr).Str("path", workingPath).Msg("Failed to remove working copy")
		}
	}()

	reader, err := OpenBatchReader(workingPath, i.cfg.BatchSize)
	if err != nil {
		return stats, fmt.Errorf("open csv: %w", err)
	}
	defer func() {
		if closeErr := reader.Close(); closeErr != nil {
			logging.Warn().Err(closeErr).Msg("Error closing CSV reader")
		}
	}()

	logging.Info().
		Str("file", filepath.Base(path)).
		Strs("header", reader.Header()).
		Int("batch_size", i.cfg.BatchSize).
		Msg("Starting ingestion")

	if err := i.processAllBatches(ctx, reader, stats); err != nil {
		return stats, err
	}

	stats.Malformed = reader.Malformed()
	stats.Processed += stats.Malformed
	metrics.IngestRowsTotal.WithLabelValues("malformed").Add(float64(stats.Malformed))

	logging.Info().
		Int64("processed", stats.Processed).
		Int64("persisted", stats.Persisted).
		Int64("skipped", stats.Skipped).
		Int64("malformed", stats.Malformed).
		Int64("failed_batches", stats.FailedBatches).
		Dur("duration", stats.Duration()).
		Msg("Ingestion completed")

	return stats, nil
}

// processAllBatches drains the reader, normalizing and inserting one batch
// at a time.
func (i *Importer) processAllBatches(ctx context.Context, reader *BatchReader, stats *ImportStats) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		rows, err := reader.Next()
		if err != nil {
			return fmt.Errorf("read batch: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}

		i.processBatch(ctx, rows, stats)
	}
}

// processBatch maps and normalizes one batch of rows and inserts the
// surviving records.
func (i *Importer) processBatch(ctx context.Context, rows []Row, stats *ImportStats) {
	stats.Processed += int64(len(rows))

	records := make([]models.MovieRecord, 0, len(rows))
	for _, row := range rows {
		record, ok := i.normalizer.Normalize(MapRow(row))
		if !ok {
			stats.Skipped++
			continue
		}
		records = append(records, record)
	}
	metrics.IngestRowsTotal.WithLabelValues("skipped").Add(float64(int64(len(rows)) - int64(len(records))))

	if len(records) == 0 {
		return
	}

	inserted, err := i.sink.InsertMovies(ctx, records)
	if err != nil {
		stats.FailedBatches++
		metrics.IngestBatchesTotal.WithLabelValues("failed").Inc()
		logging.Warn().
			Err(err).
			Int("batch_rows", len(records)).
			Msg("Batch insert failed, continuing with next batch")
		return
	}

	stats.Persisted += inserted
	metrics.IngestBatchesTotal.WithLabelValues("ok").Inc()
	metrics.IngestRowsTotal.WithLabelValues("persisted").Add(float64(inserted))

	logging.Debug().
		Int64("processed", stats.Processed).
		Int64("persisted", stats.Persisted).
		Int64("skipped", stats.Skipped).
		Msg("Ingestion progress")
}

// copyToWorkingFile copies the source file to a collision-free sibling path
// and returns that path.
func copyToWorkingFile(path string) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() {
		if closeErr := src.Close(); closeErr != nil {
			logging.Warn().Err(closeErr).Str("path", path).Msg("Error closing source file")
		}
	}()

	workingPath := filepath.Join(filepath.Dir(path), uuid.New().String()+"_working.csv")
	dst, err := os.Create(workingPath)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(dst, src); err != nil {
		closeQuietly(dst, workingPath)
		if removeErr := os.Remove(workingPath); removeErr != nil {
			logging.Warn().Err(removeErr).Str("path", workingPath).Msg("Failed to remove partial working copy")
		}
		return "", err
	}
	if err := dst.Close(); err != nil {
		return "", err
	}

	return workingPath, nil
}

func closeQuietly(f *os.File, path string) {
	if err := f.Close(); err != nil {
		logging.Warn().Err(err).Str("path", path).Msg("Error closing file")
	}
}
