// MovieDepot - Movie Catalog Ingestion and Query Backend
// Copyright 2026 MovieDepot contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviedepot/moviedepot

package ingest

import (
	"time"
)

// ImportStats holds statistics about one ingestion run.
type ImportStats struct {
	// Processed is the number of data rows read from the file, including
	// rejected and malformed ones.
	Processed int64

	// Persisted is the number of records written to the store.
	Persisted int64

	// Skipped is the number of rows rejected during normalization.
	Skipped int64

	// Malformed is the number of rows the CSV reader could not parse.
	Malformed int64

	// FailedBatches is the number of batches whose insert failed. Rows in
	// failed batches are not counted as persisted.
	FailedBatches int64

	// StartTime is when the ingestion started.
	StartTime time.Time

	// EndTime is when the ingestion completed (zero if still running).
	EndTime time.Time
}

// Duration returns the elapsed time of the ingestion run.
func (s *ImportStats) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}

// RecordsPerSecond returns the ingestion rate.
func (s *ImportStats) RecordsPerSecond() float64 {
	duration := s.Duration().Seconds()
	if duration == 0 {
		return 0
	}
	return float64(s.Processed) / duration
}
