// MovieDepot - Movie Catalog Ingestion and Query Backend
// Copyright 2026 MovieDepot contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviedepot/moviedepot

package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/moviedepot/moviedepot/internal/logging"
)

// Row is one raw CSV row keyed by column name. Values recognized as null
// markers never appear: an absent value is an absent key.
type Row map[string]string

// DefaultBatchSize is the number of rows per batch when none is configured.
const DefaultBatchSize = 1000

// nullMarkers are source values treated as absent. Matches the common IMDb
// (`\N`) and pandas (`nan`/`NaN`) conventions.
var nullMarkers = map[string]struct{}{
	``:     {},
	`\N`:   {},
	`NULL`: {},
	`nan`:  {},
	`NaN`:  {},
}

// BatchReader streams a CSV file as a finite, forward-only sequence of
// bounded-size batches, decoupling file size from memory use. It is not
// restartable; open a new reader to consume the file again.
type BatchReader struct {
	file      *os.File
	csv       *csv.Reader
	header    []string
	batchSize int
	malformed int64
}

// OpenBatchReader opens the file and reads its header row. An unreadable file
// or a missing/unparseable header is the one fatal condition of ingestion.
func OpenBatchReader(path string, batchSize int) (*BatchReader, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}

	cr := csv.NewReader(file)
	cr.FieldsPerRecord = -1 // column counts are checked per row, not enforced
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		closeErr := file.Close()
		if closeErr != nil {
			logging.Warn().Err(closeErr).Msg("Error closing CSV file")
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	return &BatchReader{
		file:      file,
		csv:       cr,
		header:    header,
		batchSize: batchSize,
	}, nil
}

// Header returns the column names from the file's first row.
func (r *BatchReader) Header() []string {
	return r.header
}

// Next returns the next batch of rows. An empty batch signals end of file.
// Rows with the wrong column count are skipped and counted, not fatal; an
// unrecoverable parse error aborts the read.
func (r *BatchReader) Next() ([]Row, error) {
	batch := make([]Row, 0, r.batchSize)

	for len(batch) < r.batchSize {
		record, err := r.csv.Read()
		if errors.Is(err, io.EOF) {
			return batch, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		if len(record) != len(r.header) {
			r.malformed++
			continue
		}

		row := make(Row, len(r.header))
		for i, col := range r.header {
			value := record[i]
			if _, isNull := nullMarkers[value]; isNull {
				continue
			}
			row[col] = value
		}
		batch = append(batch, row)
	}

	return batch, nil
}

// Malformed returns the number of rows skipped for having the wrong column
// count.
func (r *BatchReader) Malformed() int64 {
	return r.malformed
}

// Close releases the underlying file.
func (r *BatchReader) Close() error {
	return r.file.Close()
}
