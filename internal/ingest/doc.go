// MovieDepot - Movie Catalog Ingestion and Query Backend
// Copyright 2026 MovieDepot contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviedepot/moviedepot

// Package ingest turns uploaded movie CSV files into store records.
//
// The pipeline is three small stages run per batch:
//
//	CSV file
//	     ↓
//	BatchReader  - streams header-keyed rows, skips malformed lines
//	     ↓
//	MapRow       - renames source columns (IMDb, TMDB exports) to canonical fields
//	     ↓
//	Normalizer   - coerces types, derives year, rejects rows without a title
//	     ↓
//	Sink         - bulk append (internal/database)
//
// # Failure Policy
//
// Ingestion is best-effort row-wise: malformed CSV lines and rows failing
// normalization are counted and dropped, and a failed batch insert is logged
// and skipped. Only file-level problems (unreadable file, missing header,
// broken working copy) abort a run.
//
// # Concurrency
//
// Each Import call operates on a private working copy of the input file and
// keeps its statistics on the stack, so concurrent ingestions of different
// uploads do not interfere.
package ingest
