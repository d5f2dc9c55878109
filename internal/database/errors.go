// MovieDepot - Movie Catalog Ingestion and Query Backend
// Copyright 2026 MovieDepot contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviedepot/moviedepot

package database

import "errors"

// ErrInsertFailed wraps a failed bulk insert of one batch. Batch insert
// failures are recoverable for ingestion as a whole; the orchestrator counts
// them and continues.
var ErrInsertFailed = errors.New("database: batch insert failed")
