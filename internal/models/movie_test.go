// MovieDepot - Movie Catalog Ingestion and Query Backend
// Copyright 2026 MovieDepot contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviedepot/moviedepot

package models

import (
	"math"
	"testing"

	"github.com/goccy/go-json"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		perPage    int
		totalCount int64
		totalPages int
		hasNext    bool
		hasPrev    bool
	}{
		{"empty collection", 1, 10, 0, 1, false, false},
		{"single partial page", 1, 10, 3, 1, false, false},
		{"exact multiple", 1, 10, 20, 2, true, false},
		{"remainder adds a page", 1, 10, 21, 3, true, false},
		{"middle page", 2, 10, 30, 3, true, true},
		{"last page", 3, 10, 30, 3, false, true},
		{"page past the end", 5, 10, 30, 3, false, true},
		{"per_page of one", 3, 1, 3, 3, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.perPage, tt.totalCount)
			if p.TotalPages != tt.totalPages {
				t.Errorf("TotalPages = %d, want %d", p.TotalPages, tt.totalPages)
			}
			if p.HasNext != tt.hasNext {
				t.Errorf("HasNext = %v, want %v", p.HasNext, tt.hasNext)
			}
			if p.HasPrev != tt.hasPrev {
				t.Errorf("HasPrev = %v, want %v", p.HasPrev, tt.hasPrev)
			}
			if p.Page != tt.page || p.PerPage != tt.perPage || p.TotalCount != tt.totalCount {
				t.Errorf("echo fields = %+v", p)
			}
		})
	}
}

func TestZeroPagination(t *testing.T) {
	p := ZeroPagination(4, 25)
	if p.Page != 4 || p.PerPage != 25 {
		t.Errorf("echo fields = %+v", p)
	}
	if p.TotalCount != 0 || p.TotalPages != 0 || p.HasNext || p.HasPrev {
		t.Errorf("zero fields = %+v", p)
	}
}

func TestMovieRecordJSON(t *testing.T) {
	t.Run("absent ratings render as null", func(t *testing.T) {
		data, err := json.Marshal(MovieRecord{Title: "x", Genres: []string{}})
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var m map[string]interface{}
		if err := json.Unmarshal(data, &m); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		v, present := m["ratings"]
		if !present {
			t.Fatal("ratings key missing, want explicit null")
		}
		if v != nil {
			t.Errorf("ratings = %v, want null", v)
		}
	})

	t.Run("empty genres render as array", func(t *testing.T) {
		data, err := json.Marshal(MovieRecord{Title: "x", Genres: []string{}})
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var m map[string]interface{}
		if err := json.Unmarshal(data, &m); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		genres, ok := m["genres"].([]interface{})
		if !ok {
			t.Fatalf("genres = %T (%v), want array", m["genres"], m["genres"])
		}
		if len(genres) != 0 {
			t.Errorf("genres = %v", genres)
		}
	})

	t.Run("absent optionals are omitted", func(t *testing.T) {
		data, err := json.Marshal(MovieRecord{Title: "x", Genres: []string{}})
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var m map[string]interface{}
		if err := json.Unmarshal(data, &m); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		for _, key := range []string{"imdb_id", "release_date", "year", "overview", "_id"} {
			if _, present := m[key]; present {
				t.Errorf("key %q present, want omitted", key)
			}
		}
	})

	t.Run("set ratings round-trip", func(t *testing.T) {
		r := 8.5
		data, err := json.Marshal(MovieRecord{Title: "x", Genres: []string{}, Ratings: &r})
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var out MovieRecord
		if err := json.Unmarshal(data, &out); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if out.Ratings == nil || math.Abs(*out.Ratings-8.5) > 1e-9 {
			t.Errorf("Ratings = %v", out.Ratings)
		}
	})
}
