// MovieDepot - Movie Catalog Ingestion and Query Backend
// Copyright 2026 MovieDepot contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviedepot/moviedepot

package ingest

import (
	"reflect"
	"testing"
	"time"
)

// fixedClockNormalizer pins the clock so the unparseable-date fallback is
// deterministic.
func fixedClockNormalizer(year int) *Normalizer {
	return &Normalizer{now: func() time.Time {
		return time.Date(year, time.June, 1, 0, 0, 0, 0, time.UTC)
	}}
}

func TestNormalizer_Normalize(t *testing.T) {
	n := fixedClockNormalizer(2026)

	t.Run("rejects row without title", func(t *testing.T) {
		_, ok := n.Normalize(Row{"release_date": "2001-04-25", "ratings": "8.3"})
		if ok {
			t.Error("row without title should be rejected")
		}
	})

	t.Run("derives year from release date", func(t *testing.T) {
		rec, ok := n.Normalize(Row{"title": "Amélie", "release_date": "2001-04-25"})
		if !ok {
			t.Fatal("row rejected")
		}
		if rec.Year == nil || *rec.Year != 2001 {
			t.Errorf("Year = %v, want 2001", rec.Year)
		}
		if rec.ReleaseDate == nil || *rec.ReleaseDate != "2001-04-25" {
			t.Errorf("ReleaseDate = %v, want 2001-04-25", rec.ReleaseDate)
		}
	})

	t.Run("derives year from bare numeric release date", func(t *testing.T) {
		rec, ok := n.Normalize(Row{"title": "x", "release_date": "1999.0"})
		if !ok {
			t.Fatal("row rejected")
		}
		if rec.Year == nil || *rec.Year != 1999 {
			t.Errorf("Year = %v, want 1999", rec.Year)
		}
	})

	t.Run("falls back to current year on unparseable release date", func(t *testing.T) {
		rec, ok := n.Normalize(Row{"title": "x", "release_date": "not-a-date"})
		if !ok {
			t.Fatal("row rejected")
		}
		if rec.Year == nil || *rec.Year != 2026 {
			t.Errorf("Year = %v, want clock year 2026", rec.Year)
		}
		if rec.ReleaseDate == nil || *rec.ReleaseDate != "not-a-date" {
			t.Errorf("ReleaseDate = %v, want raw value preserved", rec.ReleaseDate)
		}
	})

	t.Run("uses standalone year field when no release date", func(t *testing.T) {
		rec, ok := n.Normalize(Row{"title": "12 Angry Men", "year": "1957"})
		if !ok {
			t.Fatal("row rejected")
		}
		if rec.Year == nil || *rec.Year != 1957 {
			t.Errorf("Year = %v, want 1957", rec.Year)
		}
	})

	t.Run("unparseable standalone year stays absent", func(t *testing.T) {
		rec, ok := n.Normalize(Row{"title": "x", "year": "unknown"})
		if !ok {
			t.Fatal("row rejected")
		}
		if rec.Year != nil {
			t.Errorf("Year = %v, want nil", rec.Year)
		}
	})

	t.Run("release date takes precedence over year field", func(t *testing.T) {
		rec, ok := n.Normalize(Row{"title": "x", "release_date": "1994-09-23", "year": "1990"})
		if !ok {
			t.Fatal("row rejected")
		}
		if rec.Year == nil || *rec.Year != 1994 {
			t.Errorf("Year = %v, want 1994", rec.Year)
		}
	})

	t.Run("unparseable ratings coerce to zero", func(t *testing.T) {
		rec, ok := n.Normalize(Row{"title": "x", "ratings": "N/A"})
		if !ok {
			t.Fatal("row rejected")
		}
		if rec.Ratings == nil || *rec.Ratings != 0 {
			t.Errorf("Ratings = %v, want 0", rec.Ratings)
		}
	})

	t.Run("absent ratings stay nil", func(t *testing.T) {
		rec, ok := n.Normalize(Row{"title": "x"})
		if !ok {
			t.Fatal("row rejected")
		}
		if rec.Ratings != nil {
			t.Errorf("Ratings = %v, want nil", rec.Ratings)
		}
	})

	t.Run("runtime truncates fractional minutes", func(t *testing.T) {
		rec, ok := n.Normalize(Row{"title": "x", "runtime_minutes": "122.7"})
		if !ok {
			t.Fatal("row rejected")
		}
		if rec.RuntimeMinutes == nil || *rec.RuntimeMinutes != 122 {
			t.Errorf("RuntimeMinutes = %v, want 122", rec.RuntimeMinutes)
		}
	})

	t.Run("invalid runtime stays absent", func(t *testing.T) {
		rec, ok := n.Normalize(Row{"title": "x", "runtime_minutes": "twelve"})
		if !ok {
			t.Fatal("row rejected")
		}
		if rec.RuntimeMinutes != nil {
			t.Errorf("RuntimeMinutes = %v, want nil", rec.RuntimeMinutes)
		}
	})

	t.Run("splits and trims genres", func(t *testing.T) {
		rec, ok := n.Normalize(Row{"title": "x", "genres": "Crime, Drama , Thriller"})
		if !ok {
			t.Fatal("row rejected")
		}
		want := []string{"Crime", "Drama", "Thriller"}
		if !reflect.DeepEqual(rec.Genres, want) {
			t.Errorf("Genres = %v, want %v", rec.Genres, want)
		}
	})

	t.Run("missing genres yield empty slice", func(t *testing.T) {
		rec, ok := n.Normalize(Row{"title": "x"})
		if !ok {
			t.Fatal("row rejected")
		}
		if rec.Genres == nil || len(rec.Genres) != 0 {
			t.Errorf("Genres = %v, want empty non-nil slice", rec.Genres)
		}
	})

	t.Run("language falls back to original language", func(t *testing.T) {
		rec, ok := n.Normalize(Row{"title": "x", "original_language": "fr"})
		if !ok {
			t.Fatal("row rejected")
		}
		if rec.Language == nil || *rec.Language != "fr" {
			t.Errorf("Language = %v, want fr", rec.Language)
		}
	})

	t.Run("explicit language wins over original language", func(t *testing.T) {
		rec, ok := n.Normalize(Row{"title": "x", "language": "en", "original_language": "fr"})
		if !ok {
			t.Fatal("row rejected")
		}
		if rec.Language == nil || *rec.Language != "en" {
			t.Errorf("Language = %v, want en", rec.Language)
		}
	})

	t.Run("carries passthrough fields", func(t *testing.T) {
		rec, ok := n.Normalize(Row{
			"title":      "x",
			"overview":   "plot",
			"vote_count": "10500",
			"budget":     "77000000",
			"homepage":   "https://example.com",
			"imdb_id":    "tt0211915",
			"is_adult":   "0",
		})
		if !ok {
			t.Fatal("row rejected")
		}
		if rec.Overview == nil || *rec.Overview != "plot" {
			t.Errorf("Overview = %v", rec.Overview)
		}
		if rec.VoteCount == nil || *rec.VoteCount != "10500" {
			t.Errorf("VoteCount = %v", rec.VoteCount)
		}
		if rec.IMDBID == nil || *rec.IMDBID != "tt0211915" {
			t.Errorf("IMDBID = %v", rec.IMDBID)
		}
	})
}

func TestParseYear(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"1994", 1994, true},
		{" 1994 ", 1994, true},
		{"1999.0", 1999, true},
		{"2001.9", 2001, true},
		{"", 0, false},
		{"unknown", 0, false},
		{"19a4", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseYear(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("parseYear(%q) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
