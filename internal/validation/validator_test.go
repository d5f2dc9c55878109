// MovieDepot - Movie Catalog Ingestion and Query Backend
// Copyright 2026 MovieDepot contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviedepot/moviedepot

package validation

import (
	"strings"
	"testing"
)

type pagingParams struct {
	Page    int    `validate:"min=1"`
	PerPage int    `validate:"min=1,max=100"`
	Sort    string `validate:"omitempty,oneof=asc desc"`
}

func TestValidateStruct(t *testing.T) {
	t.Run("valid struct passes", func(t *testing.T) {
		if err := ValidateStruct(&pagingParams{Page: 1, PerPage: 10}); err != nil {
			t.Errorf("ValidateStruct() = %v, want nil", err)
		}
	})

	t.Run("single failure carries field details", func(t *testing.T) {
		err := ValidateStruct(&pagingParams{Page: 0, PerPage: 10})
		if err == nil {
			t.Fatal("expected validation error")
		}
		errs := err.Errors()
		if len(errs) != 1 {
			t.Fatalf("errors = %d, want 1", len(errs))
		}
		if errs[0].Field() != "Page" || errs[0].Tag() != "min" {
			t.Errorf("error = %s/%s", errs[0].Field(), errs[0].Tag())
		}
		if !strings.Contains(errs[0].Error(), "at least 1") {
			t.Errorf("message = %q", errs[0].Error())
		}
	})

	t.Run("multiple failures combine", func(t *testing.T) {
		err := ValidateStruct(&pagingParams{Page: 0, PerPage: 500, Sort: "sideways"})
		if err == nil {
			t.Fatal("expected validation error")
		}
		if len(err.Errors()) != 3 {
			t.Errorf("errors = %d, want 3", len(err.Errors()))
		}

		apiErr := err.ToAPIError()
		if apiErr.Code != "VALIDATION_ERROR" {
			t.Errorf("Code = %q", apiErr.Code)
		}
		if _, ok := apiErr.Details["fields"]; !ok {
			t.Error("Details missing fields list")
		}
	})

	t.Run("single failure API error exposes tag and value", func(t *testing.T) {
		err := ValidateStruct(&pagingParams{Page: 1, PerPage: 500})
		if err == nil {
			t.Fatal("expected validation error")
		}
		apiErr := err.ToAPIError()
		if apiErr.Details["field"] != "PerPage" || apiErr.Details["tag"] != "max" {
			t.Errorf("Details = %v", apiErr.Details)
		}
	})

	t.Run("oneof message lists options", func(t *testing.T) {
		err := ValidateStruct(&pagingParams{Page: 1, PerPage: 10, Sort: "upward"})
		if err == nil {
			t.Fatal("expected validation error")
		}
		if !strings.Contains(err.Error(), "must be one of") {
			t.Errorf("message = %q", err.Error())
		}
	})
}

func TestGetValidatorSingleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Error("GetValidator returned distinct instances")
	}
}
