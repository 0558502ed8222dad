// Attendly - Event Discovery, Review, and Recommendation Platform
// Copyright 2026 The Attendly Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attendly/attendly

package validation

import (
	"strings"
	"testing"
)

type reviewRequest struct {
	Rating int    `validate:"required,min=1,max=5"`
	Text   string `validate:"max=20"`
}

type registerRequest struct {
	Username string `validate:"required,min=3,max=32,alphanum"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

func TestValidateStructPasses(t *testing.T) {
	err := ValidateStruct(&reviewRequest{Rating: 4, Text: "good show"})
	if err != nil {
		t.Errorf("ValidateStruct() = %v, want nil", err)
	}
}

func TestValidateStructFieldErrors(t *testing.T) {
	tests := []struct {
		name      string
		input     interface{}
		wantField string
		wantInMsg string
	}{
		{
			name:      "missing rating",
			input:     &reviewRequest{Text: "ok"},
			wantField: "Rating",
			wantInMsg: "required",
		},
		{
			name:      "rating above max",
			input:     &reviewRequest{Rating: 6},
			wantField: "Rating",
			wantInMsg: "at most 5",
		},
		{
			name:      "text too long",
			input:     &reviewRequest{Rating: 3, Text: strings.Repeat("x", 21)},
			wantField: "Text",
			wantInMsg: "at most 20 characters",
		},
		{
			name:      "invalid email",
			input:     &registerRequest{Username: "alice", Email: "nope", Password: "longenough"},
			wantField: "Email",
			wantInMsg: "valid email",
		},
		{
			name:      "username with symbols",
			input:     &registerRequest{Username: "al!ce", Email: "a@example.com", Password: "longenough"},
			wantField: "Username",
			wantInMsg: "letters and digits",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.input)
			if err == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}

			errs := err.Errors()
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(errs), err)
			}
			if errs[0].Field() != tt.wantField {
				t.Errorf("Field() = %q, want %q", errs[0].Field(), tt.wantField)
			}
			if !strings.Contains(errs[0].Error(), tt.wantInMsg) {
				t.Errorf("Error() = %q, want substring %q", errs[0].Error(), tt.wantInMsg)
			}
		})
	}
}

func TestToAPIErrorSingle(t *testing.T) {
	err := ValidateStruct(&reviewRequest{Rating: 0})
	if err == nil {
		t.Fatal("expected validation error")
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if apiErr.Details["field"] != "Rating" {
		t.Errorf("Details[field] = %v, want Rating", apiErr.Details["field"])
	}
}

func TestToAPIErrorMultiple(t *testing.T) {
	err := ValidateStruct(&registerRequest{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if len(err.Errors()) < 2 {
		t.Fatalf("got %d errors, want several", len(err.Errors()))
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok {
		t.Fatalf("Details[fields] has type %T, want field list", apiErr.Details["fields"])
	}
	if len(fields) != len(err.Errors()) {
		t.Errorf("fields count = %d, want %d", len(fields), len(err.Errors()))
	}
}
