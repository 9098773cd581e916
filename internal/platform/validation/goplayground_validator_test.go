package validation_test

import (
	"testing"

	"github.com/ferdiebergado/hireloop/internal/platform/validation"
)

func TestGoplaygroundValidator_ValidateStruct(t *testing.T) {
	t.Parallel()

	type jobInput struct {
		Title     string   `json:"title" validate:"required,max=10"`
		SalaryMin *int64   `json:"salary_min" validate:"omitempty,gte=0"`
		Skills    []string `json:"skills" validate:"max=2,dive,min=1"`
	}

	type brandingInput struct {
		Slug  string `json:"slug" validate:"required,slug"`
		Color string `json:"primary_color" validate:"omitempty,hexcolor"`
		Role  string `json:"role" validate:"omitempty,oneof=candidate recruiter"`
	}

	negative := int64(-1)

	tests := []struct {
		name     string
		given    any
		field    string
		hasError bool
		errMsg   string
	}{
		{"Required field is present", struct {
			Name string `validate:"required"`
		}{Name: "Antonio"}, "Name", false, ""},
		{"Required field is missing", struct {
			Name string `validate:"required"`
		}{}, "Name", true, "Name is required"},
		{"Json name is used", jobInput{}, "title", true, "title is required"},
		{"String max", jobInput{Title: "Staff Platform Engineer"}, "title", true, "title must be at most 10 characters long"},
		{"Number bound", jobInput{Title: "SRE", SalaryMin: &negative}, "salary_min", true, "salary_min must be greater than or equal to 0"},
		{"Slice max", jobInput{Title: "SRE", Skills: []string{"go", "sql", "k8s"}}, "skills", true, "skills must contain at most 2 items"},
		{"Valid slug", brandingInput{Slug: "acme-corp"}, "slug", false, ""},
		{"Invalid slug", brandingInput{Slug: "Acme Corp"}, "slug", true, "slug may only contain lowercase letters, numbers and hyphens"},
		{"Invalid hex color", brandingInput{Slug: "acme", Color: "blue"}, "primary_color", true, "primary_color must be a hex color such as #1A2B3C"},
		{"Oneof", brandingInput{Slug: "acme", Role: "admin"}, "role", true, "role must be one of: candidate, recruiter"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			v := validation.NewGoPlaygroundValidator()

			errs := v.ValidateStruct(tc.given)
			if errs != nil && !tc.hasError {
				t.Errorf("v.ValidateStruct(%v) = %+v, want: %+v", tc.given, errs, nil)
			}

			gotMsg, wantMsg := errs[tc.field], tc.errMsg
			if gotMsg != wantMsg {
				t.Errorf("errs[%q] = %q, want: %q", tc.field, gotMsg, wantMsg)
			}
		})
	}
}
