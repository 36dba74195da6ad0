package utils

import (
	"strings"
	"testing"
)

type usernameFixture struct {
	Username string `validate:"required,max=150,username"`
}

type slugFixture struct {
	Slug string `validate:"required,max=50,slug"`
}

func TestUsernameValidation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		valid    bool
	}{
		{"simple", "reader42", true},
		{"with allowed symbols", "first.last@host+tag-x", true},
		{"underscore", "some_user", true},
		{"reserved me", "me", false},
		{"me as prefix is fine", "medusa", true},
		{"space", "two words", false},
		{"slash", "a/b", false},
		{"empty", "", false},
		{"too long", strings.Repeat("a", 151), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateStruct(usernameFixture{Username: tt.username})
			if gotValid := len(errs) == 0; gotValid != tt.valid {
				t.Errorf("username %q: valid = %v, want %v (errors: %v)", tt.username, gotValid, tt.valid, errs)
			}
		})
	}
}

func TestSlugValidation(t *testing.T) {
	tests := []struct {
		name  string
		slug  string
		valid bool
	}{
		{"simple", "science-fiction", true},
		{"underscore and digits", "top_10", true},
		{"uppercase", "Movies", true},
		{"dot", "sci.fi", false},
		{"space", "sci fi", false},
		{"empty", "", false},
		{"too long", strings.Repeat("x", 51), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateStruct(slugFixture{Slug: tt.slug})
			if gotValid := len(errs) == 0; gotValid != tt.valid {
				t.Errorf("slug %q: valid = %v, want %v (errors: %v)", tt.slug, gotValid, tt.valid, errs)
			}
		})
	}
}

func TestFormatValidationErrors(t *testing.T) {
	msg := FormatValidationErrors(map[string]string{"Username": "This field is required"})
	if !strings.Contains(msg, "Username") {
		t.Errorf("FormatValidationErrors() = %q, want it to name the field", msg)
	}
}
