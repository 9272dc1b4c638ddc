// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/newsdesk/internal/platform/apperr"
	"github.com/taibuivan/newsdesk/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "title", "Release notes", false},
		{"empty_string", "title", "", true},
		{"whitespace_only", "title", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_URL checks the image URL rule.
*/
func TestValidator_URL(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		isValid bool
	}{
		{"https", "https://cdn.example.org/a.png", true},
		{"empty_is_optional", "", true},
		{"relative", "/static/a.png", false},
		{"ftp", "ftp://example.org/a.png", false},
		{"garbage", "::nope", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.URL("image_url", tt.value)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Slug checks the slug format rule.
*/
func TestValidator_Slug(t *testing.T) {
	tests := []struct {
		value   string
		isValid bool
	}{
		{"release-notes-2026", true},
		{"a", true},
		{"-leading", false},
		{"trailing-", false},
		{"double--dash", false},
		{"Upper", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			v := &validate.Validator{}
			v.Slug("slug", tt.value)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Language restricts values to the configured site languages.
*/
func TestValidator_Language(t *testing.T) {
	allowed := []string{"en", "de"}

	assert.False(t, (&validate.Validator{}).Language("language", "de", allowed).HasErrors())
	assert.True(t, (&validate.Validator{}).Language("language", "fr", allowed).HasErrors())
	assert.True(t, (&validate.Validator{}).Language("language", "!!", allowed).HasErrors())
}

/*
TestValidator_Chain tests the fluent API (chaining multiple rules).
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}

	// Multi-rule validation
	err := v.
		Required("title", "Hello").
		MaxLen("title", "Hello", 10).
		OneOf("action", "publish", "publish", "unpublish").
		Range("count", 5, 1, 50).
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("title", "").                             // Fails
		MaxLen("title", "too long", 3).                    // Fails
		OneOf("action", "archive", "publish", "unpublish"). // Fails
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	// Should accumulate all 3 errors
	assert.Len(t, ae.Details, 3)
}
