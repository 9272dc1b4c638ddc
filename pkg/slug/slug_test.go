// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/newsdesk/pkg/slug"
)

var slugAlphabet = regexp.MustCompile(`^[a-z0-9-]*$`)

/*
TestMake covers the canonical title → slug conversions.
*/
func TestMake(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple_title", "New Title", "new-title"},
		{"punctuation", "Hello, World!", "hello-world"},
		{"accents", "Café Münchën", "cafe-munchen"},
		{"collapse_separators", "a -- b __ c", "a-b-c"},
		{"trim_separators", "--leading and trailing--", "leading-and-trailing"},
		{"digits", "Top 10 of 2026", "top-10-of-2026"},
		{"whitespace_only", "   ", ""},
		{"empty", "", ""},
		{"non_latin_without_decoder", "Москва", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.Make(tt.input, slug.DefaultMaxLength))
		})
	}
}

/*
TestTruncate checks the word-boundary preference of the length cap.
*/
func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{"short_enough", "news-entry", 64, "news-entry"},
		{"cut_on_separator", "alpha-beta-gamma", 10, "alpha-beta"},
		{"cut_mid_word", "alpha-beta-gamma", 13, "alpha-beta"},
		{"single_long_word", "abcdefghij", 4, "abcd"},
		{"no_cap", "alpha-beta", 0, "alpha-beta"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.Truncate(tt.input, tt.max))
		})
	}
}

/*
TestMake_Properties verifies idempotence, alphabet closure and the length cap
over a mixed corpus of inputs.
*/
func TestMake_Properties(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"New Title",
		"Ünïcödé everywhere — with dashes – and “quotes”",
		strings.Repeat("word ", 40),
		strings.Repeat("x", 100),
		"Ελληνικά και English mixed 123",
		"emoji 🎉 party 🎉 time",
		"trailing-separator-at-the-cut-point-of-sixty-four-characters-exactly-yes",
	}

	for _, input := range inputs {
		once := slug.Make(input, slug.DefaultMaxLength)

		assert.Equal(t, once, slug.Make(once, slug.DefaultMaxLength), "idempotent for %q", input)
		assert.Regexp(t, slugAlphabet, once, "alphabet for %q", input)
		assert.LessOrEqual(t, len(once), slug.DefaultMaxLength, "length for %q", input)
		assert.False(t, strings.HasPrefix(once, "-") || strings.HasSuffix(once, "-"), "trimmed for %q", input)
	}
}

/*
TestDeriver_Decoder verifies that the optional decoder runs before slugging.
*/
func TestDeriver_Decoder(t *testing.T) {
	table := strings.NewReplacer("é", "e", "ü", "u", "ë", "e")

	withDecoder := slug.NewDeriver(table.Replace, slug.DefaultMaxLength)
	assert.Equal(t, "cafe-munchen", withDecoder.Derive("Café Münchën"))
	assert.Equal(t, "", withDecoder.Derive("   "))

	withoutDecoder := slug.NewDeriver(nil, slug.DefaultMaxLength)
	assert.Equal(t, "new-title", withoutDecoder.Derive("New Title"))

	identity := slug.NewDeriver(slug.Identity, slug.DefaultMaxLength)
	assert.Equal(t, withoutDecoder.Derive("Москва news"), identity.Derive("Москва news"))
	assert.Equal(t, "news", identity.Derive("Москва news"))

	transliterating := slug.NewDeriver(slug.Unidecode, slug.DefaultMaxLength)
	assert.Equal(t, "moskva", transliterating.Derive("Москва"))
}

/*
TestDeriver_LengthCap verifies that no configuration derives slugs longer than
the default cap.
*/
func TestDeriver_LengthCap(t *testing.T) {
	long := strings.Repeat("word ", 40)

	tests := []struct {
		name      string
		deriver   slug.Deriver
		maxLength int
	}{
		{"zero_value", slug.Deriver{}, slug.DefaultMaxLength},
		{"above_cap", slug.NewDeriver(nil, 200), slug.DefaultMaxLength},
		{"negative", slug.NewDeriver(nil, -1), slug.DefaultMaxLength},
		{"below_cap", slug.NewDeriver(nil, 20), 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.maxLength, tt.deriver.MaxLength())

			derived := tt.deriver.Derive(long)
			assert.LessOrEqual(t, len(derived), tt.maxLength)
			assert.Regexp(t, slugAlphabet, derived)
		})
	}
}
