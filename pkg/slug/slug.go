// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug generates ASCII URL slugs from arbitrary Unicode strings.
//
// # Usage
//
// Slugs are used as human-readable identifiers for news entries
// (e.g., "cafe-munchen-opens"). This package handles normalization, accent
// removal, character sanitization and length capping.
//
// Every function here is pure: the same input (and the same [Decoder]) always
// yields the same slug.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultMaxLength is the slug length used by the admin title field.
const DefaultMaxLength = 64

// Separator joins the words of a slug.
const Separator = '-'

var (
	// nonAlphanumeric matches any sequence of non-alphanumeric, non-hyphen characters.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9-]+`)
	// multiHyphen collapses multiple consecutive hyphens into one.
	multiHyphen = regexp.MustCompile(`-{2,}`)
)

// From converts an arbitrary Unicode string into a URL-safe ASCII slug.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD (decomposes accented chars: é → e + combining acute).
// 2. Removes combining marks (accents).
// 3. Converts to lowercase.
// 4. Replaces non-alphanumeric characters with hyphens.
// 5. Collapses multiple hyphens and trims leading/trailing hyphens.
//
// Characters with no decomposition into [a-z0-9] (Cyrillic, CJK, emoji) become
// separators. Run a [Decoder] first to keep them.
func From(s string) string {
	// 1. Normalize and remove accents
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		result = s
	}

	// 2. Lowercase
	result = strings.ToLower(result)

	// 3. Replace whitespace and special chars with hyphens
	result = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return Separator
	}, result)

	// 4. Clean up hyphenation
	result = nonAlphanumeric.ReplaceAllString(result, "-")
	result = multiHyphen.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")

	return result
}

// Make slugifies s and caps the result at maxLength characters.
//
// A maxLength of zero or less disables the cap.
func Make(s string, maxLength int) string {
	return Truncate(From(s), maxLength)
}

// Truncate shortens an already-valid slug to at most maxLength characters.
//
// When the cut would land inside a word, the slug is shortened back to the
// previous separator. A single word longer than maxLength is cut hard.
func Truncate(s string, maxLength int) string {
	if maxLength <= 0 || len(s) <= maxLength {
		return s
	}

	cut := s[:maxLength]
	if s[maxLength] != Separator {
		if idx := strings.LastIndexByte(cut, Separator); idx > 0 {
			cut = cut[:idx]
		}
	}

	return strings.TrimRight(cut, "-")
}
