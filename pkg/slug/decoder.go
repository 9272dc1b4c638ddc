// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug

import "github.com/fiam/gounidecode/unidecode"

// Decoder maps text in any script to a best-effort Latin approximation.
//
// A nil Decoder is valid everywhere a Decoder is accepted and behaves like
// [Identity].
type Decoder func(string) string

// Identity returns s unchanged.
func Identity(s string) string { return s }

// Unidecode transliterates s to ASCII ("Москва" → "Moskva").
func Unidecode(s string) string { return unidecode.Unidecode(s) }

// Deriver turns free text (typically a title) into a slug.
//
// Derived slugs never exceed [DefaultMaxLength]. The zero value caps at
// [DefaultMaxLength] without transliteration.
type Deriver struct {
	decode    Decoder
	maxLength int
}

// NewDeriver returns a Deriver that transliterates with decode (nil skips the
// step) and caps slugs at maxLength. A maxLength outside 1..[DefaultMaxLength]
// is clamped to [DefaultMaxLength].
func NewDeriver(decode Decoder, maxLength int) Deriver {
	if maxLength < 1 || maxLength > DefaultMaxLength {
		maxLength = DefaultMaxLength
	}
	return Deriver{decode: decode, maxLength: maxLength}
}

// MaxLength reports the effective length cap.
func (d Deriver) MaxLength() int {
	if d.maxLength == 0 {
		return DefaultMaxLength
	}
	return d.maxLength
}

// Derive returns the slug for text.
func (d Deriver) Derive(text string) string {
	if d.decode != nil {
		text = d.decode(text)
	}
	return Make(text, d.MaxLength())
}
