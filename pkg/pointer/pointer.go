// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer converts between optional (pointer) and plain values.

Optional columns such as an entry's image URL or publication date are
pointers in the domain types; forms and templates work with plain values.
*/
package pointer

// To returns a pointer to the provided value.
func To[T any](v T) *T {
	return &v
}

// Val safely dereferences a pointer, returning the zero value for nil.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// NonZero returns nil for the zero value of T and a pointer to v otherwise.
// Empty form fields become absent optional values this way.
func NonZero[T comparable](v T) *T {
	var zero T
	if v == zero {
		return nil
	}
	return &v
}
