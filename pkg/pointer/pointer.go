// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer provides generic helpers for optional values.

Optional references (a choice's destination chapter, an explicit display
order) are modelled as pointers; these helpers keep call sites short.
*/
package pointer

// Val safely dereferences a pointer.
// If the pointer is nil, it returns the zero value of the underlying type.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Fallback safely dereferences a pointer.
// If the pointer is nil, it returns the provided fallback value instead.
func Fallback[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}

// NonEmpty returns nil for the empty string and a pointer to s otherwise.
// Form fields use it to turn "no selection" into an absent reference.
func NonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
