// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package textutil normalizes and shortens user-entered prose.
//
// # Usage
//
// Story titles, chapter bodies and choice labels arrive from HTML forms in
// whatever Unicode form the browser produced. They are normalized to NFC
// before storage so that "é" typed two different ways compares equal, and
// truncation never splits a character.
package textutil

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Ellipsis is appended by [Abbreviate] when text is cut short.
const Ellipsis = "..."

// Normalize converts s to Unicode NFC and trims surrounding whitespace.
func Normalize(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

// IsBlank reports whether s contains only whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Truncate returns at most max characters (runes) of s.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}

	// Walk runes rather than bytes so multi-byte characters stay intact
	count := 0
	for i := range s {
		if count == max {
			return s[:i]
		}
		count++
	}
	return s
}

// Abbreviate truncates s to max runes and appends [Ellipsis] when something was cut.
func Abbreviate(s string, max int) string {
	cut := Truncate(s, max)
	if cut == s {
		return s
	}
	return cut + Ellipsis
}
