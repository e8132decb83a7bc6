// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert provides quick type-conversion utilities for form values.

It wraps [strconv] to provide fault-tolerant conversions (e.g., returning 0
instead of an error when parsing fails). This is useful in handlers parsing
HTML form submissions.

Do not use this package if distinguishing between malformed data and zero values
is important in your domain logic; use [ToIntPtr] or the standard library instead.
*/
package convert

import (
	"strconv"
	"strings"
)

// ToInt converts a string to an integer, silencing parsing errors.
// It returns 0 if the string is empty or cannot be parsed.
func ToInt(s string) int {
	return ToIntD(s, 0)
}

// ToIntD converts a string to an int, returning the provided default if parsing fails or string is empty.
func ToIntD(str string, def int) int {

	// If the string is empty, return the default value
	str = strings.TrimSpace(str)
	if str == "" {
		return def
	}

	if v, err := strconv.Atoi(str); err == nil {
		return v
	}

	return def
}

// ToIntPtr parses an optional integer field.
// It returns nil when the field is blank or not a number.
func ToIntPtr(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

// ToBool parses a boolean form value ("true", "1", "on", "false", "0").
// HTML checkboxes submit "on" when ticked and nothing otherwise.
// It returns false on empty string or parse error.
func ToBool(s string) bool {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return false
	}
	if s == "on" || s == "yes" {
		return true
	}

	v, _ := strconv.ParseBool(s)
	return v
}
