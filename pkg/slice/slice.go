// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package slice compliments the standard [slices] package by providing functional
programming utilities (Map, GroupBy) leveraging generics.
*/
package slice

// Map maps a slice of type T to a slice of type U using the provided transformation function.
func Map[T any, U any](input []T, transform func(T) U) []U {
	if input == nil {
		return nil
	}

	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}

	return result
}

// GroupBy buckets a slice by the key returned from keyOf, preserving input order within each bucket.
func GroupBy[T any, K comparable](input []T, keyOf func(T) K) map[K][]T {
	result := make(map[K][]T)
	for _, v := range input {
		k := keyOf(v)
		result[k] = append(result[k], v)
	}
	return result
}
