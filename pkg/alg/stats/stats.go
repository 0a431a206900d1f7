// Package stats provides small numeric helpers used by metric aggregation
// and corpus-relative thresholds.
package stats

import (
	"cmp"
	"errors"
	"math"
	"slices"
)

// ErrEmpty is returned by functions that need at least one value.
var ErrEmpty = errors.New("empty value set")

// Mean returns the arithmetic mean of values.
// Returns 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	return Sum(values) / float64(len(values))
}

// RankIndex returns the index of the p-th percentile (p in [0, 100]) in an
// ascending slice of length n: floor(n*p/100), clamped to the last element.
func RankIndex(n int, p float64) int {
	idx := int(math.Floor(float64(n) * p / 100))

	return Clamp(idx, 0, max(n-1, 0))
}

// RankPercentile sorts a copy of values ascending and returns the element at
// [RankIndex]. No interpolation is applied.
func RankPercentile(values []float64, p float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmpty
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	return sorted[RankIndex(len(sorted), p)], nil
}

// Round rounds value to the given number of decimal places, resolving
// midpoints to the even neighbour.
func Round(value float64, places int) float64 {
	scale := math.Pow(10, float64(places))

	return math.RoundToEven(value*scale) / scale
}

// Clamp restricts val to the range [lo, hi].
func Clamp[T cmp.Ordered](val, lo, hi T) T {
	return max(lo, min(val, hi))
}

// Max returns the largest element in values.
// Returns the zero value of T for an empty slice.
func Max[T cmp.Ordered](values []T) T {
	if len(values) == 0 {
		var zero T

		return zero
	}

	return slices.Max(values)
}

// Sum returns the sum of all elements in values.
// Returns the zero value of T for an empty slice.
func Sum[T cmp.Ordered](values []T) T {
	var result T

	for _, v := range values {
		result += v
	}

	return result
}
