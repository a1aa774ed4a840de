// Package mean computes arithmetic means of numeric sequences.
//
// The accumulator precision is always explicit.  The package-level helpers
// sum in float64 (or wider, see Options) regardless of the element type, so
// a []float32 or []int32 input is never summed in its own narrow type.
//
// The mean of an empty sequence is undefined: every function here fails with
// ErrEmptyInput instead of returning NaN.  All functions are pure and safe to
// call from multiple goroutines.
package mean

import (
	"github.com/dropbox/gomean/errors"
	"github.com/dropbox/gomean/math2"
)

var (
	ErrEmptyInput = errors.InvalidArgument(
		"mean of an empty sequence is undefined")

	ErrNonFinite = errors.InvalidArgument(
		"exact accumulation requires finite values")

	ErrPrecisionMismatch = errors.InvalidArgument(
		"accumulators use different precisions")
)

// Mean returns sum(values) / len(values), summed in float64.
func Mean(values []float64) (float64, error) {
	return MeanWithOptions(values, Options{})
}

// MeanOf is Mean for any integer or float element type.
func MeanOf[T math2.Number](values []T) (float64, error) {
	return MeanWithOptions(values, Options{})
}

// MeanWithOptions is MeanOf with a caller chosen accumulator.
//
// Integer elements are converted to float64 before being added, so integers
// beyond 2^53 lose precision even with Exact.
func MeanWithOptions[T math2.Number](values []T, opts Options) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptyInput
	}
	acc := NewAccumulator(opts)
	for _, v := range values {
		acc.Add(float64(v))
	}
	return acc.Mean()
}
