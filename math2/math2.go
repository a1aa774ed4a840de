package math2

import (
	"golang.org/x/exp/constraints"
)

// Any integer or floating point type the numeric packages accept as input.
type Number interface {
	constraints.Integer | constraints.Float
}

// Generic versions of math.Min / math.Max.  Unlike the stdlib functions these
// do not special case NaN or signed zeros.

func Min[T Number](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func Max[T Number](a, b T) T {
	if a < b {
		return b
	}
	return a
}

// Returns the smallest and largest element of values.  ok is false when
// values is empty.
func MinMax[T Number](values []T) (min T, max T, ok bool) {
	if len(values) == 0 {
		return min, max, false
	}
	min, max = values[0], values[0]
	for _, v := range values[1:] {
		min = Min(min, v)
		max = Max(max, v)
	}
	return min, max, true
}
