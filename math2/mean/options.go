package mean

import (
	"fmt"
)

// Precision selects the accumulator used while summing.
type Precision int

const (
	// Plain float64 running sum.  This is the zero value and the default.
	Float64 Precision = iota

	// float64 running sum with Neumaier (improved Kahan-Babuska)
	// compensation.  Roughly twice the work of Float64, but the error no
	// longer grows with the number of elements.
	Compensated

	// Arbitrary precision decimal sum, rounded to float64 once at the end.
	// The result does not depend on element order.  Slowest, and rejects
	// NaN / Inf elements with ErrNonFinite.
	Exact

	// Every partial sum is rounded to float32.  Only useful to measure how
	// far a narrowed accumulator drifts; never pick this for real work.
	Float32
)

func (p Precision) String() string {
	switch p {
	case Float64:
		return "Float64"
	case Compensated:
		return "Compensated"
	case Exact:
		return "Exact"
	case Float32:
		return "Float32"
	}
	return fmt.Sprintf("Precision(%d)", int(p))
}

func (p Precision) valid() bool {
	return p >= Float64 && p <= Float32
}

// Options for the mean computations.  The zero value is ready to use.
type Options struct {
	Precision Precision
}
