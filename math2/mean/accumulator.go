package mean

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/dropbox/gomean/errors"
)

// Accumulator is a streaming sum/count aggregation.  Values are fed one at a
// time with Add and the mean can be read at any point.  Partial accumulators
// over disjoint parts of a sequence can be combined with Merge.
//
// An Accumulator is not safe for concurrent mutation; see stats.MeanSummary
// for a locked wrapper.
type Accumulator struct {
	precision Precision

	count int

	// Float64 and Compensated.  comp holds the running compensation term.
	sum  float64
	comp float64

	sum32 float32

	exact decimal.Decimal

	min float64
	max float64

	// First error seen by Add, reported by Mean.
	err error
}

// Creates an empty accumulator.  An unknown precision falls back to Float64.
func NewAccumulator(opts Options) *Accumulator {
	p := opts.Precision
	if !p.valid() {
		p = Float64
	}
	return &Accumulator{precision: p}
}

// Returns the precision the accumulator sums with.
func (a *Accumulator) Precision() Precision {
	return a.precision
}

// Adds a single value.
func (a *Accumulator) Add(v float64) {
	if a.precision == Exact && (math.IsNaN(v) || math.IsInf(v, 0)) {
		if a.err == nil {
			a.err = errors.Wrapf(ErrNonFinite, "element %d is %v", a.count, v)
		}
		return
	}

	if a.count == 0 {
		a.min, a.max = v, v
	} else {
		a.min = math.Min(a.min, v)
		a.max = math.Max(a.max, v)
	}
	a.count++

	switch a.precision {
	case Float64:
		a.sum += v
	case Compensated:
		a.addCompensated(v)
	case Exact:
		a.exact = a.exact.Add(decimal.NewFromFloat(v))
	case Float32:
		// Widen, add, then narrow back; the same rounding a float32 total
		// gets when fed float64 elements.
		a.sum32 = float32(float64(a.sum32) + v)
	}
}

// Adds every value in order.
func (a *Accumulator) AddAll(values ...float64) {
	for _, v := range values {
		a.Add(v)
	}
}

func (a *Accumulator) addCompensated(v float64) {
	t := a.sum + v
	if math.Abs(a.sum) >= math.Abs(v) {
		a.comp += (a.sum - t) + v
	} else {
		a.comp += (v - t) + a.sum
	}
	a.sum = t
}

// Number of values added so far.  Values rejected by Add are not counted.
func (a *Accumulator) Count() int {
	return a.count
}

// The running total, rounded to float64.
func (a *Accumulator) Sum() float64 {
	switch a.precision {
	case Compensated:
		// Once the sum overflows the compensation term is meaningless
		// (Inf - Inf) and would turn the result into NaN.
		if math.IsInf(a.sum, 0) || math.IsNaN(a.sum) {
			return a.sum
		}
		return a.sum + a.comp
	case Exact:
		return a.exact.InexactFloat64()
	case Float32:
		return float64(a.sum32)
	}
	return a.sum
}

// Smallest value added, NaN when empty.
func (a *Accumulator) Min() float64 {
	if a.count == 0 {
		return math.NaN()
	}
	return a.min
}

// Largest value added, NaN when empty.
func (a *Accumulator) Max() float64 {
	if a.count == 0 {
		return math.NaN()
	}
	return a.max
}

// Returns the arithmetic mean of everything added so far.  Fails with
// ErrEmptyInput when nothing was added, or with the first error Add
// recorded.  With the float precisions a sum that overflows float64 yields
// ±Inf even when every element is finite; use Exact for such inputs.
func (a *Accumulator) Mean() (float64, error) {
	if a.err != nil {
		return 0, a.err
	}
	if a.count == 0 {
		return 0, ErrEmptyInput
	}
	var m float64
	var sum float64
	switch a.precision {
	case Exact:
		m = a.exactMean()
		sum = m
	case Float32:
		sum = float64(a.sum32)
		m = sum / float64(a.count)
	default:
		sum = a.Sum()
		m = sum / float64(a.count)
	}
	// The exact mean always lies in [min, max]; rounding may not.  An
	// overflowed sum is not rounding error and is reported as is.
	if !math.IsNaN(sum) && !math.IsInf(sum, 0) {
		m = math.Max(a.min, math.Min(a.max, m))
	}
	return m, nil
}

// Significant digits kept when dividing the decimal sum.  float64 needs 17.
const exactMeanDigits = 30

// Divides in decimal, so neither the sum nor the quotient is rounded to
// float64 before the final conversion.
func (a *Accumulator) exactMean() float64 {
	if a.exact.IsZero() {
		return 0
	}
	// The sum is roughly 10^magnitude; pick the number of decimal places so
	// the quotient keeps exactMeanDigits significant digits.
	coef := a.exact.Coefficient()
	magnitude := int32(len(coef.Abs(coef).String())) + a.exact.Exponent()
	places := exactMeanDigits - magnitude + int32(len(strconv.Itoa(a.count)))
	return a.exact.DivRound(decimal.NewFromInt(int64(a.count)), places).InexactFloat64()
}

// Folds other into a.  Both accumulators must use the same precision.
// other is left untouched.
func (a *Accumulator) Merge(other *Accumulator) error {
	if other == nil {
		return nil
	}
	if other.precision != a.precision {
		return errors.Wrapf(
			ErrPrecisionMismatch,
			"cannot merge %v into %v",
			other.precision,
			a.precision)
	}

	if a.err == nil {
		a.err = other.err
	}
	if other.count == 0 {
		return nil
	}
	if a.count == 0 {
		a.min, a.max = other.min, other.max
	} else {
		a.min = math.Min(a.min, other.min)
		a.max = math.Max(a.max, other.max)
	}
	a.count += other.count

	switch a.precision {
	case Float64:
		a.sum += other.sum
	case Compensated:
		a.addCompensated(other.sum)
		a.comp += other.comp
	case Exact:
		a.exact = a.exact.Add(other.exact)
	case Float32:
		a.sum32 += other.sum32
	}
	return nil
}

// Drops everything added so far, keeping the precision.
func (a *Accumulator) Reset() {
	*a = Accumulator{precision: a.precision}
}
