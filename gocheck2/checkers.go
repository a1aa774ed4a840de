// Extensions to the go-check unittest framework for numeric code.
//
// NOTE: see https://github.com/go-check/check/pull/6 for reasons why these
// checkers live here.
package gocheck2

import (
	"fmt"
	"math"
	"reflect"

	. "gopkg.in/check.v1"
)

// -----------------------------------------------------------------------
// IsTrue / IsFalse checker.

type isBoolValueChecker struct {
	*CheckerInfo
	expected bool
}

func (checker *isBoolValueChecker) Check(
	params []interface{},
	names []string) (
	result bool,
	error string) {

	obtained, ok := params[0].(bool)
	if !ok {
		return false, "Argument to " + checker.Name + " must be bool"
	}

	return obtained == checker.expected, ""
}

// The IsTrue checker verifies that the obtained value is true.
//
// For example:
//
//     c.Assert(value, IsTrue)
//
var IsTrue Checker = &isBoolValueChecker{
	&CheckerInfo{Name: "IsTrue", Params: []string{"obtained"}},
	true,
}

// The IsFalse checker verifies that the obtained value is false.
//
// For example:
//
//     c.Assert(value, IsFalse)
//
var IsFalse Checker = &isBoolValueChecker{
	&CheckerInfo{Name: "IsFalse", Params: []string{"obtained"}},
	false,
}

// -----------------------------------------------------------------------
// AlmostEquals checker.

type almostEqualsChecker struct {
	*CheckerInfo
}

// Accepts any value whose kind is an integer or float.
func toFloat64(v interface{}) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	}
	return 0, false
}

func (checker *almostEqualsChecker) Check(
	params []interface{},
	names []string) (
	result bool,
	error string) {

	var values [3]float64
	for i := range values {
		v, ok := toFloat64(params[i])
		if !ok {
			return false, fmt.Sprintf(
				"Argument %q to AlmostEquals must be a number", names[i])
		}
		values[i] = v
	}
	obtained, expected, tolerance := values[0], values[1], values[2]
	if tolerance < 0 {
		return false, "Tolerance must not be negative"
	}
	if obtained == expected {
		return true, ""
	}

	diff := math.Abs(obtained - expected)
	scale := math.Max(math.Abs(obtained), math.Abs(expected))
	if scale > 1 {
		diff /= scale
	}
	return diff <= tolerance, ""
}

// The AlmostEquals checker verifies that the obtained number is within
// tolerance of the expected one.  The difference is relative when the
// magnitudes are above 1 and absolute otherwise.  NaN never matches.
//
// For example:
//
//     c.Assert(mean, AlmostEquals, 0.3, 1e-12)
//
var AlmostEquals Checker = &almostEqualsChecker{
	&CheckerInfo{
		Name:   "AlmostEquals",
		Params: []string{"obtained", "expected", "tolerance"},
	},
}
