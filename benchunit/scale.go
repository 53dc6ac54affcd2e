// Copyright 2025 The speedstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchunit

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// A Scaler formats numbers in units of an SI prefix.
type Scaler struct {
	Prec   int     // digits after the decimal point
	Factor float64 // value of one Prefix, e.g. 1e-3 for "m"
	Prefix string
}

// Format formats val in the units of s. For a Scaler computed for
// 0.0123456 seconds, Format(0.0123456) returns "12.35m".
//
// A NaN is a missing value and formats as "-". Infinities format as
// "inf" and "-inf".
func (s Scaler) Format(val float64) string {
	switch {
	case math.IsNaN(val):
		return "-"
	case math.IsInf(val, 1):
		return "inf"
	case math.IsInf(val, -1):
		return "-inf"
	}
	return strconv.FormatFloat(val/s.Factor, 'f', s.Prec, 64) + s.Prefix
}

// sigfigs is the number of significant digits shown for the smallest
// value of a scale.
const sigfigs = 4

type prefix struct {
	factor float64
	name   string
}

// prefixes are the SI prefixes by power of ten.
var prefixes = map[int]prefix{
	12: {1e12, "T"}, 9: {1e9, "G"}, 6: {1e6, "M"}, 3: {1e3, "k"},
	0: {1, ""}, -3: {1e-3, "m"}, -6: {1e-6, "µ"}, -9: {1e-9, "n"},
}

// exponent range of each class
var (
	decimalRange = [2]int{-9, 12}
	countRange   = [2]int{0, 12}
)

// Scale formats val with at least four significant digits and an SI
// prefix.
func Scale(val float64, cls Class) string {
	return CommonScale([]float64{val}, cls).Format(val)
}

// CommonScale returns one Scaler for all of vals, showing at least four
// significant digits of the finite value closest to zero. NaNs and
// infinities are ignored. Counts are never scaled below the unit, so a
// small mean of counts gets more decimals instead of a milli prefix.
func CommonScale(vals []float64, cls Class) Scaler {
	var min float64
	for _, v := range vals {
		v = math.Abs(v)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if v != 0 && (min == 0 || v < min) {
			min = v
		}
	}
	if min == 0 {
		return Scaler{sigfigs - 1, 1, ""}
	}

	var bounds [2]int
	switch cls {
	default:
		panic(fmt.Sprintf("bad Class %v", cls))
	case Decimal:
		bounds = decimalRange
	case Count:
		bounds = countRange
	}

	mag := magnitude(min)
	exp := 3 * floorDiv(mag, 3)
	if exp < bounds[0] {
		exp = bounds[0]
	}
	if exp > bounds[1] {
		exp = bounds[1]
	}
	prec := sigfigs - 1 - (mag - exp)
	if prec < 1 {
		prec = 1
	}
	p := prefixes[exp]
	return Scaler{prec, p.factor, p.name}
}

// magnitude returns the decimal exponent of v once rounded to sigfigs
// digits, so that 999.96 counts as 1.000e3 the way it prints.
func magnitude(v float64) int {
	s := strconv.FormatFloat(v, 'e', sigfigs-1, 64)
	e, err := strconv.Atoi(s[strings.IndexByte(s, 'e')+1:])
	if err != nil {
		panic(fmt.Sprintf("magnitude(%v): %v", v, err))
	}
	return e
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
