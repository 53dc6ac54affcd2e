// Copyright 2025 The speedstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package speedup derives ratio columns, such as speedups over a
// baseline implementation, from a comparison Frame.
package speedup

import (
	"fmt"
	"math"

	"github.com/pdp-bench/speedstat/benchtable"
)

// A Ratio describes a derived column Name = Num / Den, computed row by
// row from two value columns of a Frame.
type Ratio struct {
	Name     string
	Num, Den string

	// ZeroNumAsMissing treats a zero numerator as a missing value
	// rather than a zero ratio. Reference timings use zero for runs
	// that were not measured.
	ZeroNumAsMissing bool
}

func (r Ratio) String() string {
	return fmt.Sprintf("%s = %s/%s", r.Name, r.Num, r.Den)
}

// Value returns num/den following the missing value rules of r: NaN
// in either operand gives NaN, and x/0 is +Inf for positive x.
func (r Ratio) Value(num, den float64) float64 {
	if r.ZeroNumAsMissing && num == 0 {
		return math.NaN()
	}
	return num / den
}

// Apply adds the columns described by ratios to f in order. A ratio
// whose numerator or denominator column f does not have is skipped;
// Apply returns the skipped ratios. Existing columns are replaced.
func Apply(f *benchtable.Frame, ratios ...Ratio) (skipped []Ratio, err error) {
	for _, r := range ratios {
		num, ok1 := f.Column(r.Num)
		den, ok2 := f.Column(r.Den)
		if !ok1 || !ok2 {
			skipped = append(skipped, r)
			continue
		}
		vals := make([]float64, len(num))
		for i := range vals {
			vals[i] = r.Value(num[i], den[i])
		}
		if err := f.SetColumn(r.Name, vals); err != nil {
			return skipped, fmt.Errorf("ratio %s: %w", r, err)
		}
	}
	return skipped, nil
}

// Over returns speedup ratios baseline/impl for each impl other than
// baseline. format names each ratio column and must contain one %s
// verb for the implementation, as in "speedup_%s".
func Over(baseline string, impls []string, format string) []Ratio {
	var rs []Ratio
	for _, impl := range impls {
		if impl == baseline {
			continue
		}
		rs = append(rs, Ratio{Name: fmt.Sprintf(format, impl), Num: baseline, Den: impl})
	}
	return rs
}

// Relative returns ratios impl/baseline for each impl other than
// baseline, as in "%s_rel_seq".
func Relative(baseline string, impls []string, format string) []Ratio {
	var rs []Ratio
	for _, impl := range impls {
		if impl == baseline {
			continue
		}
		rs = append(rs, Ratio{Name: fmt.Sprintf(format, impl), Num: impl, Den: baseline})
	}
	return rs
}

// Between returns the single ratio num/den named name.
func Between(name, num, den string) Ratio {
	return Ratio{Name: name, Num: num, Den: den}
}

// Columns returns the names of rs.
func Columns(rs []Ratio) []string {
	names := make([]string, len(rs))
	for i, r := range rs {
		names[i] = r.Name
	}
	return names
}
