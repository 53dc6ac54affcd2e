// Copyright 2025 The speedstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package speedup

import (
	"math"

	"github.com/aclements/go-moremath/stats"

	"github.com/pdp-bench/speedstat/benchtable"
)

// A Summary describes the finite values of one column.
type Summary struct {
	Column string

	// Count is the number of finite values. The other fields are
	// NaN if it is zero.
	Count int

	Mean, Median float64
	Min, Max     float64

	// GeoMean is the geometric mean of the positive values, or NaN
	// if there are none.
	GeoMean float64
}

// Summarize summarizes each of cols in f. Columns f does not have are
// skipped.
func Summarize(f *benchtable.Frame, cols ...string) []Summary {
	var out []Summary
	for _, c := range cols {
		vals, ok := f.Column(c)
		if !ok {
			continue
		}
		out = append(out, summarize(c, vals))
	}
	return out
}

func summarize(name string, vals []float64) Summary {
	var xs, pos []float64
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		xs = append(xs, v)
		if v > 0 {
			pos = append(pos, v)
		}
	}
	s := Summary{Column: name, Count: len(xs)}
	if len(xs) == 0 {
		nan := math.NaN()
		s.Mean, s.Median, s.Min, s.Max, s.GeoMean = nan, nan, nan, nan, nan
		return s
	}
	sample := stats.Sample{Xs: xs}
	s.Mean = stats.Mean(xs)
	s.Median = sample.Quantile(0.5)
	s.Min, s.Max = stats.Bounds(xs)
	s.GeoMean = math.NaN()
	if len(pos) > 0 {
		s.GeoMean = stats.GeoMean(pos)
	}
	return s
}
