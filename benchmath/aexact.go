// Copyright 2025 The speedstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchmath

import (
	"fmt"
	"math"
)

// AssumeExact treats a value as a deterministic count, like the
// recursion calls of a search that explores the same tree on every
// run. Repeated runs are expected to agree. The summary is the most
// frequent count and its interval spans all observed counts.
var AssumeExact = assumeExact{}

type assumeExact struct{}

var _ Assumption = assumeExact{}

func (assumeExact) SummaryLabel() string {
	return "exact"
}

func (assumeExact) Summary(s *Sample, confidence float64) Summary {
	lo, hi := s.Values[0], s.Values[len(s.Values)-1]
	sum := Summary{Center: mostFrequent(s.Values), Lo: lo, Hi: hi, Confidence: 1}
	if lo != hi {
		sum.Warnings = []error{fmt.Errorf("runs disagree: counts range from %v to %v", lo, hi)}
	}
	return sum
}

// mostFrequent returns the most frequent value of the sorted slice xs,
// the smallest one on ties.
func mostFrequent(xs []float64) float64 {
	best, bestRun := xs[0], 0
	for i := 0; i < len(xs); {
		j := i + 1
		for j < len(xs) && xs[j] == xs[i] {
			j++
		}
		if j-i > bestRun {
			best, bestRun = xs[i], j-i
		}
		i = j
	}
	return best
}

// Compare decides from the observed count ranges alone. Disjoint
// ranges are a certain difference and two samples of the same single
// count are certainly equal. Overlapping ranges of varying counts cannot
// be told apart and carry a warning.
func (assumeExact) Compare(s1, s2 *Sample) Comparison {
	c := Comparison{N1: len(s1.Values), N2: len(s2.Values), Alpha: s1.Thresholds.CompareAlpha}
	lo1, hi1 := s1.Values[0], s1.Values[len(s1.Values)-1]
	lo2, hi2 := s2.Values[0], s2.Values[len(s2.Values)-1]
	switch {
	case hi1 < lo2 || hi2 < lo1:
		c.P = 0
	case lo1 == hi1 && lo2 == hi2:
		c.P = 1
	default:
		c.P = 1
		c.Warnings = []error{fmt.Errorf("varying counts overlap from %v to %v", math.Max(lo1, lo2), math.Min(hi1, hi2))}
	}
	return c
}
