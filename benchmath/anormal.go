// Copyright 2025 The speedstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchmath

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"
)

// AssumeNormal is an assumption that a sample is normally distributed.
// The summary statistic is the sample mean and comparisons are done
// using Welch's two-sample t-test.
var AssumeNormal = assumeNormal{}

type assumeNormal struct{}

var _ Assumption = assumeNormal{}

func (assumeNormal) SummaryLabel() string {
	return "mean"
}

func (assumeNormal) Summary(s *Sample, confidence float64) Summary {
	sample := s.sample()
	if len(s.Values) < 2 {
		// A single run has no spread to estimate.
		return Summary{
			Center:     sample.Mean(),
			Lo:         math.Inf(-1),
			Hi:         math.Inf(1),
			Confidence: 1,
			Warnings:   []error{fmt.Errorf("need >= 2 samples for confidence interval at level %v", confidence)},
		}
	}
	mean, lo, hi := sample.MeanCI(confidence)
	return Summary{
		Center:     mean,
		Lo:         lo,
		Hi:         hi,
		Confidence: confidence,
	}
}

func (assumeNormal) Compare(s1, s2 *Sample) Comparison {
	res := Comparison{N1: len(s1.Values), N2: len(s2.Values), Alpha: s1.Thresholds.CompareAlpha}
	if res.N1 < 2 || res.N2 < 2 {
		res.P = 1
		res.Warnings = []error{fmt.Errorf("need >= 2 samples to detect a difference at alpha level %v", res.Alpha)}
		return res
	}
	t, err := stats.TwoSampleWelchTTest(s1.sample(), s2.sample(), stats.LocationDiffers)
	if err != nil {
		// The t-test failed. Report as if there's no
		// significant difference, along with the error.
		res.P = 1
		res.Warnings = []error{err}
		return res
	}
	res.P = t.P
	return res
}
