// Copyright 2025 The speedstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aclements/go-moremath/stats"

	"github.com/pdp-bench/speedstat/benchcsv"
	"github.com/pdp-bench/speedstat/benchmath"
	"github.com/pdp-bench/speedstat/benchunit"
	"github.com/pdp-bench/speedstat/internal/texttab"
)

// A CaseComparison compares two implementations on one benchmark
// case.
type CaseComparison struct {
	File string
	A    int

	Old, New   benchmath.Summary
	Comparison benchmath.Comparison

	// Warnings collects the warnings of both samples, both
	// summaries and the comparison.
	Warnings []error
}

// AssumptionFor returns the distributional assumption for repeated
// measurements of column. Recursion calls of a deterministic search
// are exact; times are noisy.
func AssumptionFor(column string) benchmath.Assumption {
	if column == benchcsv.ColRecursionCalls {
		return benchmath.AssumeExact
	}
	return benchmath.AssumeNormal
}

type caseKey struct {
	file string
	a    int
}

// Compare compares implementation newImpl against oldImpl on every (file, a)
// case both measured. The repeated measurements of column ("time" or
// "recursion calls") of each case are summarized under AssumptionFor
// at the given confidence level and tested for a difference. Compare
// prints the comparison as a text table and returns it.
func (w *Writer) Compare(ms []benchcsv.Measurement, oldImpl, newImpl, column string, confidence float64) ([]CaseComparison, error) {
	var value func(m *benchcsv.Measurement) float64
	switch column {
	case benchcsv.ColTime:
		value = func(m *benchcsv.Measurement) float64 { return m.Time }
	case benchcsv.ColRecursionCalls:
		value = func(m *benchcsv.Measurement) float64 { return float64(m.RecursionCalls) }
	default:
		return nil, fmt.Errorf("compare: cannot compare column %q", column)
	}

	samples := make(map[caseKey]*[2][]float64)
	var seen [2]bool
	for i := range ms {
		m := &ms[i]
		side := -1
		switch m.Impl {
		case oldImpl:
			side = 0
		case newImpl:
			side = 1
		}
		if side < 0 {
			continue
		}
		seen[side] = true
		k := caseKey{m.File, m.A}
		if samples[k] == nil {
			samples[k] = new([2][]float64)
		}
		samples[k][side] = append(samples[k][side], value(m))
	}
	for i, impl := range []string{oldImpl, newImpl} {
		if !seen[i] {
			return nil, fmt.Errorf("compare: no measurements of %s", impl)
		}
	}

	var keys []caseKey
	for k, s := range samples {
		if len(s[0]) > 0 && len(s[1]) > 0 {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].file != keys[j].file {
			return keys[i].file < keys[j].file
		}
		return keys[i].a < keys[j].a
	})

	assumption := AssumptionFor(column)
	thr := benchmath.DefaultThresholds
	var out []CaseComparison
	for _, k := range keys {
		s1 := benchmath.NewSample(samples[k][0], &thr)
		s2 := benchmath.NewSample(samples[k][1], &thr)
		if len(s1.Values) == 0 || len(s2.Values) == 0 {
			continue
		}
		c := CaseComparison{
			File:       k.file,
			A:          k.a,
			Old:        assumption.Summary(s1, confidence),
			New:        assumption.Summary(s2, confidence),
			Comparison: assumption.Compare(s1, s2),
		}
		for _, ws := range [][]error{s1.Warnings, s2.Warnings, c.Old.Warnings, c.New.Warnings, c.Comparison.Warnings} {
			c.Warnings = append(c.Warnings, ws...)
		}
		out = append(out, c)
	}

	if err := w.printComparison(out, oldImpl, newImpl, column, assumption.SummaryLabel()); err != nil {
		return nil, err
	}
	return out, nil
}

func (w *Writer) printComparison(cs []CaseComparison, oldImpl, newImpl, column, label string) error {
	var tab texttab.Table
	tab.Row().Cell("file").Cell("a").
		Cell(fmt.Sprintf("%s %s", oldImpl, label)).Cell("±").
		Cell(fmt.Sprintf("%s %s", newImpl, label)).Cell("±").
		Cell("delta").Cell("speedup").Cell("")
	for _, col := range []int{1, 2, 3, 4, 5, 6, 7} {
		tab.SetAlign(col, texttab.Right)
	}

	class := benchunit.ClassOf(column)
	unit := benchunit.UnitOf(column)
	var warnings []string
	var ratios []float64
	for _, c := range cs {
		scaler := benchunit.CommonScale([]float64{c.Old.Center, c.New.Center}, class)
		note := "(" + c.Comparison.String() + ")"
		for _, err := range c.Warnings {
			warnings = append(warnings, err.Error())
			note += superscript(len(warnings))
		}
		tab.Row().
			Cell(strings.TrimSuffix(c.File, ".txt")).
			Cell(fmt.Sprint(c.A)).
			Cell(scaler.Format(c.Old.Center) + unit).
			Cell(c.Old.PctRangeString()).
			Cell(scaler.Format(c.New.Center) + unit).
			Cell(c.New.PctRangeString()).
			Cell(c.Comparison.FormatDelta(c.Old.Center, c.New.Center)).
			Cell(c.Comparison.FormatSpeedup(c.Old.Center, c.New.Center)).
			Cell(note)
		if c.Old.Center > 0 && c.New.Center > 0 {
			ratios = append(ratios, c.Old.Center/c.New.Center)
		}
	}
	if len(ratios) > 1 {
		tab.Row().Cell("geomean").Cell("").Cell("").Cell("").Cell("").Cell("").Cell("").
			Cell(fmt.Sprintf("%.2fx", stats.GeoMean(ratios)))
	}

	out := w.stdout()
	if _, err := fmt.Fprintf(out, "\n%s of %s vs %s:\n\n", column, newImpl, oldImpl); err != nil {
		return err
	}
	if err := tab.Format(out); err != nil {
		return err
	}
	for i, msg := range warnings {
		if _, err := fmt.Fprintf(out, "%s %s\n", superscript(i+1), msg); err != nil {
			return err
		}
	}
	return nil
}

var superDigits = []rune("⁰¹²³⁴⁵⁶⁷⁸⁹")

func superscript(i int) string {
	if i == 0 {
		return string(superDigits[0])
	}

	var buf [20]rune
	pos := len(buf)
	for i > 0 && pos > 0 {
		pos--
		buf[pos] = superDigits[i%10]
		i /= 10
	}
	return string(buf[pos:])
}
