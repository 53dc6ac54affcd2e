// Copyright 2025 The speedstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/plot/plotter"

	"github.com/pdp-bench/speedstat/benchcsv"
	"github.com/pdp-bench/speedstat/benchplot"
	"github.com/pdp-bench/speedstat/benchtable"
	"github.com/pdp-bench/speedstat/speedup"
)

// Overview compares all implementations in ms. It writes the mean
// time of every (file, n, a) case per implementation to
// ComparisonTable and draws four charts: time against graph size,
// mean speedup over the baseline, recursion call distributions and
// time per graph file.
func (w *Writer) Overview(ms []benchcsv.Measurement) error {
	t := benchtable.Table(ms)
	impls := benchcsv.Impls(ms)

	cmp, err := benchtable.Pivot(t, []string{benchcsv.ColFile, benchcsv.ColN, benchcsv.ColA}, benchcsv.ColTime, benchtable.Mean)
	if err != nil {
		return fmt.Errorf("overview: %w", err)
	}
	if err := w.writeTable(ComparisonTable, "Mean time per case", cmp); err != nil {
		return err
	}

	byN, err := benchtable.Pivot(t, []string{benchcsv.ColN}, benchcsv.ColTime, benchtable.Mean)
	if err != nil {
		return fmt.Errorf("overview: %w", err)
	}
	var series []benchplot.Series
	for _, impl := range present(byN, impls) {
		col, _ := byN.Column(impl)
		s := benchplot.Series{Name: impl}
		for i := 0; i < byN.Len(); i++ {
			n := byN.KeyValue(i, benchcsv.ColN).(int)
			s.XYs = append(s.XYs, plotter.XY{X: float64(n), Y: col[i]})
		}
		series = append(series, s)
	}
	opts := w.options("Run time vs graph size", "nodes (n)", "time [s]", false)
	opts.LogY = true
	w.chart("g1_time_vs_n", opts, func(o benchplot.Options) (*benchplot.Chart, error) {
		return benchplot.Lines(o, series...)
	})

	// The comparison table is already written, so it keeps only
	// times.
	ratios := speedup.Over(w.Baseline, impls, "speedup_%s")
	skipped, err := speedup.Apply(cmp, ratios...)
	if err != nil {
		return fmt.Errorf("overview: %w", err)
	}
	for _, r := range skipped {
		w.log().Debug("Skipping speedup", zap.Stringer("ratio", r))
	}
	sums := speedup.Summarize(cmp, speedup.Columns(ratios)...)
	var bars []benchplot.Bar
	for _, s := range sums {
		bars = append(bars, benchplot.Bar{Category: trimPrefix("speedup_")(s.Column), Value: s.Mean})
	}
	opts = w.options("Speedup over "+w.Baseline, "implementation", "speedup", false)
	opts.IncludeOne = true
	w.chart("g2_speedup", opts, func(o benchplot.Options) (*benchplot.Chart, error) {
		return benchplot.Bars(o, bars...)
	})
	if err := w.printSummary("Speedup over "+w.Baseline, sums); err != nil {
		return err
	}

	var samples []benchplot.Sample
	for _, impl := range impls {
		s := benchplot.Sample{Name: impl}
		for _, m := range ms {
			if m.Impl == impl {
				s.Values = append(s.Values, float64(m.RecursionCalls))
			}
		}
		samples = append(samples, s)
	}
	opts = w.options("Recursion calls (log scale)", "implementation", "recursion calls", false)
	opts.LogY = true
	w.chart("g3_rec_calls", opts, func(o benchplot.Options) (*benchplot.Chart, error) {
		return benchplot.Boxes(o, samples...)
	})

	byFile, err := benchtable.Pivot(t, []string{benchcsv.ColFile}, benchcsv.ColTime, benchtable.Mean)
	if err != nil {
		return fmt.Errorf("overview: %w", err)
	}
	g := frameGroup(byFile, fileLabel(byFile), impls, func(s string) string { return s })
	w.chart("g4_time_all_files", w.options("Run time of all implementations", "graph", "time [s]", true),
		func(o benchplot.Options) (*benchplot.Chart, error) {
			return benchplot.GroupedBars(o, g)
		})
	return nil
}
