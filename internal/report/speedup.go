// Copyright 2025 The speedstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/pdp-bench/speedstat/benchcsv"
	"github.com/pdp-bench/speedstat/benchplot"
	"github.com/pdp-bench/speedstat/benchtable"
	"github.com/pdp-bench/speedstat/speedup"
)

// Column name prefixes of the speedup report.
const (
	SeqPrefix      = "speedup_seq_vs_"
	RefPrefix      = "speedup_ref_vs_"
	OMPDataVsTask  = "speedup_omp_data_vs_task"
	recMergeSuffix = "_rec"
)

// combinedOrder is the column order of the ratios in CombinedTable
// for DefaultParallel. It puts the data-parallel OpenMP solver first.
var combinedOrder = []string{"omp_data", "omp_task", "mpi_1", "mpi_2", "mpi_3"}

// SpeedupRatios returns the ratio columns of the speedup report for
// the parallel implementations: baseline/impl and reference/impl for
// each, followed by the OpenMP task-parallel time over the
// data-parallel one. A custom Parallel list keeps its own order.
func (w *Writer) SpeedupRatios() []speedup.Ratio {
	order := w.Parallel
	if order == nil {
		order = combinedOrder
	}
	var rs []speedup.Ratio
	for _, impl := range order {
		rs = append(rs,
			speedup.Ratio{Name: SeqPrefix + impl, Num: w.Baseline, Den: impl},
			speedup.Ratio{Name: RefPrefix + impl, Num: w.Reference, Den: impl, ZeroNumAsMissing: true})
	}
	return append(rs, speedup.Between(OMPDataVsTask, "omp_task", "omp_data"))
}

// Speedup joins the results table with the minimum recursion calls of
// every (file, impl) pair in ms, leaving out the reference run, and
// adds the SpeedupRatios columns. It writes CombinedTable and the
// speedup charts, prints a summary of the speedups over the baseline,
// and returns the combined table.
func (w *Writer) Speedup(results *benchtable.Frame, ms []benchcsv.Measurement) (*benchtable.Frame, error) {
	rec, err := benchtable.Pivot(benchtable.Table(without(ms, w.Reference)), []string{benchcsv.ColFile}, benchcsv.ColRecursionCalls, benchtable.Min)
	if err != nil {
		return nil, fmt.Errorf("speedup: %w", err)
	}
	f, err := results.Merge(rec, benchcsv.ColFile, recMergeSuffix)
	if err != nil {
		return nil, fmt.Errorf("speedup: %w", err)
	}
	skipped, err := speedup.Apply(f, w.SpeedupRatios()...)
	if err != nil {
		return nil, fmt.Errorf("speedup: %w", err)
	}
	for _, r := range skipped {
		w.log().Warn("Skipping ratio with unmeasured input", zap.Stringer("ratio", r))
	}
	if err := w.writeTable(CombinedTable, "Speedup and recursion calls", f); err != nil {
		return nil, err
	}

	var seqCols []string
	for _, impl := range w.parallel() {
		seqCols = append(seqCols, SeqPrefix+impl)
	}
	ps, err := f.MeanBy(benchcsv.ColFile, seqCols...)
	if err != nil {
		return nil, fmt.Errorf("speedup: %w", err)
	}
	g := pointGroup(ps, seqCols, trimPrefix(SeqPrefix))
	opts := w.options("Speedup over "+w.Baseline+" (log)", "graph", "speedup", true)
	opts.LogY = true
	opts.ClampY, opts.YMin, opts.YMax = true, 1, 1000
	w.chart("speedup_vs_seq", opts, func(o benchplot.Options) (*benchplot.Chart, error) {
		return benchplot.GroupedBars(o, g)
	})

	if err := w.fileBars(f, OMPDataVsTask, "Speedup: OpenMP Task vs Data"); err != nil {
		return nil, err
	}
	for _, impl := range w.parallel() {
		col := RefPrefix + impl
		if !f.Has(col) {
			continue
		}
		if err := w.fileBars(f, col, "Speedup: reference CPU vs "+impl); err != nil {
			return nil, err
		}
	}

	if err := w.printSummary("Speedup over "+w.Baseline, speedup.Summarize(f, seqCols...)); err != nil {
		return nil, err
	}
	return f, nil
}

// fileBars charts the mean of col per graph file as col's chart.
func (w *Writer) fileBars(f *benchtable.Frame, col, title string) error {
	ps, err := f.MeanBy(benchcsv.ColFile, col)
	if err != nil {
		return err
	}
	var bars []benchplot.Bar
	for _, p := range ps {
		bars = append(bars, benchplot.Bar{Category: fmt.Sprint(p.Key[0]), Value: p.Value})
	}
	opts := w.options(title, "graph", "speedup", true)
	opts.IncludeOne = true
	w.chart(col, opts, func(o benchplot.Options) (*benchplot.Chart, error) {
		return benchplot.Bars(o, bars...)
	})
	return nil
}
