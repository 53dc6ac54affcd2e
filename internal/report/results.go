// Copyright 2025 The speedstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"os"

	"github.com/aclements/go-gg/table"
	"go.uber.org/zap"

	"github.com/pdp-bench/speedstat/benchcsv"
	"github.com/pdp-bench/speedstat/benchplot"
	"github.com/pdp-bench/speedstat/benchtable"
	"github.com/pdp-bench/speedstat/speedup"
)

// Results builds the results table: the mean time of every (file, a)
// case per implementation and, if the baseline was measured, a
// speedup_<impl> column for every other implementation. It writes
// ResultsTable and a log-scale chart of the sample graphs, and returns
// the table.
func (w *Writer) Results(ms []benchcsv.Measurement) (*benchtable.Frame, error) {
	t := benchtable.Table(ms)
	impls := benchcsv.Impls(ms)

	f, err := benchtable.Pivot(t, []string{benchcsv.ColFile, benchcsv.ColA}, benchcsv.ColTime, benchtable.Mean)
	if err != nil {
		return nil, fmt.Errorf("results: %w", err)
	}
	if f.Has(w.Baseline) {
		if _, err := speedup.Apply(f, speedup.Over(w.Baseline, impls, "speedup_%s")...); err != nil {
			return nil, fmt.Errorf("results: %w", err)
		}
	} else {
		w.log().Warn("Baseline not measured, no speedups", zap.String("baseline", w.Baseline))
	}
	if err := w.writeTable(ResultsTable, "Results", f); err != nil {
		return nil, err
	}

	sample, err := benchtable.Pivot(w.samples(t), []string{benchcsv.ColFile}, benchcsv.ColTime, benchtable.Mean)
	if err != nil {
		return nil, fmt.Errorf("results: %w", err)
	}
	g := frameGroup(sample, fileLabel(sample), impls, func(s string) string { return s })
	opts := w.options("Run time of the implementations", "input graph", "time [s]", false)
	opts.LogY = true
	if opts.Width == 0 && opts.Height == 0 {
		opts.Width, opts.Height = 28, 12
	}
	w.chart("time_by_impl_logscale", opts, func(o benchplot.Options) (*benchplot.Chart, error) {
		return benchplot.GroupedBars(o, g)
	})
	return f, nil
}

// samples returns the rows of measurement table t for the sample
// graphs.
func (w *Writer) samples(t *table.Table) *table.Table {
	if t.Len() == 0 {
		return t
	}
	want := make(map[string]bool)
	for _, s := range w.Samples {
		want[s] = true
	}
	return table.Flatten(table.Filter(t, func(file string) bool {
		return want[file]
	}, benchcsv.ColFile))
}

// ReadResults reads a results table written by Results.
func ReadResults(path string) (*benchtable.Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	f, err := benchtable.ReadCSV(file, benchcsv.ColFile, benchcsv.ColA)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}
