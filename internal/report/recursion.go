// Copyright 2025 The speedstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"strings"

	"github.com/pdp-bench/speedstat/benchcsv"
	"github.com/pdp-bench/speedstat/benchplot"
	"github.com/pdp-bench/speedstat/benchtable"
	"github.com/pdp-bench/speedstat/speedup"
)

const relSuffix = "_rel_seq"

// Recursion compares the recursion calls of the implementations in ms,
// leaving out the reference run. Every (file, a) case must have a
// single recursion call count per implementation. It adds
// <impl>_rel_seq = impl/baseline for the parallel implementations,
// draws the relative and absolute counts, prints both as Markdown
// tables and returns the table.
func (w *Writer) Recursion(ms []benchcsv.Measurement) (*benchtable.Frame, error) {
	t := benchtable.Table(without(ms, w.Reference))
	f, err := benchtable.Pivot(t, []string{benchcsv.ColFile, benchcsv.ColA}, benchcsv.ColRecursionCalls, benchtable.Unique)
	if err != nil {
		return nil, fmt.Errorf("recursion: %w", err)
	}
	if f.Has(w.Baseline) {
		if _, err := speedup.Apply(f, speedup.Relative(w.Baseline, w.parallel(), "%s"+relSuffix)...); err != nil {
			return nil, fmt.Errorf("recursion: %w", err)
		}
	}

	var rel []string
	for _, impl := range w.parallel() {
		rel = append(rel, impl+relSuffix)
	}
	abs := append([]string{w.Baseline}, w.parallel()...)
	label := func(i int) string {
		file := fmt.Sprint(f.KeyValue(i, benchcsv.ColFile))
		return fmt.Sprintf("%s a=%v", strings.TrimSuffix(file, ".txt"), f.KeyValue(i, benchcsv.ColA))
	}

	g := frameGroup(f, label, rel, func(c string) string { return DisplayName(strings.TrimSuffix(c, relSuffix)) })
	opts := w.options("Recursion calls relative to "+DisplayName(w.Baseline), "graph, a", "relative recursion calls", true)
	opts.LogY = true
	w.chart("recursion_ratio", opts, func(o benchplot.Options) (*benchplot.Chart, error) {
		return benchplot.GroupedBars(o, g)
	})

	ga := frameGroup(f, label, abs, DisplayName)
	opts = w.options("Recursion calls by implementation", "graph, a", "recursion calls", true)
	opts.LogY = true
	w.chart("recursion_abs", opts, func(o benchplot.Options) (*benchplot.Chart, error) {
		return benchplot.GroupedBars(o, ga)
	})

	out := w.stdout()
	fmt.Fprintf(out, "\nRecursion call ratios:\n\n")
	if err := f.WriteMarkdown(out, "", rel...); err != nil {
		return nil, err
	}
	fmt.Fprintf(out, "\nRecursion calls, relative and absolute:\n\n")
	if err := f.WriteMarkdown(out, "", append(rel, abs...)...); err != nil {
		return nil, err
	}
	return f, nil
}
