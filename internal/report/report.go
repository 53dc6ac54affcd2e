// Copyright 2025 The speedstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report implements the speedstat reports. Each report reads
// measurements, combines them into a comparison Frame, derives ratio
// columns and writes tables and charts into an output directory.
package report

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/pdp-bench/speedstat/benchcsv"
	"github.com/pdp-bench/speedstat/benchplot"
	"github.com/pdp-bench/speedstat/benchtable"
	"github.com/pdp-bench/speedstat/benchunit"
	"github.com/pdp-bench/speedstat/internal/texttab"
	"github.com/pdp-bench/speedstat/speedup"
)

// Output file names.
const (
	ComparisonTable = "comparison_table.csv"
	ResultsTable    = "results_table.csv"
	CombinedTable   = "combined_speedup_recursion.csv"
	IndexPage       = "index.html"
)

// DefaultParallel are the parallel implementations compared against
// the baseline and the reference run, in chart order.
var DefaultParallel = []string{"omp_task", "omp_data", "mpi_1", "mpi_2", "mpi_3"}

var nan = math.NaN()

var displayNames = map[string]string{
	"seq":      "Sequential",
	"ref_seq":  "Reference",
	"omp_task": "OpenMP Task",
	"omp_data": "OpenMP Data",
	"mpi_1":    "MPI 1",
	"mpi_2":    "MPI 2",
	"mpi_3":    "MPI 3",
}

// DisplayName returns the legend name of an implementation.
func DisplayName(impl string) string {
	if name, ok := displayNames[impl]; ok {
		return name
	}
	return impl
}

// An Artifact is a file written by a report.
type Artifact struct {
	Name  string // path relative to the output directory
	Title string
	Chart bool
}

// A Writer writes reports into an output directory.
type Writer struct {
	// Dir is the output directory. It is created as needed.
	Dir string

	// Format is the chart file extension: "png", "svg" or "pdf".
	// Empty means "png".
	Format string

	// Chart holds the chart size and resolution. Titles and axis
	// options are set per chart.
	Chart benchplot.Options

	// Baseline is the implementation speedups are computed
	// against. Reference is the run on the reference machine.
	Baseline, Reference string

	// Parallel lists the implementations compared in the speedup
	// and recursion reports. Nil means DefaultParallel.
	Parallel []string

	// Samples are the graph files shown in the results chart.
	Samples []string

	// Log receives progress and per-chart failures. Nil discards.
	Log *zap.Logger

	// Stdout receives the summary tables. Nil discards.
	Stdout io.Writer

	artifacts []Artifact
}

// Artifacts returns the files written so far, in order.
func (w *Writer) Artifacts() []Artifact {
	return w.artifacts
}

func (w *Writer) log() *zap.Logger {
	if w.Log == nil {
		return zap.NewNop()
	}
	return w.Log
}

func (w *Writer) stdout() io.Writer {
	if w.Stdout == nil {
		return io.Discard
	}
	return w.Stdout
}

func (w *Writer) parallel() []string {
	if w.Parallel == nil {
		return DefaultParallel
	}
	return w.Parallel
}

func (w *Writer) record(a Artifact) {
	for i, old := range w.artifacts {
		if old.Name == a.Name {
			w.artifacts[i] = a
			return
		}
	}
	w.artifacts = append(w.artifacts, a)
}

func (w *Writer) path(name string) string {
	return filepath.Join(w.Dir, name)
}

// create opens name in the output directory for writing.
func (w *Writer) create(name string) (*os.File, error) {
	path := w.path(name)
	if err := os.MkdirAll(filepath.Dir(path), 0777); err != nil {
		return nil, err
	}
	return os.Create(path)
}

// writeTable writes f as CSV to name.
func (w *Writer) writeTable(name, title string, f *benchtable.Frame) error {
	file, err := w.create(name)
	if err != nil {
		return err
	}
	if err := f.WriteCSV(file); err != nil {
		file.Close()
		return fmt.Errorf("write %s: %w", file.Name(), err)
	}
	if err := file.Close(); err != nil {
		return err
	}
	w.record(Artifact{Name: name, Title: title})
	w.log().Info("Wrote table", zap.String("path", file.Name()), zap.Int("rows", f.Len()))
	return nil
}

// options returns the chart options for one chart. Wide charts have
// one category per graph file.
func (w *Writer) options(title, xlabel, ylabel string, wide bool) benchplot.Options {
	o := w.Chart
	o.Title, o.XLabel, o.YLabel = title, xlabel, ylabel
	if wide {
		o.RotateX = true
		if o.Width == 0 && o.Height == 0 {
			o.Width, o.Height = 28, 12
		}
	}
	return o
}

// chart renders and saves one chart. A chart that cannot be drawn is
// logged and skipped.
func (w *Writer) chart(name string, opts benchplot.Options, mk func(benchplot.Options) (*benchplot.Chart, error)) {
	format := w.Format
	if format == "" {
		format = "png"
	}
	file := name + "." + format
	c, err := mk(opts)
	if err == nil {
		err = benchplot.Save(c, w.path(file))
	}
	if err != nil {
		w.log().Warn("Skipping chart", zap.String("chart", name), zap.Error(err))
		return
	}
	w.record(Artifact{Name: file, Title: opts.Title, Chart: true})
	w.log().Info("Wrote chart", zap.String("path", w.path(file)))
}

// without returns the measurements of ms whose implementation is not
// impl.
func without(ms []benchcsv.Measurement, impl string) []benchcsv.Measurement {
	var out []benchcsv.Measurement
	for _, m := range ms {
		if m.Impl != impl {
			out = append(out, m)
		}
	}
	return out
}

// present returns the columns of cols that f has.
func present(f *benchtable.Frame, cols []string) []string {
	var out []string
	for _, c := range cols {
		if f.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// frameGroup builds a grouped bar chart with one category per row of f,
// labelled by label, and one series per column of cols that f has.
func frameGroup(f *benchtable.Frame, label func(i int) string, cols []string, name func(string) string) benchplot.Group {
	var g benchplot.Group
	for i := 0; i < f.Len(); i++ {
		g.Categories = append(g.Categories, label(i))
	}
	for _, c := range present(f, cols) {
		vals, _ := f.Column(c)
		g.Series = append(g.Series, name(c))
		g.Values = append(g.Values, vals)
	}
	return g
}

// pointGroup builds a grouped bar chart from melted points whose key is
// a single category column. Categories keep the order of ps.
func pointGroup(ps []benchtable.Point, series []string, name func(string) string) benchplot.Group {
	var g benchplot.Group
	cat := make(map[string]int)
	for _, p := range ps {
		k := fmt.Sprint(p.Key[0])
		if _, ok := cat[k]; !ok {
			cat[k] = len(g.Categories)
			g.Categories = append(g.Categories, k)
		}
	}
	for _, s := range series {
		vals := make([]float64, len(g.Categories))
		found := false
		for i := range vals {
			vals[i] = nan
		}
		for _, p := range ps {
			if p.Series == s {
				vals[cat[fmt.Sprint(p.Key[0])]] = p.Value
				found = true
			}
		}
		if found {
			g.Series = append(g.Series, name(s))
			g.Values = append(g.Values, vals)
		}
	}
	return g
}

func fileLabel(f *benchtable.Frame) func(int) string {
	return func(i int) string {
		return fmt.Sprint(f.KeyValue(i, benchcsv.ColFile))
	}
}

func trimPrefix(prefix string) func(string) string {
	return func(s string) string { return strings.TrimPrefix(s, prefix) }
}

// printSummary writes a text table summarizing sums to the report's
// standard output.
func (w *Writer) printSummary(title string, sums []speedup.Summary) error {
	if len(sums) == 0 {
		return nil
	}
	var tab texttab.Table
	tab.Row().Cell("column").Cell("n").Cell("mean").Cell("geomean").Cell("median").Cell("min").Cell("max")
	for i := 1; i < 7; i++ {
		tab.SetAlign(i, texttab.Right)
	}
	for _, s := range sums {
		vals := []float64{s.Mean, s.GeoMean, s.Median, s.Min, s.Max}
		scaler := benchunit.CommonScale(vals, benchunit.ClassOf(s.Column))
		unit := benchunit.UnitOf(s.Column)
		tab.Row().Cell(s.Column).Cell(fmt.Sprint(s.Count))
		for _, v := range vals {
			cell := scaler.Format(v)
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				cell += unit
			}
			tab.Cell(cell)
		}
	}
	out := w.stdout()
	if _, err := fmt.Fprintf(out, "\n%s:\n\n", title); err != nil {
		return err
	}
	return tab.Format(out)
}
