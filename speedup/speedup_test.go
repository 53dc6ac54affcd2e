// Copyright 2025 The speedstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package speedup

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/pdp-bench/speedstat/benchtable"
)

var nan = math.NaN()

func frame(t *testing.T, cols map[string][]float64, order ...string) *benchtable.Frame {
	t.Helper()
	f := benchtable.NewFrame("file")
	n := len(cols[order[0]])
	for i := 0; i < n; i++ {
		f.AddRow(string(rune('a' + i)))
	}
	for _, c := range order {
		if err := f.SetColumn(c, cols[c]); err != nil {
			t.Fatal(err)
		}
	}
	return f
}

func TestApply(t *testing.T) {
	f := frame(t, map[string][]float64{
		"ref_seq":  {4, 0, nan, 8},
		"seq":      {2, 3, 4, 0},
		"omp_task": {1, 0, 2, 4},
	}, "ref_seq", "seq", "omp_task")

	ratios := []Ratio{
		Between("speedup_seq_vs_omp_task", "seq", "omp_task"),
		{Name: "speedup_ref_vs_omp_task", Num: "ref_seq", Den: "omp_task", ZeroNumAsMissing: true},
		Between("speedup_seq_vs_mpi_1", "seq", "mpi_1"),
	}
	skipped, err := Apply(f, ratios...)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(ratios[2:], skipped); diff != "" {
		t.Errorf("skipped (-want +got):\n%s", diff)
	}

	want := map[string][]float64{
		"speedup_seq_vs_omp_task": {2, math.Inf(1), 2, 0},
		"speedup_ref_vs_omp_task": {4, nan, nan, 2},
	}
	for name, w := range want {
		got, ok := f.Column(name)
		if !ok {
			t.Errorf("missing column %s", name)
			continue
		}
		if diff := cmp.Diff(w, got, cmpopts.EquateNaNs()); diff != "" {
			t.Errorf("%s (-want +got):\n%s", name, diff)
		}
	}
	wantCols := []string{"ref_seq", "seq", "omp_task", "speedup_seq_vs_omp_task", "speedup_ref_vs_omp_task"}
	if diff := cmp.Diff(wantCols, f.Columns()); diff != "" {
		t.Errorf("column order (-want +got):\n%s", diff)
	}
}

func TestConstructors(t *testing.T) {
	impls := []string{"ref_seq", "seq", "mpi_1"}
	got := Over("seq", impls, "speedup_%s")
	want := []Ratio{
		{Name: "speedup_ref_seq", Num: "seq", Den: "ref_seq"},
		{Name: "speedup_mpi_1", Num: "seq", Den: "mpi_1"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Over (-want +got):\n%s", diff)
	}

	got = Relative("seq", impls, "%s_rel_seq")
	want = []Ratio{
		{Name: "ref_seq_rel_seq", Num: "ref_seq", Den: "seq"},
		{Name: "mpi_1_rel_seq", Num: "mpi_1", Den: "seq"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Relative (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"ref_seq_rel_seq", "mpi_1_rel_seq"}, Columns(got)); diff != "" {
		t.Errorf("Columns (-want +got):\n%s", diff)
	}
	if s := Between("x", "a", "b").String(); s != "x = a/b" {
		t.Errorf("String: got %q", s)
	}
}

func TestSummarize(t *testing.T) {
	f := frame(t, map[string][]float64{
		"speedup_mpi_1": {1, 4, nan, math.Inf(1), 16},
		"empty":         {nan, nan, nan, nan, nan},
		"signed":        {-1, 0, 1, nan, nan},
	}, "speedup_mpi_1", "empty", "signed")

	got := Summarize(f, "speedup_mpi_1", "missing", "empty", "signed")
	want := []Summary{
		{Column: "speedup_mpi_1", Count: 3, Mean: 7, Median: 4, Min: 1, Max: 16, GeoMean: 4},
		{Column: "empty", Mean: nan, Median: nan, Min: nan, Max: nan, GeoMean: nan},
		{Column: "signed", Count: 3, Mean: 0, Median: 0, Min: -1, Max: 1, GeoMean: 1},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateNaNs(), cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
