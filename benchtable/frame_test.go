// Copyright 2025 The speedstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtable

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newFrame(t *testing.T, keys []string, rows [][]interface{}, cols map[string][]float64, order ...string) *Frame {
	t.Helper()
	f := NewFrame(keys...)
	for _, r := range rows {
		f.AddRow(r...)
	}
	for _, c := range order {
		if err := f.SetColumn(c, cols[c]); err != nil {
			t.Fatal(err)
		}
	}
	return f
}

func TestSortRows(t *testing.T) {
	f := newFrame(t, []string{"file", "a"},
		[][]interface{}{{"graf_9_3.txt", 10}, {"graf_10_5.txt", 5}, {"graf_9_3.txt", 9}},
		map[string][]float64{"seq": {1, 2, 3}}, "seq")
	f.SortRows()
	wantRows := [][]interface{}{{"graf_10_5.txt", 5}, {"graf_9_3.txt", 9}, {"graf_9_3.txt", 10}}
	if diff := cmp.Diff(wantRows, frameRows(f)); diff != "" {
		t.Errorf("rows (-want +got):\n%s", diff)
	}
	if got, _ := f.Column("seq"); !cmp.Equal([]float64{2, 3, 1}, got) {
		t.Errorf("values not permuted with rows: %v", got)
	}
}

func TestSetColumn(t *testing.T) {
	f := newFrame(t, []string{"file"}, [][]interface{}{{"x"}, {"y"}}, nil)
	if err := f.SetColumn("seq", []float64{1}); err == nil {
		t.Error("want error for short column")
	}
	if err := f.SetColumn("file", []float64{1, 2}); err == nil {
		t.Error("want error for key column")
	}
	f.Set(1, "mpi_1", 4)
	got, _ := f.Column("mpi_1")
	if diff := cmp.Diff([]float64{nan, 4}, got, equateNaN); diff != "" {
		t.Errorf("Set (-want +got):\n%s", diff)
	}
	f.AddRow("z")
	got, _ = f.Column("mpi_1")
	if diff := cmp.Diff([]float64{nan, 4, nan}, got, equateNaN); diff != "" {
		t.Errorf("AddRow (-want +got):\n%s", diff)
	}
}

func TestMerge(t *testing.T) {
	left := newFrame(t, []string{"file", "a"},
		[][]interface{}{{"g1", 1}, {"g2", 2}, {"g3", 3}},
		map[string][]float64{"seq": {1, 2, 3}, "speedup_mpi_1": {4, 5, 6}},
		"seq", "speedup_mpi_1")
	right := newFrame(t, []string{"file"},
		[][]interface{}{{"g1"}, {"g2"}, {"g2"}},
		map[string][]float64{"seq": {10, 20, 21}, "mpi_1": {11, 22, 23}},
		"seq", "mpi_1")

	got, err := left.Merge(right, "file", "_rec")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"seq", "speedup_mpi_1", "seq_rec", "mpi_1"}, got.Columns()); diff != "" {
		t.Errorf("columns (-want +got):\n%s", diff)
	}
	wantRows := [][]interface{}{{"g1", 1}, {"g2", 2}, {"g2", 2}, {"g3", 3}}
	if diff := cmp.Diff(wantRows, frameRows(got)); diff != "" {
		t.Errorf("rows (-want +got):\n%s", diff)
	}
	wantCols := map[string][]float64{
		"seq":           {1, 2, 2, 3},
		"speedup_mpi_1": {4, 5, 5, 6},
		"seq_rec":       {10, 20, 21, nan},
		"mpi_1":         {11, 22, 23, nan},
	}
	if diff := cmp.Diff(wantCols, frameCols(got), equateNaN); diff != "" {
		t.Errorf("values (-want +got):\n%s", diff)
	}

	if _, err := left.Merge(right, "a", "_rec"); err == nil {
		t.Error("want error merging on a column the right frame lacks")
	}
}

func TestFrameTable(t *testing.T) {
	f := newFrame(t, []string{"file", "a"}, [][]interface{}{{"g1", 1}, {"g2", 2}},
		map[string][]float64{"seq": {1, 2}}, "seq")
	tab := f.Table()
	if diff := cmp.Diff([]string{"file", "a", "seq"}, tab.Columns()); diff != "" {
		t.Errorf("columns (-want +got):\n%s", diff)
	}
	if got, ok := tab.MustColumn("a").([]int); !ok || !cmp.Equal([]int{1, 2}, got) {
		t.Errorf("want int key column [1 2], got %#v", tab.MustColumn("a"))
	}
}
