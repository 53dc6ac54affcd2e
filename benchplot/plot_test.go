// Copyright 2025 The speedstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchplot

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
)

func TestSave(t *testing.T) {
	dir := t.TempDir()
	c, err := Bars(Options{Title: "speedup", RotateX: true},
		Bar{"graf_10_5", 2}, Bar{"graf_20_7", math.NaN()}, Bar{"graf_30_10", 8})
	if err != nil {
		t.Fatal(err)
	}

	magic := map[string][]byte{
		"bars.png":     []byte("\x89PNG"),
		"sub/bars.svg": []byte("<svg"),
		"bars.pdf":     []byte("%PDF"),
	}
	for name, want := range magic {
		path := filepath.Join(dir, name)
		if err := Save(c, path); err != nil {
			t.Fatalf("Save(%s): %v", name, err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Contains(data, want) {
			t.Errorf("%s: missing %q header", name, want)
		}
	}

	if err := Save(c, filepath.Join(dir, "noext")); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "noext.png")); err != nil {
		t.Errorf("path without extension: %v", err)
	}
	if err := Save(c, filepath.Join(dir, "bars.gif")); err == nil {
		t.Error("want error for unsupported format")
	}
}

func TestNoData(t *testing.T) {
	nan, inf := math.NaN(), math.Inf(1)
	check := func(name string, c *Chart, err error) {
		t.Helper()
		if !errors.Is(err, ErrNoData) {
			t.Errorf("%s: want ErrNoData, got chart %v, err %v", name, c, err)
		}
	}

	c, err := Bars(Options{}, Bar{"a", nan}, Bar{"b", inf})
	check("Bars", c, err)
	c, err = Bars(Options{LogY: true}, Bar{"a", 0}, Bar{"b", -1})
	check("log Bars", c, err)
	c, err = GroupedBars(Options{}, Group{})
	check("empty GroupedBars", c, err)
	c, err = Lines(Options{LogY: true}, Series{Name: "seq", XYs: plotter.XYs{{X: 1, Y: 0}, {X: nan, Y: 1}}})
	check("Lines", c, err)
	c, err = Boxes(Options{}, Sample{Name: "seq"})
	check("Boxes", c, err)
}

func TestCharts(t *testing.T) {
	dir := t.TempDir()
	charts := map[string]func() (*Chart, error){
		"lines": func() (*Chart, error) {
			return Lines(Options{LogY: true, XLabel: "n"},
				Series{Name: "seq", XYs: plotter.XYs{{X: 20, Y: 2}, {X: 10, Y: 0.01}, {X: 30, Y: 0}}},
				Series{Name: "mpi_1", XYs: plotter.XYs{{X: 10, Y: 0.005}}},
				Series{Name: "empty"})
		},
		"grouped": func() (*Chart, error) {
			return GroupedBars(Options{LogY: true, ClampY: true, YMin: 1, YMax: 1000}, Group{
				Categories: []string{"graf_10_5", "graf_20_7"},
				Series:     []string{"omp_task", "mpi_1"},
				Values:     [][]float64{{3, 0.5}, {2000, math.NaN()}},
			})
		},
		"ratio": func() (*Chart, error) {
			return Bars(Options{IncludeOne: true}, Bar{"a", 1.3}, Bar{"b", 1.7})
		},
		"boxes": func() (*Chart, error) {
			return Boxes(Options{LogY: true},
				Sample{Name: "seq", Values: []float64{10, 100, 1000, 0}},
				Sample{Name: "none", Values: []float64{math.NaN()}},
				Sample{Name: "mpi_1", Values: []float64{20, 30}})
		},
	}
	for name, mk := range charts {
		t.Run(name, func(t *testing.T) {
			c, err := mk()
			if err != nil {
				t.Fatal(err)
			}
			if err := Save(c, filepath.Join(dir, name+".png")); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestLogAxis(t *testing.T) {
	ax := &axis{opts: Options{LogY: true}}
	ax.fit([]float64{0.05, 3, 200})
	if ax.floor != -2 {
		t.Fatalf("want floor -2, got %v", ax.floor)
	}
	for _, test := range []struct{ v, y float64 }{
		{0.01, 0},
		{1, 2},
		{1000, 5},
	} {
		if got := ax.y(test.v); math.Abs(got-test.y) > 1e-12 {
			t.Errorf("y(%v) = %v, want %v", test.v, got, test.y)
		}
	}
	if ax.keep(0) || ax.keep(-1) || ax.keep(math.NaN()) || !ax.keep(1e-9) {
		t.Error("keep filters non-positive values wrongly")
	}

	clamped := &axis{opts: Options{LogY: true, ClampY: true, YMin: 1, YMax: 1000}}
	clamped.fit([]float64{0.5, 10})
	if clamped.floor != 0 || clamped.y(0.5) != 0 {
		t.Errorf("clamped axis: floor %v, y(0.5) = %v", clamped.floor, clamped.y(0.5))
	}
	p := plot.New()
	clamped.finish(p)
	if p.Y.Min != 0 || math.Abs(p.Y.Max-3) > 1e-12 {
		t.Errorf("clamped axis: got range [%v, %v], want [0, 3]", p.Y.Min, p.Y.Max)
	}
}

func TestLogTicks(t *testing.T) {
	ticks := logTicks{floor: -1}.Ticks(0, 3)
	var labels []string
	for _, tk := range ticks {
		if !tk.IsMinor() {
			labels = append(labels, tk.Label)
		}
	}
	want := []string{"0.1", "1", "10", "100"}
	if len(labels) != len(want) {
		t.Fatalf("want labels %q, got %q", want, labels)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("label %d: want %q, got %q", i, want[i], labels[i])
		}
	}
	if n := len(ticks) - len(labels); n != 3*8 {
		t.Errorf("want 24 minor ticks, got %d", n)
	}

	// Less than a decade still gets labelled ticks.
	major := 0
	for _, tk := range (logTicks{floor: 0}).Ticks(0.1, 0.5) {
		if !tk.IsMinor() {
			major++
		}
	}
	if major == 0 {
		t.Error("no labelled ticks within a decade")
	}
}

func TestRoundish(t *testing.T) {
	for _, test := range []struct {
		x    float64
		want float64
		k    int
	}{
		{3.7, 3, 0},
		{0.7, 0.5, 1},
		{0.3, 0.25, 2},
		{0.21, 0.2, 1},
		{0.15, 0.1, 1},
		{0.07, 0.05, 2},
	} {
		got, k := roundish(test.x)
		if math.Abs(got-test.want) > 1e-12 || k != test.k {
			t.Errorf("roundish(%v) = %v, %d; want %v, %d", test.x, got, k, test.want, test.k)
		}
	}
}

func TestRatioTicks(t *testing.T) {
	var got []string
	for _, tk := range (ratioTicks{}).Ticks(0.5, 2) {
		got = append(got, tk.Label)
	}
	want := []string{"0.50", "0.75", "1.00", "1.25", "1.50", "1.75", "2.00"}
	if len(got) != len(want) {
		t.Fatalf("want %q, got %q", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("tick %d: want %q, got %q", i, want[i], got[i])
		}
	}
}

func TestColors(t *testing.T) {
	for _, n := range []int{1, 3, 12, 15} {
		cs, err := colors(n)
		if err != nil {
			t.Fatalf("colors(%d): %v", n, err)
		}
		if len(cs) != n {
			t.Errorf("colors(%d): got %d colors", n, len(cs))
		}
	}
}
