// Copyright 2025 The speedstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchunit

import (
	"math"
	"testing"
)

func TestScale(t *testing.T) {
	for _, test := range []struct {
		name string
		val  float64
		cls  Class
		want string
	}{
		// Times in seconds.
		{"zero", 0, Decimal, "0.000"},
		{"fast run", 0.000123, Decimal, "123.0µ"},
		{"seq graf_10_5", 0.0213, Decimal, "21.30m"},
		{"seconds", 1.5, Decimal, "1.500"},
		{"tens of seconds", 12.5, Decimal, "12.50"},
		{"minutes", 250, Decimal, "250.0"},
		{"rounds up a prefix", 999.96, Decimal, "1.000k"},
		{"below nano", 2e-12, Decimal, "0.002000n"},
		{"above tera", 1.2345e15, Decimal, "1234.5T"},

		// Speedup ratios.
		{"slowdown", 0.5, Decimal, "500.0m"},
		{"negative", -0.5, Decimal, "-500.0m"},
		{"speedup", 37.5, Decimal, "37.50"},

		// Recursion calls.
		{"calls", 100, Count, "100.0"},
		{"thousands", 1500, Count, "1.500k"},
		{"mpi_2 graf_20_7", 918273, Count, "918.3k"},
		{"millions", 123456789, Count, "123.5M"},
		{"call ratio", 0.25, Count, "0.2500"},
		{"small call ratio", 0.004, Count, "0.004000"},
	} {
		if got := Scale(test.val, test.cls); got != test.want {
			t.Errorf("%s: Scale(%v, %v) = %s, want %s", test.name, test.val, test.cls, got, test.want)
		}
	}
}

func TestCommonScale(t *testing.T) {
	s := CommonScale([]float64{math.NaN(), 0.002, math.Inf(1), 1.5}, Decimal)
	if want := (Scaler{3, 1e-3, "m"}); s != want {
		t.Fatalf("got %+v, want %+v", s, want)
	}
	for _, test := range []struct {
		val  float64
		want string
	}{
		{0.002, "2.000m"},
		{1.5, "1500.000m"},
		{math.NaN(), "-"},
		{math.Inf(1), "inf"},
		{math.Inf(-1), "-inf"},
	} {
		if got := s.Format(test.val); got != test.want {
			t.Errorf("Format(%v) = %s, want %s", test.val, got, test.want)
		}
	}

	if s := CommonScale([]float64{math.NaN()}, Count); s != (Scaler{3, 1, ""}) {
		t.Errorf("all missing: got %+v", s)
	}
}

func TestClassOf(t *testing.T) {
	for _, test := range []struct {
		column string
		class  Class
		unit   string
	}{
		{"time", Decimal, "s"},
		{"recursion calls", Count, ""},
		{"mpi_1_rec", Count, ""},
		{"speedup_mpi_2", Decimal, "x"},
		{"speedup_seq_vs_omp_task", Decimal, "x"},
		{"omp_task_rel_seq", Decimal, "x"},
		{"seq", Decimal, ""},
	} {
		if got := ClassOf(test.column); got != test.class {
			t.Errorf("ClassOf(%q) = %v, want %v", test.column, got, test.class)
		}
		if got := UnitOf(test.column); got != test.unit {
			t.Errorf("UnitOf(%q) = %q, want %q", test.column, got, test.unit)
		}
	}
}
