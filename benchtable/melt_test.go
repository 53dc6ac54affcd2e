// Copyright 2025 The speedstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtable

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func meltFrame(t *testing.T) *Frame {
	return newFrame(t, []string{"file", "n"},
		[][]interface{}{{"graf_10_5.txt", 10}, {"graf_10_6.txt", 10}, {"graf_20_7.txt", 20}},
		map[string][]float64{
			"seq":   {1, 3, 10},
			"mpi_1": {0.5, nan, math.Inf(1)},
		},
		"seq", "mpi_1")
}

func TestMeanBy(t *testing.T) {
	f := meltFrame(t)
	got, err := f.MeanBy("n", "seq", "mpi_1")
	if err != nil {
		t.Fatal(err)
	}
	want := []Point{
		{Key: []interface{}{10}, Series: "seq", Value: 2},
		{Key: []interface{}{10}, Series: "mpi_1", Value: 0.5},
		{Key: []interface{}{20}, Series: "seq", Value: 10},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	if _, err := f.MeanBy("seq", "mpi_1"); err == nil {
		t.Error("want error grouping by a value column")
	}
}
