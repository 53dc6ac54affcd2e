// Copyright 2025 The speedstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtable

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"

	"github.com/pdp-bench/speedstat/benchcsv"
)

// ColImpl is the name of the implementation label column of a
// measurement table.
const ColImpl = "impl"

// Table converts measurements to a go-gg table with the columns
// file, n, a, time, recursion calls and impl.
func Table(ms []benchcsv.Measurement) *table.Table {
	files := make([]string, len(ms))
	ns := make([]int, len(ms))
	as := make([]int, len(ms))
	times := make([]float64, len(ms))
	recs := make([]int64, len(ms))
	impls := make([]string, len(ms))
	for i, m := range ms {
		files[i], ns[i], as[i] = m.File, m.N, m.A
		times[i], recs[i], impls[i] = m.Time, m.RecursionCalls, m.Impl
	}
	var b table.Builder
	b.Add(benchcsv.ColFile, files).
		Add(benchcsv.ColN, ns).
		Add(benchcsv.ColA, as).
		Add(benchcsv.ColTime, times).
		Add(benchcsv.ColRecursionCalls, recs).
		Add(ColImpl, impls)
	return b.Done()
}

// An Aggregate combines the values of one implementation that share a
// key in Pivot.
type Aggregate int

const (
	// Mean averages all values.
	Mean Aggregate = iota
	// Min takes the smallest value.
	Min
	// Unique requires all values to be equal and fails with a
	// *DuplicateError otherwise.
	Unique
)

func (a Aggregate) String() string {
	switch a {
	case Mean:
		return "mean"
	case Min:
		return "min"
	case Unique:
		return "unique"
	}
	return fmt.Sprintf("Aggregate(%d)", int(a))
}

// A DuplicateError reports a key with conflicting values in a Unique
// pivot.
type DuplicateError struct {
	Key    []interface{}
	Impl   string
	Column string
	Lo, Hi float64
}

func (e *DuplicateError) Error() string {
	parts := make([]string, len(e.Key))
	for i, k := range e.Key {
		parts[i] = fmt.Sprint(k)
	}
	return fmt.Sprintf("duplicate %s values for %s in (%s): %v and %v", e.Column, e.Impl, strings.Join(parts, ", "), e.Lo, e.Hi)
}

// Pivot converts the rows of measurement table t into a Frame with one
// row per distinct tuple of the keys columns and one column per
// implementation. Each cell is the aggregate of the value column over
// the measurements of that implementation with that key; it is NaN
// if there are none. Rows are sorted by key and implementation
// columns by name.
func Pivot(t *table.Table, keys []string, value string, agg Aggregate) (*Frame, error) {
	f := NewFrame(keys...)
	if t.Len() == 0 {
		return f, nil
	}
	for _, col := range append(append([]string{}, keys...), value, ColImpl) {
		if t.Column(col) == nil {
			return nil, fmt.Errorf("pivot: unknown column %q", col)
		}
	}

	// ggstat aggregates keep the column type; average counts as floats.
	if _, ok := t.Column(value).([]float64); !ok {
		var fs []float64
		slice.Convert(&fs, t.Column(value))
		t = table.NewBuilder(t).Add(value, fs).Done()
	}

	xs := append(append([]string{}, keys...), ColImpl)
	var aggs []ggstat.Aggregator
	var out string
	switch agg {
	case Mean:
		aggs, out = []ggstat.Aggregator{ggstat.AggMean(value)}, "mean "+value
	case Min, Unique:
		aggs = []ggstat.Aggregator{ggstat.AggMin(value), ggstat.AggMax(value)}
		out = "min " + value
	default:
		return nil, fmt.Errorf("pivot: unknown aggregate %v", agg)
	}
	at := table.Flatten(ggstat.Agg(xs...)(aggs...).F(t))

	keyCols := make([]reflect.Value, len(keys))
	for i, k := range keys {
		keyCols[i] = reflect.ValueOf(at.MustColumn(k))
	}
	impls := at.MustColumn(ColImpl).([]string)
	var vals, his []float64
	slice.Convert(&vals, at.MustColumn(out))
	if agg == Unique {
		slice.Convert(&his, at.MustColumn("max "+value))
	}

	rowOf := make(map[string]int)
	for i, impl := range impls {
		key := make([]interface{}, len(keys))
		for j, c := range keyCols {
			key[j] = c.Index(i).Interface()
		}
		if agg == Unique && his[i] != vals[i] {
			return nil, &DuplicateError{Key: key, Impl: impl, Column: value, Lo: vals[i], Hi: his[i]}
		}
		ks := keyString(key)
		row, ok := rowOf[ks]
		if !ok {
			row = f.AddRow(key...)
			rowOf[ks] = row
		}
		f.Set(row, impl, vals[i])
	}

	sort.Strings(f.cols)
	f.SortRows()
	return f, nil
}
