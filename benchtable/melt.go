// Copyright 2025 The speedstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtable

import (
	"fmt"
	"math"
	"reflect"

	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"
)

// Column names of melted tables.
const (
	ColSeries = "series"
	ColValue  = "value"
)

// A Point is one cell of a melted Frame.
type Point struct {
	Key    []interface{}
	Series string
	Value  float64
}

// Melt unpivots the value columns cols of f into a long table with
// the key columns of f plus a "series" column naming the source column
// and a "value" column holding its value. Columns f does not have are
// skipped.
func (f *Frame) Melt(cols ...string) *table.Table {
	var have []string
	for _, c := range cols {
		if f.Has(c) {
			have = append(have, c)
		}
	}
	if len(have) == 0 || f.Len() == 0 {
		return new(table.Table)
	}
	var b table.Builder
	t := f.Table()
	for _, k := range f.keys {
		b.Add(k, t.MustColumn(k))
	}
	for _, c := range have {
		b.Add(c, t.MustColumn(c))
	}
	return table.Flatten(table.Unpivot(b.Done(), ColSeries, ColValue, have...))
}

// MeanBy melts cols of f and averages the finite values of each
// series over the rows that share the key column by. The result has
// one Point per (by, series) pair, with Key holding only the by value,
// in order of first appearance.
func (f *Frame) MeanBy(by string, cols ...string) ([]Point, error) {
	if !f.isKey(by) {
		return nil, fmt.Errorf("mean: %q is not a key column", by)
	}
	t := finite(f.Melt(cols...))
	if t.Len() == 0 {
		return nil, nil
	}
	agg := ggstat.Agg(by, ColSeries)(ggstat.AggMean(ColValue))
	at := table.Flatten(agg.F(t))
	var b table.Builder
	b.Add(by, at.MustColumn(by)).
		Add(ColSeries, at.MustColumn(ColSeries)).
		Add(ColValue, at.MustColumn("mean "+ColValue))
	return points(b.Done(), []string{by}), nil
}

func finite(t *table.Table) *table.Table {
	if t.Len() == 0 {
		return t
	}
	g := table.Filter(t, func(v float64) bool {
		return !math.IsNaN(v) && !math.IsInf(v, 0)
	}, ColValue)
	return table.Flatten(g)
}

func points(t *table.Table, keys []string) []Point {
	t = finite(t)
	if t.Len() == 0 {
		return nil
	}
	keyCols := make([]reflect.Value, len(keys))
	for i, k := range keys {
		keyCols[i] = reflect.ValueOf(t.MustColumn(k))
	}
	series := t.MustColumn(ColSeries).([]string)
	values := t.MustColumn(ColValue).([]float64)
	ps := make([]Point, t.Len())
	for i := range ps {
		key := make([]interface{}, len(keys))
		for j, c := range keyCols {
			key[j] = c.Index(i).Interface()
		}
		ps[i] = Point{Key: key, Series: series[i], Value: values[i]}
	}
	return ps
}
