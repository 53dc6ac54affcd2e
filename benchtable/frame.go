// Copyright 2025 The speedstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchtable combines measurements of several implementations
// into comparison tables.
//
// The central type is Frame: a table with one row per benchmark case
// (identified by key columns such as file, n and a) and one float64
// column per implementation or derived metric. Frames are built by
// Pivot from a go-gg table of measurements.
package benchtable

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/aclements/go-gg/generic"
	"github.com/aclements/go-gg/table"
)

// A Frame is a table of float64 value columns indexed by key columns.
// Missing values are NaN.
type Frame struct {
	keys []string        // key column names
	rows [][]interface{} // key values of each row; string or int
	cols []string        // value column names, in order
	vals map[string][]float64
}

// NewFrame returns an empty Frame with the given key columns.
func NewFrame(keys ...string) *Frame {
	return &Frame{keys: keys, vals: make(map[string][]float64)}
}

// Keys returns the names of f's key columns.
func (f *Frame) Keys() []string { return f.keys }

// Columns returns the names of f's value columns, in order.
func (f *Frame) Columns() []string { return f.cols }

// Len returns the number of rows in f.
func (f *Frame) Len() int { return len(f.rows) }

// Key returns the key values of row i.
func (f *Frame) Key(i int) []interface{} { return f.rows[i] }

// KeyValue returns the value of key column name in row i, or nil if f
// has no such key column.
func (f *Frame) KeyValue(i int, name string) interface{} {
	for j, k := range f.keys {
		if k == name {
			return f.rows[i][j]
		}
	}
	return nil
}

// Has reports whether f has a value column called name.
func (f *Frame) Has(name string) bool {
	_, ok := f.vals[name]
	return ok
}

// Column returns the values of column name. The returned slice must
// not be modified.
func (f *Frame) Column(name string) ([]float64, bool) {
	v, ok := f.vals[name]
	return v, ok
}

// AddRow appends a row with the given key values. All value columns
// get NaN in the new row.
func (f *Frame) AddRow(key ...interface{}) int {
	if len(key) != len(f.keys) {
		panic(fmt.Sprintf("AddRow: got %d key values for %d key columns", len(key), len(f.keys)))
	}
	f.rows = append(f.rows, key)
	for _, c := range f.cols {
		f.vals[c] = append(f.vals[c], math.NaN())
	}
	return len(f.rows) - 1
}

// SetColumn adds a value column to f, or replaces the values of an
// existing column in place.
func (f *Frame) SetColumn(name string, vals []float64) error {
	if len(vals) != len(f.rows) {
		return fmt.Errorf("column %q has %d values for %d rows", name, len(vals), len(f.rows))
	}
	if f.isKey(name) {
		return fmt.Errorf("column %q is a key column", name)
	}
	if _, ok := f.vals[name]; !ok {
		f.cols = append(f.cols, name)
	}
	f.vals[name] = vals
	return nil
}

func (f *Frame) isKey(name string) bool {
	for _, k := range f.keys {
		if k == name {
			return true
		}
	}
	return false
}

// Set sets the value of column name in row i, creating the column if
// needed.
func (f *Frame) Set(i int, name string, v float64) {
	col, ok := f.vals[name]
	if !ok {
		col = make([]float64, len(f.rows))
		for j := range col {
			col[j] = math.NaN()
		}
		f.cols = append(f.cols, name)
		f.vals[name] = col
	}
	col[i] = v
}

// SortRows sorts the rows of f by their key tuples. Strings sort
// lexically and ints numerically.
func (f *Frame) SortRows() {
	perm := make([]int, len(f.rows))
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(i, j int) bool {
		return compareKeys(f.rows[perm[i]], f.rows[perm[j]]) < 0
	})
	rows := make([][]interface{}, len(perm))
	for i, p := range perm {
		rows[i] = f.rows[p]
	}
	f.rows = rows
	for _, c := range f.cols {
		old := f.vals[c]
		vals := make([]float64, len(perm))
		for i, p := range perm {
			vals[i] = old[p]
		}
		f.vals[c] = vals
	}
}

func compareKeys(a, b []interface{}) int {
	for i := range a {
		if generic.CanOrder(a[i], b[i]) {
			if c := generic.Order(a[i], b[i]); c != 0 {
				return c
			}
			continue
		}
		if c := strings.Compare(fmt.Sprint(a[i]), fmt.Sprint(b[i])); c != 0 {
			return c
		}
	}
	return 0
}

func keyString(key []interface{}) string {
	var b strings.Builder
	for i, k := range key {
		if i > 0 {
			b.WriteByte(0)
		}
		fmt.Fprint(&b, k)
	}
	return b.String()
}

// Merge left-joins right into f on key column on, which must be a key
// column of both frames. Every row of f is kept; it is repeated once
// for each matching row of right and gets NaN in right's columns if
// there is no match. Right value columns whose names are already used
// in f get suffix appended.
func (f *Frame) Merge(right *Frame, on, suffix string) (*Frame, error) {
	li, ri := indexOf(f.keys, on), indexOf(right.keys, on)
	if li < 0 {
		return nil, fmt.Errorf("merge: left frame has no key column %q", on)
	}
	if ri < 0 {
		return nil, fmt.Errorf("merge: right frame has no key column %q", on)
	}

	match := make(map[string][]int)
	for j, key := range right.rows {
		k := fmt.Sprint(key[ri])
		match[k] = append(match[k], j)
	}

	rnames := make([]string, len(right.cols))
	for i, c := range right.cols {
		name := c
		if f.Has(name) || f.isKey(name) {
			name += suffix
		}
		rnames[i] = name
	}

	out := NewFrame(f.keys...)
	var lidx, ridx []int
	for i, key := range f.rows {
		js := match[fmt.Sprint(key[li])]
		if len(js) == 0 {
			js = []int{-1}
		}
		for _, j := range js {
			out.rows = append(out.rows, key)
			lidx = append(lidx, i)
			ridx = append(ridx, j)
		}
	}
	for _, c := range f.cols {
		vals := make([]float64, len(lidx))
		for k, i := range lidx {
			vals[k] = f.vals[c][i]
		}
		out.cols = append(out.cols, c)
		out.vals[c] = vals
	}
	for n, c := range right.cols {
		vals := make([]float64, len(ridx))
		for k, j := range ridx {
			if j < 0 {
				vals[k] = math.NaN()
			} else {
				vals[k] = right.vals[c][j]
			}
		}
		if err := out.SetColumn(rnames[n], vals); err != nil {
			return nil, fmt.Errorf("merge: %w", err)
		}
	}
	return out, nil
}

func indexOf(xs []string, x string) int {
	for i, s := range xs {
		if s == x {
			return i
		}
	}
	return -1
}

// Table returns f as a go-gg table. Key columns keep their types and
// value columns are []float64.
func (f *Frame) Table() *table.Table {
	var b table.Builder
	for j, k := range f.keys {
		typ := reflect.TypeOf("")
		if len(f.rows) > 0 {
			typ = reflect.TypeOf(f.rows[0][j])
		}
		col := reflect.MakeSlice(reflect.SliceOf(typ), len(f.rows), len(f.rows))
		for i, row := range f.rows {
			col.Index(i).Set(reflect.ValueOf(row[j]))
		}
		b.Add(k, col.Interface())
	}
	for _, c := range f.cols {
		b.Add(c, f.vals[c])
	}
	return b.Done()
}
