// Copyright 2025 The speedstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtable

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/table"

	"github.com/pdp-bench/speedstat/internal/texttab"
)

// FormatValue formats a value cell the way WriteCSV does: shortest
// representation, "" for NaN and "inf"/"-inf" for infinities.
func FormatValue(v float64) string {
	switch {
	case math.IsNaN(v):
		return ""
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteCSV writes f as CSV: a header row with the key and value column
// names, then one row per row of f.
func (f *Frame) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	hdr := append(append([]string{}, f.keys...), f.cols...)
	if err := cw.Write(hdr); err != nil {
		return err
	}
	rec := make([]string, len(hdr))
	for i, key := range f.rows {
		for j, k := range key {
			rec[j] = fmt.Sprint(k)
		}
		for j, c := range f.cols {
			rec[len(f.keys)+j] = FormatValue(f.vals[c][i])
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads a Frame written by WriteCSV. keys names the key
// columns; every other column is a value column. Key columns whose
// cells are all integers become int keys. Empty value cells are NaN.
func ReadCSV(r io.Reader, keys ...string) (*Frame, error) {
	recs, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("read frame: missing header")
	}
	hdr, body := recs[0], recs[1:]

	keyIdx := make([]int, len(keys))
	for i, k := range keys {
		if keyIdx[i] = indexOf(hdr, k); keyIdx[i] < 0 {
			return nil, fmt.Errorf("read frame: missing key column %q", k)
		}
	}

	// Let go-gg coerce the key columns to their natural types.
	keyRows := make([][]string, len(body))
	for i, rec := range body {
		if len(rec) != len(hdr) {
			return nil, fmt.Errorf("read frame: line %d: got %d fields, want %d", i+2, len(rec), len(hdr))
		}
		keyRows[i] = make([]string, len(keys))
		for j, idx := range keyIdx {
			keyRows[i][j] = rec[idx]
		}
	}
	kt := table.TableFromStrings(keys, keyRows, true)

	f := NewFrame(keys...)
	keyCols := make([]reflect.Value, len(keys))
	for i, k := range keys {
		keyCols[i] = reflect.ValueOf(kt.Column(k))
	}
	for i := range body {
		key := make([]interface{}, len(keys))
		for j, c := range keyCols {
			if c.Type().Elem().Kind() == reflect.Float64 {
				// Keys are labels or sizes, never fractions.
				key[j] = keyRows[i][j]
				continue
			}
			key[j] = c.Index(i).Interface()
		}
		f.AddRow(key...)
	}

	for c, name := range hdr {
		if indexOf(keys, name) >= 0 {
			continue
		}
		vals := make([]float64, len(body))
		for i, rec := range body {
			s := strings.TrimSpace(rec[c])
			if s == "" {
				vals[i] = math.NaN()
				continue
			}
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("read frame: line %d: bad %s value %q", i+2, name, s)
			}
			vals[i] = v
		}
		if err := f.SetColumn(name, vals); err != nil {
			return nil, fmt.Errorf("read frame: %w", err)
		}
	}
	return f, nil
}

// WriteMarkdown writes the key columns of f followed by the value
// columns cols as a Markdown table. Columns f does not have are
// skipped. Values are printed with format, or in shortest form if
// format is empty.
func (f *Frame) WriteMarkdown(w io.Writer, format string, cols ...string) error {
	var have []string
	for _, c := range cols {
		if f.Has(c) {
			have = append(have, c)
		}
	}
	var tab texttab.Table
	tab.Row()
	for _, k := range f.keys {
		tab.Cell(k)
	}
	for i, c := range have {
		tab.Cell(c)
		tab.SetAlign(len(f.keys)+i, texttab.Right)
	}
	for i, key := range f.rows {
		tab.Row()
		for j, k := range key {
			tab.Cell(fmt.Sprint(k))
			if _, ok := k.(int); ok {
				tab.SetAlign(j, texttab.Right)
			}
		}
		for _, c := range have {
			v := f.vals[c][i]
			s := FormatValue(v)
			if format != "" && !math.IsNaN(v) && !math.IsInf(v, 0) {
				s = fmt.Sprintf(format, v)
			}
			tab.Cell(s)
		}
	}
	return tab.FormatMarkdown(w)
}
