// Copyright 2025 The speedstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out tables as aligned plain text or as
// Markdown pipe tables.
package texttab

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Table accumulates rows of cells.
//
// Many of its methods return the Table so callers can easily chain
// them to build up many cells at once. The first row is the header.
type Table struct {
	rows  [][]textCell
	align []align
}

type textCell struct {
	value     string
	alignment align
	set       bool
}

// CellOption modifies a single cell.
type CellOption func(c *textCell)

var (
	Left   CellOption = func(c *textCell) { c.alignment, c.set = alignLeft, true }
	Center CellOption = func(c *textCell) { c.alignment, c.set = alignCenter, true }
	Right  CellOption = func(c *textCell) { c.alignment, c.set = alignRight, true }
)

type align int

const (
	alignLeft align = iota
	alignCenter
	alignRight
)

func (a align) pad(s string, w int) string {
	n := w - utf8.RuneCountInString(s)
	if n <= 0 {
		return s
	}
	switch a {
	case alignCenter:
		l := n / 2
		return strings.Repeat(" ", l) + s + strings.Repeat(" ", n-l)
	case alignRight:
		return strings.Repeat(" ", n) + s
	}
	return s + strings.Repeat(" ", n)
}

// Row starts a new row in table t.
func (t *Table) Row() *Table {
	t.rows = append(t.rows, nil)
	return t
}

// Cell appends a cell to the current row.
func (t *Table) Cell(value string, opts ...CellOption) *Table {
	if len(t.rows) == 0 {
		t.Row()
	}
	c := textCell{value: value}
	for _, o := range opts {
		o(&c)
	}
	r := len(t.rows) - 1
	t.rows[r] = append(t.rows[r], c)
	return t
}

// SetAlign sets the default alignment of column col. Columns are
// numbered starting at 0.
func (t *Table) SetAlign(col int, opt CellOption) {
	for len(t.align) < col+1 {
		t.align = append(t.align, alignLeft)
	}
	var c textCell
	opt(&c)
	t.align[col] = c.alignment
}

func (t *Table) cols() int {
	n := 0
	for _, row := range t.rows {
		if len(row) > n {
			n = len(row)
		}
	}
	return n
}

func (t *Table) cellAlign(c textCell, col int) align {
	if c.set {
		return c.alignment
	}
	if col < len(t.align) {
		return t.align[col]
	}
	return alignLeft
}

func (t *Table) widths(min int) []int {
	ws := make([]int, t.cols())
	for i := range ws {
		ws[i] = min
	}
	for _, row := range t.rows {
		for i, c := range row {
			if n := utf8.RuneCountInString(c.value); n > ws[i] {
				ws[i] = n
			}
		}
	}
	return ws
}

// Format lays out table t as plain text with two spaces between
// columns and writes it to w. Trailing spaces are trimmed.
func (t *Table) Format(w io.Writer) error {
	ws := t.widths(0)
	for _, row := range t.rows {
		var line strings.Builder
		for i, c := range row {
			if i > 0 {
				line.WriteString("  ")
			}
			line.WriteString(t.cellAlign(c, i).pad(c.value, ws[i]))
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(line.String(), " ")); err != nil {
			return err
		}
	}
	return nil
}

// FormatMarkdown lays out table t as a Markdown pipe table and writes
// it to w. The first row is the header. Column alignment is encoded in
// the delimiter row.
func (t *Table) FormatMarkdown(w io.Writer) error {
	if len(t.rows) == 0 {
		return nil
	}
	// The delimiter row needs at least three characters per column.
	ws := t.widths(3)
	writeRow := func(cells []string) error {
		_, err := fmt.Fprintf(w, "| %s |\n", strings.Join(cells, " | "))
		return err
	}

	cells := make([]string, len(ws))
	for i := range ws {
		var c textCell
		if i < len(t.rows[0]) {
			c = t.rows[0][i]
		}
		cells[i] = alignLeft.pad(escapePipe(c.value), ws[i])
	}
	if err := writeRow(cells); err != nil {
		return err
	}

	for i, w := range ws {
		a := alignLeft
		if i < len(t.align) {
			a = t.align[i]
		}
		switch a {
		case alignRight:
			cells[i] = strings.Repeat("-", w-1) + ":"
		case alignCenter:
			cells[i] = ":" + strings.Repeat("-", w-2) + ":"
		default:
			cells[i] = ":" + strings.Repeat("-", w-1)
		}
	}
	if err := writeRow(cells); err != nil {
		return err
	}

	for _, row := range t.rows[1:] {
		for i := range ws {
			var c textCell
			if i < len(row) {
				c = row[i]
			}
			cells[i] = t.cellAlign(c, i).pad(escapePipe(c.value), ws[i])
		}
		if err := writeRow(cells); err != nil {
			return err
		}
	}
	return nil
}

func escapePipe(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
