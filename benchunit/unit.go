// Copyright 2025 The speedstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchunit formats measured values with unit prefixes for
// tables meant to be read by people.
package benchunit

import (
	"fmt"
	"strings"
)

// A Class specifies what class of unit prefixes are in use.
type Class int

const (
	// Decimal indicates values should be scaled by powers of 1000
	// using SI prefixes, including fractional ones such as "m"
	// and "µ". Times in seconds are Decimal.
	Decimal Class = iota
	// Count indicates values should be scaled by powers of 1000
	// but never below the unit. Values below 1 are printed with
	// more digits instead.
	Count
)

func (c Class) String() string {
	switch c {
	case Decimal:
		return "Decimal"
	case Count:
		return "Count"
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

// ClassOf returns the Class of a measurement or table column.
// Recursion call counts and their "_rec" merge columns are Count;
// everything else, including times and ratios, is Decimal.
func ClassOf(column string) Class {
	c := strings.ToLower(strings.TrimSpace(column))
	if strings.Contains(c, "recursion") || strings.HasSuffix(c, "_rec") {
		return Count
	}
	return Decimal
}

// UnitOf returns the unit suffix for values of column: "s" for times
// and "x" for speedups and relative columns. Other columns have no
// unit.
func UnitOf(column string) string {
	c := strings.ToLower(strings.TrimSpace(column))
	switch {
	case strings.HasPrefix(c, "speedup"), strings.Contains(c, "_rel_"):
		return "x"
	case c == "time", c == "mean time":
		return "s"
	}
	return ""
}
