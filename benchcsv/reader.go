// Copyright 2025 The speedstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchcsv reads and writes benchmark measurement files.
//
// A measurement file is a CSV file with a header row. Each following
// row records one run of one implementation on one input graph:
//
//	file,n,a,time,recursion calls
//	graf_20_7.txt,20,7,0.0131,48210
//
// The "n" column may be omitted, in which case it is derived from the
// graph file name (see GraphSize). Other columns are ignored.
package benchcsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Canonical column names.
const (
	ColFile           = "file"
	ColN              = "n"
	ColA              = "a"
	ColTime           = "time"
	ColRecursionCalls = "recursion calls"
)

// Header is the header row written by Writer.
var Header = []string{ColFile, ColN, ColA, ColTime, ColRecursionCalls}

// A Measurement is a single benchmark run of one implementation.
type Measurement struct {
	// File is the name of the graph input file.
	File string
	// N is the number of nodes in the graph.
	N int
	// A is the subset size searched for.
	A int
	// Time is the wall-clock run time in seconds.
	Time float64
	// RecursionCalls is the number of recursive calls made.
	RecursionCalls int64
	// Impl labels the implementation that produced this run.
	Impl string
}

// A SyntaxError represents a syntax error on a particular line of a
// measurement file.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

// A Reader reads measurements from a CSV stream.
//
// Its API is modeled on bufio.Scanner. The Measurement returned by
// Measurement is owned by the Reader and is overwritten by the next
// call to Scan.
type Reader struct {
	r        *csv.Reader
	fileName string
	impl     string
	err      error

	// cols maps canonical column names to record indexes, or -1.
	cols map[string]int

	m    Measurement
	line int
	ok   bool
}

// NewReader returns a Reader for r. fileName is used in error
// messages. impl is stored in every Measurement read.
func NewReader(r io.Reader, fileName, impl string) *Reader {
	reader := new(Reader)
	reader.Reset(r, fileName, impl)
	return reader
}

// Reset resets the reader to begin reading from a new input.
func (r *Reader) Reset(ior io.Reader, fileName, impl string) {
	if fileName == "" {
		fileName = "<unknown>"
	}
	r.r = csv.NewReader(ior)
	r.r.FieldsPerRecord = -1
	r.r.TrimLeadingSpace = true
	r.fileName = fileName
	r.impl = impl
	r.err = nil
	r.cols = nil
	r.line = 0
	r.ok = false
}

func (r *Reader) syntaxError(format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{r.fileName, r.line, fmt.Sprintf(format, args...)}
}

// Scan advances to the next measurement and reports whether one was
// read. At end of input or on error it returns false; use Err to tell
// the two apart.
func (r *Reader) Scan() bool {
	r.ok = false
	if r.err != nil {
		return false
	}
	for {
		rec, err := r.r.Read()
		if err == io.EOF {
			if r.cols == nil {
				r.err = r.syntaxError("missing header")
			}
			return false
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				r.line = perr.Line
				r.err = r.syntaxError("%v", perr.Err)
			} else {
				r.err = err
			}
			return false
		}
		r.line, _ = r.r.FieldPos(0)
		if isBlank(rec) {
			continue
		}
		if r.cols == nil {
			if err := r.parseHeader(rec); err != nil {
				r.err = err
				return false
			}
			continue
		}
		if err := r.parseRow(rec); err != nil {
			r.err = err
			return false
		}
		r.ok = true
		return true
	}
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func (r *Reader) parseHeader(rec []string) error {
	r.cols = map[string]int{ColFile: -1, ColN: -1, ColA: -1, ColTime: -1, ColRecursionCalls: -1}
	for i, name := range rec {
		name = strings.ToLower(strings.TrimSpace(name))
		if j, ok := r.cols[name]; ok && j < 0 {
			r.cols[name] = i
		}
	}
	for _, name := range []string{ColFile, ColA, ColTime, ColRecursionCalls} {
		if r.cols[name] < 0 {
			return r.syntaxError("missing column %q", name)
		}
	}
	return nil
}

func (r *Reader) field(rec []string, col string) (string, error) {
	i := r.cols[col]
	if i >= len(rec) {
		return "", r.syntaxError("missing value for %q", col)
	}
	return strings.TrimSpace(rec[i]), nil
}

func (r *Reader) parseRow(rec []string) error {
	m := &r.m
	*m = Measurement{Impl: r.impl}

	var err error
	if m.File, err = r.field(rec, ColFile); err != nil {
		return err
	}
	if m.File == "" {
		return r.syntaxError("empty file name")
	}

	intField := func(col string) (int64, error) {
		s, err := r.field(rec, col)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			// Accept integral floats such as "7.0".
			f, ferr := strconv.ParseFloat(s, 64)
			if ferr != nil || f != float64(int64(f)) {
				return 0, r.syntaxError("bad %s %q", col, s)
			}
			v = int64(f)
		}
		return v, nil
	}

	a, err := intField(ColA)
	if err != nil {
		return err
	}
	m.A = int(a)

	if r.cols[ColN] >= 0 {
		n, err := intField(ColN)
		if err != nil {
			return err
		}
		m.N = int(n)
	} else {
		m.N, _ = GraphSize(m.File)
	}

	s, err := r.field(rec, ColTime)
	if err != nil {
		return err
	}
	if m.Time, err = strconv.ParseFloat(s, 64); err != nil {
		return r.syntaxError("bad %s %q", ColTime, s)
	}

	if m.RecursionCalls, err = intField(ColRecursionCalls); err != nil {
		return err
	}
	return nil
}

// Measurement returns the measurement read by the last call to Scan.
func (r *Reader) Measurement() *Measurement {
	if !r.ok {
		return nil
	}
	return &r.m
}

// Err returns the first error that stopped Scan, or nil if Scan
// reached the end of the input.
func (r *Reader) Err() error {
	return r.err
}

// Read reads every measurement from r.
func Read(r io.Reader, fileName, impl string) ([]Measurement, error) {
	var ms []Measurement
	rd := NewReader(r, fileName, impl)
	for rd.Scan() {
		ms = append(ms, *rd.Measurement())
	}
	return ms, rd.Err()
}
