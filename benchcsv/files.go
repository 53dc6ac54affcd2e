// Copyright 2025 The speedstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchcsv

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// An Input names one measurement file and the implementation label
// its measurements are tagged with.
type Input struct {
	Impl string `yaml:"impl"`
	Path string `yaml:"path"`
}

// DefaultInputs is the standard set of measurement files, in the
// order they are read.
var DefaultInputs = []Input{
	{"ref_seq", "ref_seq.csv"},
	{"seq", "seq.csv"},
	{"omp_task", "mp_task.csv"},
	{"omp_data", "mp_data.csv"},
	{"mpi_1", "mpi_1.csv"},
	{"mpi_2", "mpi_2.csv"},
	{"mpi_3", "mpi_3.csv"},
}

// LabelFor returns the implementation label for path. If the base
// name of path is one of DefaultInputs, that input's label is used.
// Otherwise the label is the base name without its extension.
func LabelFor(path string) string {
	base := filepath.Base(path)
	for _, in := range DefaultInputs {
		if in.Path == base {
			return in.Impl
		}
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ParseInput parses an input argument of the form "label=path" or
// "path".
func ParseInput(arg string) Input {
	if i := strings.Index(arg, "="); i >= 0 {
		return Input{Impl: arg[:i], Path: arg[i+1:]}
	}
	return Input{Impl: LabelFor(arg), Path: arg}
}

// ErrNoInput is returned by ReadAll when none of the inputs could be
// read.
var ErrNoInput = errors.New("no measurement file found")

// A Files reads measurements from a sequence of input files.
type Files struct {
	// Inputs is the list of files to read, in order.
	Inputs []Input

	// Dir, if not empty, is joined to relative input paths.
	Dir string

	// AllowMissing causes inputs that do not exist to be skipped
	// instead of stopping the scan. Each skipped input is
	// reported to Warn.
	AllowMissing bool

	// Warn, if non-nil, is called for every skipped input.
	Warn func(path string, err error)

	// inputs is the queue of remaining inputs, or nil if Scan has
	// not been called yet.
	inputs []Input
	read   int

	reader Reader
	file   *os.File
	err    error
}

func (f *Files) path(in Input) string {
	if f.Dir == "" || filepath.IsAbs(in.Path) {
		return in.Path
	}
	return filepath.Join(f.Dir, in.Path)
}

// Scan advances to the next measurement across all files and reports
// whether one was read. See Reader.Scan.
func (f *Files) Scan() bool {
	if f.err != nil {
		return false
	}
	if f.inputs == nil {
		f.inputs = append([]Input{}, f.Inputs...)
	}

	for {
		if f.file == nil {
			if len(f.inputs) == 0 {
				return false
			}
			in := f.inputs[0]
			f.inputs = f.inputs[1:]

			path := f.path(in)
			file, err := os.Open(path)
			if err != nil {
				if f.AllowMissing && errors.Is(err, fs.ErrNotExist) {
					if f.Warn != nil {
						f.Warn(path, err)
					}
					continue
				}
				f.err = err
				return false
			}
			f.file = file
			f.read++
			f.reader.Reset(file, path, in.Impl)
		}

		if f.reader.Scan() {
			return true
		}
		f.file.Close()
		f.file = nil
		if err := f.reader.Err(); err != nil {
			f.err = err
			return false
		}
	}
}

// Measurement returns the measurement just read by Scan.
func (f *Files) Measurement() *Measurement {
	return f.reader.Measurement()
}

// Err returns the error that stopped Scan, if any.
func (f *Files) Err() error {
	return f.err
}

// Opened returns the number of input files opened so far.
func (f *Files) Opened() int {
	return f.read
}

// ReadAll reads every measurement from f. It returns ErrNoInput if no
// input file could be opened.
func ReadAll(f *Files) ([]Measurement, error) {
	var ms []Measurement
	for f.Scan() {
		ms = append(ms, *f.Measurement())
	}
	if err := f.Err(); err != nil {
		return nil, err
	}
	if f.Opened() == 0 {
		return nil, ErrNoInput
	}
	return ms, nil
}

// Impls returns the distinct implementation labels of ms in order of
// first appearance.
func Impls(ms []Measurement) []string {
	var impls []string
	seen := make(map[string]bool)
	for _, m := range ms {
		if !seen[m.Impl] {
			seen[m.Impl] = true
			impls = append(impls, m.Impl)
		}
	}
	return impls
}
