// Copyright 2025 The speedstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchcsv

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
)

// GraphSize derives the node count from a graph file name of the form
// "graf_<n>_<k>.txt". It reports false if name has another form.
func GraphSize(name string) (int, bool) {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	parts := strings.Split(base, "_")
	if len(parts) < 2 {
		return 0, false
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// A SolverRun is the summary printed by one solver run.
type SolverRun struct {
	CutWeight      int64
	RecursionCalls int64
	Elapsed        float64 // seconds

	HasCutWeight, HasRecursionCalls, HasElapsed bool
}

// Measurement converts s into a measurement of impl on graph file with
// subset size a. A run that did not report its recursion calls
// records zero.
func (s *SolverRun) Measurement(impl, file string, a int) Measurement {
	n, _ := GraphSize(file)
	return Measurement{
		File:           filepath.Base(file),
		N:              n,
		A:              a,
		Time:           s.Elapsed,
		RecursionCalls: s.RecursionCalls,
		Impl:           impl,
	}
}

// summaryKeys maps the lowercased summary labels of the solvers onto
// the field they report.
var summaryKeys = map[string]string{
	"minimum cut weight":        "cut",
	"best min-cut weight found": "cut",
	"total recursion calls":     "calls",
	"total recursive calls":     "calls",
	"total dfs calls":           "calls",
	"elapsed time":              "elapsed",
	"execution time":            "elapsed",
}

// ParseSolverLog extracts the summary lines from a solver's standard
// output. The MPI solvers print
//
//	Minimum cut weight: 42
//	Total recursion calls: 123456
//	Elapsed time: 0.52 seconds
//
// the third MPI solver prints "Total DFS calls" and "Elapsed time: 0.52 s",
// and the sequential and OpenMP solvers print indented
//
//	  Execution Time: 0.52 seconds
//	  Total Recursive Calls: 123456
//	  Best Min-Cut Weight Found: 42
//
// with "Total Recursion Calls" in the OpenMP variants. Labels are
// matched without regard to case. Lines it does not recognize, such as
// the printed partition, are skipped. It is an error if no elapsed
// time is found.
func ParseSolverLog(r io.Reader, fileName string) (*SolverRun, error) {
	var run SolverRun
	s := bufio.NewScanner(r)
	line := 0
	bad := func(what, val string) error {
		return &SyntaxError{fileName, line, fmt.Sprintf("bad %s %q", what, val)}
	}
	for s.Scan() {
		line++
		key, val, ok := strings.Cut(s.Text(), ":")
		if !ok {
			continue
		}
		val = strings.TrimSpace(val)
		switch summaryKeys[strings.ToLower(strings.TrimSpace(key))] {
		case "cut":
			v, err := strconv.ParseInt(val, 10, 64)
			if err != nil {
				return nil, bad("cut weight", val)
			}
			run.CutWeight, run.HasCutWeight = v, true
		case "calls":
			v, err := strconv.ParseInt(val, 10, 64)
			if err != nil {
				return nil, bad("recursion calls", val)
			}
			run.RecursionCalls, run.HasRecursionCalls = v, true
		case "elapsed":
			v, err := parseSeconds(val)
			if err != nil {
				return nil, bad("elapsed time", val)
			}
			run.Elapsed, run.HasElapsed = v, true
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	if !run.HasElapsed {
		return nil, &SyntaxError{fileName, line, "no elapsed time reported"}
	}
	return &run, nil
}

// parseSeconds parses "0.52", "0.52 s" or "0.52 seconds".
func parseSeconds(val string) (float64, error) {
	f := strings.Fields(val)
	if len(f) == 0 || len(f) > 2 {
		return 0, fmt.Errorf("bad duration %q", val)
	}
	if len(f) == 2 && f[1] != "s" && f[1] != "seconds" {
		return 0, fmt.Errorf("bad duration unit %q", f[1])
	}
	return strconv.ParseFloat(f[0], 64)
}
