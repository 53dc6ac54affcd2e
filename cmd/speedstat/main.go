// Copyright 2025 The speedstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Speedstat compares benchmark measurements of several implementations
// of a recursive graph search and writes comparison tables, speedup
// ratios and charts.
//
// Usage:
//
//	speedstat [global flags] <command> [flags] [inputs...]
//
// The report commands are overview, results, speedup, recursion and
// all. Each reads measurement CSV files with the columns file, n, a,
// time and recursion calls, one file per implementation. Inputs are
// given as "label=path" or "path"; without inputs the files listed in
// the configuration are read, by default
//
//	ref_seq.csv seq.csv mp_task.csv mp_data.csv mpi_1.csv mpi_2.csv mpi_3.csv
//
// Missing default files are skipped with a warning.
//
// The compare command tests whether one implementation differs from
// another over repeated runs of the same graphs:
//
//	speedstat compare --old seq --new omp_task --metric time
//
// The archive command stores measurements in a SQL database given by
// --db driver:dsn (sqlite3 or mysql), and runs lists the stored runs.
// With --run id, the report commands read that run instead of CSV
// files.
//
// The collect command converts solver output into measurement rows:
//
//	speedstat collect --impl mpi_1 --graph graf_20_7.txt -a 7 run.log >> mpi_1.csv
//
// The config command writes the effective configuration, with the
// global flags applied, to a YAML file.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "speedstat: %v\n", err)
		os.Exit(1)
	}
}
