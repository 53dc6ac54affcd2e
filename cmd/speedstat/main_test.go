// Copyright 2025 The speedstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdp-bench/speedstat/benchcsv"
	"github.com/pdp-bench/speedstat/internal/config"
	"github.com/pdp-bench/speedstat/internal/report"
)

const testConfig = "testdata/speedstat.yaml"

// run executes speedstat with args and returns its standard output.
func run(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(args)
	cmd.SetErr(io.Discard)
	if stdin != nil {
		cmd.SetIn(stdin)
	}
	err := cmd.Execute()
	return out.String(), err
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestAll(t *testing.T) {
	out := t.TempDir()
	stdout, err := run(t, nil, "--config", testConfig, "--out", out, "all")
	require.NoError(t, err)

	for _, name := range []string{
		report.ComparisonTable,
		report.ResultsTable,
		report.CombinedTable,
		report.IndexPage,
		"g1_time_vs_n.png",
		"g4_time_all_files.png",
		"time_by_impl_logscale.png",
		"speedup_vs_seq.png",
		"speedup_omp_data_vs_task.png",
		"speedup_ref_vs_mpi_1.png",
		"recursion_ratio.png",
		"recursion_abs.png",
	} {
		assert.FileExists(t, filepath.Join(out, name))
	}
	assert.NoFileExists(t, filepath.Join(out, "speedup_ref_vs_mpi_2.png"))

	assert.Contains(t, stdout, "Recursion call ratios:")
	assert.Contains(t, stdout, "speedup_seq_vs_omp_task")

	index := readFile(t, filepath.Join(out, report.IndexPage))
	assert.Contains(t, index, `href="combined_speedup_recursion.csv"`)
	assert.Contains(t, index, `src="recursion_abs.png"`)
}

func TestResultsInputs(t *testing.T) {
	out := t.TempDir()
	_, err := run(t, nil, "--config", testConfig, "--out", out, "--format", "svg",
		"results", "seq=testdata/seq.csv", "testdata/mp_task.csv")
	require.NoError(t, err)

	table := readFile(t, filepath.Join(out, report.ResultsTable))
	lines := strings.Split(strings.TrimSpace(table), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "file,a,omp_task,seq,speedup_omp_task", lines[0])
	assert.Equal(t, "graf_10_5.txt,5,0.01,0.02,2", lines[1])
	assert.FileExists(t, filepath.Join(out, "time_by_impl_logscale.svg"))
}

func TestMissingInput(t *testing.T) {
	_, err := run(t, nil, "--config", testConfig, "--out", t.TempDir(), "results", "testdata/mpi_2.csv")
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	dir := t.TempDir()
	cfg := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("dir: "+dir+"\n"), 0644))
	_, err = run(t, nil, "--config", cfg, "--out", dir, "overview")
	assert.ErrorIs(t, err, benchcsv.ErrNoInput)
}

func TestBadFlags(t *testing.T) {
	_, err := run(t, nil, "--config", testConfig, "--format", "gif", "results")
	assert.ErrorContains(t, err, `unknown chart format "gif"`)

	_, err = run(t, nil, "--config", testConfig, "--db", "postgres:x", "runs")
	assert.ErrorContains(t, err, "unknown driver")

	_, err = run(t, nil, "--config", testConfig, "runs")
	assert.ErrorContains(t, err, "no database")
}

func TestCompare(t *testing.T) {
	stdout, err := run(t, nil, "--config", testConfig, "compare", "--new", "omp_task", "--metric", "recursion")
	require.NoError(t, err)
	assert.Contains(t, stdout, "recursion calls of omp_task vs seq:")
	assert.Contains(t, stdout, "seq exact")
	assert.Contains(t, stdout, "+13.33%")

	stdout, err = run(t, nil, "--config", testConfig, "compare", "--old", "omp_task", "--new", "mpi_1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "time of mpi_1 vs omp_task:")
	assert.Contains(t, stdout, "need >= 2 samples")

	_, err = run(t, nil, "--config", testConfig, "compare")
	assert.ErrorContains(t, err, "--new is required")
	_, err = run(t, nil, "--config", testConfig, "compare", "--new", "mpi_1", "--metric", "memory")
	assert.ErrorContains(t, err, `unknown metric "memory"`)
	_, err = run(t, nil, "--config", testConfig, "compare", "--new", "omp_data", "--old", "mpi_7")
	assert.ErrorContains(t, err, "no measurements of mpi_7")
}

func TestArchive(t *testing.T) {
	dir := t.TempDir()
	db := "sqlite3:" + filepath.Join(dir, "runs.db")

	stdout, err := run(t, nil, "--config", testConfig, "--db", db, "archive", "-l", "machine=lab")
	require.NoError(t, err)
	assert.Equal(t, "run 1: 15 measurements\n", stdout)

	stdout, err = run(t, nil, "--config", testConfig, "--db", db, "runs")
	require.NoError(t, err)
	assert.Contains(t, stdout, "machine=lab")
	assert.Contains(t, stdout, "inputs=ref_seq=ref_seq.csv")

	// A report of the archived run matches the report of the files.
	fromFiles, fromRun := filepath.Join(dir, "files"), filepath.Join(dir, "run")
	_, err = run(t, nil, "--config", testConfig, "--out", fromFiles, "results")
	require.NoError(t, err)
	_, err = run(t, nil, "--config", testConfig, "--db", db, "--run", "1", "--out", fromRun, "results")
	require.NoError(t, err)
	assert.Equal(t,
		readFile(t, filepath.Join(fromFiles, report.ResultsTable)),
		readFile(t, filepath.Join(fromRun, report.ResultsTable)))

	_, err = run(t, nil, "--config", testConfig, "--db", db, "--run", "7", "results")
	assert.ErrorContains(t, err, "run 7 not found")
}

func TestCollect(t *testing.T) {
	stdout, err := run(t, nil, "--config", testConfig,
		"collect", "--impl", "mpi_1", "--graph", "graf_20_7.txt", "-a", "7", "--header", "testdata/solver.log")
	require.NoError(t, err)
	assert.Equal(t, "file,n,a,time,recursion calls\ngraf_20_7.txt,20,7,0.52,123456\n", stdout)

	stdout, err = run(t, strings.NewReader("Elapsed time: 1.5 seconds\n"), "--config", testConfig,
		"collect", "--graph", "data/graf_30_10.txt", "-a", "10")
	require.NoError(t, err)
	assert.Equal(t, "graf_30_10.txt,30,10,1.5,0\n", stdout)

	seqLog := "Sequential\n  Execution Time: 0.25 seconds\n  Total Recursive Calls: 900\n\n  Best Min-Cut Weight Found: 11\n"
	stdout, err = run(t, strings.NewReader(seqLog), "--config", testConfig,
		"collect", "--impl", "seq", "--graph", "graf_10_5.txt", "-a", "5")
	require.NoError(t, err)
	assert.Equal(t, "graf_10_5.txt,10,5,0.25,900\n", stdout)

	_, err = run(t, strings.NewReader("no summary\n"), "--config", testConfig, "collect", "--graph", "g.txt")
	var serr *benchcsv.SyntaxError
	assert.ErrorAs(t, err, &serr)
}

func TestConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "effective.yaml")
	_, err := run(t, nil, "--config", testConfig, "--out", "reports", "--format", "svg", "config", path)
	require.NoError(t, err)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "reports", cfg.Output.Dir)
	assert.Equal(t, "svg", cfg.Output.Format)
	assert.Equal(t, 12.0, cfg.Output.Width)

	_, err = run(t, nil, "--config", testConfig, "config")
	assert.Error(t, err)
}

func TestParseLabels(t *testing.T) {
	l, err := parseLabels([]string{"a=1", "b=x=y"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1", "b": "x=y"}, l)

	_, err = parseLabels([]string{"novalue"})
	assert.Error(t, err)
}
