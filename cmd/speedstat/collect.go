// Copyright 2025 The speedstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdp-bench/speedstat/benchcsv"
)

func (a *app) collectCmd() *cobra.Command {
	var (
		impl   string
		graph  string
		subset int
		header bool
	)
	cmd := &cobra.Command{
		Use:   "collect [log...]",
		Short: "Convert solver output into measurement CSV rows",
		Long: `Collect reads the output of solver runs, from the named log files or
standard input, and writes one measurement row per run to standard output.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if graph == "" {
				return fmt.Errorf("collect needs --graph")
			}
			w := benchcsv.NewWriter(a.stdout, header)
			write := func(r io.Reader, name string) error {
				run, err := benchcsv.ParseSolverLog(r, name)
				if err != nil {
					return err
				}
				if !run.HasRecursionCalls {
					a.log.Warn("Solver did not report recursion calls", zap.String("log", name))
				}
				m := run.Measurement(impl, graph, subset)
				fields := []zap.Field{zap.String("impl", impl), zap.String("log", name), zap.Float64("time", m.Time)}
				if run.HasCutWeight {
					fields = append(fields, zap.Int64("cut", run.CutWeight))
				}
				a.log.Info("Collected run", fields...)
				return w.Write(&m)
			}

			if len(args) == 0 {
				if err := write(cmd.InOrStdin(), "<stdin>"); err != nil {
					return err
				}
			}
			for _, name := range args {
				f, err := os.Open(name)
				if err != nil {
					return err
				}
				err = write(f, name)
				f.Close()
				if err != nil {
					return err
				}
			}
			return w.Flush()
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&impl, "impl", "", "implementation `label` of the runs")
	flags.StringVar(&graph, "graph", "", "graph input `file` the solver ran on")
	flags.IntVarP(&subset, "subset", "a", 0, "subset size `a` the solver searched for")
	flags.BoolVar(&header, "header", false, "write the CSV header row first")
	return cmd
}
