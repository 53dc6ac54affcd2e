// Copyright 2025 The speedstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdp-bench/speedstat/benchcsv"
	"github.com/pdp-bench/speedstat/benchtable"
	"github.com/pdp-bench/speedstat/internal/report"
)

const inputsUsage = " [label=]file..."

func (a *app) overviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "overview" + inputsUsage,
		Short: "Compare all implementations: time, speedup and recursion call charts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ms, err := a.measurements(cmd.Context(), args)
			if err != nil {
				return err
			}
			w := a.writer()
			if err := w.Overview(ms); err != nil {
				return err
			}
			return w.Index("speedstat overview")
		},
	}
}

func (a *app) resultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "results" + inputsUsage,
		Short: "Write the results table with speedups over the baseline",
		RunE: func(cmd *cobra.Command, args []string) error {
			ms, err := a.measurements(cmd.Context(), args)
			if err != nil {
				return err
			}
			w := a.writer()
			if _, err := w.Results(ms); err != nil {
				return err
			}
			return w.Index("speedstat results")
		},
	}
}

func (a *app) speedupCmd() *cobra.Command {
	var resultsPath string
	cmd := &cobra.Command{
		Use:   "speedup" + inputsUsage,
		Short: "Join the results table with recursion calls and chart speedups",
		Long: `Speedup joins the results table with the minimum recursion calls of every
graph and implementation and derives speedups over the baseline and the
reference run. The results table is recomputed from the inputs unless
--results names one written earlier.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ms, err := a.measurements(cmd.Context(), args)
			if err != nil {
				return err
			}
			w := a.writer()
			var results *benchtable.Frame
			if resultsPath != "" {
				results, err = report.ReadResults(resultsPath)
			} else {
				results, err = w.Results(ms)
			}
			if err != nil {
				return err
			}
			if _, err := w.Speedup(results, ms); err != nil {
				return err
			}
			return w.Index("speedstat speedup")
		},
	}
	cmd.Flags().StringVar(&resultsPath, "results", "", "read the results table from `file`")
	return cmd
}

func (a *app) recursionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recursion" + inputsUsage,
		Short: "Compare recursion calls and print them as Markdown tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			ms, err := a.measurements(cmd.Context(), args)
			if err != nil {
				return err
			}
			w := a.writer()
			if _, err := w.Recursion(ms); err != nil {
				return err
			}
			return w.Index("speedstat recursion")
		},
	}
}

func (a *app) allCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all" + inputsUsage,
		Short: "Run every report and write an index page",
		RunE: func(cmd *cobra.Command, args []string) error {
			ms, err := a.measurements(cmd.Context(), args)
			if err != nil {
				return err
			}
			w := a.writer()
			if err := w.Overview(ms); err != nil {
				return err
			}
			results, err := w.Results(ms)
			if err != nil {
				return err
			}
			if _, err := w.Speedup(results, ms); err != nil {
				return err
			}
			if _, err := w.Recursion(ms); err != nil {
				return err
			}
			return w.Index("speedstat")
		},
	}
}

func (a *app) compareCmd() *cobra.Command {
	var oldImpl, newImpl, metric string
	var confidence float64
	cmd := &cobra.Command{
		Use:   "compare" + inputsUsage,
		Short: "Test whether one implementation differs from another on repeated runs",
		Long: `Compare summarizes the repeated runs of every graph measured by both the
--old and --new implementation and tests the difference for significance.
Times are compared with a Welch t-test; recursion calls are expected to
be exact.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if newImpl == "" {
				return fmt.Errorf("compare: --new is required")
			}
			if oldImpl == "" {
				oldImpl = a.cfg.Baseline
			}
			var column string
			switch metric {
			case "time":
				column = benchcsv.ColTime
			case "recursion":
				column = benchcsv.ColRecursionCalls
			default:
				return fmt.Errorf("compare: unknown metric %q (want time or recursion)", metric)
			}
			if !(confidence > 0 && confidence < 1) {
				return fmt.Errorf("compare: confidence %v out of range (0, 1)", confidence)
			}
			ms, err := a.measurements(cmd.Context(), args)
			if err != nil {
				return err
			}
			_, err = a.writer().Compare(ms, oldImpl, newImpl, column, confidence)
			return err
		},
	}
	cmd.Flags().StringVar(&oldImpl, "old", "", "compare against `impl` (default the baseline)")
	cmd.Flags().StringVar(&newImpl, "new", "", "compare `impl`")
	cmd.Flags().StringVar(&metric, "metric", "time", "compare `metric`: time or recursion")
	cmd.Flags().Float64Var(&confidence, "confidence", 0.95, "confidence `level` of the summaries")
	return cmd
}
