// Copyright 2025 The speedstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdp-bench/speedstat/benchcsv"
	"github.com/pdp-bench/speedstat/internal/texttab"
)

func (a *app) archiveCmd() *cobra.Command {
	var labels []string
	cmd := &cobra.Command{
		Use:   "archive" + inputsUsage,
		Short: "Store measurements as a new run in the --db archive",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.run != 0 {
				return fmt.Errorf("--run cannot be used with archive")
			}
			l, err := parseLabels(labels)
			if err != nil {
				return err
			}
			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			files := a.inputs(args)
			ms, err := benchcsv.ReadAll(files)
			if err != nil {
				return err
			}
			var in []string
			for _, i := range files.Inputs {
				in = append(in, i.Impl+"="+i.Path)
			}
			l["inputs"] = strings.Join(in, " ")
			if host, err := os.Hostname(); err == nil {
				l["host"] = host
			}

			ctx := cmd.Context()
			run, err := db.NewRun(ctx, l)
			if err != nil {
				return err
			}
			if err := run.Insert(ctx, ms); err != nil {
				return err
			}
			a.log.Info("Archived run", zap.Int64("run", run.ID), zap.Int("measurements", len(ms)))
			_, err = fmt.Fprintf(a.stdout, "run %d: %d measurements\n", run.ID, len(ms))
			return err
		},
	}
	cmd.Flags().StringArrayVarP(&labels, "label", "l", nil, "attach `key=value` to the run (repeatable)")
	return cmd
}

// parseLabels parses key=value run labels.
func parseLabels(args []string) (map[string]string, error) {
	l := make(map[string]string)
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("bad label %q: want key=value", arg)
		}
		l[k] = v
	}
	return l, nil
}

func (a *app) runsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "runs",
		Short: "List the runs in the --db archive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close()
			runs, err := db.Runs(cmd.Context())
			if err != nil {
				return err
			}

			var tab texttab.Table
			tab.Row().Cell("run").Cell("created").Cell("measurements").Cell("labels")
			tab.SetAlign(0, texttab.Right)
			tab.SetAlign(2, texttab.Right)
			for _, r := range runs {
				keys := make([]string, 0, len(r.Labels))
				for k := range r.Labels {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				var ls []string
				for _, k := range keys {
					ls = append(ls, k+"="+r.Labels[k])
				}
				tab.Row().
					Cell(fmt.Sprint(r.ID)).
					Cell(r.Created.Format(time.RFC3339)).
					Cell(fmt.Sprint(r.Count)).
					Cell(strings.Join(ls, " "))
			}
			return tab.Format(a.stdout)
		},
	}
}

func (a *app) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config file",
		Short: "Write the effective configuration, with global flags applied, as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.Save(args[0]); err != nil {
				return err
			}
			a.log.Info("Wrote configuration", zap.String("path", args[0]))
			return nil
		},
	}
}
