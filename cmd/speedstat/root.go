// Copyright 2025 The speedstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdp-bench/speedstat/benchcsv"
	"github.com/pdp-bench/speedstat/benchplot"
	"github.com/pdp-bench/speedstat/internal/config"
	"github.com/pdp-bench/speedstat/internal/report"
	"github.com/pdp-bench/speedstat/internal/store"
)

// app holds the global flags and the state shared by all commands.
type app struct {
	configPath string
	out        string
	format     string
	verbose    bool
	db         string
	run        int64

	cfg    *config.Config
	log    *zap.Logger
	stdout io.Writer
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	a := &app{stdout: stdout}
	root := &cobra.Command{
		Use:   "speedstat",
		Short: "Compare benchmark measurements of several implementations",
		Long: `Speedstat reads benchmark measurement CSV files of several implementations
(sequential, OpenMP and MPI variants), combines them into comparison tables,
derives speedup ratios and renders charts.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "configuration `file` (default "+config.DefaultPath+" if present)")
	pf.StringVarP(&a.out, "out", "o", "", "output `directory`")
	pf.StringVar(&a.format, "format", "", "chart format: png, svg or pdf")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVar(&a.db, "db", "", "measurement archive as `driver:dsn`")
	pf.Int64Var(&a.run, "run", 0, "read measurements from archived run `id`")

	root.AddCommand(
		a.overviewCmd(),
		a.resultsCmd(),
		a.speedupCmd(),
		a.recursionCmd(),
		a.allCmd(),
		a.compareCmd(),
		a.archiveCmd(),
		a.runsCmd(),
		a.collectCmd(),
		a.configCmd(),
	)
	return root
}

// setup loads the configuration, applies the global flags and builds
// the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	path := a.configPath
	if path == "" {
		path = config.DefaultPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("out") {
		cfg.Output.Dir = a.out
	}
	if flags.Changed("format") {
		cfg.Output.Format = a.format
	}
	if flags.Changed("db") {
		cfg.DB = a.db
	}
	if a.verbose {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	level, err := zapcore.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}
	zc := zap.NewProductionConfig()
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.Level = zap.NewAtomicLevelAt(level)
	a.log, err = zc.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// inputs returns the measurement files named by args, or the
// configured ones if there are none.
func (a *app) inputs(args []string) *benchcsv.Files {
	f := &benchcsv.Files{
		Dir:          a.cfg.Dir,
		AllowMissing: a.cfg.AllowMissing,
		Warn: func(path string, err error) {
			a.log.Warn("Measurement file not found, skipping", zap.String("path", path))
		},
	}
	if len(args) == 0 {
		f.Inputs = a.cfg.Inputs
		return f
	}
	for _, arg := range args {
		f.Inputs = append(f.Inputs, benchcsv.ParseInput(arg))
	}
	// Files named on the command line are relative to the working
	// directory and must exist.
	f.Dir, f.AllowMissing = "", false
	return f
}

// measurements reads the measurements of a report, either from the
// archived run given by --run or from the input files.
func (a *app) measurements(ctx context.Context, args []string) ([]benchcsv.Measurement, error) {
	if a.run != 0 {
		if len(args) > 0 {
			return nil, fmt.Errorf("--run cannot be combined with input files")
		}
		db, err := a.openDB()
		if err != nil {
			return nil, err
		}
		defer db.Close()
		ms, err := db.Measurements(ctx, a.run)
		if err != nil {
			return nil, err
		}
		a.log.Info("Read archived run", zap.Int64("run", a.run), zap.Int("measurements", len(ms)))
		return ms, nil
	}

	ms, err := benchcsv.ReadAll(a.inputs(args))
	if err != nil {
		return nil, err
	}
	a.log.Info("Read measurements", zap.Int("measurements", len(ms)), zap.Strings("impls", benchcsv.Impls(ms)))
	return ms, nil
}

func (a *app) openDB() (*store.DB, error) {
	if a.cfg.DB == "" {
		return nil, fmt.Errorf("no database: use --db driver:dsn")
	}
	driver, dsn, err := store.ParseSource(a.cfg.DB)
	if err != nil {
		return nil, err
	}
	db, err := store.OpenSQL(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}
	return db, nil
}

func (a *app) writer() *report.Writer {
	out := a.cfg.Output
	return &report.Writer{
		Dir:    out.Dir,
		Format: out.Format,
		Chart: benchplot.Options{
			Width:  out.Width,
			Height: out.Height,
			DPI:    out.DPI,
		},
		Baseline:  a.cfg.Baseline,
		Reference: a.cfg.Reference,
		Samples:   a.cfg.Samples,
		Log:       a.log,
		Stdout:    a.stdout,
	}
}
