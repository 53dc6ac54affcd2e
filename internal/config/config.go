// Copyright 2025 The speedstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the speedstat configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/pdp-bench/speedstat/benchcsv"
)

// DefaultPath is the configuration file read when none is given.
const DefaultPath = "speedstat.yaml"

// Config holds all speedstat configuration.
type Config struct {
	// Inputs are the measurement files, in order.
	Inputs []benchcsv.Input `yaml:"inputs"`

	// Dir is joined to relative input paths.
	Dir string `yaml:"dir"`

	// AllowMissing skips inputs that do not exist with a warning.
	AllowMissing bool `yaml:"allow_missing"`

	// Baseline is the implementation speedups are measured
	// against; Reference is the run on the reference machine.
	Baseline  string `yaml:"baseline"`
	Reference string `yaml:"reference"`

	// Samples are the graph files shown in the results chart.
	Samples []string `yaml:"samples"`

	// Output settings
	Output OutputConfig `yaml:"output"`

	// DB is an optional "driver:dsn" measurement archive.
	DB string `yaml:"db"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// OutputConfig configures where and how reports are written.
type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // png, svg or pdf

	// Chart size in centimetres.
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	DPI    int     `yaml:"dpi"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the default configuration: the standard
// measurement files in the current directory, with "seq" as the
// baseline.
func DefaultConfig() *Config {
	return &Config{
		Inputs:       append([]benchcsv.Input(nil), benchcsv.DefaultInputs...),
		AllowMissing: true,
		Baseline:     "seq",
		Reference:    "ref_seq",
		Samples:      []string{"graf_20_7.txt", "graf_30_10.txt", "graf_40_15.txt"},
		Output: OutputConfig{
			Dir:    ".",
			Format: "png",
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load loads configuration from a YAML file over the defaults. A
// missing file at DefaultPath is not an error; any other missing file
// is.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && filepath.Clean(path) == DefaultPath {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that c is usable.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case "png", "svg", "pdf":
	default:
		return fmt.Errorf("unknown chart format %q", c.Output.Format)
	}
	if c.Baseline == "" {
		return fmt.Errorf("no baseline implementation")
	}
	seen := make(map[string]bool)
	for _, in := range c.Inputs {
		if in.Impl == "" || in.Path == "" {
			return fmt.Errorf("input %+v needs both impl and path", in)
		}
		if seen[in.Impl] {
			return fmt.Errorf("duplicate input label %q", in.Impl)
		}
		seen[in.Impl] = true
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	return nil
}

// Save writes c to path as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}
