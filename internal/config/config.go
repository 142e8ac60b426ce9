// Copyright 2026 The benchagg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the settings of a benchagg run.
//
// Settings come from, in increasing precedence: built-in defaults, an
// optional benchagg.yaml in the experiment root, and BENCHAGG_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/divsynth/benchagg/expwalk"
	"github.com/divsynth/benchagg/metricfmt"
	"github.com/divsynth/benchagg/stratname"
)

// FileName is the name of the optional configuration file in an
// experiment root.
const FileName = "benchagg.yaml"

// Config holds the settings of a run.
type Config struct {
	// Baseline is the name of the baseline directory.
	Baseline string `yaml:"baseline"`

	// DisplayNames adds to or overrides the strategy display names.
	DisplayNames map[string]string `yaml:"display_names"`

	// TableTag selects the overhead table rows: only groups whose
	// strategy display name contains it are listed.
	TableTag string `yaml:"table_tag"`

	// TimingLog is the file name of the timing log in the root.
	TimingLog string `yaml:"timing_log"`

	// GadgetGroups restricts gadget charts to these group directory
	// names, such as "program.sched.10". Empty means every group.
	GadgetGroups []string `yaml:"gadget_groups"`

	// Parallelism bounds how many groups are listed at once.
	Parallelism int `yaml:"parallelism"`

	// ChartFormat is the file extension of rendered charts.
	ChartFormat string `yaml:"chart_format"`

	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Baseline:    expwalk.DefaultBaseline,
		TableTag:    "schedule",
		TimingLog:   metricfmt.TimingLogFile,
		Parallelism: 1,
		ChartFormat: "png",
		LogLevel:    "info",
	}
}

// Load returns the configuration for the experiment in rootDir.
// A missing configuration file is not an error.
func Load(rootDir string) (Config, error) {
	cfg := Default()

	if err := loadFile(filepath.Join(rootDir, FileName), &cfg); err != nil {
		return cfg, fmt.Errorf("load config file: %w", err)
	}
	if err := loadEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func loadEnv(cfg *Config) error {
	if v := os.Getenv("BENCHAGG_BASELINE"); v != "" {
		cfg.Baseline = v
	}
	if v := os.Getenv("BENCHAGG_PARALLELISM"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("BENCHAGG_PARALLELISM: %w", err)
		}
		cfg.Parallelism = n
	}
	if v := os.Getenv("BENCHAGG_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	return nil
}

var chartFormats = map[string]bool{
	"png": true, "svg": true, "pdf": true, "eps": true,
	"jpg": true, "jpeg": true, "tif": true, "tiff": true,
}

// Validate reports the first invalid setting of c.
func (c Config) Validate() error {
	if c.Baseline == "" || strings.ContainsRune(c.Baseline, filepath.Separator) {
		return fmt.Errorf("baseline must be a directory name, got %q", c.Baseline)
	}
	if c.TimingLog == "" {
		return fmt.Errorf("timing_log must not be empty")
	}
	if c.Parallelism < 1 {
		return fmt.Errorf("parallelism must be >= 1")
	}
	if !chartFormats[strings.ToLower(c.ChartFormat)] {
		return fmt.Errorf("unsupported chart_format %q", c.ChartFormat)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	for code, display := range c.DisplayNames {
		if code == "" || display == "" {
			return fmt.Errorf("display_names: empty entry %q: %q", code, display)
		}
	}
	return nil
}

// Level returns the parsed log level.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}

// Names returns the strategy display-name table.
func (c Config) Names() stratname.Table {
	return stratname.DefaultTable.With(c.DisplayNames)
}

// ChartPath returns the path of the chart named base in dir.
func (c Config) ChartPath(dir, base string) string {
	return filepath.Join(dir, base+"."+strings.ToLower(c.ChartFormat))
}
