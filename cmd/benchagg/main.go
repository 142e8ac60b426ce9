// Copyright 2026 The benchagg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command benchagg aggregates the output of a program synthesis
// benchmark run into tables and charts.
//
// Usage:
//
//	benchagg <rootDir> <outputDir>
//
// rootDir holds one directory per strategy group, named
// "<program>.<strategy>.<rate>", each holding one directory per
// program version, plus the baseline directory ("llvm" by default)
// and an optional function generation timing log. For each cost kind
// (cost, cost_speed, cost_size), benchagg writes to outputDir:
//
//	<kind>.png           - box plot of the per-group distributions
//	overhead_<kind>.tex  - LaTeX table of medians against the baseline
//	results_<kind>.txt   - per-version results in Go benchmark format
//
// It also writes gadgets_<group>.png for every group with gadget data,
// and generator_time.png and generator_time.csv when the timing log
// exists. A summary table of every kind, and of the gadgets of every
// group, is printed to stdout.
//
// Settings are read from an optional benchagg.yaml in rootDir and from
// BENCHAGG_* environment variables. See package internal/config.
//
// Problems with individual versions or groups are logged and skipped.
// benchagg exits with status 1 only if rootDir cannot be read or
// outputDir cannot be written.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/divsynth/benchagg/costagg"
	"github.com/divsynth/benchagg/expwalk"
	"github.com/divsynth/benchagg/gadgetstat"
	"github.com/divsynth/benchagg/internal/config"
	"github.com/divsynth/benchagg/metricfmt"
	"github.com/divsynth/benchagg/metricstat"
	"github.com/divsynth/benchagg/render"
	"github.com/divsynth/benchagg/report"
	"github.com/divsynth/benchagg/timeline"
)

// timelineName is the base name of the timing outputs.
const timelineName = "generator_time"

var rootCmd = &cobra.Command{
	Use:          "benchagg <rootDir> <outputDir>",
	Short:        "Aggregate synthesis benchmark results into tables and charts",
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(args[0])
		if err != nil {
			return err
		}
		level, _ := cfg.Level()
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)

		a := &aggregator{cfg: cfg, out: args[1], stdout: cmd.OutOrStdout(), logger: logger}
		return a.run(args[0])
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type aggregator struct {
	cfg    config.Config
	out    string
	stdout io.Writer
	logger *slog.Logger
}

func (a *aggregator) run(root string) error {
	exp, err := expwalk.Scan(root, expwalk.Options{
		Baseline:    a.cfg.Baseline,
		Parallelism: a.cfg.Parallelism,
		Logger:      a.logger,
	})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(a.out, 0o755); err != nil {
		return err
	}
	if exp.Baseline == nil {
		a.logger.Warn("no baseline directory", slog.String("name", a.cfg.Baseline))
	}

	failures := 0
	for _, k := range metricstat.Kinds {
		sum := costagg.Collect(exp, k, a.logger)
		failures += len(sum.Failures)
		if err := a.writeKind(sum); err != nil {
			return err
		}
	}
	if err := a.writeGadgets(exp); err != nil {
		return err
	}
	if err := a.writeTimeline(filepath.Join(root, a.cfg.TimingLog)); err != nil {
		return err
	}

	if failures > 0 || len(exp.Skipped) > 0 {
		a.logger.Warn("some inputs were skipped",
			slog.Int("failed_versions", failures),
			slog.Int("skipped_dirs", len(exp.Skipped)))
	}
	return nil
}

func (a *aggregator) writeKind(sum *costagg.Summary) error {
	names := a.cfg.Names()
	kind := sum.Kind.File()

	if err := report.WriteSummary(a.stdout, sum, names); err != nil {
		return err
	}
	fmt.Fprintln(a.stdout)

	err := a.create("results_"+kind+".txt", func(w io.Writer) error {
		return report.WriteBenchfmt(w, sum, names)
	})
	if err != nil {
		return err
	}

	rows, err := sum.OverheadRows(names, a.cfg.TableTag)
	switch {
	case errors.Is(err, metricstat.ErrZeroBaseline):
		a.logger.Warn("no overhead table without a baseline", slog.String("kind", kind))
	case err != nil:
		return err
	default:
		err := a.create("overhead_"+kind+".tex", func(w io.Writer) error {
			return report.WriteOverheadTable(w, rows)
		})
		if err != nil {
			return err
		}
	}

	return a.chart(render.CostBoxPlot(sum, names, a.cfg.ChartPath(a.out, kind)), kind)
}

func (a *aggregator) writeGadgets(exp *expwalk.Experiment) error {
	groups := exp.Groups
	if len(a.cfg.GadgetGroups) > 0 {
		groups = nil
		for _, dir := range a.cfg.GadgetGroups {
			g := exp.Group(dir)
			if g == nil {
				a.logger.Warn("configured gadget group not found", slog.String("group", dir))
				continue
			}
			groups = append(groups, g)
		}
	}

	var summaries []gadgetstat.Summary
	for _, g := range groups {
		dir := g.Name.Dir
		raw := gadgetstat.CollectRaw(g, a.logger)
		if len(raw) > 0 {
			summaries = append(summaries, gadgetstat.Summarize(dir, raw))
		}
		ratios := gadgetstat.OccurrenceRatios(raw)
		if len(ratios) == 0 {
			ratios = gadgetstat.SortedPercentages(gadgetstat.CollectPercentages(g, a.logger))
		}
		name := "gadgets_" + dir
		if err := a.chart(render.GadgetBars(dir, ratios, a.cfg.ChartPath(a.out, name)), name); err != nil {
			a.logger.Error("cannot render gadget chart", slog.String("group", dir), slog.Any("err", err))
		}
	}

	if len(summaries) == 0 {
		return nil
	}
	if err := report.WriteGadgetSummary(a.stdout, summaries); err != nil {
		return err
	}
	fmt.Fprintln(a.stdout)
	return nil
}

func (a *aggregator) writeTimeline(path string) error {
	tlog, err := metricfmt.ReadTimingLog(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			a.logger.Info("no timing log", slog.String("path", path))
		} else {
			a.logger.Error("cannot read timing log", slog.Any("err", err))
		}
		return nil
	}
	series, err := timeline.Build(tlog, a.cfg.Names())
	if err != nil {
		a.logger.Error("cannot build timeline", slog.String("path", path), slog.Any("err", err))
		return nil
	}
	for _, s := range series {
		a.logger.Info("timeline",
			slog.String("strategy", s.Display),
			slog.Int("solutions", s.Solutions()),
			slog.String("elapsed", timeline.FormatElapsed(s.Total())))
	}

	err = a.create(timelineName+".csv", func(w io.Writer) error {
		return report.WriteTimelines(w, series)
	})
	if err != nil {
		return err
	}
	return a.chart(render.Timeline(series, a.cfg.ChartPath(a.out, timelineName)), timelineName)
}

// chart reports the result of rendering the chart name. Empty charts
// are not an error.
func (a *aggregator) chart(err error, name string) error {
	if errors.Is(err, render.ErrNoData) {
		a.logger.Debug("nothing to plot", slog.String("chart", name))
		return nil
	}
	return err
}

// create writes the output file name using write.
func (a *aggregator) create(name string, write func(io.Writer) error) (err error) {
	f, err := os.Create(filepath.Join(a.out, name))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}
