// Copyright 2026 The benchagg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package costagg reduces the cost files of an experiment to one
// distribution of per-version scalars per strategy group, and compares
// group medians against the baseline.
package costagg

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/divsynth/benchagg/expwalk"
	"github.com/divsynth/benchagg/metricfmt"
	"github.com/divsynth/benchagg/metricstat"
	"github.com/divsynth/benchagg/stratname"
)

// VersionError locates a version whose metric file could not be
// aggregated.
type VersionError struct {
	Path     string
	Strategy string
	Rate     string
	Version  string
	Err      error
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("strategy %s rate %s version %s: %v", e.Strategy, e.Rate, e.Version, e.Err)
}

func (e *VersionError) Unwrap() error {
	return e.Err
}

// A Summary holds the aggregated cost files of one Kind across an
// experiment.
type Summary struct {
	Kind metricstat.Kind

	// Groups is one entry per strategy group with at least one
	// aggregated version, in sorted group order.
	Groups []*GroupSummary

	// Baseline is the aggregated baseline scalar, or nil if the
	// experiment has no usable baseline.
	Baseline *float64

	// Failures records every version (and the baseline) whose
	// file was present but could not be aggregated.
	Failures []error

	// Missing counts versions skipped because the file was absent.
	Missing int
}

// A GroupSummary is the distribution of one strategy group.
type GroupSummary struct {
	Name stratname.Name

	// Versions and Values are parallel: Values[i] is the scalar
	// aggregated from Versions[i]'s file.
	Versions []string
	Values   []float64

	Dist *metricstat.Distribution
}

// Collect aggregates the files of kind k for every version of exp.
// Versions without the file are skipped; versions whose file is
// malformed are recorded in Summary.Failures. Neither stops the
// remaining groups from being processed.
func Collect(exp *expwalk.Experiment, k metricstat.Kind, logger *slog.Logger) *Summary {
	if logger == nil {
		logger = slog.Default()
	}
	agg := k.Aggregator()
	sum := &Summary{Kind: k}

	for _, g := range exp.Groups {
		gs := &GroupSummary{Name: g.Name}
		for _, v := range g.Versions {
			val, err := aggregate(v.File(k.File()), agg)
			if err != nil {
				var mfe *metricfmt.MissingFileError
				if errors.As(err, &mfe) {
					logger.Debug("skipping version without metric file", slog.String("path", mfe.Path))
					sum.Missing++
					continue
				}
				verr := &VersionError{
					Path:     v.File(k.File()),
					Strategy: g.Name.Strategy,
					Rate:     g.Name.Rate,
					Version:  v.Name,
					Err:      err,
				}
				logger.Error("cannot aggregate version", slog.String("path", verr.Path), slog.Any("err", err))
				sum.Failures = append(sum.Failures, verr)
				continue
			}
			gs.Versions = append(gs.Versions, v.Name)
			gs.Values = append(gs.Values, val)
		}
		if len(gs.Values) == 0 {
			continue
		}
		// Values is non-empty, so this cannot fail.
		gs.Dist, _ = metricstat.NewDistribution(gs.Values)
		sum.Groups = append(sum.Groups, gs)
	}

	if exp.Baseline != nil {
		path := exp.Baseline.File(k.File())
		val, err := aggregate(path, agg)
		switch {
		case err == nil:
			sum.Baseline = &val
		case errors.As(err, new(*metricfmt.MissingFileError)):
			logger.Warn("baseline has no metric file", slog.String("path", path))
		default:
			logger.Error("cannot aggregate baseline", slog.String("path", path), slog.Any("err", err))
			sum.Failures = append(sum.Failures, &VersionError{
				Path:     path,
				Strategy: exp.Baseline.Name,
				Version:  exp.Baseline.Name,
				Err:      err,
			})
		}
	}
	return sum
}

func aggregate(path string, agg metricstat.Aggregator) (float64, error) {
	rec, err := metricfmt.ReadCostFile(path)
	if err != nil {
		return 0, err
	}
	return agg.Apply(rec)
}

// Overhead returns the overhead of g's median over the baseline in
// parts per thousand. It returns metricstat.ErrZeroBaseline if s has
// no baseline or the baseline is zero.
func (s *Summary) Overhead(g *GroupSummary) (float64, error) {
	if s.Baseline == nil {
		return 0, metricstat.ErrZeroBaseline
	}
	return metricstat.OverheadPerThousand(g.Dist.Center, *s.Baseline)
}

// An OverheadRow is one row of the overhead table.
type OverheadRow struct {
	SamplingRate string
	MedianCost   int64
	Difference   int64
	// Overhead is the overhead per thousand, formatted with six
	// decimal places.
	Overhead string
}

// OverheadRows returns one row per group whose display strategy name
// contains tag, in sorted group order. Medians and differences are
// truncated toward zero. Without a usable baseline it returns
// metricstat.ErrZeroBaseline and no rows.
func (s *Summary) OverheadRows(names stratname.Table, tag string) ([]OverheadRow, error) {
	if s.Baseline == nil || *s.Baseline == 0 {
		return nil, metricstat.ErrZeroBaseline
	}
	base := *s.Baseline
	var rows []OverheadRow
	for _, g := range s.Groups {
		if !strings.Contains(names.Display(g.Name.Strategy), tag) {
			continue
		}
		ov, err := metricstat.OverheadPerThousand(g.Dist.Center, base)
		if err != nil {
			return nil, err
		}
		med := int64(g.Dist.Center)
		rows = append(rows, OverheadRow{
			SamplingRate: g.Name.Rate,
			MedianCost:   med,
			Difference:   med - int64(base),
			Overhead:     fmt.Sprintf("%.6f", ov),
		})
	}
	return rows, nil
}
