// Copyright 2026 The benchagg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gadgetstat measures how often gadgets recur across the
// versions of a program.
//
// OccurrenceRatios works from the raw gadget lists of each version;
// SortedPercentages works from occurrence percentages computed
// upstream. The two do not measure the same thing and their results
// are not interchangeable.
package gadgetstat

import (
	"errors"
	"log/slog"
	"math"
	"sort"

	"github.com/divsynth/benchagg/expwalk"
	"github.com/divsynth/benchagg/metricfmt"
)

// OccurrenceRatios flattens the gadget lists of all versions into one
// multiset and returns, for every element of the flattened sequence,
// the number of times its gadget occurs divided by the total length.
// Duplicates are not merged, so a gadget occurring k times
// contributes k equal ratios. The result is sorted in descending
// order.
func OccurrenceRatios(versions [][]metricfmt.Gadget) []float64 {
	counts := make(map[metricfmt.Gadget]int)
	total := 0
	for _, gs := range versions {
		for _, g := range gs {
			counts[g]++
		}
		total += len(gs)
	}
	ratios := make([]float64, 0, total)
	for _, gs := range versions {
		for _, g := range gs {
			ratios = append(ratios, float64(counts[g])/float64(total))
		}
	}
	sortDescending(ratios)
	return ratios
}

// SortedPercentages returns a copy of precomputed occurrence
// percentages sorted in descending order.
func SortedPercentages(values []float64) []float64 {
	out := append([]float64(nil), values...)
	sortDescending(out)
	return out
}

func sortDescending(xs []float64) {
	sort.Sort(sort.Reverse(sort.Float64Slice(xs)))
}

// SharedRatio returns the number of (a, b) pairs of equal gadgets
// divided by len(a). It is 0 if a is empty.
func SharedRatio(a, b []metricfmt.Gadget) float64 {
	if len(a) == 0 {
		return 0
	}
	inB := make(map[metricfmt.Gadget]int, len(b))
	for _, g := range b {
		inB[g]++
	}
	shared := 0
	for _, g := range a {
		shared += inB[g]
	}
	return float64(shared) / float64(len(a))
}

// A Summary describes the raw gadget lists of one strategy group.
type Summary struct {
	Group    string
	Versions int // versions with a gadgets file
	Gadgets  int // gadgets over all versions
	Distinct int // distinct gadgets over all versions

	// Shared is the mean SharedRatio of the first version against
	// each other version. It is NaN with fewer than two versions.
	Shared float64
}

// Summarize summarizes the gadget lists of the group named group.
func Summarize(group string, versions [][]metricfmt.Gadget) Summary {
	s := Summary{Group: group, Versions: len(versions), Shared: math.NaN()}
	seen := make(map[metricfmt.Gadget]bool)
	for _, gs := range versions {
		s.Gadgets += len(gs)
		for _, g := range gs {
			seen[g] = true
		}
	}
	s.Distinct = len(seen)
	if len(versions) >= 2 {
		total := 0.0
		for _, other := range versions[1:] {
			total += SharedRatio(versions[0], other)
		}
		s.Shared = total / float64(len(versions)-1)
	}
	return s
}

// CollectRaw reads the gadgets file of every version of g. Versions
// whose file is missing or unreadable are logged and skipped.
func CollectRaw(g *expwalk.Group, logger *slog.Logger) [][]metricfmt.Gadget {
	if logger == nil {
		logger = slog.Default()
	}
	var out [][]metricfmt.Gadget
	for _, v := range g.Versions {
		gs, err := metricfmt.ReadGadgets(v.File(metricfmt.GadgetsFile))
		if err != nil {
			logSkip(logger, v, err)
			continue
		}
		out = append(out, gs)
	}
	return out
}

// CollectPercentages reads and concatenates the gadget occurrence
// file of every version of g. Versions whose file is missing or
// unreadable are logged and skipped.
func CollectPercentages(g *expwalk.Group, logger *slog.Logger) []float64 {
	if logger == nil {
		logger = slog.Default()
	}
	var out []float64
	for _, v := range g.Versions {
		ps, err := metricfmt.ReadPercentages(v.File(metricfmt.OccurrencesFile))
		if err != nil {
			logSkip(logger, v, err)
			continue
		}
		out = append(out, ps...)
	}
	return out
}

func logSkip(logger *slog.Logger, v expwalk.Version, err error) {
	var mfe *metricfmt.MissingFileError
	if errors.As(err, &mfe) {
		logger.Debug("skipping version without gadget file", slog.String("path", mfe.Path))
		return
	}
	logger.Warn("skipping unreadable gadget file", slog.String("version", v.Dir), slog.Any("err", err))
}
