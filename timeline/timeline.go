// Copyright 2026 The benchagg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package timeline reconstructs, per strategy, when each solution was
// emitted from a function generation timing log.
package timeline

import (
	"fmt"
	"sort"

	"github.com/divsynth/benchagg/metricfmt"
	"github.com/divsynth/benchagg/stratname"
)

// A Series is the cumulative solution timeline of one strategy.
//
// Elapsed[i] is the time in milliseconds at which solution i was
// emitted. Elapsed[0] is always a synthetic 0, and Elapsed is
// non-decreasing.
type Series struct {
	Strategy string // internal strategy code
	Display  string // display name of Strategy

	Elapsed []int64

	// Markers[j] is the index in Elapsed of the last solution of
	// Functions[j].
	Markers   []int
	Functions []string
}

// Solutions returns the number of emitted solutions, not counting the
// synthetic origin.
func (s *Series) Solutions() int {
	return len(s.Elapsed) - 1
}

// Total returns the elapsed time of the last solution.
func (s *Series) Total() int64 {
	return s.Elapsed[len(s.Elapsed)-1]
}

// SampleError reports a negative timing sample.
type SampleError struct {
	Key    string
	Run    int
	Sample int
	Value  int64
}

func (e *SampleError) Error() string {
	return fmt.Sprintf("timing log %q run %d sample %d: negative duration %d", e.Key, e.Run, e.Sample, e.Value)
}

// Build returns one Series per strategy in log, sorted by strategy
// code. Within a strategy, functions are visited in sorted key order;
// every sample of every run is appended as the previous elapsed time
// plus the sample.
func Build(log metricfmt.TimingLog, names stratname.Table) ([]*Series, error) {
	byStrat := make(map[string]*Series)
	for _, key := range log.Keys() {
		fn, strat, err := stratname.SplitTimingKey(key)
		if err != nil {
			return nil, err
		}
		s := byStrat[strat]
		if s == nil {
			s = &Series{Strategy: strat, Display: names.Display(strat), Elapsed: []int64{0}}
			byStrat[strat] = s
		}
		last := s.Elapsed[len(s.Elapsed)-1]
		for ri, run := range log[key] {
			for si, sample := range run {
				if sample < 0 {
					return nil, &SampleError{key, ri, si, sample}
				}
				last += sample
				s.Elapsed = append(s.Elapsed, last)
			}
		}
		s.Markers = append(s.Markers, len(s.Elapsed)-1)
		s.Functions = append(s.Functions, fn)
	}

	out := make([]*Series, 0, len(byStrat))
	for _, s := range byStrat {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Strategy < out[j].Strategy })
	return out, nil
}

// FormatElapsed formats a duration in milliseconds as whole hours and
// minutes, "1h5m", or just minutes when under an hour, "42m".
func FormatElapsed(millis int64) string {
	minutes := millis / 1000 / 60
	hours := minutes / 60
	if hours >= 1 {
		return fmt.Sprintf("%dh%dm", hours, minutes%60)
	}
	return fmt.Sprintf("%dm", minutes)
}
