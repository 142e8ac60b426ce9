// Copyright 2026 The benchagg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package metricstat

import (
	"github.com/aclements/go-moremath/stats"
	"gonum.org/v1/gonum/stat"
)

// A Distribution summarizes the per-version scalars of one strategy
// group.
type Distribution struct {
	// Values is the sorted sample.
	Values []float64

	// Center is the median of Values.
	Center float64

	Mean, StdDev float64
	Min, Max     float64
}

// NewDistribution summarizes values. It does not modify values. It
// returns ErrEmptyAggregate if values is empty.
func NewDistribution(values []float64) (*Distribution, error) {
	if len(values) == 0 {
		return nil, ErrEmptyAggregate
	}
	samp := stats.Sample{Xs: values}
	// Speed up order statistics.
	sorted := samp.Copy().Sort()
	lo, hi := sorted.Bounds()
	mean, std := stat.MeanStdDev(sorted.Xs, nil)
	if len(sorted.Xs) == 1 {
		// MeanStdDev's unbiased estimate is NaN for one value.
		std = 0
	}
	return &Distribution{
		Values: sorted.Xs,
		Center: median(sorted.Xs),
		Mean:   mean,
		StdDev: std,
		Min:    lo,
		Max:    hi,
	}, nil
}
