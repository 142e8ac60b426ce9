// Copyright 2026 The benchagg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metricstat computes the summary statistics used to compare
// synthesis strategies: sums and geometric means of cost files,
// medians of per-version distributions, and overhead relative to a
// baseline.
package metricstat

import (
	"errors"
	"fmt"

	"github.com/aclements/go-moremath/stats"
)

var (
	// ErrEmptyAggregate is returned when an aggregate that is
	// undefined for zero terms is applied to an empty input.
	ErrEmptyAggregate = errors.New("aggregate of empty input")

	// ErrZeroBaseline is returned when a relative overhead is
	// requested against a zero or missing baseline.
	ErrZeroBaseline = errors.New("baseline is zero or missing")
)

// GeoMeanInputError reports input for which the geometric mean is
// undefined: no values, or a value that is not strictly positive.
type GeoMeanInputError struct {
	// Index is the position of the first offending value, or -1
	// if the input was empty.
	Index int
	Value float64
}

func (e *GeoMeanInputError) Error() string {
	if e.Index < 0 {
		return "geometric mean of no values"
	}
	return fmt.Sprintf("geometric mean requires positive values, value %d is %v", e.Index, e.Value)
}

// Is reports an empty-input GeoMeanInputError as ErrEmptyAggregate.
func (e *GeoMeanInputError) Is(target error) bool {
	return target == ErrEmptyAggregate && e.Index < 0
}

// Sum returns the arithmetic sum of values. The sum of no values is 0.
func Sum(values []int64) int64 {
	var s int64
	for _, v := range values {
		s += v
	}
	return s
}

// GeoMean returns the geometric mean of values. It is computed in log
// space, so large products do not overflow.
func GeoMean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, &GeoMeanInputError{Index: -1}
	}
	for i, v := range values {
		if !(v > 0) {
			return 0, &GeoMeanInputError{Index: i, Value: v}
		}
	}
	return stats.GeoMean(values), nil
}

// Median returns the median of values. For an even number of values
// it is the mean of the two central order statistics.
func Median(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptyAggregate
	}
	samp := stats.Sample{Xs: values}
	return median(samp.Copy().Sort().Xs), nil
}

// median returns the median of the sorted, non-empty xs.
func median(xs []float64) float64 {
	n := len(xs)
	if n%2 == 1 {
		return xs[n/2]
	}
	return (xs[n/2-1] + xs[n/2]) / 2
}

// OverheadPerThousand returns how much observed exceeds baseline, in
// parts per thousand of baseline.
func OverheadPerThousand(observed, baseline float64) (float64, error) {
	if baseline == 0 {
		return 0, ErrZeroBaseline
	}
	return (observed/baseline - 1) * 1000, nil
}
