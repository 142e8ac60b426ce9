// Copyright 2026 The benchagg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package metricstat

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/divsynth/benchagg/metricfmt"
)

func TestSum(t *testing.T) {
	assert.Equal(t, int64(8), Sum([]int64{3, 5}))
	assert.Equal(t, int64(0), Sum(nil))
}

func TestGeoMean(t *testing.T) {
	got, err := GeoMean([]float64{4, 9})
	require.NoError(t, err)
	assert.InDelta(t, 6.0, got, 1e-12)

	got, err = GeoMean([]float64{7})
	require.NoError(t, err)
	assert.InDelta(t, 7.0, got, 1e-12)

	// The product of these overflows float64.
	big := make([]float64, 400)
	for i := range big {
		big[i] = 1e300
	}
	got, err = GeoMean(big)
	require.NoError(t, err)
	assert.InEpsilon(t, 1e300, got, 1e-9)

	for _, test := range []struct {
		name   string
		values []float64
		index  int
	}{
		{"empty", nil, -1},
		{"zero", []float64{0, 5}, 0},
		{"negative", []float64{5, -1}, 1},
		{"nan", []float64{5, math.NaN()}, 1},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := GeoMean(test.values)
			var gme *GeoMeanInputError
			require.True(t, errors.As(err, &gme), "got %v", err)
			assert.Equal(t, test.index, gme.Index)
			assert.Equal(t, test.index < 0, errors.Is(err, ErrEmptyAggregate))
		})
	}
}

func TestMedian(t *testing.T) {
	for _, test := range []struct {
		values []float64
		want   float64
	}{
		{[]float64{1, 2, 3, 4}, 2.5},
		{[]float64{1, 2, 3}, 2},
		{[]float64{4, 1, 3, 2}, 2.5},
		{[]float64{9}, 9},
	} {
		got, err := Median(test.values)
		require.NoError(t, err)
		assert.Equal(t, test.want, got, "median(%v)", test.values)
	}

	in := []float64{3, 1, 2}
	_, err := Median(in)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1, 2}, in, "Median must not reorder its input")

	_, err = Median(nil)
	assert.ErrorIs(t, err, ErrEmptyAggregate)
}

func TestOverheadPerThousand(t *testing.T) {
	got, err := OverheadPerThousand(110, 100)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, got, 1e-9)

	got, err = OverheadPerThousand(90, 100)
	require.NoError(t, err)
	assert.InDelta(t, -100.0, got, 1e-9)

	_, err = OverheadPerThousand(5, 0)
	assert.ErrorIs(t, err, ErrZeroBaseline)
}

func TestAggregator(t *testing.T) {
	rec := metricfmt.CostRecord{Labels: []string{"a", "b"}, Values: []int64{4, 9}}

	got, err := AggSum.Apply(rec)
	require.NoError(t, err)
	assert.Equal(t, 13.0, got)

	got, err = AggGeoMean.Apply(rec)
	require.NoError(t, err)
	assert.InDelta(t, 6.0, got, 1e-12)

	got, err = AggSum.Apply(metricfmt.CostRecord{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)

	_, err = AggGeoMean.Apply(metricfmt.CostRecord{})
	assert.ErrorIs(t, err, ErrEmptyAggregate)

	_, err = AggGeoMean.Apply(metricfmt.CostRecord{Values: []int64{0, 5}})
	var gme *GeoMeanInputError
	assert.True(t, errors.As(err, &gme))
}

func TestKind(t *testing.T) {
	assert.Equal(t, "cost", KindCost.File())
	assert.Equal(t, "cost_speed", KindSpeed.File())
	assert.Equal(t, "cost_size", KindSize.File())
	assert.Equal(t, AggSum, KindCost.Aggregator())
	assert.Equal(t, AggGeoMean, KindSpeed.Aggregator())
	assert.Equal(t, AggGeoMean, KindSize.Aggregator())
}

func TestDistribution(t *testing.T) {
	in := []float64{4, 1, 3, 2}
	d, err := NewDistribution(in)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4}, d.Values)
	assert.Equal(t, []float64{4, 1, 3, 2}, in)
	assert.Equal(t, 2.5, d.Center)
	assert.Equal(t, 2.5, d.Mean)
	assert.InDelta(t, math.Sqrt(5.0/3.0), d.StdDev, 1e-12)
	assert.Equal(t, 1.0, d.Min)
	assert.Equal(t, 4.0, d.Max)

	d, err = NewDistribution([]float64{7})
	require.NoError(t, err)
	assert.Equal(t, 0.0, d.StdDev)

	_, err = NewDistribution(nil)
	assert.ErrorIs(t, err, ErrEmptyAggregate)
}
