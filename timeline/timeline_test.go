// Copyright 2026 The benchagg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package timeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/divsynth/benchagg/metricfmt"
	"github.com/divsynth/benchagg/stratname"
)

func TestBuild(t *testing.T) {
	log := metricfmt.TimingLog{
		"f2--s": {{5}},
		"f1--s": {{10, 20}},
	}
	series, err := Build(log, stratname.DefaultTable)
	require.NoError(t, err)
	require.Len(t, series, 1)
	s := series[0]
	assert.Equal(t, "s", s.Strategy)
	assert.Equal(t, []int64{0, 10, 30, 35}, s.Elapsed)
	assert.Equal(t, []int{2, 3}, s.Markers)
	assert.Equal(t, []string{"f1", "f2"}, s.Functions)
	assert.Equal(t, 3, s.Solutions())
	assert.Equal(t, int64(35), s.Total())
}

func TestBuildStrategies(t *testing.T) {
	log := metricfmt.TimingLog{
		"main--sched": {{1, 2}, {3}},
		"main--diff":  {{100}},
		"aux--sched":  {{}},
		"aux--diff":   {{7}, {8}},
	}
	series, err := Build(log, stratname.DefaultTable)
	require.NoError(t, err)
	require.Len(t, series, 2)

	diff, sched := series[0], series[1]
	assert.Equal(t, "diff", diff.Strategy)
	assert.Equal(t, "enumerate", diff.Display)
	assert.Equal(t, []int64{0, 7, 15, 115}, diff.Elapsed)
	assert.Equal(t, []int{2, 3}, diff.Markers)
	assert.Equal(t, []string{"aux", "main"}, diff.Functions)

	assert.Equal(t, "schedule", sched.Display)
	// aux has no samples, so its marker sits on the origin.
	assert.Equal(t, []int64{0, 1, 3, 6}, sched.Elapsed)
	assert.Equal(t, []int{0, 3}, sched.Markers)

	// The same log always produces the same series.
	again, err := Build(log, stratname.DefaultTable)
	require.NoError(t, err)
	assert.Equal(t, series, again)
}

func TestBuildErrors(t *testing.T) {
	_, err := Build(metricfmt.TimingLog{"nokey": {{1}}}, stratname.DefaultTable)
	var mne *stratname.MalformedNameError
	assert.True(t, errors.As(err, &mne))

	_, err = Build(metricfmt.TimingLog{"f--s": {{1, -2}}}, stratname.DefaultTable)
	var se *SampleError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 1, se.Sample)

	series, err := Build(metricfmt.TimingLog{}, stratname.DefaultTable)
	require.NoError(t, err)
	assert.Empty(t, series)
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "1h5m", FormatElapsed(3_900_000))
	assert.Equal(t, "10m", FormatElapsed(600_000))
	assert.Equal(t, "0m", FormatElapsed(59_999))
	assert.Equal(t, "2h0m", FormatElapsed(7_200_000))
}
