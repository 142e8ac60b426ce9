// Copyright 2026 The benchagg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stratname

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	for _, test := range []struct {
		dir                  string
		base, strategy, rate string
		bad                  bool
	}{
		{dir: "program.sched.100", base: "program", strategy: "sched", rate: "100"},
		{dir: "program.diff.1", base: "program", strategy: "diff", rate: "1"},
		{dir: "program.registers.10.extra", base: "program", strategy: "registers", rate: "10"},
		{dir: "noSeparators", bad: true},
		{dir: "program.sched", bad: true},
		{dir: "program..1", bad: true},
		{dir: "program.sched.", bad: true},
		{dir: "..x", bad: true},
		{dir: ".sched.1", bad: true},
	} {
		t.Run(test.dir, func(t *testing.T) {
			n, err := Parse(test.dir)
			if test.bad {
				var mne *MalformedNameError
				require.True(t, errors.As(err, &mne), "want MalformedNameError, got %v", err)
				assert.Equal(t, test.dir, mne.Name)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.dir, n.Dir)
			assert.Equal(t, test.base, n.Base)
			assert.Equal(t, test.strategy, n.Strategy)
			assert.Equal(t, test.rate, n.Rate)
		})
	}
}

func TestDisplay(t *testing.T) {
	n, err := Parse("program.sched.100")
	require.NoError(t, err)
	assert.Equal(t, "schedule", DefaultTable.Display(n.Strategy))
	assert.Equal(t, "100", n.Rate)
	assert.Equal(t, ".schedule.100", n.Suffix(DefaultTable))

	assert.Equal(t, "enumerate", DefaultTable.Display("diff"))
	assert.Equal(t, "registers", DefaultTable.Display("registers"))

	custom := DefaultTable.With(map[string]string{"registers": "regalloc", "diff": "enum"})
	assert.Equal(t, "regalloc", custom.Display("registers"))
	assert.Equal(t, "enum", custom.Display("diff"))
	// The default table is not modified.
	assert.Equal(t, "enumerate", DefaultTable.Display("diff"))

	var zero Table
	assert.Equal(t, "sched", zero.Display("sched"))
}

func TestRateInt(t *testing.T) {
	n, _ := Parse("program.sched.1000")
	r, err := n.RateInt()
	require.NoError(t, err)
	assert.Equal(t, 1000, r)

	for _, dir := range []string{"program.sched.x", "program.sched.0", "program.sched.-3"} {
		n, _ := Parse(dir)
		_, err := n.RateInt()
		assert.Error(t, err, dir)
	}
}

func TestSplitTimingKey(t *testing.T) {
	f, s, err := SplitTimingKey("main--sched")
	require.NoError(t, err)
	assert.Equal(t, "main", f)
	assert.Equal(t, "sched", s)

	f, s, err = SplitTimingKey("main--sched--extra")
	require.NoError(t, err)
	assert.Equal(t, "main", f)
	assert.Equal(t, "sched", s)

	for _, key := range []string{"main", "--sched", "main--", "", "main----sched"} {
		_, _, err := SplitTimingKey(key)
		var mne *MalformedNameError
		assert.True(t, errors.As(err, &mne), "key %q", key)
	}
}
