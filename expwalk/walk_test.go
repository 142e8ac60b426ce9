// Copyright 2026 The benchagg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expwalk

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/divsynth/benchagg/stratname"
)

// mkTree creates the directories and files in paths under root. Names
// ending in "/" are directories, everything else is an empty file.
func mkTree(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		if p[len(p)-1] == '/' {
			require.NoError(t, os.MkdirAll(full, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, nil, 0o644))
	}
}

func groupNames(exp *Experiment) []string {
	var names []string
	for _, g := range exp.Groups {
		names = append(names, g.Name.Dir)
	}
	return names
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	mkTree(t, root,
		"program.sched.100/v2/",
		"program.sched.100/v1/",
		"program.sched.100/notes.txt",
		"program.diff.1/v1/",
		"program.sched.10/",
		"llvm/cost",
		"noSeparators/v1/",
		"function_generation_times",
	)

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	for _, par := range []int{0, 1, 4} {
		exp, err := Scan(root, Options{Parallelism: par, Logger: logger})
		require.NoError(t, err)

		assert.Equal(t, []string{"program.diff.1", "program.sched.10", "program.sched.100"}, groupNames(exp))
		require.NotNil(t, exp.Baseline)
		assert.Equal(t, filepath.Join(root, "llvm"), exp.Baseline.Dir)

		g := exp.Group("program.sched.100")
		require.NotNil(t, g)
		assert.Equal(t, "sched", g.Name.Strategy)
		require.Len(t, g.Versions, 2)
		assert.Equal(t, "v1", g.Versions[0].Name)
		assert.Equal(t, "v2", g.Versions[1].Name)
		assert.Equal(t, filepath.Join(root, "program.sched.100", "v1", "cost"), g.Versions[0].File("cost"))

		assert.Empty(t, exp.Group("program.sched.10").Versions)
		assert.Nil(t, exp.Group("program.sched.1000"))

		require.Len(t, exp.Skipped, 1)
		var mne *stratname.MalformedNameError
		assert.True(t, errors.As(exp.Skipped[0], &mne))
	}
	assert.Contains(t, logs.String(), "noSeparators")
}

func TestScanMalformedNames(t *testing.T) {
	root := t.TempDir()
	mkTree(t, root,
		"program.sched.10/v1/",
		"program..1/v1/",
		"program.sched./v1/",
		"program.sched.abc/v1/",
		"program.sched.0/v1/",
		"..x/v1/",
	)

	var logs bytes.Buffer
	exp, err := Scan(root, Options{Logger: slog.New(slog.NewTextHandler(&logs, nil))})
	require.NoError(t, err)
	assert.Equal(t, []string{"program.sched.10"}, groupNames(exp))

	require.Len(t, exp.Skipped, 5)
	for _, err := range exp.Skipped {
		var mne *stratname.MalformedNameError
		assert.True(t, errors.As(err, &mne), "got %v", err)
	}
	assert.Contains(t, logs.String(), "program.sched.abc")
}

func TestScanNoBaseline(t *testing.T) {
	root := t.TempDir()
	mkTree(t, root, "program.sched.1/v1/")

	exp, err := Scan(root, Options{})
	require.NoError(t, err)
	assert.Nil(t, exp.Baseline)
	assert.Len(t, exp.Groups, 1)
}

func TestScanCustomBaseline(t *testing.T) {
	root := t.TempDir()
	mkTree(t, root, "gcc/", "llvm/", "program.sched.1/v1/")

	exp, err := Scan(root, Options{Baseline: "gcc"})
	require.NoError(t, err)
	require.NotNil(t, exp.Baseline)
	assert.Equal(t, "gcc", exp.Baseline.Name)
	// "llvm" is now an ordinary, malformed group name.
	assert.Len(t, exp.Skipped, 1)
}

func TestScanMissingRoot(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "nope"), Options{})
	assert.Error(t, err)
}
