// Copyright 2026 The benchagg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package expwalk enumerates an experiment root directory.
//
// An experiment root holds one directory per strategy group, named
// "<program>.<strategy>.<rate>", plus at most one baseline directory
// (by default "llvm"). Each strategy group directory holds one
// directory per generated program version. Regular files at either
// level are ignored.
//
// Every listing is returned sorted by name, so results never depend
// on directory enumeration order.
package expwalk

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/divsynth/benchagg/stratname"
)

// DefaultBaseline is the reserved name of the baseline entry.
const DefaultBaseline = "llvm"

// Options configures Scan.
type Options struct {
	// Baseline is the reserved baseline directory name. If
	// empty, DefaultBaseline is used.
	Baseline string

	// Parallelism bounds how many strategy groups are listed
	// concurrently. Values below 2 list groups sequentially.
	Parallelism int

	// Logger receives diagnostics for skipped entries. If nil,
	// slog.Default() is used.
	Logger *slog.Logger
}

// An Experiment is the scanned content of an experiment root.
type Experiment struct {
	Root string

	// Groups is the strategy groups, sorted by directory name.
	Groups []*Group

	// Baseline is the baseline version, or nil if the root has
	// no baseline directory.
	Baseline *Version

	// Skipped records every entry that was skipped and why.
	Skipped []error
}

// A Group is one strategy group and its versions.
type Group struct {
	Name stratname.Name
	Dir  string

	// Versions is the version directories, sorted by name.
	Versions []Version
}

// A Version is one generated program version directory.
type Version struct {
	Name string
	Dir  string
}

// File returns the path of the metric file name in v.
func (v Version) File(name string) string {
	return filepath.Join(v.Dir, name)
}

// Scan enumerates the experiment rooted at root. Only a failure to
// read root itself is returned as an error; malformed group names and
// unreadable group directories are logged, recorded in
// Experiment.Skipped, and left out of the result.
func Scan(root string, opts Options) (*Experiment, error) {
	baseline := opts.Baseline
	if baseline == "" {
		baseline = DefaultBaseline
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	names, err := listDirs(root)
	if err != nil {
		return nil, err
	}

	exp := &Experiment{Root: root}
	for _, name := range names {
		dir := filepath.Join(root, name)
		if name == baseline {
			exp.Baseline = &Version{Name: name, Dir: dir}
			continue
		}
		sn, err := stratname.Parse(name)
		if err == nil {
			_, err = sn.RateInt()
		}
		if err != nil {
			logger.Warn("skipping strategy group", slog.String("dir", dir), slog.Any("err", err))
			exp.Skipped = append(exp.Skipped, err)
			continue
		}
		exp.Groups = append(exp.Groups, &Group{Name: sn, Dir: dir})
	}

	// List versions. Each group writes only its own slot, so the
	// result is independent of scheduling.
	errs := make([]error, len(exp.Groups))
	var g errgroup.Group
	g.SetLimit(max(opts.Parallelism, 1))
	for i, grp := range exp.Groups {
		g.Go(func() error {
			vnames, err := listDirs(grp.Dir)
			if err != nil {
				errs[i] = err
				return nil
			}
			grp.Versions = make([]Version, len(vnames))
			for j, vn := range vnames {
				grp.Versions[j] = Version{Name: vn, Dir: filepath.Join(grp.Dir, vn)}
			}
			return nil
		})
	}
	_ = g.Wait()

	kept := exp.Groups[:0]
	for i, grp := range exp.Groups {
		if errs[i] != nil {
			logger.Warn("skipping unreadable strategy group", slog.String("dir", grp.Dir), slog.Any("err", errs[i]))
			exp.Skipped = append(exp.Skipped, errs[i])
			continue
		}
		kept = append(kept, grp)
	}
	exp.Groups = kept
	return exp, nil
}

// listDirs returns the sorted names of the directories in dir.
// Symbolic links are followed; entries that cannot be resolved are
// ignored like any other non-directory.
func listDirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		isDir := e.IsDir()
		if e.Type()&os.ModeSymlink != 0 {
			info, err := os.Stat(filepath.Join(dir, e.Name()))
			isDir = err == nil && info.IsDir()
		}
		if isDir {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Group returns the group whose directory name is dir, or nil.
func (e *Experiment) Group(dir string) *Group {
	i := sort.Search(len(e.Groups), func(i int) bool {
		return e.Groups[i].Name.Dir >= dir
	})
	if i < len(e.Groups) && e.Groups[i].Name.Dir == dir {
		return e.Groups[i]
	}
	return nil
}
