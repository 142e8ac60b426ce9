// Copyright 2026 The benchagg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stratname decodes the naming conventions used by the
// synthesis benchmark output.
//
// Strategy group directories are named "<program>.<strategy>.<rate>",
// for example "program.sched.100". Timing logs key their entries by
// "<function>--<strategy>". Strategies are recorded under short
// internal codes; Table maps those codes to the names shown in
// reports.
package stratname

import (
	"fmt"
	"strconv"
	"strings"
)

// MalformedNameError reports a name that does not follow the naming
// convention. Callers are expected to skip the entry and continue.
type MalformedNameError struct {
	Name string
	Msg  string
}

func (e *MalformedNameError) Error() string {
	return fmt.Sprintf("malformed name %q: %s", e.Name, e.Msg)
}

// Name is a decoded strategy group directory name.
type Name struct {
	// Dir is the directory name exactly as it appeared on disk.
	Dir string

	// Base is the program base name.
	Base string

	// Strategy is the internal strategy code, such as "sched".
	Strategy string

	// Rate is the sampling rate, kept verbatim.
	Rate string
}

// Parse decodes a strategy group directory name. Segments past the
// third are ignored; the first three must be non-empty. Parse does not
// check the rate; see RateInt.
func Parse(dir string) (Name, error) {
	segs := strings.Split(dir, ".")
	if len(segs) < 3 {
		return Name{}, &MalformedNameError{dir, "want <program>.<strategy>.<rate>"}
	}
	for i, what := range []string{"program", "strategy", "rate"} {
		if segs[i] == "" {
			return Name{}, &MalformedNameError{dir, "empty " + what}
		}
	}
	return Name{Dir: dir, Base: segs[0], Strategy: segs[1], Rate: segs[2]}, nil
}

// RateInt returns the sampling rate as a positive integer.
func (n Name) RateInt() (int, error) {
	r, err := strconv.Atoi(n.Rate)
	if err != nil || r <= 0 {
		return 0, &MalformedNameError{n.Dir, fmt.Sprintf("rate %q is not a positive integer", n.Rate)}
	}
	return r, nil
}

// Suffix returns the ".<strategy>.<rate>" part of the name with the
// strategy replaced by its display name in t.
func (n Name) Suffix(t Table) string {
	return "." + t.Display(n.Strategy) + "." + n.Rate
}

// SplitTimingKey splits a timing log key "<function>--<strategy>".
// Pieces after a second "--" are ignored, so "f--s--x" has strategy
// "s".
func SplitTimingKey(key string) (function, strategy string, err error) {
	pieces := strings.Split(key, "--")
	if len(pieces) < 2 || pieces[0] == "" || pieces[1] == "" {
		return "", "", &MalformedNameError{key, "want <function>--<strategy>"}
	}
	return pieces[0], pieces[1], nil
}
