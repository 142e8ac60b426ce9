// Copyright 2026 The benchagg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package metricfmt

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Metric file names found in a version directory.
const (
	CostFile        = "cost"
	SpeedFile       = "cost_speed"
	SizeFile        = "cost_size"
	GadgetsFile     = "gadgets"
	OccurrencesFile = "gadget_occurences"
	TimingLogFile   = "function_generation_times"
)

// MissingFileError reports that an expected metric file does not
// exist. It unwraps to fs.ErrNotExist.
type MissingFileError struct {
	Path string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("%s: metric file does not exist", e.Path)
}

func (e *MissingFileError) Unwrap() error {
	return fs.ErrNotExist
}

// CostRecord is the content of one cost file: a measurement per line,
// in file order.
type CostRecord struct {
	Labels []string
	Values []int64
}

// open opens path for reading, translating a missing or non-regular
// file into a *MissingFileError.
func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &MissingFileError{path}
		}
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return nil, &MissingFileError{path}
	}
	return f, nil
}

// ReadCostFile reads the cost file at path. It stops at the first
// malformed line and returns its *SyntaxError. An empty file yields
// an empty record.
func ReadCostFile(path string) (CostRecord, error) {
	f, err := open(path)
	if err != nil {
		return CostRecord{}, err
	}
	defer f.Close()

	var rec CostRecord
	r := NewReader(f, path)
	for r.Scan() {
		e, err := r.Entry()
		if err != nil {
			return CostRecord{}, err
		}
		rec.Labels = append(rec.Labels, e.Label)
		rec.Values = append(rec.Values, e.Value)
	}
	if err := r.Err(); err != nil {
		return CostRecord{}, err
	}
	return rec, nil
}
